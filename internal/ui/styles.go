package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
// - Default (white/black): Primary text
// - Accent (soft purple #A78BFA): Highlights, paths, interactive elements
// - Muted (gray): Secondary info, hints
// - No colored success/error/warning - use unicode symbols only

// Palette hex values shared with the markdown renderer.
const (
	AccentHex = "#A78BFA"
	MutedHex  = "#6C7086"
)

var (
	// Accent style for file paths, template ids, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(AccentHex))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color(MutedHex))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(AccentHex)).Bold(true)
)
