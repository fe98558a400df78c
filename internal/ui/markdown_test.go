package ui

import (
	"strings"
	"testing"
)

func TestRenderMarkdownNormalizesTrailingNewline(t *testing.T) {
	t.Parallel()

	out, err := RenderMarkdown("# Heading", 80)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("expected rendered markdown to end with newline, got %q", out)
	}
	if strings.HasSuffix(out, "\n\n") {
		t.Fatalf("expected single trailing newline, got %q", out)
	}
}

func TestRenderMarkdownDefaultsWidthWhenNonPositive(t *testing.T) {
	t.Parallel()

	out, err := RenderMarkdown("hello", 0)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if strings.TrimSpace(out) == "" {
		t.Fatalf("expected non-empty rendered output")
	}
}

func TestFormaMarkdownStyleUsesAccentHeadings(t *testing.T) {
	style := formaMarkdownStyle()

	if style.Heading.Color == nil || *style.Heading.Color != AccentHex {
		t.Fatalf("expected headings to use the accent color")
	}
	if style.Heading.Bold == nil || !*style.Heading.Bold {
		t.Fatalf("expected headings to be bold")
	}
	if style.BlockQuote.IndentToken == nil || *style.BlockQuote.IndentToken != "┃ " {
		t.Fatalf("expected block quotes to carry an indent token")
	}
	if style.H1.Underline == nil || !*style.H1.Underline {
		t.Fatalf("expected top-level headings to be underlined")
	}
	if style.H1.Prefix != "" {
		t.Fatalf("headings must render without markdown hash prefixes, got %q", style.H1.Prefix)
	}
}
