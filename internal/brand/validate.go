package brand

import (
	"fmt"
	"os"
	"regexp"
)

var hexColorRe = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidationResult aggregates rule violations for one brand. Errors make
// the brand invalid; warnings are advisory.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Validate checks a loaded brand. With checkFiles set, referenced logo and
// font files must exist on disk.
func (b *Brand) Validate(checkFiles bool) ValidationResult {
	var result ValidationResult

	if b.ID == "" {
		result.Errors = append(result.Errors, "id is required")
	}
	if len(b.Name) == 0 {
		result.Errors = append(result.Errors, "name is required")
	}

	for _, slot := range []struct {
		name  string
		value string
	}{
		{"primary", b.Colors.Primary},
		{"secondary", b.Colors.Secondary},
		{"accent", b.Colors.Accent},
		{"background", b.Colors.Background},
		{"text", b.Colors.Text},
	} {
		if slot.value != "" && !hexColorRe.MatchString(slot.value) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("colors.%s: '%s' is not a valid hex color", slot.name, slot.value))
		}
	}
	for name, value := range b.Colors.Palette {
		if value != "" && !hexColorRe.MatchString(value) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("colors.palette.%s: '%s' is not a valid hex color", name, value))
		}
	}

	if checkFiles {
		for _, slot := range []struct {
			name  string
			asset *AssetPath
		}{
			{"primary", b.Logos.Primary},
			{"secondary", b.Logos.Secondary},
			{"monochrome", b.Logos.Monochrome},
			{"favicon", b.Logos.Favicon},
		} {
			if slot.asset == nil {
				continue
			}
			if _, err := os.Stat(slot.asset.Resolved); err != nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("logos.%s: file not found: %s", slot.name, slot.asset.Resolved))
			}
		}

		for _, slot := range []struct {
			name string
			face *FontFace
		}{
			{"body", b.Typography.Body},
			{"heading", b.Typography.Heading},
			{"mono", b.Typography.Mono},
		} {
			if slot.face == nil {
				continue
			}
			for _, file := range slot.face.Files {
				if _, err := os.Stat(file); err != nil {
					result.Errors = append(result.Errors,
						fmt.Sprintf("typography.%s.files: file not found: %s", slot.name, file))
				}
			}
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}
