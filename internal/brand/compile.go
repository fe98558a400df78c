package brand

import (
	"os"
	"path/filepath"
)

// CompileData builds the JSON-serializable object injected under the "brand"
// key of compile data. Asset paths are resolved absolute paths so templates
// can reference them directly.
func (b *Brand) CompileData() map[string]any {
	colors := map[string]any{
		"primary":    b.Colors.Primary,
		"secondary":  b.Colors.Secondary,
		"accent":     b.Colors.Accent,
		"background": b.Colors.Background,
		"text":       b.Colors.Text,
		"palette":    b.Colors.Palette,
	}

	logos := map[string]any{
		"primary":    assetString(b.Logos.Primary),
		"secondary":  assetString(b.Logos.Secondary),
		"monochrome": assetString(b.Logos.Monochrome),
		"favicon":    assetString(b.Logos.Favicon),
	}

	fonts := map[string]any{
		"body":    faceFamily(b.Typography.Body),
		"heading": faceFamily(b.Typography.Heading),
		"mono":    faceFamily(b.Typography.Mono),
	}

	data := map[string]any{
		"id":               b.ID,
		"name":             b.NameFor(""),
		"default_language": b.DefaultLanguage,
		"languages":        b.Languages,
		"colors":           colors,
		"logos":            logos,
		"logo":             assetString(b.Logos.Primary),
		"fonts":            fonts,
		"root":             b.Source.RootDir,
	}

	if b.Contact != nil {
		data["contact"] = map[string]any{
			"company": b.Contact.Company.Resolve("", b.DefaultLanguage),
			"address": b.Contact.Address.Resolve("", b.DefaultLanguage),
			"phone":   b.Contact.Phone,
			"email":   b.Contact.Email,
			"website": b.Contact.Website,
		}
	}

	return data
}

// FontPaths collects existing directories holding the brand's font files,
// for passing to the compiler as font search paths.
func (b *Brand) FontPaths() []string {
	var paths []string
	seen := make(map[string]bool)

	for _, face := range []*FontFace{b.Typography.Body, b.Typography.Heading, b.Typography.Mono} {
		if face == nil {
			continue
		}
		for _, file := range face.Files {
			dir := filepath.Dir(file)
			if seen[dir] {
				continue
			}
			if st, err := os.Stat(dir); err != nil || !st.IsDir() {
				continue
			}
			seen[dir] = true
			paths = append(paths, dir)
		}
	}
	return paths
}

func assetString(a *AssetPath) any {
	if a == nil {
		return nil
	}
	return a.Resolved
}

func faceFamily(f *FontFace) any {
	if f == nil {
		return nil
	}
	return f.Family
}
