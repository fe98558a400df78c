// Package brand loads brand definitions: per-brand directories holding a
// brand.toml plus logo and font assets. Brands carry localized names, a
// color palette, typography, and contact details, and are injected into
// compiles as a data sub-object.
package brand

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// LocalizedText maps language codes to strings. A bare TOML string decodes
// as the "default" language.
type LocalizedText map[string]string

// UnmarshalTOML accepts either a string or a table of language -> string.
func (t *LocalizedText) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case string:
		*t = LocalizedText{"default": val}
		return nil
	case map[string]any:
		out := make(LocalizedText, len(val))
		for lang, raw := range val {
			s, ok := raw.(string)
			if !ok {
				return fmt.Errorf("localized text for %q must be a string", lang)
			}
			out[lang] = s
		}
		*t = out
		return nil
	}
	return fmt.Errorf("localized text must be a string or a table, got %T", v)
}

// Resolve picks the text for a language, falling back to the default
// language, the "default" bucket, then any language in sorted order.
func (t LocalizedText) Resolve(lang, defaultLang string) string {
	for _, key := range []string{lang, defaultLang, "default"} {
		if key == "" {
			continue
		}
		if s, ok := t[key]; ok {
			return s
		}
	}
	langs := t.Languages()
	if len(langs) > 0 {
		return t[langs[0]]
	}
	return ""
}

// Languages lists the language codes present, sorted, excluding "default".
func (t LocalizedText) Languages() []string {
	var langs []string
	for lang := range t {
		if lang != "default" {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	return langs
}

// Colors is the brand palette. Named slots plus a free-form palette table.
type Colors struct {
	Primary    string            `toml:"primary" json:"primary,omitempty"`
	Secondary  string            `toml:"secondary" json:"secondary,omitempty"`
	Accent     string            `toml:"accent" json:"accent,omitempty"`
	Background string            `toml:"background" json:"background,omitempty"`
	Text       string            `toml:"text" json:"text,omitempty"`
	Palette    map[string]string `toml:"palette" json:"palette,omitempty"`
}

// AssetPath is a file reference as written plus its resolved location.
type AssetPath struct {
	Original string
	Resolved string
}

// Logos holds the brand's logo variants.
type Logos struct {
	Primary    *AssetPath
	Secondary  *AssetPath
	Monochrome *AssetPath
	Favicon    *AssetPath
}

// FontFace is one font family with its files.
type FontFace struct {
	Family string
	Files  []string
	Weight int
	Style  string
}

// Typography groups font faces by usage.
type Typography struct {
	Body    *FontFace
	Heading *FontFace
	Mono    *FontFace
}

// Contact carries the brand's contact details.
type Contact struct {
	Company LocalizedText `toml:"company"`
	Address LocalizedText `toml:"address"`
	Phone   string        `toml:"phone"`
	Email   string        `toml:"email"`
	Website string        `toml:"website"`
}

// Source records where a brand was loaded from.
type Source struct {
	File    string
	RootDir string
}

// Brand is a fully resolved brand definition.
type Brand struct {
	ID              string
	DefaultLanguage string
	Languages       []string
	Name            LocalizedText
	Description     LocalizedText
	Colors          Colors
	Logos           Logos
	Typography      Typography
	Contact         *Contact
	Source          Source
}

// brandConfig is the raw brand.toml shape.
type brandConfig struct {
	ID              string        `toml:"id"`
	DefaultLanguage string        `toml:"default_language"`
	Languages       []string      `toml:"languages"`
	Name            LocalizedText `toml:"name"`
	Description     LocalizedText `toml:"description"`
	Colors          Colors        `toml:"colors"`
	Logos           logosConfig   `toml:"logos"`
	Typography      typoConfig    `toml:"typography"`
	Contact         *Contact      `toml:"contact"`
}

type logosConfig struct {
	Primary    string `toml:"primary"`
	Secondary  string `toml:"secondary"`
	Monochrome string `toml:"monochrome"`
	Favicon    string `toml:"favicon"`
}

type typoConfig struct {
	Body    *fontFaceConfig `toml:"body"`
	Heading *fontFaceConfig `toml:"heading"`
	Mono    *fontFaceConfig `toml:"mono"`
}

type fontFaceConfig struct {
	Family string   `toml:"family"`
	Files  []string `toml:"files"`
	Weight int      `toml:"weight"`
	Style  string   `toml:"style"`
}

// FromFile loads a brand from a brand.toml path. Asset references resolve
// relative to the file's directory.
func FromFile(path string) (*Brand, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading brand file %s: %w", path, err)
	}
	rootDir := filepath.Dir(path)
	return FromSource(string(data), Source{File: path, RootDir: rootDir})
}

// FromSource parses brand TOML with a given source location.
func FromSource(src string, source Source) (*Brand, error) {
	var cfg brandConfig
	if err := toml.Unmarshal([]byte(src), &cfg); err != nil {
		return nil, fmt.Errorf("parsing brand file: %w", err)
	}

	if strings.TrimSpace(cfg.ID) == "" {
		return nil, fmt.Errorf("brand id is required")
	}
	if len(cfg.Name) == 0 {
		return nil, fmt.Errorf("brand name is required")
	}

	languages := dedupe(cfg.Languages)
	for _, set := range []LocalizedText{cfg.Name, cfg.Description} {
		for _, lang := range set.Languages() {
			if !contains(languages, lang) {
				languages = append(languages, lang)
			}
		}
	}
	if len(languages) == 0 {
		switch {
		case cfg.DefaultLanguage != "":
			languages = []string{cfg.DefaultLanguage}
		default:
			languages = []string{"en"}
		}
	} else if cfg.DefaultLanguage != "" && !contains(languages, cfg.DefaultLanguage) {
		languages = append(languages, cfg.DefaultLanguage)
	}

	defaultLang := cfg.DefaultLanguage
	if defaultLang == "" {
		defaultLang = languages[0]
	}

	typography, err := resolveTypography(cfg.Typography, source.RootDir)
	if err != nil {
		return nil, err
	}

	return &Brand{
		ID:              cfg.ID,
		DefaultLanguage: defaultLang,
		Languages:       languages,
		Name:            cfg.Name,
		Description:     cfg.Description,
		Colors:          cfg.Colors,
		Logos: Logos{
			Primary:    resolveAsset(cfg.Logos.Primary, source.RootDir),
			Secondary:  resolveAsset(cfg.Logos.Secondary, source.RootDir),
			Monochrome: resolveAsset(cfg.Logos.Monochrome, source.RootDir),
			Favicon:    resolveAsset(cfg.Logos.Favicon, source.RootDir),
		},
		Typography: typography,
		Contact:    cfg.Contact,
		Source:     source,
	}, nil
}

// NameFor resolves the display name for a language.
func (b *Brand) NameFor(lang string) string {
	return b.Name.Resolve(lang, b.DefaultLanguage)
}

// DescriptionFor resolves the description for a language.
func (b *Brand) DescriptionFor(lang string) string {
	return b.Description.Resolve(lang, b.DefaultLanguage)
}

func resolveAsset(path, rootDir string) *AssetPath {
	if path == "" {
		return nil
	}
	resolved := path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(rootDir, resolved)
	}
	return &AssetPath{Original: path, Resolved: resolved}
}

func resolveTypography(cfg typoConfig, rootDir string) (Typography, error) {
	var t Typography
	for _, slot := range []struct {
		name   string
		cfg    *fontFaceConfig
		target **FontFace
	}{
		{"body", cfg.Body, &t.Body},
		{"heading", cfg.Heading, &t.Heading},
		{"mono", cfg.Mono, &t.Mono},
	} {
		if slot.cfg == nil {
			continue
		}
		if strings.TrimSpace(slot.cfg.Family) == "" {
			return t, fmt.Errorf("typography.%s: font face requires a non-empty family name", slot.name)
		}
		face := &FontFace{
			Family: slot.cfg.Family,
			Weight: slot.cfg.Weight,
			Style:  slot.cfg.Style,
		}
		for _, file := range slot.cfg.Files {
			if !filepath.IsAbs(file) {
				file = filepath.Join(rootDir, file)
			}
			face.Files = append(face.Files, file)
		}
		*slot.target = face
	}
	return t, nil
}

func dedupe(items []string) []string {
	var out []string
	for _, item := range items {
		if item != "" && !contains(out, item) {
			out = append(out, item)
		}
	}
	return out
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
