package brand

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleBrand = `id = "acme"
default_language = "de"
languages = ["de", "en"]

[name]
de = "ACME GmbH"
en = "ACME Inc"

[colors]
primary = "#1a2b3c"
accent = "#f00"

[colors.palette]
highlight = "#ffcc00"

[logos]
primary = "logos/acme.svg"

[typography.body]
family = "Inter"
files = ["fonts/Inter-Regular.ttf"]

[contact]
email = "info@acme.example"

[contact.company]
de = "ACME GmbH"
en = "ACME Incorporated"
`

func writeBrandDir(t *testing.T, brandsDir, id, src string) string {
	t.Helper()
	dir := filepath.Join(brandsDir, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(dir, "brand.toml")
	if err := os.WriteFile(file, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return file
}

func TestFromSource(t *testing.T) {
	b, err := FromSource(sampleBrand, Source{File: "/brands/acme/brand.toml", RootDir: "/brands/acme"})
	if err != nil {
		t.Fatalf("FromSource failed: %v", err)
	}

	if b.ID != "acme" {
		t.Errorf("id = %q, want acme", b.ID)
	}
	if b.DefaultLanguage != "de" {
		t.Errorf("default language = %q, want de", b.DefaultLanguage)
	}
	if b.NameFor("en") != "ACME Inc" {
		t.Errorf("name en = %q", b.NameFor("en"))
	}
	if b.NameFor("") != "ACME GmbH" {
		t.Errorf("name default = %q, want the de name", b.NameFor(""))
	}
	if b.Logos.Primary == nil || b.Logos.Primary.Resolved != "/brands/acme/logos/acme.svg" {
		t.Errorf("logo not resolved: %+v", b.Logos.Primary)
	}
	if b.Typography.Body == nil || b.Typography.Body.Family != "Inter" {
		t.Errorf("typography missing: %+v", b.Typography.Body)
	}
	if b.Contact == nil || b.Contact.Email != "info@acme.example" {
		t.Errorf("contact missing: %+v", b.Contact)
	}
}

func TestFromSource_StringName(t *testing.T) {
	b, err := FromSource("id = \"x\"\nname = \"Plain Name\"\n", Source{RootDir: "/tmp"})
	if err != nil {
		t.Fatalf("FromSource failed: %v", err)
	}
	if b.NameFor("") != "Plain Name" {
		t.Errorf("name = %q", b.NameFor(""))
	}
	if b.DefaultLanguage != "en" {
		t.Errorf("default language = %q, want en", b.DefaultLanguage)
	}
}

func TestFromSource_RequiredFields(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing id", "name = \"x\"\n"},
		{"missing name", "id = \"x\"\n"},
		{"font face without family", "id = \"x\"\nname = \"x\"\n[typography.body]\nfiles = [\"a.ttf\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromSource(tt.src, Source{}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRegistry_LoadAndList(t *testing.T) {
	brandsDir := t.TempDir()
	writeBrandDir(t, brandsDir, "acme", sampleBrand)
	writeBrandDir(t, brandsDir, "beta", "id = \"beta\"\nname = \"Beta\"\n")

	r := NewRegistry([]string{brandsDir})

	b, err := r.Load("acme")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b.ID != "acme" {
		t.Errorf("id = %q", b.ID)
	}
	if b.Source.RootDir != filepath.Join(brandsDir, "acme") {
		t.Errorf("root dir = %q", b.Source.RootDir)
	}

	summaries := r.List()
	if len(summaries) != 2 {
		t.Fatalf("list = %d entries, want 2", len(summaries))
	}
	if summaries[0].ID != "acme" || summaries[1].ID != "beta" {
		t.Errorf("list not sorted: %+v", summaries)
	}

	_, err = r.Load("missing")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestValidate_HexColors(t *testing.T) {
	src := `id = "x"
name = "X"

[colors]
primary = "#123456"
accent = "not-a-color"
`
	b, err := FromSource(src, Source{})
	if err != nil {
		t.Fatal(err)
	}

	result := b.Validate(false)
	if !result.Valid {
		t.Errorf("expected valid, errors = %v", result.Errors)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "colors.accent") {
		t.Errorf("warnings = %v", result.Warnings)
	}
}

func TestValidate_CheckFiles(t *testing.T) {
	brandsDir := t.TempDir()
	file := writeBrandDir(t, brandsDir, "acme", sampleBrand)
	root := filepath.Dir(file)

	b, err := FromFile(file)
	if err != nil {
		t.Fatal(err)
	}

	// Assets missing: errors with checkFiles, clean without.
	if result := b.Validate(false); !result.Valid {
		t.Errorf("errors without file check: %v", result.Errors)
	}
	result := b.Validate(true)
	if result.Valid {
		t.Error("expected invalid with missing asset files")
	}

	// Create the assets and re-validate.
	for _, rel := range []string{"logos/acme.svg", "fonts/Inter-Regular.ttf"} {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte{}, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	b, _ = FromFile(file)
	if result := b.Validate(true); !result.Valid {
		t.Errorf("errors with assets present: %v", result.Errors)
	}
}

func TestCompileData(t *testing.T) {
	brandsDir := t.TempDir()
	file := writeBrandDir(t, brandsDir, "acme", sampleBrand)

	b, err := FromFile(file)
	if err != nil {
		t.Fatal(err)
	}

	data := b.CompileData()
	if data["id"] != "acme" {
		t.Errorf("id = %v", data["id"])
	}
	if data["name"] != "ACME GmbH" {
		t.Errorf("name = %v", data["name"])
	}
	colors := data["colors"].(map[string]any)
	if colors["primary"] != "#1a2b3c" {
		t.Errorf("primary = %v", colors["primary"])
	}
	if data["logo"] == nil {
		t.Error("logo missing")
	}
	contact := data["contact"].(map[string]any)
	if contact["company"] != "ACME GmbH" {
		t.Errorf("contact company = %v", contact["company"])
	}
}

func TestFontPaths(t *testing.T) {
	brandsDir := t.TempDir()
	file := writeBrandDir(t, brandsDir, "acme", sampleBrand)
	root := filepath.Dir(file)

	fontsDir := filepath.Join(root, "fonts")
	if err := os.MkdirAll(fontsDir, 0o755); err != nil {
		t.Fatal(err)
	}

	b, err := FromFile(file)
	if err != nil {
		t.Fatal(err)
	}

	paths := b.FontPaths()
	if len(paths) != 1 || paths[0] != fontsDir {
		t.Errorf("font paths = %v, want [%s]", paths, fontsDir)
	}
}
