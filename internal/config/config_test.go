package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Output.Format != "pdf" {
		t.Errorf("format = %q, want pdf", cfg.Output.Format)
	}
	if cfg.Output.WatchDebounceMs != 300 {
		t.Errorf("debounce = %d, want 300", cfg.Output.WatchDebounceMs)
	}
	if len(cfg.Typst.FontPaths) == 0 {
		t.Error("no default font paths")
	}
}

func TestLoadOrCreate_WritesDefault(t *testing.T) {
	dir := t.TempDir()
	paths := &ResolvedPaths{ConfigFile: filepath.Join(dir, "config.toml")}

	cfg, err := LoadOrCreate(paths)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if cfg.Output.Format != "pdf" {
		t.Errorf("format = %q, want pdf", cfg.Output.Format)
	}

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if !strings.Contains(string(data), "[output]") {
		t.Errorf("default config incomplete:\n%s", data)
	}
}

func TestLoadOrCreate_ReadsExisting(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.toml")
	src := `[brand]
default = "acme"

[output]
format = "svg"

[typst]
binary = "/opt/typst/bin/typst"
`
	if err := os.WriteFile(cfgFile, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOrCreate(&ResolvedPaths{ConfigFile: cfgFile})
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if cfg.Brand.Default != "acme" {
		t.Errorf("brand = %q, want acme", cfg.Brand.Default)
	}
	if cfg.Output.Format != "svg" {
		t.Errorf("format = %q, want svg", cfg.Output.Format)
	}
	if cfg.Typst.Binary != "/opt/typst/bin/typst" {
		t.Errorf("binary = %q", cfg.Typst.Binary)
	}
	// Missing debounce falls back to default.
	if cfg.Output.WatchDebounceMs != 300 {
		t.Errorf("debounce = %d, want 300", cfg.Output.WatchDebounceMs)
	}
}

func TestDiscover_ConfigOverride(t *testing.T) {
	dir := t.TempDir()

	paths, err := Discover(filepath.Join(dir, "my.toml"))
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if paths.ConfigFile != filepath.Join(dir, "my.toml") {
		t.Errorf("config file = %q", paths.ConfigFile)
	}

	// A directory override means config.toml inside it.
	paths, err = Discover(dir)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if paths.ConfigFile != filepath.Join(dir, "config.toml") {
		t.Errorf("config file = %q", paths.ConfigFile)
	}
}

func TestApplyConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FORMA_TEST_DIR", dir)

	paths := &ResolvedPaths{TemplatesDir: "/default/templates"}
	cfg := Default()
	cfg.Paths.TemplatesDir = "$FORMA_TEST_DIR/templates"

	if err := paths.ApplyConfig(&cfg); err != nil {
		t.Fatalf("ApplyConfig failed: %v", err)
	}
	if paths.TemplatesDir != filepath.Join(dir, "templates") {
		t.Errorf("templates dir = %q", paths.TemplatesDir)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandPath("~/fonts")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "fonts") {
		t.Errorf("ExpandPath(~/fonts) = %q", got)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	paths := &ResolvedPaths{
		TemplatesDir: filepath.Join(dir, "templates"),
		SchemasDir:   filepath.Join(dir, "schemas"),
		BrandsDir:    filepath.Join(dir, "brands"),
		CacheDir:     filepath.Join(dir, "cache"),
	}

	if err := paths.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, d := range []string{paths.TemplatesDir, paths.SchemasDir, paths.BrandsDir, paths.CacheDir} {
		if st, err := os.Stat(d); err != nil || !st.IsDir() {
			t.Errorf("directory %s not created", d)
		}
	}
}
