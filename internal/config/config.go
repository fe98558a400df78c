// Package config handles global forma configuration: the config.toml file,
// its defaults, and XDG-style path discovery.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/forma/internal/atomicfile"
)

const appName = "forma"

// AppConfig is the parsed config.toml.
type AppConfig struct {
	Paths        PathsConfig        `toml:"paths"`
	Brand        BrandConfig        `toml:"brand"`
	Typst        TypstConfig        `toml:"typst"`
	Output       OutputConfig       `toml:"output"`
	Experimental ExperimentalConfig `toml:"experimental"`
}

// PathsConfig overrides the discovered directories. Values may use ~ and
// environment variables.
type PathsConfig struct {
	TemplatesDir string `toml:"templates_dir"`
	SchemasDir   string `toml:"schemas_dir"`
	BrandsDir    string `toml:"brands_dir"`
	CacheDir     string `toml:"cache_dir"`
}

// BrandConfig selects the brand used when --brand is not given.
type BrandConfig struct {
	Default string `toml:"default"`
}

// TypstConfig locates the typst binary and extra font directories.
type TypstConfig struct {
	// Binary is the typst executable; empty means look it up on PATH.
	Binary    string   `toml:"binary"`
	FontPaths []string `toml:"font_paths"`
}

// OutputConfig holds compile defaults.
type OutputConfig struct {
	Format          string `toml:"format"`
	WatchDebounceMs int    `toml:"watch_debounce_ms"`
}

// ExperimentalConfig gates features not yet stable.
type ExperimentalConfig struct {
	HTML bool `toml:"html"`
}

// Default returns the built-in configuration.
func Default() AppConfig {
	return AppConfig{
		Output: OutputConfig{
			Format:          "pdf",
			WatchDebounceMs: 300,
		},
		Typst: TypstConfig{
			FontPaths: defaultFontPaths(),
		},
	}
}

func defaultFontPaths() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"~/Library/Fonts", "/Library/Fonts"}
	case "windows":
		return []string{"C:/Windows/Fonts"}
	default:
		return []string{"~/.local/share/fonts", "~/.fonts", "/usr/share/fonts"}
	}
}

// LoadOrCreate reads the config file, writing the default one first if it
// does not exist yet. Unset fields fall back to defaults.
func LoadOrCreate(paths *ResolvedPaths) (AppConfig, error) {
	if _, err := os.Stat(paths.ConfigFile); os.IsNotExist(err) {
		if err := WriteDefault(paths.ConfigFile); err != nil {
			return AppConfig{}, err
		}
	}

	cfg := Default()
	if _, err := toml.DecodeFile(paths.ConfigFile, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parsing config file %s: %w", paths.ConfigFile, err)
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "pdf"
	}
	if cfg.Output.WatchDebounceMs <= 0 {
		cfg.Output.WatchDebounceMs = 300
	}
	return cfg, nil
}

// WriteDefault writes a commented default config file.
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	content := fmt.Sprintf(`# %s configuration
# Generated automatically on first run.

[paths]
# templates_dir = "~/Documents/%s/templates"
# schemas_dir = ""
# brands_dir = ""
# cache_dir = ""

[brand]
# default = "acme"

[typst]
binary = ""
font_paths = [%s]

[output]
format = "pdf"
watch_debounce_ms = 300

[experimental]
html = false
`, appName, appName, fontPathsTOML())

	if err := atomicfile.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

func fontPathsTOML() string {
	out := ""
	for i, p := range defaultFontPaths() {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%q", p)
	}
	return out
}
