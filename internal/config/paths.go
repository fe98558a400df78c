package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolvedPaths is the immutable set of directories one invocation works in.
type ResolvedPaths struct {
	ConfigFile   string
	TemplatesDir string
	SchemasDir   string
	BrandsDir    string
	CacheDir     string
	DataDir      string
}

// Discover resolves all application paths. configOverride, when non-empty,
// replaces the default config file location; a directory override means
// config.toml inside it.
func Discover(configOverride string) (*ResolvedPaths, error) {
	var configFile string
	if configOverride != "" {
		expanded, err := ExpandPath(configOverride)
		if err != nil {
			return nil, err
		}
		if st, statErr := os.Stat(expanded); statErr == nil && st.IsDir() {
			configFile = filepath.Join(expanded, "config.toml")
		} else {
			configFile = expanded
		}
	} else {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("locating config directory: %w", err)
		}
		configFile = filepath.Join(dir, appName, "config.toml")
	}

	dataDir, err := userDataDir()
	if err != nil {
		return nil, err
	}
	cacheBase, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("locating cache directory: %w", err)
	}

	return &ResolvedPaths{
		ConfigFile:   configFile,
		TemplatesDir: filepath.Join(dataDir, "templates"),
		SchemasDir:   filepath.Join(dataDir, "schemas"),
		BrandsDir:    filepath.Join(dataDir, "brands"),
		CacheDir:     filepath.Join(cacheBase, appName),
		DataDir:      dataDir,
	}, nil
}

// ApplyConfig replaces discovered directories with configured overrides.
func (p *ResolvedPaths) ApplyConfig(cfg *AppConfig) error {
	overrides := []struct {
		value  string
		target *string
	}{
		{cfg.Paths.TemplatesDir, &p.TemplatesDir},
		{cfg.Paths.SchemasDir, &p.SchemasDir},
		{cfg.Paths.BrandsDir, &p.BrandsDir},
		{cfg.Paths.CacheDir, &p.CacheDir},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		expanded, err := ExpandPath(o.value)
		if err != nil {
			return err
		}
		*o.target = expanded
	}
	return nil
}

// EnsureDirectories creates the working directories if missing.
func (p *ResolvedPaths) EnsureDirectories() error {
	for _, dir := range []string{p.TemplatesDir, p.SchemasDir, p.BrandsDir, p.CacheDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}

// userDataDir follows XDG on unix and the config dir convention elsewhere.
func userDataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// ExpandPath expands ~ and $VAR / ${VAR} references and cleans the result.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding ~ in %q: %w", path, err)
		}
		path = home + path[1:]
	}
	return filepath.Clean(os.ExpandEnv(path)), nil
}
