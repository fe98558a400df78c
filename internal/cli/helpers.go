package cli

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/aidanlsb/forma/internal/brand"
	"github.com/aidanlsb/forma/internal/template"
)

// resolveContentFile turns a positional file argument or a --from selector
// into a concrete path. Exactly one of the two must be given.
func resolveContentFile(file, from string) (string, error) {
	if file != "" {
		return file, nil
	}
	if from != "" {
		return docCache.ResolveSelector(from)
	}
	return "", fmt.Errorf("no file specified. Use a file path or --from <selector>")
}

// templateSearchPaths returns the directories the template registry scans,
// in priority order.
func templateSearchPaths() []string {
	return []string{paths.TemplatesDir, ".", "./templates"}
}

func templateRegistry() *template.Registry {
	return template.NewRegistry(templateSearchPaths())
}

func brandRegistry() *brand.Registry {
	return brand.NewRegistry([]string{paths.BrandsDir})
}

// loadBrandForCompile resolves the brand for a compile: explicit flag wins
// over the config default; no brand at all is fine.
func loadBrandForCompile(brandID string) (map[string]interface{}, []string, error) {
	id := brandID
	if id == "" {
		id = cfg.Brand.Default
	}
	if id == "" {
		return nil, nil, nil
	}

	b, err := brandRegistry().Load(id)
	if err != nil {
		return nil, nil, err
	}

	// The brand root always participates in font resolution so relative
	// font paths in brand.toml work.
	fontPaths := []string{b.Source.RootDir}
	fontPaths = append(fontPaths, b.FontPaths()...)

	return b.CompileData(), fontPaths, nil
}

// defaultOutputPath derives an output filename from the content file stem.
func defaultOutputPath(contentPath, ext string) string {
	stem := strings.TrimSuffix(filepath.Base(contentPath), filepath.Ext(contentPath))
	if stem == "" {
		stem = "output"
	}
	return stem + "." + ext
}

// openFile opens a file with the system's default application.
func openFile(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	return nil
}
