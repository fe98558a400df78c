package typst

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed lib.typ
var helperLib string

const (
	packageName    = "forma-lib"
	packageVersion = "1.0.0"
)

// preparePackage materializes the bundled helper library as a local Typst
// package under the system temp directory and returns the package root for
// --package-path. The files are rewritten on every run so upgrades take
// effect without manual cleanup.
func preparePackage() (string, error) {
	base := filepath.Join(os.TempDir(), "forma-typst-packages")
	pkgRoot := filepath.Join(base, "local", packageName, packageVersion)

	if err := os.MkdirAll(pkgRoot, 0o755); err != nil {
		return "", fmt.Errorf("creating Typst package directory %s: %w", pkgRoot, err)
	}

	manifest := fmt.Sprintf(`[package]
name = "%s"
version = "%s"
entrypoint = "lib.typ"
license = "MIT"
description = "forma helper library"
`, packageName, packageVersion)

	if err := os.WriteFile(filepath.Join(pkgRoot, "typst.toml"), []byte(manifest), 0o644); err != nil {
		return "", fmt.Errorf("writing Typst package manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(pkgRoot, "lib.typ"), []byte(helperLib), 0o644); err != nil {
		return "", fmt.Errorf("writing Typst helper library: %w", err)
	}

	return base, nil
}
