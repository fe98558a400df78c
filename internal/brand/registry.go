package brand

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const brandFilename = "brand.toml"

// NotFoundError indicates a brand id no search path contains.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("brand '%s' not found", e.ID)
}

// Summary is a listing row for one discovered brand.
type Summary struct {
	ID        string   `json:"id"`
	Name      string   `json:"name,omitempty"`
	Languages []string `json:"languages,omitempty"`
	Path      string   `json:"path"`
}

// Registry finds brands across search directories. Each brand lives in its
// own subdirectory holding a brand.toml.
type Registry struct {
	searchPaths []string
}

// NewRegistry builds a registry over the given directories.
func NewRegistry(searchPaths []string) *Registry {
	return &Registry{searchPaths: searchPaths}
}

// Load resolves an id or path to a brand. A path to a brand.toml or a brand
// directory wins over id lookup.
func (r *Registry) Load(idOrPath string) (*Brand, error) {
	if st, err := os.Stat(idOrPath); err == nil {
		if st.IsDir() {
			return FromFile(filepath.Join(idOrPath, brandFilename))
		}
		return FromFile(idOrPath)
	}

	for _, dir := range r.searchPaths {
		candidate := filepath.Join(dir, idOrPath, brandFilename)
		if _, err := os.Stat(candidate); err == nil {
			return FromFile(candidate)
		}
	}
	return nil, &NotFoundError{ID: idOrPath}
}

// List summarizes every brand found, sorted by id. Directories whose
// brand.toml fails to parse are skipped.
func (r *Registry) List() []Summary {
	var summaries []Summary
	seen := make(map[string]bool)

	for _, dir := range r.searchPaths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			file := filepath.Join(dir, entry.Name(), brandFilename)
			b, err := FromFile(file)
			if err != nil {
				continue
			}
			if seen[b.ID] {
				continue
			}
			seen[b.ID] = true
			summaries = append(summaries, Summary{
				ID:        b.ID,
				Name:      b.NameFor(""),
				Languages: b.Languages,
				Path:      file,
			})
		}
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries
}
