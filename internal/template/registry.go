package template

import (
	"os"
	"path/filepath"
	"sort"
)

// Registry finds templates by ID or path across a set of search directories.
type Registry struct {
	searchPaths []string
}

// NewRegistry builds a registry over the given directories, in priority order.
func NewRegistry(searchPaths []string) *Registry {
	return &Registry{searchPaths: searchPaths}
}

// Find resolves a name to an analyzed template. A name that is an existing
// path wins; otherwise each search directory is probed for the name as given
// and with a .typ extension.
func (r *Registry) Find(name string) (*Info, error) {
	if _, err := os.Stat(name); err == nil {
		return Parse(name)
	}

	for _, dir := range r.searchPaths {
		for _, candidate := range []string{
			filepath.Join(dir, name),
			filepath.Join(dir, name+".typ"),
		} {
			if _, err := os.Stat(candidate); err == nil {
				return Parse(candidate)
			}
		}
	}

	return nil, &NotFoundError{Name: name}
}

// List analyzes every .typ file across the search directories, sorted by ID.
// Unreadable entries are skipped.
func (r *Registry) List() []*Info {
	var templates []*Info
	for _, dir := range r.searchPaths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".typ" {
				continue
			}
			info, err := Parse(filepath.Join(dir, entry.Name()))
			if err != nil {
				continue
			}
			templates = append(templates, info)
		}
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].ID < templates[j].ID })
	return templates
}
