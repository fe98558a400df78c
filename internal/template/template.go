// Package template statically analyzes Typst templates.
//
// Analysis is regex-based rather than a real parser: it extracts the
// declarative #editable and #editable-block markers, infers data access
// from data.* and get(data, ...) expressions, and reads @description /
// @version comment tags. Paths built dynamically in template code are
// invisible to it.
package template

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// EditableField is a declared scalar field marker.
type EditableField struct {
	Path    string `json:"path"`
	Type    string `json:"type"`
	Default string `json:"default,omitempty"`
}

// EditableBlock is a declared block marker with its inline default body.
type EditableBlock struct {
	Path           string `json:"path"`
	Title          string `json:"title,omitempty"`
	Format         string `json:"format"`
	DefaultContent string `json:"default_content,omitempty"`
}

// DataAccess is one inferred data dependency.
type DataAccess struct {
	Path    string `json:"path"`
	Default string `json:"default,omitempty"`
}

// Info is the result of analyzing one template.
type Info struct {
	Path        string
	ID          string
	Description string
	Version     string
	Fields      []EditableField
	Blocks      []EditableBlock
}

// NotFoundError indicates a template that no search path contains.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template '%s' not found", e.Name)
}

var (
	fieldRe = regexp.MustCompile(
		`#editable\(\s*"([^"]+)"` +
			`(?:\s*,\s*type:\s*"([^"]+)")?` +
			`(?:\s*,\s*default:\s*(?:"([^"]+)"|([^\s,)]+)))?\s*\)`)

	blockRe = regexp.MustCompile(
		`#editable-block\(\s*"([^"]+)"` +
			`(?:\s*,\s*title:\s*"([^"]+)")?` +
			`(?:\s*,\s*format:\s*"([^"]+)")?\s*\)\s*\[([^\]]*)\]`)

	dataRe   = regexp.MustCompile(`data\.([a-zA-Z_][a-zA-Z0-9_.]*)`)
	getRe    = regexp.MustCompile(`get\s*\(\s*data\s*,\s*"([^"]+)"(?:\s*,\s*default:\s*(?:"([^"]+)"|([^\s,)]+)))?\s*\)`)
	blocksRe = regexp.MustCompile(`blocks\.([a-zA-Z_][a-zA-Z0-9_]*)`)

	commentTagRe = regexp.MustCompile(`//\s*@(description|version):\s*(.+)`)
)

// Parse reads and analyzes a template file.
func Parse(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Name: path}
		}
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}
	return ParseSource(path, string(data)), nil
}

// ParseSource analyzes template source. The ID derives from the file stem.
func ParseSource(path, src string) *Info {
	info := &Info{
		Path:   path,
		ID:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Fields: extractFields(src),
		Blocks: extractBlocks(src),
	}
	for _, m := range commentTagRe.FindAllStringSubmatch(src, -1) {
		value := strings.TrimSpace(m[2])
		switch m[1] {
		case "description":
			if info.Description == "" {
				info.Description = value
			}
		case "version":
			if info.Version == "" {
				info.Version = value
			}
		}
	}
	return info
}

func extractFields(src string) []EditableField {
	var fields []EditableField
	for _, m := range fieldRe.FindAllStringSubmatch(src, -1) {
		fieldType := m[2]
		if fieldType == "" {
			fieldType = "text"
		}
		def := m[3]
		if def == "" {
			def = m[4]
		}
		fields = append(fields, EditableField{Path: m[1], Type: fieldType, Default: def})
	}
	return fields
}

func extractBlocks(src string) []EditableBlock {
	var blocks []EditableBlock
	for _, m := range blockRe.FindAllStringSubmatch(src, -1) {
		format := m[3]
		switch format {
		case "typst", "plain":
		default:
			format = "markdown"
		}
		blocks = append(blocks, EditableBlock{
			Path:           m[1],
			Title:          m[2],
			Format:         format,
			DefaultContent: strings.TrimSpace(m[4]),
		})
	}
	return blocks
}

// ExtractDataAccess infers the data paths a template reads, for templates
// that do not use the declarative markers. The result is deduplicated and
// sorted by path; a default found on a get() accessor wins for its path.
func ExtractDataAccess(src string) []DataAccess {
	defaults := make(map[string]string)

	for _, m := range dataRe.FindAllStringSubmatch(src, -1) {
		if _, seen := defaults[m[1]]; !seen {
			defaults[m[1]] = ""
		}
	}

	for _, m := range getRe.FindAllStringSubmatch(src, -1) {
		def := m[2]
		if def == "" {
			def = m[3]
		}
		if def != "" || defaults[m[1]] == "" {
			defaults[m[1]] = def
		}
	}

	for _, m := range blocksRe.FindAllStringSubmatch(src, -1) {
		path := "blocks." + m[1]
		if _, seen := defaults[path]; !seen {
			defaults[path] = ""
		}
	}

	paths := make([]string, 0, len(defaults))
	for p := range defaults {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	accesses := make([]DataAccess, len(paths))
	for i, p := range paths {
		accesses[i] = DataAccess{Path: p, Default: defaults[p]}
	}
	return accesses
}
