// Package content models forma content files: a TOML document with a
// required [meta] section, an optional [blocks] table of named sub-documents,
// and arbitrary additional data tables.
//
// Every parse rebuilds a flat index of addressable blocks and fields keyed by
// dotted path. The index is never patched incrementally; after a write the
// caller reloads the file.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// BlockKind distinguishes named blocks from plain data fields.
type BlockKind string

const (
	// KindBlock is a named sub-document under the [blocks] table.
	KindBlock BlockKind = "block"
	// KindField is any other addressable scalar leaf.
	KindField BlockKind = "field"
)

// BlockInfo is one entry of the flat path index.
type BlockInfo struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Title     string    `json:"title,omitempty"`
	Kind      BlockKind `json:"kind"`
	Format    string    `json:"format,omitempty"`
	BlockType string    `json:"type,omitempty"`
}

// Meta is the required [meta] section of a content file.
type Meta struct {
	Template         string
	ResolvedTemplate string
	TemplateID       string
	TemplateVersion  string
	GeneratedAt      *time.Time
}

// File is a parsed content file together with its path index.
type File struct {
	// Path is where the file was loaded from.
	Path string
	// Meta is the parsed [meta] section.
	Meta Meta

	root  Value
	index map[string]BlockInfo
}

// Load reads and parses a content file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &FileNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("reading content file %s: %w", path, err)
	}
	return Parse(path, string(data))
}

// Parse parses content file source. The path is recorded for template
// resolution and cache bookkeeping; the file need not exist on disk.
func Parse(path, src string) (*File, error) {
	var raw map[string]any
	if err := toml.Unmarshal([]byte(src), &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	root := Wrap(anyTree(raw))

	meta, err := extractMeta(root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	meta.ResolvedTemplate = resolveTemplatePath(path, meta.Template)

	f := &File{
		Path: path,
		Meta: meta,
		root: root,
	}
	f.buildIndex()
	return f, nil
}

func extractMeta(root Value) (Meta, error) {
	metaValue, ok := root.Get("meta")
	if !ok || !metaValue.IsTable() {
		return Meta{}, fmt.Errorf("missing [meta] section in content file")
	}

	template := stringAt(metaValue, "template")
	if template == "" {
		return Meta{}, fmt.Errorf("missing meta.template field")
	}

	meta := Meta{
		Template:        template,
		TemplateID:      stringAt(metaValue, "template_id"),
		TemplateVersion: stringAt(metaValue, "template_version"),
	}

	if v, ok := metaValue.Get("generated_at"); ok {
		switch raw := v.Raw().(type) {
		case time.Time:
			t := raw.UTC()
			meta.GeneratedAt = &t
		case string:
			if t, err := time.Parse(time.RFC3339, raw); err == nil {
				t = t.UTC()
				meta.GeneratedAt = &t
			}
		}
	}

	return meta, nil
}

// resolveTemplatePath resolves a relative template reference against the
// content file's directory. The result may not exist; template directory
// search happens later.
func resolveTemplatePath(contentPath, template string) string {
	if filepath.IsAbs(template) {
		return template
	}
	dir := filepath.Dir(contentPath)
	resolved := filepath.Join(dir, template)
	if abs, err := filepath.Abs(resolved); err == nil {
		if _, statErr := os.Stat(abs); statErr == nil {
			return abs
		}
	}
	return resolved
}

// buildIndex rebuilds the flat path index from scratch.
//
// Fields are registered first and blocks last, so on a structural collision
// between a blocks.* entry and a same-named field path the block entry wins
// deterministically.
func (f *File) buildIndex() {
	f.index = make(map[string]BlockInfo)

	if table, ok := f.root.AsTable(); ok {
		for key, child := range table {
			if key == "meta" || key == "blocks" {
				continue
			}
			f.indexFields(key, child)
		}
	}

	blocks, ok := f.root.Get("blocks")
	if !ok {
		return
	}
	blockTable, ok := blocks.AsTable()
	if !ok {
		return
	}
	for name, block := range blockTable {
		path := "blocks." + name
		f.index[path] = BlockInfo{
			ID:        path,
			Path:      path,
			Title:     stringAt(block, "title"),
			Kind:      KindBlock,
			Format:    stringAt(block, "format"),
			BlockType: stringAt(block, "type"),
		}
	}
}

// indexFields walks a data subtree, registering every non-table leaf.
func (f *File) indexFields(prefix string, value Value) {
	table, ok := value.AsTable()
	if !ok {
		f.index[prefix] = BlockInfo{
			ID:   prefix,
			Path: prefix,
			Kind: KindField,
		}
		return
	}
	for key, child := range table {
		f.indexFields(prefix+"."+key, child)
	}
}

// Get returns the raw value at a dotted path.
func (f *File) Get(path string) (Value, bool) {
	return f.root.Get(path)
}

// Root returns the whole content tree.
func (f *File) Root() Value {
	return f.root
}

// GetContent returns the display content at a concrete path.
//
// Block tables carrying a "content" key yield that key's string value;
// scalars use their canonical textual form.
func (f *File) GetContent(path string) (string, error) {
	value, ok := f.root.Get(path)
	if !ok {
		return "", &PathNotFoundError{Path: path}
	}
	return value.Display(), nil
}

// BlockInfo returns the index entry at a path, if any.
func (f *File) BlockInfo(path string) (BlockInfo, bool) {
	info, ok := f.index[path]
	return info, ok
}

// FindByTitle resolves a human title to its unique index entry.
// Matching is exact and case-sensitive; multiple matches are an error
// carrying every colliding path.
func (f *File) FindByTitle(title string) (BlockInfo, error) {
	var matches []BlockInfo
	for _, info := range f.index {
		if info.Title != "" && info.Title == title {
			matches = append(matches, info)
		}
	}

	switch len(matches) {
	case 0:
		return BlockInfo{}, &TitleNotFoundError{Title: title}
	case 1:
		return matches[0], nil
	default:
		paths := make([]string, len(matches))
		for i, m := range matches {
			paths[i] = m.Path
		}
		sort.Strings(paths)
		return BlockInfo{}, &AmbiguousTitleError{Title: title, Matches: paths}
	}
}

// ResolvePath resolves a user-facing selector to a canonical path.
// An exact index key wins over title matching, even when the selector also
// equals some block's title.
func (f *File) ResolvePath(pathOrTitle string) (string, error) {
	if _, ok := f.index[pathOrTitle]; ok {
		return pathOrTitle, nil
	}
	info, err := f.FindByTitle(pathOrTitle)
	if err != nil {
		return "", err
	}
	return info.Path, nil
}

// ListBlocks returns every index entry sorted by path.
func (f *File) ListBlocks() []BlockInfo {
	blocks := make([]BlockInfo, 0, len(f.index))
	for _, info := range f.index {
		blocks = append(blocks, info)
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Path < blocks[j].Path })
	return blocks
}

// TemplatePath returns the effective template path for compilation.
func (f *File) TemplatePath() string {
	if f.Meta.ResolvedTemplate != "" {
		return f.Meta.ResolvedTemplate
	}
	return f.Meta.Template
}

// FileNotFoundError indicates a missing file on disk.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

func stringAt(table Value, key string) string {
	v, ok := table.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.AsString()
	return s
}

// anyTree normalizes BurntSushi's decoded shapes ([]map[string]any for
// arrays of tables) into the plain any/map/slice forms Value expects.
func anyTree(raw any) any {
	switch v := raw.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, child := range v {
			out[key] = anyTree(child)
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, child := range v {
			out[i] = anyTree(child)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, child := range v {
			out[i] = anyTree(child)
		}
		return out
	default:
		return raw
	}
}

// BlockFormats are the accepted values of a block's format key.
var BlockFormats = []string{"markdown", "typst", "plain"}

// ValidBlockFormat reports whether a format string is recognized.
func ValidBlockFormat(format string) bool {
	for _, f := range BlockFormats {
		if f == format {
			return true
		}
	}
	return false
}

// TrimBlocksPrefix strips the "blocks." prefix from a block path.
func TrimBlocksPrefix(path string) string {
	return strings.TrimPrefix(path, "blocks.")
}
