// Package tomledit performs format-preserving edits on TOML documents.
//
// Unlike a decode/encode round trip, edits here touch only the lines that
// carry the mutated value: comments, key ordering, blank lines, and the
// formatting of every sibling survive byte-for-byte. The model is
// line-oriented: the document is a list of raw lines plus an index of
// section headers and key assignments rebuilt after every mutation.
//
// Arrays of tables and inline tables are treated as opaque values: they can
// be replaced wholesale but not navigated into.
package tomledit

import (
	"fmt"
	"sort"
	"strings"
)

// PathNotFoundError indicates a set that would navigate through a non-table
// node, an array of tables, or an inline table.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path not found: %s", e.Path)
}

// Document is an editable TOML document.
type Document struct {
	lines           []string
	trailingNewline bool

	sections []*section
	assigns  map[string]*assignRef
	tables   map[string]bool
	arrays   map[string]bool
}

// section is a header-delimited region. The root region before the first
// header is modeled as a section with an empty name and no header line.
type section struct {
	name   string
	array  bool
	header int // line index, -1 for root
	start  int // first body line
	end    int // one past last body line
	keys   []*assignment
}

// assignment is one key = value entry; the value may span multiple lines.
type assignment struct {
	key       string // dotted key relative to the section
	startLine int
	endLine   int // inclusive
}

type assignRef struct {
	sec *section
	a   *assignment
}

// Parse builds an editable document from TOML source. Parsing is lenient:
// lines it cannot classify are preserved verbatim and skipped by the index.
// Callers that need validation parse the same source with a real decoder
// first.
func Parse(src string) *Document {
	d := &Document{trailingNewline: strings.HasSuffix(src, "\n")}
	d.lines = strings.Split(src, "\n")
	if d.trailingNewline {
		d.lines = d.lines[:len(d.lines)-1]
	}
	d.reindex()
	return d
}

// String renders the document. Untouched lines are emitted exactly as read.
func (d *Document) String() string {
	out := strings.Join(d.lines, "\n")
	if d.trailingNewline {
		out += "\n"
	}
	return out
}

// reindex rebuilds sections and lookup maps from the raw lines.
func (d *Document) reindex() {
	root := &section{name: "", header: -1, start: 0, end: len(d.lines)}
	d.sections = []*section{root}
	current := root

	for i := 0; i < len(d.lines); i++ {
		line := d.lines[i]
		trimmed := strings.TrimSpace(line)

		if name, array, ok := parseHeader(trimmed); ok {
			current.end = i
			current = &section{name: name, array: array, header: i, start: i + 1, end: len(d.lines)}
			d.sections = append(d.sections, current)
			continue
		}

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, valueCol, ok := parseAssignmentKey(line)
		if !ok {
			continue
		}
		endLine, _ := scanValue(d.lines, i, valueCol)
		current.keys = append(current.keys, &assignment{key: key, startLine: i, endLine: endLine})
		i = endLine
	}

	d.assigns = make(map[string]*assignRef)
	d.tables = make(map[string]bool)
	d.arrays = make(map[string]bool)

	for _, sec := range d.sections {
		if sec.name != "" {
			if sec.array {
				d.arrays[sec.name] = true
			} else {
				d.tables[sec.name] = true
			}
			addPrefixes(d.tables, sec.name)
		}
		if sec.array {
			// Keys inside arrays of tables are not addressable.
			continue
		}
		for _, a := range sec.keys {
			full := joinPath(sec.name, a.key)
			if _, taken := d.assigns[full]; !taken {
				d.assigns[full] = &assignRef{sec: sec, a: a}
			}
			addPrefixes(d.tables, full)
		}
	}
}

// addPrefixes marks every proper dotted prefix of path as a table.
func addPrefixes(tables map[string]bool, path string) {
	for i := strings.LastIndex(path, "."); i > 0; i = strings.LastIndex(path[:i], ".") {
		tables[path[:i]] = true
	}
}

func joinPath(base, rel string) string {
	if base == "" {
		return rel
	}
	return base + "." + rel
}

// Set writes a string value at a dotted path.
//
// If the path names a table that carries a `content` key the mutation is
// redirected to that key, so block metadata siblings survive. A missing
// parent table is created. Replacing an existing scalar rewrites only its
// value text, keeping indentation and any trailing comment.
func (d *Document) Set(path, value string) error {
	if path == "" {
		return &PathNotFoundError{Path: path}
	}

	// Block tables redirect writes to their content key.
	if d.tables[path] && d.assigns[path+".content"] != nil {
		path += ".content"
	}

	if ref, ok := d.assigns[path]; ok {
		d.replaceValue(ref, value)
		d.reindex()
		return nil
	}

	// Refuse to tunnel through scalars, inline tables, or arrays of tables.
	for i := strings.IndexByte(path, '.'); i > 0; {
		prefix := path[:i]
		if _, isScalar := d.assigns[prefix]; isScalar {
			return &PathNotFoundError{Path: path}
		}
		if d.arrays[prefix] {
			return &PathNotFoundError{Path: path}
		}
		rest := strings.IndexByte(path[i+1:], '.')
		if rest < 0 {
			break
		}
		i += 1 + rest
	}
	if d.arrays[path] {
		return &PathNotFoundError{Path: path}
	}

	// A plain table at the terminal segment is overwritten by the scalar.
	if d.tables[path] {
		d.removeTable(path)
	}

	d.insertAssignment(path, value)
	d.reindex()
	return nil
}

// SetAll applies several path -> value mutations to the one document.
// Paths apply in sorted order so the result is deterministic.
func (d *Document) SetAll(values map[string]string) error {
	paths := make([]string, 0, len(values))
	for p := range values {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		if err := d.Set(p, values[p]); err != nil {
			return err
		}
	}
	return nil
}

// replaceValue rewrites an assignment's value text in place.
func (d *Document) replaceValue(ref *assignRef, value string) {
	a := ref.a
	first := d.lines[a.startLine]
	_, valueCol, _ := parseAssignmentKey(first)
	endLine, endCol := scanValue(d.lines, a.startLine, valueCol)

	prefix := first[:valueCol]
	suffix := ""
	if endLine < len(d.lines) && endCol <= len(d.lines[endLine]) {
		suffix = d.lines[endLine][endCol:]
	}

	newLine := prefix + encodeString(value) + suffix
	d.lines[a.startLine] = newLine
	if endLine > a.startLine {
		d.lines = append(d.lines[:a.startLine+1], d.lines[endLine+1:]...)
	}
}

// removeTable deletes the section(s) and dotted assignments rooted at path.
func (d *Document) removeTable(path string) {
	type span struct{ start, end int } // [start, end)
	var spans []span

	childPrefix := path + "."
	for _, sec := range d.sections {
		if sec.name == path || strings.HasPrefix(sec.name, childPrefix) {
			spans = append(spans, span{sec.header, sec.end})
			continue
		}
		for _, a := range sec.keys {
			full := joinPath(sec.name, a.key)
			if strings.HasPrefix(full, childPrefix) {
				spans = append(spans, span{a.startLine, a.endLine + 1})
			}
		}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start > spans[j].start })
	for _, s := range spans {
		d.lines = append(d.lines[:s.start], d.lines[s.end:]...)
	}
	d.reindex()
}

// insertAssignment places `last = value` under the table named by the
// path's parent, creating the section when no exact match exists.
func (d *Document) insertAssignment(path, value string) {
	parent := ""
	last := path
	if i := strings.LastIndex(path, "."); i > 0 {
		parent = path[:i]
		last = path[i+1:]
	}

	line := fmt.Sprintf("%s = %s", last, encodeString(value))

	for _, sec := range d.sections {
		if sec.name == parent && !sec.array {
			at := sec.end
			// Keep trailing blank lines after the new assignment.
			for at > sec.start && strings.TrimSpace(d.lines[at-1]) == "" {
				at--
			}
			d.lines = append(d.lines[:at], append([]string{line}, d.lines[at:]...)...)
			return
		}
	}

	header := fmt.Sprintf("[%s]", parent)
	if len(d.lines) > 0 && strings.TrimSpace(d.lines[len(d.lines)-1]) != "" {
		d.lines = append(d.lines, "")
	}
	d.lines = append(d.lines, header, line)
	d.trailingNewline = true
}

// encodeString renders a TOML basic string on a single line.
func encodeString(s string) string {
	var out strings.Builder
	out.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			out.WriteString(`\"`)
		case '\\':
			out.WriteString(`\\`)
		case '\n':
			out.WriteString(`\n`)
		case '\r':
			out.WriteString(`\r`)
		case '\t':
			out.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&out, `\u%04X`, r)
			} else {
				out.WriteRune(r)
			}
		}
	}
	out.WriteByte('"')
	return out.String()
}
