package content

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Builder synthesizes a fresh content file in canonical section order:
// [meta] first, data sections next, [blocks.*] last. It is write-only; the
// output is meant to be parsed back through Parse.
type Builder struct {
	template        string
	templateID      string
	templateVersion string
	now             func() time.Time

	fields []builderField
	blocks []builderBlock
}

type builderField struct {
	path  string
	value any
}

type builderBlock struct {
	name      string
	title     string
	format    string
	blockType string
	content   string
}

// NewBuilder starts a content file referencing a template.
func NewBuilder(template string) *Builder {
	return &Builder{
		template: template,
		now:      time.Now,
	}
}

// SetTemplateID records template provenance in [meta].
func (b *Builder) SetTemplateID(id, version string) {
	b.templateID = id
	b.templateVersion = version
}

// AddField adds a scalar data field at a dotted path.
func (b *Builder) AddField(path string, value any) {
	b.fields = append(b.fields, builderField{path: path, value: value})
}

// AddBlock adds a named block with its metadata and initial content.
func (b *Builder) AddBlock(name, title, format, blockType, content string) {
	b.blocks = append(b.blocks, builderBlock{
		name:      name,
		title:     title,
		format:    format,
		blockType: blockType,
		content:   content,
	})
}

// Build renders the TOML source.
func (b *Builder) Build() (string, error) {
	if b.template == "" {
		return "", fmt.Errorf("content builder: template is required")
	}

	var out strings.Builder

	// Pathless fields must precede the first section header.
	var rootFields, sectioned []builderField
	for _, f := range b.fields {
		if strings.Contains(f.path, ".") {
			sectioned = append(sectioned, f)
		} else {
			rootFields = append(rootFields, f)
		}
	}
	for _, f := range rootFields {
		enc, err := encodeScalar(f.value)
		if err != nil {
			return "", fmt.Errorf("field %s: %w", f.path, err)
		}
		fmt.Fprintf(&out, "%s = %s\n", f.path, enc)
	}
	if len(rootFields) > 0 {
		out.WriteString("\n")
	}

	out.WriteString("[meta]\n")
	fmt.Fprintf(&out, "template = %s\n", encodeString(b.template))
	if b.templateID != "" {
		fmt.Fprintf(&out, "template_id = %s\n", encodeString(b.templateID))
	}
	if b.templateVersion != "" {
		fmt.Fprintf(&out, "template_version = %s\n", encodeString(b.templateVersion))
	}
	fmt.Fprintf(&out, "generated_at = %s\n", encodeString(b.now().UTC().Format(time.RFC3339)))

	// Group dotted fields by top-level section, keeping first-seen section
	// order and first-seen key order within a section.
	var sectionOrder []string
	sections := make(map[string][]builderField)
	for _, f := range sectioned {
		section, rest, _ := strings.Cut(f.path, ".")
		if _, seen := sections[section]; !seen {
			sectionOrder = append(sectionOrder, section)
		}
		sections[section] = append(sections[section], builderField{path: rest, value: f.value})
	}
	for _, section := range sectionOrder {
		fmt.Fprintf(&out, "\n[%s]\n", section)
		for _, f := range sections[section] {
			enc, err := encodeScalar(f.value)
			if err != nil {
				return "", fmt.Errorf("field %s.%s: %w", section, f.path, err)
			}
			fmt.Fprintf(&out, "%s = %s\n", f.path, enc)
		}
	}

	blocks := append([]builderBlock(nil), b.blocks...)
	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].name < blocks[j].name })
	for _, blk := range blocks {
		fmt.Fprintf(&out, "\n[blocks.%s]\n", blk.name)
		if blk.title != "" {
			fmt.Fprintf(&out, "title = %s\n", encodeString(blk.title))
		}
		if blk.format != "" {
			fmt.Fprintf(&out, "format = %s\n", encodeString(blk.format))
		}
		if blk.blockType != "" {
			fmt.Fprintf(&out, "type = %s\n", encodeString(blk.blockType))
		}
		fmt.Fprintf(&out, "content = %s\n", encodeMultiline(blk.content))
	}

	return out.String(), nil
}

// encodeScalar renders a Go scalar as a TOML value.
func encodeScalar(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return encodeString(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case nil:
		return encodeString(""), nil
	default:
		return "", fmt.Errorf("unsupported field value type %T", value)
	}
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

// encodeMultiline prefers a triple-quoted string for block content that spans
// lines, keeping the file pleasant to edit by hand.
func encodeMultiline(s string) string {
	if !strings.Contains(s, "\n") {
		return encodeString(s)
	}
	if strings.Contains(s, `"""`) || strings.HasSuffix(s, `"`) || strings.Contains(s, `\`) {
		return encodeString(s)
	}
	return "\"\"\"\n" + s + "\n\"\"\""
}
