package template

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleTemplate = `// @description: Quote document
// @version: 1.2.0

#editable("quote.number", type: "text", default: "2025-001")
#editable("quote.date", type: "date")
#editable("client.name")

#editable-block("blocks.intro", title: "Introduction", format: "markdown")[
  Dear customer,
]
`

func TestParseSource_Fields(t *testing.T) {
	info := ParseSource("quote.typ", sampleTemplate)

	if len(info.Fields) != 3 {
		t.Fatalf("fields = %d, want 3", len(info.Fields))
	}

	first := info.Fields[0]
	if first.Path != "quote.number" {
		t.Errorf("path = %q, want quote.number", first.Path)
	}
	if first.Default != "2025-001" {
		t.Errorf("default = %q, want 2025-001", first.Default)
	}
	if first.Type != "text" {
		t.Errorf("type = %q, want text", first.Type)
	}

	if info.Fields[1].Type != "date" {
		t.Errorf("second field type = %q, want date", info.Fields[1].Type)
	}
	// Unspecified type defaults to text.
	if info.Fields[2].Type != "text" {
		t.Errorf("third field type = %q, want text", info.Fields[2].Type)
	}
}

func TestParseSource_Blocks(t *testing.T) {
	info := ParseSource("quote.typ", sampleTemplate)

	if len(info.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(info.Blocks))
	}
	block := info.Blocks[0]
	if block.Path != "blocks.intro" {
		t.Errorf("path = %q, want blocks.intro", block.Path)
	}
	if block.Title != "Introduction" {
		t.Errorf("title = %q, want Introduction", block.Title)
	}
	if block.Format != "markdown" {
		t.Errorf("format = %q, want markdown", block.Format)
	}
	if block.DefaultContent != "Dear customer," {
		t.Errorf("default content = %q", block.DefaultContent)
	}
}

func TestParseSource_BlockFormatDefaults(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"typst", `#editable-block("blocks.x", format: "typst")[]`, "typst"},
		{"plain", `#editable-block("blocks.x", format: "plain")[]`, "plain"},
		{"unknown falls back", `#editable-block("blocks.x", format: "html")[]`, "markdown"},
		{"absent falls back", `#editable-block("blocks.x")[]`, "markdown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseSource("t.typ", tt.src)
			if len(info.Blocks) != 1 {
				t.Fatalf("blocks = %d, want 1", len(info.Blocks))
			}
			if info.Blocks[0].Format != tt.want {
				t.Errorf("format = %q, want %q", info.Blocks[0].Format, tt.want)
			}
		})
	}
}

func TestParseSource_CommentTags(t *testing.T) {
	info := ParseSource("quote.typ", sampleTemplate)
	if info.Description != "Quote document" {
		t.Errorf("description = %q", info.Description)
	}
	if info.Version != "1.2.0" {
		t.Errorf("version = %q", info.Version)
	}
	if info.ID != "quote" {
		t.Errorf("id = %q, want quote", info.ID)
	}
}

func TestExtractDataAccess(t *testing.T) {
	src := `
#data.quote.number
#text(data.client.name)
#get(data, "quote.total", default: "0.00")
#get(data, "client.city")
#blocks.intro
`
	accesses := ExtractDataAccess(src)

	want := []DataAccess{
		{Path: "blocks.intro"},
		{Path: "client.city"},
		{Path: "client.name"},
		{Path: "quote.number"},
		{Path: "quote.total", Default: "0.00"},
	}

	if len(accesses) != len(want) {
		t.Fatalf("accesses = %+v, want %d entries", accesses, len(want))
	}
	for i, w := range want {
		if accesses[i] != w {
			t.Errorf("access[%d] = %+v, want %+v", i, accesses[i], w)
		}
	}
}

func TestExtractDataAccess_AccessorDefaultWins(t *testing.T) {
	// The same path via data.* and get() keeps the get() default.
	src := `#data.quote.total #get(data, "quote.total", default: "0.00")`
	accesses := ExtractDataAccess(src)
	if len(accesses) != 1 {
		t.Fatalf("accesses = %+v, want 1 entry", accesses)
	}
	if accesses[0].Default != "0.00" {
		t.Errorf("default = %q, want 0.00", accesses[0].Default)
	}
}

func TestRegistry_Find(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quote.typ")
	if err := os.WriteFile(path, []byte(sampleTemplate), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry([]string{dir})

	tests := []struct {
		name     string
		selector string
	}{
		{"by id", "quote"},
		{"by filename", "quote.typ"},
		{"by path", path},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := r.Find(tt.selector)
			if err != nil {
				t.Fatalf("Find(%q) failed: %v", tt.selector, err)
			}
			if info.ID != "quote" {
				t.Errorf("id = %q, want quote", info.ID)
			}
		})
	}
}

func TestRegistry_FindNotFound(t *testing.T) {
	r := NewRegistry([]string{t.TempDir()})
	_, err := r.Find("missing")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestRegistry_List(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.typ", "a.typ", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("// template"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	templates := NewRegistry([]string{dir}).List()
	if len(templates) != 2 {
		t.Fatalf("list = %d entries, want 2", len(templates))
	}
	if templates[0].ID != "a" || templates[1].ID != "b" {
		t.Errorf("list not sorted by id: %s, %s", templates[0].ID, templates[1].ID)
	}
}

func TestGenerateSchema(t *testing.T) {
	info := ParseSource("quote.typ", sampleTemplate)
	schema := info.GenerateSchema()

	if schema["$schema"] != "https://json-schema.org/draft/2020-12/schema" {
		t.Errorf("$schema = %v", schema["$schema"])
	}
	if schema["description"] != "Quote document" {
		t.Errorf("description = %v", schema["description"])
	}

	props, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatal("properties missing")
	}
	for _, key := range []string{"meta", "quote", "client", "blocks"} {
		if _, ok := props[key]; !ok {
			t.Errorf("properties missing %q", key)
		}
	}

	blocks := props["blocks"].(map[string]any)["properties"].(map[string]any)
	if _, ok := blocks["intro"]; !ok {
		t.Error("blocks.intro missing from schema")
	}

	quote := props["quote"].(map[string]any)["properties"].(map[string]any)
	number, ok := quote["number"].(map[string]any)
	if !ok {
		t.Fatal("quote.number missing from schema")
	}
	if number["default"] != "2025-001" {
		t.Errorf("quote.number default = %v", number["default"])
	}
}
