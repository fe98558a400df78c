package typst

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aidanlsb/forma/internal/content"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path   string
		want   OutputFormat
		wantOK bool
	}{
		{"output.pdf", FormatPDF, true},
		{"output.svg", FormatSVG, true},
		{"output.html", FormatHTML, true},
		{"Output.PDF", FormatPDF, true},
		{"output.txt", "", false},
		{"output", "", false},
	}

	for _, tt := range tests {
		got, ok := FormatFromPath(tt.path)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestExtractPageNumber(t *testing.T) {
	tests := []struct {
		filename string
		stem     string
		want     int
		wantOK   bool
	}{
		{"quote-1.svg", "quote", 1, true},
		{"quote_12.svg", "quote", 12, true},
		{"quote.svg", "quote", 0, false},
		{"quote-x.svg", "quote", 0, false},
	}

	for _, tt := range tests {
		got, ok := extractPageNumber(tt.filename, tt.stem)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("extractPageNumber(%q, %q) = %d, %v; want %d, %v",
				tt.filename, tt.stem, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCollectSVGPages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"quote-2.svg", "quote-1.svg", "quote-10.svg", "other.svg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("<svg/>"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	pages, err := collectSVGPages(filepath.Join(dir, "quote-{p}.svg"))
	if err != nil {
		t.Fatalf("collectSVGPages failed: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("pages = %d, want 3", len(pages))
	}
	for i, want := range []int{1, 2, 10} {
		if pages[i].Page != want {
			t.Errorf("page[%d] = %d, want %d", i, pages[i].Page, want)
		}
	}
}

func TestCollectSVGPages_SingleFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "single.svg")
	if err := os.WriteFile(out, []byte("<svg/>"), 0o644); err != nil {
		t.Fatal(err)
	}

	pages, err := collectSVGPages(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 || pages[0].Page != 1 || pages[0].File != out {
		t.Errorf("pages = %+v", pages)
	}
}

func TestPrepareData(t *testing.T) {
	src := `[meta]
template = "quote.typ"

[client]
name = "ACME"

[blocks.intro]
format = "markdown"
content = "This is **bold** text"

[blocks.raw]
format = "typst"
content = "#lorem(5)"
`
	f, err := content.Parse("doc.toml", src)
	if err != nil {
		t.Fatal(err)
	}

	data, err := PrepareData(f, map[string]any{"id": "acme"})
	if err != nil {
		t.Fatalf("PrepareData failed: %v", err)
	}

	blocks := data["blocks"].(map[string]any)
	intro := blocks["intro"].(map[string]any)
	if intro["content"] != "This is *bold* text" {
		t.Errorf("markdown content = %q, want converted", intro["content"])
	}

	// Non-markdown blocks pass through untouched.
	raw := blocks["raw"].(map[string]any)
	if raw["content"] != "#lorem(5)" {
		t.Errorf("typst content = %q, want verbatim", raw["content"])
	}

	brand := data["brand"].(map[string]any)
	if brand["id"] != "acme" {
		t.Errorf("brand = %v", brand)
	}

	// The parsed file's own tree is not mutated.
	got, _ := f.GetContent("blocks.intro")
	if got != "This is **bold** text" {
		t.Errorf("source tree mutated: %q", got)
	}
}

func TestPrepareData_DefaultFormatIsMarkdown(t *testing.T) {
	src := "[meta]\ntemplate = \"t.typ\"\n\n[blocks.x]\ncontent = \"**b**\"\n"
	f, err := content.Parse("doc.toml", src)
	if err != nil {
		t.Fatal(err)
	}

	data, err := PrepareData(f, nil)
	if err != nil {
		t.Fatal(err)
	}
	x := data["blocks"].(map[string]any)["x"].(map[string]any)
	if x["content"] != "*b*" {
		t.Errorf("content = %q, want *b*", x["content"])
	}
	if _, ok := data["brand"]; ok {
		t.Error("brand key present without brand data")
	}
}

func TestEnhanceErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   string
	}{
		{
			name:   "json misuse hint",
			stderr: "error: file name too long: json(sys.inputs.at(\"data\"))",
			want:   "json.decode",
		},
		{
			name:   "syntax hint",
			stderr: "error: expected expression, found ']'",
			want:   "syntax error",
		},
		{
			name:   "missing import hint",
			stderr: "error: unknown variable: editable",
			want:   "@local/forma-lib",
		},
		{
			name:   "missing key hint",
			stderr: "error: missing key \"total\"",
			want:   "content file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := enhanceErrorMessage(tt.stderr)
			if !strings.Contains(got, tt.want) {
				t.Errorf("missing hint %q in:\n%s", tt.want, got)
			}
			if !strings.HasPrefix(got, tt.stderr) {
				t.Error("raw stderr not preserved first")
			}
		})
	}

	plain := "error: something odd"
	if got := enhanceErrorMessage(plain); got != plain {
		t.Errorf("unmatched stderr altered: %q", got)
	}
}

func TestWarningsOnly(t *testing.T) {
	if !warningsOnly("warning: unused import\n\nwarning: deprecated") {
		t.Error("warnings-only stderr misclassified")
	}
	if warningsOnly("warning: x\nerror: y") {
		t.Error("error line missed")
	}
}
