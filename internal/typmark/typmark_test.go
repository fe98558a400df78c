package typmark

import (
	"strings"
	"testing"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			name:     "plain text",
			markdown: "Hello world",
			want:     "Hello world",
		},
		{
			name:     "bold",
			markdown: "This is **bold** text",
			want:     "This is *bold* text",
		},
		{
			name:     "italic",
			markdown: "This is *italic* text",
			want:     "This is _italic_ text",
		},
		{
			name:     "heading level one",
			markdown: "# Heading",
			want:     "= Heading",
		},
		{
			name:     "heading level three",
			markdown: "### Deep",
			want:     "=== Deep",
		},
		{
			name:     "inline code unescaped",
			markdown: "Use `a_b` here",
			want:     "Use `a_b` here",
		},
		{
			name:     "strikethrough",
			markdown: "~~gone~~",
			want:     "#strike[gone]",
		},
		{
			name:     "link",
			markdown: "[site](https://example.com)",
			want:     `#link("https://example.com")[site]`,
		},
		{
			name:     "image",
			markdown: "![alt](logo.png)",
			want:     `#image("logo.png")`,
		},
		{
			name:     "escaping in text",
			markdown: "Price: $100 #tag",
			want:     `Price: \$100 \#tag`,
		},
		{
			name:     "soft break joins with space",
			markdown: "one\ntwo",
			want:     "one two",
		},
		{
			name:     "hard break",
			markdown: "one  \ntwo",
			want:     "one \\\ntwo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Convert(tt.markdown); got != tt.want {
				t.Errorf("Convert(%q) = %q, want %q", tt.markdown, got, tt.want)
			}
		})
	}
}

func TestConvert_List(t *testing.T) {
	got := Convert("- Item 1\n- Item 2")
	if !strings.Contains(got, "- Item 1") || !strings.Contains(got, "- Item 2") {
		t.Errorf("list items missing:\n%s", got)
	}
}

func TestConvert_NestedList(t *testing.T) {
	got := Convert("- outer\n  - inner")
	if !strings.Contains(got, "- outer") {
		t.Errorf("outer item missing:\n%s", got)
	}
	if !strings.Contains(got, "  - inner") {
		t.Errorf("inner item not indented:\n%s", got)
	}
}

func TestConvert_Blockquote(t *testing.T) {
	got := Convert("> quoted")
	if !strings.HasPrefix(got, "#quote[\n") {
		t.Errorf("quote open missing:\n%s", got)
	}
	if !strings.Contains(got, "quoted") || !strings.Contains(got, "]") {
		t.Errorf("quote body or close missing:\n%s", got)
	}
}

func TestConvert_CodeBlockVerbatim(t *testing.T) {
	got := Convert("```\nlet x = $a * b$;\n```")
	want := "```\nlet x = $a * b$;\n```"
	if got != want {
		t.Errorf("code block = %q, want %q", got, want)
	}
}

func TestConvert_Table(t *testing.T) {
	got := Convert("| A | B |\n|---|---|\n| 1 | 2 |")
	if !strings.Contains(got, "#table(\n  columns: (auto, auto),") {
		t.Errorf("table header missing:\n%s", got)
	}
	for _, cell := range []string{"[A]", "[B]", "[1]", "[2]"} {
		if !strings.Contains(got, cell) {
			t.Errorf("cell %s missing:\n%s", cell, got)
		}
	}
}

func TestConvert_Rule(t *testing.T) {
	got := Convert("before\n\n---\n\nafter")
	if !strings.Contains(got, "#line(length: 100%)") {
		t.Errorf("rule missing:\n%s", got)
	}
}

func TestConvert_NoTrailingNewline(t *testing.T) {
	for _, src := range []string{"# H", "para text", "- a\n- b"} {
		if got := Convert(src); strings.HasSuffix(got, "\n") {
			t.Errorf("Convert(%q) has trailing newline: %q", src, got)
		}
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"Price: $100 #tag", `Price: \$100 \#tag`},
		{"a*b_c`d", "a\\*b\\_c\\`d"},
		{"<x> @y [z]", `\<x\> \@y \[z\]`},
	}

	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
