// Package typmark converts Markdown block content to Typst markup.
//
// The conversion covers the Markdown subset blocks are written in: headings,
// emphasis, lists, quotes, code, links, images, tables (GFM), strikethrough,
// and rules. Output is plain Typst markup text; conversion never fails.
package typmark

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var parser = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough, extension.Table),
)

// Convert renders Markdown source as Typst markup.
func Convert(markdown string) string {
	src := []byte(markdown)
	doc := parser.Parser().Parse(text.NewReader(src))

	c := &converter{src: src}
	_ = ast.Walk(doc, c.walk)
	return c.finish()
}

type converter struct {
	src       []byte
	out       strings.Builder
	listDepth int
}

func (c *converter) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Heading:
		if entering {
			c.out.WriteString(strings.Repeat("=", node.Level))
			c.out.WriteByte(' ')
		} else {
			c.out.WriteByte('\n')
		}

	case *ast.Paragraph:
		if !entering {
			c.out.WriteString("\n\n")
		}

	case *ast.TextBlock:
		// Tight list item body; the item itself terminates the line.

	case *ast.Blockquote:
		if entering {
			c.out.WriteString("#quote[\n")
		} else {
			c.out.WriteString("]\n")
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			c.out.WriteString("```\n")
			c.writeLines(n)
			c.out.WriteString("```\n")
		}
		return ast.WalkSkipChildren, nil

	case *ast.List:
		if entering {
			c.listDepth++
		} else {
			c.listDepth--
			if c.listDepth == 0 {
				c.out.WriteByte('\n')
			}
		}

	case *ast.ListItem:
		if entering {
			c.out.WriteString(strings.Repeat("  ", c.listDepth-1))
			c.out.WriteString("- ")
		} else {
			c.out.WriteByte('\n')
		}

	case *ast.Emphasis:
		marker := "_"
		if node.Level == 2 {
			marker = "*"
		}
		c.out.WriteString(marker)

	case *east.Strikethrough:
		if entering {
			c.out.WriteString("#strike[")
		} else {
			c.out.WriteByte(']')
		}

	case *ast.Link:
		if entering {
			c.out.WriteString("#link(\"")
			c.out.Write(node.Destination)
			c.out.WriteString("\")[")
		} else {
			c.out.WriteByte(']')
		}

	case *ast.AutoLink:
		if entering {
			url := node.URL(c.src)
			c.out.WriteString("#link(\"")
			c.out.Write(url)
			c.out.WriteString("\")[")
			c.out.WriteString(Escape(string(node.Label(c.src))))
			c.out.WriteByte(']')
		}
		return ast.WalkSkipChildren, nil

	case *ast.Image:
		if entering {
			c.out.WriteString("#image(\"")
			c.out.Write(node.Destination)
			c.out.WriteString("\")")
		}
		return ast.WalkSkipChildren, nil

	case *ast.CodeSpan:
		if entering {
			c.out.WriteByte('`')
			c.out.WriteString(c.nodeText(n))
			c.out.WriteByte('`')
		}
		return ast.WalkSkipChildren, nil

	case *east.Table:
		if entering {
			c.out.WriteString("#table(\n  columns: (")
			for i := range node.Alignments {
				if i > 0 {
					c.out.WriteString(", ")
				}
				c.out.WriteString("auto")
			}
			c.out.WriteString("),\n")
		} else {
			c.out.WriteString(")\n")
		}

	case *east.TableHeader, *east.TableRow:
		if !entering {
			c.out.WriteByte('\n')
		}

	case *east.TableCell:
		if entering {
			c.out.WriteString("  [")
		} else {
			c.out.WriteString("],")
		}

	case *ast.ThematicBreak:
		if entering {
			c.out.WriteString("#line(length: 100%)\n")
		}

	case *ast.Text:
		if entering {
			c.out.WriteString(Escape(string(node.Segment.Value(c.src))))
			if node.HardLineBreak() {
				c.out.WriteString(" \\\n")
			} else if node.SoftLineBreak() {
				c.out.WriteByte(' ')
			}
		}

	case *ast.String:
		if entering {
			c.out.WriteString(Escape(string(node.Value)))
		}
	}

	return ast.WalkContinue, nil
}

// writeLines emits a code block's raw source lines without escaping.
func (c *converter) writeLines(n ast.Node) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		c.out.Write(seg.Value(c.src))
	}
}

// nodeText collects the literal text under a node, unescaped.
func (c *converter) nodeText(n ast.Node) string {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			b.Write(t.Segment.Value(c.src))
		}
	}
	return b.String()
}

func (c *converter) finish() string {
	return strings.TrimRight(c.out.String(), "\n")
}

// Escape escapes characters Typst treats as markup in plain text.
func Escape(s string) string {
	var out strings.Builder
	out.Grow(len(s))
	for _, r := range s {
		switch r {
		case '#', '$', '*', '_', '`', '<', '>', '@', '[', ']':
			out.WriteByte('\\')
		}
		out.WriteRune(r)
	}
	return out.String()
}
