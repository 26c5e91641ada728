// Package markdown turns entry prose into plain text for search and renders
// entries back to markdown for text-only consumers.
package markdown

import (
	"strings"

	gm "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	gmparser "github.com/gomarkdown/markdown/parser"

	"github.com/MrSnakeDoc/langdocs/internal/domain"
)

// PlainText strips markdown formatting and collapses whitespace.
// Example: "Use **`StringBuilder`** in [loops](#loops)" -> "Use StringBuilder in loops"
func PlainText(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}

	doc := gm.Parse([]byte(src), gmparser.NewWithExtensions(
		gmparser.CommonExtensions|gmparser.Autolink,
	))

	var b strings.Builder
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			switch node.(type) {
			case *ast.Paragraph, *ast.Heading, *ast.ListItem, *ast.TableCell:
				b.WriteString(" ")
			}
			return ast.GoToNext
		}
		switch n := node.(type) {
		case *ast.Text:
			b.Write(n.Literal)
		case *ast.Code:
			b.Write(n.Literal)
		case *ast.CodeBlock:
			b.Write(n.Literal)
			b.WriteString(" ")
		case *ast.Softbreak, *ast.Hardbreak:
			b.WriteString(" ")
		}
		return ast.GoToNext
	})

	return strings.Join(strings.Fields(b.String()), " ")
}

// EntryText returns the plain text of every prose field of an entry.
// Code samples are left out so identifiers in examples do not drown the ranking.
func EntryText(e domain.Entry) string {
	parts := make([]string, 0, len(e.Sections)*2)
	for _, s := range e.Sections {
		for _, field := range []string{s.Heading, s.Content, s.Tip, s.Warning, s.Note, s.Analogy} {
			if t := PlainText(field); t != "" {
				parts = append(parts, t)
			}
		}
	}
	return strings.Join(parts, " ")
}
