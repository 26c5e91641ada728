package markdown

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/langdocs/internal/domain"
)

// RenderEntry renders an entry as a self-contained markdown document.
// Code fences are tagged with the language id.
func RenderEntry(language string, e domain.Entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", e.Title)
	fmt.Fprintf(&b, "_%s_", e.Difficulty)
	if len(e.Tags) > 0 {
		fmt.Fprintf(&b, " · %s", strings.Join(e.Tags, ", "))
	}
	b.WriteString("\n\n")

	if e.Summary != "" {
		b.WriteString(e.Summary)
		b.WriteString("\n\n")
	}
	if e.Signature != "" {
		fmt.Fprintf(&b, "```%s\n%s\n```\n\n", language, strings.TrimSuffix(e.Signature, "\n"))
	}

	for _, s := range e.Sections {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", s.Heading, strings.TrimSpace(s.Content))

		if s.HasCode() {
			fmt.Fprintf(&b, "```%s\n%s\n```\n\n", language, strings.TrimSuffix(s.Code, "\n"))
			if len(s.CodeHighlightLines) > 0 {
				fmt.Fprintf(&b, "Highlighted lines: %s\n\n", joinInts(s.CodeHighlightLines))
			}
		}
		if s.Output != "" {
			fmt.Fprintf(&b, "Output:\n\n```\n%s\n```\n\n", strings.TrimSuffix(s.Output, "\n"))
		}

		callout(&b, "Tip", s.Tip)
		callout(&b, "Warning", s.Warning)
		callout(&b, "Note", s.Note)
		callout(&b, "Analogy", s.Analogy)

		if m, ok := s.Diagram.(domain.MermaidDiagram); ok {
			fmt.Fprintf(&b, "```mermaid\n%s\n```\n\n", strings.TrimSuffix(m.Code, "\n"))
		}
		if c, ok := s.Diagram.(domain.CustomDiagram); ok {
			fmt.Fprintf(&b, "_Diagram: %s", c.Kind)
			if c.Caption != "" {
				fmt.Fprintf(&b, ", %s", c.Caption)
			}
			b.WriteString("_\n\n")
		}
	}

	if len(e.Quiz) > 0 {
		b.WriteString("## Quiz\n\n")
		for i, q := range e.Quiz {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q.Question)
			for j, o := range q.Options {
				mark := " "
				if j == q.CorrectIndex {
					mark = "x"
				}
				fmt.Fprintf(&b, "   - [%s] %s\n", mark, o)
			}
			if q.Explanation != "" {
				fmt.Fprintf(&b, "\n   %s\n", q.Explanation)
			}
			b.WriteString("\n")
		}
	}

	if e.Challenge != nil {
		fmt.Fprintf(&b, "## Challenge\n\n%s\n\n", strings.TrimSpace(e.Challenge.Prompt))
		if e.Challenge.StarterCode != "" {
			fmt.Fprintf(&b, "```%s\n%s\n```\n\n", language, strings.TrimSuffix(e.Challenge.StarterCode, "\n"))
		}
		for _, h := range e.Challenge.Hints {
			fmt.Fprintf(&b, "- Hint: %s\n", h)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func callout(b *strings.Builder, label, text string) {
	if text == "" {
		return
	}
	fmt.Fprintf(b, "> **%s:** %s\n\n", label, strings.TrimSpace(text))
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}
