package markdown

import (
	"strings"
	"testing"

	"github.com/MrSnakeDoc/langdocs/internal/domain"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "  ", expected: ""},
		{name: "plain", input: "Strings are immutable.", expected: "Strings are immutable."},
		{name: "emphasis and code", input: "Use **`StringBuilder`** in loops", expected: "Use StringBuilder in loops"},
		{name: "link", input: "See [the docs](https://dev.java) now", expected: "See the docs now"},
		{name: "paragraphs", input: "First.\n\nSecond.", expected: "First. Second."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestEntryTextSkipsCode(t *testing.T) {
	e := domain.Entry{Sections: []domain.Section{{
		Heading: "Loops",
		Content: "Iterate with *for*.",
		Code:    "for (int i = 0; i < n; i++) {}",
		Tip:     "Prefer enhanced for.",
	}}}

	got := EntryText(e)
	if got != "Loops Iterate with for. Prefer enhanced for." {
		t.Errorf("unexpected text %q", got)
	}
}

func TestRenderEntry(t *testing.T) {
	e := domain.Entry{
		ID:         "strings",
		Title:      "Strings",
		Difficulty: domain.DifficultyBeginner,
		Tags:       []string{"text"},
		Summary:    "Immutable text.",
		Sections: []domain.Section{{
			Heading: "Creating",
			Content: "Use literals.",
			Code:    "String s = \"hi\";\n",
			Output:  "hi",
			Tip:     "Literals are interned.",
			Diagram: domain.MermaidDiagram{Code: "graph TD; A-->B"},
		}},
		Quiz: []domain.QuizItem{{Question: "Mutable?", Options: []string{"yes", "no"}, CorrectIndex: 1}},
	}

	out := RenderEntry("java", e)

	for _, want := range []string{
		"# Strings\n",
		"```java\nString s = \"hi\";\n```",
		"> **Tip:** Literals are interned.",
		"```mermaid\ngraph TD; A-->B\n```",
		"   - [x] no",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}
