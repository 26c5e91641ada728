package validate

import (
	"testing"

	"github.com/MrSnakeDoc/langdocs/internal/domain"
)

func TestDiagramChecks(t *testing.T) {
	tests := []struct {
		name     string
		diagram  domain.Diagram
		expected []Code
	}{
		{
			name:    "mermaid ok",
			diagram: domain.MermaidDiagram{Code: "graph TD; A-->B"},
		},
		{
			name:     "mermaid without code",
			diagram:  domain.MermaidDiagram{Caption: "empty"},
			expected: []Code{CodeDiagramMissingCode},
		},
		{
			name:     "custom without kind",
			diagram:  domain.CustomDiagram{Payload: map[string]any{}},
			expected: []Code{CodeDiagramMissingKind},
		},
		{
			name:     "unknown kind is a warning",
			diagram:  domain.CustomDiagram{Kind: "tree", Payload: map[string]any{"root": 1}},
			expected: []Code{CodeUnknownDiagramKind},
		},
		{
			name: "array ok with numeric items",
			diagram: domain.CustomDiagram{Kind: KindArray, Payload: map[string]any{
				"items":     []any{1, 2, 3},
				"highlight": []any{0, 2},
				"label":     "int[] nums",
			}},
		},
		{
			name: "array highlight out of range",
			diagram: domain.CustomDiagram{Kind: KindArray, Payload: map[string]any{
				"items":     []any{"a"},
				"highlight": []any{3},
			}},
			expected: []Code{CodeInvalidDiagramPayload},
		},
		{
			name: "array unknown key",
			diagram: domain.CustomDiagram{Kind: KindArray, Payload: map[string]any{
				"items":  []any{"a"},
				"colour": "red",
			}},
			expected: []Code{CodeInvalidDiagramPayload},
		},
		{
			name: "queue ok",
			diagram: domain.CustomDiagram{Kind: KindQueue, Payload: map[string]any{
				"items": []any{"task-1", "task-2"},
			}},
		},
		{
			name: "memory layout ok",
			diagram: domain.CustomDiagram{Kind: KindMemoryLayout, Payload: map[string]any{
				"stack": []any{
					map[string]any{"name": "p", "ref": "obj1"},
					map[string]any{"name": "n", "value": 42},
				},
				"heap": []any{
					map[string]any{"id": "obj1", "label": "Person", "fields": []any{
						map[string]any{"name": "name", "value": "Ada"},
					}},
				},
			}},
		},
		{
			name: "memory layout dangling ref",
			diagram: domain.CustomDiagram{Kind: KindMemoryLayout, Payload: map[string]any{
				"stack": []any{map[string]any{"name": "p", "ref": "missing"}},
			}},
			expected: []Code{CodeInvalidDiagramPayload},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newChecker("java")
			v.checkDiagram("java.x.diagram", "", tt.diagram)

			got := v.report.Diagnostics
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %v, got %v", tt.expected, got)
			}
			for i, d := range got {
				if d.Code != tt.expected[i] {
					t.Errorf("Diagnostic %d: expected %s, got %s", i, tt.expected[i], d.Code)
				}
			}
		})
	}
}
