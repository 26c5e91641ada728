package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/MrSnakeDoc/langdocs/internal/domain"
)

// Known custom diagram kinds and the payload shape the renderer expects for each.
const (
	KindMemoryLayout = "memory-layout"
	KindArray        = "array"
	KindQueue        = "queue"
)

// MemorySlot is a named value, optionally pointing at a heap object.
type MemorySlot struct {
	Name  string `mapstructure:"name"`
	Value string `mapstructure:"value"`
	Ref   string `mapstructure:"ref"`
}

type HeapObject struct {
	ID     string       `mapstructure:"id"`
	Label  string       `mapstructure:"label"`
	Fields []MemorySlot `mapstructure:"fields"`
}

type MemoryLayout struct {
	Stack []MemorySlot `mapstructure:"stack"`
	Heap  []HeapObject `mapstructure:"heap"`
}

// ArrayDiagram draws indexed cells. Highlight holds 0-based indices.
type ArrayDiagram struct {
	Items     []string `mapstructure:"items"`
	Highlight []int    `mapstructure:"highlight"`
	Label     string   `mapstructure:"label"`
}

type QueueDiagram struct {
	Items     []string `mapstructure:"items"`
	Highlight []int    `mapstructure:"highlight"`
	Label     string   `mapstructure:"label"`
}

// decodePayload decodes a raw payload into out, rejecting unknown keys.
func decodePayload(payload map[string]any, out any) []string {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return []string{err.Error()}
	}

	if err := dec.Decode(payload); err != nil {
		var merr *mapstructure.Error
		if errors.As(err, &merr) {
			return merr.Errors
		}
		return []string{err.Error()}
	}
	return nil
}

// checkDiagram validates a section diagram. Path points at the diagram.
func (v *checker) checkDiagram(path, partition string, d domain.Diagram) {
	switch diag := d.(type) {
	case domain.MermaidDiagram:
		if strings.TrimSpace(diag.Code) == "" {
			v.errorf(path+".code", partition, CodeDiagramMissingCode, "mermaid diagram has no code")
		}
	case domain.CustomDiagram:
		if strings.TrimSpace(diag.Kind) == "" {
			v.errorf(path+".kind", partition, CodeDiagramMissingKind, "custom diagram has no kind")
			return
		}
		v.checkCustomPayload(path+".data", partition, diag)
	}
}

func (v *checker) checkCustomPayload(path, partition string, diag domain.CustomDiagram) {
	var problems []string

	switch diag.Kind {
	case KindMemoryLayout:
		var m MemoryLayout
		problems = decodePayload(diag.Payload, &m)
		if problems == nil {
			problems = memoryLayoutProblems(m)
		}
	case KindArray:
		var a ArrayDiagram
		problems = decodePayload(diag.Payload, &a)
		if problems == nil {
			problems = indexProblems(len(a.Items), a.Highlight)
		}
	case KindQueue:
		var q QueueDiagram
		problems = decodePayload(diag.Payload, &q)
		if problems == nil {
			problems = indexProblems(len(q.Items), q.Highlight)
		}
	default:
		v.warnf(path, partition, CodeUnknownDiagramKind, fmt.Sprintf("unknown custom diagram kind %q, payload not checked", diag.Kind))
		return
	}

	for _, p := range problems {
		v.errorf(path, partition, CodeInvalidDiagramPayload, fmt.Sprintf("%s payload: %s", diag.Kind, p))
	}
}

func memoryLayoutProblems(m MemoryLayout) []string {
	var problems []string

	ids := make(map[string]bool, len(m.Heap))
	for i, obj := range m.Heap {
		if obj.ID == "" {
			problems = append(problems, fmt.Sprintf("heap[%d] has no id", i))
			continue
		}
		if ids[obj.ID] {
			problems = append(problems, fmt.Sprintf("heap id %q declared twice", obj.ID))
		}
		ids[obj.ID] = true
	}

	checkRef := func(where, ref string) {
		if ref != "" && !ids[ref] {
			problems = append(problems, fmt.Sprintf("%s references unknown heap object %q", where, ref))
		}
	}
	for i, s := range m.Stack {
		checkRef(fmt.Sprintf("stack[%d]", i), s.Ref)
	}
	for i, obj := range m.Heap {
		for j, f := range obj.Fields {
			checkRef(fmt.Sprintf("heap[%d].fields[%d]", i, j), f.Ref)
		}
	}

	return problems
}

func indexProblems(n int, highlight []int) []string {
	var problems []string
	for _, idx := range highlight {
		if idx < 0 || idx >= n {
			problems = append(problems, fmt.Sprintf("highlight index %d outside [0, %d)", idx, n))
		}
	}
	return problems
}
