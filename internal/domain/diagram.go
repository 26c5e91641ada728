package domain

import (
	"encoding/json"
	"fmt"
)

// DiagramType tags the variant of a Diagram on the wire.
type DiagramType string

const (
	DiagramMermaid DiagramType = "mermaid"
	DiagramCustom  DiagramType = "custom"
)

// Diagram is the sum of MermaidDiagram and CustomDiagram.
// The unexported method closes the set of variants.
type Diagram interface {
	Type() DiagramType
	isDiagram()
}

// MermaidDiagram is an opaque flowchart description handed to the renderer.
type MermaidDiagram struct {
	Code    string
	Caption string
}

// CustomDiagram is a structured diagram interpreted by the renderer according to Kind
// (ex: "memory-layout", "array", "queue").
type CustomDiagram struct {
	Kind    string
	Payload map[string]any
	Caption string
}

func (MermaidDiagram) Type() DiagramType { return DiagramMermaid }
func (CustomDiagram) Type() DiagramType  { return DiagramCustom }

func (MermaidDiagram) isDiagram() {}
func (CustomDiagram) isDiagram()  {}

// diagramJSON is the tagged wire form shared by both variants.
type diagramJSON struct {
	Type    DiagramType    `json:"type"`
	Code    string         `json:"code,omitempty"`
	Kind    string         `json:"kind,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Caption string         `json:"caption,omitempty"`
}

func encodeDiagram(d Diagram) *diagramJSON {
	switch v := d.(type) {
	case MermaidDiagram:
		return &diagramJSON{Type: DiagramMermaid, Code: v.Code, Caption: v.Caption}
	case CustomDiagram:
		return &diagramJSON{Type: DiagramCustom, Kind: v.Kind, Data: v.Payload, Caption: v.Caption}
	default:
		return nil
	}
}

func (d *diagramJSON) decode() (Diagram, error) {
	switch d.Type {
	case DiagramMermaid:
		return MermaidDiagram{Code: d.Code, Caption: d.Caption}, nil
	case DiagramCustom:
		return CustomDiagram{Kind: d.Kind, Payload: d.Data, Caption: d.Caption}, nil
	default:
		return nil, fmt.Errorf("unknown diagram type %q", d.Type)
	}
}

// MarshalJSON writes the section with its diagram in tagged form.
func (s Section) MarshalJSON() ([]byte, error) {
	type plain Section
	return json.Marshal(struct {
		plain
		Diagram *diagramJSON `json:"diagram,omitempty"`
	}{
		plain:   plain(s),
		Diagram: encodeDiagram(s.Diagram),
	})
}

// UnmarshalJSON reads a section and resolves its tagged diagram into a variant.
func (s *Section) UnmarshalJSON(data []byte) error {
	type plain Section
	aux := struct {
		*plain
		Diagram *diagramJSON `json:"diagram,omitempty"`
	}{plain: (*plain)(s)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	s.Diagram = nil
	if aux.Diagram == nil {
		return nil
	}

	d, err := aux.Diagram.decode()
	if err != nil {
		return err
	}
	s.Diagram = d
	return nil
}
