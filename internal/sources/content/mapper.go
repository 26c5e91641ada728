package content

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/langdocs/internal/domain"
	"github.com/MrSnakeDoc/langdocs/internal/validate"
)

// Mapper converts decoded YAML documents to domain values.
// Problems that are not YAML syntax errors become diagnostics instead of failures.
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapManifest extracts the language metadata
func (m *Mapper) MapManifest(man Manifest) domain.LanguageMeta {
	return domain.LanguageMeta{
		ID:             strings.TrimSpace(man.ID),
		Label:          man.Label,
		Icon:           man.Icon,
		Color:          man.Color,
		OfficialURL:    man.OfficialURL,
		Tagline:        man.Tagline,
		PlaygroundURL:  man.PlaygroundURL,
		ExecutionAPIID: man.ExecutionAPIID,
	}
}

// MapPartition converts a partition file to categories tagged with their partition name
func (m *Mapper) MapPartition(language string, p Partition) ([]domain.Category, []validate.Diagnostic) {
	var diags []validate.Diagnostic

	categories := make([]domain.Category, 0, len(p.File.Categories))
	for i, cd := range p.File.Categories {
		catPath := fmt.Sprintf("%s.categories[%s]", language, pathKey(cd.ID, i))

		cat := domain.Category{
			ID:        strings.TrimSpace(cd.ID),
			Label:     cd.Label,
			Icon:      cd.Icon,
			Entries:   make([]domain.Entry, 0, len(cd.Entries)),
			Partition: p.Name,
		}

		for j, ed := range cd.Entries {
			entryPath := fmt.Sprintf("%s.entries[%s]", catPath, pathKey(ed.ID, j))
			entry, d := m.mapEntry(entryPath, p.Name, ed)
			diags = append(diags, d...)
			cat.Entries = append(cat.Entries, entry)
		}

		categories = append(categories, cat)
	}

	return categories, diags
}

func (m *Mapper) mapEntry(path, partition string, ed EntryDoc) (domain.Entry, []validate.Diagnostic) {
	var diags []validate.Diagnostic

	// Kept as authored so validation reports unknown or miscased levels
	entry := domain.Entry{
		ID:         strings.TrimSpace(ed.ID),
		Title:      ed.Title,
		Difficulty: domain.Difficulty(strings.TrimSpace(ed.Difficulty)),
		Tags:       ed.Tags,
		Summary:    ed.Summary,
		Signature:  ed.Signature,
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}

	entry.Sections = make([]domain.Section, 0, len(ed.Sections))
	for i, sd := range ed.Sections {
		section := domain.Section{
			Heading:            sd.Heading,
			Content:            sd.Content,
			Code:               sd.Code,
			Tip:                sd.Tip,
			Warning:            sd.Warning,
			Note:               sd.Note,
			Analogy:            sd.Analogy,
			CodeHighlightLines: sd.CodeHighlightLines,
		}

		if sd.Output != nil {
			section.Output = *sd.Output
			// An empty output never reaches the validator, so a declared one is checked here
			if section.Output == "" && !section.HasCode() {
				diags = append(diags, validate.Errorf(fmt.Sprintf("%s.sections[%d].output", path, i), partition,
					validate.CodeOutputWithoutCode, "output is set but the section has no code"))
			}
		}

		if sd.Diagram != nil {
			d, diag := mapDiagram(fmt.Sprintf("%s.sections[%d].diagram", path, i), partition, *sd.Diagram)
			if diag != nil {
				diags = append(diags, *diag)
			}
			section.Diagram = d
		}

		entry.Sections = append(entry.Sections, section)
	}

	for i, qd := range ed.Quiz {
		item := domain.QuizItem{
			Question:    qd.Question,
			Options:     qd.Options,
			Explanation: qd.Explanation,
		}
		if qd.CorrectIndex != nil {
			item.CorrectIndex = *qd.CorrectIndex
		} else {
			diags = append(diags, validate.Errorf(fmt.Sprintf("%s.quiz[%d].correctIndex", path, i), partition,
				validate.CodeMissingField, "quiz item has no correctIndex"))
		}
		entry.Quiz = append(entry.Quiz, item)
	}

	if ed.Challenge != nil {
		entry.Challenge = &domain.Challenge{
			Prompt:       ed.Challenge.Prompt,
			StarterCode:  ed.Challenge.StarterCode,
			SolutionCode: ed.Challenge.SolutionCode,
			Hints:        ed.Challenge.Hints,
		}
	}

	return entry, diags
}

// mapDiagram resolves the tagged form into a variant.
// An unresolvable diagram is dropped and reported.
func mapDiagram(path, partition string, dd DiagramDoc) (domain.Diagram, *validate.Diagnostic) {
	switch domain.DiagramType(strings.ToLower(strings.TrimSpace(dd.Type))) {
	case domain.DiagramMermaid:
		return domain.MermaidDiagram{Code: dd.Code, Caption: dd.Caption}, nil
	case domain.DiagramCustom:
		payload := dd.Data
		if payload == nil {
			payload = map[string]any{}
		}
		return domain.CustomDiagram{Kind: strings.TrimSpace(dd.Kind), Payload: payload, Caption: dd.Caption}, nil
	case "":
		d := validate.Errorf(path+".type", partition, validate.CodeUnknownDiagramType,
			"diagram has no type, expected mermaid or custom")
		return nil, &d
	default:
		d := validate.Errorf(path+".type", partition, validate.CodeUnknownDiagramType,
			"unknown diagram type %q, expected mermaid or custom", dd.Type)
		return nil, &d
	}
}

func pathKey(id string, i int) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Sprintf("#%d", i)
	}
	return id
}
