package domain

// Clone returns a deep copy that shares no mutable state with l.
func (l LanguageConfig) Clone() LanguageConfig {
	out := l
	out.Categories = cloneCategories(l.Categories)
	return out
}

// Clone returns a deep copy of the category.
func (c Category) Clone() Category {
	out := c
	if c.Entries != nil {
		out.Entries = make([]Entry, len(c.Entries))
		for i, e := range c.Entries {
			out.Entries[i] = e.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	out := e
	out.Tags = cloneStrings(e.Tags)
	if e.Sections != nil {
		out.Sections = make([]Section, len(e.Sections))
		for i, s := range e.Sections {
			out.Sections[i] = s.Clone()
		}
	}
	if e.Quiz != nil {
		out.Quiz = make([]QuizItem, len(e.Quiz))
		for i, q := range e.Quiz {
			q.Options = cloneStrings(q.Options)
			out.Quiz[i] = q
		}
	}
	if e.Challenge != nil {
		ch := *e.Challenge
		ch.Hints = cloneStrings(e.Challenge.Hints)
		out.Challenge = &ch
	}
	return out
}

// Clone returns a deep copy of the section, diagram payload included.
func (s Section) Clone() Section {
	out := s
	if s.CodeHighlightLines != nil {
		out.CodeHighlightLines = make([]int, len(s.CodeHighlightLines))
		copy(out.CodeHighlightLines, s.CodeHighlightLines)
	}
	if custom, ok := s.Diagram.(CustomDiagram); ok {
		custom.Payload = cloneMap(custom.Payload)
		out.Diagram = custom
	}
	return out
}

func cloneCategories(in []Category) []Category {
	if in == nil {
		return nil
	}
	out := make([]Category, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue copies the container shapes produced by YAML and JSON decoding.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return cloneStrings(t)
	case []int:
		return append([]int(nil), t...)
	default:
		return v
	}
}
