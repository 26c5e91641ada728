package domain

import (
	"strings"
	"unicode"
)

// Query represents a parsed search input
type Query struct {
	Raw        string     // Original input (lowercased, trimmed)
	Fragments  []string   // Free-text fragments
	Tag        string     // Optional tag filter ("tag:generics")
	Difficulty Difficulty // Optional level filter ("level:beginner")
}

// ParseQuery parses user input into a structured query
// Examples:
//   - "hash map" -> fragments ["hash", "map"]
//   - "loop tag:basics" -> fragments ["loop"], tag "basics"
//   - "level:advanced stream" -> fragments ["stream"], difficulty advanced
func ParseQuery(input string) *Query {
	// Normalize input
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return &Query{Raw: input}
	}

	q := &Query{Raw: input}

	for _, part := range splitAndClean(input, " ") {
		key, value, found := strings.Cut(part, ":")
		if !found || value == "" {
			q.Fragments = append(q.Fragments, part)
			continue
		}

		switch key {
		case "tag":
			q.Tag = value
		case "level", "difficulty":
			if d, ok := ParseDifficulty(value); ok {
				q.Difficulty = d
				continue
			}
			// Unknown level: keep it searchable as text
			q.Fragments = append(q.Fragments, part)
		default:
			q.Fragments = append(q.Fragments, part)
		}
	}

	return q
}

// IsEmpty reports whether the query has neither text nor filters
func (q *Query) IsEmpty() bool {
	return q == nil || (len(q.Fragments) == 0 && q.Tag == "" && q.Difficulty == "")
}

// splitAndClean splits a string by separator and returns non-empty parts
func splitAndClean(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

// IDFragments extracts fragments from a kebab-case identifier for matching
// Example: "hash-map-basics" -> ["hash", "map", "basics"]
func IDFragments(id string) []string {
	return strings.FieldsFunc(strings.ToLower(id), func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
}

// Words splits free text into lowercased words
func Words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// normalizeFragment normalizes a fragment for matching
func normalizeFragment(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}
