package domain

import "strings"

// Difficulty is the level of an entry.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Difficulties lists the recognized levels in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
}

// Valid reports whether d is one of the recognized levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	default:
		return false
	}
}

// ParseDifficulty normalizes user input ("Beginner", " advanced ") into a Difficulty.
// The boolean is false when the input is not a recognized level.
func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	return d, d.Valid()
}

// CountLines returns the number of lines in a code sample.
// Example: "a\nb\n" -> 2, "a\nb" -> 2, "" -> 0
func CountLines(code string) int {
	if code == "" {
		return 0
	}
	code = strings.TrimSuffix(code, "\n")
	return strings.Count(code, "\n") + 1
}
