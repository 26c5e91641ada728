package validate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrInvalidContent = errors.New("invalid content")

// Severity of a Diagnostic. Errors block publication, warnings do not.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Code identifies the class of a defect.
type Code string

const (
	CodeDuplicateLanguageID   Code = "duplicate-language-id"
	CodeDuplicateCategoryID   Code = "duplicate-category-id"
	CodeDuplicateEntryID      Code = "duplicate-entry-id"
	CodeMissingField          Code = "missing-field"
	CodeNoCategories          Code = "no-categories"
	CodeEmptyCategory         Code = "empty-category"
	CodeMissingSections       Code = "missing-sections"
	CodeInvalidDifficulty     Code = "invalid-difficulty"
	CodeEmptyTags             Code = "empty-tags"
	CodeBlankTag              Code = "blank-tag"
	CodeDuplicateTag          Code = "duplicate-tag"
	CodeQuizTooFewOptions     Code = "quiz-too-few-options"
	CodeQuizAnswerOutOfRange  Code = "quiz-answer-out-of-range"
	CodeEmptyOption           Code = "empty-option"
	CodeDuplicateOption       Code = "duplicate-option"
	CodeMissingExplanation    Code = "missing-explanation"
	CodeHighlightWithoutCode  Code = "highlight-without-code"
	CodeHighlightOutOfRange   Code = "highlight-out-of-range"
	CodeDuplicateHighlight    Code = "duplicate-highlight"
	CodeOutputWithoutCode     Code = "output-without-code"
	CodeChallengeNoHints      Code = "challenge-without-hints"
	CodeChallengeSolved       Code = "challenge-solution-equals-starter"
	CodeUnknownDiagramType    Code = "unknown-diagram-type"
	CodeDiagramMissingCode    Code = "diagram-missing-code"
	CodeDiagramMissingKind    Code = "diagram-missing-kind"
	CodeUnknownDiagramKind    Code = "unknown-diagram-kind"
	CodeInvalidDiagramPayload Code = "invalid-diagram-payload"
	CodeMalformedURL          Code = "malformed-url"
)

// Diagnostic is one structured validation finding.
type Diagnostic struct {
	// Path locates the defect (ex: "java.categories[basics].entries[strings].sections[0].codeHighlightLines[2]")
	Path     string   `json:"path"`
	Code     Code     `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	// Partition is the source file of the category the defect belongs to, when known.
	Partition string `json:"partition,omitempty"`
}

func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(string(d.Severity))
	b.WriteString(" ")
	b.WriteString(d.Path)
	b.WriteString(": ")
	b.WriteString(d.Message)
	b.WriteString(" [")
	b.WriteString(string(d.Code))
	b.WriteString("]")
	if d.Partition != "" {
		b.WriteString(" (")
		b.WriteString(d.Partition)
		b.WriteString(")")
	}
	return b.String()
}

// Errorf builds an error diagnostic.
func Errorf(path, partition string, code Code, format string, args ...any) Diagnostic {
	return Diagnostic{
		Path:      path,
		Code:      code,
		Severity:  SeverityError,
		Message:   fmt.Sprintf(format, args...),
		Partition: partition,
	}
}

// Report collects every diagnostic found for one language.
type Report struct {
	Language    string       `json:"language"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// NewReport returns an empty report for a language.
func NewReport(language string) Report {
	return Report{Language: language, Diagnostics: []Diagnostic{}}
}

// Add appends diagnostics to the report.
func (r *Report) Add(d ...Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d...)
}

// Merge appends the diagnostics of other to r.
func (r *Report) Merge(other Report) {
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
}

// Errors returns the error-severity diagnostics.
func (r Report) Errors() []Diagnostic {
	return r.filter(SeverityError)
}

// Warnings returns the warning-severity diagnostics.
func (r Report) Warnings() []Diagnostic {
	return r.filter(SeverityWarning)
}

func (r Report) filter(sev Severity) []Diagnostic {
	out := make([]Diagnostic, 0)
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

func (r Report) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Clean reports whether there are no diagnostics at all.
func (r Report) Clean() bool {
	return len(r.Diagnostics) == 0
}

// Err returns nil when the report has no errors, a *ContentError otherwise.
func (r Report) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	return &ContentError{Language: r.Language, Diagnostics: errs}
}

// Clone returns a copy that does not share the diagnostics slice.
func (r Report) Clone() Report {
	out := r
	out.Diagnostics = append([]Diagnostic{}, r.Diagnostics...)
	return out
}

// CountByCode returns how many diagnostics of each code the report holds.
func (r Report) CountByCode() map[Code]int {
	out := make(map[Code]int)
	for _, d := range r.Diagnostics {
		out[d.Code]++
	}
	return out
}

// Codes returns the distinct codes in the report, sorted.
func (r Report) Codes() []Code {
	counts := r.CountByCode()
	out := make([]Code, 0, len(counts))
	for c := range counts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ContentError wraps the error diagnostics of a language.
type ContentError struct {
	Language    string
	Diagnostics []Diagnostic
}

func (e *ContentError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Diagnostics) == 0 {
		return fmt.Sprintf("%s: %s", ErrInvalidContent.Error(), e.Language)
	}
	return fmt.Sprintf("%s: %s: %d error(s), first: %s",
		ErrInvalidContent.Error(), e.Language, len(e.Diagnostics), e.Diagnostics[0].String())
}

func (e *ContentError) Unwrap() error { return ErrInvalidContent }
