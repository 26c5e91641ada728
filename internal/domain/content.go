package domain

// LanguageConfig is the fully assembled documentation tree of one language.
//
// It is built once per load by Assemble and is never mutated afterwards.
// Readers that need to hold on to it receive a Clone.
type LanguageConfig struct {
	// ─────────────────────────────
	// Identity & presentation
	// ─────────────────────────────

	// ID is the stable language identifier (ex: "java").
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	// Color drives UI theming (ex: "#f89820").
	Color string `json:"color"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	OfficialURL    string `json:"officialUrl"`
	Tagline        string `json:"tagline"`
	PlaygroundURL  string `json:"playgroundUrl"`
	ExecutionAPIID string `json:"executionApiId"`

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	// Categories are in navigation order.
	Categories []Category `json:"categories"`
}

// LanguageMeta holds the LanguageConfig attributes that come from the manifest.
type LanguageMeta struct {
	ID             string
	Label          string
	Icon           string
	Color          string
	OfficialURL    string
	Tagline        string
	PlaygroundURL  string
	ExecutionAPIID string
}

// Meta returns the manifest part of the configuration.
func (l LanguageConfig) Meta() LanguageMeta {
	return LanguageMeta{
		ID:             l.ID,
		Label:          l.Label,
		Icon:           l.Icon,
		Color:          l.Color,
		OfficialURL:    l.OfficialURL,
		Tagline:        l.Tagline,
		PlaygroundURL:  l.PlaygroundURL,
		ExecutionAPIID: l.ExecutionAPIID,
	}
}

// EntryCount returns the number of entries across all categories.
func (l LanguageConfig) EntryCount() int {
	n := 0
	for _, c := range l.Categories {
		n += len(c.Entries)
	}
	return n
}

// Category is a named, ordered group of entries.
type Category struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Icon    string  `json:"icon"`
	Entries []Entry `json:"entries"`

	// Partition names the source file the category was declared in.
	// It is provenance for diagnostics and is not part of the rendered contract.
	Partition string `json:"-"`
}

// Entry is one documentation topic. Its ID is used for deep links and must be
// unique across the whole language.
type Entry struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Difficulty Difficulty `json:"difficulty"`
	Tags       []string   `json:"tags"`
	Summary    string     `json:"summary"`
	Sections   []Section  `json:"sections"`
	Quiz       []QuizItem `json:"quiz,omitempty"`
	Challenge  *Challenge `json:"challenge,omitempty"`
	Signature  string     `json:"signature,omitempty"`
}

// Section is one explanatory block of an entry.
// Heading and Content are required, everything else is optional.
type Section struct {
	Heading string `json:"heading"`
	Content string `json:"content"`

	Code   string `json:"code,omitempty"`
	Output string `json:"output,omitempty"`

	Tip     string `json:"tip,omitempty"`
	Warning string `json:"warning,omitempty"`
	Note    string `json:"note,omitempty"`
	Analogy string `json:"analogy,omitempty"`

	Diagram Diagram `json:"-"`

	// CodeHighlightLines are 1-based line numbers into Code.
	CodeHighlightLines []int `json:"codeHighlightLines,omitempty"`
}

// QuizItem is a single multiple-choice question.
type QuizItem struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// Challenge is a coding exercise attached to an entry.
type Challenge struct {
	Prompt       string   `json:"prompt"`
	StarterCode  string   `json:"starterCode"`
	SolutionCode string   `json:"solutionCode"`
	Hints        []string `json:"hints"`
}

// HasCode reports whether the section carries a code sample.
func (s Section) HasCode() bool {
	return s.Code != ""
}

// CodeLineCount returns the number of lines of the code sample.
// A single trailing newline does not open a new line.
func (s Section) CodeLineCount() int {
	return CountLines(s.Code)
}
