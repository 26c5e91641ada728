package content

// ManifestFile is the name of the per-language manifest
const ManifestFile = "language.yaml"

// Manifest represents a language.yaml file.
// Partitions is the explicit, ordered list of partition files of the language.
type Manifest struct {
	ID             string   `yaml:"id"`
	Label          string   `yaml:"label"`
	Icon           string   `yaml:"icon"`
	Color          string   `yaml:"color"`
	OfficialURL    string   `yaml:"officialUrl"`
	Tagline        string   `yaml:"tagline"`
	PlaygroundURL  string   `yaml:"playgroundUrl"`
	ExecutionAPIID string   `yaml:"executionApiId"`
	Partitions     []string `yaml:"partitions"`
}

// PartitionFile is the root structure of a partition file
type PartitionFile struct {
	Categories []CategoryDoc `yaml:"categories"`
}

type CategoryDoc struct {
	ID      string     `yaml:"id"`
	Label   string     `yaml:"label"`
	Icon    string     `yaml:"icon"`
	Entries []EntryDoc `yaml:"entries"`
}

type EntryDoc struct {
	ID         string        `yaml:"id"`
	Title      string        `yaml:"title"`
	Difficulty string        `yaml:"difficulty"`
	Tags       []string      `yaml:"tags"`
	Summary    string        `yaml:"summary"`
	Sections   []SectionDoc  `yaml:"sections"`
	Quiz       []QuizDoc     `yaml:"quiz"`
	Challenge  *ChallengeDoc `yaml:"challenge"`
	Signature  string        `yaml:"signature"`
}

type SectionDoc struct {
	Heading            string      `yaml:"heading"`
	Content            string      `yaml:"content"`
	Code               string      `yaml:"code"`
	Output             *string     `yaml:"output"`
	Tip                string      `yaml:"tip"`
	Warning            string      `yaml:"warning"`
	Note               string      `yaml:"note"`
	Analogy            string      `yaml:"analogy"`
	Diagram            *DiagramDoc `yaml:"diagram"`
	CodeHighlightLines []int       `yaml:"codeHighlightLines"`
}

type QuizDoc struct {
	Question     string   `yaml:"question"`
	Options      []string `yaml:"options"`
	CorrectIndex *int     `yaml:"correctIndex"`
	Explanation  string   `yaml:"explanation"`
}

type ChallengeDoc struct {
	Prompt       string   `yaml:"prompt"`
	StarterCode  string   `yaml:"starterCode"`
	SolutionCode string   `yaml:"solutionCode"`
	Hints        []string `yaml:"hints"`
}

// DiagramDoc is the tagged YAML form of a diagram.
// Example:
//
//	diagram:
//	  type: custom
//	  kind: array
//	  data: { items: [1, 2, 3], highlight: [0] }
type DiagramDoc struct {
	Type    string         `yaml:"type"`
	Code    string         `yaml:"code"`
	Kind    string         `yaml:"kind"`
	Data    map[string]any `yaml:"data"`
	Caption string         `yaml:"caption"`
}
