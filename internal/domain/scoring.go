package domain

import (
	"math"
	"sort"
	"strings"
)

const (
	// Scoring weights
	ScoreExactMatch     = 100.0
	ScorePrefixMatch    = 75.0
	ScoreSubstringMatch = 50.0
	ScoreFuzzyMatch     = 25.0

	// Position bonus (earlier is better)
	ScorePositionBonus = 10.0

	// Whole query equals the entry title or ID (huge boost)
	ScoreExactTitleBonus = 200.0

	// Field weights: where a fragment matched matters
	WeightID      = 1.0
	WeightTitle   = 1.0
	WeightTag     = 0.9
	WeightSummary = 0.5
	WeightBody    = 0.25
)

// SearchDocument is the flattened, searchable view of one entry
type SearchDocument struct {
	Language   string
	CategoryID string
	EntryID    string
	Title      string
	Summary    string
	Difficulty Difficulty
	Tags       []string

	// Body is the plain text of all section prose
	Body string

	// Order is the entry position in the language navigation order
	Order int

	idWords      []string
	titleWords   []string
	summaryWords []string
	bodyWords    []string
}

// NewSearchDocument prepares an entry for matching
func NewSearchDocument(language, categoryID string, order int, e Entry, body string) *SearchDocument {
	tags := make([]string, 0, len(e.Tags))
	for _, t := range e.Tags {
		tags = append(tags, strings.ToLower(strings.TrimSpace(t)))
	}

	return &SearchDocument{
		Language:     language,
		CategoryID:   categoryID,
		EntryID:      e.ID,
		Title:        e.Title,
		Summary:      e.Summary,
		Difficulty:   e.Difficulty,
		Tags:         tags,
		Body:         body,
		Order:        order,
		idWords:      IDFragments(e.ID),
		titleWords:   Words(e.Title),
		summaryWords: Words(e.Summary),
		bodyWords:    uniqueWords(Words(body)),
	}
}

// Hit represents a search document with its match score
type Hit struct {
	Document *SearchDocument
	Score    float64
}

// Score calculates the match score for a document against a query.
// Every fragment has to match at least one field, otherwise the score is 0.
func Score(query *Query, doc *SearchDocument) float64 {
	if query == nil || doc == nil {
		return 0.0
	}

	if len(query.Fragments) == 0 {
		return 0.0
	}

	// Exact title or ID match (single best signal)
	phrase := strings.Join(query.Fragments, " ")
	bonus := 0.0
	if phrase == strings.ToLower(doc.Title) || phrase == strings.ToLower(doc.EntryID) {
		bonus = ScoreExactTitleBonus
	}

	var totalScore float64
	for _, qFrag := range query.Fragments {
		best := 0.0
		best = math.Max(best, WeightID*bestFragmentScore(qFrag, doc.idWords))
		best = math.Max(best, WeightTitle*bestFragmentScore(qFrag, doc.titleWords))
		best = math.Max(best, WeightTag*bestFragmentScore(qFrag, doc.Tags))
		best = math.Max(best, WeightSummary*bestFragmentScore(qFrag, doc.summaryWords))
		best = math.Max(best, WeightBody*bestFragmentScore(qFrag, doc.bodyWords))

		if best == 0.0 {
			return 0.0
		}
		totalScore += best
	}

	return totalScore + bonus
}

// Matches reports whether the document passes the query filters
func (q *Query) Matches(doc *SearchDocument) bool {
	if q.Difficulty != "" && doc.Difficulty != q.Difficulty {
		return false
	}
	if q.Tag != "" {
		for _, t := range doc.Tags {
			if t == q.Tag {
				return true
			}
		}
		return false
	}
	return true
}

// bestFragmentScore returns the best score of a query fragment over a word list
func bestFragmentScore(queryFrag string, words []string) float64 {
	best := 0.0
	for i, w := range words {
		if s := scoreFragment(queryFrag, w, i); s > best {
			best = s
		}
	}
	return best
}

// scoreFragment scores a single query fragment against a word
func scoreFragment(queryFrag, word string, position int) float64 {
	queryFrag = normalizeFragment(queryFrag)
	word = normalizeFragment(word)

	if queryFrag == "" || word == "" {
		return 0.0
	}

	// Exact match
	if queryFrag == word {
		return ScoreExactMatch + calculatePositionBonus(position)
	}

	// Prefix match
	if strings.HasPrefix(word, queryFrag) {
		return ScorePrefixMatch + calculatePositionBonus(position)
	}

	// Substring match
	if strings.Contains(word, queryFrag) {
		index := strings.Index(word, queryFrag)
		// Earlier substring matches get higher score
		substringBonus := ScorePositionBonus * (1.0 - float64(index)/float64(len(word)))
		return ScoreSubstringMatch + substringBonus
	}

	// Fuzzy match only for fragments long enough to be meaningful
	if len(queryFrag) < 4 {
		return 0.0
	}
	similarity := calculateSimilarity(queryFrag, word)
	if similarity > 0.75 {
		return ScoreFuzzyMatch * similarity
	}

	return 0.0
}

// calculatePositionBonus gives bonus for earlier positions
func calculatePositionBonus(position int) float64 {
	return ScorePositionBonus * math.Exp(-float64(position)*0.3)
}

// calculateSimilarity calculates fuzzy similarity between two strings
func calculateSimilarity(s1, s2 string) float64 {
	if s1 == "" || s2 == "" {
		return 0.0
	}

	// Simple similarity: ratio of matching characters
	matches := 0
	for _, c := range s1 {
		if strings.ContainsRune(s2, c) {
			matches++
		}
	}

	return float64(matches) / float64(len(s1))
}

// Rank scores documents against the query and returns hits by descending score.
// Ties keep navigation order. A filter-only query returns every matching document.
func Rank(query *Query, docs []*SearchDocument) []*Hit {
	hits := make([]*Hit, 0)
	if query.IsEmpty() {
		return hits
	}

	for _, doc := range docs {
		if !query.Matches(doc) {
			continue
		}

		score := 1.0
		if len(query.Fragments) > 0 {
			score = Score(query, doc)
		}

		// Skip documents with zero score (no match)
		if score == 0.0 {
			continue
		}

		hits = append(hits, &Hit{Document: doc, Score: score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Document.Order < hits[j].Document.Order
	})

	return hits
}

func uniqueWords(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) < 2 || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
