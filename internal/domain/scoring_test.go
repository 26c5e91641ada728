package domain

import "testing"

func testDocs() []*SearchDocument {
	return []*SearchDocument{
		NewSearchDocument("java", "basics", 0, Entry{
			ID:         "strings",
			Title:      "Strings",
			Difficulty: DifficultyBeginner,
			Tags:       []string{"text", "basics"},
			Summary:    "Immutable character sequences.",
		}, "Use StringBuilder when concatenating in a loop."),
		NewSearchDocument("java", "basics", 1, Entry{
			ID:         "for-loops",
			Title:      "For Loops",
			Difficulty: DifficultyBeginner,
			Tags:       []string{"control-flow", "basics"},
			Summary:    "Counting and enhanced for loops.",
		}, "The enhanced for loop iterates any Iterable."),
		NewSearchDocument("java", "collections", 2, Entry{
			ID:         "hash-map",
			Title:      "HashMap",
			Difficulty: DifficultyIntermediate,
			Tags:       []string{"collections"},
			Summary:    "Key value lookups in constant time.",
		}, "Buckets are indexed by hashCode."),
	}
}

func TestScore(t *testing.T) {
	docs := testDocs()

	tests := []struct {
		name           string
		query          string
		doc            int
		expectPositive bool
	}{
		{name: "exact id", query: "strings", doc: 0, expectPositive: true},
		{name: "prefix title", query: "str", doc: 0, expectPositive: true},
		{name: "id fragment", query: "hash", doc: 2, expectPositive: true},
		{name: "body word", query: "buckets", doc: 2, expectPositive: true},
		{name: "every fragment must match", query: "loop xyzzy", doc: 1, expectPositive: false},
		{name: "no match", query: "xyzzy", doc: 0, expectPositive: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := Score(ParseQuery(tt.query), docs[tt.doc])

			if tt.expectPositive && score <= 0 {
				t.Errorf("Expected positive score, got %f", score)
			}
			if !tt.expectPositive && score > 0 {
				t.Errorf("Expected zero score, got %f", score)
			}
		})
	}
}

func TestScoreTitleBeatsBody(t *testing.T) {
	docs := testDocs()
	q := ParseQuery("loop")

	title := Score(q, docs[1])
	body := Score(q, docs[0])

	if title <= body {
		t.Errorf("Expected title match (%f) to outrank body match (%f)", title, body)
	}
}

func TestRank(t *testing.T) {
	docs := testDocs()

	t.Run("best first", func(t *testing.T) {
		hits := Rank(ParseQuery("hashmap"), docs)
		if len(hits) == 0 {
			t.Fatal("Expected at least one hit")
		}
		if hits[0].Document.EntryID != "hash-map" {
			t.Errorf("Expected hash-map first, got %s", hits[0].Document.EntryID)
		}
	})

	t.Run("tag filter only keeps navigation order", func(t *testing.T) {
		hits := Rank(ParseQuery("tag:basics"), docs)
		if len(hits) != 2 {
			t.Fatalf("Expected 2 hits, got %d", len(hits))
		}
		if hits[0].Document.EntryID != "strings" || hits[1].Document.EntryID != "for-loops" {
			t.Errorf("Unexpected order: %s, %s", hits[0].Document.EntryID, hits[1].Document.EntryID)
		}
	})

	t.Run("difficulty filter", func(t *testing.T) {
		hits := Rank(ParseQuery("level:intermediate"), docs)
		if len(hits) != 1 || hits[0].Document.EntryID != "hash-map" {
			t.Errorf("Expected only hash-map, got %d hits", len(hits))
		}
	})

	t.Run("filter excludes text match", func(t *testing.T) {
		hits := Rank(ParseQuery("strings level:advanced"), docs)
		if len(hits) != 0 {
			t.Errorf("Expected no hits, got %d", len(hits))
		}
	})

	t.Run("empty query", func(t *testing.T) {
		if hits := Rank(ParseQuery(""), docs); len(hits) != 0 {
			t.Errorf("Expected no hits, got %d", len(hits))
		}
	})
}

func TestCalculateSimilarity(t *testing.T) {
	if s := calculateSimilarity("abc", "abc"); s != 1.0 {
		t.Errorf("Expected 1.0, got %f", s)
	}
	if s := calculateSimilarity("", "abc"); s != 0.0 {
		t.Errorf("Expected 0.0, got %f", s)
	}
}
