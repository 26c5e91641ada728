package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/langdocs/internal/domain"
	"github.com/MrSnakeDoc/langdocs/internal/markdown"
	"github.com/MrSnakeDoc/langdocs/internal/validate"
)

// Source tells where the current snapshot came from
type Source string

const (
	SourceNone  Source = ""
	SourceFiles Source = "files"
	SourceRedis Source = "redis"
)

// LanguageSummary is the listing view of a language
type LanguageSummary struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Icon       string `json:"icon"`
	Color      string `json:"color"`
	Tagline    string `json:"tagline"`
	Categories int    `json:"categories"`
	Entries    int    `json:"entries"`
	Errors     int    `json:"errors"`
	Warnings   int    `json:"warnings"`
}

// EntryRef is an entry together with its owning category
type EntryRef struct {
	Language   string       `json:"language"`
	CategoryID string       `json:"categoryId"`
	Entry      domain.Entry `json:"entry"`
}

// SearchResult is one ranked search hit
type SearchResult struct {
	Language   string            `json:"language"`
	CategoryID string            `json:"categoryId"`
	EntryID    string            `json:"entryId"`
	Title      string            `json:"title"`
	Summary    string            `json:"summary"`
	Difficulty domain.Difficulty `json:"difficulty"`
	Tags       []string          `json:"tags"`
	Score      float64           `json:"score"`
}

type entryPos struct {
	category int
	entry    int
}

// language is one immutable language of a snapshot with its lookup tables
type language struct {
	cfg        domain.LanguageConfig
	report     validate.Report
	categories map[string]int      // category ID -> index, first occurrence
	entries    map[string]entryPos // entry ID -> position, first occurrence
	docs       []*domain.SearchDocument
}

// ContentIndex holds the current content snapshot.
// A snapshot is replaced as a whole and never modified in place,
// and every getter hands out copies.
type ContentIndex struct {
	mu         sync.RWMutex
	order      []string             // language IDs in catalog order
	languages  map[string]*language // ID -> language
	source     Source
	lastReload time.Time // Timestamp of last snapshot swap
}

// NewContentIndex creates an empty index
func NewContentIndex() *ContentIndex {
	return &ContentIndex{
		languages: make(map[string]*language),
	}
}

// Update replaces the whole snapshot.
// reports must be index-aligned with languages; a missing report counts as clean.
// When a language ID appears twice, the first one wins.
func (idx *ContentIndex) Update(source Source, languages []domain.LanguageConfig, reports []validate.Report) {
	order := make([]string, 0, len(languages))
	built := make(map[string]*language, len(languages))

	for i, cfg := range languages {
		if _, dup := built[cfg.ID]; dup {
			continue
		}
		report := validate.NewReport(cfg.ID)
		if i < len(reports) {
			report = reports[i].Clone()
		}
		built[cfg.ID] = buildLanguage(cfg.Clone(), report)
		order = append(order, cfg.ID)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.order = order
	idx.languages = built
	idx.source = source
	idx.lastReload = time.Now()
}

func buildLanguage(cfg domain.LanguageConfig, report validate.Report) *language {
	l := &language{
		cfg:        cfg,
		report:     report,
		categories: make(map[string]int, len(cfg.Categories)),
		entries:    make(map[string]entryPos),
	}

	order := 0
	for ci, c := range cfg.Categories {
		if _, ok := l.categories[c.ID]; !ok {
			l.categories[c.ID] = ci
		}
		for ei, e := range c.Entries {
			if _, ok := l.entries[e.ID]; !ok {
				l.entries[e.ID] = entryPos{category: ci, entry: ei}
			}
			l.docs = append(l.docs, domain.NewSearchDocument(cfg.ID, c.ID, order, e, markdown.EntryText(e)))
			order++
		}
	}

	return l
}

// Loaded reports whether a snapshot has been installed
func (idx *ContentIndex) Loaded() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.source != SourceNone
}

// Languages returns the summaries of all languages in catalog order
func (idx *ContentIndex) Languages() []LanguageSummary {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]LanguageSummary, 0, len(idx.order))
	for _, id := range idx.order {
		l := idx.languages[id]
		out = append(out, LanguageSummary{
			ID:         l.cfg.ID,
			Label:      l.cfg.Label,
			Icon:       l.cfg.Icon,
			Color:      l.cfg.Color,
			Tagline:    l.cfg.Tagline,
			Categories: len(l.cfg.Categories),
			Entries:    l.cfg.EntryCount(),
			Errors:     len(l.report.Errors()),
			Warnings:   len(l.report.Warnings()),
		})
	}
	return out
}

// IDs returns the language IDs in catalog order
func (idx *ContentIndex) IDs() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return append([]string{}, idx.order...)
}

// Language retrieves a full language by ID
func (idx *ContentIndex) Language(id string) (domain.LanguageConfig, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	l, ok := idx.languages[id]
	if !ok {
		return domain.LanguageConfig{}, false
	}
	return l.cfg.Clone(), true
}

// Category retrieves a category of a language
func (idx *ContentIndex) Category(lang, categoryID string) (domain.Category, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	l, ok := idx.languages[lang]
	if !ok {
		return domain.Category{}, false
	}
	ci, ok := l.categories[categoryID]
	if !ok {
		return domain.Category{}, false
	}
	return l.cfg.Categories[ci].Clone(), true
}

// Entry retrieves an entry by its language-wide ID
func (idx *ContentIndex) Entry(lang, entryID string) (EntryRef, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	l, ok := idx.languages[lang]
	if !ok {
		return EntryRef{}, false
	}
	pos, ok := l.entries[entryID]
	if !ok {
		return EntryRef{}, false
	}
	c := l.cfg.Categories[pos.category]
	return EntryRef{
		Language:   lang,
		CategoryID: c.ID,
		Entry:      c.Entries[pos.entry].Clone(),
	}, true
}

// Search ranks entries against the query, in one language or in all of them when lang is empty.
// limit <= 0 means no limit.
func (idx *ContentIndex) Search(query *domain.Query, lang string, limit int) []SearchResult {
	idx.mu.RLock()
	var docs []*domain.SearchDocument
	for _, id := range idx.order {
		if lang != "" && id != lang {
			continue
		}
		docs = append(docs, idx.languages[id].docs...)
	}
	idx.mu.RUnlock()

	hits := domain.Rank(query, docs)
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	results := make([]SearchResult, 0, len(hits))
	for _, h := range hits {
		d := h.Document
		results = append(results, SearchResult{
			Language:   d.Language,
			CategoryID: d.CategoryID,
			EntryID:    d.EntryID,
			Title:      d.Title,
			Summary:    d.Summary,
			Difficulty: d.Difficulty,
			Tags:       append([]string{}, d.Tags...),
			Score:      h.Score,
		})
	}
	return results
}

// Report returns the validation report of a language
func (idx *ContentIndex) Report(lang string) (validate.Report, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	l, ok := idx.languages[lang]
	if !ok {
		return validate.Report{}, false
	}
	return l.report.Clone(), true
}

// Reports returns every report in catalog order
func (idx *ContentIndex) Reports() []validate.Report {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]validate.Report, 0, len(idx.order))
	for _, id := range idx.order {
		out = append(out, idx.languages[id].report.Clone())
	}
	return out
}

// Count returns the number of languages in the index
func (idx *ContentIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.order)
}

// EntryCount returns the number of entries across all languages
func (idx *ContentIndex) EntryCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	n := 0
	for _, l := range idx.languages {
		n += l.cfg.EntryCount()
	}
	return n
}

// Source returns where the current snapshot came from
func (idx *ContentIndex) Source() Source {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.source
}

// GetLastReload returns the timestamp of the last snapshot swap
func (idx *ContentIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
