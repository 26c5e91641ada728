package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/MrSnakeDoc/langdocs/internal/catalog"
	"github.com/MrSnakeDoc/langdocs/internal/domain"
	"github.com/MrSnakeDoc/langdocs/internal/index"
	"github.com/MrSnakeDoc/langdocs/internal/logger"
	redisstore "github.com/MrSnakeDoc/langdocs/internal/store/redis"
	"github.com/MrSnakeDoc/langdocs/internal/validate"
)

const validPartition = `categories:
  - id: basics
    label: Basics
    entries:
      - id: strings
        title: Strings
        difficulty: beginner
        tags: [text]
        summary: Text.
        sections:
          - heading: h
            content: c
`

const brokenPartition = `categories:
  - id: basics
    label: Basics
    entries:
      - id: loops
        title: Loops
        difficulty: beginner
        tags: [control-flow]
        summary: Loops.
        sections:
          - heading: h
            content: c
            diagram:
              type: ascii
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"java/language.yaml":   {Data: []byte("id: java\nlabel: Java\npartitions: [a.yaml]\n")},
		"java/a.yaml":          {Data: []byte(validPartition)},
		"kotlin/language.yaml": {Data: []byte("id: kotlin\nlabel: Kotlin\npartitions: [a.yaml]\n")},
		"kotlin/a.yaml":        {Data: []byte(brokenPartition)},
	}
}

// fakeStore records publications in memory
type fakeStore struct {
	mu         sync.Mutex
	published  map[string]redisstore.Publication
	flushes    int
	publishErr error
	deleteErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{published: make(map[string]redisstore.Publication)}
}

func (f *fakeStore) PublishMany(_ context.Context, pubs []redisstore.Publication) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil {
		return f.publishErr
	}
	for _, p := range pubs {
		f.published[p.Language.ID] = p
	}
	return nil
}

func (f *fakeStore) FlushSearchCache(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushes++
	return nil
}

func (f *fakeStore) GetAllLanguages(context.Context) ([]redisstore.Publication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []redisstore.Publication
	for _, p := range f.published {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeStore) PublishedIDs(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for id := range f.published {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeStore) DeleteLanguage(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.published, id)
	return nil
}

func (f *fakeStore) ids() map[string]bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]bool)
	for id := range f.published {
		out[id] = true
	}
	return out
}

func TestContentReloader_Reload(t *testing.T) {
	store := newFakeStore()
	idx := index.NewContentIndex()
	cr := NewContentReloader(testFS(), store, idx, logger.Nop(), time.Hour, false, make(chan struct{}, 1))

	if err := cr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	if idx.Source() != index.SourceFiles || idx.Count() != 2 {
		t.Errorf("Expected 2 languages from files, got %d from %q", idx.Count(), idx.Source())
	}
	if r, _ := idx.Report("kotlin"); !r.HasErrors() {
		t.Error("kotlin report should carry the unknown diagram error")
	}

	ids := store.ids()
	if !ids["java"] || ids["kotlin"] {
		t.Errorf("Expected only java published, got %v", ids)
	}
	if store.flushes != 1 {
		t.Errorf("Expected search cache flushed once, got %d", store.flushes)
	}
}

func TestContentReloader_PublishInvalid(t *testing.T) {
	store := newFakeStore()
	cr := NewContentReloader(testFS(), store, index.NewContentIndex(), logger.Nop(), time.Hour, true, nil)

	if err := cr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if ids := store.ids(); !ids["java"] || !ids["kotlin"] {
		t.Errorf("Expected both languages published, got %v", ids)
	}
}

func TestContentReloader_PublishFailureIsNotFatal(t *testing.T) {
	store := newFakeStore()
	store.publishErr = errors.New("redis down")
	idx := index.NewContentIndex()
	cr := NewContentReloader(testFS(), store, idx, logger.Nop(), time.Hour, false, nil)

	if err := cr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload should succeed when publication fails: %v", err)
	}
	if idx.Count() != 2 {
		t.Errorf("Expected index updated, got %d languages", idx.Count())
	}
}

func TestContentReloader_FailureKeepsSnapshot(t *testing.T) {
	fsys := testFS()
	idx := index.NewContentIndex()
	cr := NewContentReloader(fsys, nil, idx, logger.Nop(), time.Hour, false, nil)

	if err := cr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	before := idx.GetLastReload()

	fsys["java/a.yaml"] = &fstest.MapFile{Data: []byte("categories: [")}
	if err := cr.Reload(context.Background()); err == nil {
		t.Fatal("Expected an error for malformed YAML")
	}

	if idx.Count() != 2 || !idx.GetLastReload().Equal(before) {
		t.Error("Failed reload replaced the snapshot")
	}
}

func TestContentReloader_StartFailsOnBrokenContent(t *testing.T) {
	fsys := fstest.MapFS{
		"java/language.yaml": {Data: []byte("id: java\npartitions: [missing.yaml]\n")},
	}
	cr := NewContentReloader(fsys, nil, index.NewContentIndex(), logger.Nop(), time.Hour, false, nil)

	if err := cr.Start(context.Background()); err == nil {
		cr.Stop()
		t.Fatal("Start should fail when the catalog cannot be built")
	}
}

func TestContentReloader_ManualTrigger(t *testing.T) {
	fsys := testFS()
	trigger := make(chan struct{}, 1)
	idx := index.NewContentIndex()
	cr := NewContentReloader(fsys, nil, idx, logger.Nop(), time.Hour, false, trigger)

	if err := cr.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer cr.Stop()

	delete(fsys, "kotlin/language.yaml")
	delete(fsys, "kotlin/a.yaml")
	trigger <- struct{}{}

	deadline := time.Now().Add(2 * time.Second)
	for idx.Count() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("Expected 1 language after triggered reload, got %d", idx.Count())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestPublishable(t *testing.T) {
	bad := validate.NewReport("go")
	bad.Add(validate.Errorf("go", "", validate.CodeMissingField, "missing"))

	cat := testCatalog(
		[]string{"java", "go", "java"},
		[]validate.Report{validate.NewReport("java"), bad, validate.NewReport("java")},
	)

	pubs := Publishable(cat, false)
	if len(pubs) != 1 || pubs[0].Language.ID != "java" {
		t.Errorf("Expected java once, got %+v", pubs)
	}

	if pubs := Publishable(cat, true); len(pubs) != 2 {
		t.Errorf("Expected 2 publications with invalid included, got %d", len(pubs))
	}
}

func TestRedisSyncer_Sync(t *testing.T) {
	store := newFakeStore()
	store.published["java"] = redisstore.Publication{
		Language: domain.LanguageConfig{ID: "java", Label: "Java"},
		Report:   validate.NewReport("java"),
	}

	t.Run("seeds an empty index", func(t *testing.T) {
		idx := index.NewContentIndex()
		if err := NewRedisSyncer(store, idx, logger.Nop()).Sync(context.Background()); err != nil {
			t.Fatalf("Sync failed: %v", err)
		}
		if idx.Source() != index.SourceRedis || idx.Count() != 1 {
			t.Errorf("Expected 1 language from redis, got %d from %q", idx.Count(), idx.Source())
		}
	})

	t.Run("never replaces a file snapshot", func(t *testing.T) {
		idx := index.NewContentIndex()
		idx.Update(index.SourceFiles, []domain.LanguageConfig{{ID: "go"}}, nil)

		if err := NewRedisSyncer(store, idx, logger.Nop()).Sync(context.Background()); err != nil {
			t.Fatalf("Sync failed: %v", err)
		}
		if _, ok := idx.Language("go"); !ok || idx.Source() != index.SourceFiles {
			t.Error("file snapshot was replaced")
		}
	})

	t.Run("empty redis", func(t *testing.T) {
		idx := index.NewContentIndex()
		if err := NewRedisSyncer(newFakeStore(), idx, logger.Nop()).Sync(context.Background()); err != nil {
			t.Fatalf("Sync failed: %v", err)
		}
		if idx.Loaded() {
			t.Error("index should stay empty")
		}
	})
}

func TestPruner_Prune(t *testing.T) {
	store := newFakeStore()
	for _, id := range []string{"java", "kotlin", "cobol"} {
		store.published[id] = redisstore.Publication{Language: domain.LanguageConfig{ID: id}}
	}

	idx := index.NewContentIndex()
	p := NewPruner(store, idx, logger.Nop(), time.Hour)

	// Nothing happens before a file snapshot exists
	if n, err := p.Prune(context.Background()); err != nil || n != 0 {
		t.Fatalf("Expected no-op prune, got %d, %v", n, err)
	}

	idx.Update(index.SourceFiles, []domain.LanguageConfig{{ID: "java"}, {ID: "kotlin"}}, nil)

	n, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 deletion, got %d", n)
	}
	if ids := store.ids(); ids["cobol"] || !ids["java"] || !ids["kotlin"] {
		t.Errorf("Unexpected published set %v", ids)
	}
}

func TestPruner_DeleteFailure(t *testing.T) {
	store := newFakeStore()
	store.published["cobol"] = redisstore.Publication{Language: domain.LanguageConfig{ID: "cobol"}}
	store.deleteErr = errors.New("redis down")

	idx := index.NewContentIndex()
	idx.Update(index.SourceFiles, []domain.LanguageConfig{{ID: "java"}}, nil)

	n, err := NewPruner(store, idx, logger.Nop(), time.Hour).Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune should not fail on a single delete error: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected 0 deletions, got %d", n)
	}
}

func testCatalog(ids []string, reports []validate.Report) *catalog.Catalog {
	cat := &catalog.Catalog{Reports: reports}
	for _, id := range ids {
		cat.Languages = append(cat.Languages, domain.LanguageConfig{ID: id})
	}
	return cat
}
