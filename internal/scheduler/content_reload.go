package scheduler

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"github.com/MrSnakeDoc/langdocs/internal/catalog"
	"github.com/MrSnakeDoc/langdocs/internal/index"
	"github.com/MrSnakeDoc/langdocs/internal/logger"
	"github.com/MrSnakeDoc/langdocs/internal/metrics"
	redisstore "github.com/MrSnakeDoc/langdocs/internal/store/redis"
	"golang.org/x/sync/singleflight"
)

// ContentReloader rebuilds the catalog from the content tree and swaps the index snapshot
type ContentReloader struct {
	fsys           fs.FS
	store          Publisher
	index          *index.ContentIndex
	logger         logger.Logger
	interval       time.Duration
	publishInvalid bool
	stopCh         chan struct{}
	manualTrigger  chan struct{}
	group          singleflight.Group
}

// NewContentReloader creates a new content reloader.
// store may be nil when publication is disabled.
func NewContentReloader(
	fsys fs.FS,
	store Publisher,
	idx *index.ContentIndex,
	log logger.Logger,
	interval time.Duration,
	publishInvalid bool,
	manualTrigger chan struct{},
) *ContentReloader {
	return &ContentReloader{
		fsys:           fsys,
		store:          store,
		index:          idx,
		logger:         log,
		interval:       interval,
		publishInvalid: publishInvalid,
		stopCh:         make(chan struct{}),
		manualTrigger:  manualTrigger,
	}
}

// Start loads the content once, then reloads on every tick and trigger
func (cr *ContentReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if err := cr.Reload(ctx); err != nil {
		return fmt.Errorf("initial reload failed: %w", err)
	}

	ticker := time.NewTicker(cr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload content", logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual reload triggered")
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload content", logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (cr *ContentReloader) Stop() {
	close(cr.stopCh)
}

// Reload builds a new snapshot and installs it.
// Concurrent calls share a single build. On failure the previous snapshot stays in place.
func (cr *ContentReloader) Reload(ctx context.Context) error {
	_, err, shared := cr.group.Do("reload", func() (interface{}, error) {
		return nil, cr.reload(ctx)
	})
	if shared {
		cr.logger.Debug("reload coalesced with a running one")
	}
	return err
}

func (cr *ContentReloader) reload(ctx context.Context) error {
	cr.logger.Info("reloading content")
	start := time.Now()

	cat, err := catalog.Build(ctx, cr.fsys)
	if err != nil {
		metrics.RecordReload(metrics.ReloadFailure)
		return fmt.Errorf("failed to build catalog: %w", err)
	}

	cr.index.Update(index.SourceFiles, cat.Languages, cat.Reports)
	metrics.RecordReload(metrics.ReloadSuccess)
	metrics.SetSnapshot(cat.Languages, cat.Reports, cr.index.GetLastReload())

	errs, warnings := cat.Counts()
	cr.logger.Info("content reloaded",
		logger.Int("languages", len(cat.Languages)),
		logger.Int("errors", errs),
		logger.Int("warnings", warnings),
		logger.Duration("elapsed", time.Since(start)))

	for _, r := range cat.Reports {
		if r.HasErrors() {
			cr.logger.Warn("language has content errors",
				logger.String("language", r.Language),
				logger.Int("errors", len(r.Errors())))
		}
	}

	// Update Redis store (best effort)
	if cr.store != nil {
		cr.publish(ctx, cat)
	}

	return nil
}

func (cr *ContentReloader) publish(ctx context.Context, cat *catalog.Catalog) {
	pubs := Publishable(cat, cr.publishInvalid)

	if skipped := len(cat.Languages) - len(pubs); skipped > 0 {
		cr.logger.Warn("languages with errors not published", logger.Int("count", skipped))
	}

	// Cached searches belong to the previous snapshot
	defer func() {
		if err := cr.store.FlushSearchCache(ctx); err != nil {
			cr.logger.Warn("failed to flush search cache", logger.Error(err))
		}
	}()

	if err := cr.store.PublishMany(ctx, pubs); err != nil {
		cr.logger.Warn("failed to publish languages to redis", logger.Error(err))
		// Don't fail - memory index is the primary source
		return
	}

	cr.logger.Info("languages published to redis", logger.Int("count", len(pubs)))
}

// Publishable selects the languages of a catalog that may be published:
// those without error diagnostics, or all of them when includeInvalid is set.
// A language ID seen twice is only published once.
func Publishable(cat *catalog.Catalog, includeInvalid bool) []redisstore.Publication {
	seen := make(map[string]bool, len(cat.Languages))
	pubs := make([]redisstore.Publication, 0, len(cat.Languages))

	for i, l := range cat.Languages {
		if seen[l.ID] {
			continue
		}
		seen[l.ID] = true

		if cat.Reports[i].HasErrors() && !includeInvalid {
			continue
		}
		pubs = append(pubs, redisstore.Publication{Language: l, Report: cat.Reports[i]})
	}

	return pubs
}
