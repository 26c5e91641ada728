package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/langdocs/internal/index"
	"github.com/MrSnakeDoc/langdocs/internal/logger"
)

// Pruner removes published languages that disappeared from the content tree
type Pruner struct {
	store    PublicationPruner
	index    *index.ContentIndex
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewPruner creates a new pruner
func NewPruner(
	store PublicationPruner,
	idx *index.ContentIndex,
	log logger.Logger,
	interval time.Duration,
) *Pruner {
	return &Pruner{
		store:    store,
		index:    idx,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic pruning process
func (p *Pruner) Start(ctx context.Context) error {
	// Run immediately on start
	if _, err := p.Prune(ctx); err != nil {
		p.logger.Warn("initial prune failed", logger.Error(err))
	}

	ticker := time.NewTicker(p.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := p.Prune(ctx); err != nil {
					p.logger.Error("prune failed", logger.Error(err))
				}
			case <-p.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the pruner
func (p *Pruner) Stop() {
	close(p.stopCh)
}

// Prune deletes every published language that is not in the current file snapshot.
// Languages that are present but were not republished because of errors keep their
// last valid publication. Nothing is pruned until a snapshot was built from files.
func (p *Pruner) Prune(ctx context.Context) (int, error) {
	if p.index.Source() != index.SourceFiles {
		p.logger.Debug("no file snapshot yet, skipping prune")
		return 0, nil
	}

	published, err := p.store.PublishedIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list published languages: %w", err)
	}

	current := make(map[string]bool)
	for _, id := range p.index.IDs() {
		current[id] = true
	}

	deleted := 0
	for _, id := range published {
		if current[id] {
			continue
		}
		if err := p.store.DeleteLanguage(ctx, id); err != nil {
			p.logger.Warn("failed to delete stale language from redis",
				logger.String("language", id),
				logger.Error(err))
			continue
		}
		p.logger.Info("pruned stale language", logger.String("language", id))
		deleted++
	}

	if deleted > 0 {
		p.logger.Info("prune completed", logger.Int("deleted", deleted))
	} else {
		p.logger.Debug("nothing to prune")
	}

	return deleted, nil
}
