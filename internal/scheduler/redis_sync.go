package scheduler

import (
	"context"

	"github.com/MrSnakeDoc/langdocs/internal/domain"
	"github.com/MrSnakeDoc/langdocs/internal/index"
	"github.com/MrSnakeDoc/langdocs/internal/logger"
	"github.com/MrSnakeDoc/langdocs/internal/validate"
)

// RedisSyncer seeds the index with the published languages on startup,
// so the API can answer before the first content build completes
type RedisSyncer struct {
	store  PublicationReader
	index  *index.ContentIndex
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store PublicationReader,
	idx *index.ContentIndex,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// Sync loads published languages from Redis into the index.
// It never replaces a snapshot that was already built from files.
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("syncing languages from redis to memory")

	pubs, err := rs.store.GetAllLanguages(ctx)
	if err != nil {
		return err
	}

	if len(pubs) == 0 {
		rs.logger.Info("no languages found in redis")
		return nil
	}

	if rs.index.Source() == index.SourceFiles {
		rs.logger.Debug("index already loaded from files, skipping redis snapshot")
		return nil
	}

	langs := make([]domain.LanguageConfig, 0, len(pubs))
	reports := make([]validate.Report, 0, len(pubs))
	for _, p := range pubs {
		langs = append(langs, p.Language)
		reports = append(reports, p.Report)
	}

	rs.index.Update(index.SourceRedis, langs, reports)

	rs.logger.Info("synced languages from redis",
		logger.Int("count", len(pubs)))

	return nil
}
