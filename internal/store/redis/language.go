package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/MrSnakeDoc/langdocs/internal/domain"
	"github.com/MrSnakeDoc/langdocs/internal/validate"
	"github.com/redis/go-redis/v9"
)

// Publication is one language as published for other consumers, with its report
type Publication struct {
	Language domain.LanguageConfig
	Report   validate.Report
}

// ErrNotPublished is returned when a language is not in Redis
var ErrNotPublished = errors.New("language not published")

// PublishMany stores several languages and their reports in one pipeline
func (s *Store) PublishMany(ctx context.Context, pubs []Publication) error {
	if len(pubs) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()

	for _, p := range pubs {
		lang, err := encode(p.Language)
		if err != nil {
			return fmt.Errorf("failed to encode language %s: %w", p.Language.ID, err)
		}
		report, err := encode(p.Report)
		if err != nil {
			return fmt.Errorf("failed to encode report %s: %w", p.Language.ID, err)
		}

		pipe.Set(ctx, LanguageKey(p.Language.ID), lang, 0)
		pipe.Set(ctx, ReportKey(p.Language.ID), report, 0)
		pipe.SAdd(ctx, AllLanguagesKey(), p.Language.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish languages: %w", err)
	}

	return nil
}

// GetLanguage retrieves a published language by ID
func (s *Store) GetLanguage(ctx context.Context, id string) (domain.LanguageConfig, error) {
	var cfg domain.LanguageConfig
	if err := s.get(ctx, LanguageKey(id), &cfg); err != nil {
		return domain.LanguageConfig{}, err
	}
	return cfg, nil
}

// GetReport retrieves the published report of a language
func (s *Store) GetReport(ctx context.Context, id string) (validate.Report, error) {
	var r validate.Report
	if err := s.get(ctx, ReportKey(id), &r); err != nil {
		return validate.Report{}, err
	}
	return r, nil
}

func (s *Store) get(ctx context.Context, key string, v any) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("%w: %s", ErrNotPublished, key)
		}
		return fmt.Errorf("failed to get %s: %w", key, err)
	}
	if err := decode(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// PublishedIDs returns the IDs of all published languages, sorted
func (s *Store) PublishedIDs(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, AllLanguagesKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get language IDs: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// GetAllLanguages retrieves every published language with its report.
// Languages that cannot be read are skipped.
func (s *Store) GetAllLanguages(ctx context.Context) ([]Publication, error) {
	ids, err := s.PublishedIDs(ctx)
	if err != nil {
		return nil, err
	}

	pubs := make([]Publication, 0, len(ids))
	for _, id := range ids {
		lang, err := s.GetLanguage(ctx, id)
		if err != nil {
			continue
		}
		report, err := s.GetReport(ctx, id)
		if err != nil {
			report = validate.NewReport(id)
		}
		pubs = append(pubs, Publication{Language: lang, Report: report})
	}

	return pubs, nil
}

// DeleteLanguage removes a published language and its report
func (s *Store) DeleteLanguage(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, LanguageKey(id), ReportKey(id))
	pipe.SRem(ctx, AllLanguagesKey(), id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete language %s: %w", id, err)
	}
	return nil
}
