package scheduler

import (
	"context"

	redisstore "github.com/MrSnakeDoc/langdocs/internal/store/redis"
)

// Publisher receives the publishable languages of every reload.
// *redisstore.Store implements it.
type Publisher interface {
	PublishMany(ctx context.Context, pubs []redisstore.Publication) error
	FlushSearchCache(ctx context.Context) error
}

// PublicationReader reads back what was published
type PublicationReader interface {
	GetAllLanguages(ctx context.Context) ([]redisstore.Publication, error)
}

// PublicationPruner lists and removes published languages
type PublicationPruner interface {
	PublishedIDs(ctx context.Context) ([]string, error)
	DeleteLanguage(ctx context.Context, id string) error
}
