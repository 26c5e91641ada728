package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/langdocs/internal/index"
	"github.com/MrSnakeDoc/langdocs/internal/logger"
)

// SearchCache caches search responses. *redisstore.Store implements it.
type SearchCache interface {
	GetCachedSearch(ctx context.Context, key string, out any) (bool, error)
	CacheSearch(ctx context.Context, key string, results any, ttl time.Duration) error
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	AllowedHosts  []string            // Host headers allowed to access admin endpoints
	AllowedCIDRS  []string            // IPs allowed to access diagnostics, reload and metrics
	TrustProxy    bool                // true if running behind a trusted reverse proxy (e.g., cloudflared)
	Index         *index.ContentIndex // Current content snapshot
	Store         SearchCache         // nil when Redis is disabled
	ContentSource string              // content directory, or "embedded"
	Watching      bool                // content directory is watched for changes
	ReloadTrigger chan struct{}       // Channel to trigger a manual content reload
	SearchLimit   int                 // default number of search results
	RateBurst     int                 // token bucket size per client IP on /api
	RatePerMin    int                 // refill rate per client IP on /api
}
