package app

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/langdocs/corpus"
	"github.com/MrSnakeDoc/langdocs/internal/config"
	"github.com/MrSnakeDoc/langdocs/internal/httpserver"
	"github.com/MrSnakeDoc/langdocs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/langdocs/internal/index"
	"github.com/MrSnakeDoc/langdocs/internal/logger"
	"github.com/MrSnakeDoc/langdocs/internal/metrics"
	"github.com/MrSnakeDoc/langdocs/internal/redis"
	"github.com/MrSnakeDoc/langdocs/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/langdocs/internal/store/redis"
	"github.com/MrSnakeDoc/langdocs/internal/utils"
	"github.com/MrSnakeDoc/langdocs/internal/version"
)

// EmbeddedSource names the content shipped inside the binary
const EmbeddedSource = "embedded"

// ContentFS returns the content tree to read: dir when set, the embedded corpus otherwise.
// The second value describes the source for logs and status.
func ContentFS(dir string) (fs.FS, string, error) {
	if dir == "" {
		return corpus.FS(), EmbeddedSource, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, "", fmt.Errorf("content directory: %w", err)
	}
	if !info.IsDir() {
		return nil, "", fmt.Errorf("content directory: %s is not a directory", dir)
	}
	return os.DirFS(dir), dir, nil
}

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	index       *index.ContentIndex
	reloader    *scheduler.ContentReloader
	watcher     *scheduler.Watcher
	pruner      *scheduler.Pruner
}

// New wires the serve mode: content index, reloader, optional watcher,
// optional Redis publication and the HTTP server.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	fsys, source, err := ContentFS(cfg.ContentDir)
	if err != nil {
		return nil, err
	}

	metrics.Init()

	idx := index.NewContentIndex()
	a := &App{cfg: cfg, logger: loggerClient, index: idx}

	var publisher scheduler.Publisher
	var cache deps.SearchCache

	// Redis is optional: the index stays the primary source
	if cfg.RedisEnabled() {
		redisClient, err := redis.New(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		loggerClient.Info("Redis initialized successfully")

		store := redisstore.NewStore(redisClient)
		a.redisClient = redisClient
		publisher = store
		cache = store

		// Serve the last publication while the first build runs
		syncer := scheduler.NewRedisSyncer(store, idx, loggerClient)
		if err := syncer.Sync(ctx); err != nil {
			loggerClient.Warn("failed to sync from redis on startup, will load from files",
				logger.Error(err))
		}

		a.pruner = scheduler.NewPruner(store, idx, loggerClient, cfg.PruneInterval)
	} else {
		loggerClient.Info("redis not configured, publication disabled")
	}

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	a.reloader = scheduler.NewContentReloader(
		fsys,
		publisher,
		idx,
		loggerClient,
		cfg.ReloadInterval,
		cfg.PublishInvalid,
		reloadTrigger,
	)

	if cfg.WatchContent && cfg.ContentDir != "" {
		a.watcher = scheduler.NewWatcher(cfg.ContentDir, cfg.WatchDebounce, reloadTrigger, loggerClient)
	}

	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		Index:         idx,
		Store:         cache,
		ContentSource: source,
		Watching:      a.watcher != nil,
		ReloadTrigger: reloadTrigger,
		SearchLimit:   cfg.SearchLimit,
		RateBurst:     cfg.RateLimitBurst,
		RatePerMin:    cfg.RateLimitPerMin,
	}

	a.server = httpserver.New(cfg.ListenPort, d)

	loggerClient.Info("content source", logger.String("source", source))
	return a, nil
}

// Run starts background jobs and the HTTP server and blocks until ctx is done
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("🚀 Starting langdocs %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("langdocs %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	// Load content and start periodic refresh
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start content reloader: %w", err)
	}
	a.logger.Info("content reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	if a.watcher != nil {
		if err := a.watcher.Start(ctx); err != nil {
			// Periodic and manual reloads still work
			a.logger.Warn("content watcher disabled", logger.Error(err))
			a.watcher = nil
		}
	}

	if a.pruner != nil {
		if err := a.pruner.Start(ctx); err != nil {
			return fmt.Errorf("failed to start pruner: %w", err)
		}
		a.logger.Info("pruner started",
			logger.Duration("interval", a.cfg.PruneInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case runErr = <-errCh:
	}

	a.stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		utils.MustClose(a.redisClient, a.logger, "redis")
	}

	if runErr == nil {
		a.logger.Info("✅ langdocs stopped cleanly")
	}
	return runErr
}

func (a *App) stop() {
	a.reloader.Stop()
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.pruner != nil {
		a.pruner.Stop()
	}
}
