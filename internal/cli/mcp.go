package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/langdocs/internal/app"
	"github.com/MrSnakeDoc/langdocs/internal/index"
	"github.com/MrSnakeDoc/langdocs/internal/logger"
	"github.com/MrSnakeDoc/langdocs/internal/mcp"
	"github.com/MrSnakeDoc/langdocs/internal/scheduler"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the content as an MCP server over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		// stdout carries the protocol, logs go to stderr
		log := newLogger(cfg)
		defer func() { _ = log.Sync() }()

		fsys, source, err := app.ContentFS(cfg.ContentDir)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		idx := index.NewContentIndex()
		trigger := make(chan struct{}, 1)
		reloader := scheduler.NewContentReloader(fsys, nil, idx, log, cfg.ReloadInterval, cfg.PublishInvalid, trigger)
		if err := reloader.Start(ctx); err != nil {
			return err
		}
		defer reloader.Stop()

		if cfg.WatchContent && cfg.ContentDir != "" {
			w := scheduler.NewWatcher(cfg.ContentDir, cfg.WatchDebounce, trigger, log)
			if err := w.Start(ctx); err != nil {
				log.Warn("content watcher disabled", logger.Error(err))
			} else {
				defer w.Stop()
			}
		}

		log.Info("serving MCP over stdio", logger.String("source", source))
		return mcp.NewServer(idx, cfg.SearchLimit, log).Run()
	},
}
