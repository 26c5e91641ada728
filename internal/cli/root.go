package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/langdocs/internal/config"
	"github.com/MrSnakeDoc/langdocs/internal/logger"
)

// errCheckFailed makes the process exit with status 1 without printing usage
var errCheckFailed = errors.New("content check failed")

var contentDir string

var rootCmd = &cobra.Command{
	Use:           "langdocs",
	Short:         "Documentation content store, validator and read service",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

// Execute runs the command line and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errCheckFailed) {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&contentDir, "content-dir", "", "content root with one directory per language (default: LANGDOCS_CONTENT_DIR, then the embedded corpus)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies flag overrides
func loadConfig() *config.Config {
	cfg := config.Load()
	if contentDir != "" {
		cfg.ContentDir = contentDir
	}
	return cfg
}

func newLogger(cfg *config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.PrettyLog,
		File:   cfg.LogFile,
	})
}
