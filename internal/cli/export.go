package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/langdocs/internal/app"
	"github.com/MrSnakeDoc/langdocs/internal/catalog"
	"github.com/MrSnakeDoc/langdocs/internal/domain"
)

type exportOptions struct {
	out   string
	lang  string
	force bool
}

var exportOpts exportOptions

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write each assembled language as <id>.json for the front-end bundle",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		fsys, _, err := app.ContentFS(cfg.ContentDir)
		if err != nil {
			return err
		}
		return runExport(cmd.Context(), fsys, exportOpts, cmd.OutOrStdout())
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOpts.out, "out", "", "output directory (required)")
	exportCmd.Flags().StringVar(&exportOpts.lang, "lang", "", "export only this language")
	exportCmd.Flags().BoolVar(&exportOpts.force, "force", false, "export languages even when they have errors")
	_ = exportCmd.MarkFlagRequired("out")
}

// runExport writes the selected languages. Nothing is written when a selected
// language has errors and force is not set.
func runExport(ctx context.Context, fsys fs.FS, opts exportOptions, out io.Writer) error {
	if opts.out == "" {
		return fmt.Errorf("missing output directory")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cat, err := catalog.Build(ctx, fsys)
	if err != nil {
		return err
	}

	var selected []domain.LanguageConfig
	if opts.lang != "" {
		l, report, ok := cat.Language(opts.lang)
		if !ok {
			return fmt.Errorf("unknown language: %s", opts.lang)
		}
		if err := report.Err(); err != nil && !opts.force {
			return fmt.Errorf("refusing to export (use --force to override): %w", err)
		}
		selected = append(selected, l)
	} else {
		for i, l := range cat.Languages {
			if err := cat.Reports[i].Err(); err != nil && !opts.force {
				return fmt.Errorf("refusing to export (use --force to override): %w", err)
			}
			selected = append(selected, l)
		}
	}

	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, l := range selected {
		data, err := json.MarshalIndent(l, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", l.ID, err)
		}
		path := filepath.Join(opts.out, l.ID+".json")
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(out, "✅ %s (%d entries) -> %s\n", l.ID, l.EntryCount(), path)
	}

	return nil
}
