package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/langdocs/internal/app"
	"github.com/MrSnakeDoc/langdocs/internal/catalog"
	"github.com/MrSnakeDoc/langdocs/internal/validate"
)

type validateOptions struct {
	strict       bool
	format       string
	perPartition bool
}

var validateOpts validateOptions

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the content tree and print every diagnostic",
	Long: `Validate loads every language, assembles its partitions and reports all defects at once.
The exit status is 1 when any error is found, or any warning with --strict.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		fsys, _, err := app.ContentFS(cfg.ContentDir)
		if err != nil {
			return err
		}

		ok, err := runValidate(cmd.Context(), fsys, validateOpts, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if !ok {
			return errCheckFailed
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateOpts.strict, "strict", false, "treat warnings as failures")
	validateCmd.Flags().StringVar(&validateOpts.format, "format", "text", "output format: text or json")
	validateCmd.Flags().BoolVar(&validateOpts.perPartition, "per-partition", false, "also validate each partition on its own")
}

// validateOutput is the JSON form of a validate run
type validateOutput struct {
	OK         bool                         `json:"ok"`
	Errors     int                          `json:"errors"`
	Warnings   int                          `json:"warnings"`
	Reports    []validate.Report            `json:"reports"`
	Partitions map[string][]validate.Report `json:"partitions,omitempty"`
}

// runValidate writes the reports to out and tells whether the content passes
func runValidate(ctx context.Context, fsys fs.FS, opts validateOptions, out io.Writer) (bool, error) {
	if opts.format != "text" && opts.format != "json" {
		return false, fmt.Errorf("unknown format %q (want text or json)", opts.format)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cat, err := catalog.Build(ctx, fsys)
	if err != nil {
		return false, err
	}

	result := validateOutput{Reports: cat.Reports}
	result.Errors, result.Warnings = cat.Counts()

	if opts.perPartition {
		result.Partitions, err = catalog.BuildPartitions(ctx, fsys)
		if err != nil {
			return false, err
		}
		for _, reports := range result.Partitions {
			for _, r := range reports {
				result.Errors += len(r.Errors())
				result.Warnings += len(r.Warnings())
			}
		}
	}

	result.OK = result.Errors == 0 && (!opts.strict || result.Warnings == 0)

	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return result.OK, enc.Encode(result)
	}

	writeText(out, result)
	return result.OK, nil
}

func writeText(out io.Writer, result validateOutput) {
	for _, r := range result.Reports {
		writeReport(out, r.Language, r)
	}

	if len(result.Partitions) > 0 {
		dirs := make([]string, 0, len(result.Partitions))
		for dir := range result.Partitions {
			dirs = append(dirs, dir)
		}
		sort.Strings(dirs)

		fmt.Fprintln(out, "\nper partition:")
		for _, dir := range dirs {
			for i, r := range result.Partitions[dir] {
				writeReport(out, fmt.Sprintf("%s partition %d", dir, i+1), r)
			}
		}
	}

	status := "✅"
	if !result.OK {
		status = "❌"
	}
	fmt.Fprintf(out, "\n%s %d error(s), %d warning(s)\n", status, result.Errors, result.Warnings)
}

func writeReport(out io.Writer, label string, r validate.Report) {
	fmt.Fprintf(out, "%s: %d error(s), %d warning(s)", label, len(r.Errors()), len(r.Warnings()))
	if codes := r.Codes(); len(codes) > 0 {
		names := make([]string, len(codes))
		for i, c := range codes {
			names[i] = string(c)
		}
		fmt.Fprintf(out, " [%s]", strings.Join(names, ", "))
	}
	fmt.Fprintln(out)
	for _, d := range r.Diagnostics {
		fmt.Fprintf(out, "  %s\n", d)
	}
}
