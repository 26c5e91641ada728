// Package catalog builds the assembled, validated languages out of a content tree.
package catalog

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/MrSnakeDoc/langdocs/internal/domain"
	"github.com/MrSnakeDoc/langdocs/internal/sources/content"
	"github.com/MrSnakeDoc/langdocs/internal/validate"
)

// Catalog is the result of one build: languages in directory order and
// one report per language, index-aligned.
type Catalog struct {
	Languages []domain.LanguageConfig
	Reports   []validate.Report
}

// Build loads, maps, assembles and validates every language found in fsys.
// It only fails on I/O and YAML syntax errors; content defects end up in Reports.
func Build(ctx context.Context, fsys fs.FS) (*Catalog, error) {
	sources, err := content.NewLoader(fsys).LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	mapper := content.NewMapper()

	languages := make([]domain.LanguageConfig, len(sources))
	mapped := make([]validate.Report, len(sources))

	for i, src := range sources {
		cfg, report := assemble(mapper, src)
		languages[i] = cfg
		mapped[i] = report
	}

	checked := validate.Catalog(languages)

	reports := make([]validate.Report, len(sources))
	for i := range sources {
		r := validate.NewReport(languages[i].ID)
		r.Merge(mapped[i])
		r.Merge(checked[i])
		reports[i] = r
	}

	return &Catalog{Languages: languages, Reports: reports}, nil
}

// BuildPartitions validates each partition of every language on its own.
// Reports are keyed by language directory, one per partition in manifest order.
func BuildPartitions(ctx context.Context, fsys fs.FS) (map[string][]validate.Report, error) {
	sources, err := content.NewLoader(fsys).LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	mapper := content.NewMapper()
	out := make(map[string][]validate.Report, len(sources))

	for _, src := range sources {
		id := mapper.MapManifest(src.Manifest).ID
		reports := make([]validate.Report, 0, len(src.Partitions))
		for _, p := range src.Partitions {
			cats, diags := mapper.MapPartition(id, p)
			r := validate.NewReport(id)
			r.Add(diags...)
			r.Merge(validate.Partition(id, p.Name, cats))
			reports = append(reports, r)
		}
		out[src.Dir] = reports
	}

	return out, nil
}

func assemble(mapper *content.Mapper, src content.Source) (domain.LanguageConfig, validate.Report) {
	meta := mapper.MapManifest(src.Manifest)
	report := validate.NewReport(meta.ID)

	partitions := make([][]domain.Category, 0, len(src.Partitions))
	for _, p := range src.Partitions {
		cats, diags := mapper.MapPartition(meta.ID, p)
		report.Add(diags...)
		partitions = append(partitions, cats)
	}

	return domain.Assemble(meta, partitions...), report
}

// Language returns the language with the given id and its report
func (c *Catalog) Language(id string) (domain.LanguageConfig, validate.Report, bool) {
	for i, l := range c.Languages {
		if l.ID == id {
			return l, c.Reports[i], true
		}
	}
	return domain.LanguageConfig{}, validate.Report{}, false
}

// HasErrors reports whether any language has an error diagnostic
func (c *Catalog) HasErrors() bool {
	for _, r := range c.Reports {
		if r.HasErrors() {
			return true
		}
	}
	return false
}

// Counts returns the total number of errors and warnings
func (c *Catalog) Counts() (errs, warnings int) {
	for _, r := range c.Reports {
		errs += len(r.Errors())
		warnings += len(r.Warnings())
	}
	return errs, warnings
}
