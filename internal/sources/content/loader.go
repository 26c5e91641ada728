package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Loader reads language manifests and partition files from a filesystem.
// The filesystem root holds one directory per language.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a new content loader
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{
		fsys: fsys,
	}
}

// Partition is one decoded partition file
type Partition struct {
	Name string
	File PartitionFile
}

// Source is the raw, decoded content of one language directory
type Source struct {
	Dir        string
	Manifest   Manifest
	Partitions []Partition
}

// Languages returns the language directories, sorted by name.
// A directory is a language when it contains a manifest.
func (l *Loader) Languages() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read content root: %w", err)
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := fs.Stat(l.fsys, path.Join(e.Name(), ManifestFile)); err != nil {
			continue
		}
		dirs = append(dirs, e.Name())
	}

	return dirs, nil
}

// Load reads one language directory: its manifest and every partition it lists, in order
func (l *Loader) Load(dir string) (Source, error) {
	src := Source{Dir: dir}

	manifestPath := path.Join(dir, ManifestFile)
	if err := l.decode(manifestPath, &src.Manifest); err != nil {
		return Source{}, err
	}

	src.Partitions = make([]Partition, 0, len(src.Manifest.Partitions))
	for _, name := range src.Manifest.Partitions {
		var pf PartitionFile
		if err := l.decode(path.Join(dir, name), &pf); err != nil {
			return Source{}, err
		}
		src.Partitions = append(src.Partitions, Partition{Name: name, File: pf})
	}

	return src, nil
}

// LoadAll loads every language concurrently.
// The result follows the order of Languages, whatever the scheduling.
func (l *Loader) LoadAll(ctx context.Context) ([]Source, error) {
	dirs, err := l.Languages()
	if err != nil {
		return nil, err
	}

	sources := make([]Source, len(dirs))
	g, ctx := errgroup.WithContext(ctx)

	for i, dir := range dirs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := l.Load(dir)
			if err != nil {
				return err
			}
			sources[i] = src
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return sources, nil
}

// decode parses a YAML file strictly: unknown keys are errors
func (l *Loader) decode(name string, out any) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to parse %s: empty document", name)
		}
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}

	return nil
}
