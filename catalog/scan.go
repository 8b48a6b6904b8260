package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/semontology/loader"
	"github.com/c360studio/semontology/ontology"
	"github.com/c360studio/semontology/rdf"
)

// DefaultInclude matches the document syntaxes the readers understand.
var DefaultInclude = []string{"**/*.nt", "**/*.ntriples", "**/*.yaml", "**/*.yml"}

// Scan rescans every directory and replaces the scanned entries. Explicit
// entries are untouched. Documents that cannot be identified are skipped.
func (c *Catalog) Scan(ctx context.Context) error {
	found := make(map[string]Entry)
	for _, d := range c.Directories() {
		entries, err := c.scanDirectory(ctx, d)
		if err != nil {
			return fmt.Errorf("scan %s: %w", d.Path, err)
		}
		for _, e := range entries {
			key := ontology.NormalizeIRI(e.IRI)
			if prev, dup := found[key]; dup && prev.Location != e.Location {
				c.logger.Warn("Ontology found in several documents", "iri", e.IRI, "kept", prev.Location, "skipped", e.Location)
				continue
			}
			found[key] = e
		}
	}

	c.mu.Lock()
	c.scanned = found
	c.mu.Unlock()

	c.logger.Debug("Catalog scanned", "directories", len(c.dirs), "entries", len(found))
	return nil
}

// Matches reports whether path, relative to d, is a document d covers.
func (d Directory) Matches(rel string) bool {
	rel = filepath.ToSlash(rel)
	include := d.Include
	if len(include) == 0 {
		include = DefaultInclude
	}
	for _, p := range d.Exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return false
		}
	}
	for _, p := range include {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func (c *Catalog) scanDirectory(ctx context.Context, d Directory) ([]Entry, error) {
	fsys := os.DirFS(d.Path)
	include := d.Include
	if len(include) == 0 {
		include = DefaultInclude
	}

	var files []string
	for _, pattern := range include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if d.Matches(m) {
				files = append(files, m)
			}
		}
	}
	slices.Sort(files)
	files = slices.Compact(files)

	ids := make([]ontology.ID, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			id, err := identify(fsys, rel)
			if err != nil {
				c.logger.Debug("Skipping unidentifiable document", "path", rel, "error", err)
				return nil
			}
			ids[i] = id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var entries []Entry
	for i, rel := range files {
		id := ids[i]
		if id.IsAnonymous() {
			continue
		}
		loc := filepath.Join(d.Path, filepath.FromSlash(rel))
		if id.IRI != "" {
			entries = append(entries, Entry{IRI: id.IRI, Location: loc})
		}
		if id.Version != "" {
			entries = append(entries, Entry{IRI: id.Version, Location: loc})
		}
	}
	return entries, nil
}

// identify reads the ontology ID declared by a document.
func identify(fsys fs.FS, path string) (ontology.ID, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return ontology.ID{}, err
	}
	switch rdf.FormatForPath(path) {
	case rdf.FormatNTriples:
		g := rdf.NewGraph()
		if _, err := rdf.DecodeNTriples(bytes.NewReader(content), g); err != nil {
			return ontology.ID{}, err
		}
		_, id := loader.Identify(g)
		return id, nil
	case rdf.FormatAxiomYAML:
		var header struct {
			Ontology string `yaml:"ontology"`
			Version  string `yaml:"version"`
		}
		if err := yaml.Unmarshal(content, &header); err != nil {
			return ontology.ID{}, err
		}
		return ontology.ID{IRI: header.Ontology, Version: header.Version}, nil
	default:
		return ontology.ID{}, fmt.Errorf("no identifier for %s", path)
	}
}
