// Package catalog maps ontology IRIs to the documents that hold them.
//
// A Catalog combines explicit entries from a YAML catalog file with entries
// discovered by scanning directories for ontology documents. It serves the
// loader as both its IRI mapper and its document-source mapper, and its
// ignore patterns decide which imports the loader skips.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/semontology/loader"
	"github.com/c360studio/semontology/ontology"
	"github.com/c360studio/semontology/rdf"
)

// ErrInvalidEntry is returned for catalog entries missing an IRI or
// location.
var ErrInvalidEntry = errors.New("invalid catalog entry")

// File is the catalog file layout.
//
//	entries:
//	  - iri: http://example.org/pizza
//	    location: pizza.nt
//	directories:
//	  - path: ontologies
//	    exclude: ["drafts/**"]
//	ignore:
//	  - "http://purl.org/dc/**"
type File struct {
	Entries     []Entry     `yaml:"entries,omitempty"`
	Directories []Directory `yaml:"directories,omitempty"`
	Ignore      []string    `yaml:"ignore,omitempty"`
}

// Entry maps one ontology IRI to a document.
type Entry struct {
	IRI      string `yaml:"iri"`
	Location string `yaml:"location"`
	// Format is an optional reader hint.
	Format string `yaml:"format,omitempty"`
}

// Directory is a directory scanned for ontology documents.
type Directory struct {
	Path    string   `yaml:"path"`
	Include []string `yaml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`
}

// Catalog resolves ontology IRIs to document locators. It is safe for
// concurrent use.
type Catalog struct {
	baseDir string
	dirs    []Directory
	ignore  []string
	logger  *slog.Logger

	mu       sync.RWMutex
	explicit map[string]Entry
	scanned  map[string]Entry
}

var (
	_ loader.IRIMapper            = (*Catalog)(nil)
	_ loader.DocumentSourceMapper = (*Catalog)(nil)
)

// Option configures a Catalog.
type Option func(*Catalog)

// WithBaseDir resolves relative locations and directories against dir.
func WithBaseDir(dir string) Option {
	return func(c *Catalog) { c.baseDir = dir }
}

// WithDirectories adds directories to scan.
func WithDirectories(dirs ...Directory) Option {
	return func(c *Catalog) { c.dirs = append(c.dirs, dirs...) }
}

// WithIgnore adds import IRI patterns to ignore.
func WithIgnore(patterns ...string) Option {
	return func(c *Catalog) { c.ignore = append(c.ignore, patterns...) }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) { c.logger = l }
}

// New creates an empty catalog.
func New(opts ...Option) (*Catalog, error) {
	c := &Catalog{
		logger:   slog.Default(),
		explicit: make(map[string]Entry),
		scanned:  make(map[string]Entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	for _, p := range c.ignore {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("ignore pattern %q: %w", p, doublestar.ErrBadPattern)
		}
	}
	return c, nil
}

// Load reads a catalog file. Relative paths in it are resolved against the
// file's directory unless WithBaseDir overrides that.
func Load(path string, opts ...Option) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolve catalog dir: %w", err)
	}
	return Parse(data, append([]Option{WithBaseDir(abs)}, opts...)...)
}

// Parse builds a catalog from catalog file content.
func Parse(data []byte, opts ...Option) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	opts = append(opts, WithDirectories(f.Directories...), WithIgnore(f.Ignore...))
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	for i, e := range f.Entries {
		if err := c.Add(e); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return c, nil
}

// Add registers an explicit entry. Explicit entries take precedence over
// scanned ones.
func (c *Catalog) Add(e Entry) error {
	if e.IRI == "" || e.Location == "" {
		return fmt.Errorf("%w: iri and location are required", ErrInvalidEntry)
	}
	if e.Format != "" {
		if _, err := rdf.ParseFormat(e.Format); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidEntry, err)
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.explicit[ontology.NormalizeIRI(e.IRI)] = e
	return nil
}

// Lookup returns the entry for iri.
func (c *Catalog) Lookup(iri string) (Entry, bool) {
	key := ontology.NormalizeIRI(iri)
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.explicit[key]; ok {
		return e, true
	}
	e, ok := c.scanned[key]
	return e, ok
}

// DocumentIRI implements loader.IRIMapper.
func (c *Catalog) DocumentIRI(iri string) (string, bool) {
	e, ok := c.Lookup(iri)
	if !ok {
		return "", false
	}
	return c.locate(e.Location), true
}

// DocumentSource implements loader.DocumentSourceMapper. Only entries that
// carry a format hint are served here; the rest go through DocumentIRI.
func (c *Catalog) DocumentSource(iri string) (loader.DocumentSource, bool) {
	e, ok := c.Lookup(iri)
	if !ok || e.Format == "" {
		return loader.DocumentSource{}, false
	}
	format, err := rdf.ParseFormat(e.Format)
	if err != nil {
		return loader.DocumentSource{}, false
	}
	return loader.DocumentSource{Locator: c.locate(e.Location), Format: format}, true
}

// Ignored reports whether an import IRI matches an ignore pattern.
func (c *Catalog) Ignored(iri string) bool {
	for _, p := range c.ignore {
		if ok, _ := doublestar.Match(p, iri); ok {
			return true
		}
	}
	return false
}

// Entries returns every entry, explicit ones shadowing scanned ones,
// sorted by IRI.
func (c *Catalog) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Entry, 0, len(c.explicit)+len(c.scanned))
	for k, e := range c.scanned {
		if _, shadowed := c.explicit[k]; !shadowed {
			out = append(out, e)
		}
	}
	for _, e := range c.explicit {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int { return strings.Compare(a.IRI, b.IRI) })
	return out
}

// Directories returns the scanned directories with resolved paths.
func (c *Catalog) Directories() []Directory {
	out := make([]Directory, len(c.dirs))
	for i, d := range c.dirs {
		d.Path = c.locate(d.Path)
		out[i] = d
	}
	return out
}

// locate resolves a relative filesystem location against the base dir.
// URLs and kv locators are returned as is.
func (c *Catalog) locate(loc string) string {
	if strings.Contains(loc, "://") || strings.HasPrefix(loc, "file:") || filepath.IsAbs(loc) || c.baseDir == "" {
		return loc
	}
	return filepath.Join(c.baseDir, loc)
}
