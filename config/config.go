// Package config provides configuration loading and management for ontoload.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semontology/loader"
	"github.com/c360studio/semontology/storage"
)

// Config represents the complete ontoload configuration
type Config struct {
	Root    string        `yaml:"root"`
	Loader  LoaderConfig  `yaml:"loader"`
	Catalog CatalogConfig `yaml:"catalog"`
	NATS    NATSConfig    `yaml:"nats"`
	HTTP    HTTPConfig    `yaml:"http"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoaderConfig mirrors the import-closure load options. Boolean switches
// are pointers so a layered file can turn a default off.
type LoaderConfig struct {
	// Transform runs the normalization pipeline on the root ontology (default: true)
	Transform *bool `yaml:"transform,omitempty"`
	// AlternateOnly skips the N-Triples reader and reads axiom documents directly
	AlternateOnly *bool `yaml:"alternate_only,omitempty"`
	// MissingImports is "throw" or "warn"
	MissingImports string `yaml:"missing_imports"`
	// MissingHeaders is "merge_into_parent" or "keep_separate"
	MissingHeaders string `yaml:"missing_headers"`
	// LoadAnnotations reads annotation assertions and axiom annotations (default: true)
	LoadAnnotations *bool `yaml:"load_annotations,omitempty"`
	// AllowBulkAnnotations lets annotated annotation assertions stand as axioms
	AllowBulkAnnotations *bool `yaml:"allow_bulk_annotations,omitempty"`
	// IgnoreAnnotationOverlaps keeps domain/range/subPropertyOf statements on
	// annotation properties out of the logical axiom readers (default: true)
	IgnoreAnnotationOverlaps *bool `yaml:"ignore_annotation_overlaps,omitempty"`
	// Timeout bounds a single load call (0 = no limit)
	Timeout time.Duration `yaml:"timeout"`
}

// CatalogConfig configures IRI to document mapping.
type CatalogConfig struct {
	// Path is a YAML catalog file, relative to Root when not absolute
	Path string `yaml:"path"`
	// Directories are scanned for ontology documents
	Directories []string `yaml:"directories"`
	// Ignore lists doublestar patterns of import IRIs that are never fetched
	Ignore []string `yaml:"ignore"`
	// Watch rescans directories when documents change
	Watch bool `yaml:"watch"`
}

// NATSConfig configures the NATS connection used for kv:// documents
type NATSConfig struct {
	// URL is the NATS server URL (empty = kv:// locators are unavailable)
	URL string `yaml:"url"`
	// Bucket is the default document bucket
	Bucket string `yaml:"bucket"`
}

// HTTPConfig configures remote document fetches
type HTTPConfig struct {
	// Timeout is the per-request timeout
	Timeout time.Duration `yaml:"timeout"`
	// AllowPrivateNetworks permits fetching from loopback and private ranges
	AllowPrivateNetworks bool `yaml:"allow_private_networks"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	// Addr is the listen address for /metrics (empty = disabled)
	Addr string `yaml:"addr"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Root: "", // Auto-detect
		Loader: LoaderConfig{
			Transform:                boolPtr(true),
			AlternateOnly:            boolPtr(false),
			MissingImports:           loader.ImportThrow.String(),
			MissingHeaders:           loader.HeaderMergeIntoParent.String(),
			LoadAnnotations:          boolPtr(true),
			AllowBulkAnnotations:     boolPtr(false),
			IgnoreAnnotationOverlaps: boolPtr(true),
		},
		NATS: NATSConfig{
			Bucket: storage.DefaultBucket,
		},
		HTTP: HTTPConfig{
			Timeout: 30 * time.Second,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := ParseMissingImportPolicy(c.Loader.MissingImports); err != nil {
		return err
	}
	if _, err := ParseMissingHeaderPolicy(c.Loader.MissingHeaders); err != nil {
		return err
	}
	if c.Loader.Timeout < 0 {
		return fmt.Errorf("loader.timeout must not be negative")
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive")
	}
	if c.NATS.URL != "" && c.NATS.Bucket == "" {
		return fmt.Errorf("nats.bucket is required when nats.url is set")
	}
	return nil
}

// ParseMissingImportPolicy converts a policy name.
func ParseMissingImportPolicy(s string) (loader.MissingImportPolicy, error) {
	switch s {
	case "", loader.ImportThrow.String():
		return loader.ImportThrow, nil
	case loader.ImportWarn.String():
		return loader.ImportWarn, nil
	}
	return 0, fmt.Errorf("loader.missing_imports: unknown policy %q", s)
}

// ParseMissingHeaderPolicy converts a policy name.
func ParseMissingHeaderPolicy(s string) (loader.MissingHeaderPolicy, error) {
	switch s {
	case "", loader.HeaderMergeIntoParent.String():
		return loader.HeaderMergeIntoParent, nil
	case loader.HeaderKeepSeparate.String():
		return loader.HeaderKeepSeparate, nil
	}
	return 0, fmt.Errorf("loader.missing_headers: unknown policy %q", s)
}

// Options converts the section into load options. ignore, when non-nil,
// becomes the ignored-imports predicate.
func (lc LoaderConfig) Options(ignore func(string) bool) ([]loader.Option, error) {
	imports, err := ParseMissingImportPolicy(lc.MissingImports)
	if err != nil {
		return nil, err
	}
	headers, err := ParseMissingHeaderPolicy(lc.MissingHeaders)
	if err != nil {
		return nil, err
	}
	opts := []loader.Option{
		loader.WithTransformation(deref(lc.Transform, true)),
		loader.WithAlternateLoaderOnly(deref(lc.AlternateOnly, false)),
		loader.WithMissingImportPolicy(imports),
		loader.WithMissingHeaderPolicy(headers),
		loader.WithAnnotationAxioms(
			deref(lc.LoadAnnotations, true),
			deref(lc.AllowBulkAnnotations, false),
			deref(lc.IgnoreAnnotationOverlaps, true),
		),
	}
	if ignore != nil {
		opts = append(opts, loader.WithIgnoredImports(ignore))
	}
	return opts, nil
}

// LoadConfig builds the immutable loader configuration.
func (lc LoaderConfig) LoadConfig(ignore func(string) bool) (loader.Config, error) {
	opts, err := lc.Options(ignore)
	if err != nil {
		return loader.Config{}, err
	}
	return loader.NewConfig(opts...), nil
}

// CatalogPath returns the catalog file resolved against Root.
func (c *Config) CatalogPath() string {
	return c.resolve(c.Catalog.Path)
}

// CatalogDirectories returns the scan directories resolved against Root.
func (c *Config) CatalogDirectories() []string {
	dirs := make([]string, 0, len(c.Catalog.Directories))
	for _, d := range c.Catalog.Directories {
		dirs = append(dirs, c.resolve(d))
	}
	return dirs
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Root == "" || strings.Contains(p, ":") {
		return p
	}
	return filepath.Join(c.Root, p)
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// loadLayer reads a file without defaults so Merge only applies what the
// file sets.
func loadLayer(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Root != "" {
		c.Root = other.Root
	}

	// Loader
	mergeBool(&c.Loader.Transform, other.Loader.Transform)
	mergeBool(&c.Loader.AlternateOnly, other.Loader.AlternateOnly)
	mergeBool(&c.Loader.LoadAnnotations, other.Loader.LoadAnnotations)
	mergeBool(&c.Loader.AllowBulkAnnotations, other.Loader.AllowBulkAnnotations)
	mergeBool(&c.Loader.IgnoreAnnotationOverlaps, other.Loader.IgnoreAnnotationOverlaps)
	if other.Loader.MissingImports != "" {
		c.Loader.MissingImports = other.Loader.MissingImports
	}
	if other.Loader.MissingHeaders != "" {
		c.Loader.MissingHeaders = other.Loader.MissingHeaders
	}
	if other.Loader.Timeout != 0 {
		c.Loader.Timeout = other.Loader.Timeout
	}

	// Catalog
	if other.Catalog.Path != "" {
		c.Catalog.Path = other.Catalog.Path
	}
	if len(other.Catalog.Directories) > 0 {
		c.Catalog.Directories = other.Catalog.Directories
	}
	if len(other.Catalog.Ignore) > 0 {
		c.Catalog.Ignore = other.Catalog.Ignore
	}
	if other.Catalog.Watch {
		c.Catalog.Watch = true
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Bucket != "" {
		c.NATS.Bucket = other.NATS.Bucket
	}

	// HTTP
	if other.HTTP.Timeout != 0 {
		c.HTTP.Timeout = other.HTTP.Timeout
	}
	if other.HTTP.AllowPrivateNetworks {
		c.HTTP.AllowPrivateNetworks = true
	}

	if other.Metrics.Addr != "" {
		c.Metrics.Addr = other.Metrics.Addr
	}
}

func mergeBool(dst **bool, src *bool) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func boolPtr(v bool) *bool { return &v }

func deref(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
