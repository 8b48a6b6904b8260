package loader

import "github.com/c360studio/semontology/translate"

// MissingImportPolicy decides what happens when an import cannot be fetched.
type MissingImportPolicy int

const (
	// ImportThrow aborts the whole load.
	ImportThrow MissingImportPolicy = iota
	// ImportWarn records a Warning and continues with the other imports.
	ImportWarn
)

func (p MissingImportPolicy) String() string {
	if p == ImportWarn {
		return "warn"
	}
	return "throw"
}

// MissingHeaderPolicy decides how an imported document without an ontology
// header is attached.
type MissingHeaderPolicy int

const (
	// HeaderMergeIntoParent copies the statements of a headerless import
	// into the importing graph.
	HeaderMergeIntoParent MissingHeaderPolicy = iota
	// HeaderKeepSeparate keeps a headerless import as its own sub-graph.
	HeaderKeepSeparate
)

func (p MissingHeaderPolicy) String() string {
	if p == HeaderKeepSeparate {
		return "keep_separate"
	}
	return "merge_into_parent"
}

// Config is an immutable set of load options. Build it with NewConfig and
// derive variants with the With methods.
type Config struct {
	performTransformation         bool
	useAlternateLoaderOnly        bool
	missingImportPolicy           MissingImportPolicy
	missingHeaderPolicy           MissingHeaderPolicy
	ignoredImports                func(string) bool
	loadAnnotationAxioms          bool
	allowBulkAnnotationAssertions bool
	ignoreAnnotationAxiomOverlaps bool
}

// Option sets one load option.
type Option func(*Config)

// WithTransformation enables the transform pipeline for the root ontology.
func WithTransformation(on bool) Option {
	return func(c *Config) { c.performTransformation = on }
}

// WithAlternateLoaderOnly skips the primary reader entirely.
func WithAlternateLoaderOnly(on bool) Option {
	return func(c *Config) { c.useAlternateLoaderOnly = on }
}

// WithMissingImportPolicy sets the policy for unresolvable imports.
func WithMissingImportPolicy(p MissingImportPolicy) Option {
	return func(c *Config) { c.missingImportPolicy = p }
}

// WithMissingHeaderPolicy sets the policy for headerless imports.
func WithMissingHeaderPolicy(p MissingHeaderPolicy) Option {
	return func(c *Config) { c.missingHeaderPolicy = p }
}

// WithIgnoredImports skips every import IRI for which ignore returns true.
func WithIgnoredImports(ignore func(string) bool) Option {
	return func(c *Config) { c.ignoredImports = ignore }
}

// WithAnnotationAxioms sets the annotation reading options.
func WithAnnotationAxioms(load, allowBulk, ignoreOverlaps bool) Option {
	return func(c *Config) {
		c.loadAnnotationAxioms = load
		c.allowBulkAnnotationAssertions = allowBulk
		c.ignoreAnnotationAxiomOverlaps = ignoreOverlaps
	}
}

// NewConfig returns the default configuration with opts applied.
// Transformation is on, imports must resolve, and headerless imports are
// merged into their parent.
func NewConfig(opts ...Option) Config {
	tc := translate.DefaultConfig()
	c := Config{
		performTransformation:         true,
		missingImportPolicy:           ImportThrow,
		missingHeaderPolicy:           HeaderMergeIntoParent,
		loadAnnotationAxioms:          tc.LoadAnnotationAxioms,
		allowBulkAnnotationAssertions: tc.AllowBulkAnnotationAssertions,
		ignoreAnnotationAxiomOverlaps: tc.IgnoreAnnotationAxiomOverlaps,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// With returns a copy of c with opts applied.
func (c Config) With(opts ...Option) Config {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// PerformTransformation reports whether the pipeline runs after a load.
func (c Config) PerformTransformation() bool { return c.performTransformation }

// UseAlternateLoaderOnly reports whether documents skip the primary reader
// and go straight to the secondary one.
func (c Config) UseAlternateLoaderOnly() bool { return c.useAlternateLoaderOnly }

// MissingImportPolicy returns what happens when an import cannot be read.
func (c Config) MissingImportPolicy() MissingImportPolicy { return c.missingImportPolicy }

// MissingHeaderPolicy returns what happens to imported documents without
// an ontology IRI.
func (c Config) MissingHeaderPolicy() MissingHeaderPolicy { return c.missingHeaderPolicy }

// IsIgnoredImport reports whether iri is excluded from import resolution.
func (c Config) IsIgnoredImport(iri string) bool {
	return c.ignoredImports != nil && c.ignoredImports(iri)
}

// Translate returns the axiom reading options.
func (c Config) Translate() translate.Config {
	return translate.Config{
		LoadAnnotationAxioms:          c.loadAnnotationAxioms,
		AllowBulkAnnotationAssertions: c.allowBulkAnnotationAssertions,
		IgnoreAnnotationAxiomOverlaps: c.ignoreAnnotationAxiomOverlaps,
	}
}
