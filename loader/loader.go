package loader

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/c360studio/semontology/rdf"
)

// Stats reports what one transform pass did to one graph.
type Stats struct {
	Pass    string
	Graph   *rdf.Graph
	Added   int
	Removed int
}

// Pipeline normalises an assembled ontology. Graphs for which skip returns
// true must be left untouched.
type Pipeline interface {
	Transform(ctx context.Context, g *rdf.UnionGraph, skip func(*rdf.Graph) bool) ([]Stats, error)
}

// Result is the outcome of a successful Load.
type Result struct {
	// Root is the composite of the requested document.
	Root *Composite
	// Ontologies holds a composite for every record created by the load,
	// root first.
	Ontologies []*Composite
	Warnings   []Warning
}

// Loader resolves a document and its import closure.
type Loader struct {
	cfg      Config
	primary  GraphReader
	second   AxiomReader
	mapper   IRIMapper
	sources  DocumentSourceMapper
	registry Registry
	pipeline Pipeline
	logger   *slog.Logger
	metrics  *Metrics
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithConfig sets the load configuration.
func WithConfig(cfg Config) LoaderOption {
	return func(l *Loader) { l.cfg = cfg }
}

// WithPrimaryReader sets the statement-level reader.
func WithPrimaryReader(r GraphReader) LoaderOption {
	return func(l *Loader) { l.primary = r }
}

// WithSecondaryReader sets the fallback axiom-level reader.
func WithSecondaryReader(r AxiomReader) LoaderOption {
	return func(l *Loader) { l.second = r }
}

// WithIRIMapper sets the IRI to document mapper.
func WithIRIMapper(m IRIMapper) LoaderOption {
	return func(l *Loader) { l.mapper = m }
}

// WithDocumentSourceMapper sets the IRI to document source mapper.
func WithDocumentSourceMapper(m DocumentSourceMapper) LoaderOption {
	return func(l *Loader) { l.sources = m }
}

// WithRegistry sets the registry of ontologies the caller already holds.
func WithRegistry(r Registry) LoaderOption {
	return func(l *Loader) { l.registry = r }
}

// WithPipeline sets the transform pipeline.
func WithPipeline(p Pipeline) LoaderOption {
	return func(l *Loader) { l.pipeline = p }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

// WithMetrics sets the metrics sink. Nil disables metrics.
func WithMetrics(m *Metrics) LoaderOption {
	return func(l *Loader) { l.metrics = m }
}

// New creates a Loader.
func New(opts ...LoaderOption) *Loader {
	l := &Loader{cfg: NewConfig(), logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Config returns the load configuration.
func (l *Loader) Config() Config { return l.cfg }

func (l *Loader) fetcher() *Fetcher {
	return &Fetcher{
		primary:   l.primary,
		secondary: l.second,
		iriMapper: l.mapper,
		sources:   l.sources,
		registry:  l.registry,
		cfg:       l.cfg,
		logger:    l.logger,
		metrics:   l.metrics,
	}
}

// Load reads src, assembles its import closure and runs the transform
// pipeline over it. Nothing of a failed load is returned.
func (l *Loader) Load(ctx context.Context, src DocumentSource) (*Result, error) {
	start := time.Now()
	res, err := l.load(ctx, src)
	l.metrics.loadDone(start, err)
	if err != nil {
		l.logger.Debug("Load failed", "source", src.Locator, "error", err)
		return nil, err
	}
	l.logger.Debug("Load complete",
		"ontology", res.Root.Record().Name(),
		"ontologies", len(res.Ontologies),
		"warnings", len(res.Warnings),
		"duration", time.Since(start))
	return res, nil
}

func (l *Loader) load(ctx context.Context, src DocumentSource) (*Result, error) {
	s := NewSession()
	f := l.fetcher()
	b := &Builder{fetcher: f, cfg: l.cfg, logger: l.logger, metrics: l.metrics}

	root, err := f.Fetch(ctx, src, s)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src.Locator, err)
	}
	comp, err := b.Build(ctx, root, s)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", root.Name(), err)
	}
	if l.pipeline != nil && l.cfg.PerformTransformation() && !root.NoTransform() {
		if err := l.transform(ctx, comp, s); err != nil {
			return nil, fmt.Errorf("transform %s: %w", root.Name(), err)
		}
	}

	res := &Result{Root: comp, Ontologies: []*Composite{comp}}
	for _, rec := range s.Records() {
		if rec == root || !rec.IsFresh() {
			continue
		}
		c, err := b.Build(ctx, rec, s)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", rec.Name(), err)
		}
		res.Ontologies = append(res.Ontologies, c)
	}
	for _, c := range res.Ontologies {
		c.record.setProcessed()
	}
	res.Warnings = s.Warnings()
	return res, nil
}

// transform runs the pipeline once over the root composite and attributes
// the per-graph statistics back to the records.
func (l *Loader) transform(ctx context.Context, comp *Composite, s *Session) error {
	skip := func(g *rdf.Graph) bool {
		rec := s.recordFor(g)
		return rec != nil && (!rec.IsFresh() || rec.NoTransform())
	}
	stats, err := l.pipeline.Transform(ctx, comp.Graph(), skip)
	if err != nil {
		return err
	}
	for _, st := range stats {
		rec := s.recordFor(st.Graph)
		if rec == nil {
			l.logger.Warn("Transform stats for unknown graph", "pass", st.Pass, "ontology", comp.Record().Name())
			continue
		}
		rec.stats = append(rec.stats, st)
	}
	return nil
}
