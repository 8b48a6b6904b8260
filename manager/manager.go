// Package manager keeps the ontologies a process has loaded. It is the
// registry the loader consults for already-resident imports, and gives
// axiom-level access to each registered graph.
package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/c360studio/semontology/loader"
	"github.com/c360studio/semontology/ontology"
	"github.com/c360studio/semontology/translate"
)

// Common manager errors.
var (
	// ErrAlreadyLoaded is returned when a load would register an ontology
	// identity that is already present.
	ErrAlreadyLoaded = errors.New("ontology already loaded")

	// ErrNotFound is returned for unknown ontologies.
	ErrNotFound = errors.New("ontology not found")

	// ErrAxiomNotFound is returned when removing an axiom the ontology
	// does not contain.
	ErrAxiomNotFound = errors.New("axiom not found")
)

// Manager is a concurrency-safe ontology registry.
type Manager struct {
	mu         sync.RWMutex
	ontologies map[string]*Ontology
	order      []string

	loaderOpts []loader.LoaderOption
	cfg        loader.Config
	axioms     *translate.Registry
	logger     *slog.Logger
}

var _ loader.Registry = (*Manager)(nil)

// Option configures a Manager.
type Option func(*Manager)

// WithLoaderOptions sets the options every load is run with. The manager
// always adds itself as the loader's registry.
func WithLoaderOptions(opts ...loader.LoaderOption) Option {
	return func(m *Manager) { m.loaderOpts = append(m.loaderOpts, opts...) }
}

// WithConfig sets the load configuration.
func WithConfig(cfg loader.Config) Option {
	return func(m *Manager) { m.cfg = cfg }
}

// WithTranslators sets the axiom translator registry.
func WithTranslators(r *translate.Registry) Option {
	return func(m *Manager) { m.axioms = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// New creates an empty Manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		ontologies: make(map[string]*Ontology),
		cfg:        loader.NewConfig(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.axioms == nil {
		m.axioms = newRegistry(m.logger)
	}
	return m
}

// newRegistry returns a translator registry whose readers share equal
// expressions across every ontology of the manager.
func newRegistry(logger *slog.Logger) *translate.Registry {
	factory, err := ontology.NewDataFactory(ontology.DefaultFactorySize)
	if err != nil {
		logger.Warn("Expression sharing disabled", "error", err)
	}
	return translate.NewRegistry(translate.WithLogger(logger), translate.WithFactory(factory))
}

// Config returns the load configuration.
func (m *Manager) Config() loader.Config { return m.cfg }

// Load reads src with its imports and registers every ontology the load
// created. Nothing is registered unless the whole load succeeds.
func (m *Manager) Load(ctx context.Context, src loader.DocumentSource) (*Ontology, error) {
	opts := append([]loader.LoaderOption{
		loader.WithConfig(m.cfg),
		loader.WithLogger(m.logger),
	}, m.loaderOpts...)
	opts = append(opts, loader.WithRegistry(m))

	res, err := loader.New(opts...).Load(ctx, src)
	if err != nil {
		return nil, err
	}

	created := make([]*Ontology, 0, len(res.Ontologies))
	for _, c := range res.Ontologies {
		created = append(created, m.wrap(c))
	}
	created[0].warnings = res.Warnings

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range created {
		if _, ok := m.ontologies[o.key]; ok {
			return nil, fmt.Errorf("register %s: %w", o.key, ErrAlreadyLoaded)
		}
	}
	for _, o := range created {
		m.ontologies[o.key] = o
		m.order = append(m.order, o.key)
	}
	m.logger.Info("Ontology loaded",
		"ontology", created[0].key,
		"registered", len(created),
		"warnings", len(res.Warnings))
	return created[0], nil
}

func (m *Manager) wrap(c *loader.Composite) *Ontology {
	rec := c.Record()
	return &Ontology{
		key:     rec.Key(),
		id:      rec.ID(),
		source:  rec.Source(),
		format:  rec.Format(),
		comp:    c,
		graph:   rec.Graph(),
		axioms:  m.axioms,
		cfg:     m.cfg.Translate(),
		logger:  m.logger,
		imports: c.Imports(),
	}
}

// Ontology implements loader.Registry. iri may be an ontology IRI or a
// version IRI.
func (m *Manager) Ontology(iri string) (loader.Resident, bool) {
	o, ok := m.Get(iri)
	if !ok {
		return loader.Resident{}, false
	}
	return loader.Resident{Graph: o.graph, Format: o.format, Source: o.source}, true
}

// Get returns the ontology registered under iri, matching ontology IRIs,
// version IRIs and file: locators in any slash form.
func (m *Manager) Get(iri string) (*Ontology, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if o, ok := m.ontologies[iri]; ok {
		return o, true
	}
	norm := ontology.NormalizeIRI(iri)
	for _, key := range m.order {
		o := m.ontologies[key]
		if o.id.Matches(iri) || o.id.Matches(norm) || ontology.NormalizeIRI(o.key) == norm {
			return o, true
		}
	}
	return nil, false
}

// List returns the registered ontologies in registration order.
func (m *Manager) List() []*Ontology {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Ontology, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, m.ontologies[key])
	}
	return out
}

// Len returns the number of registered ontologies.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ontologies)
}

// Remove unregisters the ontology with the given key.
func (m *Manager) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ontologies[key]; !ok {
		return fmt.Errorf("remove %s: %w", key, ErrNotFound)
	}
	delete(m.ontologies, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
