package translate

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/c360studio/semontology/ontology"
	"github.com/c360studio/semontology/rdf"
)

// Registry holds one translator per axiom kind and dispatches reads and
// writes over statement graphs. A Registry is immutable after construction
// and safe for concurrent use; each read creates its own Reader.
type Registry struct {
	translators map[ontology.AxiomKind]Translator
	order       []ontology.AxiomKind
	factory     *ontology.DataFactory
	logger      *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithFactory shares sub-objects through f.
func WithFactory(f *ontology.DataFactory) Option {
	return func(r *Registry) { r.factory = f }
}

// WithLogger sets the registry logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTranslator replaces the translator for t.Kind.
func WithTranslator(t Translator) Option {
	return func(r *Registry) { r.translators[t.Kind] = t }
}

// NewRegistry creates a registry with the default translator for every kind.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		translators: make(map[ontology.AxiomKind]Translator),
		logger:      slog.Default(),
	}
	for _, t := range defaultTranslators() {
		r.translators[t.Kind] = t
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, k := range ontology.Kinds() {
		if _, ok := r.translators[k]; ok {
			r.order = append(r.order, k)
		}
	}
	return r
}

// Translator returns the translator for kind.
func (r *Registry) Translator(kind ontology.AxiomKind) (Translator, bool) {
	t, ok := r.translators[kind]
	return t, ok
}

// Kinds returns the supported kinds in declared order.
func (r *Registry) Kinds() []ontology.AxiomKind {
	out := make([]ontology.AxiomKind, len(r.order))
	copy(out, r.order)
	return out
}

// NewReader creates a Reader over g sharing the registry's factory.
func (r *Registry) NewReader(g rdf.Reader, cfg Config) *Reader {
	return NewReader(g, cfg, r.factory)
}

// Classify returns the kinds whose translators claim t, in declared order.
// A statement may belong to several kinds, or to none.
func (r *Registry) Classify(g rdf.Reader, t rdf.Triple, cfg Config) []ontology.AxiomKind {
	rd := r.NewReader(g, cfg)
	var out []ontology.AxiomKind
	for _, k := range r.order {
		if r.translators[k].Matches(rd, t) {
			out = append(out, k)
		}
	}
	return out
}

// Axioms lazily reads every axiom of kind from g. Equal axioms read from
// different statements are yielded separately; Collect merges them. A
// statement that is claimed but cannot be mapped yields an error and the
// iteration continues.
func (r *Registry) Axioms(g rdf.Reader, kind ontology.AxiomKind, cfg Config) iter.Seq2[ontology.Object[ontology.Axiom], error] {
	return func(yield func(ontology.Object[ontology.Axiom], error) bool) {
		t, ok := r.translators[kind]
		if !ok {
			yield(ontology.Object[ontology.Axiom]{}, fmt.Errorf("no translator for %s", kind))
			return
		}
		r.read(r.NewReader(g, cfg), t, yield)
	}
}

// AllAxioms lazily reads every axiom of every kind, in declared kind order.
func (r *Registry) AllAxioms(g rdf.Reader, cfg Config) iter.Seq2[ontology.Object[ontology.Axiom], error] {
	return func(yield func(ontology.Object[ontology.Axiom], error) bool) {
		rd := r.NewReader(g, cfg)
		for _, k := range r.order {
			if !r.read(rd, r.translators[k], yield) {
				return
			}
		}
	}
}

func (r *Registry) read(rd *Reader, t Translator, yield func(ontology.Object[ontology.Axiom], error) bool) bool {
	seen := make(map[rdf.Triple]struct{})
	for st := range t.Candidates(rd.g, rd.cfg) {
		if _, dup := seen[st]; dup {
			continue
		}
		seen[st] = struct{}{}
		if !t.Matches(rd, st) {
			continue
		}
		o, err := t.ToAxiom(rd, st)
		if err != nil {
			r.logger.Debug("Statement not translated", "kind", t.Kind, "statement", st, "error", err)
			if !yield(ontology.Object[ontology.Axiom]{}, fmt.Errorf("read %s from %s: %w", t.Kind, st, err)) {
				return false
			}
			continue
		}
		if !yield(o, nil) {
			return false
		}
	}
	return true
}

// Collect reads every axiom of kind, merging equal axioms into one object
// carrying the union of their statements. It stops at the first error.
func (r *Registry) Collect(g rdf.Reader, kind ontology.AxiomKind, cfg Config) ([]ontology.Object[ontology.Axiom], error) {
	return collect(r.Axioms(g, kind, cfg))
}

// CollectAll is Collect over every kind.
func (r *Registry) CollectAll(g rdf.Reader, cfg Config) ([]ontology.Object[ontology.Axiom], error) {
	return collect(r.AllAxioms(g, cfg))
}

func collect(seq iter.Seq2[ontology.Object[ontology.Axiom], error]) ([]ontology.Object[ontology.Axiom], error) {
	var out []ontology.Object[ontology.Axiom]
	for o, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return ontology.MergeAll(out), nil
}

// Write emits the statements encoding a into g.
func (r *Registry) Write(g rdf.Writer, a ontology.Axiom) error {
	t, ok := r.translators[a.Kind()]
	if !ok {
		return fmt.Errorf("no translator for %s", a.Kind())
	}
	return t.Write(NewWriter(g), a)
}

// Decompose returns the axioms that reading back Write(a) yields. Set
// axioms of more than two operands whose kind has no members form are
// written pairwise and come back as several axioms; every other axiom
// comes back as itself.
func (r *Registry) Decompose(a ontology.Axiom) []ontology.Axiom {
	t, ok := r.translators[a.Kind()]
	if !ok || t.Split == nil {
		return []ontology.Axiom{a}
	}
	return t.Split(a)
}
