package manager

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/c360studio/semontology/loader"
	"github.com/c360studio/semontology/ontology"
	"github.com/c360studio/semontology/rdf"
	"github.com/c360studio/semontology/translate"
)

// Ontology is a registered ontology. Its axioms are read from the graph on
// first use and re-read after every change.
type Ontology struct {
	key     string
	id      ontology.ID
	source  string
	format  rdf.Format
	comp    *loader.Composite
	graph   *rdf.Graph
	imports []string

	warnings []loader.Warning

	axioms *translate.Registry
	cfg    translate.Config
	logger *slog.Logger

	mu     sync.Mutex
	cache  []ontology.Object[ontology.Axiom]
	cached bool
}

// Key returns the registry key.
func (o *Ontology) Key() string { return o.key }

// ID returns the ontology identity.
func (o *Ontology) ID() ontology.ID { return o.id }

// Source returns the document the ontology was read from.
func (o *Ontology) Source() string { return o.source }

// Format returns the document format.
func (o *Ontology) Format() rdf.Format { return o.format }

// Graph returns the ontology's own graph.
func (o *Ontology) Graph() *rdf.Graph { return o.graph }

// Closure returns the union view over the ontology and its imports.
func (o *Ontology) Closure() *rdf.UnionGraph { return o.comp.Graph() }

// Imports returns the keys of the import closure.
func (o *Ontology) Imports() []string { return slices.Clone(o.imports) }

// Warnings returns the import warnings of the load that created o.
func (o *Ontology) Warnings() []loader.Warning { return slices.Clone(o.warnings) }

// Axioms returns the axioms of the ontology's own graph, each with the
// statements it was read from.
func (o *Ontology) Axioms() ([]ontology.Object[ontology.Axiom], error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.load()
}

func (o *Ontology) load() ([]ontology.Object[ontology.Axiom], error) {
	if o.cached {
		return o.cache, nil
	}
	axioms, err := o.axioms.CollectAll(o.graph, o.cfg)
	if err != nil {
		return nil, fmt.Errorf("read axioms of %s: %w", o.key, err)
	}
	o.cache, o.cached = axioms, true
	o.logger.Debug("Axioms read", "ontology", o.key, "count", len(axioms))
	return axioms, nil
}

// ClassAxioms returns the axioms describing cls.
func (o *Ontology) ClassAxioms(cls ontology.Class) ([]ontology.Object[ontology.Axiom], error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.axioms.ClassAxioms(o.graph, cls, o.cfg)
}

// ObjectPropertyAxioms returns the axioms describing p.
func (o *Ontology) ObjectPropertyAxioms(p ontology.ObjectPropertyExpression) ([]ontology.Object[ontology.Axiom], error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.axioms.ObjectPropertyAxioms(o.graph, p, o.cfg)
}

// AddAxiom writes a into the ontology graph.
func (o *Ontology) AddAxiom(a ontology.Axiom) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.axioms.Write(o.graph, a); err != nil {
		return fmt.Errorf("add axiom to %s: %w", o.key, err)
	}
	o.cached = false
	return nil
}

// RemoveAxiom deletes the statements a was read from. Statements that
// other axioms were also read from are kept. An axiom written as several
// pairwise statements is removed through its parts. It returns the number
// of statements removed.
func (o *Ontology) RemoveAxiom(a ontology.Axiom) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	axioms, err := o.load()
	if err != nil {
		return 0, err
	}
	targets := make(map[int]bool)
	match := func(key string) int {
		return slices.IndexFunc(axioms, func(obj ontology.Object[ontology.Axiom]) bool { return obj.Key() == key })
	}
	if idx := match(a.Key()); idx >= 0 {
		targets[idx] = true
	} else {
		for _, part := range o.axioms.Decompose(a) {
			idx := match(part.Key())
			if idx < 0 {
				return 0, fmt.Errorf("remove axiom from %s: %w", o.key, ErrAxiomNotFound)
			}
			targets[idx] = true
		}
	}

	shared := make(map[rdf.Triple]bool)
	for i, other := range axioms {
		if targets[i] {
			continue
		}
		for _, t := range other.Triples() {
			shared[t] = true
		}
	}
	removed := 0
	for idx := range targets {
		for _, t := range axioms[idx].Triples() {
			if !shared[t] && o.graph.Remove(t) {
				removed++
			}
		}
	}
	o.cached = false
	return removed, nil
}
