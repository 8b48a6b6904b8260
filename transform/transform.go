// Package transform normalises freshly loaded ontology graphs before
// axioms are read from them.
//
// Passes run over the assembled import closure: each pass sees the whole
// union as context but only rewrites one constituent graph at a time, so
// the statistics can be attributed back to the document they came from.
package transform

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/c360studio/semontology/loader"
	"github.com/c360studio/semontology/rdf"
	"github.com/c360studio/semontology/vocabulary/owl"
)

// Result counts the statements a pass changed in one graph.
type Result struct {
	Added   int
	Removed int
}

// Pass rewrites g. view is the whole assembled ontology g belongs to and
// must only be read.
type Pass interface {
	Name() string
	Apply(ctx context.Context, view rdf.Reader, g *rdf.Graph) (Result, error)
}

// Pipeline runs passes in order. It implements loader.Pipeline.
type Pipeline struct {
	passes []Pass
	logger *slog.Logger
}

var _ loader.Pipeline = (*Pipeline)(nil)

// New creates a pipeline running passes in order.
func New(passes ...Pass) *Pipeline {
	return &Pipeline{passes: passes, logger: slog.Default()}
}

// Default returns the standard pipeline: RDFS vocabulary is lifted to OWL,
// then implicit declarations are added.
func Default() *Pipeline {
	return New(RDFSVocabulary{}, ImplicitDeclarations{})
}

// WithLogger sets the logger and returns p.
func (p *Pipeline) WithLogger(l *slog.Logger) *Pipeline {
	p.logger = l
	return p
}

// Passes returns the pass names in run order.
func (p *Pipeline) Passes() []string {
	names := make([]string, len(p.passes))
	for i, pass := range p.passes {
		names[i] = pass.Name()
	}
	return names
}

// Transform runs every pass over every graph of u that skip does not
// exclude. Only passes that changed a graph are reported.
func (p *Pipeline) Transform(ctx context.Context, u *rdf.UnionGraph, skip func(*rdf.Graph) bool) ([]loader.Stats, error) {
	var stats []loader.Stats
	graphs := u.Graphs()
	for _, pass := range p.passes {
		for _, g := range graphs {
			if skip != nil && skip(g) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			res, err := pass.Apply(ctx, u, g)
			if err != nil {
				return nil, fmt.Errorf("pass %s: %w", pass.Name(), err)
			}
			if res.Added == 0 && res.Removed == 0 {
				continue
			}
			p.logger.Debug("Graph transformed", "pass", pass.Name(), "added", res.Added, "removed", res.Removed)
			stats = append(stats, loader.Stats{Pass: pass.Name(), Graph: g, Added: res.Added, Removed: res.Removed})
		}
	}
	return stats, nil
}

// builtin reports whether iri belongs to one of the reserved vocabularies.
func builtin(iri string) bool {
	for _, ns := range []string{owl.RDFNamespace, owl.RDFSNamespace, owl.OWLNamespace, owl.XSDNamespace} {
		if strings.HasPrefix(iri, ns) {
			return true
		}
	}
	return false
}

// edit collects changes so passes never mutate a graph they are reading.
type edit struct {
	add    []rdf.Triple
	remove []rdf.Triple
}

func (e *edit) apply(g *rdf.Graph) Result {
	var res Result
	for _, t := range e.remove {
		if g.Remove(t) {
			res.Removed++
		}
	}
	for _, t := range e.add {
		if g.Add(t) {
			res.Added++
		}
	}
	return res
}
