package loader

import (
	"context"

	"github.com/c360studio/semontology/ontology"
	"github.com/c360studio/semontology/rdf"
)

// DocumentSource names a document to load. A non-nil Graph is a
// pass-through source: it is used as is and nothing is read.
type DocumentSource struct {
	Locator string
	Graph   *rdf.Graph
	// Format is an optional hint for the readers.
	Format rdf.Format
}

// GraphReader is the primary, statement-level document reader. It returns
// a FormatError for documents it cannot parse.
type GraphReader interface {
	ReadGraph(ctx context.Context, src DocumentSource) (*rdf.Graph, rdf.Format, error)
}

// GraphReaderFunc adapts a function to GraphReader.
type GraphReaderFunc func(ctx context.Context, src DocumentSource) (*rdf.Graph, rdf.Format, error)

func (f GraphReaderFunc) ReadGraph(ctx context.Context, src DocumentSource) (*rdf.Graph, rdf.Format, error) {
	return f(ctx, src)
}

// AxiomReader is the secondary, axiom-level document reader. Ontologies it
// loads along the way are registered into reg, never into the caller's
// registry.
type AxiomReader interface {
	ReadAxioms(ctx context.Context, src DocumentSource, reg *Overlay) (*rdf.Graph, rdf.Format, error)
}

// IRIMapper maps an ontology IRI to a document locator.
type IRIMapper interface {
	DocumentIRI(iri string) (string, bool)
}

// IRIMapperFunc adapts a function to IRIMapper.
type IRIMapperFunc func(iri string) (string, bool)

func (f IRIMapperFunc) DocumentIRI(iri string) (string, bool) { return f(iri) }

// DocumentSourceMapper maps an ontology IRI to a document source. It is
// consulted before the IRIMapper.
type DocumentSourceMapper interface {
	DocumentSource(iri string) (DocumentSource, bool)
}

// DocumentSourceMapperFunc adapts a function to DocumentSourceMapper.
type DocumentSourceMapperFunc func(iri string) (DocumentSource, bool)

func (f DocumentSourceMapperFunc) DocumentSource(iri string) (DocumentSource, bool) { return f(iri) }

// Resident is an ontology already held by the caller.
type Resident struct {
	Graph  *rdf.Graph
	Format rdf.Format
	Source string
}

// Registry is the caller's ontology registry. The loader only reads it.
type Registry interface {
	Ontology(iri string) (Resident, bool)
}

// findResident looks iri up in reg, retrying with collapsed file: slashes.
func findResident(reg Registry, iri string) (Resident, bool) {
	if reg == nil {
		return Resident{}, false
	}
	if r, ok := reg.Ontology(iri); ok {
		return r, true
	}
	if n := ontology.NormalizeIRI(iri); n != iri {
		return reg.Ontology(n)
	}
	return Resident{}, false
}

// Overlay is a registry derived from another for the duration of one
// secondary read. Lookups fall through to the base; registrations stay in
// the overlay so a failed read leaves the base untouched.
type Overlay struct {
	base  Registry
	local map[string]Resident
	order []string
}

// NewOverlay creates an overlay over base, which may be nil.
func NewOverlay(base Registry) *Overlay {
	return &Overlay{base: base, local: make(map[string]Resident)}
}

// Ontology looks iri up in the overlay, then in the base.
func (o *Overlay) Ontology(iri string) (Resident, bool) {
	if r, ok := o.local[iri]; ok {
		return r, true
	}
	return findResident(o.base, iri)
}

// Register records an ontology loaded during the read.
func (o *Overlay) Register(iri string, r Resident) {
	if _, ok := o.local[iri]; !ok {
		o.order = append(o.order, iri)
	}
	o.local[iri] = r
}

// Registered returns the ontologies registered in the overlay, in order.
func (o *Overlay) Registered() []Resident {
	out := make([]Resident, 0, len(o.order))
	for _, iri := range o.order {
		out = append(out, o.local[iri])
	}
	return out
}
