package loader

import (
	"slices"

	"github.com/google/uuid"

	"github.com/c360studio/semontology/ontology"
	"github.com/c360studio/semontology/rdf"
	"github.com/c360studio/semontology/vocabulary/owl"
)

var (
	ontologyType = rdf.IRI(owl.Ontology)
	importsPred  = rdf.IRI(owl.Imports)
	versionPred  = rdf.IRI(owl.VersionIRI)
)

// Identify returns the ontology header node of g and the identity it
// declares. IRI headers win over blank ones; among several, the smallest
// IRI is taken. The returned node is zero when g has no header.
func Identify(g rdf.Reader) (rdf.Term, ontology.ID) {
	var header rdf.Term
	for t := range g.Find(rdf.Any, rdf.Type, ontologyType) {
		switch {
		case header.IsZero():
			header = t.S
		case t.S.IsIRI() && (!header.IsIRI() || t.S.Value < header.Value):
			header = t.S
		}
	}
	if !header.IsIRI() {
		return header, ontology.ID{}
	}
	id := ontology.ID{IRI: header.Value}
	if v, ok := rdf.Object(g, header, versionPred); ok && v.IsIRI() {
		id.Version = v.Value
	}
	return header, id
}

// GraphRecord is the load bookkeeping for one physical graph: where it
// came from, whether it has been assembled yet, and its lazily read
// identity and imports.
type GraphRecord struct {
	graph       *rdf.Graph
	source      string
	format      rdf.Format
	fresh       bool
	noTransform bool
	suppressed  error

	identified bool
	header     rdf.Term
	id         ontology.ID
	key        string

	imports []string
	stats   []Stats
}

// newRecord wraps a graph read from source.
func newRecord(g *rdf.Graph, format rdf.Format, source string) *GraphRecord {
	return &GraphRecord{graph: g, format: format, source: source, fresh: true}
}

// residentRecord wraps the graph of an ontology the caller already holds.
// It is never assembled again and never transformed.
func residentRecord(r Resident) *GraphRecord {
	return &GraphRecord{graph: r.Graph, format: r.Format, source: r.Source, noTransform: true}
}

// Graph returns the base graph.
func (r *GraphRecord) Graph() *rdf.Graph { return r.graph }

// Source returns the document locator, empty for pass-through graphs.
func (r *GraphRecord) Source() string { return r.source }

// Format returns the detected document format.
func (r *GraphRecord) Format() rdf.Format { return r.format }

// IsFresh reports whether the record still has to be assembled.
func (r *GraphRecord) IsFresh() bool { return r.fresh }

// NoTransform reports whether the transform pipeline must skip this graph.
func (r *GraphRecord) NoTransform() bool { return r.noTransform }

// Suppressed returns the primary reader failure of a record produced by
// the secondary reader.
func (r *GraphRecord) Suppressed() error { return r.suppressed }

// Stats returns the transform statistics attributed to this graph.
func (r *GraphRecord) Stats() []Stats { return slices.Clone(r.stats) }

// setProcessed flips the record to processed. It never flips back.
func (r *GraphRecord) setProcessed() { r.fresh = false }

func (r *GraphRecord) identify() {
	if r.identified {
		return
	}
	r.identified = true
	r.header, r.id = Identify(r.graph)
	if r.id.IsAnonymous() {
		r.key = "urn:uuid:" + uuid.NewString()
	} else {
		r.key = r.id.IRI
	}
}

// ID returns the declared identity.
func (r *GraphRecord) ID() ontology.ID {
	r.identify()
	return r.id
}

// IsAnonymous reports whether the graph declares no ontology IRI.
func (r *GraphRecord) IsAnonymous() bool { return r.ID().IsAnonymous() }

// Key returns the session key: the ontology IRI, or a synthetic urn:uuid
// identity assigned the first time an anonymous record is seen.
func (r *GraphRecord) Key() string {
	r.identify()
	return r.key
}

// Name describes the record in logs.
func (r *GraphRecord) Name() string {
	if !r.IsAnonymous() {
		return r.ID().String()
	}
	if r.source != "" {
		return r.source
	}
	return r.Key()
}

// Imports returns the sorted, distinct import IRIs declared by the header.
func (r *GraphRecord) Imports() []string {
	if r.imports != nil {
		return slices.Clone(r.imports)
	}
	r.identify()
	r.imports = []string{}
	if !r.header.IsZero() {
		for _, o := range rdf.Objects(r.graph, r.header, importsPred) {
			if o.IsIRI() {
				r.imports = append(r.imports, o.Value)
			}
		}
	}
	slices.Sort(r.imports)
	r.imports = slices.Compact(r.imports)
	return slices.Clone(r.imports)
}
