package loader

import (
	"slices"

	"github.com/c360studio/semontology/rdf"
)

// Session is the scope of one top-level Load. It is not safe for
// concurrent use and is never reused across loads.
type Session struct {
	// records maps identity keys and import IRIs to records.
	records map[string]*GraphRecord
	order   []*GraphRecord
	graphs  map[*rdf.Graph]*GraphRecord

	// sourceMap memoises IRI mapper answers.
	sourceMap map[string]string
	// loaded maps document locators of ontologies read by the secondary
	// reader to their records.
	loaded map[string]*GraphRecord
	// failed remembers imports that could not be resolved.
	failed map[string]error

	warnings []Warning
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{
		records:   make(map[string]*GraphRecord),
		graphs:    make(map[*rdf.Graph]*GraphRecord),
		sourceMap: make(map[string]string),
		loaded:    make(map[string]*GraphRecord),
		failed:    make(map[string]error),
	}
}

// register records rec under its identity key.
func (s *Session) register(rec *GraphRecord) {
	s.put(rec.Key(), rec)
}

// put records rec under key, keeping the first record seen for a key.
func (s *Session) put(key string, rec *GraphRecord) {
	if _, ok := s.records[key]; !ok {
		s.records[key] = rec
	}
	if _, ok := s.graphs[rec.graph]; !ok {
		s.graphs[rec.graph] = rec
		s.order = append(s.order, rec)
	}
}

// lookup returns the record cached under key.
func (s *Session) lookup(key string) *GraphRecord { return s.records[key] }

// recordFor returns the record owning g.
func (s *Session) recordFor(g *rdf.Graph) *GraphRecord { return s.graphs[g] }

// documentIRI resolves iri through m, asking m at most once per IRI.
func (s *Session) documentIRI(m IRIMapper, iri string) string {
	if doc, ok := s.sourceMap[iri]; ok {
		return doc
	}
	doc := iri
	if m != nil {
		if mapped, ok := m.DocumentIRI(iri); ok && mapped != "" {
			doc = mapped
		}
	}
	s.sourceMap[iri] = doc
	return doc
}

// warn records w once per ontology and import. It reports whether w was
// new.
func (s *Session) warn(w Warning) bool {
	for _, prev := range s.warnings {
		if prev.Ontology == w.Ontology && prev.Import == w.Import {
			return false
		}
	}
	s.warnings = append(s.warnings, w)
	return true
}

// Records returns the distinct records in the order they were first seen.
func (s *Session) Records() []*GraphRecord { return slices.Clone(s.order) }

// Warnings returns the recorded warnings.
func (s *Session) Warnings() []Warning { return slices.Clone(s.warnings) }
