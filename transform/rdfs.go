package transform

import (
	"context"
	"strings"

	"github.com/c360studio/semontology/rdf"
	"github.com/c360studio/semontology/vocabulary/owl"
)

var (
	rdfsClass    = rdf.IRI(owl.RDFSClass)
	rdfsDatatype = owl.RDFSDatatype
	rdfProperty  = rdf.IRI(owl.RDFProperty)
	rdfsDomain   = rdf.IRI(owl.RDFSDomain)
	rdfsRange    = rdf.IRI(owl.RDFSRange)
)

var propertyTypes = []string{owl.ObjectProperty, owl.DatatypeProperty, owl.AnnotationProperty}

// RDFSVocabulary replaces RDFS typing with OWL declarations: named
// rdfs:Class resources become owl:Class, and rdf:Property resources become
// data, object or annotation properties depending on their range and
// domain.
type RDFSVocabulary struct{}

// Name implements Pass.
func (RDFSVocabulary) Name() string { return "rdfs-vocabulary" }

// Apply implements Pass.
func (RDFSVocabulary) Apply(_ context.Context, view rdf.Reader, g *rdf.Graph) (Result, error) {
	var e edit
	for t := range g.Find(rdf.Any, rdf.Type, rdfsClass) {
		if !t.S.IsIRI() || builtin(t.S.Value) || rdf.HasType(view, t.S, rdfsDatatype) {
			continue
		}
		e.remove = append(e.remove, t)
		e.add = append(e.add, rdf.T(t.S, rdf.Type, rdf.IRI(owl.Class)))
	}
	for t := range g.Find(rdf.Any, rdf.Type, rdfProperty) {
		if !t.S.IsIRI() || builtin(t.S.Value) {
			continue
		}
		e.remove = append(e.remove, t)
		if typed(view, t.S, propertyTypes...) {
			continue
		}
		e.add = append(e.add, rdf.T(t.S, rdf.Type, rdf.IRI(propertyKind(view, t.S))))
	}
	return e.apply(g), nil
}

// propertyKind guesses the OWL property type of an rdf:Property.
func propertyKind(view rdf.Reader, p rdf.Term) string {
	ranges := rdf.Objects(view, p, rdfsRange)
	for _, r := range ranges {
		if isDatatype(view, r) {
			return owl.DatatypeProperty
		}
	}
	if len(ranges) > 0 || len(rdf.Objects(view, p, rdfsDomain)) > 0 {
		return owl.ObjectProperty
	}
	return owl.AnnotationProperty
}

func isDatatype(view rdf.Reader, t rdf.Term) bool {
	if !t.IsIRI() {
		return rdf.HasType(view, t, rdfsDatatype)
	}
	switch t.Value {
	case owl.RDFSLiteral, owl.RDFPlainLit, owl.RDFLangString:
		return true
	}
	return strings.HasPrefix(t.Value, owl.XSDNamespace) || rdf.HasType(view, t, rdfsDatatype)
}

// typed reports whether s has any of the given types in view.
func typed(view rdf.Reader, s rdf.Term, types ...string) bool {
	for _, typ := range types {
		if rdf.HasType(view, s, typ) {
			return true
		}
	}
	return false
}
