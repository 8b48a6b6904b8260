package transform

import (
	"context"

	"github.com/c360studio/semontology/rdf"
	"github.com/c360studio/semontology/vocabulary/owl"
)

var classPredicates = []string{owl.RDFSSubClassOf, owl.EquivalentClass, owl.DisjointWith}

var propertyPredicates = []string{owl.RDFSSubPropertyOf, owl.EquivalentProperty, owl.PropertyDisjointWith}

// ImplicitDeclarations declares entities that are used but never
// declared: operands of class axioms become classes, the undeclared side
// of a property axiom takes the type of the declared side, both operands
// of owl:inverseOf become object properties, and named instances of
// declared classes become named individuals.
type ImplicitDeclarations struct{}

// Name implements Pass.
func (ImplicitDeclarations) Name() string { return "implicit-declarations" }

// Apply implements Pass.
func (ImplicitDeclarations) Apply(_ context.Context, view rdf.Reader, g *rdf.Graph) (Result, error) {
	var e edit
	classes := make(map[rdf.Term]bool)
	declare := func(s rdf.Term, typ string) {
		if s.IsIRI() && !builtin(s.Value) && !rdf.HasType(view, s, typ) {
			e.add = append(e.add, rdf.T(s, rdf.Type, rdf.IRI(typ)))
			if typ == owl.Class {
				classes[s] = true
			}
		}
	}

	for _, pred := range classPredicates {
		for t := range g.Find(rdf.Any, rdf.IRI(pred), rdf.Any) {
			for _, n := range []rdf.Term{t.S, t.O} {
				if n.IsIRI() && !isDatatype(view, n) {
					declare(n, owl.Class)
				}
			}
		}
	}

	for _, pred := range propertyPredicates {
		for t := range g.Find(rdf.Any, rdf.IRI(pred), rdf.Any) {
			if typ, ok := propertyType(view, t.O); ok && !typed(view, t.S, propertyTypes...) {
				declare(t.S, typ)
			}
			if typ, ok := propertyType(view, t.S); ok && !typed(view, t.O, propertyTypes...) {
				declare(t.O, typ)
			}
		}
	}
	for t := range g.Find(rdf.Any, rdf.IRI(owl.InverseOf), rdf.Any) {
		declare(t.S, owl.ObjectProperty)
		declare(t.O, owl.ObjectProperty)
	}

	for t := range g.Find(rdf.Any, rdf.Type, rdf.Any) {
		if t.O.IsIRI() && !builtin(t.O.Value) && (classes[t.O] || rdf.HasType(view, t.O, owl.Class)) {
			declare(t.S, owl.NamedIndividual)
		}
	}
	return e.apply(g), nil
}

// propertyType returns the single declared property type of p.
func propertyType(view rdf.Reader, p rdf.Term) (string, bool) {
	var found string
	for _, typ := range propertyTypes {
		if rdf.HasType(view, p, typ) {
			if found != "" {
				return "", false
			}
			found = typ
		}
	}
	return found, found != ""
}
