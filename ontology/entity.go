package ontology

import (
	"fmt"

	"github.com/c360studio/semontology/rdf"
	"github.com/c360studio/semontology/vocabulary/owl"
)

// EntityType is the kind of a named entity.
type EntityType int

const (
	EntityClass EntityType = iota + 1
	EntityDatatype
	EntityObjectProperty
	EntityDataProperty
	EntityAnnotationProperty
	EntityNamedIndividual
)

var entityTypeIRIs = map[EntityType]string{
	EntityClass:              owl.Class,
	EntityDatatype:           owl.RDFSDatatype,
	EntityObjectProperty:     owl.ObjectProperty,
	EntityDataProperty:       owl.DatatypeProperty,
	EntityAnnotationProperty: owl.AnnotationProperty,
	EntityNamedIndividual:    owl.NamedIndividual,
}

var entityTypeNames = map[EntityType]string{
	EntityClass:              "Class",
	EntityDatatype:           "Datatype",
	EntityObjectProperty:     "ObjectProperty",
	EntityDataProperty:       "DataProperty",
	EntityAnnotationProperty: "AnnotationProperty",
	EntityNamedIndividual:    "NamedIndividual",
}

func (t EntityType) String() string {
	if s, ok := entityTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("EntityType(%d)", int(t))
}

// TypeIRI returns the rdf:type object declaring an entity of this type.
func (t EntityType) TypeIRI() string { return entityTypeIRIs[t] }

// EntityTypeForIRI maps a declaration type IRI back to an EntityType.
func EntityTypeForIRI(iri string) (EntityType, bool) {
	for t, v := range entityTypeIRIs {
		if v == iri {
			return t, true
		}
	}
	return 0, false
}

// Entity is a typed named entity.
type Entity struct {
	Type EntityType
	IRI  string
}

func (e Entity) Key() string { return fn(e.Type.String(), iriKey(e.IRI)) }

// Class is a named class.
type Class struct{ IRI string }

// Datatype is a named datatype.
type Datatype struct{ IRI string }

// ObjectProperty is a named object property.
type ObjectProperty struct{ IRI string }

// DataProperty is a named data property.
type DataProperty struct{ IRI string }

// AnnotationProperty is a named annotation property.
type AnnotationProperty struct{ IRI string }

func (c Class) Key() string              { return iriKey(c.IRI) }
func (d Datatype) Key() string           { return iriKey(d.IRI) }
func (p ObjectProperty) Key() string     { return iriKey(p.IRI) }
func (p DataProperty) Key() string       { return iriKey(p.IRI) }
func (p AnnotationProperty) Key() string { return iriKey(p.IRI) }

// Individual is a named or anonymous individual. Anonymous individuals are
// identified by their blank node label.
type Individual struct {
	IRI       string
	Anonymous string
}

// NamedIndividual returns a named individual.
func NamedIndividual(iri string) Individual { return Individual{IRI: iri} }

// AnonymousIndividual returns an anonymous individual.
func AnonymousIndividual(label string) Individual { return Individual{Anonymous: label} }

// IndividualFromTerm converts an IRI or blank node term.
func IndividualFromTerm(t rdf.Term) (Individual, bool) {
	switch {
	case t.IsIRI():
		return NamedIndividual(t.Value), true
	case t.IsBlank():
		return AnonymousIndividual(t.Value), true
	default:
		return Individual{}, false
	}
}

func (i Individual) IsAnonymous() bool { return i.IRI == "" }

func (i Individual) Term() rdf.Term {
	if i.IsAnonymous() {
		return rdf.Blank(i.Anonymous)
	}
	return rdf.IRI(i.IRI)
}

func (i Individual) Key() string { return i.Term().String() }

// Literal is a data value.
type Literal struct {
	Lexical  string
	Datatype string
	Lang     string
}

// LiteralFromTerm converts a literal term.
func LiteralFromTerm(t rdf.Term) Literal {
	return Literal{Lexical: t.Value, Datatype: t.Datatype, Lang: t.Lang}
}

func (l Literal) Term() rdf.Term {
	if l.Lang != "" {
		return rdf.LangLiteral(l.Lexical, l.Lang)
	}
	return rdf.Literal(l.Lexical, l.Datatype)
}

func (l Literal) Key() string { return l.Term().String() }
