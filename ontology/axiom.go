package ontology

import "github.com/c360studio/semontology/rdf"

// Axiom is one typed unit of logical content. Axioms are immutable values.
type Axiom interface {
	Keyed
	Kind() AxiomKind
	Annotations() []Annotation
}

func axiomKey(k AxiomKind, anns []Annotation, args ...string) string {
	return fn(k.String(), annotated(anns, args...)...)
}

// Declaration declares a named entity.
type Declaration struct {
	Entity Entity
	Annotated
}

// SubClassOf states that Sub is a subclass of Super.
type SubClassOf struct {
	Sub, Super ClassExpression
	Annotated
}

// EquivalentClasses states that all classes have the same instances.
type EquivalentClasses struct {
	Classes []ClassExpression
	Annotated
}

// DisjointClasses states that the classes are pairwise disjoint.
type DisjointClasses struct {
	Classes []ClassExpression
	Annotated
}

// DisjointUnion states that Class is the disjoint union of Classes.
type DisjointUnion struct {
	Class   Class
	Classes []ClassExpression
	Annotated
}

type SubObjectPropertyOf struct {
	Sub, Super ObjectPropertyExpression
	Annotated
}

type SubDataPropertyOf struct {
	Sub, Super DataProperty
	Annotated
}

type SubAnnotationPropertyOf struct {
	Sub, Super AnnotationProperty
	Annotated
}

type EquivalentObjectProperties struct {
	Properties []ObjectPropertyExpression
	Annotated
}

type EquivalentDataProperties struct {
	Properties []DataProperty
	Annotated
}

type DisjointObjectProperties struct {
	Properties []ObjectPropertyExpression
	Annotated
}

type DisjointDataProperties struct {
	Properties []DataProperty
	Annotated
}

// InverseObjectProperties states that First and Second are inverses.
// The pair is unordered.
type InverseObjectProperties struct {
	First, Second ObjectPropertyExpression
	Annotated
}

type ObjectPropertyDomain struct {
	Property ObjectPropertyExpression
	Domain   ClassExpression
	Annotated
}

type ObjectPropertyRange struct {
	Property ObjectPropertyExpression
	Range    ClassExpression
	Annotated
}

type DataPropertyDomain struct {
	Property DataProperty
	Domain   ClassExpression
	Annotated
}

type DataPropertyRange struct {
	Property DataProperty
	Range    DataRange
	Annotated
}

type AnnotationPropertyDomain struct {
	Property AnnotationProperty
	Domain   string
	Annotated
}

type AnnotationPropertyRange struct {
	Property AnnotationProperty
	Range    string
	Annotated
}

// ObjectPropertyCharacteristic is one of the unary object property axioms
// (functional, transitive and so on). Characteristic must satisfy
// AxiomKind.IsObjectPropertyCharacteristic.
type ObjectPropertyCharacteristic struct {
	Characteristic AxiomKind
	Property       ObjectPropertyExpression
	Annotated
}

type FunctionalDataProperty struct {
	Property DataProperty
	Annotated
}

type ClassAssertion struct {
	Class      ClassExpression
	Individual Individual
	Annotated
}

type ObjectPropertyAssertion struct {
	Property        ObjectPropertyExpression
	Subject, Object Individual
	Annotated
}

type DataPropertyAssertion struct {
	Property DataProperty
	Subject  Individual
	Value    Literal
	Annotated
}

type SameIndividual struct {
	Individuals []Individual
	Annotated
}

type DifferentIndividuals struct {
	Individuals []Individual
	Annotated
}

// AnnotationAssertion annotates Subject, an IRI or anonymous individual.
type AnnotationAssertion struct {
	Property AnnotationProperty
	Subject  Individual
	Value    rdf.Term
	Annotated
}

func (a *Declaration) Kind() AxiomKind                  { return KindDeclaration }
func (a *SubClassOf) Kind() AxiomKind                   { return KindSubClassOf }
func (a *EquivalentClasses) Kind() AxiomKind            { return KindEquivalentClasses }
func (a *DisjointClasses) Kind() AxiomKind              { return KindDisjointClasses }
func (a *DisjointUnion) Kind() AxiomKind                { return KindDisjointUnion }
func (a *SubObjectPropertyOf) Kind() AxiomKind          { return KindSubObjectPropertyOf }
func (a *SubDataPropertyOf) Kind() AxiomKind            { return KindSubDataPropertyOf }
func (a *SubAnnotationPropertyOf) Kind() AxiomKind      { return KindSubAnnotationPropertyOf }
func (a *EquivalentObjectProperties) Kind() AxiomKind   { return KindEquivalentObjectProperties }
func (a *EquivalentDataProperties) Kind() AxiomKind     { return KindEquivalentDataProperties }
func (a *DisjointObjectProperties) Kind() AxiomKind     { return KindDisjointObjectProperties }
func (a *DisjointDataProperties) Kind() AxiomKind       { return KindDisjointDataProperties }
func (a *InverseObjectProperties) Kind() AxiomKind      { return KindInverseObjectProperties }
func (a *ObjectPropertyDomain) Kind() AxiomKind         { return KindObjectPropertyDomain }
func (a *ObjectPropertyRange) Kind() AxiomKind          { return KindObjectPropertyRange }
func (a *DataPropertyDomain) Kind() AxiomKind           { return KindDataPropertyDomain }
func (a *DataPropertyRange) Kind() AxiomKind            { return KindDataPropertyRange }
func (a *AnnotationPropertyDomain) Kind() AxiomKind     { return KindAnnotationPropertyDomain }
func (a *AnnotationPropertyRange) Kind() AxiomKind      { return KindAnnotationPropertyRange }
func (a *ObjectPropertyCharacteristic) Kind() AxiomKind { return a.Characteristic }
func (a *FunctionalDataProperty) Kind() AxiomKind       { return KindFunctionalDataProperty }
func (a *ClassAssertion) Kind() AxiomKind               { return KindClassAssertion }
func (a *ObjectPropertyAssertion) Kind() AxiomKind      { return KindObjectPropertyAssertion }
func (a *DataPropertyAssertion) Kind() AxiomKind        { return KindDataPropertyAssertion }
func (a *SameIndividual) Kind() AxiomKind               { return KindSameIndividual }
func (a *DifferentIndividuals) Kind() AxiomKind         { return KindDifferentIndividuals }
func (a *AnnotationAssertion) Kind() AxiomKind          { return KindAnnotationAssertion }

func (a *Declaration) Key() string {
	return axiomKey(a.Kind(), a.List, a.Entity.Key())
}

func (a *SubClassOf) Key() string {
	return axiomKey(a.Kind(), a.List, a.Sub.Key(), a.Super.Key())
}

func (a *EquivalentClasses) Key() string { return axiomKey(a.Kind(), a.List, setKey(a.Classes)) }
func (a *DisjointClasses) Key() string   { return axiomKey(a.Kind(), a.List, setKey(a.Classes)) }

func (a *DisjointUnion) Key() string {
	return axiomKey(a.Kind(), a.List, a.Class.Key(), setKey(a.Classes))
}

func (a *SubObjectPropertyOf) Key() string {
	return axiomKey(a.Kind(), a.List, a.Sub.Key(), a.Super.Key())
}

func (a *SubDataPropertyOf) Key() string {
	return axiomKey(a.Kind(), a.List, a.Sub.Key(), a.Super.Key())
}

func (a *SubAnnotationPropertyOf) Key() string {
	return axiomKey(a.Kind(), a.List, a.Sub.Key(), a.Super.Key())
}

func (a *EquivalentObjectProperties) Key() string {
	return axiomKey(a.Kind(), a.List, setKey(a.Properties))
}

func (a *EquivalentDataProperties) Key() string {
	return axiomKey(a.Kind(), a.List, setKey(a.Properties))
}

func (a *DisjointObjectProperties) Key() string {
	return axiomKey(a.Kind(), a.List, setKey(a.Properties))
}

func (a *DisjointDataProperties) Key() string {
	return axiomKey(a.Kind(), a.List, setKey(a.Properties))
}

func (a *InverseObjectProperties) Key() string {
	return axiomKey(a.Kind(), a.List, setKey([]ObjectPropertyExpression{a.First, a.Second}))
}

func (a *ObjectPropertyDomain) Key() string {
	return axiomKey(a.Kind(), a.List, a.Property.Key(), a.Domain.Key())
}

func (a *ObjectPropertyRange) Key() string {
	return axiomKey(a.Kind(), a.List, a.Property.Key(), a.Range.Key())
}

func (a *DataPropertyDomain) Key() string {
	return axiomKey(a.Kind(), a.List, a.Property.Key(), a.Domain.Key())
}

func (a *DataPropertyRange) Key() string {
	return axiomKey(a.Kind(), a.List, a.Property.Key(), a.Range.Key())
}

func (a *AnnotationPropertyDomain) Key() string {
	return axiomKey(a.Kind(), a.List, a.Property.Key(), iriKey(a.Domain))
}

func (a *AnnotationPropertyRange) Key() string {
	return axiomKey(a.Kind(), a.List, a.Property.Key(), iriKey(a.Range))
}

func (a *ObjectPropertyCharacteristic) Key() string {
	return axiomKey(a.Kind(), a.List, a.Property.Key())
}

func (a *FunctionalDataProperty) Key() string {
	return axiomKey(a.Kind(), a.List, a.Property.Key())
}

func (a *ClassAssertion) Key() string {
	return axiomKey(a.Kind(), a.List, a.Class.Key(), a.Individual.Key())
}

func (a *ObjectPropertyAssertion) Key() string {
	return axiomKey(a.Kind(), a.List, a.Property.Key(), a.Subject.Key(), a.Object.Key())
}

func (a *DataPropertyAssertion) Key() string {
	return axiomKey(a.Kind(), a.List, a.Property.Key(), a.Subject.Key(), a.Value.Key())
}

func (a *SameIndividual) Key() string       { return axiomKey(a.Kind(), a.List, setKey(a.Individuals)) }
func (a *DifferentIndividuals) Key() string { return axiomKey(a.Kind(), a.List, setKey(a.Individuals)) }

func (a *AnnotationAssertion) Key() string {
	return axiomKey(a.Kind(), a.List, a.Property.Key(), a.Subject.Key(), a.Value.String())
}
