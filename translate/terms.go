package translate

import (
	"strings"

	"github.com/c360studio/semontology/ontology"
	"github.com/c360studio/semontology/rdf"
	"github.com/c360studio/semontology/vocabulary/owl"
)

var (
	rdfType           = rdf.Type
	subClassOf        = rdf.IRI(owl.RDFSSubClassOf)
	subPropertyOf     = rdf.IRI(owl.RDFSSubPropertyOf)
	domain            = rdf.IRI(owl.RDFSDomain)
	rangeOf           = rdf.IRI(owl.RDFSRange)
	equivalentClass   = rdf.IRI(owl.EquivalentClass)
	disjointWith      = rdf.IRI(owl.DisjointWith)
	disjointUnionOf   = rdf.IRI(owl.DisjointUnionOf)
	equivalentProp    = rdf.IRI(owl.EquivalentProperty)
	propDisjointWith  = rdf.IRI(owl.PropertyDisjointWith)
	inverseOf         = rdf.IRI(owl.InverseOf)
	sameAs            = rdf.IRI(owl.SameAs)
	differentFrom     = rdf.IRI(owl.DifferentFrom)
	members           = rdf.IRI(owl.Members)
	distinctMembers   = rdf.IRI(owl.DistinctMembers)
	annotatedSource   = rdf.IRI(owl.AnnotatedSource)
	annotatedProperty = rdf.IRI(owl.AnnotatedProperty)
	annotatedTarget   = rdf.IRI(owl.AnnotatedTarget)
	intersectionOf    = rdf.IRI(owl.IntersectionOf)
	unionOf           = rdf.IRI(owl.UnionOf)
	complementOf      = rdf.IRI(owl.ComplementOf)
	oneOf             = rdf.IRI(owl.OneOf)
	onProperty        = rdf.IRI(owl.OnProperty)
	onClass           = rdf.IRI(owl.OnClass)
	onDataRange       = rdf.IRI(owl.OnDataRange)
	onDatatype        = rdf.IRI(owl.OnDatatype)
	withRestrictions  = rdf.IRI(owl.WithRestrictions)
	dtComplementOf    = rdf.IRI(owl.DatatypeComplementOf)
	someValuesFrom    = rdf.IRI(owl.SomeValuesFrom)
	allValuesFrom     = rdf.IRI(owl.AllValuesFrom)
	hasValue          = rdf.IRI(owl.HasValue)
	hasSelf           = rdf.IRI(owl.HasSelf)

	owlClass       = rdf.IRI(owl.Class)
	owlRestriction = rdf.IRI(owl.Restriction)
	rdfsDatatype   = rdf.IRI(owl.RDFSDatatype)
	owlAxiom       = rdf.IRI(owl.Axiom)
	owlAnnotation  = rdf.IRI(owl.Annotation)
)

var reservedNamespaces = []string{owl.RDFNamespace, owl.RDFSNamespace, owl.OWLNamespace, owl.XSDNamespace}

// isReserved reports whether iri belongs to a built-in vocabulary.
func isReserved(iri string) bool {
	for _, ns := range reservedNamespaces {
		if strings.HasPrefix(iri, ns) {
			return true
		}
	}
	return false
}

// anchorPredicates are the structural predicates of a reification anchor.
func isAnchorPredicate(p rdf.Term) bool {
	return p == rdfType || p == annotatedSource || p == annotatedProperty || p == annotatedTarget
}

// membersPredicates are the structural predicates of members-form axioms.
func isMembersPredicate(p rdf.Term) bool {
	return p == rdfType || p == members || p == distinctMembers
}

// cardinalityPredicates maps each cardinality predicate to its type and
// whether it is qualified.
var cardinalityPredicates = []struct {
	pred      rdf.Term
	qualified bool
	typ       ontology.CardinalityType
}{
	{rdf.IRI(owl.MinCardinality), false, ontology.MinCardinality},
	{rdf.IRI(owl.MaxCardinality), false, ontology.MaxCardinality},
	{rdf.IRI(owl.Cardinality), false, ontology.ExactCardinality},
	{rdf.IRI(owl.MinQualifiedCardinality), true, ontology.MinCardinality},
	{rdf.IRI(owl.MaxQualifiedCardinality), true, ontology.MaxCardinality},
	{rdf.IRI(owl.QualifiedCardinality), true, ontology.ExactCardinality},
}
