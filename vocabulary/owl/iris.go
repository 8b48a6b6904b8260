package owl

// Namespaces.
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace  = "http://www.w3.org/2002/07/owl#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"
)

// RDF terms.
const (
	RDFType       = RDFNamespace + "type"
	RDFFirst      = RDFNamespace + "first"
	RDFRest       = RDFNamespace + "rest"
	RDFNil        = RDFNamespace + "nil"
	RDFList       = RDFNamespace + "List"
	RDFProperty   = RDFNamespace + "Property"
	RDFLangString = RDFNamespace + "langString"
	RDFPlainLit   = RDFNamespace + "PlainLiteral"
)

// RDFS terms.
const (
	RDFSClass         = RDFSNamespace + "Class"
	RDFSDatatype      = RDFSNamespace + "Datatype"
	RDFSLiteral       = RDFSNamespace + "Literal"
	RDFSSubClassOf    = RDFSNamespace + "subClassOf"
	RDFSSubPropertyOf = RDFSNamespace + "subPropertyOf"
	RDFSDomain        = RDFSNamespace + "domain"
	RDFSRange         = RDFSNamespace + "range"
	RDFSLabel         = RDFSNamespace + "label"
	RDFSComment       = RDFSNamespace + "comment"
	RDFSSeeAlso       = RDFSNamespace + "seeAlso"
	RDFSIsDefinedBy   = RDFSNamespace + "isDefinedBy"
)

// OWL header and annotation terms.
const (
	Ontology              = OWLNamespace + "Ontology"
	Imports               = OWLNamespace + "imports"
	VersionIRI            = OWLNamespace + "versionIRI"
	VersionInfo           = OWLNamespace + "versionInfo"
	PriorVersion          = OWLNamespace + "priorVersion"
	BackwardCompatible    = OWLNamespace + "backwardCompatibleWith"
	IncompatibleWith      = OWLNamespace + "incompatibleWith"
	Deprecated            = OWLNamespace + "deprecated"
	Axiom                 = OWLNamespace + "Axiom"
	Annotation            = OWLNamespace + "Annotation"
	AnnotatedSource       = OWLNamespace + "annotatedSource"
	AnnotatedProperty     = OWLNamespace + "annotatedProperty"
	AnnotatedTarget       = OWLNamespace + "annotatedTarget"
	AllDisjointClasses    = OWLNamespace + "AllDisjointClasses"
	AllDisjointProperties = OWLNamespace + "AllDisjointProperties"
	AllDifferent          = OWLNamespace + "AllDifferent"
	Members               = OWLNamespace + "members"
	DistinctMembers       = OWLNamespace + "distinctMembers"
)

// OWL entity types.
const (
	Class              = OWLNamespace + "Class"
	ObjectProperty     = OWLNamespace + "ObjectProperty"
	DatatypeProperty   = OWLNamespace + "DatatypeProperty"
	AnnotationProperty = OWLNamespace + "AnnotationProperty"
	NamedIndividual    = OWLNamespace + "NamedIndividual"
	Restriction        = OWLNamespace + "Restriction"
	Thing              = OWLNamespace + "Thing"
	Nothing            = OWLNamespace + "Nothing"
)

// OWL property characteristics.
const (
	FunctionalProperty        = OWLNamespace + "FunctionalProperty"
	InverseFunctionalProperty = OWLNamespace + "InverseFunctionalProperty"
	TransitiveProperty        = OWLNamespace + "TransitiveProperty"
	SymmetricProperty         = OWLNamespace + "SymmetricProperty"
	AsymmetricProperty        = OWLNamespace + "AsymmetricProperty"
	ReflexiveProperty         = OWLNamespace + "ReflexiveProperty"
	IrreflexiveProperty       = OWLNamespace + "IrreflexiveProperty"
)

// OWL axiom predicates.
const (
	EquivalentClass         = OWLNamespace + "equivalentClass"
	DisjointWith            = OWLNamespace + "disjointWith"
	DisjointUnionOf         = OWLNamespace + "disjointUnionOf"
	EquivalentProperty      = OWLNamespace + "equivalentProperty"
	PropertyDisjointWith    = OWLNamespace + "propertyDisjointWith"
	InverseOf               = OWLNamespace + "inverseOf"
	SameAs                  = OWLNamespace + "sameAs"
	DifferentFrom           = OWLNamespace + "differentFrom"
	IntersectionOf          = OWLNamespace + "intersectionOf"
	UnionOf                 = OWLNamespace + "unionOf"
	ComplementOf            = OWLNamespace + "complementOf"
	OneOf                   = OWLNamespace + "oneOf"
	OnProperty              = OWLNamespace + "onProperty"
	OnClass                 = OWLNamespace + "onClass"
	OnDataRange             = OWLNamespace + "onDataRange"
	OnDatatype              = OWLNamespace + "onDatatype"
	WithRestrictions        = OWLNamespace + "withRestrictions"
	DatatypeComplementOf    = OWLNamespace + "datatypeComplementOf"
	SomeValuesFrom          = OWLNamespace + "someValuesFrom"
	AllValuesFrom           = OWLNamespace + "allValuesFrom"
	HasValue                = OWLNamespace + "hasValue"
	HasSelf                 = OWLNamespace + "hasSelf"
	MinCardinality          = OWLNamespace + "minCardinality"
	MaxCardinality          = OWLNamespace + "maxCardinality"
	Cardinality             = OWLNamespace + "cardinality"
	MinQualifiedCardinality = OWLNamespace + "minQualifiedCardinality"
	MaxQualifiedCardinality = OWLNamespace + "maxQualifiedCardinality"
	QualifiedCardinality    = OWLNamespace + "qualifiedCardinality"
)

// XSD datatypes and facets.
const (
	XSDString             = XSDNamespace + "string"
	XSDBoolean            = XSDNamespace + "boolean"
	XSDInteger            = XSDNamespace + "integer"
	XSDNonNegativeInteger = XSDNamespace + "nonNegativeInteger"
	XSDDecimal            = XSDNamespace + "decimal"
	XSDDateTime           = XSDNamespace + "dateTime"

	XSDLength         = XSDNamespace + "length"
	XSDMinLength      = XSDNamespace + "minLength"
	XSDMaxLength      = XSDNamespace + "maxLength"
	XSDPattern        = XSDNamespace + "pattern"
	XSDMinInclusive   = XSDNamespace + "minInclusive"
	XSDMaxInclusive   = XSDNamespace + "maxInclusive"
	XSDMinExclusive   = XSDNamespace + "minExclusive"
	XSDMaxExclusive   = XSDNamespace + "maxExclusive"
	XSDTotalDigits    = XSDNamespace + "totalDigits"
	XSDFractionDigits = XSDNamespace + "fractionDigits"
	RDFLangRange      = RDFNamespace + "langRange"
)

// BuiltinAnnotationProperties are the annotation properties every ontology
// may use without declaring them.
var BuiltinAnnotationProperties = []string{
	RDFSLabel,
	RDFSComment,
	RDFSSeeAlso,
	RDFSIsDefinedBy,
	VersionInfo,
	Deprecated,
	PriorVersion,
	BackwardCompatible,
	IncompatibleWith,
}

// Facets lists the constraining facets allowed in datatype restrictions.
var Facets = []string{
	XSDLength,
	XSDMinLength,
	XSDMaxLength,
	XSDPattern,
	XSDMinInclusive,
	XSDMaxInclusive,
	XSDMinExclusive,
	XSDMaxExclusive,
	XSDTotalDigits,
	XSDFractionDigits,
	RDFLangRange,
}

// IsBuiltinAnnotationProperty reports whether iri is a built-in annotation property.
func IsBuiltinAnnotationProperty(iri string) bool {
	for _, p := range BuiltinAnnotationProperties {
		if p == iri {
			return true
		}
	}
	return false
}

// IsFacet reports whether iri is a constraining facet.
func IsFacet(iri string) bool {
	for _, f := range Facets {
		if f == iri {
			return true
		}
	}
	return false
}
