package owl

import "github.com/c360studio/semstreams/vocabulary"

// Ontology header predicates.
const (
	// PredicateImports links an ontology to an ontology it imports.
	PredicateImports = "owl.ontology.imports"

	// PredicateVersionIRI names the version of an ontology.
	PredicateVersionIRI = "owl.ontology.version_iri"

	// PredicateVersionInfo is a free-text version annotation.
	PredicateVersionInfo = "owl.ontology.version_info"
)

// Class axiom predicates.
const (
	PredicateSubClassOf      = "owl.class.sub_class_of"
	PredicateEquivalentClass = "owl.class.equivalent_class"
	PredicateDisjointWith    = "owl.class.disjoint_with"
	PredicateDisjointUnionOf = "owl.class.disjoint_union_of"
)

// Property axiom predicates.
const (
	PredicateSubPropertyOf        = "owl.property.sub_property_of"
	PredicateEquivalentProperty   = "owl.property.equivalent_property"
	PredicatePropertyDisjointWith = "owl.property.disjoint_with"
	PredicateInverseOf            = "owl.property.inverse_of"
	PredicateDomain               = "owl.property.domain"
	PredicateRange                = "owl.property.range"
)

// Individual axiom predicates.
const (
	PredicateType          = "owl.individual.type"
	PredicateSameAs        = "owl.individual.same_as"
	PredicateDifferentFrom = "owl.individual.different_from"
)

// Annotation predicates.
const (
	PredicateLabel             = "owl.annotation.label"
	PredicateComment           = "owl.annotation.comment"
	PredicateAnnotatedSource   = "owl.annotation.annotated_source"
	PredicateAnnotatedProperty = "owl.annotation.annotated_property"
	PredicateAnnotatedTarget   = "owl.annotation.annotated_target"
	PredicateMembers           = "owl.annotation.members"
)

// Predicates returns the dotted names registered by this package.
func Predicates() []string {
	return []string{
		PredicateImports, PredicateVersionIRI, PredicateVersionInfo,
		PredicateSubClassOf, PredicateEquivalentClass, PredicateDisjointWith, PredicateDisjointUnionOf,
		PredicateSubPropertyOf, PredicateEquivalentProperty, PredicatePropertyDisjointWith,
		PredicateInverseOf, PredicateDomain, PredicateRange,
		PredicateType, PredicateSameAs, PredicateDifferentFrom,
		PredicateLabel, PredicateComment,
		PredicateAnnotatedSource, PredicateAnnotatedProperty, PredicateAnnotatedTarget, PredicateMembers,
	}
}

// IRIFor returns the standard IRI registered for a dotted predicate name,
// or "" when the name is unknown.
func IRIFor(predicate string) string {
	meta := vocabulary.GetPredicateMetadata(predicate)
	if meta == nil {
		return ""
	}
	return meta.StandardIRI
}

func init() {
	vocabulary.Register(PredicateImports,
		vocabulary.WithDescription("Ontology imported by this ontology"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Imports))

	vocabulary.Register(PredicateVersionIRI,
		vocabulary.WithDescription("Version IRI of an ontology"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(VersionIRI))

	vocabulary.Register(PredicateVersionInfo,
		vocabulary.WithDescription("Free-text version annotation"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(VersionInfo))

	vocabulary.Register(PredicateSubClassOf,
		vocabulary.WithDescription("Every instance of the subject class is an instance of the object class"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(RDFSSubClassOf))

	vocabulary.Register(PredicateEquivalentClass,
		vocabulary.WithDescription("Subject and object classes have the same instances"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(EquivalentClass))

	vocabulary.Register(PredicateDisjointWith,
		vocabulary.WithDescription("Subject and object classes share no instances"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DisjointWith))

	vocabulary.Register(PredicateDisjointUnionOf,
		vocabulary.WithDescription("Class is the disjoint union of the listed classes"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(DisjointUnionOf))

	vocabulary.Register(PredicateSubPropertyOf,
		vocabulary.WithDescription("Subject property implies the object property"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(RDFSSubPropertyOf))

	vocabulary.Register(PredicateEquivalentProperty,
		vocabulary.WithDescription("Subject and object properties relate the same pairs"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(EquivalentProperty))

	vocabulary.Register(PredicatePropertyDisjointWith,
		vocabulary.WithDescription("Subject and object properties never relate the same pair"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropertyDisjointWith))

	vocabulary.Register(PredicateInverseOf,
		vocabulary.WithDescription("Subject property is the inverse of the object property"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(InverseOf))

	vocabulary.Register(PredicateDomain,
		vocabulary.WithDescription("Class or datatype every subject of the property belongs to"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(RDFSDomain))

	vocabulary.Register(PredicateRange,
		vocabulary.WithDescription("Class or datatype every value of the property belongs to"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(RDFSRange))

	vocabulary.Register(PredicateType,
		vocabulary.WithDescription("Class membership of an individual"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(RDFType))

	vocabulary.Register(PredicateSameAs,
		vocabulary.WithDescription("Subject and object denote the same individual"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(SameAs),
		vocabulary.WithAlias(vocabulary.AliasTypeIdentity, 0))

	vocabulary.Register(PredicateDifferentFrom,
		vocabulary.WithDescription("Subject and object denote different individuals"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DifferentFrom))

	vocabulary.Register(PredicateLabel,
		vocabulary.WithDescription("Human-readable name of a resource"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(RDFSLabel),
		vocabulary.WithAlias(vocabulary.AliasTypeLabel, 1))

	vocabulary.Register(PredicateComment,
		vocabulary.WithDescription("Human-readable description of a resource"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(RDFSComment))

	vocabulary.Register(PredicateAnnotatedSource,
		vocabulary.WithDescription("Subject of the statement a reification anchor annotates"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(AnnotatedSource))

	vocabulary.Register(PredicateAnnotatedProperty,
		vocabulary.WithDescription("Predicate of the statement a reification anchor annotates"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(AnnotatedProperty))

	vocabulary.Register(PredicateAnnotatedTarget,
		vocabulary.WithDescription("Object of the statement a reification anchor annotates"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(AnnotatedTarget))

	vocabulary.Register(PredicateMembers,
		vocabulary.WithDescription("Operand list of a members-form n-ary axiom"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(Members))
}
