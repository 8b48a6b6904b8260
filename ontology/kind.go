package ontology

import "fmt"

// AxiomKind enumerates the supported axiom types. The declaration order is
// the order axioms are listed in.
type AxiomKind int

const (
	KindDeclaration AxiomKind = iota + 1

	KindSubClassOf
	KindEquivalentClasses
	KindDisjointClasses
	KindDisjointUnion

	KindSubObjectPropertyOf
	KindSubDataPropertyOf
	KindSubAnnotationPropertyOf
	KindEquivalentObjectProperties
	KindEquivalentDataProperties
	KindDisjointObjectProperties
	KindDisjointDataProperties
	KindInverseObjectProperties

	KindObjectPropertyDomain
	KindObjectPropertyRange
	KindDataPropertyDomain
	KindDataPropertyRange
	KindAnnotationPropertyDomain
	KindAnnotationPropertyRange

	KindFunctionalObjectProperty
	KindInverseFunctionalObjectProperty
	KindTransitiveObjectProperty
	KindSymmetricObjectProperty
	KindAsymmetricObjectProperty
	KindReflexiveObjectProperty
	KindIrreflexiveObjectProperty
	KindFunctionalDataProperty

	KindClassAssertion
	KindObjectPropertyAssertion
	KindDataPropertyAssertion
	KindSameIndividual
	KindDifferentIndividuals

	KindAnnotationAssertion

	kindEnd
)

var kindNames = [...]string{
	KindDeclaration:                     "Declaration",
	KindSubClassOf:                      "SubClassOf",
	KindEquivalentClasses:               "EquivalentClasses",
	KindDisjointClasses:                 "DisjointClasses",
	KindDisjointUnion:                   "DisjointUnion",
	KindSubObjectPropertyOf:             "SubObjectPropertyOf",
	KindSubDataPropertyOf:               "SubDataPropertyOf",
	KindSubAnnotationPropertyOf:         "SubAnnotationPropertyOf",
	KindEquivalentObjectProperties:      "EquivalentObjectProperties",
	KindEquivalentDataProperties:        "EquivalentDataProperties",
	KindDisjointObjectProperties:        "DisjointObjectProperties",
	KindDisjointDataProperties:          "DisjointDataProperties",
	KindInverseObjectProperties:         "InverseObjectProperties",
	KindObjectPropertyDomain:            "ObjectPropertyDomain",
	KindObjectPropertyRange:             "ObjectPropertyRange",
	KindDataPropertyDomain:              "DataPropertyDomain",
	KindDataPropertyRange:               "DataPropertyRange",
	KindAnnotationPropertyDomain:        "AnnotationPropertyDomain",
	KindAnnotationPropertyRange:         "AnnotationPropertyRange",
	KindFunctionalObjectProperty:        "FunctionalObjectProperty",
	KindInverseFunctionalObjectProperty: "InverseFunctionalObjectProperty",
	KindTransitiveObjectProperty:        "TransitiveObjectProperty",
	KindSymmetricObjectProperty:         "SymmetricObjectProperty",
	KindAsymmetricObjectProperty:        "AsymmetricObjectProperty",
	KindReflexiveObjectProperty:         "ReflexiveObjectProperty",
	KindIrreflexiveObjectProperty:       "IrreflexiveObjectProperty",
	KindFunctionalDataProperty:          "FunctionalDataProperty",
	KindClassAssertion:                  "ClassAssertion",
	KindObjectPropertyAssertion:         "ObjectPropertyAssertion",
	KindDataPropertyAssertion:           "DataPropertyAssertion",
	KindSameIndividual:                  "SameIndividual",
	KindDifferentIndividuals:            "DifferentIndividuals",
	KindAnnotationAssertion:             "AnnotationAssertion",
}

func (k AxiomKind) String() string {
	if k > 0 && k < kindEnd {
		return kindNames[k]
	}
	return fmt.Sprintf("AxiomKind(%d)", int(k))
}

// Kinds returns every axiom kind in declaration order.
func Kinds() []AxiomKind {
	out := make([]AxiomKind, 0, int(kindEnd)-1)
	for k := KindDeclaration; k < kindEnd; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind looks a kind up by name.
func ParseKind(name string) (AxiomKind, error) {
	for k := KindDeclaration; k < kindEnd; k++ {
		if kindNames[k] == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown axiom kind %q", name)
}

// IsObjectPropertyCharacteristic reports whether k is one of the unary
// object property characteristic kinds.
func (k AxiomKind) IsObjectPropertyCharacteristic() bool {
	return k >= KindFunctionalObjectProperty && k <= KindIrreflexiveObjectProperty
}
