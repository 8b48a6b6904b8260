package translate

import (
	"slices"

	"github.com/c360studio/semontology/ontology"
	"github.com/c360studio/semontology/rdf"
)

// part is one contributing kind of a describe query and the filter an
// axiom of that kind must pass.
type part struct {
	kind ontology.AxiomKind
	keep func(ontology.Axiom) bool
}

// describe concatenates the filtered streams of parts in order, merging
// equal axioms within each kind.
func (r *Registry) describe(g rdf.Reader, cfg Config, parts []part) ([]ontology.Object[ontology.Axiom], error) {
	var out []ontology.Object[ontology.Axiom]
	for _, p := range parts {
		objs, err := r.Collect(g, p.kind, cfg)
		if err != nil {
			return nil, err
		}
		for _, o := range objs {
			if p.keep(o.Value()) {
				out = append(out, o)
			}
		}
	}
	return out, nil
}

func containsKey[T ontology.Keyed](ops []T, v ontology.Keyed) bool {
	return slices.ContainsFunc(ops, func(op T) bool { return ontology.Equal(op, v) })
}

// ClassAxioms returns the axioms about cls: sub-class axioms with cls as
// the sub class, equivalent and disjoint class axioms containing it, and
// disjoint unions it owns.
func (r *Registry) ClassAxioms(g rdf.Reader, cls ontology.Class, cfg Config) ([]ontology.Object[ontology.Axiom], error) {
	return r.describe(g, cfg, []part{
		{ontology.KindSubClassOf, func(a ontology.Axiom) bool {
			return ontology.Equal(a.(*ontology.SubClassOf).Sub, cls)
		}},
		{ontology.KindEquivalentClasses, func(a ontology.Axiom) bool {
			return containsKey(a.(*ontology.EquivalentClasses).Classes, cls)
		}},
		{ontology.KindDisjointClasses, func(a ontology.Axiom) bool {
			return containsKey(a.(*ontology.DisjointClasses).Classes, cls)
		}},
		{ontology.KindDisjointUnion, func(a ontology.Axiom) bool {
			return a.(*ontology.DisjointUnion).Class == cls
		}},
	})
}

// ObjectPropertyAxioms returns the axioms about p.
func (r *Registry) ObjectPropertyAxioms(g rdf.Reader, p ontology.ObjectPropertyExpression, cfg Config) ([]ontology.Object[ontology.Axiom], error) {
	parts := []part{
		{ontology.KindSubObjectPropertyOf, func(a ontology.Axiom) bool {
			return ontology.Equal(a.(*ontology.SubObjectPropertyOf).Sub, p)
		}},
		{ontology.KindEquivalentObjectProperties, func(a ontology.Axiom) bool {
			return containsKey(a.(*ontology.EquivalentObjectProperties).Properties, p)
		}},
		{ontology.KindDisjointObjectProperties, func(a ontology.Axiom) bool {
			return containsKey(a.(*ontology.DisjointObjectProperties).Properties, p)
		}},
		{ontology.KindInverseObjectProperties, func(a ontology.Axiom) bool {
			ax := a.(*ontology.InverseObjectProperties)
			return ontology.Equal(ax.First, p) || ontology.Equal(ax.Second, p)
		}},
		{ontology.KindObjectPropertyDomain, func(a ontology.Axiom) bool {
			return ontology.Equal(a.(*ontology.ObjectPropertyDomain).Property, p)
		}},
		{ontology.KindObjectPropertyRange, func(a ontology.Axiom) bool {
			return ontology.Equal(a.(*ontology.ObjectPropertyRange).Property, p)
		}},
	}
	for _, k := range ontology.Kinds() {
		if k.IsObjectPropertyCharacteristic() {
			parts = append(parts, part{k, func(a ontology.Axiom) bool {
				return ontology.Equal(a.(*ontology.ObjectPropertyCharacteristic).Property, p)
			}})
		}
	}
	return r.describe(g, cfg, parts)
}

// DataPropertyAxioms returns the axioms about p.
func (r *Registry) DataPropertyAxioms(g rdf.Reader, p ontology.DataProperty, cfg Config) ([]ontology.Object[ontology.Axiom], error) {
	return r.describe(g, cfg, []part{
		{ontology.KindSubDataPropertyOf, func(a ontology.Axiom) bool {
			return a.(*ontology.SubDataPropertyOf).Sub == p
		}},
		{ontology.KindEquivalentDataProperties, func(a ontology.Axiom) bool {
			return slices.Contains(a.(*ontology.EquivalentDataProperties).Properties, p)
		}},
		{ontology.KindDisjointDataProperties, func(a ontology.Axiom) bool {
			return slices.Contains(a.(*ontology.DisjointDataProperties).Properties, p)
		}},
		{ontology.KindDataPropertyDomain, func(a ontology.Axiom) bool {
			return a.(*ontology.DataPropertyDomain).Property == p
		}},
		{ontology.KindDataPropertyRange, func(a ontology.Axiom) bool {
			return a.(*ontology.DataPropertyRange).Property == p
		}},
		{ontology.KindFunctionalDataProperty, func(a ontology.Axiom) bool {
			return a.(*ontology.FunctionalDataProperty).Property == p
		}},
	})
}

// IndividualAxioms returns the axioms about ind: its class assertions, the
// same and different individual axioms containing it, and the property
// assertions it is the subject of.
func (r *Registry) IndividualAxioms(g rdf.Reader, ind ontology.Individual, cfg Config) ([]ontology.Object[ontology.Axiom], error) {
	return r.describe(g, cfg, []part{
		{ontology.KindClassAssertion, func(a ontology.Axiom) bool {
			return a.(*ontology.ClassAssertion).Individual == ind
		}},
		{ontology.KindSameIndividual, func(a ontology.Axiom) bool {
			return slices.Contains(a.(*ontology.SameIndividual).Individuals, ind)
		}},
		{ontology.KindDifferentIndividuals, func(a ontology.Axiom) bool {
			return slices.Contains(a.(*ontology.DifferentIndividuals).Individuals, ind)
		}},
		{ontology.KindObjectPropertyAssertion, func(a ontology.Axiom) bool {
			return a.(*ontology.ObjectPropertyAssertion).Subject == ind
		}},
		{ontology.KindDataPropertyAssertion, func(a ontology.Axiom) bool {
			return a.(*ontology.DataPropertyAssertion).Subject == ind
		}},
	})
}
