package translate

import (
	"iter"
	"slices"

	"github.com/c360studio/semontology/ontology"
	"github.com/c360studio/semontology/rdf"
	"github.com/c360studio/semontology/vocabulary/owl"
)

// defaultTranslators returns one translator per supported kind, in
// declaration order.
func defaultTranslators() []Translator {
	ts := []Translator{
		declarationTranslator(),

		binary[ontology.ClassExpression, ontology.ClassExpression]{
			kind: ontology.KindSubClassOf, predicate: subClassOf,
			subject: classOperand, object: classOperand,
			build: func(s, o ontology.ClassExpression, anns []ontology.Annotation) ontology.Axiom {
				return &ontology.SubClassOf{Sub: s, Super: o, Annotated: ontology.Annotate(anns...)}
			},
			parts: func(a ontology.Axiom) (ontology.ClassExpression, ontology.ClassExpression, bool) {
				ax, ok := a.(*ontology.SubClassOf)
				if !ok {
					return nil, nil, false
				}
				return ax.Sub, ax.Super, true
			},
		}.translator(),

		nary[ontology.ClassExpression]{
			kind: ontology.KindEquivalentClasses, predicate: equivalentClass, operand: classOperand,
			build: func(ops []ontology.ClassExpression, anns []ontology.Annotation) ontology.Axiom {
				return &ontology.EquivalentClasses{Classes: ops, Annotated: ontology.Annotate(anns...)}
			},
			parts: func(a ontology.Axiom) ([]ontology.ClassExpression, bool) {
				ax, ok := a.(*ontology.EquivalentClasses)
				if !ok {
					return nil, false
				}
				return ax.Classes, true
			},
		}.translator(),

		nary[ontology.ClassExpression]{
			kind: ontology.KindDisjointClasses, predicate: disjointWith, operand: classOperand,
			membersType: rdf.IRI(owl.AllDisjointClasses), membersPredicate: members,
			build: func(ops []ontology.ClassExpression, anns []ontology.Annotation) ontology.Axiom {
				return &ontology.DisjointClasses{Classes: ops, Annotated: ontology.Annotate(anns...)}
			},
			parts: func(a ontology.Axiom) ([]ontology.ClassExpression, bool) {
				ax, ok := a.(*ontology.DisjointClasses)
				if !ok {
					return nil, false
				}
				return ax.Classes, true
			},
		}.translator(),

		disjointUnionTranslator(),
	}

	ts = append(ts, subPropertyTranslators()...)
	ts = append(ts, propertySetTranslators()...)
	ts = append(ts, domainRangeTranslators()...)
	ts = append(ts, characteristicTranslators()...)
	ts = append(ts, assertionTranslators()...)
	ts = append(ts, annotationAssertionTranslator())
	return ts
}

func declarationTranslator() Translator {
	var types []rdf.Term
	for _, k := range []ontology.EntityType{
		ontology.EntityClass, ontology.EntityDatatype, ontology.EntityObjectProperty,
		ontology.EntityDataProperty, ontology.EntityAnnotationProperty, ontology.EntityNamedIndividual,
	} {
		types = append(types, rdf.IRI(k.TypeIRI()))
	}
	return Translator{
		Kind:       ontology.KindDeclaration,
		Candidates: byType(types...),
		Matches:    func(r *Reader, t rdf.Triple) bool { return r.IsDeclaration(t) },
		ToAxiom: func(r *Reader, t rdf.Triple) (ontology.Object[ontology.Axiom], error) {
			typ, _ := ontology.EntityTypeForIRI(t.O.Value)
			anns, err := r.annotations.Resolve(t)
			if err != nil {
				return ontology.Object[ontology.Axiom]{}, err
			}
			return assemble(r, t, anns, func(a []ontology.Annotation) ontology.Axiom {
				return &ontology.Declaration{
					Entity:    ontology.Entity{Type: typ, IRI: t.S.Value},
					Annotated: ontology.Annotate(a...),
				}
			}), nil
		},
		Write: func(w *Writer, a ontology.Axiom) error {
			ax, ok := a.(*ontology.Declaration)
			if !ok {
				return wrongKind(ontology.KindDeclaration, a)
			}
			w.Statement(rdf.T(rdf.IRI(ax.Entity.IRI), rdfType, rdf.IRI(ax.Entity.Type.TypeIRI())), ax.List)
			return nil
		},
	}
}

func disjointUnionTranslator() Translator {
	return Translator{
		Kind:       ontology.KindDisjointUnion,
		Candidates: byPredicate(disjointUnionOf),
		Matches: func(r *Reader, t rdf.Triple) bool {
			return t.P == disjointUnionOf && t.S.IsIRI() && r.IsClass(t.S) && allOperands(r, classOperand, t.O)
		},
		ToAxiom: func(r *Reader, t rdf.Triple) (ontology.Object[ontology.Axiom], error) {
			var zero ontology.Object[ontology.Axiom]
			ops, structural, err := listOperands(r, classOperand, t.S, t.O)
			if err != nil {
				return zero, err
			}
			anns, err := r.annotations.Resolve(t)
			if err != nil {
				return zero, err
			}
			return assemble(r, t, anns, func(a []ontology.Annotation) ontology.Axiom {
				return &ontology.DisjointUnion{
					Class:     ontology.Class{IRI: t.S.Value},
					Classes:   ops,
					Annotated: ontology.Annotate(a...),
				}
			}, structural), nil
		},
		Write: func(w *Writer, a ontology.Axiom) error {
			ax, ok := a.(*ontology.DisjointUnion)
			if !ok {
				return wrongKind(ontology.KindDisjointUnion, a)
			}
			items := make([]rdf.Term, len(ax.Classes))
			for i, c := range ax.Classes {
				t, err := w.ClassExpression(c)
				if err != nil {
					return err
				}
				items[i] = t
			}
			w.Statement(rdf.T(rdf.IRI(ax.Class.IRI), disjointUnionOf, w.List(items)), ax.List)
			return nil
		},
	}
}

// ignoreOverlap reports whether an annotation property statement should
// give way to an object or data property reading of the same statement.
func ignoreOverlap(check func(r *Reader, t rdf.Triple) bool) func(r *Reader, t rdf.Triple) bool {
	return func(r *Reader, t rdf.Triple) bool {
		return r.cfg.IgnoreAnnotationAxiomOverlaps && check(r, t)
	}
}

func subPropertyTranslators() []Translator {
	return []Translator{
		binary[ontology.ObjectPropertyExpression, ontology.ObjectPropertyExpression]{
			kind: ontology.KindSubObjectPropertyOf, predicate: subPropertyOf,
			subject: objectPropertyOperand, object: objectPropertyOperand,
			build: func(s, o ontology.ObjectPropertyExpression, anns []ontology.Annotation) ontology.Axiom {
				return &ontology.SubObjectPropertyOf{Sub: s, Super: o, Annotated: ontology.Annotate(anns...)}
			},
			parts: func(a ontology.Axiom) (ontology.ObjectPropertyExpression, ontology.ObjectPropertyExpression, bool) {
				ax, ok := a.(*ontology.SubObjectPropertyOf)
				if !ok {
					return nil, nil, false
				}
				return ax.Sub, ax.Super, true
			},
		}.translator(),

		binary[ontology.DataProperty, ontology.DataProperty]{
			kind: ontology.KindSubDataPropertyOf, predicate: subPropertyOf,
			subject: dataPropertyOperand, object: dataPropertyOperand,
			build: func(s, o ontology.DataProperty, anns []ontology.Annotation) ontology.Axiom {
				return &ontology.SubDataPropertyOf{Sub: s, Super: o, Annotated: ontology.Annotate(anns...)}
			},
			parts: func(a ontology.Axiom) (ontology.DataProperty, ontology.DataProperty, bool) {
				ax, ok := a.(*ontology.SubDataPropertyOf)
				if !ok {
					return ontology.DataProperty{}, ontology.DataProperty{}, false
				}
				return ax.Sub, ax.Super, true
			},
		}.translator(),

		binary[ontology.AnnotationProperty, ontology.AnnotationProperty]{
			kind: ontology.KindSubAnnotationPropertyOf, predicate: subPropertyOf,
			subject: annotationPropertyOperand, object: annotationPropertyOperand,
			exclude: ignoreOverlap(func(r *Reader, t rdf.Triple) bool {
				return (r.IsObjectProperty(t.S) && r.IsObjectProperty(t.O)) ||
					(r.IsDataProperty(t.S) && r.IsDataProperty(t.O))
			}),
			build: func(s, o ontology.AnnotationProperty, anns []ontology.Annotation) ontology.Axiom {
				return &ontology.SubAnnotationPropertyOf{Sub: s, Super: o, Annotated: ontology.Annotate(anns...)}
			},
			parts: func(a ontology.Axiom) (ontology.AnnotationProperty, ontology.AnnotationProperty, bool) {
				ax, ok := a.(*ontology.SubAnnotationPropertyOf)
				if !ok {
					return ontology.AnnotationProperty{}, ontology.AnnotationProperty{}, false
				}
				return ax.Sub, ax.Super, true
			},
		}.translator(),
	}
}

func propertySetTranslators() []Translator {
	allDisjointProperties := rdf.IRI(owl.AllDisjointProperties)
	return []Translator{
		nary[ontology.ObjectPropertyExpression]{
			kind: ontology.KindEquivalentObjectProperties, predicate: equivalentProp, operand: objectPropertyOperand,
			build: func(ops []ontology.ObjectPropertyExpression, anns []ontology.Annotation) ontology.Axiom {
				return &ontology.EquivalentObjectProperties{Properties: ops, Annotated: ontology.Annotate(anns...)}
			},
			parts: func(a ontology.Axiom) ([]ontology.ObjectPropertyExpression, bool) {
				ax, ok := a.(*ontology.EquivalentObjectProperties)
				if !ok {
					return nil, false
				}
				return ax.Properties, true
			},
		}.translator(),

		nary[ontology.DataProperty]{
			kind: ontology.KindEquivalentDataProperties, predicate: equivalentProp, operand: dataPropertyOperand,
			build: func(ops []ontology.DataProperty, anns []ontology.Annotation) ontology.Axiom {
				return &ontology.EquivalentDataProperties{Properties: ops, Annotated: ontology.Annotate(anns...)}
			},
			parts: func(a ontology.Axiom) ([]ontology.DataProperty, bool) {
				ax, ok := a.(*ontology.EquivalentDataProperties)
				if !ok {
					return nil, false
				}
				return ax.Properties, true
			},
		}.translator(),

		nary[ontology.ObjectPropertyExpression]{
			kind: ontology.KindDisjointObjectProperties, predicate: propDisjointWith, operand: objectPropertyOperand,
			membersType: allDisjointProperties, membersPredicate: members,
			build: func(ops []ontology.ObjectPropertyExpression, anns []ontology.Annotation) ontology.Axiom {
				return &ontology.DisjointObjectProperties{Properties: ops, Annotated: ontology.Annotate(anns...)}
			},
			parts: func(a ontology.Axiom) ([]ontology.ObjectPropertyExpression, bool) {
				ax, ok := a.(*ontology.DisjointObjectProperties)
				if !ok {
					return nil, false
				}
				return ax.Properties, true
			},
		}.translator(),

		nary[ontology.DataProperty]{
			kind: ontology.KindDisjointDataProperties, predicate: propDisjointWith, operand: dataPropertyOperand,
			membersType: allDisjointProperties, membersPredicate: members,
			build: func(ops []ontology.DataProperty, anns []ontology.Annotation) ontology.Axiom {
				return &ontology.DisjointDataProperties{Properties: ops, Annotated: ontology.Annotate(anns...)}
			},
			parts: func(a ontology.Axiom) ([]ontology.DataProperty, bool) {
				ax, ok := a.(*ontology.DisjointDataProperties)
				if !ok {
					return nil, false
				}
				return ax.Properties, true
			},
		}.translator(),

		binary[ontology.ObjectPropertyExpression, ontology.ObjectPropertyExpression]{
			kind: ontology.KindInverseObjectProperties, predicate: inverseOf,
			subject: namedObjectPropertyOperand, object: objectPropertyOperand,
			build: func(s, o ontology.ObjectPropertyExpression, anns []ontology.Annotation) ontology.Axiom {
				return &ontology.InverseObjectProperties{First: s, Second: o, Annotated: ontology.Annotate(anns...)}
			},
			parts: func(a ontology.Axiom) (ontology.ObjectPropertyExpression, ontology.ObjectPropertyExpression, bool) {
				ax, ok := a.(*ontology.InverseObjectProperties)
				if !ok {
					return nil, nil, false
				}
				return ax.First, ax.Second, true
			},
		}.translator(),
	}
}

func domainRangeTranslators() []Translator {
	return []Translator{
		binary[ontology.ObjectPropertyExpression, ontology.ClassExpression]{
			kind: ontology.KindObjectPropertyDomain, predicate: domain,
			subject: objectPropertyOperand, object: classOperand,
			build: func(p ontology.ObjectPropertyExpression, c ontology.ClassExpression, anns []ontology.Annotation) ontology.Axiom {
				return &ontology.ObjectPropertyDomain{Property: p, Domain: c, Annotated: ontology.Annotate(anns...)}
			},
			parts: func(a ontology.Axiom) (ontology.ObjectPropertyExpression, ontology.ClassExpression, bool) {
				ax, ok := a.(*ontology.ObjectPropertyDomain)
				if !ok {
					return nil, nil, false
				}
				return ax.Property, ax.Domain, true
			},
		}.translator(),

		binary[ontology.ObjectPropertyExpression, ontology.ClassExpression]{
			kind: ontology.KindObjectPropertyRange, predicate: rangeOf,
			subject: objectPropertyOperand, object: classOperand,
			build: func(p ontology.ObjectPropertyExpression, c ontology.ClassExpression, anns []ontology.Annotation) ontology.Axiom {
				return &ontology.ObjectPropertyRange{Property: p, Range: c, Annotated: ontology.Annotate(anns...)}
			},
			parts: func(a ontology.Axiom) (ontology.ObjectPropertyExpression, ontology.ClassExpression, bool) {
				ax, ok := a.(*ontology.ObjectPropertyRange)
				if !ok {
					return nil, nil, false
				}
				return ax.Property, ax.Range, true
			},
		}.translator(),

		binary[ontology.DataProperty, ontology.ClassExpression]{
			kind: ontology.KindDataPropertyDomain, predicate: domain,
			subject: dataPropertyOperand, object: classOperand,
			build: func(p ontology.DataProperty, c ontology.ClassExpression, anns []ontology.Annotation) ontology.Axiom {
				return &ontology.DataPropertyDomain{Property: p, Domain: c, Annotated: ontology.Annotate(anns...)}
			},
			parts: func(a ontology.Axiom) (ontology.DataProperty, ontology.ClassExpression, bool) {
				ax, ok := a.(*ontology.DataPropertyDomain)
				if !ok {
					return ontology.DataProperty{}, nil, false
				}
				return ax.Property, ax.Domain, true
			},
		}.translator(),

		binary[ontology.DataProperty, ontology.DataRange]{
			kind: ontology.KindDataPropertyRange, predicate: rangeOf,
			subject: dataPropertyOperand, object: dataRangeOperand,
			build: func(p ontology.DataProperty, d ontology.DataRange, anns []ontology.Annotation) ontology.Axiom {
				return &ontology.DataPropertyRange{Property: p, Range: d, Annotated: ontology.Annotate(anns...)}
			},
			parts: func(a ontology.Axiom) (ontology.DataProperty, ontology.DataRange, bool) {
				ax, ok := a.(*ontology.DataPropertyRange)
				if !ok {
					return ontology.DataProperty{}, nil, false
				}
				return ax.Property, ax.Range, true
			},
		}.translator(),

		binary[ontology.AnnotationProperty, iri]{
			kind: ontology.KindAnnotationPropertyDomain, predicate: domain,
			subject: annotationPropertyOperand, object: iriOperand,
			exclude: ignoreOverlap(func(r *Reader, t rdf.Triple) bool {
				return (r.IsObjectProperty(t.S) || r.IsDataProperty(t.S)) && r.IsClass(t.O)
			}),
			build: func(p ontology.AnnotationProperty, d iri, anns []ontology.Annotation) ontology.Axiom {
				return &ontology.AnnotationPropertyDomain{Property: p, Domain: string(d), Annotated: ontology.Annotate(anns...)}
			},
			parts: func(a ontology.Axiom) (ontology.AnnotationProperty, iri, bool) {
				ax, ok := a.(*ontology.AnnotationPropertyDomain)
				if !ok {
					return ontology.AnnotationProperty{}, "", false
				}
				return ax.Property, iri(ax.Domain), true
			},
		}.translator(),

		binary[ontology.AnnotationProperty, iri]{
			kind: ontology.KindAnnotationPropertyRange, predicate: rangeOf,
			subject: annotationPropertyOperand, object: iriOperand,
			exclude: ignoreOverlap(func(r *Reader, t rdf.Triple) bool {
				return (r.IsObjectProperty(t.S) && r.IsClass(t.O)) || (r.IsDataProperty(t.S) && r.IsDataRange(t.O))
			}),
			build: func(p ontology.AnnotationProperty, d iri, anns []ontology.Annotation) ontology.Axiom {
				return &ontology.AnnotationPropertyRange{Property: p, Range: string(d), Annotated: ontology.Annotate(anns...)}
			},
			parts: func(a ontology.Axiom) (ontology.AnnotationProperty, iri, bool) {
				ax, ok := a.(*ontology.AnnotationPropertyRange)
				if !ok {
					return ontology.AnnotationProperty{}, "", false
				}
				return ax.Property, iri(ax.Range), true
			},
		}.translator(),
	}
}

var characteristicTypes = map[ontology.AxiomKind]string{
	ontology.KindFunctionalObjectProperty:        owl.FunctionalProperty,
	ontology.KindInverseFunctionalObjectProperty: owl.InverseFunctionalProperty,
	ontology.KindTransitiveObjectProperty:        owl.TransitiveProperty,
	ontology.KindSymmetricObjectProperty:         owl.SymmetricProperty,
	ontology.KindAsymmetricObjectProperty:        owl.AsymmetricProperty,
	ontology.KindReflexiveObjectProperty:         owl.ReflexiveProperty,
	ontology.KindIrreflexiveObjectProperty:       owl.IrreflexiveProperty,
}

func characteristicTranslators() []Translator {
	var out []Translator
	for _, kind := range ontology.Kinds() {
		if !kind.IsObjectPropertyCharacteristic() {
			continue
		}
		out = append(out, unary[ontology.ObjectPropertyExpression]{
			kind: kind, typ: rdf.IRI(characteristicTypes[kind]), subject: objectPropertyOperand,
			build: func(p ontology.ObjectPropertyExpression, anns []ontology.Annotation) ontology.Axiom {
				return &ontology.ObjectPropertyCharacteristic{Characteristic: kind, Property: p, Annotated: ontology.Annotate(anns...)}
			},
			part: func(a ontology.Axiom) (ontology.ObjectPropertyExpression, bool) {
				ax, ok := a.(*ontology.ObjectPropertyCharacteristic)
				if !ok || ax.Characteristic != kind {
					return nil, false
				}
				return ax.Property, true
			},
		}.translator())
	}
	return append(out, unary[ontology.DataProperty]{
		kind: ontology.KindFunctionalDataProperty, typ: rdf.IRI(owl.FunctionalProperty), subject: dataPropertyOperand,
		build: func(p ontology.DataProperty, anns []ontology.Annotation) ontology.Axiom {
			return &ontology.FunctionalDataProperty{Property: p, Annotated: ontology.Annotate(anns...)}
		},
		part: func(a ontology.Axiom) (ontology.DataProperty, bool) {
			ax, ok := a.(*ontology.FunctionalDataProperty)
			if !ok {
				return ontology.DataProperty{}, false
			}
			return ax.Property, true
		},
	}.translator())
}

// propertyStatements yields every statement whose predicate is declared
// with typ.
func propertyStatements(typ string) func(rdf.Reader, Config) iter.Seq[rdf.Triple] {
	return func(g rdf.Reader, _ Config) iter.Seq[rdf.Triple] {
		return func(yield func(rdf.Triple) bool) {
			for _, p := range rdf.Subjects(g, rdfType, rdf.IRI(typ)) {
				if !p.IsIRI() {
					continue
				}
				for t := range g.Find(rdf.Any, p, rdf.Any) {
					if !yield(t) {
						return
					}
				}
			}
		}
	}
}

func assertionTranslators() []Translator {
	return []Translator{
		binary[ontology.Individual, ontology.ClassExpression]{
			kind: ontology.KindClassAssertion, predicate: rdfType,
			subject: individualOperand, object: declaredClassOperand,
			build: func(i ontology.Individual, c ontology.ClassExpression, anns []ontology.Annotation) ontology.Axiom {
				return &ontology.ClassAssertion{Class: c, Individual: i, Annotated: ontology.Annotate(anns...)}
			},
			parts: func(a ontology.Axiom) (ontology.Individual, ontology.ClassExpression, bool) {
				ax, ok := a.(*ontology.ClassAssertion)
				if !ok {
					return ontology.Individual{}, nil, false
				}
				return ax.Individual, ax.Class, true
			},
		}.translator(),

		{
			Kind:       ontology.KindObjectPropertyAssertion,
			Candidates: propertyStatements(owl.ObjectProperty),
			Matches: func(r *Reader, t rdf.Triple) bool {
				return r.IsNamedObjectProperty(t.P) && r.IsIndividual(t.S) && r.IsIndividual(t.O)
			},
			ToAxiom: func(r *Reader, t rdf.Triple) (ontology.Object[ontology.Axiom], error) {
				var zero ontology.Object[ontology.Axiom]
				s, err := r.Individual(t.S)
				if err != nil {
					return zero, err
				}
				o, err := r.Individual(t.O)
				if err != nil {
					return zero, err
				}
				anns, err := r.annotations.Resolve(t)
				if err != nil {
					return zero, err
				}
				return assemble(r, t, anns, func(a []ontology.Annotation) ontology.Axiom {
					return &ontology.ObjectPropertyAssertion{
						Property: ontology.ObjectProperty{IRI: t.P.Value}, Subject: s, Object: o,
						Annotated: ontology.Annotate(a...),
					}
				}), nil
			},
			Write: func(w *Writer, a ontology.Axiom) error {
				ax, ok := a.(*ontology.ObjectPropertyAssertion)
				if !ok {
					return wrongKind(ontology.KindObjectPropertyAssertion, a)
				}
				s, o := ax.Subject.Term(), ax.Object.Term()
				if inv, ok := ax.Property.(*ontology.ObjectInverseOf); ok {
					// An assertion on an inverse property is the plain assertion reversed.
					w.Statement(rdf.T(o, rdf.IRI(inv.Property.IRI), s), ax.List)
					return nil
				}
				w.Statement(rdf.T(s, rdf.IRI(ax.Property.Named().IRI), o), ax.List)
				return nil
			},
		},

		{
			Kind:       ontology.KindDataPropertyAssertion,
			Candidates: propertyStatements(owl.DatatypeProperty),
			Matches: func(r *Reader, t rdf.Triple) bool {
				return r.IsDataProperty(t.P) && r.IsIndividual(t.S) && t.O.IsLiteral()
			},
			ToAxiom: func(r *Reader, t rdf.Triple) (ontology.Object[ontology.Axiom], error) {
				var zero ontology.Object[ontology.Axiom]
				s, err := r.Individual(t.S)
				if err != nil {
					return zero, err
				}
				anns, err := r.annotations.Resolve(t)
				if err != nil {
					return zero, err
				}
				return assemble(r, t, anns, func(a []ontology.Annotation) ontology.Axiom {
					return &ontology.DataPropertyAssertion{
						Property: ontology.DataProperty{IRI: t.P.Value}, Subject: s, Value: ontology.LiteralFromTerm(t.O),
						Annotated: ontology.Annotate(a...),
					}
				}), nil
			},
			Write: func(w *Writer, a ontology.Axiom) error {
				ax, ok := a.(*ontology.DataPropertyAssertion)
				if !ok {
					return wrongKind(ontology.KindDataPropertyAssertion, a)
				}
				w.Statement(rdf.T(ax.Subject.Term(), rdf.IRI(ax.Property.IRI), ax.Value.Term()), ax.List)
				return nil
			},
		},

		nary[ontology.Individual]{
			kind: ontology.KindSameIndividual, predicate: sameAs, operand: individualOperand,
			build: func(ops []ontology.Individual, anns []ontology.Annotation) ontology.Axiom {
				return &ontology.SameIndividual{Individuals: ops, Annotated: ontology.Annotate(anns...)}
			},
			parts: func(a ontology.Axiom) ([]ontology.Individual, bool) {
				ax, ok := a.(*ontology.SameIndividual)
				if !ok {
					return nil, false
				}
				return ax.Individuals, true
			},
		}.translator(),

		nary[ontology.Individual]{
			kind: ontology.KindDifferentIndividuals, predicate: differentFrom, operand: individualOperand,
			membersType: rdf.IRI(owl.AllDifferent), membersPredicate: distinctMembers,
			build: func(ops []ontology.Individual, anns []ontology.Annotation) ontology.Axiom {
				return &ontology.DifferentIndividuals{Individuals: ops, Annotated: ontology.Annotate(anns...)}
			},
			parts: func(a ontology.Axiom) ([]ontology.Individual, bool) {
				ax, ok := a.(*ontology.DifferentIndividuals)
				if !ok {
					return nil, false
				}
				return ax.Individuals, true
			},
		}.translator(),
	}
}

func annotationAssertionTranslator() Translator {
	return Translator{
		Kind: ontology.KindAnnotationAssertion,
		Candidates: func(g rdf.Reader, cfg Config) iter.Seq[rdf.Triple] {
			if !cfg.LoadAnnotationAxioms {
				return func(func(rdf.Triple) bool) {}
			}
			return func(yield func(rdf.Triple) bool) {
				props := rdf.Subjects(g, rdfType, rdf.IRI(owl.AnnotationProperty))
				for _, p := range owl.BuiltinAnnotationProperties {
					props = append(props, rdf.IRI(p))
				}
				slices.SortFunc(props, rdf.Term.Compare)
				for _, p := range slices.Compact(props) {
					for t := range g.Find(rdf.Any, p, rdf.Any) {
						if !yield(t) {
							return
						}
					}
				}
			}
		},
		Matches: func(r *Reader, t rdf.Triple) bool {
			return r.cfg.LoadAnnotationAxioms && r.annotations.IsAssertion(t)
		},
		ToAxiom: func(r *Reader, t rdf.Triple) (ontology.Object[ontology.Axiom], error) {
			var zero ontology.Object[ontology.Axiom]
			s, err := r.Individual(t.S)
			if err != nil {
				return zero, err
			}
			anns, err := r.annotations.Resolve(t)
			if err != nil {
				return zero, err
			}
			return assemble(r, t, anns, func(a []ontology.Annotation) ontology.Axiom {
				return &ontology.AnnotationAssertion{
					Property:  ontology.AnnotationProperty{IRI: t.P.Value},
					Subject:   s,
					Value:     t.O,
					Annotated: ontology.Annotate(a...),
				}
			}), nil
		},
		Write: func(w *Writer, a ontology.Axiom) error {
			ax, ok := a.(*ontology.AnnotationAssertion)
			if !ok {
				return wrongKind(ontology.KindAnnotationAssertion, a)
			}
			w.Statement(rdf.T(ax.Subject.Term(), rdf.IRI(ax.Property.IRI), ax.Value), ax.List)
			return nil
		},
	}
}
