package translate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semontology/ontology"
	"github.com/c360studio/semontology/rdf"
	"github.com/c360studio/semontology/translate"
	"github.com/c360studio/semontology/vocabulary/owl"
)

func TestRegistryKinds(t *testing.T) {
	reg := translate.NewRegistry()
	assert.Equal(t, ontology.Kinds(), reg.Kinds())
	for _, k := range reg.Kinds() {
		tr, ok := reg.Translator(k)
		require.True(t, ok, k.String())
		assert.Equal(t, k, tr.Kind)
	}
}

// punned declares p and q as both object and annotation properties.
func punned() *rdf.Graph {
	g := rdf.NewGraph()
	for _, p := range []string{ex + "p", ex + "q"} {
		g.Add(rdf.T(rdf.IRI(p), rdf.Type, rdf.IRI(owl.ObjectProperty)))
		g.Add(rdf.T(rdf.IRI(p), rdf.Type, rdf.IRI(owl.AnnotationProperty)))
	}
	g.Add(rdf.T(rdf.IRI(ex+"p"), rdf.IRI(owl.RDFSSubPropertyOf), rdf.IRI(ex+"q")))
	return g
}

func TestAnnotationOverlap(t *testing.T) {
	stmt := rdf.T(rdf.IRI(ex+"p"), rdf.IRI(owl.RDFSSubPropertyOf), rdf.IRI(ex+"q"))

	tests := []struct {
		name   string
		ignore bool
		want   []ontology.AxiomKind
	}{
		{"overlaps ignored", true, []ontology.AxiomKind{ontology.KindSubObjectPropertyOf}},
		{"overlaps kept", false, []ontology.AxiomKind{ontology.KindSubObjectPropertyOf, ontology.KindSubAnnotationPropertyOf}},
	}

	reg := translate.NewRegistry()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := translate.DefaultConfig()
			cfg.IgnoreAnnotationAxiomOverlaps = tc.ignore
			g := punned()

			assert.Equal(t, tc.want, reg.Classify(g, stmt, cfg))

			sub, err := reg.Collect(g, ontology.KindSubAnnotationPropertyOf, cfg)
			require.NoError(t, err)
			if tc.ignore {
				assert.Empty(t, sub)
			} else {
				assert.Len(t, sub, 1)
			}
		})
	}
}

func TestClassifyUnclaimed(t *testing.T) {
	g := rdf.NewGraph()
	stmt := rdf.T(rdf.IRI(ex+"s"), rdf.IRI(ex+"undeclared"), rdf.IRI(ex+"o"))
	g.Add(stmt)
	assert.Empty(t, translate.NewRegistry().Classify(g, stmt, translate.DefaultConfig()))
}

func TestUnsupportedConstruct(t *testing.T) {
	g := declared()
	r := rdf.Blank("r")
	g.Add(rdf.T(rdf.IRI(clsA.IRI), rdf.IRI(owl.RDFSSubClassOf), r))
	g.Add(rdf.T(r, rdf.Type, rdf.IRI(owl.Restriction)))

	reg := translate.NewRegistry()
	var errs []error
	for _, err := range reg.Axioms(g, ontology.KindSubClassOf, translate.DefaultConfig()) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	require.Len(t, errs, 1)

	var unsupported *translate.UnsupportedConstructError
	require.True(t, errors.As(errs[0], &unsupported))
	assert.Equal(t, r, unsupported.Node)
}

func TestRecursiveExpression(t *testing.T) {
	g := declared()
	x := rdf.Blank("x")
	g.Add(rdf.T(rdf.IRI(clsA.IRI), rdf.IRI(owl.RDFSSubClassOf), x))
	g.Add(rdf.T(x, rdf.Type, rdf.IRI(owl.Class)))
	g.Add(rdf.T(x, rdf.IRI(owl.ComplementOf), x))

	_, err := translate.NewRegistry().Collect(g, ontology.KindSubClassOf, translate.DefaultConfig())
	var rec *translate.RecursiveDefinitionError
	require.True(t, errors.As(err, &rec))
	assert.Equal(t, x, rec.Node)
}

func TestAxiomsStopsEarly(t *testing.T) {
	g := declared()
	reg := translate.NewRegistry()
	for _, c := range []ontology.Class{clsB, clsC} {
		require.NoError(t, reg.Write(g, &ontology.SubClassOf{Sub: clsA, Super: c}))
	}

	n := 0
	for range reg.AllAxioms(g, translate.DefaultConfig()) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestCollectMergesEqualAxioms(t *testing.T) {
	g := declared()
	a, b := rdf.IRI(clsA.IRI), rdf.IRI(clsB.IRI)
	eq := rdf.IRI(owl.EquivalentClass)
	g.Add(rdf.T(a, eq, b))
	g.Add(rdf.T(b, eq, a))

	reg := translate.NewRegistry()
	n := 0
	for _, err := range reg.Axioms(g, ontology.KindEquivalentClasses, translate.DefaultConfig()) {
		require.NoError(t, err)
		n++
	}
	assert.Equal(t, 2, n)

	got, err := reg.Collect(g, ontology.KindEquivalentClasses, translate.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Len())
}

func TestWriteErrors(t *testing.T) {
	reg := translate.NewRegistry()
	g := rdf.NewGraph()

	err := reg.Write(g, &ontology.EquivalentClasses{Classes: []ontology.ClassExpression{clsA}})
	assert.Error(t, err)

	tr, ok := reg.Translator(ontology.KindSubClassOf)
	require.True(t, ok)
	err = tr.Write(translate.NewWriter(g), &ontology.ClassAssertion{Class: clsA, Individual: indI})
	assert.Error(t, err)
	assert.Equal(t, 0, g.Len())
}

func TestFactorySharesExpressions(t *testing.T) {
	factory, err := ontology.NewDataFactory(16)
	require.NoError(t, err)
	reg := translate.NewRegistry(translate.WithFactory(factory))

	g := declared()
	some := &ontology.ObjectSomeValuesFrom{Property: propP, Filler: clsC}
	require.NoError(t, reg.Write(g, &ontology.SubClassOf{Sub: clsA, Super: some}))
	require.NoError(t, reg.Write(g, &ontology.SubClassOf{Sub: clsB, Super: some}))

	got, err := reg.Collect(g, ontology.KindSubClassOf, translate.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, got, 2)

	s0 := got[0].Value().(*ontology.SubClassOf).Super
	s1 := got[1].Value().(*ontology.SubClassOf).Super
	assert.Same(t, s0, s1)
}

func TestClassAxiomsOrder(t *testing.T) {
	g := declared()
	reg := translate.NewRegistry()
	axioms := []ontology.Axiom{
		&ontology.DisjointUnion{Class: clsA, Classes: []ontology.ClassExpression{clsB, clsC}},
		&ontology.DisjointClasses{Classes: []ontology.ClassExpression{clsA, clsC}},
		&ontology.SubClassOf{Sub: clsA, Super: clsB},
		&ontology.SubClassOf{Sub: clsB, Super: clsC},
		&ontology.EquivalentClasses{Classes: []ontology.ClassExpression{clsB, clsA}},
	}
	for _, a := range axioms {
		require.NoError(t, reg.Write(g, a))
	}

	got, err := reg.ClassAxioms(g, clsA, translate.DefaultConfig())
	require.NoError(t, err)

	var kinds []ontology.AxiomKind
	for _, o := range got {
		kinds = append(kinds, o.Value().Kind())
	}
	assert.Equal(t, []ontology.AxiomKind{
		ontology.KindSubClassOf,
		ontology.KindEquivalentClasses,
		ontology.KindDisjointClasses,
		ontology.KindDisjointUnion,
	}, kinds)
}

func TestObjectPropertyAxioms(t *testing.T) {
	g := declared()
	reg := translate.NewRegistry()
	axioms := []ontology.Axiom{
		&ontology.ObjectPropertyDomain{Property: propP, Domain: clsA},
		&ontology.InverseObjectProperties{First: propQ, Second: propP},
		&ontology.ObjectPropertyCharacteristic{Characteristic: ontology.KindTransitiveObjectProperty, Property: propP},
		&ontology.SubObjectPropertyOf{Sub: propP, Super: propR},
		&ontology.SubObjectPropertyOf{Sub: propR, Super: propQ},
	}
	for _, a := range axioms {
		require.NoError(t, reg.Write(g, a))
	}

	got, err := reg.ObjectPropertyAxioms(g, propP, translate.DefaultConfig())
	require.NoError(t, err)

	var kinds []ontology.AxiomKind
	for _, o := range got {
		kinds = append(kinds, o.Value().Kind())
	}
	assert.Equal(t, []ontology.AxiomKind{
		ontology.KindSubObjectPropertyOf,
		ontology.KindInverseObjectProperties,
		ontology.KindObjectPropertyDomain,
		ontology.KindTransitiveObjectProperty,
	}, kinds)
}

func TestDataAndIndividualAxioms(t *testing.T) {
	g := declared()
	reg := translate.NewRegistry()
	axioms := []ontology.Axiom{
		&ontology.DataPropertyAssertion{Property: dataD, Subject: indI, Value: ontology.Literal{Lexical: "1", Datatype: owl.XSDInteger}},
		&ontology.FunctionalDataProperty{Property: dataD},
		&ontology.DataPropertyRange{Property: dataD, Range: ontology.Datatype{IRI: owl.XSDInteger}},
		&ontology.ClassAssertion{Class: clsA, Individual: indI},
		&ontology.DifferentIndividuals{Individuals: []ontology.Individual{indI, indJ}},
	}
	for _, a := range axioms {
		require.NoError(t, reg.Write(g, a))
	}
	cfg := translate.DefaultConfig()

	data, err := reg.DataPropertyAxioms(g, dataD, cfg)
	require.NoError(t, err)
	require.Len(t, data, 2)
	assert.Equal(t, ontology.KindDataPropertyRange, data[0].Value().Kind())
	assert.Equal(t, ontology.KindFunctionalDataProperty, data[1].Value().Kind())

	inds, err := reg.IndividualAxioms(g, indI, cfg)
	require.NoError(t, err)
	var kinds []ontology.AxiomKind
	for _, o := range inds {
		kinds = append(kinds, o.Value().Kind())
	}
	assert.Equal(t, []ontology.AxiomKind{
		ontology.KindClassAssertion,
		ontology.KindDifferentIndividuals,
		ontology.KindDataPropertyAssertion,
	}, kinds)
}
