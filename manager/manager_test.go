package manager_test

import (
	"context"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semontology/loader"
	"github.com/c360studio/semontology/manager"
	"github.com/c360studio/semontology/ontology"
	"github.com/c360studio/semontology/rdf"
	"github.com/c360studio/semontology/translate"
	"github.com/c360studio/semontology/vocabulary/owl"
)

const ex = "http://example.org/"

func header(g *rdf.Graph, name string, imports ...string) {
	h := rdf.IRI(ex + name)
	g.Add(rdf.T(h, rdf.Type, rdf.IRI(owl.Ontology)))
	for _, imp := range imports {
		g.Add(rdf.T(h, rdf.IRI(owl.Imports), rdf.IRI(ex+imp)))
	}
}

func doc(name string, imports ...string) *rdf.Graph {
	g := rdf.NewGraph()
	header(g, name, imports...)
	return g
}

// store serves documents named doc:<local name> and counts reads.
type store struct {
	mu    sync.Mutex
	docs  map[string]*rdf.Graph
	reads map[string]int
}

func newStore(docs map[string]*rdf.Graph) *store {
	return &store{docs: docs, reads: make(map[string]int)}
}

func (s *store) ReadGraph(_ context.Context, src loader.DocumentSource) (*rdf.Graph, rdf.Format, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads[src.Locator]++
	g, ok := s.docs[src.Locator]
	if !ok {
		return nil, rdf.FormatUnknown, fmt.Errorf("open %s: %w", src.Locator, fs.ErrNotExist)
	}
	return g.Clone(), rdf.FormatNTriples, nil
}

func mapper(iri string) (string, bool) {
	name, ok := strings.CutPrefix(iri, ex)
	return "doc:" + name, ok
}

func newManager(s *store, opts ...loader.Option) *manager.Manager {
	return manager.New(
		manager.WithConfig(loader.NewConfig(opts...)),
		manager.WithLoaderOptions(
			loader.WithPrimaryReader(s),
			loader.WithIRIMapper(loader.IRIMapperFunc(mapper)),
		),
	)
}

func keys(os []*manager.Ontology) []string {
	out := make([]string, 0, len(os))
	for _, o := range os {
		out = append(out, o.Key())
	}
	return out
}

func TestLoadRegistersClosure(t *testing.T) {
	a := doc("A", "B")
	a.Add(rdf.T(rdf.IRI(ex+"A"), rdf.IRI(owl.VersionIRI), rdf.IRI(ex+"A/2")))
	s := newStore(map[string]*rdf.Graph{"doc:A": a, "doc:B": doc("B")})
	m := newManager(s)

	root, err := m.Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
	require.NoError(t, err)

	assert.Equal(t, ex+"A", root.Key())
	assert.Equal(t, ontology.ID{IRI: ex + "A", Version: ex + "A/2"}, root.ID())
	assert.Equal(t, []string{ex + "B"}, root.Imports())
	assert.Equal(t, []string{ex + "A", ex + "B"}, keys(m.List()))

	byVersion, ok := m.Get(ex + "A/2")
	require.True(t, ok)
	assert.Same(t, root, byVersion)

	res, ok := m.Ontology(ex + "B")
	require.True(t, ok)
	assert.Equal(t, "doc:B", res.Source)
	assert.True(t, root.Closure().Contains(rdf.T(rdf.IRI(ex+"B"), rdf.Type, rdf.IRI(owl.Ontology))))
}

func TestResidentImportsAreNotReadAgain(t *testing.T) {
	s := newStore(map[string]*rdf.Graph{
		"doc:A": doc("A", "B"),
		"doc:B": doc("B"),
		"doc:E": doc("E", "B"),
	})
	m := newManager(s)

	_, err := m.Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
	require.NoError(t, err)
	e, err := m.Load(context.Background(), loader.DocumentSource{Locator: "doc:E"})
	require.NoError(t, err)

	assert.Equal(t, 1, s.reads["doc:B"])
	assert.Equal(t, 3, m.Len())
	b, _ := m.Get(ex + "B")
	assert.Same(t, b.Graph(), e.Closure().Subs()[0].Base())
}

func TestMissingImportPolicy(t *testing.T) {
	docs := func() *store {
		return newStore(map[string]*rdf.Graph{
			"doc:A": doc("A", "B", "C", "Gone"),
			"doc:B": doc("B"),
			"doc:C": doc("C"),
		})
	}

	t.Run("throw leaves the registry unchanged", func(t *testing.T) {
		s := docs()
		s.docs["doc:X"] = doc("X")
		m := newManager(s, loader.WithMissingImportPolicy(loader.ImportThrow))
		_, err := m.Load(context.Background(), loader.DocumentSource{Locator: "doc:X"})
		require.NoError(t, err)

		_, err = m.Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
		var uie *loader.UnresolvableImportError
		require.ErrorAs(t, err, &uie)
		assert.Equal(t, []string{ex + "X"}, keys(m.List()))
	})

	t.Run("warn registers the rest", func(t *testing.T) {
		m := newManager(docs(), loader.WithMissingImportPolicy(loader.ImportWarn))
		root, err := m.Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
		require.NoError(t, err)

		assert.Equal(t, 3, m.Len())
		require.Len(t, root.Warnings(), 1)
		assert.Equal(t, ex+"Gone", root.Warnings()[0].Import)
	})
}

func TestLoadTwiceFails(t *testing.T) {
	s := newStore(map[string]*rdf.Graph{"doc:A": doc("A")})
	m := newManager(s)

	first, err := m.Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
	require.NoError(t, err)
	_, err = m.Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
	assert.ErrorIs(t, err, manager.ErrAlreadyLoaded)

	got, _ := m.Get(ex + "A")
	assert.Same(t, first, got)

	require.NoError(t, m.Remove(ex+"A"))
	assert.ErrorIs(t, m.Remove(ex+"A"), manager.ErrNotFound)
	assert.Zero(t, m.Len())
}

func TestGetNormalisesFileIRIs(t *testing.T) {
	g := rdf.NewGraph()
	g.Add(rdf.T(rdf.IRI("file:/tmp/onto.nt"), rdf.Type, rdf.IRI(owl.Ontology)))
	m := manager.New()
	_, err := m.Load(context.Background(), loader.DocumentSource{Graph: g})
	require.NoError(t, err)

	for _, iri := range []string{"file:/tmp/onto.nt", "file:///tmp/onto.nt", "file://tmp/onto.nt"} {
		_, ok := m.Get(iri)
		assert.True(t, ok, iri)
	}
}

var (
	clsA  = ontology.Class{IRI: ex + "A"}
	clsB  = ontology.Class{IRI: ex + "B"}
	clsC  = ontology.Class{IRI: ex + "C"}
	propP = ontology.ObjectProperty{IRI: ex + "p"}
	indI  = ontology.NamedIndividual(ex + "i")
	indJ  = ontology.NamedIndividual(ex + "j")
	label = ontology.AnnotationProperty{IRI: owl.RDFSLabel}
)

func note(s string) ontology.Annotated {
	return ontology.Annotate(ontology.Annotation{Property: label, Value: rdf.Literal(s, "")})
}

// populated returns a document holding a mix of axioms.
func populated(t *testing.T) *rdf.Graph {
	t.Helper()
	g := doc("P")
	reg := translate.NewRegistry()
	axioms := []ontology.Axiom{
		&ontology.Declaration{Entity: ontology.Entity{Type: ontology.EntityClass, IRI: clsA.IRI}},
		&ontology.Declaration{Entity: ontology.Entity{Type: ontology.EntityClass, IRI: clsB.IRI}, Annotated: note("b")},
		&ontology.Declaration{Entity: ontology.Entity{Type: ontology.EntityClass, IRI: clsC.IRI}},
		&ontology.Declaration{Entity: ontology.Entity{Type: ontology.EntityObjectProperty, IRI: propP.IRI}},
		&ontology.SubClassOf{Sub: clsA, Super: &ontology.ObjectSomeValuesFrom{Property: propP, Filler: clsB}, Annotated: note("some")},
		&ontology.DisjointClasses{Classes: []ontology.ClassExpression{clsA, clsB, clsC}},
		&ontology.ObjectPropertyDomain{Property: propP, Domain: clsA},
		&ontology.ClassAssertion{Class: clsA, Individual: indI},
		&ontology.ObjectPropertyAssertion{Property: propP, Subject: indI, Object: indJ, Annotated: note("link")},
	}
	for _, a := range axioms {
		require.NoError(t, reg.Write(g, a), a.Key())
	}
	return g
}

func TestProvenanceCompleteness(t *testing.T) {
	s := newStore(map[string]*rdf.Graph{"doc:P": populated(t)})
	m := newManager(s)
	o, err := m.Load(context.Background(), loader.DocumentSource{Locator: "doc:P"})
	require.NoError(t, err)

	axioms, err := o.Axioms()
	require.NoError(t, err)
	require.NotEmpty(t, axioms)

	total := 0
	for _, a := range slices.Backward(axioms) {
		n, err := o.RemoveAxiom(a.Value())
		require.NoError(t, err, a.Key())
		total += n
	}

	assert.Equal(t, []rdf.Triple{rdf.T(rdf.IRI(ex+"P"), rdf.Type, rdf.IRI(owl.Ontology))}, o.Graph().Sorted())
	assert.Equal(t, s.docs["doc:P"].Len()-1, total)

	left, err := o.Axioms()
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestAddAndRemoveAxiom(t *testing.T) {
	s := newStore(map[string]*rdf.Graph{"doc:P": populated(t)})
	m := newManager(s)
	o, err := m.Load(context.Background(), loader.DocumentSource{Locator: "doc:P"})
	require.NoError(t, err)

	before, err := o.Axioms()
	require.NoError(t, err)

	sub := &ontology.SubClassOf{Sub: clsB, Super: clsC}
	require.NoError(t, o.AddAxiom(sub))
	after, err := o.Axioms()
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)

	cls, err := o.ClassAxioms(clsB)
	require.NoError(t, err)
	assert.True(t, slices.ContainsFunc(cls, func(a ontology.Object[ontology.Axiom]) bool { return a.Key() == sub.Key() }))

	n, err := o.RemoveAxiom(sub)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = o.RemoveAxiom(sub)
	assert.ErrorIs(t, err, manager.ErrAxiomNotFound)

	props, err := o.ObjectPropertyAxioms(propP)
	require.NoError(t, err)
	assert.Len(t, props, 1, "domain")
}

func TestRemoveEquivalentClassesOfThree(t *testing.T) {
	s := newStore(map[string]*rdf.Graph{"doc:P": populated(t)})
	m := newManager(s)
	o, err := m.Load(context.Background(), loader.DocumentSource{Locator: "doc:P"})
	require.NoError(t, err)
	before := o.Graph().Len()

	eq := &ontology.EquivalentClasses{Classes: []ontology.ClassExpression{clsA, clsB, clsC}, Annotated: note("eq")}
	require.NoError(t, o.AddAxiom(eq))

	got, err := o.Axioms()
	require.NoError(t, err)
	var pairs int
	for _, a := range got {
		if a.Value().Kind() == ontology.KindEquivalentClasses {
			pairs++
		}
	}
	assert.Equal(t, 2, pairs, "written as two pairwise statements")

	_, err = o.RemoveAxiom(eq)
	require.NoError(t, err)
	assert.Equal(t, before, o.Graph().Len())
	_, err = o.RemoveAxiom(eq)
	assert.ErrorIs(t, err, manager.ErrAxiomNotFound)
}

func TestOntologiesShareExpressions(t *testing.T) {
	some := &ontology.ObjectSomeValuesFrom{Property: propP, Filler: clsB}
	reg := translate.NewRegistry()
	docs := map[string]*rdf.Graph{}
	for _, name := range []string{"X", "Y"} {
		g := doc(name)
		sub := ontology.Class{IRI: ex + name + "#C"}
		for _, a := range []ontology.Axiom{
			&ontology.Declaration{Entity: ontology.Entity{Type: ontology.EntityClass, IRI: sub.IRI}},
			&ontology.Declaration{Entity: ontology.Entity{Type: ontology.EntityClass, IRI: clsB.IRI}},
			&ontology.Declaration{Entity: ontology.Entity{Type: ontology.EntityObjectProperty, IRI: propP.IRI}},
			&ontology.SubClassOf{Sub: sub, Super: some},
		} {
			require.NoError(t, reg.Write(g, a))
		}
		docs["doc:"+name] = g
	}
	m := newManager(newStore(docs))

	var supers []ontology.ClassExpression
	for _, name := range []string{"X", "Y"} {
		o, err := m.Load(context.Background(), loader.DocumentSource{Locator: "doc:" + name})
		require.NoError(t, err)
		axioms, err := o.Axioms()
		require.NoError(t, err)
		for _, a := range axioms {
			if sub, ok := a.Value().(*ontology.SubClassOf); ok {
				supers = append(supers, sub.Super)
			}
		}
	}
	require.Len(t, supers, 2)
	assert.Same(t, supers[0], supers[1])
}

func TestConcurrentReadsDuringLoad(t *testing.T) {
	docs := map[string]*rdf.Graph{}
	for i := range 8 {
		name := fmt.Sprintf("O%d", i)
		docs["doc:"+name] = doc(name, "Shared")
	}
	docs["doc:Shared"] = doc("Shared")
	m := newManager(newStore(docs))
	_, err := m.Load(context.Background(), loader.DocumentSource{Locator: "doc:Shared"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := m.Load(context.Background(), loader.DocumentSource{Locator: fmt.Sprintf("doc:O%d", i)})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_ = m.List()
			_, _ = m.Get(ex + "Shared")
		}()
	}
	wg.Wait()

	for i := range 8 {
		_, ok := m.Get(fmt.Sprintf("%sO%d", ex, i))
		assert.True(t, ok)
	}
	assert.Equal(t, 9, m.Len())
}
