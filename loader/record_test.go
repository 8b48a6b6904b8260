package loader

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semontology/rdf"
	"github.com/c360studio/semontology/vocabulary/owl"
)

func TestIdentify(t *testing.T) {
	tests := []struct {
		name    string
		triples []rdf.Triple
		header  rdf.Term
		iri     string
		version string
	}{
		{name: "no header"},
		{
			name:    "blank header",
			triples: []rdf.Triple{rdf.T(rdf.Blank("o"), rdf.Type, ontologyType)},
			header:  rdf.Blank("o"),
		},
		{
			name: "iri wins over blank",
			triples: []rdf.Triple{
				rdf.T(rdf.Blank("o"), rdf.Type, ontologyType),
				rdf.T(rdf.IRI("http://x/b"), rdf.Type, ontologyType),
			},
			header: rdf.IRI("http://x/b"),
			iri:    "http://x/b",
		},
		{
			name: "smallest iri",
			triples: []rdf.Triple{
				rdf.T(rdf.IRI("http://x/b"), rdf.Type, ontologyType),
				rdf.T(rdf.IRI("http://x/a"), rdf.Type, ontologyType),
			},
			header: rdf.IRI("http://x/a"),
			iri:    "http://x/a",
		},
		{
			name: "version",
			triples: []rdf.Triple{
				rdf.T(rdf.IRI("http://x/a"), rdf.Type, ontologyType),
				rdf.T(rdf.IRI("http://x/a"), versionPred, rdf.IRI("http://x/a/1.0")),
			},
			header:  rdf.IRI("http://x/a"),
			iri:     "http://x/a",
			version: "http://x/a/1.0",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := rdf.NewGraph()
			for _, tr := range tc.triples {
				g.Add(tr)
			}
			header, id := Identify(g)
			assert.Equal(t, tc.header, header)
			assert.Equal(t, tc.iri, id.IRI)
			assert.Equal(t, tc.version, id.Version)
		})
	}
}

func TestRecordKey(t *testing.T) {
	anon := newRecord(rdf.NewGraph(), rdf.FormatNTriples, "doc:x")
	key := anon.Key()
	assert.True(t, strings.HasPrefix(key, "urn:uuid:"))
	assert.Equal(t, key, anon.Key(), "synthetic identity is stable")
	assert.NotEqual(t, key, newRecord(rdf.NewGraph(), rdf.FormatNTriples, "doc:x").Key())
	assert.Equal(t, "doc:x", anon.Name())

	g := rdf.NewGraph()
	h := rdf.IRI("http://x/a")
	g.Add(rdf.T(h, rdf.Type, ontologyType))
	g.Add(rdf.T(h, importsPred, rdf.IRI("http://x/c")))
	g.Add(rdf.T(h, importsPred, rdf.IRI("http://x/b")))
	g.Add(rdf.T(h, importsPred, rdf.Literal("not an iri", "")))
	g.Add(rdf.T(rdf.IRI("http://x/other"), importsPred, rdf.IRI("http://x/z")))

	named := newRecord(g, rdf.FormatNTriples, "")
	assert.Equal(t, "http://x/a", named.Key())
	assert.Equal(t, []string{"http://x/b", "http://x/c"}, named.Imports())
	assert.True(t, named.IsFresh())
	named.setProcessed()
	assert.False(t, named.IsFresh())

	res := residentRecord(Resident{Graph: g})
	assert.False(t, res.IsFresh())
	assert.True(t, res.NoTransform())
}

func TestSessionMemoisesMapper(t *testing.T) {
	calls := 0
	m := IRIMapperFunc(func(iri string) (string, bool) {
		calls++
		if iri == "http://x/a" {
			return "file:///a.nt", true
		}
		return "", false
	})

	s := NewSession()
	assert.Equal(t, "file:///a.nt", s.documentIRI(m, "http://x/a"))
	assert.Equal(t, "file:///a.nt", s.documentIRI(m, "http://x/a"))
	assert.Equal(t, "http://x/b", s.documentIRI(m, "http://x/b"))
	assert.Equal(t, 2, calls)
	assert.Equal(t, "http://x/c", s.documentIRI(nil, "http://x/c"))
}

func TestSessionRecords(t *testing.T) {
	s := NewSession()
	a := newRecord(rdf.NewGraph(), rdf.FormatNTriples, "a")
	s.register(a)
	s.put("http://x/alias", a)
	b := newRecord(rdf.NewGraph(), rdf.FormatNTriples, "b")
	s.put("http://x/alias", b)

	assert.Same(t, a, s.lookup("http://x/alias"), "first record wins")
	assert.Equal(t, []*GraphRecord{a, b}, s.Records())
	assert.Same(t, b, s.recordFor(b.Graph()))

	assert.True(t, s.warn(Warning{Ontology: "a", Import: "i"}))
	assert.False(t, s.warn(Warning{Ontology: "a", Import: "i"}))
	assert.Len(t, s.Warnings(), 1)
}

func TestFindResidentNormalisesFileIRIs(t *testing.T) {
	g := rdf.NewGraph()
	o := NewOverlay(nil)
	o.Register("file:/tmp/a.nt", Resident{Graph: g})

	for _, iri := range []string{"file:/tmp/a.nt", "file:///tmp/a.nt", "file://tmp/a.nt"} {
		r, ok := findResident(o, iri)
		require.True(t, ok, iri)
		assert.Same(t, g, r.Graph)
	}
	_, ok := findResident(nil, "file:/tmp/a.nt")
	assert.False(t, ok)
}

func TestOverlayKeepsBaseUntouched(t *testing.T) {
	base := NewOverlay(nil)
	base.Register("http://x/a", Resident{Source: "a"})

	o := NewOverlay(base)
	o.Register("http://x/b", Resident{Source: "b"})

	_, ok := base.Ontology("http://x/b")
	assert.False(t, ok)
	r, ok := o.Ontology("http://x/a")
	require.True(t, ok)
	assert.Equal(t, "a", r.Source)
	assert.Equal(t, []Resident{{Source: "b"}}, o.Registered())
}

func TestMetrics(t *testing.T) {
	m, err := NewMetrics(nil, "test")
	require.NoError(t, err)
	assert.Nil(t, m)
	m.fetched("primary") // nil-safe

	reg := prometheus.NewRegistry()
	m, err = NewMetrics(reg, "test")
	require.NoError(t, err)
	_, err = NewMetrics(reg, "test")
	assert.Error(t, err, "collectors register once per registry")

	g := rdf.NewGraph()
	g.Add(rdf.T(rdf.IRI("http://x/a"), rdf.Type, rdf.IRI(owl.Ontology)))
	g.Add(rdf.T(rdf.IRI("http://x/a"), importsPred, rdf.IRI("http://x/skip")))

	l := New(
		WithMetrics(m),
		WithConfig(NewConfig(WithIgnoredImports(func(string) bool { return true }))),
	)
	_, err = l.Load(context.Background(), DocumentSource{Graph: g})
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	counts := map[string]float64{}
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				counts[f.GetName()] += c.GetValue()
			}
			for _, lp := range metric.GetLabel() {
				if lp.GetName() == "component" {
					assert.Equal(t, "test", lp.GetValue())
				}
			}
		}
	}
	assert.Equal(t, 1.0, counts["semontology_loader_fetches_total"])
	assert.Equal(t, 1.0, counts["semontology_loader_imports_total"])
	assert.Equal(t, 1.0, counts["semontology_loader_loads_total"])
}
