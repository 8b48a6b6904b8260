package loader_test

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/c360studio/semstreams/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semontology/loader"
	"github.com/c360studio/semontology/rdf"
	"github.com/c360studio/semontology/translate"
	"github.com/c360studio/semontology/vocabulary/owl"
)

const ex = "http://example.org/"

var (
	ontologyType = rdf.IRI(owl.Ontology)
	importsPred  = rdf.IRI(owl.Imports)
)

// doc builds an ontology document with a named header.
func doc(name string, imports ...string) *rdf.Graph {
	g := rdf.NewGraph()
	h := rdf.IRI(ex + name)
	g.Add(rdf.T(h, rdf.Type, ontologyType))
	for _, imp := range imports {
		g.Add(rdf.T(h, importsPred, rdf.IRI(ex+imp)))
	}
	g.Add(rdf.T(rdf.IRI(ex+name+"#C"), rdf.Type, rdf.IRI(owl.Class)))
	return g
}

// anonymous builds a document whose header has no IRI.
func anonymous(label string, imports ...string) *rdf.Graph {
	g := rdf.NewGraph()
	h := rdf.Blank("h")
	g.Add(rdf.T(h, rdf.Type, ontologyType))
	for _, imp := range imports {
		g.Add(rdf.T(h, importsPred, rdf.IRI(ex+imp)))
	}
	g.Add(rdf.T(rdf.IRI(ex+label+"#C"), rdf.Type, rdf.IRI(owl.Class)))
	return g
}

// world serves documents by locator. Ontology IRIs map to locators by
// their local name. Documents in axiomDocs are only readable by the
// secondary reader.
type world struct {
	docs      map[string]*rdf.Graph
	axiomDocs map[string]*rdf.Graph
	overlay   map[string]*rdf.Graph
	fetches   map[string]int
	secondary int
	brokenAlt error
}

func newWorld() *world {
	return &world{
		docs:      make(map[string]*rdf.Graph),
		axiomDocs: make(map[string]*rdf.Graph),
		overlay:   make(map[string]*rdf.Graph),
		fetches:   make(map[string]int),
	}
}

func (w *world) add(name string, g *rdf.Graph) { w.docs["doc:"+name] = g }

func (w *world) total() int {
	n := 0
	for _, c := range w.fetches {
		n += c
	}
	return n
}

func (w *world) DocumentIRI(iri string) (string, bool) {
	name, ok := strings.CutPrefix(iri, ex)
	if !ok {
		return "", false
	}
	return "doc:" + name, true
}

func (w *world) ReadGraph(_ context.Context, src loader.DocumentSource) (*rdf.Graph, rdf.Format, error) {
	w.fetches[src.Locator]++
	if g, ok := w.docs[src.Locator]; ok {
		return g.Clone(), rdf.FormatNTriples, nil
	}
	if _, ok := w.axiomDocs[src.Locator]; ok {
		return nil, rdf.FormatUnknown, loader.UnsupportedFormat(src.Locator, rdf.FormatNTriples, errors.New("not n-triples"))
	}
	return nil, rdf.FormatUnknown, fmt.Errorf("open %s: %w", src.Locator, fs.ErrNotExist)
}

func (w *world) ReadAxioms(_ context.Context, src loader.DocumentSource, reg *loader.Overlay) (*rdf.Graph, rdf.Format, error) {
	w.secondary++
	if w.brokenAlt != nil {
		return nil, rdf.FormatUnknown, w.brokenAlt
	}
	g, ok := w.axiomDocs[src.Locator]
	if !ok {
		return nil, rdf.FormatUnknown, fmt.Errorf("open %s: %w", src.Locator, fs.ErrNotExist)
	}
	for loc, og := range w.overlay {
		_, oid := loader.Identify(og)
		reg.Register(oid.IRI, loader.Resident{Graph: og.Clone(), Format: rdf.FormatAxiomYAML, Source: loc})
	}
	return g.Clone(), rdf.FormatAxiomYAML, nil
}

func (w *world) loader(opts ...loader.LoaderOption) *loader.Loader {
	base := []loader.LoaderOption{
		loader.WithPrimaryReader(w),
		loader.WithSecondaryReader(w),
		loader.WithIRIMapper(w),
	}
	return loader.New(append(base, opts...)...)
}

func keys(cs []*loader.Composite) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Record().Key())
	}
	return out
}

func TestLoadCycle(t *testing.T) {
	w := newWorld()
	w.add("A", doc("A", "B"))
	w.add("B", doc("B", "A"))

	res, err := w.loader().Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
	require.NoError(t, err)

	root := res.Root
	require.Len(t, root.Children(), 1)
	b := root.Children()[0]
	assert.Equal(t, ex+"B", b.ID().IRI)
	assert.Empty(t, b.Children())
	assert.Equal(t, 2, w.total())
	assert.Equal(t, []string{ex + "A", ex + "B"}, keys(res.Ontologies))

	// B's own composite stops at A.
	require.Len(t, res.Ontologies[1].Children(), 1)
	assert.Empty(t, res.Ontologies[1].Children()[0].Children())
}

func TestLoadLongCycle(t *testing.T) {
	w := newWorld()
	w.add("A", doc("A", "B"))
	w.add("B", doc("B", "C"))
	w.add("C", doc("C", "A"))

	res, err := w.loader().Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
	require.NoError(t, err)

	require.Len(t, res.Root.Children(), 1)
	b := res.Root.Children()[0]
	require.Len(t, b.Children(), 1)
	c := b.Children()[0]
	assert.Equal(t, ex+"C", c.ID().IRI)
	assert.Empty(t, c.Children(), "C's import of A closes the cycle")
	assert.Equal(t, 3, w.total())
	assert.Equal(t, []string{ex + "A", ex + "B", ex + "C"}, keys(res.Ontologies))
	assert.Equal(t, []string{ex + "B", ex + "C"}, res.Root.Imports())
}

func TestLoadDiamond(t *testing.T) {
	w := newWorld()
	w.add("A", doc("A", "C", "B"))
	w.add("B", doc("B", "D"))
	w.add("C", doc("C", "D"))
	w.add("D", doc("D"))

	res, err := w.loader().Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
	require.NoError(t, err)

	assert.Equal(t, 4, w.total())
	children := res.Root.Children()
	require.Len(t, children, 2)
	assert.Equal(t, ex+"B", children[0].ID().IRI, "imports are built in sorted order")
	assert.Equal(t, ex+"C", children[1].ID().IRI)

	require.Len(t, children[0].Children(), 1)
	require.Len(t, children[1].Children(), 1)
	assert.Same(t, children[0].Children()[0].Base(), children[1].Children()[0].Base())

	assert.Equal(t, []string{ex + "B", ex + "D", ex + "C"}, res.Root.Imports())
	assert.True(t, res.Root.Graph().Contains(rdf.T(rdf.IRI(ex+"D#C"), rdf.Type, rdf.IRI(owl.Class))))
	assert.Len(t, res.Ontologies, 4)
}

func TestLoadDeterministic(t *testing.T) {
	w := newWorld()
	w.add("A", doc("A", "D", "C", "B"))
	w.add("B", doc("B", "C"))
	w.add("C", doc("C"))
	w.add("D", doc("D", "B"))

	var shapes [][]string
	for range 3 {
		res, err := w.loader().Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
		require.NoError(t, err)
		shapes = append(shapes, res.Root.Imports())
	}
	assert.Equal(t, shapes[0], shapes[1])
	assert.Equal(t, shapes[0], shapes[2])
}

// registry is a caller registry backed by load results.
type registry map[string]loader.Resident

func (r registry) Ontology(iri string) (loader.Resident, bool) {
	res, ok := r[iri]
	return res, ok
}

func (r registry) addAll(res *loader.Result) {
	for _, c := range res.Ontologies {
		rec := c.Record()
		r[rec.Key()] = loader.Resident{Graph: rec.Graph(), Format: rec.Format(), Source: rec.Source()}
	}
}

func TestFreshOnce(t *testing.T) {
	w := newWorld()
	w.add("A", doc("A", "B"))
	w.add("B", doc("B"))
	w.add("E", doc("E", "B"))

	res, err := w.loader().Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
	require.NoError(t, err)
	for _, c := range res.Ontologies {
		assert.False(t, c.Record().IsFresh(), c.Record().Key())
	}

	reg := registry{}
	reg.addAll(res)
	before := w.total()

	res2, err := w.loader(loader.WithRegistry(reg)).Load(context.Background(), loader.DocumentSource{Locator: "doc:E"})
	require.NoError(t, err)
	assert.Equal(t, before+1, w.total(), "resident imports are not read again")
	assert.Equal(t, []string{ex + "E"}, keys(res2.Ontologies))

	require.Len(t, res2.Root.Children(), 1)
	b := res2.Root.Children()[0].Record()
	assert.True(t, b.NoTransform())
	assert.False(t, b.IsFresh())
	assert.Same(t, reg[ex+"B"].Graph, b.Graph())
}

func TestFallbackReader(t *testing.T) {
	content := doc("B")
	content.Add(rdf.T(rdf.IRI(ex+"B#C"), rdf.IRI(owl.RDFSSubClassOf), rdf.IRI(owl.Thing)))

	w := newWorld()
	w.add("A", doc("A", "B"))
	w.axiomDocs["doc:B"] = content
	w.add("Bnt", content)

	res, err := w.loader().Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
	require.NoError(t, err)
	require.Len(t, res.Root.Children(), 1)

	b := res.Root.Children()[0].Record()
	assert.Equal(t, rdf.FormatAxiomYAML, b.Format())
	assert.True(t, b.NoTransform())
	assert.ErrorIs(t, b.Suppressed(), loader.ErrUnsupportedFormat)
	assert.Equal(t, 1, w.secondary)

	direct, err := w.loader().Load(context.Background(), loader.DocumentSource{Locator: "doc:Bnt"})
	require.NoError(t, err)

	reg := translate.NewRegistry()
	cfg := translate.DefaultConfig()
	viaFallback, err := reg.CollectAll(b.Graph(), cfg)
	require.NoError(t, err)
	viaPrimary, err := reg.CollectAll(direct.Root.Base(), cfg)
	require.NoError(t, err)
	assert.Len(t, viaFallback, len(viaPrimary))
	assert.NotEmpty(t, viaPrimary)
}

func TestFallbackRegistersImports(t *testing.T) {
	w := newWorld()
	w.add("A", doc("A", "B"))
	w.axiomDocs["doc:B"] = doc("B", "Z")
	w.overlay["doc:Z"] = doc("Z")

	res, err := w.loader().Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
	require.NoError(t, err)

	assert.Zero(t, w.fetches["doc:Z"], "Z was loaded by the secondary reader")
	assert.Equal(t, []string{ex + "B", ex + "Z"}, res.Root.Imports())
	assert.Equal(t, []string{ex + "A", ex + "B", ex + "Z"}, keys(res.Ontologies))
}

func TestFetchErrors(t *testing.T) {
	notFound := fmt.Errorf("open doc:B: %w", fs.ErrNotExist)

	tests := []struct {
		name     string
		opts     []loader.Option
		noAlt    bool
		broken   error
		check    func(t *testing.T, err error)
		fallback int
	}{
		{
			name:     "secondary failure carries both causes",
			broken:   errors.New("bad yaml"),
			fallback: 1,
			check: func(t *testing.T, err error) {
				var oce *loader.OntologyCreationError
				require.ErrorAs(t, err, &oce)
				assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)
				assert.EqualError(t, oce.Secondary, "bad yaml")
				assert.True(t, retry.IsNonRetryable(err))
			},
		},
		{
			name:  "no secondary propagates the primary failure",
			noAlt: true,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)
				var oce *loader.OntologyCreationError
				assert.False(t, errors.As(err, &oce))
			},
		},
		{
			name:  "alternate only without a secondary",
			opts:  []loader.Option{loader.WithAlternateLoaderOnly(true)},
			noAlt: true,
			check: func(t *testing.T, err error) {
				var cme *loader.ConfigMismatchError
				require.ErrorAs(t, err, &cme)
				assert.True(t, retry.IsNonRetryable(err))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newWorld()
			w.axiomDocs["doc:B"] = doc("B")
			w.brokenAlt = tc.broken

			opts := []loader.LoaderOption{
				loader.WithPrimaryReader(w),
				loader.WithIRIMapper(w),
				loader.WithConfig(loader.NewConfig(tc.opts...)),
			}
			if !tc.noAlt {
				opts = append(opts, loader.WithSecondaryReader(w))
			}
			res, err := loader.New(opts...).Load(context.Background(), loader.DocumentSource{Locator: "doc:B"})
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Equal(t, tc.fallback, w.secondary)
			tc.check(t, err)
		})
	}

	t.Run("non retryable primary failure skips the secondary", func(t *testing.T) {
		w := newWorld()
		_, err := w.loader().Load(context.Background(), loader.DocumentSource{Locator: "doc:B"})
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.Equal(t, notFound.Error(), errors.Unwrap(err).Error())
		assert.Zero(t, w.secondary)
	})
}

func TestMissingImportPolicy(t *testing.T) {
	newDocs := func() *world {
		w := newWorld()
		w.add("A", doc("A", "B", "C", "Missing"))
		w.add("B", doc("B"))
		w.add("C", doc("C"))
		return w
	}

	t.Run("throw", func(t *testing.T) {
		w := newDocs()
		cfg := loader.NewConfig(loader.WithMissingImportPolicy(loader.ImportThrow))
		res, err := w.loader(loader.WithConfig(cfg)).Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
		require.Error(t, err)
		assert.Nil(t, res)

		var uie *loader.UnresolvableImportError
		require.ErrorAs(t, err, &uie)
		assert.Equal(t, ex+"Missing", uie.Import)
		assert.Equal(t, ex+"A", uie.Ontology)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("warn", func(t *testing.T) {
		w := newDocs()
		cfg := loader.NewConfig(loader.WithMissingImportPolicy(loader.ImportWarn))
		res, err := w.loader(loader.WithConfig(cfg)).Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
		require.NoError(t, err)

		assert.Len(t, res.Root.Children(), 2)
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, ex+"Missing", res.Warnings[0].Import)
		assert.ErrorIs(t, res.Warnings[0].Err, fs.ErrNotExist)
		assert.Equal(t, 1, w.fetches["doc:Missing"])
	})
}

func TestIgnoredImports(t *testing.T) {
	w := newWorld()
	w.add("A", doc("A", "B", "skip-me"))
	w.add("B", doc("B"))

	cfg := loader.NewConfig(
		loader.WithMissingImportPolicy(loader.ImportThrow),
		loader.WithIgnoredImports(func(iri string) bool { return strings.Contains(iri, "skip") }),
	)
	res, err := w.loader(loader.WithConfig(cfg)).Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
	require.NoError(t, err)
	assert.Equal(t, []string{ex + "B"}, res.Root.Imports())
	assert.Zero(t, w.fetches["doc:skip-me"])
}

func TestAnonymousImports(t *testing.T) {
	newDocs := func() *world {
		w := newWorld()
		w.add("A", doc("A", "X"))
		w.add("X", anonymous("X", "Y", "B"))
		w.add("Y", anonymous("Y", "C"))
		w.add("B", doc("B"))
		w.add("C", doc("C"))
		return w
	}

	t.Run("merge into parent", func(t *testing.T) {
		w := newDocs()
		res, err := w.loader().Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
		require.NoError(t, err)

		base := res.Root.Base()
		assert.False(t, base.Contains(rdf.T(rdf.IRI(ex+"A"), importsPred, rdf.IRI(ex+"X"))))
		assert.True(t, base.Contains(rdf.T(rdf.IRI(ex+"X#C"), rdf.Type, rdf.IRI(owl.Class))))
		assert.True(t, base.Contains(rdf.T(rdf.IRI(ex+"Y#C"), rdf.Type, rdf.IRI(owl.Class))))

		assert.Equal(t, []string{ex + "B", ex + "C"}, keys(res.Root.Children()))
		assert.Equal(t, []string{ex + "B", ex + "C"}, res.Root.Record().Imports())
		assert.Equal(t, []string{ex + "A", ex + "B", ex + "C"}, keys(res.Ontologies))
	})

	t.Run("keep separate", func(t *testing.T) {
		w := newDocs()
		cfg := loader.NewConfig(loader.WithMissingHeaderPolicy(loader.HeaderKeepSeparate))
		res, err := w.loader(loader.WithConfig(cfg)).Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
		require.NoError(t, err)

		require.Len(t, res.Root.Children(), 1)
		x := res.Root.Children()[0]
		assert.True(t, x.Record().IsAnonymous())
		assert.True(t, strings.HasPrefix(x.Record().Key(), "urn:uuid:"))
		assert.Len(t, x.Children(), 2)
		assert.False(t, res.Root.Base().Contains(rdf.T(rdf.IRI(ex+"X#C"), rdf.Type, rdf.IRI(owl.Class))))
		assert.Len(t, res.Ontologies, 5)
	})

	t.Run("merged imports overlap the parent", func(t *testing.T) {
		w := newWorld()
		w.add("A", doc("A", "A2", "X"))
		w.add("A2", doc("A2"))
		w.add("X", anonymous("X", "A2", "Z"))
		w.add("Z", doc("Z"))

		res, err := w.loader().Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
		require.NoError(t, err)

		assert.Equal(t, []string{ex + "A2", ex + "Z"}, keys(res.Root.Children()))
		assert.True(t, res.Root.Base().Contains(rdf.T(rdf.IRI(ex+"X#C"), rdf.Type, rdf.IRI(owl.Class))))
		assert.Equal(t, 1, w.fetches["doc:A2"])
		assert.Len(t, res.Ontologies, 3)
	})
}

func TestMergeRenamesClashingBlankNodes(t *testing.T) {
	w := newWorld()
	a := doc("A", "X")
	a.Add(rdf.T(rdf.Blank("h"), rdf.IRI(owl.RDFSComment), rdf.Literal("parent", "")))
	w.add("A", a)
	w.add("X", anonymous("X"))

	res, err := w.loader().Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
	require.NoError(t, err)

	base := res.Root.Base()
	assert.Equal(t, 1, rdf.Count(base, rdf.Blank("h"), rdf.Any, rdf.Any))
	assert.Equal(t, 2, rdf.Count(base, rdf.Any, rdf.Type, ontologyType))
}

func TestPassThroughSource(t *testing.T) {
	w := newWorld()
	w.add("B", doc("B"))
	g := doc("A", "B")

	res, err := w.loader().Load(context.Background(), loader.DocumentSource{Graph: g})
	require.NoError(t, err)
	assert.Same(t, g, res.Root.Base())
	assert.Empty(t, res.Root.Record().Source())
	assert.Equal(t, 1, w.total())
}

// recordingPipeline tags every graph it may touch.
type recordingPipeline struct {
	calls   int
	skipped int
	extra   *rdf.Graph
}

func (p *recordingPipeline) Transform(_ context.Context, u *rdf.UnionGraph, skip func(*rdf.Graph) bool) ([]loader.Stats, error) {
	p.calls++
	var stats []loader.Stats
	for _, g := range u.Graphs() {
		if skip(g) {
			p.skipped++
			continue
		}
		g.Add(rdf.T(rdf.IRI(ex+"tag"), rdf.Type, rdf.IRI(owl.AnnotationProperty)))
		stats = append(stats, loader.Stats{Pass: "tag", Graph: g, Added: 1})
	}
	if p.extra != nil {
		stats = append(stats, loader.Stats{Pass: "tag", Graph: p.extra})
	}
	return stats, nil
}

func TestTransformPipeline(t *testing.T) {
	tag := rdf.T(rdf.IRI(ex+"tag"), rdf.Type, rdf.IRI(owl.AnnotationProperty))

	t.Run("runs once and attributes stats", func(t *testing.T) {
		w := newWorld()
		w.add("A", doc("A", "B"))
		w.add("B", doc("B", "R"))
		reg := registry{ex + "R": {Graph: doc("R")}}

		p := &recordingPipeline{extra: rdf.NewGraph()}
		res, err := w.loader(loader.WithPipeline(p), loader.WithRegistry(reg)).Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
		require.NoError(t, err)

		assert.Equal(t, 1, p.calls)
		assert.Equal(t, 1, p.skipped, "resident graphs are skipped")
		assert.False(t, reg[ex+"R"].Graph.Contains(tag))
		for _, c := range res.Ontologies {
			require.Len(t, c.Record().Stats(), 1, c.Record().Key())
			assert.Equal(t, "tag", c.Record().Stats()[0].Pass)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		w := newWorld()
		w.add("A", doc("A"))
		p := &recordingPipeline{}
		cfg := loader.NewConfig(loader.WithTransformation(false))
		res, err := w.loader(loader.WithPipeline(p), loader.WithConfig(cfg)).Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
		require.NoError(t, err)
		assert.Zero(t, p.calls)
		assert.False(t, res.Root.Base().Contains(tag))
	})

	t.Run("secondary root is not transformed", func(t *testing.T) {
		w := newWorld()
		w.axiomDocs["doc:A"] = doc("A")
		p := &recordingPipeline{}
		_, err := w.loader(loader.WithPipeline(p)).Load(context.Background(), loader.DocumentSource{Locator: "doc:A"})
		require.NoError(t, err)
		assert.Zero(t, p.calls)
	})
}

func TestLoadCancelled(t *testing.T) {
	w := newWorld()
	w.add("A", doc("A"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := w.loader().Load(ctx, loader.DocumentSource{Locator: "doc:A"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, w.total())
}
