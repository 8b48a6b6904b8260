package loader

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/c360studio/semstreams/pkg/retry"

	"github.com/c360studio/semontology/rdf"
)

// Builder assembles the import closure of a record into a Composite.
type Builder struct {
	fetcher *Fetcher
	cfg     Config
	logger  *slog.Logger
	metrics *Metrics
}

// frame is one node of the depth-first build.
type frame struct {
	comp     *Composite
	seen     map[string]struct{}
	children []edge
	next     int
}

// edge is a resolved import still to be built.
type edge struct {
	iri string
	rec *GraphRecord
}

// Build assembles root and, depth first, every import it reaches. Imports
// are visited in sorted order. An import already on the current branch is
// a cycle and is skipped; siblings do not see each other's branches.
func (b *Builder) Build(ctx context.Context, root *GraphRecord, s *Session) (*Composite, error) {
	top, err := b.scan(ctx, root, map[string]struct{}{}, s)
	if err != nil {
		return nil, err
	}
	stack := []*frame{top}
	for {
		f := stack[len(stack)-1]
		if f.next < len(f.children) {
			e := f.children[f.next]
			f.next++
			seen := maps.Clone(f.seen)
			seen[e.iri] = struct{}{}
			next, err := b.scan(ctx, e.rec, seen, s)
			if err != nil {
				return nil, err
			}
			stack = append(stack, next)
			continue
		}
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return f.comp, nil
		}
		stack[len(stack)-1].comp.addChild(f.comp)
	}
}

// scan resolves the imports of rec and returns the frame holding the
// records still to be built as children. Anonymous imports are merged into
// rec when the header policy says so.
func (b *Builder) scan(ctx context.Context, rec *GraphRecord, seen map[string]struct{}, s *Session) (*frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seen[rec.Key()] = struct{}{}
	f := &frame{comp: newComposite(rec), seen: seen}

	imports := rec.Imports()
	for i := 0; i < len(imports); i++ {
		iri := imports[i]
		if b.cfg.IsIgnoredImport(iri) {
			b.logger.Debug("Import ignored", "ontology", rec.Name(), "import", iri)
			b.metrics.importOutcome("ignored")
			continue
		}
		if _, ok := seen[iri]; ok {
			b.logger.Debug("Import cycle elided", "ontology", rec.Name(), "import", iri)
			b.metrics.importOutcome("cycle")
			continue
		}

		child, err := b.resolve(ctx, iri, s)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if b.cfg.MissingImportPolicy() == ImportThrow {
				b.metrics.importOutcome("failed")
				return nil, retry.NonRetryable(&UnresolvableImportError{Ontology: rec.Name(), Import: iri, Err: err})
			}
			if s.warn(Warning{Ontology: rec.Name(), Import: iri, Err: err}) {
				b.logger.Warn("Import skipped", "ontology", rec.Name(), "import", iri, "error", err)
				b.metrics.importOutcome("missing")
				b.metrics.warned()
			}
			continue
		}
		if _, ok := seen[child.Key()]; ok {
			b.logger.Debug("Import cycle elided", "ontology", rec.Name(), "import", iri, "resolved", child.Key())
			b.metrics.importOutcome("cycle")
			continue
		}

		if child.IsAnonymous() && b.cfg.MissingHeaderPolicy() == HeaderMergeIntoParent {
			spliced := b.merge(rec, child, iri)
			pos := i + 1
			for _, imp := range spliced {
				if !slices.Contains(imports, imp) {
					imports = slices.Insert(imports, pos, imp)
					pos++
				}
			}
			b.logger.Debug("Anonymous import merged", "ontology", rec.Name(), "import", iri, "statements", child.graph.Len())
			b.metrics.importOutcome("merged")
			continue
		}

		if !slices.ContainsFunc(f.children, func(e edge) bool { return e.rec == child }) {
			f.children = append(f.children, edge{iri: iri, rec: child})
		}
		b.metrics.importOutcome("resolved")
	}
	return f, nil
}

// resolve returns the record for an import IRI, fetching it at most once
// per session.
func (b *Builder) resolve(ctx context.Context, iri string, s *Session) (*GraphRecord, error) {
	if rec := s.lookup(iri); rec != nil {
		return rec, nil
	}
	if err, ok := s.failed[iri]; ok {
		return nil, err
	}
	rec, err := b.fetcher.FetchImport(ctx, iri, s)
	if err != nil {
		if ctx.Err() == nil {
			s.failed[iri] = err
		}
		return nil, err
	}
	s.put(iri, rec)
	b.logger.Debug("Import resolved", "import", iri, "ontology", rec.Name(), "source", rec.Source())
	return rec, nil
}

// merge absorbs an anonymous child into parent: the owl:imports statement
// is dropped, the child's statements are copied with blank nodes renamed
// where they clash, and the child is marked processed. It returns the
// child's imports that parent now inherits.
func (b *Builder) merge(parent, child *GraphRecord, iri string) []string {
	parent.identify()
	if !parent.header.IsZero() {
		parent.graph.Remove(rdf.Triple{S: parent.header, P: importsPred, O: rdf.IRI(iri)})
	}
	mergeGraph(parent.graph, child.graph)
	child.setProcessed()

	inherited := child.Imports()
	imports := slices.DeleteFunc(parent.Imports(), func(s string) bool { return s == iri })
	for _, imp := range inherited {
		if !slices.Contains(imports, imp) {
			imports = append(imports, imp)
		}
	}
	slices.Sort(imports)
	parent.imports = imports
	return inherited
}

// mergeGraph copies every statement of src into dst. Blank nodes of src
// whose label dst already uses get a fresh label.
func mergeGraph(dst, src *rdf.Graph) int {
	used := make(map[string]bool)
	for t := range dst.Triples() {
		if t.S.IsBlank() {
			used[t.S.Value] = true
		}
		if t.O.IsBlank() {
			used[t.O.Value] = true
		}
	}
	renamed := make(map[string]rdf.Term)
	relabel := func(n rdf.Term) rdf.Term {
		if !n.IsBlank() || !used[n.Value] {
			return n
		}
		if r, ok := renamed[n.Value]; ok {
			return r
		}
		r := rdf.Blank("m" + uuid.NewString())
		renamed[n.Value] = r
		return r
	}
	added := 0
	for t := range src.Triples() {
		if dst.Add(rdf.Triple{S: relabel(t.S), P: t.P, O: relabel(t.O)}) {
			added++
		}
	}
	return added
}
