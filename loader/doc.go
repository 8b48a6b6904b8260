// Package loader resolves an ontology document and its transitive imports
// into one composite graph.
//
// A Loader fetches the root document, walks its owl:imports depth first in
// sorted order, and assembles an rdf.UnionGraph per ontology whose
// sub-graphs are the resolved imports. Each top-level Load owns a Session
// that caches records by identity, so an ontology shared by several import
// paths is fetched once. Import cycles are cut with a per-branch seen set.
//
// Documents are read by a primary graph reader. When it reports an
// unsupported format and a secondary axiom reader is configured, the
// fetcher falls back to the secondary reader against an isolated overlay
// registry, keeping the primary failure as a suppressed cause.
package loader
