// Package rdf is the statement layer: terms, triples, indexed graphs and the
// union graphs that stitch an import closure together.
//
// Terms are interned into a Dictionary and graphs index triples by the
// resulting Node handles, so pattern lookups never re-hash IRI strings.
// Graph is not safe for concurrent mutation; callers serialize writes.
package rdf
