// Package translate maps statements to typed axioms and back.
//
// Each axiom kind has a Translator: a cheap candidate enumerator, a precise
// match test, a reader building the axiom with the exact statements that
// produced it, and a writer emitting the statements again. Translators are
// plain structs of closures assembled from a few family helpers, and the
// Registry dispatches over them in a fixed declared order.
//
// Annotations attached to a statement are decoded by AnnotationResolver
// from owl:Axiom and owl:Annotation reification anchors, recursively.
package translate
