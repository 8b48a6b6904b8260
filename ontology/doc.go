// Package ontology holds the typed view of an ontology: identities,
// entities, class expressions, data ranges, annotations and axioms.
//
// Every value has a canonical Key. Two values are structurally equal when
// their keys are equal; operands of set-valued constructs and annotation
// sets are compared as sets.
package ontology
