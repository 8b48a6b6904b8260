package rdf

import "github.com/c360studio/semontology/vocabulary/owl"

// Type is the rdf:type predicate term.
var Type = IRI(owl.RDFType)

// Objects returns the objects of every (s, p, ?) triple.
func Objects(r Reader, s, p Term) []Term {
	var out []Term
	for t := range r.Find(s, p, Any) {
		out = append(out, t.O)
	}
	return out
}

// Subjects returns the subjects of every (?, p, o) triple.
func Subjects(r Reader, p, o Term) []Term {
	var out []Term
	for t := range r.Find(Any, p, o) {
		out = append(out, t.S)
	}
	return out
}

// Object returns the single object of (s, p, ?). ok is false when there is
// none or more than one.
func Object(r Reader, s, p Term) (Term, bool) {
	var found Term
	n := 0
	for t := range r.Find(s, p, Any) {
		found = t.O
		n++
		if n > 1 {
			return Term{}, false
		}
	}
	return found, n == 1
}

// HasType reports whether (s, rdf:type, typ) is present.
func HasType(r Reader, s Term, typ string) bool {
	return r.Contains(Triple{S: s, P: Type, O: IRI(typ)})
}

// Types returns the IRIs s is typed with.
func Types(r Reader, s Term) []string {
	var out []string
	for t := range r.Find(s, Type, Any) {
		if t.O.IsIRI() {
			out = append(out, t.O.Value)
		}
	}
	return out
}

// Count returns the number of triples matching the pattern.
func Count(r Reader, s, p, o Term) int {
	n := 0
	for range r.Find(s, p, o) {
		n++
	}
	return n
}
