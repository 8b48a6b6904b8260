package rdf

import (
	"errors"
	"fmt"

	"github.com/c360studio/semontology/vocabulary/owl"
)

var (
	// ErrMalformedList is returned when a list node lacks rdf:first or rdf:rest.
	ErrMalformedList = errors.New("malformed rdf list")

	// ErrListCycle is returned when a list's rest chain loops.
	ErrListCycle = errors.New("rdf list cycle")
)

var (
	first = IRI(owl.RDFFirst)
	rest  = IRI(owl.RDFRest)
)

// ReadList walks the list starting at head and returns its items together
// with the rdf:first/rdf:rest triples that encode it.
func ReadList(r Reader, head Term) ([]Term, []Triple, error) {
	var items []Term
	var triples []Triple
	visited := make(map[Term]bool)
	for node := head; node != Nil; {
		if visited[node] {
			return nil, nil, fmt.Errorf("read list %s: %w", head, ErrListCycle)
		}
		visited[node] = true

		item, ok := Object(r, node, first)
		if !ok {
			return nil, nil, fmt.Errorf("read list %s at %s: %w", head, node, ErrMalformedList)
		}
		next, ok := Object(r, node, rest)
		if !ok {
			return nil, nil, fmt.Errorf("read list %s at %s: %w", head, node, ErrMalformedList)
		}
		items = append(items, item)
		triples = append(triples, T(node, first, item), T(node, rest, next))
		node = next
	}
	return items, triples, nil
}

// WriteList writes items as an rdf list and returns the head node.
// newBlank allocates the list cells.
func WriteList(w Writer, items []Term, newBlank func() Term) Term {
	head := Nil
	for i := len(items) - 1; i >= 0; i-- {
		cell := newBlank()
		w.Add(T(cell, first, items[i]))
		w.Add(T(cell, rest, head))
		head = cell
	}
	return head
}

// IsList reports whether t is rdf:nil or a node carrying rdf:first.
func IsList(r Reader, t Term) bool {
	if t == Nil {
		return true
	}
	for range r.Find(t, first, Any) {
		return true
	}
	return false
}
