package ontology

import (
	"fmt"
	"maps"
	"slices"

	"github.com/c360studio/semontology/rdf"
)

// Object pairs a value with the statements it was read from.
type Object[T Keyed] struct {
	value   T
	triples map[rdf.Triple]struct{}
}

// NewObject wraps v with the given statements.
func NewObject[T Keyed](v T, triples ...rdf.Triple) Object[T] {
	o := Object[T]{value: v, triples: make(map[rdf.Triple]struct{}, len(triples))}
	for _, t := range triples {
		o.triples[t] = struct{}{}
	}
	return o
}

// Value returns the wrapped value.
func (o Object[T]) Value() T { return o.value }

// Key returns the key of the wrapped value.
func (o Object[T]) Key() string { return o.value.Key() }

// Len returns the number of statements.
func (o Object[T]) Len() int { return len(o.triples) }

// Contains reports whether t is one of the statements.
func (o Object[T]) Contains(t rdf.Triple) bool {
	_, ok := o.triples[t]
	return ok
}

// Triples returns the statements in a stable order.
func (o Object[T]) Triples() []rdf.Triple {
	out := slices.Collect(maps.Keys(o.triples))
	slices.SortFunc(out, rdf.Triple.Compare)
	return out
}

// With returns a copy that also holds the given statements.
func (o Object[T]) With(triples ...rdf.Triple) Object[T] {
	c := Object[T]{value: o.value, triples: maps.Clone(o.triples)}
	if c.triples == nil {
		c.triples = make(map[rdf.Triple]struct{}, len(triples))
	}
	for _, t := range triples {
		c.triples[t] = struct{}{}
	}
	return c
}

// Merge unions the statements of two wrappers of equal values.
func (o Object[T]) Merge(other Object[T]) (Object[T], error) {
	if o.Key() != other.Key() {
		return o, fmt.Errorf("merge %s with %s: values differ", o.Key(), other.Key())
	}
	return o.With(slices.Collect(maps.Keys(other.triples))...), nil
}

// Values unwraps a slice of objects.
func Values[T Keyed](objs []Object[T]) []T {
	out := make([]T, len(objs))
	for i, o := range objs {
		out[i] = o.value
	}
	return out
}

// MergeAll folds wrappers of equal values together, keeping first-seen order.
func MergeAll[T Keyed](objs []Object[T]) []Object[T] {
	var out []Object[T]
	index := make(map[string]int)
	for _, o := range objs {
		if i, ok := index[o.Key()]; ok {
			out[i], _ = out[i].Merge(o)
			continue
		}
		index[o.Key()] = len(out)
		out = append(out, o)
	}
	return out
}
