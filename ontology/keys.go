package ontology

import (
	"slices"
	"strings"
)

// Keyed is implemented by every value with a canonical key.
type Keyed interface {
	Key() string
}

func iriKey(iri string) string { return "<" + iri + ">" }

// setKey joins operand keys in sorted order.
func setKey[T Keyed](xs []T) string {
	ks := make([]string, len(xs))
	for i, x := range xs {
		ks[i] = x.Key()
	}
	slices.Sort(ks)
	return strings.Join(ks, " ")
}

// seqKey joins operand keys in order.
func seqKey[T Keyed](xs []T) string {
	ks := make([]string, len(xs))
	for i, x := range xs {
		ks[i] = x.Key()
	}
	return strings.Join(ks, " ")
}

func fn(name string, args ...string) string {
	return name + "(" + strings.Join(args, " ") + ")"
}

// Equal reports whether a and b are structurally equal.
func Equal(a, b Keyed) bool { return a.Key() == b.Key() }
