package rdf

import "iter"

// UnionGraph reads a base graph and its sub-graphs as one logical graph.
// Writes always go to the base graph. A sub-graph reachable along several
// paths is read once.
type UnionGraph struct {
	base *Graph
	subs []*UnionGraph
}

// NewUnionGraph creates a union over base and subs.
func NewUnionGraph(base *Graph, subs ...*UnionGraph) *UnionGraph {
	return &UnionGraph{base: base, subs: subs}
}

// Base returns the root graph.
func (u *UnionGraph) Base() *Graph { return u.base }

// Subs returns the direct sub-graphs in order.
func (u *UnionGraph) Subs() []*UnionGraph { return u.subs }

// AddSub appends a sub-graph.
func (u *UnionGraph) AddSub(sub *UnionGraph) { u.subs = append(u.subs, sub) }

// Graphs returns the distinct base graphs of the union, depth-first with
// the root first.
func (u *UnionGraph) Graphs() []*Graph {
	var out []*Graph
	seen := make(map[*Graph]bool)
	stack := []*UnionGraph{u}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n.base] {
			continue
		}
		seen[n.base] = true
		out = append(out, n.base)
		for i := len(n.subs) - 1; i >= 0; i-- {
			stack = append(stack, n.subs[i])
		}
	}
	return out
}

// Find returns the distinct matching triples across all graphs.
func (u *UnionGraph) Find(s, p, o Term) iter.Seq[Triple] {
	return func(yield func(Triple) bool) {
		graphs := u.Graphs()
		if len(graphs) == 1 {
			for t := range graphs[0].Find(s, p, o) {
				if !yield(t) {
					return
				}
			}
			return
		}
		seen := make(map[Triple]struct{})
		for _, g := range graphs {
			for t := range g.Find(s, p, o) {
				if _, dup := seen[t]; dup {
					continue
				}
				seen[t] = struct{}{}
				if !yield(t) {
					return
				}
			}
		}
	}
}

// Contains reports whether any graph holds t.
func (u *UnionGraph) Contains(t Triple) bool {
	for _, g := range u.Graphs() {
		if g.Contains(t) {
			return true
		}
	}
	return false
}

// Add inserts t into the base graph.
func (u *UnionGraph) Add(t Triple) bool { return u.base.Add(t) }

// Remove deletes t from the base graph only.
func (u *UnionGraph) Remove(t Triple) bool { return u.base.Remove(t) }

// Len returns the number of distinct triples across all graphs.
func (u *UnionGraph) Len() int { return Count(u, Any, Any, Any) }
