package rdf

import (
	"iter"
	"maps"
	"slices"
)

// Reader is the read side of a statement store. A zero Term in a pattern
// matches anything.
type Reader interface {
	Find(s, p, o Term) iter.Seq[Triple]
	Contains(t Triple) bool
}

// Writer is the write side of a statement store.
type Writer interface {
	Add(t Triple) bool
	Remove(t Triple) bool
}

// Store combines Reader and Writer.
type Store interface {
	Reader
	Writer
}

type index map[Node]map[Node]map[Node]struct{}

func (ix index) add(a, b, c Node) bool {
	l1, ok := ix[a]
	if !ok {
		l1 = make(map[Node]map[Node]struct{})
		ix[a] = l1
	}
	l2, ok := l1[b]
	if !ok {
		l2 = make(map[Node]struct{})
		l1[b] = l2
	}
	if _, ok := l2[c]; ok {
		return false
	}
	l2[c] = struct{}{}
	return true
}

func (ix index) remove(a, b, c Node) {
	l1 := ix[a]
	l2 := l1[b]
	delete(l2, c)
	if len(l2) == 0 {
		delete(l1, b)
	}
	if len(l1) == 0 {
		delete(ix, a)
	}
}

// Graph is an in-memory triple set indexed three ways (spo, pos, osp).
type Graph struct {
	dict     *Dictionary
	spo      index
	pos      index
	osp      index
	size     int
	prefixes map[string]string
}

// GraphOption configures a Graph.
type GraphOption func(*Graph)

// WithDictionary interns terms into d instead of the default dictionary.
func WithDictionary(d *Dictionary) GraphOption {
	return func(g *Graph) { g.dict = d }
}

// NewGraph creates an empty graph.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		dict:     defaultDictionary,
		spo:      make(index),
		pos:      make(index),
		osp:      make(index),
		prefixes: make(map[string]string),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Dictionary returns the dictionary backing g.
func (g *Graph) Dictionary() *Dictionary { return g.dict }

// Len returns the number of triples.
func (g *Graph) Len() int { return g.size }

// Add inserts t and reports whether it was new.
func (g *Graph) Add(t Triple) bool {
	s, p, o := g.dict.Intern(t.S), g.dict.Intern(t.P), g.dict.Intern(t.O)
	if !g.spo.add(s, p, o) {
		return false
	}
	g.pos.add(p, o, s)
	g.osp.add(o, s, p)
	g.size++
	return true
}

// AddAll inserts every triple of seq and returns how many were new.
func (g *Graph) AddAll(seq iter.Seq[Triple]) int {
	n := 0
	for t := range seq {
		if g.Add(t) {
			n++
		}
	}
	return n
}

// Remove deletes t and reports whether it was present.
func (g *Graph) Remove(t Triple) bool {
	s, p, o, ok := g.lookup(t)
	if !ok {
		return false
	}
	if _, ok := g.spo[s][p][o]; !ok {
		return false
	}
	g.spo.remove(s, p, o)
	g.pos.remove(p, o, s)
	g.osp.remove(o, s, p)
	g.size--
	return true
}

// RemoveMatching deletes every triple matching the pattern.
func (g *Graph) RemoveMatching(s, p, o Term) int {
	matched := slices.Collect(g.Find(s, p, o))
	for _, t := range matched {
		g.Remove(t)
	}
	return len(matched)
}

// Contains reports whether t is in g.
func (g *Graph) Contains(t Triple) bool {
	s, p, o, ok := g.lookup(t)
	if !ok {
		return false
	}
	_, ok = g.spo[s][p][o]
	return ok
}

func (g *Graph) lookup(t Triple) (s, p, o Node, ok bool) {
	if s, ok = g.dict.Lookup(t.S); !ok {
		return
	}
	if p, ok = g.dict.Lookup(t.P); !ok {
		return
	}
	o, ok = g.dict.Lookup(t.O)
	return
}

// bind resolves a pattern term. A zero Term binds to 0 (wildcard); an
// unknown term cannot match anything.
func (g *Graph) bind(t Term) (Node, bool) {
	if t.IsZero() {
		return 0, true
	}
	return g.dict.Lookup(t)
}

// Find returns the triples matching the pattern. Mutating g while ranging
// over the sequence is not supported; collect first.
func (g *Graph) Find(s, p, o Term) iter.Seq[Triple] {
	return func(yield func(Triple) bool) {
		sn, ok1 := g.bind(s)
		pn, ok2 := g.bind(p)
		on, ok3 := g.bind(o)
		if !ok1 || !ok2 || !ok3 {
			return
		}
		emit := func(a, b, c Node) bool {
			return yield(Triple{S: g.dict.Term(a), P: g.dict.Term(b), O: g.dict.Term(c)})
		}

		switch {
		case sn != 0 && pn != 0 && on != 0:
			if _, ok := g.spo[sn][pn][on]; ok {
				emit(sn, pn, on)
			}
		case sn != 0 && pn != 0:
			for on := range g.spo[sn][pn] {
				if !emit(sn, pn, on) {
					return
				}
			}
		case sn != 0 && on != 0:
			for pn := range g.osp[on][sn] {
				if !emit(sn, pn, on) {
					return
				}
			}
		case sn != 0:
			for pn, objs := range g.spo[sn] {
				for on := range objs {
					if !emit(sn, pn, on) {
						return
					}
				}
			}
		case pn != 0 && on != 0:
			for sn := range g.pos[pn][on] {
				if !emit(sn, pn, on) {
					return
				}
			}
		case pn != 0:
			for on, subs := range g.pos[pn] {
				for sn := range subs {
					if !emit(sn, pn, on) {
						return
					}
				}
			}
		case on != 0:
			for sn, preds := range g.osp[on] {
				for pn := range preds {
					if !emit(sn, pn, on) {
						return
					}
				}
			}
		default:
			for sn, preds := range g.spo {
				for pn, objs := range preds {
					for on := range objs {
						if !emit(sn, pn, on) {
							return
						}
					}
				}
			}
		}
	}
}

// Triples returns every triple in g.
func (g *Graph) Triples() iter.Seq[Triple] { return g.Find(Any, Any, Any) }

// Sorted returns every triple in g in a stable order.
func (g *Graph) Sorted() []Triple {
	out := slices.Collect(g.Triples())
	slices.SortFunc(out, Triple.Compare)
	return out
}

// Clone returns a copy of g sharing its dictionary.
func (g *Graph) Clone() *Graph {
	c := NewGraph(WithDictionary(g.dict))
	c.AddAll(g.Triples())
	maps.Copy(c.prefixes, g.prefixes)
	return c
}

// SetPrefix records a namespace prefix used when serializing.
func (g *Graph) SetPrefix(prefix, namespace string) { g.prefixes[prefix] = namespace }

// Prefixes returns a copy of the prefix map.
func (g *Graph) Prefixes() map[string]string { return maps.Clone(g.prefixes) }
