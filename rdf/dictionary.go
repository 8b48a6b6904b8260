package rdf

import "sync"

// Node is an interned term handle. The zero Node never names a term.
type Node uint32

// Dictionary interns terms into an append-only arena.
// It is safe for concurrent use.
type Dictionary struct {
	mu    sync.RWMutex
	terms []Term
	index map[Term]Node
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		terms: []Term{{}},
		index: make(map[Term]Node),
	}
}

var defaultDictionary = NewDictionary()

// DefaultDictionary returns the process-wide dictionary used by NewGraph.
func DefaultDictionary() *Dictionary { return defaultDictionary }

// Intern returns the handle for t, allocating one if needed.
func (d *Dictionary) Intern(t Term) Node {
	d.mu.RLock()
	n, ok := d.index[t]
	d.mu.RUnlock()
	if ok {
		return n
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if n, ok := d.index[t]; ok {
		return n
	}
	n = Node(len(d.terms))
	d.terms = append(d.terms, t)
	d.index[t] = n
	return n
}

// Lookup returns the handle for t without allocating.
func (d *Dictionary) Lookup(t Term) (Node, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n, ok := d.index[t]
	return n, ok
}

// Term returns the term behind n. Unknown handles yield the zero Term.
func (d *Dictionary) Term(n Node) Term {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if int(n) >= len(d.terms) {
		return Term{}
	}
	return d.terms[n]
}

// Len returns the number of interned terms.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.terms) - 1
}
