package loader

import (
	"github.com/c360studio/semontology/ontology"
	"github.com/c360studio/semontology/rdf"
)

// Composite is an ontology assembled with its import closure: the record's
// own graph plus one child composite per resolved import. A composite
// never contains itself.
type Composite struct {
	record   *GraphRecord
	union    *rdf.UnionGraph
	children []*Composite
}

func newComposite(rec *GraphRecord) *Composite {
	return &Composite{record: rec, union: rdf.NewUnionGraph(rec.graph)}
}

func (c *Composite) addChild(child *Composite) {
	c.children = append(c.children, child)
	c.union.AddSub(child.union)
}

// Record returns the root record.
func (c *Composite) Record() *GraphRecord { return c.record }

// Graph returns the union view over the whole closure. Writes go to the
// root graph.
func (c *Composite) Graph() *rdf.UnionGraph { return c.union }

// Base returns the root graph.
func (c *Composite) Base() *rdf.Graph { return c.record.graph }

// ID returns the root ontology identity.
func (c *Composite) ID() ontology.ID { return c.record.ID() }

// Children returns the direct imports in build order.
func (c *Composite) Children() []*Composite { return c.children }

// Records returns the distinct records of the closure, depth first.
func (c *Composite) Records() []*GraphRecord {
	var out []*GraphRecord
	seen := make(map[*GraphRecord]bool)
	stack := []*Composite{c}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n.record] {
			continue
		}
		seen[n.record] = true
		out = append(out, n.record)
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, n.children[i])
		}
	}
	return out
}

// Imports returns the identity keys of the whole import closure, excluding
// the root, depth first.
func (c *Composite) Imports() []string {
	recs := c.Records()
	out := make([]string, 0, len(recs)-1)
	for _, r := range recs[1:] {
		out = append(out, r.Key())
	}
	return out
}
