package translate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/c360studio/semontology/ontology"
	"github.com/c360studio/semontology/rdf"
	"github.com/c360studio/semontology/vocabulary/owl"
)

// Writer encodes axioms and expressions as statements.
type Writer struct {
	g        rdf.Writer
	newBlank func() rdf.Term
}

// NewWriter creates a writer emitting into g. Blank nodes get random labels.
func NewWriter(g rdf.Writer) *Writer {
	return &Writer{g: g, newBlank: newBlank}
}

func newBlank() rdf.Term {
	return rdf.Blank("u" + strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// Blank allocates a fresh blank node.
func (w *Writer) Blank() rdf.Term { return w.newBlank() }

// Add emits one statement.
func (w *Writer) Add(t rdf.Triple) { w.g.Add(t) }

// List emits an rdf list and returns its head.
func (w *Writer) List(items []rdf.Term) rdf.Term {
	return rdf.WriteList(w.g, items, w.newBlank)
}

// Statement emits t and its annotations on an owl:Axiom anchor.
func (w *Writer) Statement(t rdf.Triple, anns []ontology.Annotation) {
	w.g.Add(t)
	w.annotate(t, anns, owlAxiom)
}

// SubjectAnnotations writes annotations directly on x, as members-form
// axioms carry them.
func (w *Writer) SubjectAnnotations(x rdf.Term, anns []ontology.Annotation) {
	for _, a := range anns {
		t := rdf.T(x, rdf.IRI(a.Property.IRI), a.Value)
		w.g.Add(t)
		w.annotate(t, a.Annotations, owlAnnotation)
	}
}

func (w *Writer) annotate(t rdf.Triple, anns []ontology.Annotation, anchorType rdf.Term) {
	if len(anns) == 0 {
		return
	}
	b := w.newBlank()
	w.g.Add(rdf.T(b, rdfType, anchorType))
	w.g.Add(rdf.T(b, annotatedSource, t.S))
	w.g.Add(rdf.T(b, annotatedProperty, t.P))
	w.g.Add(rdf.T(b, annotatedTarget, t.O))
	for _, a := range anns {
		at := rdf.T(b, rdf.IRI(a.Property.IRI), a.Value)
		w.g.Add(at)
		w.annotate(at, a.Annotations, owlAnnotation)
	}
}

// ObjectPropertyExpression emits p and returns its term.
func (w *Writer) ObjectPropertyExpression(p ontology.ObjectPropertyExpression) rdf.Term {
	if inv, ok := p.(*ontology.ObjectInverseOf); ok {
		b := w.newBlank()
		w.g.Add(rdf.T(b, inverseOf, rdf.IRI(inv.Property.IRI)))
		return b
	}
	return rdf.IRI(p.Named().IRI)
}

func nonNegative(n int) rdf.Term {
	return rdf.Literal(strconv.Itoa(n), owl.XSDNonNegativeInteger)
}

// ClassExpression emits ce and returns its term.
func (w *Writer) ClassExpression(ce ontology.ClassExpression) (rdf.Term, error) {
	if c, ok := ce.(ontology.Class); ok {
		return rdf.IRI(c.IRI), nil
	}
	x := w.newBlank()
	switch v := ce.(type) {
	case *ontology.ObjectIntersectionOf:
		return x, w.classList(x, intersectionOf, v.Operands)
	case *ontology.ObjectUnionOf:
		return x, w.classList(x, unionOf, v.Operands)
	case *ontology.ObjectComplementOf:
		c, err := w.ClassExpression(v.Operand)
		if err != nil {
			return rdf.Term{}, err
		}
		w.g.Add(rdf.T(x, rdfType, owlClass))
		w.g.Add(rdf.T(x, complementOf, c))
	case *ontology.ObjectOneOf:
		items := make([]rdf.Term, len(v.Individuals))
		for i, ind := range v.Individuals {
			items[i] = ind.Term()
		}
		w.g.Add(rdf.T(x, rdfType, owlClass))
		w.g.Add(rdf.T(x, oneOf, w.List(items)))
	case *ontology.ObjectSomeValuesFrom:
		return x, w.objectRestriction(x, v.Property, someValuesFrom, v.Filler)
	case *ontology.ObjectAllValuesFrom:
		return x, w.objectRestriction(x, v.Property, allValuesFrom, v.Filler)
	case *ontology.ObjectHasValue:
		w.restriction(x, w.ObjectPropertyExpression(v.Property))
		w.g.Add(rdf.T(x, hasValue, v.Value.Term()))
	case *ontology.ObjectHasSelf:
		w.restriction(x, w.ObjectPropertyExpression(v.Property))
		w.g.Add(rdf.T(x, hasSelf, rdf.Literal("true", owl.XSDBoolean)))
	case *ontology.ObjectCardinality:
		w.restriction(x, w.ObjectPropertyExpression(v.Property))
		pred := cardinalityPredicate(v.Type, v.Filler != nil)
		w.g.Add(rdf.T(x, pred, nonNegative(v.N)))
		if v.Filler != nil {
			f, err := w.ClassExpression(v.Filler)
			if err != nil {
				return rdf.Term{}, err
			}
			w.g.Add(rdf.T(x, onClass, f))
		}
	case *ontology.DataSomeValuesFrom:
		return x, w.dataRestriction(x, v.Property, someValuesFrom, v.Range)
	case *ontology.DataAllValuesFrom:
		return x, w.dataRestriction(x, v.Property, allValuesFrom, v.Range)
	case *ontology.DataHasValue:
		w.restriction(x, rdf.IRI(v.Property.IRI))
		w.g.Add(rdf.T(x, hasValue, v.Value.Term()))
	case *ontology.DataCardinality:
		w.restriction(x, rdf.IRI(v.Property.IRI))
		pred := cardinalityPredicate(v.Type, v.Range != nil)
		w.g.Add(rdf.T(x, pred, nonNegative(v.N)))
		if v.Range != nil {
			d, err := w.DataRange(v.Range)
			if err != nil {
				return rdf.Term{}, err
			}
			w.g.Add(rdf.T(x, onDataRange, d))
		}
	default:
		return rdf.Term{}, fmt.Errorf("write class expression: unsupported type %T", ce)
	}
	return x, nil
}

func cardinalityPredicate(typ ontology.CardinalityType, qualified bool) rdf.Term {
	for _, c := range cardinalityPredicates {
		if c.typ == typ && c.qualified == qualified {
			return c.pred
		}
	}
	return rdf.Term{}
}

func (w *Writer) restriction(x, prop rdf.Term) {
	w.g.Add(rdf.T(x, rdfType, owlRestriction))
	w.g.Add(rdf.T(x, onProperty, prop))
}

func (w *Writer) objectRestriction(x rdf.Term, p ontology.ObjectPropertyExpression, pred rdf.Term, filler ontology.ClassExpression) error {
	f, err := w.ClassExpression(filler)
	if err != nil {
		return err
	}
	w.restriction(x, w.ObjectPropertyExpression(p))
	w.g.Add(rdf.T(x, pred, f))
	return nil
}

func (w *Writer) dataRestriction(x rdf.Term, p ontology.DataProperty, pred rdf.Term, dr ontology.DataRange) error {
	d, err := w.DataRange(dr)
	if err != nil {
		return err
	}
	w.restriction(x, rdf.IRI(p.IRI))
	w.g.Add(rdf.T(x, pred, d))
	return nil
}

func (w *Writer) classList(x, pred rdf.Term, ops []ontology.ClassExpression) error {
	items := make([]rdf.Term, len(ops))
	for i, op := range ops {
		t, err := w.ClassExpression(op)
		if err != nil {
			return err
		}
		items[i] = t
	}
	w.g.Add(rdf.T(x, rdfType, owlClass))
	w.g.Add(rdf.T(x, pred, w.List(items)))
	return nil
}

// DataRange emits dr and returns its term.
func (w *Writer) DataRange(dr ontology.DataRange) (rdf.Term, error) {
	if d, ok := dr.(ontology.Datatype); ok {
		return rdf.IRI(d.IRI), nil
	}
	x := w.newBlank()
	w.g.Add(rdf.T(x, rdfType, rdfsDatatype))
	switch v := dr.(type) {
	case *ontology.DatatypeRestriction:
		items := make([]rdf.Term, len(v.Facets))
		for i, f := range v.Facets {
			fb := w.newBlank()
			w.g.Add(rdf.T(fb, rdf.IRI(f.Facet), f.Value.Term()))
			items[i] = fb
		}
		w.g.Add(rdf.T(x, onDatatype, rdf.IRI(v.Datatype.IRI)))
		w.g.Add(rdf.T(x, withRestrictions, w.List(items)))
	case *ontology.DataComplementOf:
		c, err := w.DataRange(v.Range)
		if err != nil {
			return rdf.Term{}, err
		}
		w.g.Add(rdf.T(x, dtComplementOf, c))
	case *ontology.DataUnionOf:
		return x, w.rangeList(x, unionOf, v.Ranges)
	case *ontology.DataIntersectionOf:
		return x, w.rangeList(x, intersectionOf, v.Ranges)
	case *ontology.DataOneOf:
		items := make([]rdf.Term, len(v.Values))
		for i, l := range v.Values {
			items[i] = l.Term()
		}
		w.g.Add(rdf.T(x, oneOf, w.List(items)))
	default:
		return rdf.Term{}, fmt.Errorf("write data range: unsupported type %T", dr)
	}
	return x, nil
}

func (w *Writer) rangeList(x, pred rdf.Term, ops []ontology.DataRange) error {
	items := make([]rdf.Term, len(ops))
	for i, op := range ops {
		t, err := w.DataRange(op)
		if err != nil {
			return err
		}
		items[i] = t
	}
	w.g.Add(rdf.T(x, pred, w.List(items)))
	return nil
}
