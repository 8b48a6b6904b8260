package translate

import (
	"fmt"
	"iter"
	"slices"

	"github.com/c360studio/semontology/ontology"
	"github.com/c360studio/semontology/rdf"
)

// Translator maps one axiom kind between statements and axioms.
type Translator struct {
	Kind ontology.AxiomKind

	// Candidates is a structural pre-filter over the graph. It never
	// builds axioms.
	Candidates func(g rdf.Reader, cfg Config) iter.Seq[rdf.Triple]

	// Matches is the precise membership test for one candidate.
	Matches func(r *Reader, t rdf.Triple) bool

	// ToAxiom builds the axiom rooted at t together with every statement
	// it was read from.
	ToAxiom func(r *Reader, t rdf.Triple) (ontology.Object[ontology.Axiom], error)

	// Write emits the statements encoding a.
	Write func(w *Writer, a ontology.Axiom) error

	// Split returns the axioms the statements written for a read back
	// as. Nil means a reads back unchanged.
	Split func(a ontology.Axiom) []ontology.Axiom
}

func wrongKind(want ontology.AxiomKind, a ontology.Axiom) error {
	return fmt.Errorf("write %s: got %s axiom", want, a.Kind())
}

func byPredicate(p rdf.Term) func(rdf.Reader, Config) iter.Seq[rdf.Triple] {
	return func(g rdf.Reader, _ Config) iter.Seq[rdf.Triple] {
		return g.Find(rdf.Any, p, rdf.Any)
	}
}

func byType(typs ...rdf.Term) func(rdf.Reader, Config) iter.Seq[rdf.Triple] {
	return func(g rdf.Reader, _ Config) iter.Seq[rdf.Triple] {
		return func(yield func(rdf.Triple) bool) {
			for _, typ := range typs {
				for t := range g.Find(rdf.Any, rdfType, typ) {
					if !yield(t) {
						return
					}
				}
			}
		}
	}
}

func concat(seqs ...func(rdf.Reader, Config) iter.Seq[rdf.Triple]) func(rdf.Reader, Config) iter.Seq[rdf.Triple] {
	return func(g rdf.Reader, cfg Config) iter.Seq[rdf.Triple] {
		return func(yield func(rdf.Triple) bool) {
			for _, s := range seqs {
				for t := range s(g, cfg) {
					if !yield(t) {
						return
					}
				}
			}
		}
	}
}

// assemble resolves the annotations of root and wraps the built axiom with
// root, the structural statements and the annotation statements.
func assemble(r *Reader, root rdf.Triple, anns []ontology.Object[ontology.Annotation], build func([]ontology.Annotation) ontology.Axiom, structural ...[]rdf.Triple) ontology.Object[ontology.Axiom] {
	triples := []rdf.Triple{root}
	for _, ts := range structural {
		triples = append(triples, ts...)
	}
	triples = append(triples, annotationTriples(anns)...)
	return ontology.NewObject(build(AnnotationValues(anns)), triples...)
}

// operand describes how one position of an axiom is recognised, read and
// written.
type operand[T ontology.Keyed] struct {
	is   func(r *Reader, t rdf.Term) bool
	read func(r *Reader, t rdf.Term) (T, []rdf.Triple, error)
	term func(w *Writer, v T) (rdf.Term, error)
}

var classOperand = operand[ontology.ClassExpression]{
	is: (*Reader).IsClass,
	read: func(r *Reader, t rdf.Term) (ontology.ClassExpression, []rdf.Triple, error) {
		o, err := r.ClassExpression(t)
		return o.Value(), o.Triples(), err
	},
	term: (*Writer).ClassExpression,
}

var declaredClassOperand = operand[ontology.ClassExpression]{
	is:   (*Reader).IsDeclaredClass,
	read: classOperand.read,
	term: classOperand.term,
}

var objectPropertyOperand = operand[ontology.ObjectPropertyExpression]{
	is:   (*Reader).IsObjectProperty,
	read: (*Reader).ObjectPropertyExpression,
	term: func(w *Writer, p ontology.ObjectPropertyExpression) (rdf.Term, error) {
		return w.ObjectPropertyExpression(p), nil
	},
}

var namedObjectPropertyOperand = operand[ontology.ObjectPropertyExpression]{
	is:   (*Reader).IsNamedObjectProperty,
	read: objectPropertyOperand.read,
	term: objectPropertyOperand.term,
}

var dataPropertyOperand = operand[ontology.DataProperty]{
	is: (*Reader).IsDataProperty,
	read: func(_ *Reader, t rdf.Term) (ontology.DataProperty, []rdf.Triple, error) {
		return ontology.DataProperty{IRI: t.Value}, nil, nil
	},
	term: func(_ *Writer, p ontology.DataProperty) (rdf.Term, error) { return rdf.IRI(p.IRI), nil },
}

var annotationPropertyOperand = operand[ontology.AnnotationProperty]{
	is: (*Reader).IsAnnotationProperty,
	read: func(_ *Reader, t rdf.Term) (ontology.AnnotationProperty, []rdf.Triple, error) {
		return ontology.AnnotationProperty{IRI: t.Value}, nil, nil
	},
	term: func(_ *Writer, p ontology.AnnotationProperty) (rdf.Term, error) { return rdf.IRI(p.IRI), nil },
}

var dataRangeOperand = operand[ontology.DataRange]{
	is: (*Reader).IsDataRange,
	read: func(r *Reader, t rdf.Term) (ontology.DataRange, []rdf.Triple, error) {
		o, err := r.DataRange(t)
		return o.Value(), o.Triples(), err
	},
	term: (*Writer).DataRange,
}

var individualOperand = operand[ontology.Individual]{
	is: (*Reader).IsIndividual,
	read: func(r *Reader, t rdf.Term) (ontology.Individual, []rdf.Triple, error) {
		ind, err := r.Individual(t)
		return ind, nil, err
	},
	term: func(_ *Writer, i ontology.Individual) (rdf.Term, error) { return i.Term(), nil },
}

// iri is a bare IRI operand, as annotation property domains and ranges use.
type iri string

func (i iri) Key() string { return "<" + string(i) + ">" }

var iriOperand = operand[iri]{
	is: func(_ *Reader, t rdf.Term) bool { return t.IsIRI() },
	read: func(_ *Reader, t rdf.Term) (iri, []rdf.Triple, error) {
		return iri(t.Value), nil, nil
	},
	term: func(_ *Writer, v iri) (rdf.Term, error) { return rdf.IRI(string(v)), nil },
}

// binary is the family of axioms encoded by one (s predicate o) statement:
// sub-class and sub-property axioms, domains, ranges, inverses and class
// assertions.
type binary[S, O ontology.Keyed] struct {
	kind      ontology.AxiomKind
	predicate rdf.Term
	subject   operand[S]
	object    operand[O]
	// exclude drops statements claimed by a narrower translator.
	exclude func(r *Reader, t rdf.Triple) bool
	build   func(s S, o O, anns []ontology.Annotation) ontology.Axiom
	parts   func(a ontology.Axiom) (S, O, bool)
}

func (b binary[S, O]) translator() Translator {
	return Translator{
		Kind:       b.kind,
		Candidates: byPredicate(b.predicate),
		Matches: func(r *Reader, t rdf.Triple) bool {
			if t.P != b.predicate || !b.subject.is(r, t.S) || !b.object.is(r, t.O) {
				return false
			}
			return b.exclude == nil || !b.exclude(r, t)
		},
		ToAxiom: func(r *Reader, t rdf.Triple) (ontology.Object[ontology.Axiom], error) {
			var zero ontology.Object[ontology.Axiom]
			s, sts, err := b.subject.read(r, t.S)
			if err != nil {
				return zero, err
			}
			o, ots, err := b.object.read(r, t.O)
			if err != nil {
				return zero, err
			}
			anns, err := r.annotations.Resolve(t)
			if err != nil {
				return zero, err
			}
			return assemble(r, t, anns, func(a []ontology.Annotation) ontology.Axiom {
				return b.build(s, o, a)
			}, sts, ots), nil
		},
		Write: func(w *Writer, a ontology.Axiom) error {
			s, o, ok := b.parts(a)
			if !ok {
				return wrongKind(b.kind, a)
			}
			st, err := b.subject.term(w, s)
			if err != nil {
				return err
			}
			ot, err := b.object.term(w, o)
			if err != nil {
				return err
			}
			w.Statement(rdf.T(st, b.predicate, ot), a.Annotations())
			return nil
		},
	}
}

// unary is the family of axioms encoded by one (s rdf:type T) statement:
// the property characteristics.
type unary[S ontology.Keyed] struct {
	kind    ontology.AxiomKind
	typ     rdf.Term
	subject operand[S]
	build   func(s S, anns []ontology.Annotation) ontology.Axiom
	part    func(a ontology.Axiom) (S, bool)
}

func (u unary[S]) translator() Translator {
	return Translator{
		Kind:       u.kind,
		Candidates: byType(u.typ),
		Matches: func(r *Reader, t rdf.Triple) bool {
			return t.P == rdfType && t.O == u.typ && u.subject.is(r, t.S)
		},
		ToAxiom: func(r *Reader, t rdf.Triple) (ontology.Object[ontology.Axiom], error) {
			var zero ontology.Object[ontology.Axiom]
			s, sts, err := u.subject.read(r, t.S)
			if err != nil {
				return zero, err
			}
			anns, err := r.annotations.Resolve(t)
			if err != nil {
				return zero, err
			}
			return assemble(r, t, anns, func(a []ontology.Annotation) ontology.Axiom {
				return u.build(s, a)
			}, sts), nil
		},
		Write: func(w *Writer, a ontology.Axiom) error {
			s, ok := u.part(a)
			if !ok {
				return wrongKind(u.kind, a)
			}
			st, err := u.subject.term(w, s)
			if err != nil {
				return err
			}
			w.Statement(rdf.T(st, rdfType, u.typ), a.Annotations())
			return nil
		},
	}
}

// nary is the family of set-valued axioms. Each is read either from one
// pairwise statement (a predicate b) or, when membersType is set, from a
// members-form node (x rdf:type membersType; x owl:members (a b c)).
type nary[T ontology.Keyed] struct {
	kind        ontology.AxiomKind
	predicate   rdf.Term
	membersType rdf.Term
	// membersPredicate is written for the members form; both owl:members
	// and owl:distinctMembers are read.
	membersPredicate rdf.Term
	operand          operand[T]
	build            func(ops []T, anns []ontology.Annotation) ontology.Axiom
	parts            func(a ontology.Axiom) ([]T, bool)
}

func (n nary[T]) hasMembersForm() bool { return !n.membersType.IsZero() }

func (n nary[T]) membersList(r *Reader, x rdf.Term) (rdf.Triple, bool) {
	for _, p := range []rdf.Term{members, distinctMembers} {
		if l, ok := rdf.Object(r.g, x, p); ok {
			return rdf.T(x, p, l), true
		}
	}
	return rdf.Triple{}, false
}

func (n nary[T]) matches(r *Reader, t rdf.Triple) bool {
	if t.P == n.predicate {
		return n.operand.is(r, t.S) && n.operand.is(r, t.O)
	}
	if !n.hasMembersForm() || t.P != rdfType || t.O != n.membersType || !t.S.IsBlank() {
		return false
	}
	lt, ok := n.membersList(r, t.S)
	if !ok {
		return false
	}
	items, _, err := rdf.ReadList(r.g, lt.O)
	if err != nil || len(items) < 2 {
		return false
	}
	for _, it := range items {
		if !n.operand.is(r, it) {
			return false
		}
	}
	return true
}

func (n nary[T]) toAxiom(r *Reader, t rdf.Triple) (ontology.Object[ontology.Axiom], error) {
	var zero ontology.Object[ontology.Axiom]
	var terms []rdf.Term
	var structural []rdf.Triple
	var anns []ontology.Object[ontology.Annotation]
	var err error

	if t.P == n.predicate {
		terms = []rdf.Term{t.S, t.O}
		anns, err = r.annotations.Resolve(t)
	} else {
		lt, ok := n.membersList(r, t.S)
		if !ok {
			return zero, unsupported(t.S, "%s without a members list", n.membersType.Value)
		}
		var lts []rdf.Triple
		if terms, lts, err = rdf.ReadList(r.g, lt.O); err != nil {
			return zero, unsupported(t.S, "members list: %v", err)
		}
		structural = append(append(structural, lt), lts...)
		anns, err = r.annotations.ResolveSubject(t.S)
	}
	if err != nil {
		return zero, err
	}

	ops := make([]T, 0, len(terms))
	for _, term := range terms {
		v, ts, err := n.operand.read(r, term)
		if err != nil {
			return zero, err
		}
		ops = append(ops, v)
		structural = append(structural, ts...)
	}
	return assemble(r, t, anns, func(a []ontology.Annotation) ontology.Axiom {
		return n.build(ops, a)
	}, structural), nil
}

func (n nary[T]) write(w *Writer, a ontology.Axiom) error {
	ops, ok := n.parts(a)
	if !ok {
		return wrongKind(n.kind, a)
	}
	if len(ops) < 2 {
		return fmt.Errorf("write %s: need at least two operands, got %d", n.kind, len(ops))
	}
	terms := make([]rdf.Term, len(ops))
	for i, op := range ops {
		t, err := n.operand.term(w, op)
		if err != nil {
			return err
		}
		terms[i] = t
	}
	if n.hasMembersForm() && len(ops) > 2 {
		x := w.Blank()
		w.Add(rdf.T(x, rdfType, n.membersType))
		w.Add(rdf.T(x, n.membersPredicate, w.List(terms)))
		w.SubjectAnnotations(x, a.Annotations())
		return nil
	}
	// Without a members form, n operands become n-1 pairwise statements
	// sharing the first operand.
	for _, other := range terms[1:] {
		w.Statement(rdf.T(terms[0], n.predicate, other), a.Annotations())
	}
	return nil
}

// split mirrors write: without a members form, n operands read back as
// n-1 pairwise axioms sharing the first operand and the annotations.
func (n nary[T]) split(a ontology.Axiom) []ontology.Axiom {
	ops, ok := n.parts(a)
	if !ok || n.hasMembersForm() || len(ops) <= 2 {
		return []ontology.Axiom{a}
	}
	out := make([]ontology.Axiom, 0, len(ops)-1)
	for _, other := range ops[1:] {
		out = append(out, n.build([]T{ops[0], other}, a.Annotations()))
	}
	return out
}

func (n nary[T]) translator() Translator {
	candidates := byPredicate(n.predicate)
	if n.hasMembersForm() {
		candidates = concat(candidates, byType(n.membersType))
	}
	return Translator{
		Kind:       n.kind,
		Candidates: candidates,
		Matches:    n.matches,
		ToAxiom:    n.toAxiom,
		Write:      n.write,
		Split:      n.split,
	}
}

// listOperands reads an rdf list of operands rooted at head.
func listOperands[T ontology.Keyed](r *Reader, op operand[T], owner, head rdf.Term) ([]T, []rdf.Triple, error) {
	items, triples, err := rdf.ReadList(r.g, head)
	if err != nil {
		return nil, nil, unsupported(owner, "list: %v", err)
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		v, ts, err := op.read(r, it)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, v)
		triples = append(triples, ts...)
	}
	return out, triples, nil
}

func allOperands[T ontology.Keyed](r *Reader, op operand[T], head rdf.Term) bool {
	items, _, err := rdf.ReadList(r.g, head)
	return err == nil && len(items) > 0 && !slices.ContainsFunc(items, func(t rdf.Term) bool { return !op.is(r, t) })
}
