package translate

import (
	"github.com/c360studio/semontology/ontology"
	"github.com/c360studio/semontology/rdf"
)

// AnnotationResolver decodes the annotations attached to statements.
//
// A statement's annotations live on reification anchors: blank nodes typed
// owl:Axiom or owl:Annotation whose annotatedSource, annotatedProperty and
// annotatedTarget equal the statement. Every non-structural statement on an
// anchor is one annotation, and is itself resolved the same way.
type AnnotationResolver struct {
	r *Reader
}

// attachment is one annotation statement and the anchor statements that
// tie it to the statement it annotates. anchor is empty for plain
// assertions on a declared subject.
type attachment struct {
	stmt   rdf.Triple
	anchor []rdf.Triple
}

// Resolve returns the annotations attached to t. For declarations the plain
// annotation assertions on the declared subject are attached as well,
// unless they are read as annotation assertion axioms of their own.
func (ar *AnnotationResolver) Resolve(t rdf.Triple) ([]ontology.Object[ontology.Annotation], error) {
	attached := ar.attached(t)
	if ar.r.IsDeclaration(t) {
		var plain []attachment
		for _, a := range ar.subjectAssertions(t.S) {
			if ar.r.cfg.LoadAnnotationAxioms && ar.IsAssertion(a.stmt) {
				continue
			}
			plain = append(plain, a)
		}
		attached = append(plain, attached...)
	}
	return ar.build(attached, make(map[rdf.Term]bool))
}

// ResolveSubject returns the annotations written directly on a members-form
// axiom node.
func (ar *AnnotationResolver) ResolveSubject(x rdf.Term) ([]ontology.Object[ontology.Annotation], error) {
	var attached []attachment
	for t := range ar.r.g.Find(x, rdf.Any, rdf.Any) {
		if !isMembersPredicate(t.P) && ar.r.IsAnnotationProperty(t.P) {
			attached = append(attached, attachment{stmt: t})
		}
	}
	return ar.build(attached, make(map[rdf.Term]bool))
}

// HasAnnotations reports whether any anchor annotates t.
func (ar *AnnotationResolver) HasAnnotations(t rdf.Triple) bool {
	return len(ar.anchors(t)) > 0
}

// IsAssertion reports whether t qualifies as a standalone annotation
// assertion: an annotation property statement on an entity or anonymous
// individual that is not itself part of an anchor, and that either carries
// no annotations or is allowed to carry them.
func (ar *AnnotationResolver) IsAssertion(t rdf.Triple) bool {
	r := ar.r
	if !r.IsAnnotationProperty(t.P) || r.IsAnchor(t.S) {
		return false
	}
	if !(t.S.IsIRI() || (t.S.IsBlank() && r.isAnonymousIndividual(t.S))) {
		return false
	}
	return r.cfg.AllowBulkAnnotationAssertions || !ar.HasAnnotations(t)
}

func (ar *AnnotationResolver) subjectAssertions(s rdf.Term) []attachment {
	var out []attachment
	for t := range ar.r.g.Find(s, rdf.Any, rdf.Any) {
		if t.P != rdfType && ar.r.IsAnnotationProperty(t.P) {
			out = append(out, attachment{stmt: t})
		}
	}
	return out
}

// anchors returns the anchor nodes annotating t.
func (ar *AnnotationResolver) anchors(t rdf.Triple) []rdf.Term {
	g := ar.r.g
	var out []rdf.Term
	for src := range g.Find(rdf.Any, annotatedSource, t.S) {
		b := src.S
		if !g.Contains(rdf.T(b, annotatedProperty, t.P)) || !g.Contains(rdf.T(b, annotatedTarget, t.O)) {
			continue
		}
		if !ar.r.IsAnchor(b) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func (ar *AnnotationResolver) attached(t rdf.Triple) []attachment {
	var out []attachment
	for _, b := range ar.anchors(t) {
		anchor := append(ar.r.typeTriples(b, owlAxiom, owlAnnotation),
			rdf.T(b, annotatedSource, t.S),
			rdf.T(b, annotatedProperty, t.P),
			rdf.T(b, annotatedTarget, t.O),
		)
		for st := range ar.r.g.Find(b, rdf.Any, rdf.Any) {
			if isAnchorPredicate(st.P) {
				continue
			}
			out = append(out, attachment{stmt: st, anchor: anchor})
		}
	}
	return out
}

// build resolves each attachment. path holds the anchors on the current
// nesting path; meeting one again is a cycle.
func (ar *AnnotationResolver) build(attached []attachment, path map[rdf.Term]bool) ([]ontology.Object[ontology.Annotation], error) {
	var out []ontology.Object[ontology.Annotation]
	for _, a := range attached {
		o, err := ar.annotation(a, path)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return ontology.MergeAll(out), nil
}

func (ar *AnnotationResolver) annotation(a attachment, path map[rdf.Term]bool) (ontology.Object[ontology.Annotation], error) {
	var zero ontology.Object[ontology.Annotation]
	if !a.stmt.P.IsIRI() {
		return zero, unsupported(a.stmt.S, "annotation predicate %s is not an IRI", a.stmt.P)
	}

	subject := a.stmt.S
	if len(a.anchor) > 0 {
		if path[subject] {
			return zero, recursive(subject)
		}
		path[subject] = true
		defer delete(path, subject)
	}

	children, err := ar.build(ar.attached(a.stmt), path)
	if err != nil {
		return zero, err
	}

	ann := ontology.Annotation{
		Property:    ontology.AnnotationProperty{IRI: a.stmt.P.Value},
		Value:       a.stmt.O,
		Annotations: ontology.Values(children),
	}
	triples := append([]rdf.Triple{a.stmt}, a.anchor...)
	for _, c := range children {
		triples = append(triples, c.Triples()...)
	}
	return ontology.NewObject(ann, triples...), nil
}

// AnnotationValues unwraps resolved annotations.
func AnnotationValues(objs []ontology.Object[ontology.Annotation]) []ontology.Annotation {
	return ontology.Values(objs)
}

// annotationTriples flattens the statements of resolved annotations.
func annotationTriples(objs []ontology.Object[ontology.Annotation]) []rdf.Triple {
	var out []rdf.Triple
	for _, o := range objs {
		out = append(out, o.Triples()...)
	}
	return out
}
