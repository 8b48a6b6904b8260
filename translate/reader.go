package translate

import (
	"strconv"
	"strings"

	"github.com/c360studio/semontology/ontology"
	"github.com/c360studio/semontology/rdf"
	"github.com/c360studio/semontology/vocabulary/owl"
)

// Reader decodes expressions from one graph. It caches blank node
// expressions for its lifetime and is not safe for concurrent use.
type Reader struct {
	g           rdf.Reader
	cfg         Config
	factory     *ontology.DataFactory
	annotations *AnnotationResolver

	classes map[rdf.Term]ontology.Object[ontology.ClassExpression]
	ranges  map[rdf.Term]ontology.Object[ontology.DataRange]
	active  map[rdf.Term]bool
}

// NewReader creates a reader over g. factory may be nil.
func NewReader(g rdf.Reader, cfg Config, factory *ontology.DataFactory) *Reader {
	r := &Reader{
		g:       g,
		cfg:     cfg,
		factory: factory,
		classes: make(map[rdf.Term]ontology.Object[ontology.ClassExpression]),
		ranges:  make(map[rdf.Term]ontology.Object[ontology.DataRange]),
		active:  make(map[rdf.Term]bool),
	}
	r.annotations = &AnnotationResolver{r: r}
	return r
}

// Graph returns the graph being read.
func (r *Reader) Graph() rdf.Reader { return r.g }

// Config returns the read configuration.
func (r *Reader) Config() Config { return r.cfg }

// Annotations returns the annotation resolver bound to this reader.
func (r *Reader) Annotations() *AnnotationResolver { return r.annotations }

// Entity checks. IRIs are typed by their declarations in the graph.

func (r *Reader) declared(t rdf.Term, typ string) bool {
	return t.IsIRI() && rdf.HasType(r.g, t, typ)
}

// IsObjectProperty reports whether t is a declared object property or an
// inverse property expression.
func (r *Reader) IsObjectProperty(t rdf.Term) bool {
	if t.IsBlank() {
		p, ok := rdf.Object(r.g, t, inverseOf)
		return ok && r.declared(p, owl.ObjectProperty)
	}
	if !t.IsIRI() {
		return false
	}
	for _, typ := range []string{
		owl.ObjectProperty, owl.InverseFunctionalProperty, owl.TransitiveProperty,
		owl.SymmetricProperty, owl.AsymmetricProperty, owl.ReflexiveProperty, owl.IrreflexiveProperty,
	} {
		if r.declared(t, typ) {
			return true
		}
	}
	return false
}

// IsNamedObjectProperty reports whether t is a declared object property IRI.
func (r *Reader) IsNamedObjectProperty(t rdf.Term) bool {
	return t.IsIRI() && r.IsObjectProperty(t)
}

// IsDataProperty reports whether t is a declared data property.
func (r *Reader) IsDataProperty(t rdf.Term) bool { return r.declared(t, owl.DatatypeProperty) }

// IsAnnotationProperty reports whether t is a declared or built-in
// annotation property.
func (r *Reader) IsAnnotationProperty(t rdf.Term) bool {
	return t.IsIRI() && (owl.IsBuiltinAnnotationProperty(t.Value) || r.declared(t, owl.AnnotationProperty))
}

// IsDatatype reports whether t names a datatype.
func (r *Reader) IsDatatype(t rdf.Term) bool {
	if !t.IsIRI() {
		return false
	}
	switch t.Value {
	case owl.RDFSLiteral, owl.RDFPlainLit, owl.RDFLangString:
		return true
	}
	return strings.HasPrefix(t.Value, owl.XSDNamespace) || r.declared(t, owl.RDFSDatatype)
}

// IsClass reports whether t can stand in a class position: a non-vocabulary
// IRI that is not a datatype, owl:Thing, owl:Nothing, or a blank node shaped
// like a class expression.
func (r *Reader) IsClass(t rdf.Term) bool {
	switch {
	case t.IsIRI():
		if t.Value == owl.Thing || t.Value == owl.Nothing {
			return true
		}
		return !isReserved(t.Value) && !r.declared(t, owl.RDFSDatatype)
	case t.IsBlank():
		if rdf.HasType(r.g, t, owl.Restriction) || rdf.HasType(r.g, t, owl.Class) {
			return true
		}
		for _, p := range []rdf.Term{intersectionOf, unionOf, complementOf, oneOf} {
			if _, ok := rdf.Object(r.g, t, p); ok && !rdf.HasType(r.g, t, owl.RDFSDatatype) {
				return true
			}
		}
	}
	return false
}

// IsDeclaredClass reports whether t is owl:Thing, owl:Nothing, a declared
// class IRI or a class expression blank node.
func (r *Reader) IsDeclaredClass(t rdf.Term) bool {
	if t.IsIRI() {
		return t.Value == owl.Thing || t.Value == owl.Nothing || r.declared(t, owl.Class)
	}
	return r.IsClass(t)
}

// IsDataRange reports whether t can stand in a data range position.
func (r *Reader) IsDataRange(t rdf.Term) bool {
	if t.IsIRI() {
		return r.IsDatatype(t)
	}
	return t.IsBlank() && rdf.HasType(r.g, t, owl.RDFSDatatype)
}

// IsAnchor reports whether t is a reification anchor.
func (r *Reader) IsAnchor(t rdf.Term) bool {
	return t.IsBlank() && (rdf.HasType(r.g, t, owl.Axiom) || rdf.HasType(r.g, t, owl.Annotation))
}

// IsIndividual reports whether t is a named individual IRI or a blank node
// that is not part of some other structure.
func (r *Reader) IsIndividual(t rdf.Term) bool {
	switch {
	case t.IsIRI():
		return !isReserved(t.Value)
	case t.IsBlank():
		return r.isAnonymousIndividual(t)
	}
	return false
}

var structuralTypes = []string{
	owl.Axiom, owl.Annotation, owl.Restriction, owl.Class, owl.RDFSDatatype,
	owl.AllDisjointClasses, owl.AllDisjointProperties, owl.AllDifferent, owl.RDFList,
}

var structuralPredicates = []rdf.Term{
	rdf.IRI(owl.RDFFirst), inverseOf, onDatatype, intersectionOf, unionOf, complementOf, oneOf, onProperty,
}

func (r *Reader) isAnonymousIndividual(t rdf.Term) bool {
	for _, typ := range structuralTypes {
		if rdf.HasType(r.g, t, typ) {
			return false
		}
	}
	for _, p := range structuralPredicates {
		if _, ok := rdf.Object(r.g, t, p); ok {
			return false
		}
	}
	return true
}

// IsDeclaration reports whether t declares a named entity.
func (r *Reader) IsDeclaration(t rdf.Triple) bool {
	if t.P != rdfType || !t.S.IsIRI() || !t.O.IsIRI() {
		return false
	}
	_, ok := ontology.EntityTypeForIRI(t.O.Value)
	return ok
}

// typeTriples returns the (t rdf:type typ) statements present for typs.
func (r *Reader) typeTriples(t rdf.Term, typs ...rdf.Term) []rdf.Triple {
	var out []rdf.Triple
	for _, typ := range typs {
		tr := rdf.T(t, rdfType, typ)
		if r.g.Contains(tr) {
			out = append(out, tr)
		}
	}
	return out
}

// ObjectPropertyExpression reads a named property or an inverse expression.
func (r *Reader) ObjectPropertyExpression(t rdf.Term) (ontology.ObjectPropertyExpression, []rdf.Triple, error) {
	if t.IsIRI() {
		return r.factory.ObjectProperty(ontology.ObjectProperty{IRI: t.Value}), nil, nil
	}
	if !t.IsBlank() {
		return nil, nil, unsupported(t, "literal in property position")
	}
	p, ok := rdf.Object(r.g, t, inverseOf)
	if !ok || !p.IsIRI() {
		return nil, nil, unsupported(t, "anonymous property is not an inverse of a named property")
	}
	inv := &ontology.ObjectInverseOf{Property: ontology.ObjectProperty{IRI: p.Value}}
	return r.factory.ObjectProperty(inv), []rdf.Triple{rdf.T(t, inverseOf, p)}, nil
}

// Individual reads a named or anonymous individual.
func (r *Reader) Individual(t rdf.Term) (ontology.Individual, error) {
	ind, ok := ontology.IndividualFromTerm(t)
	if !ok {
		return ontology.Individual{}, unsupported(t, "literal in individual position")
	}
	return ind, nil
}

// ClassExpression reads the class expression rooted at t.
func (r *Reader) ClassExpression(t rdf.Term) (ontology.Object[ontology.ClassExpression], error) {
	var zero ontology.Object[ontology.ClassExpression]
	switch {
	case t.IsIRI():
		return ontology.NewObject[ontology.ClassExpression](ontology.Class{IRI: t.Value}), nil
	case !t.IsBlank():
		return zero, unsupported(t, "literal in class position")
	}
	if o, ok := r.classes[t]; ok {
		return o, nil
	}
	if r.active[t] {
		return zero, recursive(t)
	}
	r.active[t] = true
	defer delete(r.active, t)

	ce, triples, err := r.readClassExpression(t)
	if err != nil {
		return zero, err
	}
	o := ontology.NewObject(r.factory.ClassExpression(ce), triples...)
	r.classes[t] = o
	return o, nil
}

func (r *Reader) readClassExpression(x rdf.Term) (ontology.ClassExpression, []rdf.Triple, error) {
	triples := r.typeTriples(x, owlClass, owlRestriction)

	if l, ok := rdf.Object(r.g, x, intersectionOf); ok {
		ops, ts, err := r.classList(x, intersectionOf, l)
		return &ontology.ObjectIntersectionOf{Operands: ops}, append(triples, ts...), err
	}
	if l, ok := rdf.Object(r.g, x, unionOf); ok {
		ops, ts, err := r.classList(x, unionOf, l)
		return &ontology.ObjectUnionOf{Operands: ops}, append(triples, ts...), err
	}
	if c, ok := rdf.Object(r.g, x, complementOf); ok {
		o, err := r.ClassExpression(c)
		if err != nil {
			return nil, nil, err
		}
		triples = append(triples, rdf.T(x, complementOf, c))
		return &ontology.ObjectComplementOf{Operand: o.Value()}, append(triples, o.Triples()...), nil
	}
	if l, ok := rdf.Object(r.g, x, oneOf); ok {
		items, ts, err := rdf.ReadList(r.g, l)
		if err != nil {
			return nil, nil, unsupported(x, "owl:oneOf: %v", err)
		}
		inds := make([]ontology.Individual, 0, len(items))
		for _, it := range items {
			ind, err := r.Individual(it)
			if err != nil {
				return nil, nil, err
			}
			inds = append(inds, ind)
		}
		triples = append(triples, rdf.T(x, oneOf, l))
		return &ontology.ObjectOneOf{Individuals: inds}, append(triples, ts...), nil
	}
	if rdf.HasType(r.g, x, owl.Restriction) {
		return r.readRestriction(x, triples)
	}
	return nil, nil, unsupported(x, "class expression of unknown shape")
}

func (r *Reader) classList(x, pred, head rdf.Term) ([]ontology.ClassExpression, []rdf.Triple, error) {
	items, triples, err := rdf.ReadList(r.g, head)
	if err != nil {
		return nil, nil, unsupported(x, "%s: %v", pred.Value, err)
	}
	triples = append(triples, rdf.T(x, pred, head))
	ops := make([]ontology.ClassExpression, 0, len(items))
	for _, it := range items {
		o, err := r.ClassExpression(it)
		if err != nil {
			return nil, nil, err
		}
		ops = append(ops, o.Value())
		triples = append(triples, o.Triples()...)
	}
	return ops, triples, nil
}

func (r *Reader) readRestriction(x rdf.Term, triples []rdf.Triple) (ontology.ClassExpression, []rdf.Triple, error) {
	prop, ok := rdf.Object(r.g, x, onProperty)
	if !ok {
		return nil, nil, unsupported(x, "restriction without a single owl:onProperty")
	}
	triples = append(triples, rdf.T(x, onProperty, prop))
	data := r.IsDataProperty(prop)

	var ope ontology.ObjectPropertyExpression
	if !data {
		var ts []rdf.Triple
		var err error
		if ope, ts, err = r.ObjectPropertyExpression(prop); err != nil {
			return nil, nil, err
		}
		triples = append(triples, ts...)
	}
	dp := ontology.DataProperty{IRI: prop.Value}

	if f, ok := rdf.Object(r.g, x, someValuesFrom); ok {
		triples = append(triples, rdf.T(x, someValuesFrom, f))
		if data {
			dr, err := r.DataRange(f)
			if err != nil {
				return nil, nil, err
			}
			return &ontology.DataSomeValuesFrom{Property: dp, Range: dr.Value()}, append(triples, dr.Triples()...), nil
		}
		ce, err := r.ClassExpression(f)
		if err != nil {
			return nil, nil, err
		}
		return &ontology.ObjectSomeValuesFrom{Property: ope, Filler: ce.Value()}, append(triples, ce.Triples()...), nil
	}
	if f, ok := rdf.Object(r.g, x, allValuesFrom); ok {
		triples = append(triples, rdf.T(x, allValuesFrom, f))
		if data {
			dr, err := r.DataRange(f)
			if err != nil {
				return nil, nil, err
			}
			return &ontology.DataAllValuesFrom{Property: dp, Range: dr.Value()}, append(triples, dr.Triples()...), nil
		}
		ce, err := r.ClassExpression(f)
		if err != nil {
			return nil, nil, err
		}
		return &ontology.ObjectAllValuesFrom{Property: ope, Filler: ce.Value()}, append(triples, ce.Triples()...), nil
	}
	if v, ok := rdf.Object(r.g, x, hasValue); ok {
		triples = append(triples, rdf.T(x, hasValue, v))
		if data {
			if !v.IsLiteral() {
				return nil, nil, unsupported(x, "data owl:hasValue must be a literal")
			}
			return &ontology.DataHasValue{Property: dp, Value: ontology.LiteralFromTerm(v)}, triples, nil
		}
		ind, err := r.Individual(v)
		if err != nil {
			return nil, nil, err
		}
		return &ontology.ObjectHasValue{Property: ope, Value: ind}, triples, nil
	}
	if v, ok := rdf.Object(r.g, x, hasSelf); ok {
		if data {
			return nil, nil, unsupported(x, "owl:hasSelf on a data property")
		}
		triples = append(triples, rdf.T(x, hasSelf, v))
		return &ontology.ObjectHasSelf{Property: ope}, triples, nil
	}
	for _, c := range cardinalityPredicates {
		lit, ok := rdf.Object(r.g, x, c.pred)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(lit.Value)
		if !lit.IsLiteral() || err != nil || n < 0 {
			return nil, nil, unsupported(x, "bad cardinality %s", lit)
		}
		triples = append(triples, rdf.T(x, c.pred, lit))
		if !c.qualified {
			if data {
				return &ontology.DataCardinality{Type: c.typ, N: n, Property: dp}, triples, nil
			}
			return &ontology.ObjectCardinality{Type: c.typ, N: n, Property: ope}, triples, nil
		}
		if data {
			d, ok := rdf.Object(r.g, x, onDataRange)
			if !ok {
				return nil, nil, unsupported(x, "qualified data cardinality without owl:onDataRange")
			}
			dr, err := r.DataRange(d)
			if err != nil {
				return nil, nil, err
			}
			triples = append(triples, rdf.T(x, onDataRange, d))
			return &ontology.DataCardinality{Type: c.typ, N: n, Property: dp, Range: dr.Value()}, append(triples, dr.Triples()...), nil
		}
		f, ok := rdf.Object(r.g, x, onClass)
		if !ok {
			return nil, nil, unsupported(x, "qualified object cardinality without owl:onClass")
		}
		ce, err := r.ClassExpression(f)
		if err != nil {
			return nil, nil, err
		}
		triples = append(triples, rdf.T(x, onClass, f))
		return &ontology.ObjectCardinality{Type: c.typ, N: n, Property: ope, Filler: ce.Value()}, append(triples, ce.Triples()...), nil
	}
	return nil, nil, unsupported(x, "restriction of unknown kind")
}

// DataRange reads the data range rooted at t.
func (r *Reader) DataRange(t rdf.Term) (ontology.Object[ontology.DataRange], error) {
	var zero ontology.Object[ontology.DataRange]
	switch {
	case t.IsIRI():
		return ontology.NewObject[ontology.DataRange](ontology.Datatype{IRI: t.Value}), nil
	case !t.IsBlank():
		return zero, unsupported(t, "literal in data range position")
	}
	if o, ok := r.ranges[t]; ok {
		return o, nil
	}
	if r.active[t] {
		return zero, recursive(t)
	}
	r.active[t] = true
	defer delete(r.active, t)

	dr, triples, err := r.readDataRange(t)
	if err != nil {
		return zero, err
	}
	o := ontology.NewObject(r.factory.DataRange(dr), triples...)
	r.ranges[t] = o
	return o, nil
}

func (r *Reader) readDataRange(x rdf.Term) (ontology.DataRange, []rdf.Triple, error) {
	triples := r.typeTriples(x, rdfsDatatype)

	if d, ok := rdf.Object(r.g, x, onDatatype); ok {
		l, ok := rdf.Object(r.g, x, withRestrictions)
		if !ok || !d.IsIRI() {
			return nil, nil, unsupported(x, "datatype restriction needs a named owl:onDatatype and owl:withRestrictions")
		}
		items, ts, err := rdf.ReadList(r.g, l)
		if err != nil {
			return nil, nil, unsupported(x, "owl:withRestrictions: %v", err)
		}
		triples = append(triples, rdf.T(x, onDatatype, d), rdf.T(x, withRestrictions, l))
		triples = append(triples, ts...)
		facets := make([]ontology.FacetRestriction, 0, len(items))
		for _, it := range items {
			fr, tr, err := r.facet(it)
			if err != nil {
				return nil, nil, err
			}
			facets = append(facets, fr)
			triples = append(triples, tr)
		}
		return &ontology.DatatypeRestriction{Datatype: ontology.Datatype{IRI: d.Value}, Facets: facets}, triples, nil
	}
	if c, ok := rdf.Object(r.g, x, dtComplementOf); ok {
		o, err := r.DataRange(c)
		if err != nil {
			return nil, nil, err
		}
		triples = append(triples, rdf.T(x, dtComplementOf, c))
		return &ontology.DataComplementOf{Range: o.Value()}, append(triples, o.Triples()...), nil
	}
	if l, ok := rdf.Object(r.g, x, unionOf); ok {
		ops, ts, err := r.rangeList(x, unionOf, l)
		return &ontology.DataUnionOf{Ranges: ops}, append(triples, ts...), err
	}
	if l, ok := rdf.Object(r.g, x, intersectionOf); ok {
		ops, ts, err := r.rangeList(x, intersectionOf, l)
		return &ontology.DataIntersectionOf{Ranges: ops}, append(triples, ts...), err
	}
	if l, ok := rdf.Object(r.g, x, oneOf); ok {
		items, ts, err := rdf.ReadList(r.g, l)
		if err != nil {
			return nil, nil, unsupported(x, "owl:oneOf: %v", err)
		}
		values := make([]ontology.Literal, 0, len(items))
		for _, it := range items {
			if !it.IsLiteral() {
				return nil, nil, unsupported(x, "data owl:oneOf member %s is not a literal", it)
			}
			values = append(values, ontology.LiteralFromTerm(it))
		}
		triples = append(triples, rdf.T(x, oneOf, l))
		return &ontology.DataOneOf{Values: values}, append(triples, ts...), nil
	}
	return nil, nil, unsupported(x, "data range of unknown shape")
}

func (r *Reader) rangeList(x, pred, head rdf.Term) ([]ontology.DataRange, []rdf.Triple, error) {
	items, triples, err := rdf.ReadList(r.g, head)
	if err != nil {
		return nil, nil, unsupported(x, "%s: %v", pred.Value, err)
	}
	triples = append(triples, rdf.T(x, pred, head))
	ops := make([]ontology.DataRange, 0, len(items))
	for _, it := range items {
		o, err := r.DataRange(it)
		if err != nil {
			return nil, nil, err
		}
		ops = append(ops, o.Value())
		triples = append(triples, o.Triples()...)
	}
	return ops, triples, nil
}

func (r *Reader) facet(f rdf.Term) (ontology.FacetRestriction, rdf.Triple, error) {
	var found []rdf.Triple
	for t := range r.g.Find(f, rdf.Any, rdf.Any) {
		if t.P.IsIRI() && owl.IsFacet(t.P.Value) {
			found = append(found, t)
		}
	}
	if len(found) != 1 || !found[0].O.IsLiteral() {
		return ontology.FacetRestriction{}, rdf.Triple{}, unsupported(f, "facet restriction must have exactly one facet literal")
	}
	t := found[0]
	return ontology.FacetRestriction{Facet: t.P.Value, Value: ontology.LiteralFromTerm(t.O)}, t, nil
}
