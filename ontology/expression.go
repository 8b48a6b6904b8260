package ontology

import "strconv"

// ClassExpression is a named class or an anonymous class construct.
type ClassExpression interface {
	Keyed
	classExpression()
}

// ObjectPropertyExpression is a named object property or its inverse.
type ObjectPropertyExpression interface {
	Keyed
	// Named returns the underlying named property.
	Named() ObjectProperty
	objectPropertyExpression()
}

// ObjectInverseOf is the inverse of a named object property.
type ObjectInverseOf struct {
	Property ObjectProperty
}

func (ObjectProperty) objectPropertyExpression()   {}
func (p ObjectProperty) Named() ObjectProperty     { return p }
func (*ObjectInverseOf) objectPropertyExpression() {}
func (i *ObjectInverseOf) Named() ObjectProperty   { return i.Property }
func (i *ObjectInverseOf) Key() string             { return fn("ObjectInverseOf", i.Property.Key()) }

// CardinalityType distinguishes min, max and exact cardinality restrictions.
type CardinalityType int

const (
	MinCardinality CardinalityType = iota + 1
	MaxCardinality
	ExactCardinality
)

func (c CardinalityType) String() string {
	switch c {
	case MinCardinality:
		return "Min"
	case MaxCardinality:
		return "Max"
	case ExactCardinality:
		return "Exact"
	default:
		return "Invalid"
	}
}

type (
	ObjectIntersectionOf struct{ Operands []ClassExpression }
	ObjectUnionOf        struct{ Operands []ClassExpression }
	ObjectComplementOf   struct{ Operand ClassExpression }
	ObjectOneOf          struct{ Individuals []Individual }

	ObjectSomeValuesFrom struct {
		Property ObjectPropertyExpression
		Filler   ClassExpression
	}
	ObjectAllValuesFrom struct {
		Property ObjectPropertyExpression
		Filler   ClassExpression
	}
	ObjectHasValue struct {
		Property ObjectPropertyExpression
		Value    Individual
	}
	ObjectHasSelf struct {
		Property ObjectPropertyExpression
	}
	// ObjectCardinality is unqualified when Filler is nil.
	ObjectCardinality struct {
		Type     CardinalityType
		N        int
		Property ObjectPropertyExpression
		Filler   ClassExpression
	}

	DataSomeValuesFrom struct {
		Property DataProperty
		Range    DataRange
	}
	DataAllValuesFrom struct {
		Property DataProperty
		Range    DataRange
	}
	DataHasValue struct {
		Property DataProperty
		Value    Literal
	}
	// DataCardinality is unqualified when Range is nil.
	DataCardinality struct {
		Type     CardinalityType
		N        int
		Property DataProperty
		Range    DataRange
	}
)

func (Class) classExpression()                 {}
func (*ObjectIntersectionOf) classExpression() {}
func (*ObjectUnionOf) classExpression()        {}
func (*ObjectComplementOf) classExpression()   {}
func (*ObjectOneOf) classExpression()          {}
func (*ObjectSomeValuesFrom) classExpression() {}
func (*ObjectAllValuesFrom) classExpression()  {}
func (*ObjectHasValue) classExpression()       {}
func (*ObjectHasSelf) classExpression()        {}
func (*ObjectCardinality) classExpression()    {}
func (*DataSomeValuesFrom) classExpression()   {}
func (*DataAllValuesFrom) classExpression()    {}
func (*DataHasValue) classExpression()         {}
func (*DataCardinality) classExpression()      {}

func (x *ObjectIntersectionOf) Key() string { return fn("ObjectIntersectionOf", setKey(x.Operands)) }
func (x *ObjectUnionOf) Key() string        { return fn("ObjectUnionOf", setKey(x.Operands)) }
func (x *ObjectComplementOf) Key() string   { return fn("ObjectComplementOf", x.Operand.Key()) }
func (x *ObjectOneOf) Key() string          { return fn("ObjectOneOf", setKey(x.Individuals)) }

func (x *ObjectSomeValuesFrom) Key() string {
	return fn("ObjectSomeValuesFrom", x.Property.Key(), x.Filler.Key())
}

func (x *ObjectAllValuesFrom) Key() string {
	return fn("ObjectAllValuesFrom", x.Property.Key(), x.Filler.Key())
}

func (x *ObjectHasValue) Key() string {
	return fn("ObjectHasValue", x.Property.Key(), x.Value.Key())
}

func (x *ObjectHasSelf) Key() string { return fn("ObjectHasSelf", x.Property.Key()) }

func (x *ObjectCardinality) Key() string {
	args := []string{strconv.Itoa(x.N), x.Property.Key()}
	if x.Filler != nil {
		args = append(args, x.Filler.Key())
	}
	return fn("Object"+x.Type.String()+"Cardinality", args...)
}

func (x *DataSomeValuesFrom) Key() string {
	return fn("DataSomeValuesFrom", x.Property.Key(), x.Range.Key())
}

func (x *DataAllValuesFrom) Key() string {
	return fn("DataAllValuesFrom", x.Property.Key(), x.Range.Key())
}

func (x *DataHasValue) Key() string {
	return fn("DataHasValue", x.Property.Key(), x.Value.Key())
}

func (x *DataCardinality) Key() string {
	args := []string{strconv.Itoa(x.N), x.Property.Key()}
	if x.Range != nil {
		args = append(args, x.Range.Key())
	}
	return fn("Data"+x.Type.String()+"Cardinality", args...)
}

// DataRange is a datatype or a data range construct.
type DataRange interface {
	Keyed
	dataRange()
}

// FacetRestriction constrains a datatype by one facet.
type FacetRestriction struct {
	Facet string
	Value Literal
}

func (f FacetRestriction) Key() string { return fn("Facet", iriKey(f.Facet), f.Value.Key()) }

type (
	DatatypeRestriction struct {
		Datatype Datatype
		Facets   []FacetRestriction
	}
	DataComplementOf   struct{ Range DataRange }
	DataUnionOf        struct{ Ranges []DataRange }
	DataIntersectionOf struct{ Ranges []DataRange }
	DataOneOf          struct{ Values []Literal }
)

func (Datatype) dataRange()             {}
func (*DatatypeRestriction) dataRange() {}
func (*DataComplementOf) dataRange()    {}
func (*DataUnionOf) dataRange()         {}
func (*DataIntersectionOf) dataRange()  {}
func (*DataOneOf) dataRange()           {}

func (x *DatatypeRestriction) Key() string {
	return fn("DatatypeRestriction", x.Datatype.Key(), setKey(x.Facets))
}
func (x *DataComplementOf) Key() string   { return fn("DataComplementOf", x.Range.Key()) }
func (x *DataUnionOf) Key() string        { return fn("DataUnionOf", setKey(x.Ranges)) }
func (x *DataIntersectionOf) Key() string { return fn("DataIntersectionOf", setKey(x.Ranges)) }
func (x *DataOneOf) Key() string          { return fn("DataOneOf", setKey(x.Values)) }
