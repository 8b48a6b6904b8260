package ontology

import "github.com/c360studio/semontology/rdf"

// Annotation is a property-value pair that may itself be annotated. Value
// is an IRI, a literal or a blank node naming an anonymous individual.
type Annotation struct {
	Property    AnnotationProperty
	Value       rdf.Term
	Annotations []Annotation
}

// IsHierarchical reports whether the annotation carries annotations of its own.
func (a Annotation) IsHierarchical() bool { return len(a.Annotations) > 0 }

func (a Annotation) Key() string {
	return fn("Annotation", annotated(a.Annotations, a.Property.Key(), a.Value.String())...)
}

// annotated prefixes args with the annotation set key when there is one.
func annotated(anns []Annotation, args ...string) []string {
	if len(anns) == 0 {
		return args
	}
	return append([]string{"[" + setKey(anns) + "]"}, args...)
}

// Annotated carries the annotations attached to an axiom.
type Annotated struct {
	List []Annotation
}

// Annotate wraps annotations for embedding in an axiom literal.
func Annotate(anns ...Annotation) Annotated { return Annotated{List: anns} }

// Annotations returns the attached annotations.
func (a Annotated) Annotations() []Annotation { return a.List }
