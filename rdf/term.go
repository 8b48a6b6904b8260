package rdf

import (
	"strings"

	"github.com/c360studio/semontology/vocabulary/owl"
)

// TermKind distinguishes IRIs, blank nodes and literals.
type TermKind uint8

const (
	// KindNone marks the zero Term, used as a wildcard in patterns.
	KindNone TermKind = iota
	KindIRI
	KindBlank
	KindLiteral
)

// Term is one node of a statement. Terms are comparable and usable as map keys.
type Term struct {
	Kind     TermKind
	Value    string
	Datatype string
	Lang     string
}

// Any is the wildcard term.
var Any Term

// Nil is rdf:nil, the empty list.
var Nil = IRI(owl.RDFNil)

// IRI returns an IRI term.
func IRI(v string) Term { return Term{Kind: KindIRI, Value: v} }

// Blank returns a blank node term with the given label.
func Blank(label string) Term { return Term{Kind: KindBlank, Value: label} }

// Literal returns a typed literal. An empty datatype means xsd:string.
func Literal(lexical, datatype string) Term {
	if datatype == "" {
		datatype = owl.XSDString
	}
	return Term{Kind: KindLiteral, Value: lexical, Datatype: datatype}
}

// LangLiteral returns a language-tagged literal.
func LangLiteral(lexical, lang string) Term {
	return Term{Kind: KindLiteral, Value: lexical, Datatype: owl.RDFLangString, Lang: strings.ToLower(lang)}
}

func (t Term) IsZero() bool    { return t.Kind == KindNone }
func (t Term) IsIRI() bool     { return t.Kind == KindIRI }
func (t Term) IsBlank() bool   { return t.Kind == KindBlank }
func (t Term) IsLiteral() bool { return t.Kind == KindLiteral }

// IsResource reports whether t can be the subject of a statement.
func (t Term) IsResource() bool { return t.Kind == KindIRI || t.Kind == KindBlank }

// String renders the term in N-Triples syntax.
func (t Term) String() string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindBlank:
		return "_:" + t.Value
	case KindLiteral:
		s := `"` + escapeLiteral(t.Value) + `"`
		if t.Lang != "" {
			return s + "@" + t.Lang
		}
		if t.Datatype != "" && t.Datatype != owl.XSDString {
			return s + "^^<" + t.Datatype + ">"
		}
		return s
	default:
		return "*"
	}
}

// Triple is one subject-predicate-object statement.
type Triple struct {
	S, P, O Term
}

// T builds a triple.
func T(s, p, o Term) Triple { return Triple{S: s, P: p, O: o} }

// String renders the triple as an N-Triples line without the newline.
func (t Triple) String() string {
	return t.S.String() + " " + t.P.String() + " " + t.O.String() + " ."
}

// Compare orders triples by subject, predicate, then object.
func (t Triple) Compare(u Triple) int {
	if c := compareTerm(t.S, u.S); c != 0 {
		return c
	}
	if c := compareTerm(t.P, u.P); c != 0 {
		return c
	}
	return compareTerm(t.O, u.O)
}

// Compare orders terms by kind, then value, datatype and language.
func (t Term) Compare(u Term) int { return compareTerm(t, u) }

func compareTerm(a, b Term) int {
	if a.Kind != b.Kind {
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	}
	if c := strings.Compare(a.Value, b.Value); c != 0 {
		return c
	}
	if c := strings.Compare(a.Datatype, b.Datatype); c != 0 {
		return c
	}
	return strings.Compare(a.Lang, b.Lang)
}

func escapeLiteral(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
