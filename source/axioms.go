package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semontology/loader"
	"github.com/c360studio/semontology/ontology"
	"github.com/c360studio/semontology/rdf"
	"github.com/c360studio/semontology/translate"
	"github.com/c360studio/semontology/vocabulary/owl"
)

// AxiomDocument is the axiom-centric YAML document format.
//
//	ontology: http://example.org/pizza
//	imports: [http://example.org/food]
//	prefixes:
//	  ex: http://example.org/pizza#
//	declarations:
//	  classes: [ex:Pizza, ex:Margherita]
//	axioms:
//	  - subClassOf: [ex:Margherita, ex:Pizza]
//	    annotations:
//	      rdfs:comment: '"classic"@en'
type AxiomDocument struct {
	Ontology     string            `yaml:"ontology,omitempty"`
	Version      string            `yaml:"version,omitempty"`
	Imports      []string          `yaml:"imports,omitempty"`
	Prefixes     map[string]string `yaml:"prefixes,omitempty"`
	Annotations  map[string]string `yaml:"annotations,omitempty"`
	Declarations Declarations      `yaml:"declarations,omitempty"`
	Axioms       []AxiomEntry      `yaml:"axioms,omitempty"`
}

// Declarations lists the entities a document declares.
type Declarations struct {
	Classes              []string `yaml:"classes,omitempty"`
	Datatypes            []string `yaml:"datatypes,omitempty"`
	ObjectProperties     []string `yaml:"objectProperties,omitempty"`
	DataProperties       []string `yaml:"dataProperties,omitempty"`
	AnnotationProperties []string `yaml:"annotationProperties,omitempty"`
	Individuals          []string `yaml:"individuals,omitempty"`
}

// AxiomEntry is one axiom. Exactly one of the axiom fields is set.
// Property kinds are taken from the document's declarations; undeclared
// properties are object properties.
type AxiomEntry struct {
	SubClassOf           []string `yaml:"subClassOf,omitempty"`
	EquivalentClasses    []string `yaml:"equivalentClasses,omitempty"`
	DisjointClasses      []string `yaml:"disjointClasses,omitempty"`
	SubPropertyOf        []string `yaml:"subPropertyOf,omitempty"`
	InverseOf            []string `yaml:"inverseOf,omitempty"`
	Domain               []string `yaml:"domain,omitempty"`
	Range                []string `yaml:"range,omitempty"`
	ClassAssertion       []string `yaml:"classAssertion,omitempty"`
	PropertyAssertion    []string `yaml:"propertyAssertion,omitempty"`
	Annotation           []string `yaml:"annotation,omitempty"`
	SameIndividual       []string `yaml:"sameIndividual,omitempty"`
	DifferentIndividuals []string `yaml:"differentIndividuals,omitempty"`

	// Characteristics applies to Property: functional, inverseFunctional,
	// transitive, symmetric, asymmetric, reflexive, irreflexive.
	Property        string   `yaml:"property,omitempty"`
	Characteristics []string `yaml:"characteristics,omitempty"`

	Annotations map[string]string `yaml:"annotations,omitempty"`
}

var characteristicKinds = map[string]ontology.AxiomKind{
	"functional":        ontology.KindFunctionalObjectProperty,
	"inverseFunctional": ontology.KindInverseFunctionalObjectProperty,
	"transitive":        ontology.KindTransitiveObjectProperty,
	"symmetric":         ontology.KindSymmetricObjectProperty,
	"asymmetric":        ontology.KindAsymmetricObjectProperty,
	"reflexive":         ontology.KindReflexiveObjectProperty,
	"irreflexive":       ontology.KindIrreflexiveObjectProperty,
}

var defaultPrefixes = map[string]string{
	"rdf":  owl.RDFNamespace,
	"rdfs": owl.RDFSNamespace,
	"owl":  owl.OWLNamespace,
	"xsd":  owl.XSDNamespace,
}

// ErrInvalidDocument is returned for axiom documents that decode but
// cannot be translated.
var ErrInvalidDocument = errors.New("invalid axiom document")

// AxiomReader is the secondary reader for AxiomDocuments. Imports that an
// IRI mapper resolves to further axiom documents are read too and
// registered into the loader's overlay.
type AxiomReader struct {
	opener *Opener
	mapper loader.IRIMapper
	axioms *translate.Registry
	logger *slog.Logger
}

var _ loader.AxiomReader = (*AxiomReader)(nil)

// AxiomReaderOption configures an AxiomReader.
type AxiomReaderOption func(*AxiomReader)

// WithImportMapper resolves import IRIs to locators.
func WithImportMapper(m loader.IRIMapper) AxiomReaderOption {
	return func(r *AxiomReader) { r.mapper = m }
}

// WithAxiomRegistry sets the translators used to write axioms.
func WithAxiomRegistry(reg *translate.Registry) AxiomReaderOption {
	return func(r *AxiomReader) { r.axioms = reg }
}

// NewAxiomReader creates a reader over opener.
func NewAxiomReader(opener *Opener, opts ...AxiomReaderOption) *AxiomReader {
	r := &AxiomReader{opener: opener, logger: opener.logger}
	for _, opt := range opts {
		opt(r)
	}
	if r.axioms == nil {
		r.axioms = translate.NewRegistry(translate.WithLogger(r.logger))
	}
	return r
}

// ReadAxioms implements loader.AxiomReader.
func (r *AxiomReader) ReadAxioms(ctx context.Context, src loader.DocumentSource, reg *loader.Overlay) (*rdf.Graph, rdf.Format, error) {
	doc, err := r.opener.documentSource(ctx, src)
	if err != nil {
		return nil, rdf.FormatUnknown, err
	}
	g, imports, err := r.Parse(doc)
	if err != nil {
		return nil, rdf.FormatUnknown, err
	}
	visiting := map[string]bool{doc.Locator: true}
	if err := r.readImports(ctx, imports, reg, visiting); err != nil {
		return nil, rdf.FormatUnknown, err
	}
	return g, rdf.FormatAxiomYAML, nil
}

func (r *AxiomReader) readImports(ctx context.Context, imports []string, reg *loader.Overlay, visiting map[string]bool) error {
	if r.mapper == nil || reg == nil {
		return nil
	}
	for _, iri := range imports {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := reg.Ontology(iri); ok {
			continue
		}
		locator, ok := r.mapper.DocumentIRI(iri)
		if !ok || visiting[locator] {
			continue
		}
		visiting[locator] = true

		doc, err := r.opener.Open(ctx, locator, rdf.FormatUnknown)
		if err != nil {
			r.logger.Debug("Import not readable as axiom document", "import", iri, "source", locator, "error", err)
			continue
		}
		if doc.Format != rdf.FormatAxiomYAML {
			continue
		}
		g, nested, err := r.Parse(doc)
		if err != nil {
			return fmt.Errorf("import %s: %w", iri, err)
		}
		reg.Register(iri, loader.Resident{Graph: g, Format: rdf.FormatAxiomYAML, Source: locator})
		if err := r.readImports(ctx, nested, reg, visiting); err != nil {
			return err
		}
	}
	return nil
}

// Parse decodes and translates an opened document. It returns the graph
// and the document's imports.
func (r *AxiomReader) Parse(doc *Document) (*rdf.Graph, []string, error) {
	if doc.Format != rdf.FormatAxiomYAML && doc.Format != rdf.FormatUnknown {
		return nil, nil, loader.UnsupportedFormat(doc.Locator, doc.Format, nil)
	}
	var ad AxiomDocument
	if err := yaml.Unmarshal(doc.Content, &ad); err != nil {
		return nil, nil, loader.UnsupportedFormat(doc.Locator, rdf.FormatAxiomYAML, err)
	}
	g, err := r.Build(&ad)
	if err != nil {
		return nil, nil, fmt.Errorf("translate %s: %w", doc.Locator, err)
	}
	r.logger.Debug("Parsed axiom document", "source", doc.Locator, "axioms", len(ad.Axioms), "triples", g.Len())
	return g, slices.Clone(ad.Imports), nil
}

// Build translates a decoded document into a graph.
func (r *AxiomReader) Build(ad *AxiomDocument) (*rdf.Graph, error) {
	b := &docBuilder{
		prefixes: make(map[string]string, len(defaultPrefixes)+len(ad.Prefixes)),
		types:    make(map[string]ontology.EntityType),
		g:        rdf.NewGraph(),
		axioms:   r.axioms,
	}
	for p, ns := range defaultPrefixes {
		b.prefixes[p] = ns
	}
	for p, ns := range ad.Prefixes {
		b.prefixes[p] = ns
		b.g.SetPrefix(p, ns)
	}
	if err := b.header(ad); err != nil {
		return nil, err
	}
	if err := b.declare(ad.Declarations); err != nil {
		return nil, err
	}
	for i, e := range ad.Axioms {
		if err := b.entry(e); err != nil {
			return nil, fmt.Errorf("axiom %d: %w", i, err)
		}
	}
	return b.g, nil
}

type docBuilder struct {
	prefixes map[string]string
	types    map[string]ontology.EntityType
	g        *rdf.Graph
	axioms   *translate.Registry
}

func (b *docBuilder) header(ad *AxiomDocument) error {
	subject := rdf.Blank("ontology")
	if ad.Ontology != "" {
		iri, err := b.expand(ad.Ontology)
		if err != nil {
			return err
		}
		subject = rdf.IRI(iri)
	}
	b.g.Add(rdf.T(subject, rdf.IRI(owl.RDFType), rdf.IRI(owl.Ontology)))
	if ad.Version != "" {
		v, err := b.expand(ad.Version)
		if err != nil {
			return err
		}
		b.g.Add(rdf.T(subject, rdf.IRI(owl.VersionIRI), rdf.IRI(v)))
	}
	for _, imp := range ad.Imports {
		iri, err := b.expand(imp)
		if err != nil {
			return err
		}
		b.g.Add(rdf.T(subject, rdf.IRI(owl.Imports), rdf.IRI(iri)))
	}
	for _, k := range sortedKeys(ad.Annotations) {
		p, err := b.expand(k)
		if err != nil {
			return err
		}
		v, err := b.value(ad.Annotations[k])
		if err != nil {
			return err
		}
		b.g.Add(rdf.T(subject, rdf.IRI(p), v))
	}
	return nil
}

func (b *docBuilder) declare(d Declarations) error {
	groups := []struct {
		typ   ontology.EntityType
		names []string
	}{
		{ontology.EntityClass, d.Classes},
		{ontology.EntityDatatype, d.Datatypes},
		{ontology.EntityObjectProperty, d.ObjectProperties},
		{ontology.EntityDataProperty, d.DataProperties},
		{ontology.EntityAnnotationProperty, d.AnnotationProperties},
		{ontology.EntityNamedIndividual, d.Individuals},
	}
	for _, grp := range groups {
		for _, name := range grp.names {
			iri, err := b.expand(name)
			if err != nil {
				return err
			}
			b.types[iri] = grp.typ
			if err := b.write(&ontology.Declaration{Entity: ontology.Entity{Type: grp.typ, IRI: iri}}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *docBuilder) entry(e AxiomEntry) error {
	anns, err := b.annotations(e.Annotations)
	if err != nil {
		return err
	}
	a := ontology.Annotate(anns...)

	switch {
	case e.SubClassOf != nil:
		cs, err := b.classes(e.SubClassOf, 2, 2)
		if err != nil {
			return err
		}
		return b.write(&ontology.SubClassOf{Sub: cs[0], Super: cs[1], Annotated: a})
	case e.EquivalentClasses != nil:
		cs, err := b.classes(e.EquivalentClasses, 2, -1)
		if err != nil {
			return err
		}
		return b.write(&ontology.EquivalentClasses{Classes: cs, Annotated: a})
	case e.DisjointClasses != nil:
		cs, err := b.classes(e.DisjointClasses, 2, -1)
		if err != nil {
			return err
		}
		return b.write(&ontology.DisjointClasses{Classes: cs, Annotated: a})
	case e.SubPropertyOf != nil:
		return b.subProperty(e.SubPropertyOf, a)
	case e.InverseOf != nil:
		ps, err := b.iris("inverseOf", e.InverseOf, 2, 2)
		if err != nil {
			return err
		}
		return b.write(&ontology.InverseObjectProperties{
			First:     ontology.ObjectProperty{IRI: ps[0]},
			Second:    ontology.ObjectProperty{IRI: ps[1]},
			Annotated: a,
		})
	case e.Domain != nil:
		return b.domain(e.Domain, a)
	case e.Range != nil:
		return b.rng(e.Range, a)
	case e.ClassAssertion != nil:
		xs, err := b.iris("classAssertion", e.ClassAssertion, 2, 2)
		if err != nil {
			return err
		}
		return b.write(&ontology.ClassAssertion{
			Class:      ontology.Class{IRI: xs[0]},
			Individual: ontology.NamedIndividual(xs[1]),
			Annotated:  a,
		})
	case e.PropertyAssertion != nil:
		return b.propertyAssertion(e.PropertyAssertion, a)
	case e.Annotation != nil:
		return b.annotationAssertion(e.Annotation, a)
	case e.SameIndividual != nil:
		xs, err := b.iris("sameIndividual", e.SameIndividual, 2, -1)
		if err != nil {
			return err
		}
		return b.write(&ontology.SameIndividual{Individuals: individuals(xs), Annotated: a})
	case e.DifferentIndividuals != nil:
		xs, err := b.iris("differentIndividuals", e.DifferentIndividuals, 2, -1)
		if err != nil {
			return err
		}
		return b.write(&ontology.DifferentIndividuals{Individuals: individuals(xs), Annotated: a})
	case e.Characteristics != nil:
		return b.characteristics(e.Property, e.Characteristics, a)
	default:
		return fmt.Errorf("%w: empty axiom entry", ErrInvalidDocument)
	}
}

func (b *docBuilder) subProperty(names []string, a ontology.Annotated) error {
	ps, err := b.iris("subPropertyOf", names, 2, 2)
	if err != nil {
		return err
	}
	switch b.propertyType(ps[0], ps[1]) {
	case ontology.EntityDataProperty:
		return b.write(&ontology.SubDataPropertyOf{
			Sub: ontology.DataProperty{IRI: ps[0]}, Super: ontology.DataProperty{IRI: ps[1]}, Annotated: a,
		})
	case ontology.EntityAnnotationProperty:
		return b.write(&ontology.SubAnnotationPropertyOf{
			Sub: ontology.AnnotationProperty{IRI: ps[0]}, Super: ontology.AnnotationProperty{IRI: ps[1]}, Annotated: a,
		})
	default:
		return b.write(&ontology.SubObjectPropertyOf{
			Sub: ontology.ObjectProperty{IRI: ps[0]}, Super: ontology.ObjectProperty{IRI: ps[1]}, Annotated: a,
		})
	}
}

func (b *docBuilder) domain(names []string, a ontology.Annotated) error {
	xs, err := b.iris("domain", names, 2, 2)
	if err != nil {
		return err
	}
	p, c := xs[0], xs[1]
	switch b.propertyType(p) {
	case ontology.EntityDataProperty:
		return b.write(&ontology.DataPropertyDomain{Property: ontology.DataProperty{IRI: p}, Domain: ontology.Class{IRI: c}, Annotated: a})
	case ontology.EntityAnnotationProperty:
		return b.write(&ontology.AnnotationPropertyDomain{Property: ontology.AnnotationProperty{IRI: p}, Domain: c, Annotated: a})
	default:
		return b.write(&ontology.ObjectPropertyDomain{Property: ontology.ObjectProperty{IRI: p}, Domain: ontology.Class{IRI: c}, Annotated: a})
	}
}

func (b *docBuilder) rng(names []string, a ontology.Annotated) error {
	xs, err := b.iris("range", names, 2, 2)
	if err != nil {
		return err
	}
	p, r := xs[0], xs[1]
	switch b.propertyType(p) {
	case ontology.EntityDataProperty:
		return b.write(&ontology.DataPropertyRange{Property: ontology.DataProperty{IRI: p}, Range: ontology.Datatype{IRI: r}, Annotated: a})
	case ontology.EntityAnnotationProperty:
		return b.write(&ontology.AnnotationPropertyRange{Property: ontology.AnnotationProperty{IRI: p}, Range: r, Annotated: a})
	default:
		return b.write(&ontology.ObjectPropertyRange{Property: ontology.ObjectProperty{IRI: p}, Range: ontology.Class{IRI: r}, Annotated: a})
	}
}

func (b *docBuilder) propertyAssertion(args []string, a ontology.Annotated) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: propertyAssertion takes property, subject and value", ErrInvalidDocument)
	}
	xs, err := b.iris("propertyAssertion", args[:2], 2, 2)
	if err != nil {
		return err
	}
	p, s := xs[0], ontology.NamedIndividual(xs[1])
	if b.propertyType(p) == ontology.EntityDataProperty {
		v, err := b.literal(args[2])
		if err != nil {
			return err
		}
		return b.write(&ontology.DataPropertyAssertion{
			Property: ontology.DataProperty{IRI: p}, Subject: s, Value: ontology.LiteralFromTerm(v), Annotated: a,
		})
	}
	o, err := b.expand(args[2])
	if err != nil {
		return err
	}
	return b.write(&ontology.ObjectPropertyAssertion{
		Property: ontology.ObjectProperty{IRI: p}, Subject: s, Object: ontology.NamedIndividual(o), Annotated: a,
	})
}

func (b *docBuilder) annotationAssertion(args []string, a ontology.Annotated) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: annotation takes subject, property and value", ErrInvalidDocument)
	}
	xs, err := b.iris("annotation", args[:2], 2, 2)
	if err != nil {
		return err
	}
	v, err := b.value(args[2])
	if err != nil {
		return err
	}
	return b.write(&ontology.AnnotationAssertion{
		Property:  ontology.AnnotationProperty{IRI: xs[1]},
		Subject:   ontology.NamedIndividual(xs[0]),
		Value:     v,
		Annotated: a,
	})
}

func (b *docBuilder) characteristics(property string, names []string, a ontology.Annotated) error {
	if property == "" {
		return fmt.Errorf("%w: characteristics without property", ErrInvalidDocument)
	}
	p, err := b.expand(property)
	if err != nil {
		return err
	}
	data := b.propertyType(p) == ontology.EntityDataProperty
	for _, name := range names {
		if data {
			if name != "functional" {
				return fmt.Errorf("%w: data property %s cannot be %s", ErrInvalidDocument, p, name)
			}
			if err := b.write(&ontology.FunctionalDataProperty{Property: ontology.DataProperty{IRI: p}, Annotated: a}); err != nil {
				return err
			}
			continue
		}
		kind, ok := characteristicKinds[name]
		if !ok {
			return fmt.Errorf("%w: unknown characteristic %q", ErrInvalidDocument, name)
		}
		if err := b.write(&ontology.ObjectPropertyCharacteristic{
			Characteristic: kind, Property: ontology.ObjectProperty{IRI: p}, Annotated: a,
		}); err != nil {
			return err
		}
	}
	return nil
}

// propertyType returns the declared type shared by every iri, defaulting
// to object property.
func (b *docBuilder) propertyType(iris ...string) ontology.EntityType {
	for _, iri := range iris {
		if t := b.types[iri]; t == ontology.EntityDataProperty || t == ontology.EntityAnnotationProperty {
			return t
		}
	}
	return ontology.EntityObjectProperty
}

func (b *docBuilder) annotations(m map[string]string) ([]ontology.Annotation, error) {
	var out []ontology.Annotation
	for _, k := range sortedKeys(m) {
		p, err := b.expand(k)
		if err != nil {
			return nil, err
		}
		v, err := b.value(m[k])
		if err != nil {
			return nil, err
		}
		out = append(out, ontology.Annotation{Property: ontology.AnnotationProperty{IRI: p}, Value: v})
	}
	return out, nil
}

func (b *docBuilder) classes(names []string, lo, hi int) ([]ontology.ClassExpression, error) {
	xs, err := b.iris("class list", names, lo, hi)
	if err != nil {
		return nil, err
	}
	out := make([]ontology.ClassExpression, len(xs))
	for i, x := range xs {
		out[i] = ontology.Class{IRI: x}
	}
	return out, nil
}

// iris expands names, which must number between lo and hi (hi < 0 is
// unbounded).
func (b *docBuilder) iris(what string, names []string, lo, hi int) ([]string, error) {
	if len(names) < lo || (hi >= 0 && len(names) > hi) {
		return nil, fmt.Errorf("%w: %s has %d operands", ErrInvalidDocument, what, len(names))
	}
	out := make([]string, len(names))
	for i, n := range names {
		iri, err := b.expand(n)
		if err != nil {
			return nil, err
		}
		out[i] = iri
	}
	return out, nil
}

// expand resolves <iri>, absolute IRIs and prefixed names.
func (b *docBuilder) expand(name string) (string, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "", fmt.Errorf("%w: empty name", ErrInvalidDocument)
	case strings.HasPrefix(name, "<") && strings.HasSuffix(name, ">"):
		return name[1 : len(name)-1], nil
	case strings.Contains(name, "://"), strings.HasPrefix(name, "urn:"):
		return name, nil
	}
	prefix, local, ok := strings.Cut(name, ":")
	if !ok {
		return "", fmt.Errorf("%w: %q is not an IRI or prefixed name", ErrInvalidDocument, name)
	}
	ns, ok := b.prefixes[prefix]
	if !ok {
		return "", fmt.Errorf("%w: unknown prefix %q", ErrInvalidDocument, prefix)
	}
	return ns + local, nil
}

// value parses an annotation value: a quoted literal, an IRI or prefixed
// name, or otherwise a plain literal.
func (b *docBuilder) value(s string) (rdf.Term, error) {
	if strings.HasPrefix(s, `"`) {
		return b.literal(s)
	}
	if iri, err := b.expand(s); err == nil {
		return rdf.IRI(iri), nil
	}
	return rdf.Literal(s, ""), nil
}

// literal parses "lex", "lex"@lang or "lex"^^datatype. Unquoted input is
// a plain literal.
func (b *docBuilder) literal(s string) (rdf.Term, error) {
	if !strings.HasPrefix(s, `"`) {
		return rdf.Literal(s, ""), nil
	}
	end := strings.LastIndex(s, `"`)
	if end == 0 {
		return rdf.Term{}, fmt.Errorf("%w: unterminated literal %s", ErrInvalidDocument, s)
	}
	lex, rest := s[1:end], s[end+1:]
	switch {
	case rest == "":
		return rdf.Literal(lex, ""), nil
	case strings.HasPrefix(rest, "@"):
		return rdf.LangLiteral(lex, rest[1:]), nil
	case strings.HasPrefix(rest, "^^"):
		dt, err := b.expand(rest[2:])
		if err != nil {
			return rdf.Term{}, err
		}
		return rdf.Literal(lex, dt), nil
	default:
		return rdf.Term{}, fmt.Errorf("%w: malformed literal %s", ErrInvalidDocument, s)
	}
}

func (b *docBuilder) write(a ontology.Axiom) error {
	return b.axioms.Write(b.g, a)
}

func individuals(iris []string) []ontology.Individual {
	out := make([]ontology.Individual, len(iris))
	for i, iri := range iris {
		out[i] = ontology.NamedIndividual(iri)
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
