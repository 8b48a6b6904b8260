package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/semontology/rdf"
	"github.com/c360studio/semontology/vocabulary/owl"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// ParseFormat accepts a format name or file extension.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, info := range FormatRegistry {
		if s == string(f) || s == info.Extension || "."+s == info.Extension {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format: %s", s)
}

// TurtleWriter writes RDF in Turtle format.
type TurtleWriter struct {
	prefixes map[string]string
	sb       strings.Builder
}

// NewTurtleWriter creates a new Turtle writer with default prefixes.
func NewTurtleWriter() *TurtleWriter {
	return &TurtleWriter{
		prefixes: defaultPrefixes(),
	}
}

// SetPrefix sets a namespace prefix.
func (w *TurtleWriter) SetPrefix(prefix, iri string) {
	w.prefixes[prefix] = iri
}

// WritePrefixes writes prefix declarations.
func (w *TurtleWriter) WritePrefixes() {
	// Sort prefixes for consistent output
	keys := make([]string, 0, len(w.prefixes))
	for k := range w.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, prefix := range keys {
		w.sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", prefix, w.prefixes[prefix]))
	}
	w.sb.WriteString("\n")
}

// WriteTriples writes prefixes followed by one block per subject. Triples
// must be sorted by subject.
func (w *TurtleWriter) WriteTriples(triples []rdf.Triple) {
	w.WritePrefixes()
	for i := 0; i < len(triples); {
		j := i
		for j < len(triples) && triples[j].S == triples[i].S {
			j++
		}
		w.WriteSubject(triples[i].S)
		for k := i; k < j; k++ {
			w.WritePredicate(triples[k].P, triples[k].O, k == j-1)
		}
		w.WriteBlank()
		i = j
	}
}

// WriteSubject starts a new subject block.
func (w *TurtleWriter) WriteSubject(s rdf.Term) {
	w.sb.WriteString(w.term(s) + "\n")
}

// WritePredicate writes a predicate-object pair.
func (w *TurtleWriter) WritePredicate(p, o rdf.Term, last bool) {
	terminator := " ;"
	if last {
		terminator = " ."
	}
	predicate := w.term(p)
	if p.Value == owl.RDFType {
		predicate = "a"
	}
	w.sb.WriteString(fmt.Sprintf("    %s %s%s\n", predicate, w.term(o), terminator))
}

// WriteBlank writes a blank line for readability.
func (w *TurtleWriter) WriteBlank() {
	w.sb.WriteString("\n")
}

// String returns the accumulated Turtle output.
func (w *TurtleWriter) String() string {
	return w.sb.String()
}

func (w *TurtleWriter) term(t rdf.Term) string {
	switch {
	case t.IsIRI():
		if c, ok := compactIRI(w.prefixes, t.Value); ok {
			return c
		}
		return "<" + t.Value + ">"
	case t.IsLiteral():
		s := `"` + escapeString(t.Value) + `"`
		if t.Lang != "" {
			return s + "@" + t.Lang
		}
		if t.Datatype == "" || t.Datatype == owl.XSDString {
			return s
		}
		if c, ok := compactIRI(w.prefixes, t.Datatype); ok {
			return s + "^^" + c
		}
		return s + "^^<" + t.Datatype + ">"
	default:
		return t.String()
	}
}

// JSONLDDocument represents a JSON-LD document structure.
type JSONLDDocument struct {
	Context map[string]any `json:"@context"`
	Graph   []JSONLDNode   `json:"@graph"`
}

// JSONLDNode represents a node in a JSON-LD graph.
type JSONLDNode struct {
	ID         string         `json:"@id"`
	Type       []string       `json:"@type,omitempty"`
	Properties map[string]any `json:"-"`
}

// MarshalJSON implements custom JSON marshaling for JSONLDNode.
func (n JSONLDNode) MarshalJSON() ([]byte, error) {
	// Create a map with all fields
	m := make(map[string]any)
	m["@id"] = n.ID
	if len(n.Type) > 0 {
		m["@type"] = n.Type
	}
	for k, v := range n.Properties {
		m[k] = v
	}
	return json.Marshal(m)
}

// JSONLDWriter writes RDF in JSON-LD format.
type JSONLDWriter struct {
	doc   JSONLDDocument
	index map[rdf.Term]int
}

// NewJSONLDWriter creates a new JSON-LD writer.
func NewJSONLDWriter() *JSONLDWriter {
	return &JSONLDWriter{
		doc: JSONLDDocument{
			Context: make(map[string]any),
			Graph:   make([]JSONLDNode, 0),
		},
		index: make(map[rdf.Term]int),
	}
}

// SetContext sets the @context with prefixes.
func (w *JSONLDWriter) SetContext(prefixes map[string]string) {
	for k, v := range prefixes {
		w.doc.Context[k] = v
	}
}

// AddTriples adds statements, grouping them into one node per subject.
func (w *JSONLDWriter) AddTriples(triples []rdf.Triple) {
	for _, t := range triples {
		n := w.node(t.S)
		if t.P.Value == owl.RDFType && t.O.IsIRI() {
			n.Type = append(n.Type, w.compact(t.O.Value))
			continue
		}
		key := w.compact(t.P.Value)
		v := w.value(t.O)
		switch prev := n.Properties[key].(type) {
		case nil:
			n.Properties[key] = v
		case []any:
			n.Properties[key] = append(prev, v)
		default:
			n.Properties[key] = []any{prev, v}
		}
	}
}

func (w *JSONLDWriter) node(s rdf.Term) *JSONLDNode {
	if i, ok := w.index[s]; ok {
		return &w.doc.Graph[i]
	}
	id := s.Value
	if s.IsBlank() {
		id = "_:" + s.Value
	} else {
		id = w.compact(id)
	}
	w.index[s] = len(w.doc.Graph)
	w.doc.Graph = append(w.doc.Graph, JSONLDNode{ID: id, Properties: make(map[string]any)})
	return &w.doc.Graph[len(w.doc.Graph)-1]
}

func (w *JSONLDWriter) compact(iri string) string {
	prefixes := make(map[string]string, len(w.doc.Context))
	for k, v := range w.doc.Context {
		if ns, ok := v.(string); ok {
			prefixes[k] = ns
		}
	}
	if c, ok := compactIRI(prefixes, iri); ok {
		return c
	}
	return iri
}

func (w *JSONLDWriter) value(o rdf.Term) any {
	switch {
	case o.IsIRI():
		return map[string]any{"@id": w.compact(o.Value)}
	case o.IsBlank():
		return map[string]any{"@id": "_:" + o.Value}
	case o.Lang != "":
		return map[string]any{"@value": o.Value, "@language": o.Lang}
	case o.Datatype == "" || o.Datatype == owl.XSDString:
		return o.Value
	default:
		return map[string]any{"@value": o.Value, "@type": w.compact(o.Datatype)}
	}
}

// Document returns the accumulated document.
func (w *JSONLDWriter) Document() *JSONLDDocument {
	return &w.doc
}

// Marshal returns the indented JSON-LD output.
func (w *JSONLDWriter) Marshal() ([]byte, error) {
	return json.MarshalIndent(w.doc, "", "  ")
}

// String returns the JSON-LD output.
func (w *JSONLDWriter) String() string {
	data, err := w.Marshal()
	if err != nil {
		return "{}"
	}
	return string(data)
}

// ExpandJSONLD parses a JSON-LD document produced by JSONLDWriter.
func ExpandJSONLD(jsonStr string) (*JSONLDDocument, error) {
	var doc JSONLDDocument
	if err := json.Unmarshal([]byte(jsonStr), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
