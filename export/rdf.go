// Package export serializes loaded ontology graphs as Turtle, N-Triples or
// JSON-LD, filtered through an export profile.
package export

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/c360studio/semontology/rdf"
	"github.com/c360studio/semontology/vocabulary/owl"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// Exporter serializes graphs with a profile and a prefix table.
type Exporter struct {
	profile  Profile
	prefixes map[string]string
}

// NewExporter creates an exporter with the specified profile.
func NewExporter(profile Profile) *Exporter {
	return &Exporter{
		profile:  profile,
		prefixes: defaultPrefixes(),
	}
}

// defaultPrefixes returns the standard namespace prefixes for export.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":  owl.RDFNamespace,
		"rdfs": owl.RDFSNamespace,
		"owl":  owl.OWLNamespace,
		"xsd":  owl.XSDNamespace,
	}
}

// SetPrefix sets a namespace prefix.
func (e *Exporter) SetPrefix(prefix, iri string) {
	e.prefixes[prefix] = iri
}

// AddPrefixes merges prefixes, keeping existing bindings.
func (e *Exporter) AddPrefixes(prefixes map[string]string) {
	for p, ns := range prefixes {
		if _, ok := e.prefixes[p]; !ok {
			e.prefixes[p] = ns
		}
	}
}

// Prefixes returns the prefix table.
func (e *Exporter) Prefixes() map[string]string {
	return maps.Clone(e.prefixes)
}

// Triples returns the statements of g the profile keeps, sorted.
func (e *Exporter) Triples(g rdf.Reader) []rdf.Triple {
	f := newFilter(GetProfileConfig(e.profile), g)
	var out []rdf.Triple
	for t := range g.Find(rdf.Any, rdf.Any, rdf.Any) {
		if f.keep(t) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, rdf.Triple.Compare)
	return out
}

// Export serializes g to a string.
func (e *Exporter) Export(g rdf.Reader, format Format) (string, error) {
	var sb strings.Builder
	if err := e.Write(&sb, g, format); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write serializes g to w.
func (e *Exporter) Write(w io.Writer, g rdf.Reader, format Format) error {
	triples := e.Triples(g)
	switch format {
	case FormatTurtle:
		tw := NewTurtleWriter()
		for p, ns := range e.prefixes {
			tw.SetPrefix(p, ns)
		}
		tw.WriteTriples(triples)
		_, err := io.WriteString(w, tw.String())
		return err
	case FormatNTriples:
		return rdf.EncodeNTriples(w, triples)
	case FormatJSONLD:
		jw := NewJSONLDWriter()
		jw.SetContext(e.prefixes)
		jw.AddTriples(triples)
		data, err := jw.Marshal()
		if err != nil {
			return fmt.Errorf("marshal json-ld: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// compactIRI abbreviates iri with the longest matching namespace. It
// returns false when no prefix applies or the local name is not a valid
// prefixed-name local part.
func compactIRI(prefixes map[string]string, iri string) (string, bool) {
	best, bestNS := "", ""
	for p, ns := range prefixes {
		if ns != "" && strings.HasPrefix(iri, ns) && len(ns) > len(bestNS) {
			best, bestNS = p, ns
		}
	}
	if bestNS == "" {
		return "", false
	}
	local := iri[len(bestNS):]
	if !validLocal(local) {
		return "", false
	}
	return best + ":" + local, true
}

func validLocal(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		case (r == '-' || r == '.') && i > 0 && i < len(s)-1:
		default:
			return false
		}
	}
	return true
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
