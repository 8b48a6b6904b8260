package rdf

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a document syntax.
type Format int

const (
	FormatUnknown Format = iota
	FormatNTriples
	FormatTurtle
	FormatJSONLD
	FormatRDFXML
	// FormatAxiomYAML is the axiom-centric YAML document read by the
	// secondary reader.
	FormatAxiomYAML
)

var formatNames = map[Format]string{
	FormatUnknown:   "unknown",
	FormatNTriples:  "ntriples",
	FormatTurtle:    "turtle",
	FormatJSONLD:    "jsonld",
	FormatRDFXML:    "rdfxml",
	FormatAxiomYAML: "axiom-yaml",
}

var formatExtensions = map[string]Format{
	".nt":       FormatNTriples,
	".ntriples": FormatNTriples,
	".ttl":      FormatTurtle,
	".jsonld":   FormatJSONLD,
	".owl":      FormatRDFXML,
	".rdf":      FormatRDFXML,
	".xml":      FormatRDFXML,
	".yaml":     FormatAxiomYAML,
	".yml":      FormatAxiomYAML,
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// ParseFormat parses a format name as produced by String.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range formatNames {
		if n == name && f != FormatUnknown {
			return f, nil
		}
	}
	return FormatUnknown, fmt.Errorf("unknown format %q", name)
}

// FormatForPath guesses the format of a document from its extension.
func FormatForPath(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formatExtensions[ext]; ok {
		return f
	}
	return FormatUnknown
}
