package ontology

import "strings"

// ID identifies an ontology by IRI and optional version IRI. Both empty
// means the ontology is anonymous.
type ID struct {
	IRI     string
	Version string
}

// IsAnonymous reports whether neither IRI is set.
func (id ID) IsAnonymous() bool { return id.IRI == "" && id.Version == "" }

// String returns the identity key: the IRI, followed by the version IRI
// when present.
func (id ID) String() string {
	if id.Version == "" {
		return id.IRI
	}
	return id.IRI + " " + id.Version
}

// Matches reports whether iri names this ontology by IRI or version IRI.
func (id ID) Matches(iri string) bool {
	return iri != "" && (iri == id.IRI || iri == id.Version)
}

// NormalizeIRI collapses repeated slashes after a file: scheme so that
// file:/x, file://x and file:///x compare equal.
func NormalizeIRI(iri string) string {
	const scheme = "file:"
	if !strings.HasPrefix(iri, scheme) {
		return iri
	}
	rest := strings.TrimLeft(iri[len(scheme):], "/")
	return scheme + "/" + rest
}
