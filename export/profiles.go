package export

import (
	"github.com/c360studio/semontology/ontology"
	"github.com/c360studio/semontology/rdf"
	"github.com/c360studio/semontology/vocabulary/owl"
)

// Profile determines which statements are included in the export.
type Profile string

const (
	// ProfileFull includes every statement.
	ProfileFull Profile = "full"

	// ProfileLogical drops annotation assertions and axiom annotations.
	ProfileLogical Profile = "logical"

	// ProfileDeclarations keeps only the ontology header and entity
	// declarations.
	ProfileDeclarations Profile = "declarations"
)

// ProfileConfig contains configuration for an export profile.
type ProfileConfig struct {
	// Name is the profile identifier.
	Name Profile

	// Description describes the profile.
	Description string

	// IncludeAnnotations keeps annotation assertions and reified axiom
	// annotations.
	IncludeAnnotations bool

	// IncludeLogical keeps logical axioms.
	IncludeLogical bool
}

// Profiles contains the configuration for all available export profiles.
var Profiles = map[Profile]ProfileConfig{
	ProfileFull: {
		Name:               ProfileFull,
		Description:        "All statements",
		IncludeAnnotations: true,
		IncludeLogical:     true,
	},
	ProfileLogical: {
		Name:               ProfileLogical,
		Description:        "Logical axioms and declarations without annotations",
		IncludeAnnotations: false,
		IncludeLogical:     true,
	},
	ProfileDeclarations: {
		Name:               ProfileDeclarations,
		Description:        "Ontology header and entity declarations only",
		IncludeAnnotations: false,
		IncludeLogical:     false,
	},
}

// GetProfileConfig returns the configuration for a profile.
func GetProfileConfig(profile Profile) ProfileConfig {
	if config, ok := Profiles[profile]; ok {
		return config
	}
	return Profiles[ProfileFull]
}

var headerPredicates = map[string]bool{
	owl.Imports:    true,
	owl.VersionIRI: true,
}

// filter selects the statements of g a profile keeps.
type filter struct {
	cfg         ProfileConfig
	g           rdf.Reader
	annotations map[rdf.Term]bool
	anchors     map[rdf.Term]bool
}

func newFilter(cfg ProfileConfig, g rdf.Reader) *filter {
	f := &filter{cfg: cfg, g: g, annotations: make(map[rdf.Term]bool), anchors: make(map[rdf.Term]bool)}
	if cfg.IncludeAnnotations {
		return f
	}
	for t := range g.Find(rdf.Any, rdf.IRI(owl.RDFType), rdf.IRI(owl.AnnotationProperty)) {
		f.annotations[t.S] = true
	}
	for _, typ := range []string{owl.Axiom, owl.Annotation} {
		for t := range g.Find(rdf.Any, rdf.IRI(owl.RDFType), rdf.IRI(typ)) {
			f.anchors[t.S] = true
		}
	}
	return f
}

func (f *filter) keep(t rdf.Triple) bool {
	if f.cfg.IncludeAnnotations && f.cfg.IncludeLogical {
		return true
	}
	if !f.cfg.IncludeAnnotations {
		if f.anchors[t.S] {
			return false
		}
		if t.P.IsIRI() && (owl.IsBuiltinAnnotationProperty(t.P.Value) || f.annotations[t.P]) {
			return false
		}
	}
	if f.cfg.IncludeLogical {
		return true
	}
	if t.P.Value == owl.RDFType && t.S.IsIRI() {
		if t.O.Value == owl.Ontology {
			return true
		}
		_, declared := ontology.EntityTypeForIRI(t.O.Value)
		return declared
	}
	return headerPredicates[t.P.Value]
}
