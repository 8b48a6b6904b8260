package translate

// Config controls how statements are read as axioms.
type Config struct {
	// LoadAnnotationAxioms surfaces annotation assertions as axioms of their
	// own. When false they are only seen as annotations of declarations.
	LoadAnnotationAxioms bool

	// AllowBulkAnnotationAssertions lets an annotated annotation assertion
	// stand as an axiom instead of annotating the subject's declaration.
	AllowBulkAnnotationAssertions bool

	// IgnoreAnnotationAxiomOverlaps suppresses annotation property axioms
	// whose statement is also read as an object or data property axiom.
	IgnoreAnnotationAxiomOverlaps bool
}

// DefaultConfig returns the default read configuration.
func DefaultConfig() Config {
	return Config{
		LoadAnnotationAxioms:          true,
		AllowBulkAnnotationAssertions: true,
		IgnoreAnnotationAxiomOverlaps: true,
	}
}
