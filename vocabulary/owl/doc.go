// Package owl provides the RDF, RDFS, OWL 2 and XSD vocabulary used to encode
// ontologies as statements.
//
// The IRI constants are what the statement layer works with. The dotted
// predicate names registered in init() expose the same terms through the
// semstreams vocabulary registry so tooling can look up descriptions and
// standard IRIs:
//
//	import _ "github.com/c360studio/semontology/vocabulary/owl"
//
//	meta := vocabulary.GetPredicateMetadata(owl.PredicateSubClassOf)
//	fmt.Println(meta.StandardIRI) // http://www.w3.org/2000/01/rdf-schema#subClassOf
package owl
