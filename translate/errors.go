package translate

import (
	"fmt"

	"github.com/c360studio/semstreams/pkg/retry"

	"github.com/c360studio/semontology/rdf"
)

// UnsupportedConstructError reports a statement shape a translator claims
// but cannot map to any known construct.
type UnsupportedConstructError struct {
	Node   rdf.Term
	Reason string
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("unsupported construct at %s: %s", e.Node, e.Reason)
}

// RecursiveDefinitionError reports an expression or annotation that
// contains itself.
type RecursiveDefinitionError struct {
	Node rdf.Term
}

func (e *RecursiveDefinitionError) Error() string {
	return fmt.Sprintf("recursive definition at %s", e.Node)
}

// Both errors signal a malformed graph and are never retried.

func unsupported(node rdf.Term, format string, args ...any) error {
	return retry.NonRetryable(&UnsupportedConstructError{Node: node, Reason: fmt.Sprintf(format, args...)})
}

func recursive(node rdf.Term) error {
	return retry.NonRetryable(&RecursiveDefinitionError{Node: node})
}
