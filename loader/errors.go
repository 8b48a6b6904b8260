package loader

import (
	"errors"
	"fmt"

	"github.com/c360studio/semstreams/pkg/retry"

	"github.com/c360studio/semontology/rdf"
)

// Common load errors.
var (
	// ErrUnsupportedFormat is returned by a reader that cannot parse a
	// document. It is retryable: the fetcher may try the secondary reader.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrNoSource is returned when a locator names nothing readable.
	ErrNoSource = errors.New("no document source")
)

// FormatError reports a document a reader could not parse.
type FormatError struct {
	Locator string
	Format  rdf.Format
	Err     error
}

// UnsupportedFormat returns a FormatError for locator.
func UnsupportedFormat(locator string, format rdf.Format, err error) *FormatError {
	return &FormatError{Locator: locator, Format: format, Err: err}
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("read %s", e.Locator)
	if e.Format != rdf.FormatUnknown {
		msg += " as " + e.Format.String()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg + ": " + ErrUnsupportedFormat.Error()
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is matches ErrUnsupportedFormat.
func (e *FormatError) Is(target error) bool { return target == ErrUnsupportedFormat }

// Retryable marks a format failure as recoverable by another reader.
func (e *FormatError) Retryable() bool { return true }

// IsRetryable reports whether err carries a Retryable marker. Errors
// explicitly marked non-retryable never are.
func IsRetryable(err error) bool {
	if err == nil || retry.IsNonRetryable(err) {
		return false
	}
	var r interface{ Retryable() bool }
	return errors.As(err, &r) && r.Retryable()
}

// OntologyCreationError reports that no reader could produce a graph.
// Primary is nil when the primary reader was skipped.
type OntologyCreationError struct {
	Locator   string
	Primary   error
	Secondary error
}

func (e *OntologyCreationError) Error() string {
	if e.Primary == nil {
		return fmt.Sprintf("create ontology from %s: %v", e.Locator, e.Secondary)
	}
	return fmt.Sprintf("create ontology from %s: %v (primary reader: %v)", e.Locator, e.Secondary, e.Primary)
}

func (e *OntologyCreationError) Unwrap() []error {
	var out []error
	for _, err := range []error{e.Secondary, e.Primary} {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}

// UnresolvableImportError reports an import that could not be fetched
// under the ImportThrow policy.
type UnresolvableImportError struct {
	Ontology string
	Import   string
	Err      error
}

func (e *UnresolvableImportError) Error() string {
	return fmt.Sprintf("ontology %s: unresolvable import %s: %v", e.Ontology, e.Import, e.Err)
}

func (e *UnresolvableImportError) Unwrap() error { return e.Err }

// ConfigMismatchError reports an option the configured collaborators
// cannot honour.
type ConfigMismatchError struct {
	Option string
	Reason string
}

func (e *ConfigMismatchError) Error() string {
	return fmt.Sprintf("config mismatch: %s: %s", e.Option, e.Reason)
}

// Warning is a downgraded import failure recorded under ImportWarn.
type Warning struct {
	Ontology string
	Import   string
	Err      error
}

func (w Warning) String() string {
	return fmt.Sprintf("ontology %s: skipped import %s: %v", w.Ontology, w.Import, w.Err)
}
