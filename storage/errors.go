package storage

import "errors"

// Common storage errors.
var (
	// ErrNotFound is returned when a document is not in its bucket.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidLocator is returned for strings that are not kv:// locators.
	ErrInvalidLocator = errors.New("invalid kv locator")
)
