package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotArray is returned (wrapped in a *ParseError) when the store
	// document is valid JSON but not an array.
	ErrNotArray = errors.New("document is not a JSON array")

	// ErrIDSpaceExhausted is returned by NewID when every id below the
	// limit is already taken.
	ErrIDSpaceExhausted = errors.New("id space exhausted")
)

// ParseError reports a store file whose contents could not be decoded.
type ParseError struct {
	Path     string // store file path
	Location string // location inside the document, e.g. "[2].id"
	Err      error  // underlying error
}

func (e *ParseError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("parse store %s: %s: %v", e.Path, e.Location, e.Err)
	}
	return fmt.Sprintf("parse store %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
