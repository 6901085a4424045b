package storage

import (
	"errors"
	"fmt"

	"github.com/dd0wney/assembly-kg/pkg/rdf"
)

// Common sentinel errors
var (
	ErrInvalidTriple = errors.New("invalid triple")
	ErrReadOnly      = errors.New("store is read-only")
)

// StorageError provides structured error information for store operations.
type StorageError struct {
	Op       string // Operation that failed (e.g. "add")
	Triple   string // Offending triple in N-Triples form, if any
	Position string // "subject", "predicate" or "object" for malformed triples
	Cause    error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	switch {
	case e.Triple != "" && e.Position != "":
		return fmt.Sprintf("%s triple %s (bad %s): %v", e.Op, e.Triple, e.Position, e.Cause)
	case e.Triple != "":
		return fmt.Sprintf("%s triple %s: %v", e.Op, e.Triple, e.Cause)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// ErrorBuilder provides a fluent interface for building StorageErrors.
type ErrorBuilder struct {
	err StorageError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: StorageError{Op: op}}
}

// Triple records the offending triple.
func (b *ErrorBuilder) Triple(t rdf.Triple) *ErrorBuilder {
	b.err.Triple = t.S.NTriples() + " " + t.P.NTriples() + " " + t.O.NTriples()
	return b
}

// Position records which part of the triple was malformed.
func (b *ErrorBuilder) Position(pos string) *ErrorBuilder {
	b.err.Position = pos
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Build returns the constructed StorageError.
func (b *ErrorBuilder) Build() *StorageError {
	return &b.err
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// IsInvalid returns true if the error reports a malformed triple.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidTriple)
}

// IsReadOnly returns true if the error reports a write to a frozen store.
func IsReadOnly(err error) bool {
	return errors.Is(err, ErrReadOnly)
}
