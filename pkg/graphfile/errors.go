package graphfile

import (
	"errors"
	"fmt"

	"github.com/dd0wney/assembly-kg/pkg/turtle"
)

var (
	// ErrNotFound is returned when the graph file does not exist
	ErrNotFound = errors.New("graph file not found")

	// ErrRead is returned when the graph file exists but cannot be read
	ErrRead = errors.New("cannot read graph file")

	// ErrParse is returned when the graph file content is malformed
	ErrParse = errors.New("graph file is not valid")

	// ErrWrite is returned when the graph file cannot be written
	ErrWrite = errors.New("cannot write graph file")

	// ErrUnsupported is returned for file names with an unknown extension
	ErrUnsupported = errors.New("unsupported graph file extension")
)

// Error describes a failed load or save. It always names the file.
type Error struct {
	Op     string
	Path   string
	Kind   error
	Line   int
	Column int
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Cause)
}

// Unwrap exposes both the kind and the underlying cause
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newError(op, path string, kind, cause error) *Error {
	e := &Error{Op: op, Path: path, Kind: kind, Cause: cause}

	var synErr *turtle.SyntaxError
	if errors.As(cause, &synErr) {
		e.Line = synErr.Line
		e.Column = synErr.Column
	}
	return e
}

// IsNotFound reports whether err means the graph file is missing
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsParse reports whether err means the graph file is malformed
func IsParse(err error) bool {
	return errors.Is(err, ErrParse)
}
