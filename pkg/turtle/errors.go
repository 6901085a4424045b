package turtle

import (
	"errors"
	"fmt"
)

// ErrSyntax is wrapped by every SyntaxError
var ErrSyntax = errors.New("turtle syntax error")

// SyntaxError reports malformed input with its position
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Unwrap returns ErrSyntax so callers can match with errors.Is
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

func syntaxErrorf(line, column int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Line: line, Column: column, Msg: fmt.Sprintf(format, args...)}
}
