package export

import (
	"errors"
	"fmt"
)

// ErrWrite marks failures creating or writing an output file
var ErrWrite = errors.New("export write failed")

// Error reports the output path an export step failed on
type Error struct {
	Op    string
	Path  string
	Query string
	Cause error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("export %s %s", e.Op, e.Path)
	if e.Query != "" {
		msg += fmt.Sprintf(" (query %s)", e.Query)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Op == "query" {
		return []error{e.Cause}
	}
	return []error{ErrWrite, e.Cause}
}

// IsWrite returns true if err is an output failure
func IsWrite(err error) bool {
	return errors.Is(err, ErrWrite)
}
