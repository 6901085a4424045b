package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// ConfigValidator collects cross-field rule failures under one name, so a config or
// a fixture reports every problem at once.
type ConfigValidator struct {
	name   string
	errors []error
}

// NewConfigValidator creates a collector whose messages are prefixed with name
func NewConfigValidator(name string) *ConfigValidator {
	return &ConfigValidator{name: name}
}

func (cv *ConfigValidator) fail(field string, err error) {
	cv.errors = append(cv.errors, fmt.Errorf("%s.%s: %w", cv.name, field, err))
}

// Custom records the error fn returns, if any
func (cv *ConfigValidator) Custom(field string, fn func() error) *ConfigValidator {
	if err := fn(); err != nil {
		cv.fail(field, err)
	}
	return cv
}

// When applies validations only if condition holds
func (cv *ConfigValidator) When(condition bool, validations func(*ConfigValidator)) *ConfigValidator {
	if condition {
		validations(cv)
	}
	return cv
}

// Extension requires path to end in one of exts (compared case-insensitively)
func (cv *ConfigValidator) Extension(field, path string, exts ...string) *ConfigValidator {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(exts, ext) {
		cv.fail(field, fmt.Errorf("%q must have one of the extensions %s", path, strings.Join(exts, ", ")))
	}
	return cv
}

// Reference requires id to name an entry of known; kind names the entry type in
// the message
func (cv *ConfigValidator) Reference(field, kind, id string, known map[string]bool) *ConfigValidator {
	if !known[id] {
		cv.fail(field, fmt.Errorf("unknown %s %q", kind, id))
	}
	return cv
}

// Errors returns the failures recorded so far
func (cv *ConfigValidator) Errors() []error {
	return cv.errors
}

// Validate returns nil, the single failure, or all failures joined
func (cv *ConfigValidator) Validate() error {
	switch len(cv.errors) {
	case 0:
		return nil
	case 1:
		return cv.errors[0]
	}
	return fmt.Errorf("%s has %d problems: %w", cv.name, len(cv.errors), errors.Join(cv.errors...))
}

// DefaultOr returns value unless it is the zero value
func DefaultOr[T comparable](value, defaultValue T) T {
	var zero T
	if value == zero {
		return defaultValue
	}
	return value
}
