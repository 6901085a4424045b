package query

import "time"

const (
	// DefaultQueryTimeout bounds a single catalog query when none is configured
	DefaultQueryTimeout = 30 * time.Second

	// MaxQueryTimeout is the largest timeout a caller may request
	MaxQueryTimeout = 10 * time.Minute
)

// ValidateQueryTimeout maps a configured timeout onto (0, MaxQueryTimeout]: zero or
// negative means DefaultQueryTimeout and larger values are clamped.
func ValidateQueryTimeout(timeout time.Duration) time.Duration {
	switch {
	case timeout <= 0:
		return DefaultQueryTimeout
	case timeout > MaxQueryTimeout:
		return MaxQueryTimeout
	default:
		return timeout
	}
}
