package keysource

import "fmt"

// SchemeError represents an error when a --key LOCATION string has no
// recognized `scheme:value` prefix, or names a scheme this package does
// not support.
type SchemeError struct {
	Location string
	Scheme   string
}

// Error returns a formatted error message describing the bad location.
func (e SchemeError) Error() string {
	if e.Scheme == "" {
		return fmt.Sprintf("keysource: %q has no scheme; use env:, file: or fd:", e.Location)
	}
	return fmt.Sprintf("keysource: unsupported secret source scheme %q", e.Scheme)
}

// EnvVarError represents an error when the named environment variable is
// unset or empty.
type EnvVarError struct {
	Name string
}

// Error returns a formatted error message naming the missing variable.
func (e EnvVarError) Error() string {
	return fmt.Sprintf("keysource: no value under %s environment variable", e.Name)
}

// SourceError represents an error reading or decoding key material from a
// file or file descriptor. It wraps the underlying cause.
type SourceError struct {
	Location string
	Err      error
}

// Error returns a formatted error message naming the location and
// underlying cause.
func (e SourceError) Error() string {
	return fmt.Sprintf("keysource: error reading key from %s: %v", e.Location, e.Err)
}

// Unwrap allows errors.Is/errors.As to see through SourceError to its
// underlying cause.
func (e SourceError) Unwrap() error {
	return e.Err
}
