package streamkey

import "fmt"

// LengthError represents an error when key material is not exactly
// KeyLength octets long.
type LengthError struct {
	Got int
}

// Error returns a formatted error message describing the invalid length.
func (e LengthError) Error() string {
	return fmt.Sprintf("streamkey: key must be %d bytes long, got %d", KeyLength, e.Got)
}

// EntropyError represents an error when key material fails one of the two
// uniqueness heuristics: too few distinct byte values, or too few distinct
// consecutive-difference values.
type EntropyError struct {
	Reason string
}

// Error returns a formatted error message describing which heuristic failed.
func (e EntropyError) Error() string {
	return "streamkey: key has not enough " + e.Reason
}
