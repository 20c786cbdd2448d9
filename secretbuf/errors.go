package secretbuf

import "fmt"

// OddDigitCountError represents an error when a hex-encoded buffer holds an
// odd number of hexadecimal digits once separator bytes are discounted.
type OddDigitCountError struct{}

// Error returns a formatted error message describing the odd digit count.
func (e OddDigitCountError) Error() string {
	return "secretbuf: odd number of hexadecimal digits"
}

// InvalidHexByteError represents an error when a byte that is neither a
// hexadecimal digit nor a tolerated separator appears in the input.
type InvalidHexByteError struct {
	Pos   int
	Value byte
}

// Error returns a formatted error message describing the invalid byte and
// its position in the input.
func (e InvalidHexByteError) Error() string {
	return fmt.Sprintf("secretbuf: invalid hexadecimal symbol 0x%02x at byte %d", e.Value, e.Pos)
}
