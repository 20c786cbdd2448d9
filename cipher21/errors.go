package cipher21

import "fmt"

// FormatError represents an error when a stream's framing does not match
// the Cipher21 wire format: an unrecognized header signature, not enough
// octets to hold a header, or a final segment shorter than FooterLength.
type FormatError struct {
	Reason string
}

// Error returns a formatted error message describing the framing defect.
func (e FormatError) Error() string {
	return "cipher21: " + e.Reason
}

// AuthenticationError represents a failed Poly1305 tag verification. No
// plaintext from the final segment is released when this error occurs.
type AuthenticationError struct{}

// Error returns the fixed user-visible authentication failure message.
func (e AuthenticationError) Error() string {
	return "MAC check failed"
}

// PaddingError represents a decrypted padding-length field that is out of
// range (≥ M).
type PaddingError struct {
	Got int
}

// Error returns a formatted error message describing the invalid padding
// length.
func (e PaddingError) Error() string {
	return fmt.Sprintf("Invalid padding (length %d)", e.Got)
}

// NonceLengthError represents an error when a caller-supplied nonce is not
// exactly NonceLength octets.
type NonceLengthError struct {
	Got int
}

// Error returns a formatted error message describing the invalid nonce
// length.
func (e NonceLengthError) Error() string {
	return fmt.Sprintf("cipher21: nonce must be %d bytes long, got %d", NonceLength, e.Got)
}

// StateError represents a call made to an Encrypter or Decrypter while it
// is not in the state that operation requires.
type StateError struct {
	Op string
}

// Error returns a formatted error message describing the offending call.
func (e StateError) Error() string {
	return fmt.Sprintf("cipher21: %s called out of order", e.Op)
}
