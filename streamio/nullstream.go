// Package streamio implements the Cipher21 streaming driver: the
// two-buffer read-ahead pump that feeds plaintext or ciphertext through an
// Encrypter/Decrypter while guaranteeing the decrypter's finalizer always
// sees the trailer in one contiguous segment, plus a null sink for
// verification-only runs.
package streamio

import "io"

// NullStream is a write-accepts-all / read-returns-empty stream used when
// the caller wants verification-only mode: every Write reports the full
// length consumed, every Read reports zero octets without error.
type NullStream struct{}

// Read always reports zero octets read and a nil error.
func (NullStream) Read(p []byte) (int, error) {
	return 0, nil
}

// Write reports the full length of p as consumed without copying it
// anywhere.
func (NullStream) Write(p []byte) (int, error) {
	return len(p), nil
}

// Close is a no-op; NullStream owns no resources.
func (NullStream) Close() error {
	return nil
}

var _ io.ReadWriteCloser = NullStream{}
