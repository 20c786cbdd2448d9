// Package streamkey implements the 32-byte stream key: entropy-checked
// construction, exclusive ownership of its buffer, and a scrub-on-release
// lifecycle.
package streamkey

import (
	"io"

	"github.com/ksurdacki/cipher21/secretbuf"
)

// KeyLength is the required length, in octets, of stream key material.
const KeyLength = 32

// minUniqueBytes is the minimum number of distinct byte values a key (or
// its consecutive-difference sequence) must exhibit: floor(2*32/3).
const minUniqueBytes = 2 * KeyLength / 3

// readBufferCap bounds the scratch buffer used when reading key material
// from a file or file descriptor, so a malformed or oversized source is
// rejected by a length check instead of growing the buffer unboundedly.
const readBufferCap = 4 * KeyLength

// Key holds 32 bytes of validated secret key material. It is constructed
// only through the From* factories, which validate the candidate bytes and
// scrub every intermediate buffer they allocate before returning, success
// or failure. The zero Key is not usable; callers must use a factory.
type Key struct {
	bytes []byte
}

// FromBytes constructs a Key by copying b. The caller retains ownership of
// b; Key never aliases it.
func FromBytes(b []byte) (*Key, error) {
	owned := make([]byte, len(b))
	copy(owned, b)
	return newKey(owned)
}

// FromHexBytes constructs a Key by hex-decoding h (tolerating
// secretbuf.DefaultSeparators between digits).
func FromHexBytes(h []byte) (*Key, error) {
	decoded, err := secretbuf.Unhex(h)
	if err != nil {
		return nil, err
	}
	return newKey(decoded)
}

// FromReader constructs a Key from the raw bytes read from r, which is
// read to completion (or to readBufferCap, whichever comes first).
func FromReader(r io.Reader) (*Key, error) {
	raw, err := readAll(r)
	if err != nil {
		return nil, err
	}
	return newKey(raw)
}

// FromHexReader constructs a Key by hex-decoding the bytes read from r.
func FromHexReader(r io.Reader) (*Key, error) {
	raw, err := readAll(r)
	if err != nil {
		return nil, err
	}
	defer secretbuf.Scrub(raw)

	decoded, err := secretbuf.Unhex(raw)
	if err != nil {
		return nil, err
	}
	return newKey(decoded)
}

// readAll reads up to readBufferCap bytes from r into a freshly allocated
// buffer sized to exactly what was read. The oversized scratch buffer is
// scrubbed on every exit path.
func readAll(r io.Reader) (result []byte, err error) {
	scratch := make([]byte, readBufferCap)
	defer secretbuf.Scrub(scratch)

	n, err := io.ReadFull(r, scratch)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}

	result = make([]byte, n)
	copy(result, scratch[:n])
	return result, nil
}

// newKey takes ownership of data, validates it, and returns the Key. On
// validation failure data is scrubbed before the error is returned.
func newKey(data []byte) (*Key, error) {
	k := &Key{bytes: data}
	if err := k.assess(); err != nil {
		k.Scrub()
		return nil, err
	}
	return k, nil
}

// assess runs the entropy heuristics a Key must satisfy: exact length,
// byte-value uniqueness, and uniqueness of consecutive differences.
func (k *Key) assess() error {
	if len(k.bytes) != KeyLength {
		return LengthError{Got: len(k.bytes)}
	}
	if secretbuf.CountUniqueBytes(k.bytes) < minUniqueBytes {
		return EntropyError{Reason: "unique bytes"}
	}

	derivative := secretbuf.Differentiate(k.bytes)
	unique := secretbuf.CountUniqueBytes(derivative)
	secretbuf.Scrub(derivative)
	if unique < minUniqueBytes {
		return EntropyError{Reason: "unique differences between consecutive bytes"}
	}
	return nil
}

// Bytes returns the key's underlying buffer. Callers must not retain or
// mutate it beyond the Key's lifetime.
func (k *Key) Bytes() []byte {
	return k.bytes
}

// Scrub overwrites the key's buffer in place. A scrubbed Key must not be
// used again.
func (k *Key) Scrub() {
	secretbuf.Scrub(k.bytes)
}

// Close scrubs the key's buffer. It implements io.Closer so a Key can be
// used with defer k.Close().
func (k *Key) Close() error {
	k.Scrub()
	return nil
}
