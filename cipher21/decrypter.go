package cipher21

import (
	"bytes"
	"encoding/binary"

	"github.com/ksurdacki/cipher21/cipher21/aead"
	"github.com/ksurdacki/cipher21/secretbuf"
	"github.com/ksurdacki/cipher21/streamkey"
)

type decrypterState int

const (
	decrypterFresh decrypterState = iota
	decrypterHeaderParsed
	decrypterStreaming
	decrypterFinal
)

// Decrypter is the FRESH → HEADER_PARSED → STREAMING → FINAL state machine
// that authenticates and recovers a Cipher21 stream. Call Initialize once
// with the HeaderLength-octet header, ProcessChunk any number of times for
// the interior ciphertext, and Finalize exactly once with the trailing
// ≥FooterLength octets.
type Decrypter struct {
	key   *streamkey.Key
	cell  *aead.Cipher
	state decrypterState

	Attributes Attributes
}

// NewDecrypter returns a Decrypter bound to key. key must outlive the
// Decrypter; the Decrypter does not take ownership of it.
func NewDecrypter(key *streamkey.Key) *Decrypter {
	return &Decrypter{key: key}
}

// Initialize parses header, constructs the AEAD context, and decrypts the
// embedded timestamp. header must be exactly HeaderLength octets and must
// start with StreamSignature.
func (d *Decrypter) Initialize(header []byte) error {
	if d.state != decrypterFresh {
		return StateError{Op: "Initialize"}
	}
	if len(header) != HeaderLength {
		return FormatError{Reason: "not enough data for header"}
	}
	if !bytes.Equal(header[SignatureOffset:NonceOffset], StreamSignature) {
		return FormatError{Reason: "unrecognized header"}
	}

	nonce := make([]byte, NonceLength)
	copy(nonce, header[NonceOffset:TimestampOffset])

	cell, err := aead.New(d.key.Bytes(), nonce)
	if err != nil {
		return err
	}

	var plainTimestamp [TimestampLength]byte
	cell.Decrypt(plainTimestamp[:], header[TimestampOffset:HeaderLength])

	d.Attributes = Attributes{Nonce: nonce}
	d.Attributes.StreamTimestampNs = binary.LittleEndian.Uint64(plainTimestamp[:])

	d.cell = cell
	d.state = decrypterHeaderParsed
	return nil
}

// ProcessChunk decrypts chunk into dst (which may alias chunk, or be nil to
// allocate a fresh buffer) and returns it. An empty chunk is a legal
// no-op. The returned bytes are released to the caller before the stream's
// tag has been checked; callers MUST withhold at least the last
// FooterLength+M-1 octets of the stream (enough for the largest padding as
// well as the padding-length field and tag) from ProcessChunk and pass them
// to Finalize instead, so that the padding and the integrity-sensitive
// padding-length field are never released before verification and Finalize
// can strip the padding.
func (d *Decrypter) ProcessChunk(dst, chunk []byte) ([]byte, error) {
	if d.state != decrypterHeaderParsed && d.state != decrypterStreaming {
		return nil, StateError{Op: "ProcessChunk"}
	}
	d.state = decrypterStreaming

	if len(chunk) == 0 {
		return dst[:0], nil
	}
	if dst == nil {
		dst = make([]byte, len(chunk))
	}

	d.cell.Decrypt(dst, chunk)
	d.Attributes.PayloadLength += uint64(len(chunk))
	return dst, nil
}

// Finalize verifies the stream's authentication tag and, only once that
// verification has succeeded, returns the trailing plaintext octets.
// trailing must hold at least FooterLength octets: the final segment of
// payload+padding ciphertext followed by the 1-octet encrypted
// padding-length field and the 16-octet tag.
func (d *Decrypter) Finalize(trailing []byte) ([]byte, error) {
	if d.state != decrypterHeaderParsed && d.state != decrypterStreaming {
		return nil, StateError{Op: "Finalize"}
	}
	if len(trailing) < FooterLength {
		return nil, FormatError{Reason: "final chunk too small"}
	}

	candidateTag := trailing[len(trailing)-TagLength:]
	body := trailing[:len(trailing)-TagLength]

	scratch := make([]byte, len(body))
	d.cell.Decrypt(scratch, body)

	if !d.cell.Verify(candidateTag) {
		secretbuf.Scrub(scratch)
		d.state = decrypterFinal
		return nil, AuthenticationError{}
	}

	paddingLength := int(scratch[len(scratch)-1])
	if paddingLength >= M {
		secretbuf.Scrub(scratch)
		d.state = decrypterFinal
		return nil, PaddingError{Got: paddingLength}
	}

	payloadTailLength := len(scratch) - PaddingLengthFieldLength - paddingLength
	if payloadTailLength < 0 {
		secretbuf.Scrub(scratch)
		d.state = decrypterFinal
		return nil, FormatError{Reason: "final chunk too small"}
	}

	d.Attributes.PayloadLength += uint64(payloadTailLength)
	d.Attributes.PaddingLength = paddingLength
	copy(d.Attributes.Tag[:], candidateTag)

	d.cell = nil
	d.state = decrypterFinal
	return scratch[:payloadTailLength], nil
}
