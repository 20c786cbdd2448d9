package cipher21

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	"github.com/ksurdacki/cipher21/cipher21/aead"
	"github.com/ksurdacki/cipher21/secretbuf"
	"github.com/ksurdacki/cipher21/streamkey"
)

type encrypterState int

const (
	encrypterFresh encrypterState = iota
	encrypterStreaming
	encrypterFinal
)

// Encrypter is the FRESH → STREAMING → FINAL state machine that produces a
// Cipher21 stream. Encrypt an entire stream by calling Initialize once,
// ProcessChunk any number of times (including zero), and Finalize exactly
// once.
type Encrypter struct {
	key   *streamkey.Key
	cell  *aead.Cipher
	state encrypterState

	Attributes Attributes
}

// NewEncrypter returns an Encrypter bound to key. key must outlive the
// Encrypter; the Encrypter does not take ownership of it.
func NewEncrypter(key *streamkey.Key) *Encrypter {
	return &Encrypter{key: key}
}

// Initialize draws a random nonce (or uses the caller-supplied one),
// records the current wall-clock time, constructs the AEAD context, and
// returns the HeaderLength-octet header: signature || nonce ||
// encrypted_timestamp. nonce, if non-nil, must be exactly NonceLength
// octets.
func (e *Encrypter) Initialize(nonce []byte) ([]byte, error) {
	if e.state != encrypterFresh {
		return nil, StateError{Op: "Initialize"}
	}

	if nonce == nil {
		nonce = make([]byte, NonceLength)
		if _, err := rand.Read(nonce); err != nil {
			return nil, err
		}
	} else if len(nonce) != NonceLength {
		return nil, NonceLengthError{Got: len(nonce)}
	}

	cell, err := aead.New(e.key.Bytes(), nonce)
	if err != nil {
		return nil, err
	}

	e.Attributes = Attributes{Nonce: nonce}
	e.Attributes.StreamTimestampNs = uint64(time.Now().UnixNano())

	header := make([]byte, HeaderLength)
	copy(header[SignatureOffset:], StreamSignature)
	copy(header[NonceOffset:], nonce)

	var plainTimestamp [TimestampLength]byte
	binary.LittleEndian.PutUint64(plainTimestamp[:], e.Attributes.StreamTimestampNs)
	cell.Encrypt(header[TimestampOffset:HeaderLength], plainTimestamp[:])

	e.cell = cell
	e.state = encrypterStreaming
	return header, nil
}

// ProcessChunk encrypts chunk into dst (which may alias chunk, or be nil to
// allocate a fresh buffer) and returns it. An empty chunk is a legal no-op.
func (e *Encrypter) ProcessChunk(dst, chunk []byte) ([]byte, error) {
	if e.state != encrypterStreaming {
		return nil, StateError{Op: "ProcessChunk"}
	}
	if len(chunk) == 0 {
		return dst[:0], nil
	}
	if dst == nil {
		dst = make([]byte, len(chunk))
	}

	e.cell.Encrypt(dst, chunk)
	e.Attributes.PayloadLength += uint64(len(chunk))
	return dst, nil
}

// Finalize computes the length-hiding padding, encrypts the
// padding||padding-length trailer, appends the authentication tag, and
// returns the full encrypted trailer. The AEAD context is discarded and
// the Encrypter transitions to FINAL.
func (e *Encrypter) Finalize() ([]byte, error) {
	if e.state != encrypterStreaming {
		return nil, StateError{Op: "Finalize"}
	}

	paddingLength := (2*M - StreamMetadataLength - int(e.Attributes.PayloadLength%M)) % M

	plain := make([]byte, paddingLength+PaddingLengthFieldLength)
	defer secretbuf.Scrub(plain)

	if paddingLength > 0 {
		if _, err := rand.Read(plain[:paddingLength]); err != nil {
			return nil, err
		}
	}
	plain[paddingLength] = byte(paddingLength)

	result := make([]byte, len(plain)+TagLength)
	e.cell.Encrypt(result[:len(plain)], plain)

	tag := e.cell.Seal()
	copy(result[len(plain):], tag[:])

	e.Attributes.PaddingLength = paddingLength
	e.Attributes.Tag = tag
	e.cell = nil
	e.state = encrypterFinal
	return result, nil
}
