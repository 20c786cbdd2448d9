package main

import (
	"bytes"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/ksurdacki/cipher21/cipher21"
	"github.com/ksurdacki/cipher21/streamio"
	"github.com/ksurdacki/cipher21/streamkey"
)

// selfTestError wraps a self-test failure so callers can distinguish it
// from an ordinary encrypt/decrypt error.
type selfTestError struct {
	Stage string
	Err   error
}

func (e selfTestError) Error() string {
	return fmt.Sprintf("self-test failed at %s: %v", e.Stage, e.Err)
}

func (e selfTestError) Unwrap() error { return e.Err }

// selfTest exercises two independent ChaCha20-Poly1305 code paths against
// the same fixed message: the standard library's one-shot AEAD
// (golang.org/x/crypto/chacha20poly1305, used here purely as a reference
// oracle for the platform's AEAD primitives) and this module's own
// incremental streaming construction (cipher21/aead, driven through the
// full streamio pump). A platform or build that cannot run one of these
// correctly is caught here rather than surfacing as a mysterious MAC
// failure on a user's real stream.
func selfTest() error {
	plaintext := []byte("cipher21 self-test vector")

	var key [chacha20poly1305.KeySize]byte
	if _, err := rand.Read(key[:]); err != nil {
		return selfTestError{Stage: "key generation", Err: err}
	}
	var nonce [chacha20poly1305.NonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return selfTestError{Stage: "nonce generation", Err: err}
	}

	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return selfTestError{Stage: "standard AEAD construction", Err: err}
	}
	sealed := aead.Seal(nil, nonce[:], plaintext, nil)
	opened, err := aead.Open(nil, nonce[:], sealed, nil)
	if err != nil {
		return selfTestError{Stage: "standard AEAD round trip", Err: err}
	}
	if !bytes.Equal(opened, plaintext) {
		return selfTestError{Stage: "standard AEAD round trip", Err: fmt.Errorf("recovered plaintext mismatch")}
	}

	streamKeyBytes := make([]byte, streamkey.KeyLength)
	if _, err := rand.Read(streamKeyBytes); err != nil {
		return selfTestError{Stage: "stream key generation", Err: err}
	}
	streamKey, err := streamkey.FromBytes(streamKeyBytes)
	if err != nil {
		return selfTestError{Stage: "stream key validation", Err: err}
	}
	defer streamKey.Scrub()

	var ciphertext bytes.Buffer
	if _, err := streamio.Encrypt(&ciphertext, bytes.NewReader(plaintext), cipher21.NewEncrypter(streamKey)); err != nil {
		return selfTestError{Stage: "stream encryption", Err: err}
	}

	var recovered bytes.Buffer
	if _, err := streamio.Decrypt(&recovered, bytes.NewReader(ciphertext.Bytes()), cipher21.NewDecrypter(streamKey)); err != nil {
		return selfTestError{Stage: "stream decryption", Err: err}
	}
	if !bytes.Equal(recovered.Bytes(), plaintext) {
		return selfTestError{Stage: "stream round trip", Err: fmt.Errorf("recovered plaintext mismatch")}
	}

	return nil
}
