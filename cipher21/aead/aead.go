// Package aead implements an incremental construction of
// AEAD_CHACHA20_POLY1305 (RFC 8439) without associated data: the Poly1305
// tag is accumulated across any number of Encrypt/Decrypt calls instead of
// being computed in one shot over a fully buffered message, which the
// standard library's chacha20poly1305.Seal/Open do not support.
package aead

import (
	"crypto/subtle"
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/poly1305"
)

// KeySize is the required key length in octets.
const KeySize = chacha20.KeySize

// NonceSize is the required nonce length in octets.
const NonceSize = chacha20.NonceSize

// TagSize is the length, in octets, of the authenticator produced by Seal.
const TagSize = poly1305.TagSize

// blockSize is the Poly1305 padding granularity: the ciphertext is padded
// with zeroes to a multiple of this many octets before the length trailer
// is written into the MAC, per RFC 8439 §2.8.
const blockSize = 16

// Cipher is one direction of a single AEAD_CHACHA20_POLY1305 stream. It is
// not safe for concurrent use, and must not be reused once Seal or Verify
// has been called.
type Cipher struct {
	stream        *chacha20.Cipher
	mac           *poly1305.MAC
	ciphertextLen uint64
}

// New derives the Poly1305 one-time key from the ChaCha20 keystream's first
// block (discarding the rest of that block per RFC 8439 §2.6) and returns a
// Cipher ready to encrypt or decrypt starting at keystream block 1.
func New(key, nonce []byte) (*Cipher, error) {
	stream, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, err
	}

	var block0 [64]byte
	stream.XORKeyStream(block0[:], block0[:])

	mac := poly1305.New((*[32]byte)(block0[:32]))

	return &Cipher{stream: stream, mac: mac}, nil
}

// Encrypt XORs src with the keystream into dst (which may alias src) and
// feeds the resulting ciphertext into the running MAC. dst and src must
// have equal length.
func (c *Cipher) Encrypt(dst, src []byte) {
	c.stream.XORKeyStream(dst, src)
	c.mac.Write(dst)
	c.ciphertextLen += uint64(len(dst))
}

// Decrypt feeds src into the running MAC as ciphertext and then XORs it
// with the keystream into dst (which may alias src). dst and src must have
// equal length. Decrypt does not verify the tag; call Verify once the
// entire stream's ciphertext has been fed through Decrypt.
func (c *Cipher) Decrypt(dst, src []byte) {
	c.mac.Write(src)
	c.ciphertextLen += uint64(len(src))
	c.stream.XORKeyStream(dst, src)
}

// finalize writes the RFC 8439 length trailer (zero AAD length, then the
// accumulated ciphertext length, both as little-endian 8-byte words,
// preceded by the zero padding that aligns the ciphertext to blockSize) and
// returns the resulting tag. It consumes the Cipher; no further
// Encrypt/Decrypt calls are valid afterward.
func (c *Cipher) finalize() [TagSize]byte {
	if pad := c.ciphertextLen % blockSize; pad != 0 {
		var zero [blockSize]byte
		c.mac.Write(zero[:blockSize-pad])
	}

	var lengths [16]byte
	binary.LittleEndian.PutUint64(lengths[:8], 0)
	binary.LittleEndian.PutUint64(lengths[8:], c.ciphertextLen)
	c.mac.Write(lengths[:])

	var tag [TagSize]byte
	c.mac.Sum(tag[:0])
	return tag
}

// Seal finalizes the stream and returns its authenticator tag.
func (c *Cipher) Seal() [TagSize]byte {
	return c.finalize()
}

// Verify finalizes the stream and reports whether tag matches the
// accumulated authenticator, in constant time.
func (c *Cipher) Verify(tag []byte) bool {
	computed := c.finalize()
	return subtle.ConstantTimeCompare(computed[:], tag) == 1
}
