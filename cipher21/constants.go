// Package cipher21 implements the Cipher21 stream framing protocol: a
// header carrying a random nonce and an encrypted timestamp, an
// arbitrary-length encrypted payload, length-hiding padding, and a
// Poly1305 tag binding the whole stream. The package exposes an
// Encrypter and a Decrypter state machine; a caller pumps plaintext or
// ciphertext chunks through them (see the streamio package for the
// read-ahead driver that does that pumping correctly).
package cipher21

// StreamSignature is the 4-octet magic identifying the Cipher21 wire
// format. A header that does not start with this value is rejected before
// any AEAD context is constructed.
var StreamSignature = []byte{0x43, 0x32, 0x31, 0x01} // "C21" + format version 1

const (
	// SignatureLength is the length, in octets, of the format magic.
	SignatureLength = 4

	// NonceLength is the length, in octets, of the per-stream random nonce.
	NonceLength = 12

	// TimestampLength is the length, in octets, of the encrypted
	// little-endian stream timestamp (nanoseconds since the Unix epoch).
	TimestampLength = 8

	// PaddingLengthFieldLength is the length, in octets, of the trailing
	// encrypted field that records the padding length.
	PaddingLengthFieldLength = 1

	// TagLength is the length, in octets, of the Poly1305 authenticator.
	TagLength = 16

	// M is the block multiple that every complete stream's total length
	// must satisfy.
	M = 64

	// SignatureOffset, NonceOffset and TimestampOffset are the byte offsets
	// of the corresponding header fields.
	SignatureOffset = 0
	NonceOffset     = SignatureOffset + SignatureLength
	TimestampOffset = NonceOffset + NonceLength

	// HeaderLength is the total length, in octets, of
	// signature||nonce||encrypted_timestamp.
	HeaderLength = TimestampOffset + TimestampLength

	// StreamMetadataLength is the fixed framing overhead: signature, nonce,
	// timestamp, the 1-octet padding-length field, and the tag.
	StreamMetadataLength = HeaderLength + PaddingLengthFieldLength + TagLength

	// FooterLength is the minimum length, in octets, of the trailing
	// segment a Decrypter's Finalize requires: the 1-octet padding-length
	// field plus the tag.
	FooterLength = PaddingLengthFieldLength + TagLength
)
