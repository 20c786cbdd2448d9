package cipher21

// Attributes holds the values observable after a stream has been fully
// encrypted or decrypted: the nonce, the embedded timestamp, and the
// payload/padding/tag sizing that the framing negotiated.
type Attributes struct {
	// Nonce is the 12-octet value bound into the AEAD context.
	Nonce []byte

	// StreamTimestampNs is the stream's embedded timestamp, nanoseconds
	// since the Unix epoch.
	StreamTimestampNs uint64

	// PayloadLength is the number of plaintext octets carried by the
	// stream.
	PayloadLength uint64

	// PaddingLength is the number of random padding octets inserted
	// before the padding-length field, in [0, M).
	PaddingLength int

	// Tag is the 16-octet Poly1305 authenticator.
	Tag [TagLength]byte
}
