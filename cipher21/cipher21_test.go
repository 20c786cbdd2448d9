package cipher21

import (
	"crypto/rand"
	"testing"

	"github.com/ksurdacki/cipher21/streamkey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKey(t *testing.T) *streamkey.Key {
	t.Helper()
	b := make([]byte, streamkey.KeyLength)
	_, err := rand.Read(b)
	require.NoError(t, err)
	k, err := streamkey.FromBytes(b)
	require.NoError(t, err)
	return k
}

// encryptAll drives an Encrypter over the whole of plaintext in a single
// pass and returns the complete stream.
func encryptAll(t *testing.T, key *streamkey.Key, plaintext []byte) []byte {
	t.Helper()
	e := NewEncrypter(key)
	header, err := e.Initialize(nil)
	require.NoError(t, err)

	body, err := e.ProcessChunk(nil, plaintext)
	require.NoError(t, err)

	trailer, err := e.Finalize()
	require.NoError(t, err)

	out := append([]byte{}, header...)
	out = append(out, body...)
	out = append(out, trailer...)
	return out
}

// decryptAll drives a Decrypter over the whole of ciphertext in a single
// pass (not exercising the streaming chunk boundary) and returns the
// recovered plaintext.
func decryptAll(t *testing.T, key *streamkey.Key, ciphertext []byte) ([]byte, error) {
	t.Helper()
	d := NewDecrypter(key)
	require.GreaterOrEqual(t, len(ciphertext), HeaderLength+FooterLength)

	if err := d.Initialize(ciphertext[:HeaderLength]); err != nil {
		return nil, err
	}

	// Withhold enough for the largest padding plus the footer, so Finalize
	// always sees the whole padding||padding-length||tag trailer.
	rest := ciphertext[HeaderLength:]
	withheld := min(len(rest), FooterLength+M-1)
	trailing := rest[len(rest)-withheld:]
	middle := rest[:len(rest)-withheld]

	plaintext, err := d.ProcessChunk(nil, middle)
	if err != nil {
		return nil, err
	}

	tail, err := d.Finalize(trailing)
	if err != nil {
		return nil, err
	}

	return append(plaintext, tail...), nil
}

func TestRoundTrip(t *testing.T) {
	key := newTestKey(t)

	for _, n := range []int{0, 1, 23, 24, 63, 64, 65, 87, 88, 1<<16 - 41, 1 << 16, 1<<16 + 1} {
		plaintext := make([]byte, n)
		_, err := rand.Read(plaintext)
		require.NoError(t, err)

		stream := encryptAll(t, key, plaintext)
		assert.Zero(t, len(stream)%M, "n=%d", n)
		assert.GreaterOrEqual(t, len(stream)-n, 41, "n=%d", n)
		assert.LessOrEqual(t, len(stream)-n, 104, "n=%d", n)

		recovered, err := decryptAll(t, key, stream)
		require.NoError(t, err, "n=%d", n)
		assert.Equal(t, plaintext, recovered, "n=%d", n)
	}
}

func TestConcreteEndToEndScenarios(t *testing.T) {
	key := newTestKey(t)

	t.Run("empty input", func(t *testing.T) {
		stream := encryptAll(t, key, nil)
		assert.Len(t, stream, 64)
		recovered, err := decryptAll(t, key, stream)
		require.NoError(t, err)
		assert.Empty(t, recovered)
	})

	t.Run("single zero octet", func(t *testing.T) {
		stream := encryptAll(t, key, []byte{0x00})
		assert.Len(t, stream, 64)
		recovered, err := decryptAll(t, key, stream)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x00}, recovered)
	})

	t.Run("23 octets pads to 0", func(t *testing.T) {
		plaintext := make([]byte, 23)
		stream := encryptAll(t, key, plaintext)
		assert.Len(t, stream, 64)
	})

	t.Run("24 octets pads to 63", func(t *testing.T) {
		plaintext := make([]byte, 24)
		stream := encryptAll(t, key, plaintext)
		assert.Len(t, stream, 128)
	})

	t.Run("single bit flip at start of payload causes AuthenticationError", func(t *testing.T) {
		plaintext := make([]byte, 100)
		_, err := rand.Read(plaintext)
		require.NoError(t, err)
		stream := encryptAll(t, key, plaintext)

		offset := HeaderLength
		tampered := append([]byte{}, stream...)
		tampered[offset] ^= 0x01

		_, err = decryptAll(t, key, tampered)
		assert.Error(t, err)
		assert.IsType(t, AuthenticationError{}, err)
		assert.Contains(t, err.Error(), "MAC check failed")
	})

	t.Run("wrong key fails authentication", func(t *testing.T) {
		plaintext := make([]byte, 10)
		stream := encryptAll(t, key, plaintext)

		other := newTestKey(t)
		_, err := decryptAll(t, other, stream)
		assert.Error(t, err)
		assert.IsType(t, AuthenticationError{}, err)
	})
}

func TestHeaderTamperDetection(t *testing.T) {
	key := newTestKey(t)
	plaintext := make([]byte, 40)
	stream := encryptAll(t, key, plaintext)

	t.Run("signature flip causes FormatError", func(t *testing.T) {
		tampered := append([]byte{}, stream...)
		tampered[0] ^= 0x01
		_, err := decryptAll(t, key, tampered)
		assert.Error(t, err)
		assert.IsType(t, FormatError{}, err)
	})

	t.Run("nonce flip causes AuthenticationError", func(t *testing.T) {
		tampered := append([]byte{}, stream...)
		tampered[NonceOffset] ^= 0x01
		_, err := decryptAll(t, key, tampered)
		assert.Error(t, err)
		assert.IsType(t, AuthenticationError{}, err)
	})

	t.Run("encrypted timestamp flip causes AuthenticationError", func(t *testing.T) {
		tampered := append([]byte{}, stream...)
		tampered[TimestampOffset] ^= 0x01
		_, err := decryptAll(t, key, tampered)
		assert.Error(t, err)
		assert.IsType(t, AuthenticationError{}, err)
	})
}

func TestInitializeRejectsShortHeader(t *testing.T) {
	key := newTestKey(t)
	d := NewDecrypter(key)
	err := d.Initialize(make([]byte, HeaderLength-1))
	assert.Error(t, err)
	assert.IsType(t, FormatError{}, err)
}

func TestStateMachineOrdering(t *testing.T) {
	key := newTestKey(t)

	t.Run("encrypter rejects double initialize", func(t *testing.T) {
		e := NewEncrypter(key)
		_, err := e.Initialize(nil)
		require.NoError(t, err)
		_, err = e.Initialize(nil)
		assert.Error(t, err)
		assert.IsType(t, StateError{}, err)
	})

	t.Run("encrypter rejects process before initialize", func(t *testing.T) {
		e := NewEncrypter(key)
		_, err := e.ProcessChunk(nil, []byte("x"))
		assert.Error(t, err)
		assert.IsType(t, StateError{}, err)
	})

	t.Run("decrypter rejects finalize before initialize", func(t *testing.T) {
		d := NewDecrypter(key)
		_, err := d.Finalize(make([]byte, FooterLength))
		assert.Error(t, err)
		assert.IsType(t, StateError{}, err)
	})
}

func TestCustomNonceLengthValidation(t *testing.T) {
	key := newTestKey(t)
	e := NewEncrypter(key)
	_, err := e.Initialize(make([]byte, NonceLength-1))
	assert.Error(t, err)
	assert.IsType(t, NonceLengthError{}, err)
}
