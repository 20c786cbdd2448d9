package streamkey

import (
	"bytes"
	"crypto/rand"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ksurdacki/cipher21/internal/iotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomKeyBytes(t *testing.T) []byte {
	t.Helper()
	b := make([]byte, KeyLength)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

func TestFromBytes(t *testing.T) {
	t.Run("accepts high-entropy key material", func(t *testing.T) {
		for i := 0; i < 64; i++ {
			k, err := FromBytes(randomKeyBytes(t))
			require.NoError(t, err)
			k.Scrub()
		}
	})

	t.Run("rejects all-zero key", func(t *testing.T) {
		_, err := FromBytes(make([]byte, KeyLength))
		assert.Error(t, err)
		assert.IsType(t, EntropyError{}, err)
	})

	t.Run("rejects ascending sequence", func(t *testing.T) {
		b := make([]byte, KeyLength)
		for i := range b {
			b[i] = byte(i)
		}
		_, err := FromBytes(b)
		assert.Error(t, err)
	})

	t.Run("rejects descending sequence", func(t *testing.T) {
		b := make([]byte, KeyLength)
		for i := range b {
			b[i] = byte(KeyLength - i)
		}
		_, err := FromBytes(b)
		assert.Error(t, err)
	})

	t.Run("rejects strided sequence with low derivative uniqueness", func(t *testing.T) {
		b := make([]byte, KeyLength)
		for i := range b {
			b[i] = byte((7 * i) % 256)
		}
		_, err := FromBytes(b)
		assert.Error(t, err)
	})

	t.Run("rejects repeated 16-byte block", func(t *testing.T) {
		half := []byte{0xe5, 0x21, 0x37, 0x78, 0x23, 0x34, 0x2e, 0x05,
			0xbd, 0x6f, 0xe0, 0x51, 0xa1, 0x2a, 0x88, 0x20}
		b := append(append([]byte{}, half...), half...)
		_, err := FromBytes(b)
		assert.Error(t, err)
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, err := FromBytes(randomKeyBytes(t)[:31])
		assert.Error(t, err)
		assert.IsType(t, LengthError{}, err)
	})

	t.Run("does not alias caller's buffer", func(t *testing.T) {
		b := randomKeyBytes(t)
		k, err := FromBytes(b)
		require.NoError(t, err)
		defer k.Scrub()
		original := append([]byte{}, k.Bytes()...)
		b[0] ^= 0xFF
		assert.Equal(t, original, k.Bytes())
	})
}

func TestFromHexBytes(t *testing.T) {
	raw := randomKeyBytes(t)
	hexed := []byte(hexString(raw))

	t.Run("decodes and validates", func(t *testing.T) {
		k, err := FromHexBytes(hexed)
		require.NoError(t, err)
		defer k.Scrub()
		assert.Equal(t, raw, k.Bytes())
	})

	t.Run("propagates decode errors", func(t *testing.T) {
		_, err := FromHexBytes([]byte("not-hex!"))
		assert.Error(t, err)
	})
}

func TestFromReader(t *testing.T) {
	raw := randomKeyBytes(t)
	path := filepath.Join(t.TempDir(), "key.bin")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	k, err := FromReader(f)
	require.NoError(t, err)
	defer k.Scrub()
	assert.Equal(t, raw, k.Bytes())
}

func TestFromHexReader(t *testing.T) {
	raw := randomKeyBytes(t)
	path := filepath.Join(t.TempDir(), "key.hex")
	require.NoError(t, os.WriteFile(path, []byte(hexString(raw)), 0o600))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	k, err := FromHexReader(f)
	require.NoError(t, err)
	defer k.Scrub()
	assert.Equal(t, raw, k.Bytes())
}

func TestFromHexReaderFragmented(t *testing.T) {
	raw := randomKeyBytes(t)
	hexed := []byte(hexString(raw))

	k, err := FromHexReader(&iotest.FragmentingReader{Data: hexed, ChunkSize: 5})
	require.NoError(t, err)
	defer k.Scrub()
	assert.Equal(t, raw, k.Bytes())
}

func TestFromReaderPropagatesError(t *testing.T) {
	wantErr := errors.New("read failed")
	_, err := FromReader(iotest.ErrorReadWriteCloser{Err: wantErr})
	assert.ErrorIs(t, err, wantErr)
}

func TestFromReaderRejectsEmpty(t *testing.T) {
	_, err := FromReader(bytes.NewReader(nil))
	assert.Error(t, err)
	assert.IsType(t, LengthError{}, err)
}

func hexString(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, 0, 2*len(b))
	for _, x := range b {
		out = append(out, digits[x>>4], digits[x&0xf])
	}
	return string(out)
}
