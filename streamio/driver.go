package streamio

import (
	"io"
	"time"

	"github.com/ksurdacki/cipher21/cipher21"
	"github.com/ksurdacki/cipher21/secretbuf"
)

// BufferSize is the streaming driver's transfer size, in octets. It must
// stay a multiple of cipher21.M and strictly greater than
// cipher21.M+cipher21.FooterLength; the reference value from the core
// contract is 2*cipher21.M, but production callers may raise it for
// throughput. Correctness does not depend on the choice.
var BufferSize = 65536

// sleepInterval is how long the driver waits before retrying a read that
// reported zero octets without signaling end-of-stream.
const sleepInterval = time.Second / 32

// fill reads from r until buf is completely full or r is exhausted. A
// zero-length, non-terminal read (n == 0, err == nil) is treated as "would
// block" and retried after sleepInterval, matching blocking I/O sources
// that signal backpressure that way.
func fill(r io.Reader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
		if n == 0 {
			time.Sleep(sleepInterval)
		}
	}
	return total, nil
}

// writeAll writes p to w in full. Go's io.Writer contract already requires
// Write to report a non-nil error on any short write, so unlike the
// read side this never needs to loop or retry; a writer that reports a
// short write without an error fails with io.ErrShortWrite.
func writeAll(w io.Writer, p []byte) error {
	n, err := w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return err
}

// Encrypt pumps the entirety of r through enc and writes the resulting
// Cipher21 stream to w, in BufferSize-sized transfers. It returns the
// stream's observable attributes on success.
func Encrypt(w io.Writer, r io.Reader, enc *cipher21.Encrypter) (cipher21.Attributes, error) {
	header, err := enc.Initialize(nil)
	if err != nil {
		return cipher21.Attributes{}, err
	}
	if err := writeAll(w, header); err != nil {
		return cipher21.Attributes{}, err
	}

	in := make([]byte, BufferSize)
	out := make([]byte, BufferSize)
	defer secretbuf.Scrub(in)
	defer secretbuf.Scrub(out)

	for {
		n, err := fill(r, in)
		if err != nil {
			return cipher21.Attributes{}, err
		}

		if n > 0 {
			chunk, err := enc.ProcessChunk(out[:n], in[:n])
			if err != nil {
				return cipher21.Attributes{}, err
			}
			if err := writeAll(w, chunk); err != nil {
				return cipher21.Attributes{}, err
			}
		}

		if n < len(in) {
			break
		}
	}

	trailer, err := enc.Finalize()
	if err != nil {
		return cipher21.Attributes{}, err
	}
	if err := writeAll(w, trailer); err != nil {
		return cipher21.Attributes{}, err
	}

	return enc.Attributes, nil
}

// Decrypt reads a Cipher21 stream from r, authenticates and recovers its
// plaintext through dec, and writes the plaintext to w. It maintains a
// two-buffer read-ahead so the final ≥FooterLength octets are always
// handed to dec.Finalize as one contiguous segment, never released to
// ProcessChunk. It returns the stream's observable attributes on success.
func Decrypt(w io.Writer, r io.Reader, dec *cipher21.Decrypter) (cipher21.Attributes, error) {
	header := make([]byte, cipher21.HeaderLength)
	defer secretbuf.Scrub(header)

	n, err := fill(r, header)
	if err != nil {
		return cipher21.Attributes{}, err
	}
	if n < len(header) {
		return cipher21.Attributes{}, cipher21.FormatError{Reason: "not enough data"}
	}
	if err := dec.Initialize(header); err != nil {
		return cipher21.Attributes{}, err
	}

	prevBuf := make([]byte, BufferSize)
	nextBuf := make([]byte, BufferSize)
	outBuf := make([]byte, BufferSize)
	defer secretbuf.Scrub(prevBuf)
	defer secretbuf.Scrub(nextBuf)
	defer secretbuf.Scrub(outBuf)

	prevLen, err := fill(r, prevBuf)
	if err != nil {
		return cipher21.Attributes{}, err
	}
	nextLen, err := fill(r, nextBuf)
	if err != nil {
		return cipher21.Attributes{}, err
	}

	for nextLen == len(nextBuf) {
		plaintext, err := dec.ProcessChunk(outBuf[:prevLen], prevBuf[:prevLen])
		if err != nil {
			return cipher21.Attributes{}, err
		}
		if err := writeAll(w, plaintext); err != nil {
			return cipher21.Attributes{}, err
		}

		prevBuf, nextBuf = nextBuf, prevBuf
		prevLen = nextLen
		nextLen, err = fill(r, nextBuf)
		if err != nil {
			return cipher21.Attributes{}, err
		}
	}

	trailing := make([]byte, prevLen+nextLen)
	defer secretbuf.Scrub(trailing)
	copy(trailing, prevBuf[:prevLen])
	copy(trailing[prevLen:], nextBuf[:nextLen])

	tail, err := dec.Finalize(trailing)
	if err != nil {
		return cipher21.Attributes{}, err
	}
	if err := writeAll(w, tail); err != nil {
		return cipher21.Attributes{}, err
	}

	return dec.Attributes, nil
}
