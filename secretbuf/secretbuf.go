// Package secretbuf implements the secure-buffer primitives shared by the
// key object and the streaming state machines: scrubbing, entropy
// heuristics, and a hex decoder that never leaves intermediate digits
// lying around in memory.
package secretbuf

import "crypto/rand"

// Scrub overwrites buf in place with three passes: 0xFF, then 0x00, then
// cryptographically random bytes. All three passes are mandatory; the
// random-byte pass defeats dead-store elimination under a compiler that
// respects the external rand.Read call.
func Scrub(buf []byte) {
	if len(buf) == 0 {
		return
	}
	for i := range buf {
		buf[i] = 0xFF
	}
	for i := range buf {
		buf[i] = 0x00
	}
	_, _ = rand.Read(buf)
}

// CountUniqueBytes returns the number of distinct byte values in b.
func CountUniqueBytes(b []byte) int {
	var occurrences [256]byte
	for _, x := range b {
		occurrences[x] = 1
	}
	result := 0
	for _, v := range occurrences {
		result += int(v)
	}
	Scrub(occurrences[:])
	return result
}

// Differentiate returns the sequence of consecutive differences of b,
// modulo 256, with b[-1] defined as 0. The result has the same length as b.
func Differentiate(b []byte) []byte {
	derivative := make([]byte, len(b))
	var prev [1]byte
	for i := range b {
		derivative[i] = b[i] - prev[0]
		prev[0] = b[i]
	}
	Scrub(prev[:])
	return derivative
}
