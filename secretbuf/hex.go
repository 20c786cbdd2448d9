package secretbuf

// DefaultSeparators are the separator bytes Unhex tolerates between hex
// digits: horizontal tab, line feed, vertical tab, form feed, carriage
// return, space, '.' and ':'.
var DefaultSeparators = []byte{'\t', '\n', '\v', '\f', '\r', ' ', '.', ':'}

// Unhex decodes a hex-encoded buffer into a fresh owned byte slice,
// tolerating the DefaultSeparators between digits. It fails on any other
// non-hex byte and on an odd number of hex digits.
//
// The decoder accumulates into a pre-sized scratch buffer sized for the
// worst case (no separators) and scrubs both the single-digit holder and
// the full scratch buffer on every exit path; the returned slice is a
// fresh copy of the filled prefix, not an alias into the scratch buffer.
func Unhex(hexes []byte) ([]byte, error) {
	return UnhexWithSeparators(hexes, DefaultSeparators)
}

// UnhexWithSeparators behaves like Unhex but accepts a custom set of
// tolerated separator bytes in place of DefaultSeparators.
func UnhexWithSeparators(hexes []byte, separators []byte) (result []byte, err error) {
	var ignored [256]bool
	for _, s := range separators {
		ignored[s] = true
	}

	var x [1]byte
	scratch := make([]byte, len(hexes)/2+1)
	defer func() {
		Scrub(scratch)
		Scrub(x[:])
	}()

	idx := 0
	firstDigit := true
	for i, b := range hexes {
		switch {
		case '0' <= b && b <= '9':
			x[0] = b - '0'
		case 'A' <= b && b <= 'F':
			x[0] = b - 'A' + 10
		case 'a' <= b && b <= 'f':
			x[0] = b - 'a' + 10
		case ignored[b]:
			continue
		default:
			return nil, InvalidHexByteError{Pos: i, Value: b}
		}

		if firstDigit {
			scratch[idx] = 16 * x[0]
		} else {
			scratch[idx] += x[0]
			idx++
		}
		firstDigit = !firstDigit
	}

	if !firstDigit {
		return nil, OddDigitCountError{}
	}

	result = make([]byte, idx)
	copy(result, scratch[:idx])
	return result, nil
}
