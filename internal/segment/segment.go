// Package segment maps displayable characters to 7-segment bit patterns.
// It is a pure lookup with no state.
package segment

// Segment bits within a pattern, A through G.
const (
	SegA byte = 1 << iota
	SegB
	SegC
	SegD
	SegE
	SegF
	SegG
)

// Blank is the pattern with every segment off.
const Blank byte = 0

// 7-segment patterns (g-f-e-d-c-b-a bit order), digits first.
var font = map[rune]byte{
	'0': 0x3F,
	'1': 0x06,
	'2': 0x5B,
	'3': 0x4F,
	'4': 0x66,
	'5': 0x6D,
	'6': 0x7D,
	'7': 0x07,
	'8': 0x7F,
	'9': 0x6F,
	'A': 0x77,
	'b': 0x7C,
	'C': 0x39,
	'd': 0x5E,
	'E': 0x79,
	'F': 0x71,
	'h': 0x74,
	'L': 0x38,
	'n': 0x54,
	'o': 0x5C,
	'P': 0x73,
	'r': 0x50,
	'S': 0x6D,
	't': 0x78,
	'u': 0x1C,
	'-': 0x40,
	' ': 0x00,
}

// Encode returns the segment pattern for r. Unknown characters render blank.
func Encode(r rune) byte {
	return font[r]
}

// Digit returns the pattern for a decimal digit 0-9. Out-of-range values
// render blank.
func Digit(n int) byte {
	if n < 0 || n > 9 {
		return Blank
	}
	return font[rune('0'+n)]
}
