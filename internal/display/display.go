// Package display decodes the MM2's 4-digit 7-segment LCD latches into
// the small command language the driver state machine reads: completed
// moves, mate announcements, promotion prompts, and a couple of fixed
// status strings.
//
// The segment table is grounded on the firmware's own byte encoding
// (LCD_MAP in the original Mephisto emulator); unmapped byte values
// decode to Empty, the sentinel that tells the driver the display has
// not finished refreshing yet.
package display

// Empty is the sentinel glyph for a latch byte that doesn't correspond
// to any known 7-segment pattern. A Text containing it is not yet
// stable and the driver should wait another quantum.
const Empty = '☐'

var glyphTable = buildGlyphTable()

type glyphEntry struct {
	glyph byte
	code  rune
}

// Source table for the 7-segment encoding. Both the byte exactly as
// written by the firmware and its decimal-point-stripped (MSB clear)
// form decode to the same glyph, since display polarity can flip the
// MSB without changing which characters are lit.
var glyphSource = []glyphEntry{
	{0b11111111, ' '},
	{0b11110111, '-'},
	{0b10100000, 'a'},
	{0b10000011, 'b'},
	{0b10100111, 'c'},
	{0b10100001, 'd'},
	{0b10000100, 'e'},
	{0b10001110, 'f'},
	{0b10010000, 'g'},
	{0b10001011, 'h'},
	{0b11101111, 'i'},
	{0b11110011, 'j'},
	{0b10001010, 'k'},
	{0b11001111, 'l'},
	{0b11101011, 'm'},
	{0b10101011, 'n'},
	{0b10100011, 'o'},
	{0b10001100, 'p'},
	{0b10011000, 'q'},
	{0b10101111, 'r'},
	{0b10010010, 's'},
	{0b10000111, 't'},
	{0b11100011, 'u'},
	{0b11100011, 'v'},
	{0b11101011, 'w'},
	{0b10001001, 'x'},
	{0b10010001, 'y'},
	{0b10100100, 'z'},
	{0b10001000, 'A'},
	{0b10000011, 'B'},
	{0b11000110, 'C'},
	{0b10100001, 'D'},
	{0b10000110, 'E'},
	{0b10001110, 'F'},
	{0b11000010, 'G'},
	{0b10001001, 'H'},
	{0b11001111, 'I'},
	{0b11100001, 'J'},
	{0b10001010, 'K'},
	{0b11000111, 'L'},
	{0b11101010, 'M'},
	{0b11001000, 'N'},
	{0b11000000, 'O'},
	{0b10001100, 'P'},
	{0b10010100, 'Q'},
	{0b11001100, 'R'},
	{0b10010010, 'S'},
	{0b11001110, 'T'},
	{0b11000001, 'U'},
	{0b11000001, 'V'},
	{0b11010101, 'W'},
	{0b10010001, 'Y'},
	{0b10100100, 'Z'},
	{0b11000000, '0'},
	{0b11111001, '1'},
	{0b10100100, '2'},
	{0b10110000, '3'},
	{0b10011001, '4'},
	{0b10010010, '5'},
	{0b10000010, '6'},
	{0b11111000, '7'},
	{0b10000000, '8'},
	{0b10010000, '9'},
	{0b11110000, ']'},
	{0b11110110, '='},
	{0b10000101, 'K'}, // second K glyph, open question: unspecified which reading wins
	{0b10111111, '-'}, // second - glyph, same
}

// buildGlyphTable produces a 256-entry lookup table covering every
// possible latch byte, matching the firmware's own construction: each
// source code is registered both verbatim and with the decimal-point
// bit (0x80) cleared, so unrelated DP state never hides a glyph.
func buildGlyphTable() [256]rune {
	var table [256]rune
	for i := range table {
		table[i] = Empty
	}
	for _, e := range glyphSource {
		table[e.glyph] = e.code
		table[e.glyph&0x7f] = e.code
	}
	return table
}

// Glyph returns the character a raw latch byte decodes to, or Empty if
// the byte matches no known segment pattern.
func Glyph(b byte) rune {
	return glyphTable[b]
}

// Digit is one 7-segment position: its decoded glyph and whether its
// decimal point is lit.
type Digit struct {
	Glyph rune
	DP    bool
}

// Decode turns the four raw latch bytes for a display refresh into
// their decoded digits, most significant digit first. The decimal
// point bit (0x80) is reported separately from the glyph it rides
// on, since the firmware uses DP state independently of character
// content (e.g. marking the "from" square of a move in progress).
func Decode(latches [4]byte) [4]Digit {
	var out [4]Digit
	for i, b := range latches {
		out[i] = Digit{Glyph: glyphTable[b], DP: b&0x80 == 0}
	}
	return out
}

// Text renders Decode's output as a plain string, with Empty glyphs
// passed through as-is. Callers that need to detect "not yet stable"
// should check individual Digit.Glyph values against Empty rather than
// scanning the rendered string, since Empty is a valid rune and could
// in principle collide with firmware output.
func Text(latches [4]byte) string {
	digits := Decode(latches)
	runes := make([]rune, len(digits))
	for i, d := range digits {
		runes[i] = d.Glyph
	}
	return string(runes)
}

// Stable reports whether every digit in a refresh decoded to a known
// glyph. A display latch that hasn't finished being written by the
// firmware will contain at least one byte with no mapping and should
// not be treated as a finished message yet.
func Stable(latches [4]byte) bool {
	for _, b := range latches {
		if glyphTable[b] == Empty {
			return false
		}
	}
	return true
}
