package converter

import "strings"

const (
	asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	asciiDigits  = "0123456789"
	asciiPunct   = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// noMapping marks table slots with no printable character.
const noMapping rune = -1

// saneASCII maps a byte to its display character. Whitespace is left out on
// purpose: it breaks column alignment in a dump. Never written after init.
var saneASCII = func() [256]rune {
	var t [256]rune
	for i := range t {
		t[i] = noMapping
	}
	for _, ch := range asciiLetters + asciiDigits + asciiPunct {
		t[ch] = ch
	}
	return t
}()

// Asciify renders data as ASCII, using '.' for zero and unprintable bytes.
func Asciify(data []byte) string {
	return AsciifyWith(data, '.', '.')
}

// AsciifyWith renders each byte of data as one character: its own glyph if it
// is a letter, digit or punctuation, zero for 0x00, and nonascii otherwise.
func AsciifyWith(data []byte, zero, nonascii rune) string {
	table := saneASCII
	table[0] = zero

	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		r := table[c]
		if r == noMapping {
			r = nonascii
		}
		b.WriteRune(r)
	}
	return b.String()
}
