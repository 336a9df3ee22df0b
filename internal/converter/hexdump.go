package converter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

const (
	// DefaultWidth is the number of bytes shown per row.
	DefaultWidth = 8

	columnSep = "|"
	dummyOut  = "   "
)

// ErrInvalidWidth is returned for a row width below one.
var ErrInvalidWidth = errors.New("converter: row width must be positive")

// Dumper renders byte sequences as offset|hex|ascii rows. Nil colors print
// the column unstyled.
type Dumper struct {
	Width int

	OffsetColor *color.Color
	HexColor    *color.Color
	ASCIIColor  *color.Color
}

// Hexdump writes the dump of data to stdout.
func Hexdump(data []byte, width int) error {
	return Fhexdump(os.Stdout, data, width)
}

// Fhexdump writes the dump of data to w.
func Fhexdump(w io.Writer, data []byte, width int) error {
	d := Dumper{Width: width}
	return d.Dump(w, data)
}

// Dump writes one row per Width bytes of data. Offsets are decimal, padded to
// the digit count of len(data). A short last row is padded so the ASCII
// column lines up with the full rows.
func (d *Dumper) Dump(w io.Writer, data []byte) error {
	if d.Width <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWidth, d.Width)
	}

	length := len(data)
	offsetFmt := "%0" + strconv.Itoa(len(strconv.Itoa(length))) + "d"

	var line strings.Builder
	for i := 0; i < length; i += d.Width {
		chunk := data[i:min(i+d.Width, length)]

		line.Reset()
		line.WriteString(paint(d.OffsetColor, fmt.Sprintf(offsetFmt, i)))
		line.WriteString(columnSep)
		line.WriteString(paint(d.HexColor, hexColumn(chunk, d.Width)))
		line.WriteString(columnSep)
		line.WriteString(paint(d.ASCIIColor, Asciify(chunk)))
		line.WriteByte('\n')

		if _, err := io.WriteString(w, line.String()); err != nil {
			return fmt.Errorf("error writing row at offset %d: %w", i, err)
		}
	}
	return nil
}

func hexColumn(chunk []byte, width int) string {
	var b strings.Builder
	for i, c := range chunk {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02X", c)
	}
	// fill missing bytes with spaces
	for n := len(chunk); n < width; n++ {
		b.WriteString(dummyOut)
	}
	return b.String()
}

func paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}
