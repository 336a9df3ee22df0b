package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mush1e/hexview/internal/converter"
	"github.com/mush1e/hexview/internal/display"
	"github.com/sirupsen/logrus"
)

type options struct {
	width   int
	find    string
	ascii   bool
	color   bool
	image   bool
	verbose bool
	path    string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("hexview", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.IntVar(&o.width, "w", converter.DefaultWidth, "bytes per `row`")
	fs.StringVar(&o.find, "find", "", "print every offset of `text` instead of dumping")
	fs.BoolVar(&o.ascii, "ascii", false, "print only the ASCII rendering")
	fs.BoolVar(&o.color, "color", false, "colorize dump columns")
	fs.BoolVar(&o.image, "image", false, "decode the input as an image and send it to the display surface")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		o.path = fs.Arg(0)
	default:
		return nil, fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}
	return o, nil
}

func main() {
	logrus.SetOutput(os.Stderr)

	o, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		logrus.Fatalf("invalid arguments: %v", err)
	}
	if o.verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := run(o, os.Stdin, os.Stdout); err != nil {
		logrus.Fatal(err)
	}
}

func run(o *options, stdin io.Reader, stdout io.Writer) error {
	in := stdin
	if o.path != "" {
		f, err := os.Open(o.path)
		if err != nil {
			return fmt.Errorf("error opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	if o.image {
		img, format, err := image.Decode(in)
		if err != nil {
			return fmt.Errorf("error decoding image: %w", err)
		}
		b := img.Bounds()
		logrus.Debugf("decoded %s image %dx%d", format, b.Dx(), b.Dy())
		prev := display.SetSurface(display.NewJupyterSurface(stdout))
		defer display.SetSurface(prev)
		return display.Image(img, map[string]any{"width": b.Dx(), "height": b.Dy()})
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	logrus.Debugf("read %d bytes", len(data))

	switch {
	case o.find != "":
		offsets, err := converter.FindAll(data, []byte(o.find))
		if err != nil {
			return err
		}
		for _, off := range offsets {
			fmt.Fprintln(stdout, off)
		}
		return nil
	case o.ascii:
		_, err := fmt.Fprintln(stdout, converter.Asciify(data))
		return err
	}

	d := converter.Dumper{Width: o.width}
	if o.color {
		d.OffsetColor = color.New(color.FgYellow)
		d.HexColor = color.New(color.FgCyan)
		d.ASCIIColor = color.New(color.FgGreen)
	}
	return d.Dump(stdout, data)
}
