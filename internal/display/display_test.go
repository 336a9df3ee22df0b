package display

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func useSurface(t *testing.T, s Surface) {
	t.Helper()
	prev := SetSurface(s)
	t.Cleanup(func() { SetSurface(prev) })
}

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestImageRoundTrip(t *testing.T) {
	var got []Payload
	useSurface(t, SurfaceFunc(func(p Payload) error {
		got = append(got, p)
		return nil
	}))

	src := solid(7, 3, color.RGBA{R: 0x12, G: 0x80, B: 0xEF, A: 0xFF})
	opts := map[string]any{"width": 140}
	if err := Image(src, opts); err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("surface called %d times, want 1", len(got))
	}

	p := got[0]
	if p.Format != FormatPNG || p.MIMEType() != "image/png" || !p.Embed {
		t.Fatalf("unexpected payload header: format=%q embed=%v", p.Format, p.Embed)
	}
	if p.Metadata["width"] != 140 {
		t.Fatalf("metadata lost: %v", p.Metadata)
	}

	dec, err := png.Decode(bytes.NewReader(p.Data))
	if err != nil {
		t.Fatalf("payload is not a PNG: %v", err)
	}
	if dec.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v, want %v", dec.Bounds(), src.Bounds())
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 7; x++ {
			r1, g1, b1, a1 := src.At(x, y).RGBA()
			r2, g2, b2, a2 := dec.At(x, y).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
				t.Fatalf("pixel (%d,%d) differs after round trip", x, y)
			}
		}
	}

	// the payload must not alias the caller's map
	opts["width"] = 1
	if p.Metadata["width"] != 140 {
		t.Fatalf("payload metadata aliases caller map")
	}
}

func TestImagePayloadsAreIndependent(t *testing.T) {
	var got []Payload
	useSurface(t, SurfaceFunc(func(p Payload) error {
		got = append(got, p)
		return nil
	}))

	if err := Image(solid(2, 2, color.White), nil); err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	first := bytes.Clone(got[0].Data)
	if err := Image(solid(9, 9, color.Black), nil); err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	if !bytes.Equal(got[0].Data, first) {
		t.Fatal("first payload was overwritten by the pooled buffer")
	}
}

func TestImageEncodeError(t *testing.T) {
	called := false
	useSurface(t, SurfaceFunc(func(Payload) error {
		called = true
		return nil
	}))

	err := Image(image.NewRGBA(image.Rect(0, 0, 0, 0)), nil)
	var fe png.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want png.FormatError", err)
	}
	if called {
		t.Fatal("surface called after encode failure")
	}
}

func TestShowSurfaceError(t *testing.T) {
	boom := errors.New("front-end gone")
	useSurface(t, SurfaceFunc(func(Payload) error { return boom }))

	if err := Image(solid(1, 1, color.Black), nil); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestJupyterSurface(t *testing.T) {
	var buf bytes.Buffer
	useSurface(t, NewJupyterSurface(&buf))

	if err := Image(solid(2, 2, color.Black), map[string]any{"height": 20}); err != nil {
		t.Fatalf("Image failed: %v", err)
	}

	var msg struct {
		Data     map[string]string         `json:"data"`
		Metadata map[string]map[string]any `json:"metadata"`
	}
	if err := json.Unmarshal(buf.Bytes(), &msg); err != nil {
		t.Fatalf("bad bundle %q: %v", buf.String(), err)
	}
	raw, err := base64.StdEncoding.DecodeString(msg.Data["image/png"])
	if err != nil {
		t.Fatalf("bad base64: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(raw)); err != nil {
		t.Fatalf("bundle data is not a PNG: %v", err)
	}
	if h, _ := msg.Metadata["image/png"]["height"].(float64); h != 20 {
		t.Fatalf("metadata = %v", msg.Metadata)
	}
}

func TestJupyterSurfaceNoMetadata(t *testing.T) {
	var buf bytes.Buffer
	s := NewJupyterSurface(&buf)
	if err := s.Display(Payload{Data: []byte{1, 2, 3}, Format: "png"}); err != nil {
		t.Fatalf("Display failed: %v", err)
	}
	want := `{"data":{"image/png":"AQID"},"metadata":{}}` + "\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}
