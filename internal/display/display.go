// Package display hands rendered images to an interactive display surface,
// such as a notebook front-end.
package display

import (
	"bytes"
	"image"
	"image/png"
	"maps"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// FormatPNG is the format tag of payloads built by Image.
const FormatPNG = "png"

// Payload is an encoded image plus the metadata the surface renders it with.
type Payload struct {
	Data     []byte
	Format   string
	Embed    bool
	Metadata map[string]any
}

// MIMEType returns the content type of the payload, e.g. "image/png".
func (p Payload) MIMEType() string {
	return "image/" + p.Format
}

// Surface renders payloads.
type Surface interface {
	Display(p Payload) error
}

// SurfaceFunc adapts a function to a Surface.
type SurfaceFunc func(p Payload) error

func (f SurfaceFunc) Display(p Payload) error {
	return f(p)
}

var (
	active   Surface = NewJupyterSurface(os.Stdout)
	activeMu sync.RWMutex
)

// SetSurface makes s the active surface and returns the previous one.
func SetSurface(s Surface) Surface {
	activeMu.Lock()
	defer activeMu.Unlock()
	prev := active
	active = s
	return prev
}

// Active returns the surface that Show and Image forward to.
func Active() Surface {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return active
}

var bufPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// Image encodes img as PNG and shows it inline on the active surface with the
// given metadata. Encoding errors are returned as is.
func Image(img image.Image, options map[string]any) error {
	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufPool.Put(buf)

	if err := png.Encode(buf, img); err != nil {
		return err
	}

	// buf goes back to the pool, the payload needs its own copy
	return Show(Payload{
		Data:     bytes.Clone(buf.Bytes()),
		Format:   FormatPNG,
		Embed:    true,
		Metadata: maps.Clone(options),
	})
}

// Show forwards p to the active surface.
func Show(p Payload) error {
	logrus.Debugf("display %s payload, %d bytes, %d metadata keys", p.MIMEType(), len(p.Data), len(p.Metadata))
	return Active().Display(p)
}
