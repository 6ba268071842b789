// Package convert runs a photo through the full conversion: tone
// adjustment, framing onto the panel canvas, error diffusion and packing
// into the panel's frame buffer.
//
// A conversion is synchronous and all-or-nothing: on error no buffer is
// returned.
package convert

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/AnyUserName/epdconv/internal/canvas"
	"github.com/AnyUserName/epdconv/internal/dither"
	"github.com/AnyUserName/epdconv/internal/frame"
	"github.com/AnyUserName/epdconv/internal/logging"
	"github.com/AnyUserName/epdconv/internal/pack"
	"github.com/AnyUserName/epdconv/internal/profile"
	"github.com/AnyUserName/epdconv/internal/raster"
	"github.com/AnyUserName/epdconv/internal/tone"
)

var (
	// ErrDecode is returned when the source cannot be opened or decoded.
	ErrDecode = errors.New("convert: cannot decode image")

	// ErrAllocation is returned when the profile does not describe a frame
	// buffer that can be allocated.
	ErrAllocation = errors.New("convert: cannot allocate frame buffer")
)

// Decode reads an image in any registered format: png, jpeg, gif, bmp,
// tiff or webp.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if img.Bounds().Empty() {
		return nil, "", fmt.Errorf("%w: empty image", ErrDecode)
	}
	return img, format, nil
}

// DecodeFile opens and decodes path.
func DecodeFile(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()
	return Decode(f)
}

// Result is the output of one conversion.
type Result struct {
	Raster  *raster.Raster // canvas-oriented palette indices
	Buffer  []byte         // packed frame buffer for the profile's panel
	Elapsed time.Duration
}

// Converter converts images for one device profile. It is not safe for
// concurrent use when Rand is set; give each goroutine its own Converter.
type Converter struct {
	Profile profile.Device
	Rand    *rand.Rand   // noise source; nil seeds a fresh one per call
	Logger  *slog.Logger // nil uses slog.Default
}

// New returns a converter for d.
func New(d profile.Device) *Converter {
	return &Converter{Profile: d}
}

// Convert runs the full pipeline on img.
func (c *Converter) Convert(img image.Image, p Params) (*Result, error) {
	start := time.Now()
	log := logging.For(c.Logger, logging.ComponentConvert)

	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}
	d := c.Profile
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocation, err)
	}

	idx := c.Quantize(img, p)

	buf, err := pack.Device(idx, d)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", d.Name, err)
	}

	res := &Result{Raster: idx, Buffer: buf, Elapsed: time.Since(start)}
	log.Debug("converted",
		"profile", d.Name,
		"src", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy()),
		"rotation", p.Rotation,
		"method", p.Method,
		"bytes", len(buf),
		"elapsed", res.Elapsed.Round(time.Millisecond),
	)
	return res, nil
}

// Quantize runs everything up to packing and returns the canvas-sized
// index raster.
func (c *Converter) Quantize(img image.Image, p Params) *raster.Raster {
	d := c.Profile

	src := img
	if opts := p.tone(); !opts.IsNoop() {
		work := canvas.FromImage(img)
		tone.Enhance(work, opts)
		src = work.ToNRGBA()
	}

	framed := frame.Compose(src, p.Rotation, d.CanvasW, d.CanvasH)

	return dither.Diffuse(canvas.FromImage(framed), d.Palette, dither.Options{
		Method:         p.Method,
		NoiseMagnitude: p.NoiseMagnitude,
		Rand:           c.Rand,
	})
}
