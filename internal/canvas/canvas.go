// Package canvas provides the float working buffer used by the tone and
// diffusion stages.
//
// Values are stored unclamped so that intermediate results can leave the
// byte range without wrapping; stages that need a byte range clamp
// explicitly. A Canvas belongs to a single conversion call.
package canvas

import (
	"image"

	"github.com/disintegration/imaging"
)

// Canvas is a W×H grid of RGB triples, row-major, three float32 per pixel.
type Canvas struct {
	W, H int
	Pix  []float32
}

// New returns a black canvas.
func New(w, h int) *Canvas {
	return &Canvas{W: w, H: h, Pix: make([]float32, w*h*3)}
}

// FromImage copies img into a new canvas. Alpha is dropped.
func FromImage(img image.Image) *Canvas {
	src := imaging.Clone(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	c := New(w, h)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		out := c.Pix[y*w*3 : (y+1)*w*3]
		for x := 0; x < w; x++ {
			out[x*3+0] = float32(row[x*4+0])
			out[x*3+1] = float32(row[x*4+1])
			out[x*3+2] = float32(row[x*4+2])
		}
	}
	return c
}

// Offset returns the index of the red component of (x, y) in Pix.
func (c *Canvas) Offset(x, y int) int {
	return (y*c.W + x) * 3
}

// At returns the color at (x, y).
func (c *Canvas) At(x, y int) (r, g, b float32) {
	i := c.Offset(x, y)
	return c.Pix[i], c.Pix[i+1], c.Pix[i+2]
}

// Set stores a color at (x, y).
func (c *Canvas) Set(x, y int, r, g, b float32) {
	i := c.Offset(x, y)
	c.Pix[i], c.Pix[i+1], c.Pix[i+2] = r, g, b
}

// Clone returns a deep copy.
func (c *Canvas) Clone() *Canvas {
	return &Canvas{W: c.W, H: c.H, Pix: append([]float32(nil), c.Pix...)}
}

// ToNRGBA rounds and saturates every channel into an opaque NRGBA image.
func (c *Canvas) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.W, c.H))
	for y := 0; y < c.H; y++ {
		in := c.Pix[y*c.W*3 : (y+1)*c.W*3]
		row := img.Pix[y*img.Stride : y*img.Stride+c.W*4]
		for x := 0; x < c.W; x++ {
			row[x*4+0] = Byte(in[x*3+0])
			row[x*4+1] = Byte(in[x*3+1])
			row[x*4+2] = Byte(in[x*3+2])
			row[x*4+3] = 0xff
		}
	}
	return img
}

// Clamp limits v to [0, 255].
func Clamp(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// Byte rounds v to the nearest integer and saturates it to a byte.
func Byte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
