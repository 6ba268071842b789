// Package palette holds the fixed color sets an e-paper panel can show and
// maps arbitrary RGB values onto them.
//
// A Palette is immutable once built. Its index order is the numbering used by
// every later stage (index rasters, packers, histograms); by convention index 0
// is black and index 1 is white.
package palette

import (
	"errors"
	"fmt"
	"image/color"
)

// ErrSize is returned when a palette does not have 4 or 6 entries.
var ErrSize = errors.New("palette: size must be 4 or 6")

// RGB is a reference color in 8-bit range.
type RGB struct {
	R, G, B float32
}

// Palette is an ordered set of reference colors plus the device code
// written for each of them.
type Palette struct {
	name   string
	colors []RGB
	codes  []uint8
}

// New builds a palette. codes[i] is the value the panel expects for colors[i];
// it does not have to equal i.
func New(name string, colors []RGB, codes []uint8) (*Palette, error) {
	if len(colors) != 4 && len(colors) != 6 {
		return nil, fmt.Errorf("%w: got %d", ErrSize, len(colors))
	}
	if len(codes) != len(colors) {
		return nil, fmt.Errorf("palette %q: %d colors but %d codes", name, len(colors), len(codes))
	}
	p := &Palette{
		name:   name,
		colors: append([]RGB(nil), colors...),
		codes:  append([]uint8(nil), codes...),
	}
	return p, nil
}

// Must is like New but panics on error. Used for the built-in tables.
func Must(p *Palette, err error) *Palette {
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Palette) Name() string { return p.name }
func (p *Palette) Len() int     { return len(p.colors) }

// Color returns the reference color at index i.
func (p *Palette) Color(i int) RGB { return p.colors[i] }

// Code returns the device code for index i.
func (p *Palette) Code(i int) uint8 { return p.codes[i] }

// Nearest returns the index with the smallest squared RGB distance to
// (r, g, b). Inputs outside [0,255] are compared as-is. Ties go to the
// lowest index.
func (p *Palette) Nearest(r, g, b float32) int {
	best := 0
	c := p.colors[0]
	dr, dg, db := r-c.R, g-c.G, b-c.B
	bestSq := dr*dr + dg*dg + db*db
	for i := 1; i < len(p.colors); i++ {
		c = p.colors[i]
		dr, dg, db = r-c.R, g-c.G, b-c.B
		if sq := dr*dr + dg*dg + db*db; sq < bestSq {
			bestSq = sq
			best = i
		}
	}
	return best
}

// ColorPalette converts the reference colors to a color.Palette, in index
// order, for rendering previews.
func (p *Palette) ColorPalette() color.Palette {
	out := make(color.Palette, len(p.colors))
	for i, c := range p.colors {
		out[i] = color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: 0xff}
	}
	return out
}

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}
