// Package raster holds the palette-index grid produced by diffusion and
// consumed by the packers.
package raster

import (
	"fmt"
	"image"

	"github.com/AnyUserName/epdconv/internal/palette"
)

// Raster is a W×H grid of palette indices, row-major.
type Raster struct {
	W, H int
	Idx  []uint8
}

// New returns a raster filled with index 0.
func New(w, h int) *Raster {
	return &Raster{W: w, H: h, Idx: make([]uint8, w*h)}
}

func (r *Raster) At(x, y int) uint8     { return r.Idx[y*r.W+x] }
func (r *Raster) Set(x, y int, i uint8) { r.Idx[y*r.W+x] = i }

// Rotate returns a copy turned clockwise by deg, which must be a multiple
// of 90. Negative values turn counter-clockwise.
func (r *Raster) Rotate(deg int) (*Raster, error) {
	if deg%90 != 0 {
		return nil, fmt.Errorf("raster: rotation %d is not a multiple of 90", deg)
	}
	switch ((deg % 360) + 360) % 360 {
	case 90:
		out := New(r.H, r.W)
		for y := 0; y < out.H; y++ {
			for x := 0; x < out.W; x++ {
				out.Idx[y*out.W+x] = r.Idx[(r.H-1-x)*r.W+y]
			}
		}
		return out, nil
	case 180:
		out := New(r.W, r.H)
		n := len(r.Idx)
		for i, v := range r.Idx {
			out.Idx[n-1-i] = v
		}
		return out, nil
	case 270:
		out := New(r.H, r.W)
		for y := 0; y < out.H; y++ {
			for x := 0; x < out.W; x++ {
				out.Idx[y*out.W+x] = r.Idx[x*r.W+(r.W-1-y)]
			}
		}
		return out, nil
	default:
		return &Raster{W: r.W, H: r.H, Idx: append([]uint8(nil), r.Idx...)}, nil
	}
}

// Histogram counts how often each index below n occurs. Indices >= n are
// ignored.
func (r *Raster) Histogram(n int) []int {
	h := make([]int, n)
	for _, v := range r.Idx {
		if int(v) < n {
			h[v]++
		}
	}
	return h
}

// Paletted renders the raster with the reference colors of p.
func (r *Raster) Paletted(p *palette.Palette) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, r.W, r.H), p.ColorPalette())
	for y := 0; y < r.H; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+r.W], r.Idx[y*r.W:(y+1)*r.W])
	}
	return img
}
