// Package dither quantizes a working canvas to a palette with serpentine
// error diffusion.
//
// Even rows are scanned left to right and odd rows right to left; on odd
// rows every tap's DX is negated. Error is added to each target pixel and
// clamped to [0, 255] immediately, so large errors in high-contrast areas
// cannot pile up.
package dither

import (
	"math/rand/v2"

	"github.com/AnyUserName/epdconv/internal/canvas"
	"github.com/AnyUserName/epdconv/internal/palette"
	"github.com/AnyUserName/epdconv/internal/raster"
)

// Method names a diffusion strategy.
type Method string

const (
	MethodFloydSteinberg      Method = "floydSteinberg"
	MethodFloydSteinbergNoise Method = "floydSteinbergNoise"
	MethodJarvisJudiceNinke   Method = "jarvisJudiceNinke"

	DefaultMethod = MethodJarvisJudiceNinke
)

// DefaultNoise is the perturbation magnitude used by the noise variant when
// Options.NoiseMagnitude is zero.
const DefaultNoise = 2

// ParseMethod maps a method name to a Method. Unknown names fall back to
// DefaultMethod.
func ParseMethod(s string) Method {
	switch m := Method(s); m {
	case MethodFloydSteinberg, MethodFloydSteinbergNoise, MethodJarvisJudiceNinke:
		return m
	}
	return DefaultMethod
}

// Kernel returns the diffusion matrix used by m.
func (m Method) Kernel() Kernel {
	switch m {
	case MethodFloydSteinberg, MethodFloydSteinbergNoise:
		return FloydSteinberg
	}
	return JarvisJudiceNinke
}

// Options controls a Diffuse call.
type Options struct {
	Method Method

	// NoiseMagnitude bounds the per-channel uniform noise of the
	// floydSteinbergNoise method. Zero means DefaultNoise.
	NoiseMagnitude float32

	// Rand drives the noise. Nil uses a freshly seeded generator.
	Rand *rand.Rand
}

// Diffuse quantizes c to p and returns the index raster. c is used as the
// error accumulator and is modified.
func Diffuse(c *canvas.Canvas, p *palette.Palette, opts Options) *raster.Raster {
	method := ParseMethod(string(opts.Method))
	k := method.Kernel()

	var jitter func() float32
	if method == MethodFloydSteinbergNoise {
		mag := opts.NoiseMagnitude
		if mag == 0 {
			mag = DefaultNoise
		}
		rng := opts.Rand
		if rng == nil {
			rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		jitter = func() float32 {
			return (rng.Float32()*2 - 1) * mag
		}
	}

	return diffuse(c, p, k, jitter)
}

func diffuse(c *canvas.Canvas, p *palette.Palette, k Kernel, jitter func() float32) *raster.Raster {
	out := raster.New(c.W, c.H)
	div := float32(k.Divisor)

	for y := 0; y < c.H; y++ {
		x, step, dir := 0, 1, 1
		if y%2 == 1 {
			x, step, dir = c.W-1, -1, -1
		}
		for ; x >= 0 && x < c.W; x += step {
			i := c.Offset(x, y)
			r, g, b := c.Pix[i], c.Pix[i+1], c.Pix[i+2]

			lr, lg, lb := r, g, b
			if jitter != nil {
				lr = canvas.Clamp(r + jitter())
				lg = canvas.Clamp(g + jitter())
				lb = canvas.Clamp(b + jitter())
			}

			idx := p.Nearest(lr, lg, lb)
			out.Idx[y*c.W+x] = uint8(idx)

			// Error against the unperturbed value.
			pc := p.Color(idx)
			er, eg, eb := r-pc.R, g-pc.G, b-pc.B
			if er == 0 && eg == 0 && eb == 0 {
				continue
			}

			for _, t := range k.Taps {
				nx, ny := x+t.DX*dir, y+t.DY
				if nx < 0 || nx >= c.W || ny >= c.H {
					continue
				}
				w := float32(t.Weight) / div
				j := c.Offset(nx, ny)
				c.Pix[j] = canvas.Clamp(c.Pix[j] + er*w)
				c.Pix[j+1] = canvas.Clamp(c.Pix[j+1] + eg*w)
				c.Pix[j+2] = canvas.Clamp(c.Pix[j+2] + eb*w)
			}
		}
	}
	return out
}
