// Package tone adjusts a working canvas before it is fitted and dithered.
//
// Enhance runs the adjustments in a fixed order: adaptive histogram
// equalization, saturation, brightness, contrast. The order is part of the
// contract; the multiplicative steps assume equalization already spread the
// tones.
package tone

import (
	"math"

	"github.com/AnyUserName/epdconv/internal/canvas"
)

const noopEpsilon = 1e-6

// Options selects the adjustments applied by Enhance. Zero-value factors are
// real factors (they flatten the image); use Neutral for a no-op.
type Options struct {
	AHE        bool
	Saturation float64
	Brightness float64
	Contrast   float64
}

// Neutral returns options that leave a canvas unchanged.
func Neutral() Options {
	return Options{Saturation: 1, Brightness: 1, Contrast: 1}
}

// IsNoop reports whether Enhance with o would leave every canvas unchanged.
func (o Options) IsNoop() bool {
	return !o.AHE && isNoop(o.Saturation) && isNoop(o.Brightness) && isNoop(o.Contrast)
}

// Enhance applies opts to c in place.
func Enhance(c *canvas.Canvas, opts Options) {
	if opts.AHE {
		AdaptiveEqualize(c)
	}
	Saturation(c, opts.Saturation)
	Brightness(c, opts.Brightness)
	Contrast(c, opts.Contrast)
}

func isNoop(f float64) bool {
	return math.Abs(f-1) < noopEpsilon
}

// Saturation scales HSV saturation by f, keeping hue and value. The scaled
// saturation is clamped to [0, 1].
func Saturation(c *canvas.Canvas, f float64) {
	if isNoop(f) {
		return
	}
	f32 := float32(f)
	for i := 0; i+2 < len(c.Pix); i += 3 {
		r, g, b := c.Pix[i], c.Pix[i+1], c.Pix[i+2]
		v := max(r, g, b)
		m := min(r, g, b)
		if v <= 0 || v == m {
			continue // no hue to scale
		}
		s := (v - m) / v
		s2 := s * f32
		if s2 < 0 {
			s2 = 0
		} else if s2 > 1 {
			s2 = 1
		}
		// With hue and value fixed every channel is linear in s.
		k := s2 / s
		c.Pix[i] = v - (v-r)*k
		c.Pix[i+1] = v - (v-g)*k
		c.Pix[i+2] = v - (v-b)*k
	}
}

// Brightness multiplies every channel by f with saturation to [0, 255].
func Brightness(c *canvas.Canvas, f float64) {
	if isNoop(f) {
		return
	}
	f32 := float32(f)
	for i, v := range c.Pix {
		c.Pix[i] = canvas.Clamp(v * f32)
	}
}

// Contrast scales every channel around the 127.5 midpoint with saturation to
// [0, 255].
func Contrast(c *canvas.Canvas, f float64) {
	if isNoop(f) {
		return
	}
	gain := float32(f)
	offset := float32(127.5 * (1 - f))
	for i, v := range c.Pix {
		c.Pix[i] = canvas.Clamp(v*gain + offset)
	}
}
