package dither

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnyUserName/epdconv/internal/canvas"
	"github.com/AnyUserName/epdconv/internal/palette"
)

var allMethods = []Method{MethodFloydSteinberg, MethodFloydSteinbergNoise, MethodJarvisJudiceNinke}

func flat(w, h int, r, g, b float32) *canvas.Canvas {
	c := canvas.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c.Set(x, y, r, g, b)
		}
	}
	return c
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

func TestKernelWeightsSumToDivisor(t *testing.T) {
	for _, k := range []Kernel{FloydSteinberg, JarvisJudiceNinke} {
		assert.Equal(t, k.Divisor, k.Sum(), k.Name)
		for _, tap := range k.Taps {
			ahead := tap.DY > 0 || (tap.DY == 0 && tap.DX > 0)
			assert.True(t, ahead, "%s: tap %+v points behind the scan head", k.Name, tap)
		}
	}
	assert.Equal(t, 16, FloydSteinberg.Divisor)
	assert.Len(t, FloydSteinberg.Taps, 4)
	assert.Equal(t, 48, JarvisJudiceNinke.Divisor)
	assert.Len(t, JarvisJudiceNinke.Taps, 12)
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in   string
		want Method
	}{
		{"floydSteinberg", MethodFloydSteinberg},
		{"floydSteinbergNoise", MethodFloydSteinbergNoise},
		{"jarvisJudiceNinke", MethodJarvisJudiceNinke},
		{"", MethodJarvisJudiceNinke},
		{"atkinson", MethodJarvisJudiceNinke},
		{"FloydSteinberg", MethodJarvisJudiceNinke},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseMethod(tt.in), tt.in)
	}
}

func TestFlatPaletteColor(t *testing.T) {
	for _, p := range []*palette.Palette{palette.Tuned6, palette.Four} {
		for i := 0; i < p.Len(); i++ {
			col := p.Color(i)
			for _, m := range allMethods {
				c := flat(17, 9, col.R, col.G, col.B)
				before := c.Clone()
				r := Diffuse(c, p, Options{Method: m, Rand: seeded(1)})
				for j, v := range r.Idx {
					require.Equalf(t, uint8(i), v, "%s idx %d method %s pixel %d", p.Name(), i, m, j)
				}
				assert.Equal(t, before.Pix, c.Pix, "error propagated for %s idx %d method %s", p.Name(), i, m)
			}
		}
	}
}

func TestSolidBlackFloydSteinberg(t *testing.T) {
	c := flat(100, 100, 0, 0, 0)
	r := Diffuse(c, palette.Tuned6, Options{Method: MethodFloydSteinberg})
	require.Equal(t, 100, r.W)
	require.Equal(t, 100, r.H)
	for _, v := range r.Idx {
		require.Equal(t, uint8(0), v)
	}
}

func TestIndexRange(t *testing.T) {
	rng := seeded(42)
	c := canvas.New(64, 48)
	for i := range c.Pix {
		c.Pix[i] = float32(rng.IntN(256))
	}
	for _, p := range []*palette.Palette{palette.Tuned6, palette.Four, palette.Pure6} {
		for _, m := range allMethods {
			r := Diffuse(c.Clone(), p, Options{Method: m, Rand: seeded(7)})
			for _, v := range r.Idx {
				require.Less(t, int(v), p.Len())
			}
		}
	}
}

func TestOddRowsRunRightToLeft(t *testing.T) {
	c := canvas.New(3, 2)
	c.Set(2, 1, 100, 100, 100)
	Diffuse(c, palette.Four, Options{Method: MethodFloydSteinberg})

	// (2,1) is visited first on the odd row and pushes 7/16 of its error
	// to the left, which in turn pushes 7/16 further left.
	r, _, _ := c.At(1, 1)
	assert.Equal(t, float32(43.75), r)
	r, _, _ = c.At(0, 1)
	assert.Equal(t, float32(19.140625), r)
}

func TestEvenRowsRunLeftToRight(t *testing.T) {
	c := canvas.New(3, 1)
	c.Set(0, 0, 100, 100, 100)
	Diffuse(c, palette.Four, Options{Method: MethodFloydSteinberg})
	r, _, _ := c.At(1, 0)
	assert.Equal(t, float32(43.75), r)
}

func TestErrorClampsAtTarget(t *testing.T) {
	c := canvas.New(2, 1)
	c.Set(0, 0, 200, 200, 200)
	r := Diffuse(c, palette.Four, Options{Method: MethodFloydSteinberg})
	assert.Equal(t, uint8(1), r.At(0, 0))
	v, _, _ := c.At(1, 0)
	assert.Equal(t, float32(0), v)
}

func grays() *palette.Palette {
	return palette.Must(palette.New("grays", []palette.RGB{
		{0, 0, 0}, {255, 255, 255}, {85, 85, 85}, {170, 170, 170},
	}, []uint8{0, 1, 2, 3}))
}

func TestNoiseKeepsHistogram(t *testing.T) {
	p := grays()
	const w, h = 64, 64

	plain := Diffuse(flat(w, h, 128, 128, 128), p, Options{Method: MethodFloydSteinberg})
	noisy := Diffuse(flat(w, h, 128, 128, 128), p, Options{
		Method: MethodFloydSteinbergNoise,
		Rand:   seeded(2024),
	})

	assert.NotEqual(t, plain.Idx, noisy.Idx, "noise should change the pattern")

	hp, hn := plain.Histogram(p.Len()), noisy.Histogram(p.Len())
	tol := w * h * 3 / 100
	for i := range hp {
		assert.InDeltaf(t, hp[i], hn[i], float64(tol), "index %d: %d vs %d", i, hp[i], hn[i])
	}
}

func TestNoiseSeedDeterministic(t *testing.T) {
	run := func(seed uint64) []uint8 {
		c := flat(32, 32, 128, 100, 90)
		return Diffuse(c, palette.Tuned6, Options{Method: MethodFloydSteinbergNoise, Rand: seeded(seed)}).Idx
	}
	assert.Equal(t, run(5), run(5))
}

func TestNoiseMagnitudeZeroUsesDefault(t *testing.T) {
	a := Diffuse(flat(32, 32, 128, 128, 128), grays(), Options{
		Method: MethodFloydSteinbergNoise, Rand: seeded(9),
	})
	b := Diffuse(flat(32, 32, 128, 128, 128), grays(), Options{
		Method: MethodFloydSteinbergNoise, NoiseMagnitude: DefaultNoise, Rand: seeded(9),
	})
	assert.Equal(t, a.Idx, b.Idx)
}

func TestUnknownMethodIsJJN(t *testing.T) {
	src := canvas.New(20, 10)
	for i := range src.Pix {
		src.Pix[i] = float32(i % 256)
	}
	a := Diffuse(src.Clone(), palette.Tuned6, Options{Method: "bogus"})
	b := Diffuse(src.Clone(), palette.Tuned6, Options{Method: MethodJarvisJudiceNinke})
	assert.Equal(t, a.Idx, b.Idx)
}
