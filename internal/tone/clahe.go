package tone

import (
	"math"

	"github.com/AnyUserName/epdconv/internal/canvas"
)

const (
	claheClipLimit = 2.0
	claheGrid      = 8
	histBins       = 256
)

// AdaptiveEqualize runs contrast-limited adaptive histogram equalization on
// the lightness channel of c. Chroma (a*, b*) is left untouched.
func AdaptiveEqualize(c *canvas.Canvas) {
	n := c.W * c.H
	if n == 0 {
		return
	}

	lum := make([]uint8, n)
	as := make([]float32, n)
	bs := make([]float32, n)
	for i := 0; i < n; i++ {
		l, a, b := rgbToLab(c.Pix[i*3], c.Pix[i*3+1], c.Pix[i*3+2])
		lum[i] = canvas.Byte(float32(l * 255 / 100))
		as[i] = float32(a)
		bs[i] = float32(b)
	}

	eq := clahe(lum, c.W, c.H)

	for i := 0; i < n; i++ {
		l := float64(eq[i]) * 100 / 255
		r, g, b := labToRGB(l, float64(as[i]), float64(bs[i]))
		c.Pix[i*3] = canvas.Clamp(r)
		c.Pix[i*3+1] = canvas.Clamp(g)
		c.Pix[i*3+2] = canvas.Clamp(b)
	}
}

// clahe equalizes an 8-bit plane on a claheGrid×claheGrid tile grid. Each
// tile histogram is clipped, the excess spread evenly over all bins, and the
// per-tile lookup tables are blended bilinearly between tile centers.
func clahe(src []uint8, w, h int) []float32 {
	tileW := (w + claheGrid - 1) / claheGrid
	tileH := (h + claheGrid - 1) / claheGrid
	tilesX := (w + tileW - 1) / tileW
	tilesY := (h + tileH - 1) / tileH

	luts := make([][histBins]uint8, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x0, y0 := tx*tileW, ty*tileH
			x1, y1 := min(x0+tileW, w), min(y0+tileH, h)
			luts[ty*tilesX+tx] = tileLUT(src, w, x0, y0, x1, y1)
		}
	}

	out := make([]float32, len(src))
	invW := 1 / float32(tileW)
	invH := 1 / float32(tileH)
	for y := 0; y < h; y++ {
		tyf := float32(y)*invH - 0.5
		ty1 := int(math.Floor(float64(tyf)))
		ty2 := ty1 + 1
		ya := tyf - float32(ty1)
		ty1 = max(ty1, 0)
		ty2 = min(ty2, tilesY-1)

		for x := 0; x < w; x++ {
			txf := float32(x)*invW - 0.5
			tx1 := int(math.Floor(float64(txf)))
			tx2 := tx1 + 1
			xa := txf - float32(tx1)
			tx1 = max(tx1, 0)
			tx2 = min(tx2, tilesX-1)

			v := src[y*w+x]
			l11 := float32(luts[ty1*tilesX+tx1][v])
			l12 := float32(luts[ty1*tilesX+tx2][v])
			l21 := float32(luts[ty2*tilesX+tx1][v])
			l22 := float32(luts[ty2*tilesX+tx2][v])
			top := l11*(1-xa) + l12*xa
			bot := l21*(1-xa) + l22*xa
			out[y*w+x] = top*(1-ya) + bot*ya
		}
	}
	return out
}

func tileLUT(src []uint8, stride, x0, y0, x1, y1 int) [histBins]uint8 {
	var hist [histBins]int
	for y := y0; y < y1; y++ {
		for _, v := range src[y*stride+x0 : y*stride+x1] {
			hist[v]++
		}
	}
	area := (x1 - x0) * (y1 - y0)

	clip := max(int(claheClipLimit*float64(area)/histBins), 1)
	excess := 0
	for i := range hist {
		if hist[i] > clip {
			excess += hist[i] - clip
			hist[i] = clip
		}
	}
	batch := excess / histBins
	residual := excess - batch*histBins
	for i := range hist {
		hist[i] += batch
	}
	if residual > 0 {
		step := max(histBins/residual, 1)
		for i := 0; i < histBins && residual > 0; i += step {
			hist[i]++
			residual--
		}
	}

	var lut [histBins]uint8
	scale := float32(histBins-1) / float32(area)
	sum := 0
	for i := range hist {
		sum += hist[i]
		lut[i] = canvas.Byte(float32(sum) * scale)
	}
	return lut
}
