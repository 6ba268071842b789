package tone

import "math"

// D65 reference white.
const (
	whiteX = 0.950456
	whiteZ = 1.088754

	labEpsilon = 0.008856
	labKappa   = 7.787
)

func srgbToLinear(v float64) float64 {
	v /= 255
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func linearToSRGB(v float64) float64 {
	if v <= 0.0031308 {
		return v * 12.92 * 255
	}
	return (1.055*math.Pow(v, 1/2.4) - 0.055) * 255
}

func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return labKappa*t + 16.0/116
}

func labFInv(f float64) float64 {
	if t := f * f * f; t > labEpsilon {
		return t
	}
	return (f - 16.0/116) / labKappa
}

// rgbToLab converts 8-bit range sRGB to CIE L*a*b*, L in [0, 100].
func rgbToLab(r8, g8, b8 float32) (l, a, b float64) {
	r := srgbToLinear(float64(r8))
	g := srgbToLinear(float64(g8))
	bl := srgbToLinear(float64(b8))

	x := (0.4124564*r + 0.3575761*g + 0.1804375*bl) / whiteX
	y := 0.2126729*r + 0.7151522*g + 0.0721750*bl
	z := (0.0193339*r + 0.1191920*g + 0.9503041*bl) / whiteZ

	fx, fy, fz := labF(x), labF(y), labF(z)
	return 116*fy - 16, 500 * (fx - fy), 200 * (fy - fz)
}

// labToRGB is the inverse of rgbToLab. The result is not clamped.
func labToRGB(l, a, b float64) (r, g, bl float32) {
	fy := (l + 16) / 116
	fx := fy + a/500
	fz := fy - b/200

	x := labFInv(fx) * whiteX
	y := labFInv(fy)
	z := labFInv(fz) * whiteZ

	lr := 3.2404542*x - 1.5371385*y - 0.4985314*z
	lg := -0.9692660*x + 1.8760108*y + 0.0415560*z
	lb := 0.0556434*x - 0.2040259*y + 1.0572252*z

	return float32(linearToSRGB(lr)), float32(linearToSRGB(lg)), float32(linearToSRGB(lb))
}
