package convert

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/AnyUserName/epdconv/internal/dither"
	"github.com/AnyUserName/epdconv/internal/frame"
	"github.com/AnyUserName/epdconv/internal/tone"
)

// Params are the per-request knobs of a conversion.
type Params struct {
	Rotation       frame.Rotation `json:"rotation"`
	Saturation     float64        `json:"saturation"`
	Contrast       float64        `json:"contrast"`
	Brightness     float64        `json:"brightness"`
	UseAHE         bool           `json:"use_ahe"`
	Method         dither.Method  `json:"dither_method"`
	NoiseMagnitude float32        `json:"noise_magnitude,omitempty"`
}

// DefaultParams returns auto rotation, neutral factors, no equalization and
// the default diffusion method.
func DefaultParams() Params {
	return Params{
		Rotation:   frame.RotateAuto,
		Saturation: 1,
		Contrast:   1,
		Brightness: 1,
		Method:     dither.DefaultMethod,
	}
}

// Form keys understood by ParseParams.
const (
	KeyRotation   = "rotation"
	KeySaturation = "saturation"
	KeyContrast   = "contrast"
	KeyBrightness = "brightness"
	KeyUseAHE     = "useAHE"
	KeyMethod     = "ditherMethod"
	KeyNoise      = "noiseMagnitude"
)

// ParseParams reads conversion parameters from form values. It never fails:
// a missing rotation means auto and an unknown one means none, unparsable
// or non-finite factors become 1.0, and an unknown method becomes the
// default.
func ParseParams(v url.Values) Params {
	p := DefaultParams()
	if v.Has(KeyRotation) {
		p.Rotation = frame.ParseRotation(strings.TrimSpace(v.Get(KeyRotation)))
	}
	p.Saturation = parseFactor(v.Get(KeySaturation))
	p.Contrast = parseFactor(v.Get(KeyContrast))
	p.Brightness = parseFactor(v.Get(KeyBrightness))
	p.UseAHE, _ = strconv.ParseBool(strings.TrimSpace(v.Get(KeyUseAHE)))
	p.Method = dither.ParseMethod(strings.TrimSpace(v.Get(KeyMethod)))
	if s := strings.TrimSpace(v.Get(KeyNoise)); s != "" {
		if f, err := strconv.ParseFloat(s, 32); err == nil && f > 0 && !math.IsInf(f, 0) {
			p.NoiseMagnitude = float32(f)
		}
	}
	return p
}

// Values is the inverse of ParseParams.
func (p Params) Values() url.Values {
	v := url.Values{}
	v.Set(KeyRotation, p.Rotation.String())
	v.Set(KeySaturation, strconv.FormatFloat(p.Saturation, 'g', -1, 64))
	v.Set(KeyContrast, strconv.FormatFloat(p.Contrast, 'g', -1, 64))
	v.Set(KeyBrightness, strconv.FormatFloat(p.Brightness, 'g', -1, 64))
	v.Set(KeyUseAHE, strconv.FormatBool(p.UseAHE))
	v.Set(KeyMethod, string(p.Method))
	if p.NoiseMagnitude > 0 {
		v.Set(KeyNoise, strconv.FormatFloat(float64(p.NoiseMagnitude), 'g', -1, 32))
	}
	return v
}

func parseFactor(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 1
	}
	return f
}

func (p Params) tone() tone.Options {
	return tone.Options{
		AHE:        p.UseAHE,
		Saturation: p.Saturation,
		Brightness: p.Brightness,
		Contrast:   p.Contrast,
	}
}
