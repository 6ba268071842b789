package cmd

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/epdconv/internal/convert"
	"github.com/AnyUserName/epdconv/internal/dither"
)

// paramFlags are the conversion knobs shared by convert and build. Factors
// are strings so that bad input falls back to 1.0 like any other caller.
type paramFlags struct {
	rotation   string
	saturation string
	contrast   string
	brightness string
	ahe        bool
	method     string
	noise      string
}

func addParamFlags(cmd *cobra.Command, f *paramFlags) {
	fl := cmd.Flags()
	fl.StringVar(&f.rotation, "rotation", "auto", "auto, 0, 90, 180 or 270 (clockwise)")
	fl.StringVar(&f.saturation, "saturation", "1.0", "saturation factor")
	fl.StringVar(&f.contrast, "contrast", "1.0", "contrast factor")
	fl.StringVar(&f.brightness, "brightness", "1.0", "brightness factor")
	fl.BoolVar(&f.ahe, "ahe", false, "adaptive histogram equalization")
	fl.StringVar(&f.method, "dither", string(dither.DefaultMethod),
		"floydSteinberg, floydSteinbergNoise or jarvisJudiceNinke")
	fl.StringVar(&f.noise, "noise", "", "noise magnitude for floydSteinbergNoise (default 2)")
}

func (f *paramFlags) params() convert.Params {
	v := url.Values{}
	v.Set(convert.KeyRotation, f.rotation)
	v.Set(convert.KeySaturation, f.saturation)
	v.Set(convert.KeyContrast, f.contrast)
	v.Set(convert.KeyBrightness, f.brightness)
	if f.ahe {
		v.Set(convert.KeyUseAHE, "true")
	}
	v.Set(convert.KeyMethod, f.method)
	if f.noise != "" {
		v.Set(convert.KeyNoise, f.noise)
	}
	return convert.ParseParams(v)
}
