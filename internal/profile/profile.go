package profile

import (
	"fmt"
	"sort"

	"github.com/AnyUserName/epdconv/internal/palette"
)

// Device describes a target panel or asset format: the canvas the image is
// composed on, and how the index raster is laid out in the packed buffer.
type Device struct {
	Name string

	CanvasW, CanvasH int // composition canvas
	PanelW, PanelH   int // packed buffer, after Rotate

	Rotate       int  // clockwise degrees applied to the raster before packing
	Inverted     bool // address from the last pixel (panel mounted upside down)
	BitsPerPixel int  // 2 or 4

	Palette   *palette.Palette
	AssetName string // C identifier used by the asset writer
}

// DefaultName is the profile used when an unknown name is requested.
const DefaultName = "epd4in0e"

// Built-in profiles.
var builtins = map[string]Device{
	"epd4in0e": {
		Name:         "epd4in0e",
		CanvasW:      600,
		CanvasH:      400,
		PanelW:       400,
		PanelH:       600,
		Rotate:       270, // 90° counter-clockwise into the panel's portrait memory order
		Inverted:     true,
		BitsPerPixel: 4,
		Palette:      palette.Tuned6,
		AssetName:    "Image6color",
	},
	"epd7in3e": {
		Name:         "epd7in3e",
		CanvasW:      800,
		CanvasH:      480,
		PanelW:       800,
		PanelH:       480,
		Inverted:     true,
		BitsPerPixel: 4,
		Palette:      palette.Tuned6,
		AssetName:    "Image6color",
	},
	"asset4": {
		Name:         "asset4",
		CanvasW:      400,
		CanvasH:      300,
		PanelW:       400,
		PanelH:       300,
		BitsPerPixel: 2,
		Palette:      palette.Four,
		AssetName:    "Image4color",
	},
	"asset6": {
		Name:         "asset6",
		CanvasW:      600,
		CanvasH:      400,
		PanelW:       600,
		PanelH:       400,
		BitsPerPixel: 4,
		Palette:      palette.Official6,
		AssetName:    "Image6color",
	},
}

// Get returns a built-in profile by name. Falls back to epd4in0e if unknown.
func Get(name string) Device {
	if d, ok := builtins[name]; ok {
		return d
	}
	d := builtins[DefaultName]
	d.Name = name // preserve requested name
	return d
}

// Validate checks that the profile describes a packable buffer.
func (d Device) Validate() error {
	if d.CanvasW <= 0 || d.CanvasH <= 0 {
		return fmt.Errorf("profile %q: invalid canvas %dx%d", d.Name, d.CanvasW, d.CanvasH)
	}
	if d.PanelW <= 0 || d.PanelH <= 0 {
		return fmt.Errorf("profile %q: invalid panel %dx%d", d.Name, d.PanelW, d.PanelH)
	}
	if d.BitsPerPixel != 2 && d.BitsPerPixel != 4 {
		return fmt.Errorf("profile %q: bits per pixel must be 2 or 4, got %d", d.Name, d.BitsPerPixel)
	}
	if d.Rotate%90 != 0 {
		return fmt.Errorf("profile %q: rotation %d is not a multiple of 90", d.Name, d.Rotate)
	}
	if d.Palette == nil {
		return fmt.Errorf("profile %q: no palette", d.Name)
	}
	for i := 0; i < d.Palette.Len(); i++ {
		if int(d.Palette.Code(i)) >= 1<<d.BitsPerPixel {
			return fmt.Errorf("profile %q: code %d does not fit in %d bits", d.Name, d.Palette.Code(i), d.BitsPerPixel)
		}
	}
	w, h := d.CanvasW, d.CanvasH
	if (d.Rotate/90)%2 != 0 {
		w, h = h, w
	}
	if w != d.PanelW || h != d.PanelH {
		return fmt.Errorf("profile %q: canvas %dx%d rotated %d is %dx%d, panel is %dx%d",
			d.Name, d.CanvasW, d.CanvasH, d.Rotate, w, h, d.PanelW, d.PanelH)
	}
	return nil
}

// PixelsPerByte returns how many pixel codes share one packed byte.
func (d Device) PixelsPerByte() int {
	if d.BitsPerPixel <= 0 {
		return 0
	}
	return 8 / d.BitsPerPixel
}

// BufferSize returns the packed length: ceil(PanelW/ppb) * PanelH.
func (d Device) BufferSize() int {
	ppb := d.PixelsPerByte()
	if ppb == 0 {
		return 0
	}
	return (d.PanelW + ppb - 1) / ppb * d.PanelH
}

// Names lists the built-in profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
