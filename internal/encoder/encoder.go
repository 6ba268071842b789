package encoder

import (
	"github.com/AnyUserName/epdconv/internal/profile"
	"github.com/AnyUserName/epdconv/internal/raster"
)

// Output is one converted image, ready to be written in any format.
type Output struct {
	Profile profile.Device
	Raster  *raster.Raster // canvas-oriented palette indices
	Buffer  []byte         // packed frame buffer
}

// Encoder serializes a converted image to a specific format.
type Encoder interface {
	// Format returns the output format name (e.g. "bin", "c", "png").
	Format() string

	// Encode converts the output to bytes.
	Encode(out *Output) ([]byte, error)

	// Extension returns the file extension without dot.
	Extension() string
}
