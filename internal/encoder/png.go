package encoder

import (
	"bytes"
	"fmt"
	"image/png"
)

// PNGEncoder renders the raster with the palette's reference colors, as a
// preview of what the panel will show.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) Extension() string { return "png" }

func (e *PNGEncoder) Encode(out *Output) ([]byte, error) {
	if out.Profile.Palette == nil {
		return nil, fmt.Errorf("profile %q has no palette", out.Profile.Name)
	}
	var buf bytes.Buffer
	buf.Grow(64 * 1024)

	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	err := enc.Encode(&buf, out.Raster.Paletted(out.Profile.Palette))
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
