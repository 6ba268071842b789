package encoder

import (
	"bytes"
	"fmt"

	"github.com/AnyUserName/epdconv/internal/pack"
)

// CEncoder writes the raster as a C array for firmware builds.
type CEncoder struct{}

func (e *CEncoder) Format() string    { return "c" }
func (e *CEncoder) Extension() string { return "c" }

func (e *CEncoder) Encode(out *Output) ([]byte, error) {
	p := out.Profile.Palette
	if p == nil {
		return nil, fmt.Errorf("profile %q has no palette", out.Profile.Name)
	}
	name := out.Profile.AssetName
	if name == "" {
		name = fmt.Sprintf("Image%dcolor", p.Len())
	}

	var buf bytes.Buffer
	// ~5 bytes of text per packed byte.
	buf.Grow(pack.AssetSize(out.Raster.W, out.Raster.H, p)*5 + 128)
	if err := pack.Asset(&buf, out.Raster, p, name); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
