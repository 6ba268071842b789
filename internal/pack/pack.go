// Package pack serializes index rasters into the byte layouts consumed
// downstream: a panel frame buffer and a C array for embedding in firmware.
package pack

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/AnyUserName/epdconv/internal/palette"
	"github.com/AnyUserName/epdconv/internal/profile"
	"github.com/AnyUserName/epdconv/internal/raster"
)

// ErrGeometry is returned when a raster does not match the target layout.
var ErrGeometry = errors.New("pack: raster does not match target geometry")

// DeviceSize returns the frame buffer length for d.
func DeviceSize(d profile.Device) int {
	return d.BufferSize()
}

// Device packs r into the frame buffer layout of d. The raster is first
// rotated by d.Rotate and must then measure PanelW×PanelH. Codes are taken
// from d.Palette and packed MSB first, leftmost pixel in the high bits. An
// inverted profile addresses (x, y) as (W-1-x, H-1-y).
func Device(r *raster.Raster, d profile.Device) ([]byte, error) {
	if d.BitsPerPixel != 2 && d.BitsPerPixel != 4 {
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrGeometry, d.BitsPerPixel)
	}
	if d.Palette == nil {
		return nil, fmt.Errorf("pack: profile %q has no palette", d.Name)
	}
	rr, err := r.Rotate(d.Rotate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeometry, err)
	}
	if rr.W != d.PanelW || rr.H != d.PanelH {
		return nil, fmt.Errorf("%w: %dx%d after rotating %d, panel is %dx%d",
			ErrGeometry, rr.W, rr.H, d.Rotate, d.PanelW, d.PanelH)
	}

	codes := codeTable(d.Palette)
	if err := checkIndices(rr, len(codes)); err != nil {
		return nil, err
	}
	bpp := d.BitsPerPixel
	ppb := 8 / bpp
	mask := uint8(1<<bpp - 1)
	stride := (rr.W + ppb - 1) / ppb
	buf := make([]byte, stride*rr.H)

	for y := 0; y < rr.H; y++ {
		for x := 0; x < rr.W; x++ {
			idx := rr.Idx[y*rr.W+x]
			X, Y := x, y
			if d.Inverted {
				X, Y = rr.W-1-x, rr.H-1-y
			}
			shift := (ppb - 1 - X%ppb) * bpp
			buf[Y*stride+X/ppb] |= (codes[idx] & mask) << shift
		}
	}
	return buf, nil
}

func codeTable(p *palette.Palette) []uint8 {
	codes := make([]uint8, p.Len())
	for i := range codes {
		codes[i] = p.Code(i)
	}
	return codes
}

func checkIndices(r *raster.Raster, n int) error {
	for i, idx := range r.Idx {
		if int(idx) >= n {
			return fmt.Errorf("pack: index %d at (%d,%d) outside palette of %d", idx, i%r.W, i/r.W, n)
		}
	}
	return nil
}

// assetBits returns the bits per pixel of the asset format for p: 2 for
// four-color palettes, 4 otherwise.
func assetBits(p *palette.Palette) int {
	if p.Len() <= 4 {
		return 2
	}
	return 4
}

// AssetSize returns the number of bytes Asset writes for a w×h raster.
func AssetSize(w, h int, p *palette.Palette) int {
	ppb := 8 / assetBits(p)
	return (w + ppb - 1) / ppb * h
}

// Asset writes r as a C array literal:
//
//	// 6 Color Image Data 600*400
//	const unsigned char Image6color[120000] = {
//	0x11,0x23,...
//	};
//
// Sixteen bytes per line. The last byte of each row is zero-padded in its
// low bits when the width is not a multiple of the pixels per byte.
func Asset(w io.Writer, r *raster.Raster, p *palette.Palette, name string) error {
	codes := codeTable(p)
	if err := checkIndices(r, len(codes)); err != nil {
		return err
	}
	bpp := assetBits(p)
	ppb := 8 / bpp
	mask := uint8(1<<bpp - 1)
	stride := (r.W + ppb - 1) / ppb
	size := stride * r.H

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "// %d Color Image Data %d*%d\n", p.Len(), r.W, r.H)
	fmt.Fprintf(bw, "const unsigned char %s[%d] = {\n", name, size)

	n := 0
	for y := 0; y < r.H; y++ {
		row := r.Idx[y*r.W : (y+1)*r.W]
		for bx := 0; bx < stride; bx++ {
			var b uint8
			for k := 0; k < ppb; k++ {
				x := bx*ppb + k
				if x >= r.W {
					break
				}
				b |= (codes[row[x]] & mask) << ((ppb - 1 - k) * bpp)
			}
			fmt.Fprintf(bw, "0x%02X,", b)
			if n++; n%16 == 0 {
				bw.WriteByte('\n')
			}
		}
	}
	if n%16 != 0 {
		bw.WriteByte('\n')
	}
	bw.WriteString("};\n")
	return bw.Flush()
}
