// Package frame fits a source image onto the fixed canvas of a panel:
// orientation, proportional scaling, and black letterboxing.
package frame

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Rotation is a requested orientation change.
type Rotation int

const (
	RotateNone Rotation = iota
	Rotate90            // clockwise
	Rotate180
	Rotate270 // clockwise, i.e. 90 counter-clockwise
	RotateAuto
)

// ParseRotation maps "auto", "0", "90", "180" and "270" to a Rotation.
// Anything else means no rotation.
func ParseRotation(s string) Rotation {
	switch s {
	case "auto":
		return RotateAuto
	case "90":
		return Rotate90
	case "180":
		return Rotate180
	case "270":
		return Rotate270
	default:
		return RotateNone
	}
}

func (r Rotation) String() string {
	switch r {
	case RotateAuto:
		return "auto"
	case Rotate90:
		return "90"
	case Rotate180:
		return "180"
	case Rotate270:
		return "270"
	default:
		return "0"
	}
}

func (r Rotation) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rotation) UnmarshalText(b []byte) error {
	*r = ParseRotation(string(b))
	return nil
}

// Orient applies r to img. RotateAuto turns portrait sources (width less
// than height) 90° clockwise and leaves everything else alone.
func Orient(img image.Image, r Rotation) image.Image {
	b := img.Bounds()
	if r == RotateAuto {
		if b.Dx() >= b.Dy() {
			return img
		}
		r = Rotate90
	}
	// imaging rotates counter-clockwise.
	switch r {
	case Rotate90:
		return imaging.Rotate270(img)
	case Rotate180:
		return imaging.Rotate180(img)
	case Rotate270:
		return imaging.Rotate90(img)
	}
	return img
}

// FitSize returns the largest size with the source aspect ratio that fits in
// w×h. Each side is rounded and at least 1.
func FitSize(srcW, srcH, w, h int) (int, int) {
	scale := math.Min(float64(w)/float64(srcW), float64(h)/float64(srcH))
	newW := int(math.Round(float64(srcW) * scale))
	newH := int(math.Round(float64(srcH) * scale))
	return min(max(newW, 1), w), min(max(newH, 1), h)
}

// Compose orients img, scales it to fit w×h and centers it on a black w×h
// canvas. The result is always exactly w×h.
func Compose(img image.Image, r Rotation, w, h int) *image.NRGBA {
	dst := imaging.New(w, h, color.NRGBA{A: 0xff})

	src := Orient(img, r)
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return dst
	}

	newW, newH := FitSize(b.Dx(), b.Dy(), w, h)
	var scaled image.Image
	switch {
	case newW == b.Dx() && newH == b.Dy():
		scaled = src
	case newW < b.Dx() || newH < b.Dy():
		// Area averaging when shrinking.
		scaled = imaging.Resize(src, newW, newH, imaging.Box)
	default:
		scaled = imaging.Resize(src, newW, newH, imaging.Linear)
	}

	offX := (w - newW) / 2
	offY := (h - newH) / 2
	return imaging.Paste(dst, scaled, image.Pt(offX, offY))
}
