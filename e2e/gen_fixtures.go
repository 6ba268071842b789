//go:build ignore

// gen_fixtures creates test photos for the E2E smoke test: a landscape and
// a portrait of the same scene (auto rotation must give identical frames),
// a small image that gets letterboxed, and a flat gray card.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	if err := os.MkdirAll(filepath.Join(dir, "portrait"), 0o755); err != nil {
		panic(err)
	}

	scene := sunset(1200, 800)
	writeImage(filepath.Join(dir, "landscape.png"), scene)
	// Counter-clockwise, so auto rotation turns it back.
	writeImage(filepath.Join(dir, "portrait", "landscape-ccw.png"), imaging.Rotate90(scene))

	writeJPEG(filepath.Join(dir, "thumb.jpg"), sunset(160, 160))
	writeImage(filepath.Join(dir, "gray.png"), imaging.New(300, 200, color.NRGBA{128, 128, 128, 255}))

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 4 fixtures in %s\n", dir)
}

// sunset paints a sky gradient over a green band with a yellow sun, so
// every palette entry is exercised.
func sunset(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	horizon := h * 2 / 3
	cx, cy, r := w*3/4, horizon-h/8, h/8
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var c color.NRGBA
			switch {
			case (x-cx)*(x-cx)+(y-cy)*(y-cy) < r*r:
				c = color.NRGBA{R: 250, G: 220, B: 60, A: 255}
			case y < horizon:
				t := y * 255 / horizon
				c = color.NRGBA{R: uint8(40 + t*3/4), G: uint8(60 + t/4), B: uint8(200 - t/2), A: 255}
			default:
				c = color.NRGBA{R: 50, G: uint8(110 + x*40/w), B: 70, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writeImage(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}

func writeJPEG(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 85}); err != nil {
		panic(err)
	}
}
