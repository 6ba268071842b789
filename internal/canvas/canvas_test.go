package canvas

import (
	"image"
	"image/color"
	"testing"
)

func TestFromImageRoundtrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 5, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 50), G: uint8(y * 80), B: 7, A: 255})
		}
	}

	c := FromImage(src)
	if c.W != 5 || c.H != 3 {
		t.Fatalf("dims = %dx%d", c.W, c.H)
	}
	r, g, b := c.At(4, 2)
	if r != 200 || g != 160 || b != 7 {
		t.Errorf("At(4,2) = %v,%v,%v", r, g, b)
	}

	out := c.ToNRGBA()
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			if out.NRGBAAt(x, y) != src.NRGBAAt(x, y) {
				t.Fatalf("(%d,%d): %v != %v", x, y, out.NRGBAAt(x, y), src.NRGBAAt(x, y))
			}
		}
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 12, 21))
	src.SetRGBA(11, 20, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	c := FromImage(src)
	if r, g, b := c.At(1, 0); r != 1 || g != 2 || b != 3 {
		t.Errorf("At(1,0) = %v,%v,%v", r, g, b)
	}
}

func TestToNRGBASaturates(t *testing.T) {
	c := New(1, 1)
	c.Set(0, 0, -20, 127.6, 900)
	got := c.ToNRGBA().NRGBAAt(0, 0)
	want := color.NRGBA{R: 0, G: 128, B: 255, A: 255}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClone(t *testing.T) {
	c := New(2, 2)
	c.Set(1, 1, 5, 6, 7)
	d := c.Clone()
	d.Set(1, 1, 0, 0, 0)
	if r, _, _ := c.At(1, 1); r != 5 {
		t.Error("clone shares storage")
	}
}

func TestClamp(t *testing.T) {
	for _, tt := range []struct{ in, want float32 }{
		{-1, 0}, {0, 0}, {12.5, 12.5}, {255, 255}, {300, 255},
	} {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v", tt.in, got)
		}
	}
}
