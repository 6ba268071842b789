package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnyUserName/epdconv/internal/palette"
)

// 3x2:
//
//	0 1 2
//	3 4 5
func sample() *Raster {
	r := New(3, 2)
	for i := range r.Idx {
		r.Idx[i] = uint8(i)
	}
	return r
}

func TestRotate(t *testing.T) {
	tests := []struct {
		deg  int
		w, h int
		want []uint8
	}{
		{0, 3, 2, []uint8{0, 1, 2, 3, 4, 5}},
		{360, 3, 2, []uint8{0, 1, 2, 3, 4, 5}},
		{90, 2, 3, []uint8{3, 0, 4, 1, 5, 2}},
		{-270, 2, 3, []uint8{3, 0, 4, 1, 5, 2}},
		{180, 3, 2, []uint8{5, 4, 3, 2, 1, 0}},
		{270, 2, 3, []uint8{2, 5, 1, 4, 0, 3}},
		{-90, 2, 3, []uint8{2, 5, 1, 4, 0, 3}},
	}
	for _, tt := range tests {
		got, err := sample().Rotate(tt.deg)
		require.NoError(t, err, "deg %d", tt.deg)
		assert.Equal(t, tt.w, got.W, "deg %d width", tt.deg)
		assert.Equal(t, tt.h, got.H, "deg %d height", tt.deg)
		assert.Equal(t, tt.want, got.Idx, "deg %d", tt.deg)
	}
}

func TestRotateRejectsOddAngles(t *testing.T) {
	_, err := sample().Rotate(45)
	assert.Error(t, err)
}

func TestRotateCopies(t *testing.T) {
	r := sample()
	out, err := r.Rotate(0)
	require.NoError(t, err)
	out.Idx[0] = 9
	assert.Equal(t, uint8(0), r.Idx[0])
}

func TestRotateFullTurn(t *testing.T) {
	r := sample()
	cur := r
	for i := 0; i < 4; i++ {
		var err error
		cur, err = cur.Rotate(90)
		require.NoError(t, err)
	}
	assert.Equal(t, r, cur)
}

func TestHistogram(t *testing.T) {
	r := New(4, 1)
	copy(r.Idx, []uint8{0, 5, 5, 9})
	assert.Equal(t, []int{1, 0, 0, 0, 0, 2}, r.Histogram(6))
}

func TestPaletted(t *testing.T) {
	r := sample()
	img := r.Paletted(palette.Tuned6)
	require.Equal(t, 3, img.Bounds().Dx())
	require.Equal(t, 2, img.Bounds().Dy())
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, r.At(x, y), img.ColorIndexAt(x, y))
		}
	}
}
