package pipeline

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnyUserName/epdconv/internal/convert"
	"github.com/AnyUserName/epdconv/internal/dither"
	"github.com/AnyUserName/epdconv/internal/hasher"
	"github.com/AnyUserName/epdconv/internal/logging"
	"github.com/AnyUserName/epdconv/internal/palette"
	"github.com/AnyUserName/epdconv/internal/profile"
)

func tiny() profile.Device {
	return profile.Device{
		Name:         "tiny",
		CanvasW:      40,
		CanvasH:      24,
		PanelW:       24,
		PanelH:       40,
		Rotate:       270,
		Inverted:     true,
		BitsPerPixel: 4,
		Palette:      palette.Tuned6,
		AssetName:    "Tiny",
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 4), G: uint8(y * 4), B: 90, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func fixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "banner.png"), 60, 40)
	writePNG(t, filepath.Join(dir, "cards", "card-1.png"), 30, 50)
	writePNG(t, filepath.Join(dir, ".cache", "hidden.png"), 10, 10)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	return dir
}

func TestScanImages(t *testing.T) {
	dir := fixtures(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.JPG"), []byte("nope"), 0o644))

	sources, err := ScanImages(dir)
	require.NoError(t, err)
	require.Len(t, sources, 3)

	assert.Equal(t, "banner", sources[0].Key)
	assert.Equal(t, "broken", sources[1].Key)
	assert.Equal(t, "jpeg", sources[1].Format)
	assert.Equal(t, "cards/card-1", sources[2].Key)
	assert.Equal(t, "cards/card-1.png", sources[2].RelPath)
	assert.Positive(t, sources[2].Size)

	sources, err = ScanImages(dir, filepath.Join(dir, "cards"))
	require.NoError(t, err)
	assert.Len(t, sources, 2)
}

func run(t *testing.T, in, out string, params convert.Params, seed uint64) *Pipeline {
	t.Helper()
	return New(Config{
		InputDir:  in,
		OutputDir: out,
		Profile:   tiny(),
		Params:    params,
		Formats:   []string{"bin", "c", "png", "jpeg"},
		Workers:   2,
		Seed:      seed,
		Logger:    logging.Discard(),
	})
}

func TestRun(t *testing.T) {
	in := fixtures(t)
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.png"), []byte("nope"), 0o644))
	out := t.TempDir()

	m, err := run(t, in, out, convert.DefaultParams(), 7).Run()
	require.NoError(t, err)

	assert.Equal(t, "tiny", m.Profile)
	assert.Equal(t, "tuned6", m.Palette)
	assert.Equal(t, 40, m.Canvas.Width)
	assert.Equal(t, "auto", m.Params["rotation"])
	assert.Equal(t, uint64(7), m.BuildInfo.Seed)
	assert.Equal(t, 1, m.Stats.Failed)
	require.Len(t, m.Assets, 2)

	a := m.Assets["cards/card-1"]
	assert.Equal(t, 30, a.Original.Width)
	assert.Equal(t, "png", a.Original.Format)
	sum := 0
	for _, n := range a.Histogram {
		sum += n
	}
	assert.Equal(t, 40*24, sum)

	require.Len(t, a.Outputs, 3)
	formats := []string{a.Outputs[0].Format, a.Outputs[1].Format, a.Outputs[2].Format}
	assert.Equal(t, []string{"bin", "c", "png"}, formats)
	for _, o := range a.Outputs {
		path := filepath.Join(out, o.Path)
		info, err := os.Stat(path)
		require.NoError(t, err, o.Path)
		assert.Equal(t, o.Size, info.Size())
		got, err := hasher.FileHash(path, 16)
		require.NoError(t, err)
		assert.Equal(t, o.Hash, got)
		assert.Contains(t, o.Path, "cards/card-1."+o.Hash[:8]+".")
	}
	assert.Equal(t, int64(12*40), a.Outputs[0].Size)
}

func TestRunDeterministic(t *testing.T) {
	in := fixtures(t)
	params := convert.DefaultParams()
	params.Method = dither.MethodFloydSteinbergNoise

	m1, err := run(t, in, t.TempDir(), params, 99).Run()
	require.NoError(t, err)
	m2, err := run(t, in, t.TempDir(), params, 99).Run()
	require.NoError(t, err)

	for key, a := range m1.Assets {
		assert.Equal(t, a.Outputs, m2.Assets[key].Outputs, key)
	}
}

func TestRunFailures(t *testing.T) {
	empty := t.TempDir()
	_, err := run(t, empty, t.TempDir(), convert.DefaultParams(), 1).Run()
	assert.Error(t, err)

	bad := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bad, "a.png"), []byte("x"), 0o644))
	_, err = run(t, bad, t.TempDir(), convert.DefaultParams(), 1).Run()
	assert.ErrorContains(t, err, "all 1 images failed")

	p := run(t, fixtures(t), t.TempDir(), convert.DefaultParams(), 1)
	p.cfg.Profile.PanelW = 7
	_, err = p.Run()
	assert.ErrorIs(t, err, convert.ErrAllocation)
}

func TestNewDefaults(t *testing.T) {
	p := New(Config{Profile: tiny()})
	assert.Positive(t, p.cfg.Workers)
	assert.NotZero(t, p.cfg.Seed)
}
