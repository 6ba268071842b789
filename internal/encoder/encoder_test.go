package encoder

import (
	"bytes"
	"image"
	"image/png"
	"reflect"
	"strings"
	"testing"

	"github.com/AnyUserName/epdconv/internal/pack"
	"github.com/AnyUserName/epdconv/internal/profile"
	"github.com/AnyUserName/epdconv/internal/raster"
)

func testOutput(t *testing.T, name string) *Output {
	t.Helper()
	d := profile.Get(name)
	r := raster.New(d.CanvasW, d.CanvasH)
	for i := range r.Idx {
		r.Idx[i] = uint8(i % d.Palette.Len())
	}
	buf, err := pack.Device(r, d)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	return &Output{Profile: d, Raster: r, Buffer: buf}
}

func TestResolveFormats(t *testing.T) {
	r := NewRegistry()
	tests := []struct {
		in   []string
		want []string
	}{
		{nil, []string{"bin"}},
		{[]string{"jpeg"}, []string{"bin"}},
		{[]string{"PNG", "c", "png"}, []string{"png", "c"}},
		{[]string{" c ", "bin"}, []string{"c", "bin"}},
	}
	for _, tt := range tests {
		if got := r.ResolveFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ResolveFormats(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := r.String(); got != "encoders: bin, c, png" {
		t.Errorf("String() = %q", got)
	}
	if r.Get("gif") != nil {
		t.Error("unexpected gif encoder")
	}
}

func TestBinEncoder(t *testing.T) {
	out := testOutput(t, "epd7in3e")
	data, err := NewRegistry().Get("bin").Encode(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, out.Buffer) {
		t.Error("bin output differs from frame buffer")
	}

	out.Buffer = out.Buffer[:10]
	if _, err := (&BinEncoder{}).Encode(out); err == nil {
		t.Error("expected error for short buffer")
	}
}

func TestCEncoder(t *testing.T) {
	out := testOutput(t, "asset4")
	data, err := (&CEncoder{}).Encode(out)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "// 4 Color Image Data 400*300\nconst unsigned char Image4color[30000] = {\n") {
		t.Errorf("unexpected header: %.80q", text)
	}
	if !strings.HasSuffix(text, "};\n") {
		t.Error("missing closing brace")
	}

	out = testOutput(t, "asset6")
	out.Profile.AssetName = ""
	data, err = (&CEncoder{}).Encode(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "const unsigned char Image6color[120000] = {") {
		t.Errorf("default name not used: %.120q", data)
	}
}

func TestPNGEncoder(t *testing.T) {
	out := testOutput(t, "asset6")
	data, err := (&PNGEncoder{}).Encode(out)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	p, ok := img.(*image.Paletted)
	if !ok {
		t.Fatalf("decoded %T, want *image.Paletted", img)
	}
	if p.Bounds().Dx() != 600 || p.Bounds().Dy() != 400 {
		t.Errorf("bounds %v", p.Bounds())
	}
	if got := p.ColorIndexAt(5, 0); got != 5 {
		t.Errorf("index at (5,0) = %d, want 5", got)
	}
}
