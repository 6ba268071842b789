package convert

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/AnyUserName/epdconv/internal/logging"
	"github.com/AnyUserName/epdconv/internal/pack"
	"github.com/AnyUserName/epdconv/internal/raster"
)

// FrameWriter sends a packed frame buffer to a panel.
type FrameWriter interface {
	WriteFrame(buf []byte) error
}

// FileWriter writes each frame to Path, replacing the previous one. It
// stands in for a panel when the buffer is flashed by another program.
type FileWriter struct {
	Path string
}

func (w FileWriter) WriteFrame(buf []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(w.Path), ".frame-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		return fmt.Errorf("write frame: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return os.Rename(tmp.Name(), w.Path)
}

// Display serializes conversions feeding one physical panel: at most one
// Show or Clear runs at a time, so two frames never interleave.
type Display struct {
	mu   sync.Mutex
	conv *Converter
	out  FrameWriter
}

// NewDisplay returns a display that converts with conv and writes to out.
func NewDisplay(conv *Converter, out FrameWriter) *Display {
	return &Display{conv: conv, out: out}
}

// Show converts img and writes the frame. Nothing is written if the
// conversion fails.
func (d *Display) Show(img image.Image, p Params) (*Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	res, err := d.conv.Convert(img, p)
	if err != nil {
		return nil, err
	}
	if err := d.out.WriteFrame(res.Buffer); err != nil {
		return nil, fmt.Errorf("write frame: %w", err)
	}
	logging.For(d.conv.Logger, logging.ComponentDisplay).Info("frame shown",
		"profile", d.conv.Profile.Name, "bytes", len(res.Buffer))
	return res, nil
}

// Clear fills the panel with palette index 1 (white).
func (d *Display) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	prof := d.conv.Profile
	if err := prof.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrAllocation, err)
	}
	r := raster.New(prof.CanvasW, prof.CanvasH)
	for i := range r.Idx {
		r.Idx[i] = 1
	}
	buf, err := pack.Device(r, prof)
	if err != nil {
		return fmt.Errorf("pack %s: %w", prof.Name, err)
	}
	if err := d.out.WriteFrame(buf); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	logging.For(d.conv.Logger, logging.ComponentDisplay).Info("panel cleared", "profile", prof.Name)
	return nil
}
