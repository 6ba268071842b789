package encoder

import "fmt"

// BinEncoder writes the raw panel frame buffer.
type BinEncoder struct{}

func (e *BinEncoder) Format() string    { return "bin" }
func (e *BinEncoder) Extension() string { return "bin" }

func (e *BinEncoder) Encode(out *Output) ([]byte, error) {
	if want := out.Profile.BufferSize(); len(out.Buffer) != want {
		return nil, fmt.Errorf("frame buffer is %d bytes, profile %q needs %d",
			len(out.Buffer), out.Profile.Name, want)
	}
	return append([]byte(nil), out.Buffer...), nil
}
