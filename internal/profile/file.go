package profile

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/AnyUserName/epdconv/internal/palette"
)

// Set is a lookup table of profiles: the built-ins plus anything loaded
// from profile files.
type Set struct {
	devices map[string]Device
}

// NewSet returns a set holding the built-in profiles.
func NewSet() *Set {
	s := &Set{devices: make(map[string]Device, len(builtins))}
	for n, d := range builtins {
		s.devices[n] = d
	}
	return s
}

// Get returns the named profile. Unknown names fall back to epd4in0e with
// the requested name kept, like the package-level Get.
func (s *Set) Get(name string) Device {
	if d, ok := s.devices[name]; ok {
		return d
	}
	d := s.devices[DefaultName]
	d.Name = name
	return d
}

// Lookup returns the named profile and whether it exists.
func (s *Set) Lookup(name string) (Device, bool) {
	d, ok := s.devices[name]
	return d, ok
}

// Add validates d and registers it, replacing any profile of the same name.
func (s *Set) Add(d Device) error {
	if d.Name == "" {
		return fmt.Errorf("profile: empty name")
	}
	if err := d.Validate(); err != nil {
		return err
	}
	s.devices[d.Name] = d
	return nil
}

// Names lists the profiles in the set, sorted.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.devices))
	for n := range s.devices {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// fileDevice is the YAML form of a Device.
type fileDevice struct {
	Name         string `yaml:"name"`
	Base         string `yaml:"base"`
	CanvasWidth  int    `yaml:"canvas_width"`
	CanvasHeight int    `yaml:"canvas_height"`
	PanelWidth   int    `yaml:"panel_width"`
	PanelHeight  int    `yaml:"panel_height"`
	Rotate       *int   `yaml:"rotate"`
	Inverted     *bool  `yaml:"inverted"`
	BitsPerPixel int    `yaml:"bits_per_pixel"`
	Palette      string `yaml:"palette"`
	AssetName    string `yaml:"asset_name"`
}

type file struct {
	Profiles []fileDevice `yaml:"profiles"`
}

// LoadFile reads profiles from a YAML file into s. Each entry may name a
// base profile whose fields it overrides:
//
//	profiles:
//	  - name: epd4in0e-official
//	    base: epd4in0e
//	    palette: official6
func (s *Set) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profiles: %w", err)
	}
	return s.Load(data)
}

// Load parses YAML profile data into s.
func (s *Set) Load(data []byte) error {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse profiles: %w", err)
	}
	for i, fd := range f.Profiles {
		d, err := s.resolve(fd)
		if err != nil {
			return fmt.Errorf("profiles[%d]: %w", i, err)
		}
		if err := s.Add(d); err != nil {
			return fmt.Errorf("profiles[%d]: %w", i, err)
		}
	}
	return nil
}

func (s *Set) resolve(fd fileDevice) (Device, error) {
	var d Device
	if fd.Base != "" {
		base, ok := s.devices[fd.Base]
		if !ok {
			return d, fmt.Errorf("unknown base profile %q", fd.Base)
		}
		d = base
	}
	d.Name = fd.Name
	if fd.CanvasWidth > 0 {
		d.CanvasW = fd.CanvasWidth
	}
	if fd.CanvasHeight > 0 {
		d.CanvasH = fd.CanvasHeight
	}
	if fd.PanelWidth > 0 {
		d.PanelW = fd.PanelWidth
	}
	if fd.PanelHeight > 0 {
		d.PanelH = fd.PanelHeight
	}
	if fd.Rotate != nil {
		d.Rotate = *fd.Rotate
	}
	if fd.Inverted != nil {
		d.Inverted = *fd.Inverted
	}
	if fd.BitsPerPixel > 0 {
		d.BitsPerPixel = fd.BitsPerPixel
	}
	if fd.Palette != "" {
		p, ok := palette.Lookup(fd.Palette)
		if !ok {
			return d, fmt.Errorf("unknown palette %q", fd.Palette)
		}
		d.Palette = p
	}
	if fd.AssetName != "" {
		d.AssetName = fd.AssetName
	}
	return d, nil
}
