package palette

// Device codes for the six-color panels skip 4.
var sixColorCodes = []uint8{0x0, 0x1, 0x2, 0x3, 0x5, 0x6}

// Built-in palettes.
var (
	// Tuned6 is measured off a real panel and renders photos closest to
	// what the ink actually shows.
	Tuned6 = Must(New("tuned6", []RGB{
		{11, 11, 15},    // black
		{247, 247, 247}, // white
		{255, 230, 41},  // yellow
		{168, 27, 27},   // red
		{29, 82, 181},   // blue
		{60, 133, 106},  // green
	}, sixColorCodes))

	// Official6 is the vendor's published six-color set.
	Official6 = Must(New("official6", []RGB{
		{0, 0, 0},
		{255, 255, 255},
		{255, 243, 56},
		{191, 0, 0},
		{100, 64, 255},
		{67, 138, 28},
	}, sixColorCodes))

	// Pure6 uses saturated primaries.
	Pure6 = Must(New("pure6", []RGB{
		{0, 0, 0},
		{255, 255, 255},
		{255, 255, 0},
		{255, 0, 0},
		{0, 0, 255},
		{0, 255, 0},
	}, sixColorCodes))

	// Four is the black/white/yellow/red set of four-color panels.
	Four = Must(New("four", []RGB{
		{0, 0, 0},
		{255, 255, 255},
		{255, 255, 0},
		{255, 0, 0},
	}, []uint8{0, 1, 2, 3}))
)

var builtins = map[string]*Palette{
	Tuned6.Name():    Tuned6,
	Official6.Name(): Official6,
	Pure6.Name():     Pure6,
	Four.Name():      Four,
}

// Lookup returns a built-in palette by name.
func Lookup(name string) (*Palette, bool) {
	p, ok := builtins[name]
	return p, ok
}
