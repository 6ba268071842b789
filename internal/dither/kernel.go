package dither

// Tap sends Weight/Divisor of the quantization error to the pixel at
// (x+DX, y+DY). DX is given for a left-to-right row.
type Tap struct {
	DX, DY int
	Weight int
}

// Kernel is an error-diffusion matrix with integer weights.
type Kernel struct {
	Name    string
	Taps    []Tap
	Divisor int
}

// Sum returns the total of all tap weights. For every kernel here it equals
// Divisor, so no error is created or lost away from the borders.
func (k Kernel) Sum() int {
	s := 0
	for _, t := range k.Taps {
		s += t.Weight
	}
	return s
}

var (
	FloydSteinberg = Kernel{
		Name: "floyd-steinberg",
		Taps: []Tap{
			{1, 0, 7},
			{-1, 1, 3}, {0, 1, 5}, {1, 1, 1},
		},
		Divisor: 16,
	}

	JarvisJudiceNinke = Kernel{
		Name: "jarvis-judice-ninke",
		Taps: []Tap{
			{1, 0, 7}, {2, 0, 5},
			{-2, 1, 3}, {-1, 1, 5}, {0, 1, 7}, {1, 1, 5}, {2, 1, 3},
			{-2, 2, 1}, {-1, 2, 3}, {0, 2, 5}, {1, 2, 3}, {2, 2, 1},
		},
		Divisor: 48,
	}
)
