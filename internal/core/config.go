package core

// RuntimeConfig is the terminal geometry handed to the game at start and
// on every resize.
type RuntimeConfig struct {
	ScreenW     int // Screen width in characters
	ScreenH     int // Screen height in characters
	SliderWidth int // Track width of each slider in cells
	CoarseStep  int // Notches per coarse step
	ImageW      int // Width of each mascot image in cells
	ImageH      int // Height of each mascot image in cells
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:     100,
		ScreenH:     40,
		SliderWidth: 41,
		CoarseStep:  10,
		ImageW:      36,
		ImageH:      18,
	}
}
