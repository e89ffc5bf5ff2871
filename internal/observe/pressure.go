package observe

// WindowSize is the number of frames the pressure estimate averages
// over. Smooths frame-to-frame collision noise; a rolling estimate,
// not an instantaneous one.
const WindowSize = 60

// displayScale maps SI wall impulses over a pixel perimeter into
// numbers that read well on screen. Arbitrary presentation constant.
const displayScale = 1e26

// PressureGauge accumulates per-frame wall-impulse magnitudes in a
// bounded FIFO window and reports the smoothed pressure estimate.
type PressureGauge struct {
	window []float64
}

func NewPressureGauge() *PressureGauge {
	return &PressureGauge{window: make([]float64, 0, WindowSize)}
}

// Push records one frame's accumulated wall impulse, evicting the
// oldest sample once the window is full.
func (g *PressureGauge) Push(impulse float64) {
	if len(g.window) == WindowSize {
		copy(g.window, g.window[1:])
		g.window = g.window[:WindowSize-1]
	}
	g.window = append(g.window, impulse)
}

// Pressure returns mean(window)/perimeter scaled for display. Zero
// until the first sample arrives.
func (g *PressureGauge) Pressure(perimeter float64) float64 {
	if len(g.window) == 0 || perimeter <= 0 {
		return 0
	}
	sum := 0.0
	for _, v := range g.window {
		sum += v
	}
	return sum / float64(len(g.window)) / perimeter * displayScale
}

// Len returns the current window length, at most WindowSize.
func (g *PressureGauge) Len() int {
	return len(g.window)
}

// Samples returns a copy of the window, oldest first.
func (g *PressureGauge) Samples() []float64 {
	out := make([]float64, len(g.window))
	copy(out, g.window)
	return out
}

// Reset empties the window.
func (g *PressureGauge) Reset() {
	g.window = g.window[:0]
}
