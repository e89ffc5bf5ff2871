package gas

import "math"

// Species is immutable reference data for one gas. Particles share a
// species by index into the engine's species slice.
type Species struct {
	Name         string
	Mass         float64 // kg
	RadiusFactor float64 // multiplier on the base display radius
}

// DefaultSpecies returns the standard three-gas mix with real atomic
// masses. Radius factors are display proportions, not physical sizes.
func DefaultSpecies() []Species {
	return []Species{
		{Name: "helium", Mass: 6.6464731e-27, RadiusFactor: 0.8},
		{Name: "neon", Mass: 3.3509177e-26, RadiusFactor: 1.0},
		{Name: "argon", Mass: 6.6335209e-26, RadiusFactor: 1.25},
	}
}

// Particle is one gas atom. Positions are in px, velocities in px/s.
// Particles are owned exclusively by the engine and mutated in place
// every substep.
type Particle struct {
	X, Y         float64
	VX, VY       float64
	Radius       float64
	SpeciesIndex int
}

// Speed returns the particle's speed in px/s.
func (p Particle) Speed() float64 {
	return math.Hypot(p.VX, p.VY)
}

// Region is the axis-aligned bounding rectangle of the gas. Every
// particle center stays within [Left+r, Right-r] × [Top+r, Bottom-r]
// after each substep.
type Region struct {
	Left, Right, Top, Bottom float64
}

func (r Region) Width() float64  { return r.Right - r.Left }
func (r Region) Height() float64 { return r.Bottom - r.Top }

// Perimeter returns the wall length the pressure estimate divides by.
func (r Region) Perimeter() float64 {
	return 2 * (r.Width() + r.Height())
}

// Contains reports whether the particle, including its radius, lies
// inside the region.
func (r Region) Contains(p Particle) bool {
	return p.X-p.Radius >= r.Left && p.X+p.Radius <= r.Right &&
		p.Y-p.Radius >= r.Top && p.Y+p.Radius <= r.Bottom
}

// Params is the flat mapping of named numeric knobs passed to Update.
// An absent knob retains its previous value.
type Params map[string]float64

// Knob names accepted by Update.
const (
	ParamTemperature = "temperature"
	ParamPopulation  = "population"
	ParamSize        = "size"
)
