package gas

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/kvasha/gaslab/internal/observe"
	"github.com/kvasha/gaslab/internal/thermo"
)

const (
	// DefaultTemperature is the default target temperature in kelvin.
	DefaultTemperature = 300.0
	// DefaultPopulation is the default particle count.
	DefaultPopulation = 80
	// DefaultSizeScale is the default particle size multiplier.
	DefaultSizeScale = 1.0
	// DefaultBaseRadius is the unscaled particle radius in px.
	DefaultBaseRadius = 4.0

	// minTemperature floors the temperature knob so the sampler never
	// divides by zero or roots a negative.
	minTemperature = 1e-3
	// minSizeScale floors the size knob so radii stay positive.
	minSizeScale = 0.1
)

// Config holds the construction-time defaults of an engine. Reset
// returns the engine to these values, not to the current knobs.
type Config struct {
	Temperature float64
	Population  int
	SizeScale   float64
	BaseRadius  float64
	Species     []Species
	Seed        int64 // 0 means time-seeded
}

func DefaultConfig() Config {
	return Config{
		Temperature: DefaultTemperature,
		Population:  DefaultPopulation,
		SizeScale:   DefaultSizeScale,
		BaseRadius:  DefaultBaseRadius,
		Species:     DefaultSpecies(),
	}
}

// Engine is one independent gas simulation instance. It owns its
// particle store and pressure window exclusively; nothing else writes
// to them.
type Engine struct {
	cfg Config

	species   []Species
	particles []Particle
	region    Region

	temperature float64
	population  int
	sizeScale   float64

	rng     *rand.Rand
	sampler *thermo.Sampler
	gauge   *observe.PressureGauge

	frameImpulse float64
	elapsed      float64
	initialized  bool
}

// New creates an engine from cfg. Zero-valued fields fall back to the
// defaults. Call Init before the first Update.
func New(cfg Config) *Engine {
	if cfg.Temperature <= 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.Population <= 0 {
		cfg.Population = DefaultPopulation
	}
	if cfg.SizeScale <= 0 {
		cfg.SizeScale = DefaultSizeScale
	}
	if cfg.BaseRadius <= 0 {
		cfg.BaseRadius = DefaultBaseRadius
	}
	if len(cfg.Species) == 0 {
		cfg.Species = DefaultSpecies()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return &Engine{
		cfg:     cfg,
		species: cfg.Species,
		rng:     rng,
		sampler: thermo.NewSampler(rng),
	}
}

// Init allocates the particle store inside a width×height region and
// seeds it from the current parameters. Callable again after Destroy
// to restart cleanly.
func (e *Engine) Init(width, height float64) error {
	maxRadius := 0.0
	for _, sp := range e.cfg.Species {
		r := e.cfg.BaseRadius * sp.RadiusFactor * e.cfg.SizeScale
		if r > maxRadius {
			maxRadius = r
		}
	}
	if width <= 2*maxRadius || height <= 2*maxRadius {
		return fmt.Errorf("init %vx%v: %w", width, height, ErrInvalidRegion)
	}

	e.region = Region{Left: 0, Right: width, Top: 0, Bottom: height}
	e.temperature = e.cfg.Temperature
	e.population = e.cfg.Population
	e.sizeScale = e.cfg.SizeScale
	e.gauge = observe.NewPressureGauge()
	e.frameImpulse = 0
	e.elapsed = 0

	e.particles = make([]Particle, 0, e.population)
	for i := 0; i < e.population; i++ {
		e.particles = append(e.particles, e.spawn(i))
	}
	e.initialized = true
	return nil
}

// Reset re-seeds the particle store from the construction-time
// defaults and clears the pressure window. Current knob values are
// discarded.
func (e *Engine) Reset() error {
	if !e.initialized {
		return ErrNotInitialized
	}
	return e.Init(e.region.Width(), e.region.Height())
}

// Destroy releases the particle store and pressure window. Idempotent;
// the engine can be re-initialized afterwards.
func (e *Engine) Destroy() {
	e.particles = nil
	e.gauge = nil
	e.initialized = false
}

// Resize recomputes the bounding region and clamps existing particles
// back inside it. Velocities are not resampled.
func (e *Engine) Resize(width, height float64) {
	if !e.initialized || width <= 0 || height <= 0 {
		return
	}
	e.region = Region{Left: 0, Right: width, Top: 0, Bottom: height}
	for i := range e.particles {
		p := &e.particles[i]
		p.X = clamp(p.X, e.region.Left+p.Radius, e.region.Right-p.Radius)
		p.Y = clamp(p.Y, e.region.Top+p.Radius, e.region.Bottom-p.Radius)
	}
}

// Particles returns the live particle slice for rendering. Callers
// must treat it as read-only; it is invalidated by the next Update.
func (e *Engine) Particles() []Particle {
	return e.particles
}

// Species returns the configured species set.
func (e *Engine) Species() []Species { return e.species }

func (e *Engine) Region() Region       { return e.region }
func (e *Engine) Temperature() float64 { return e.temperature }
func (e *Engine) Population() int      { return e.population }
func (e *Engine) SizeScale() float64   { return e.sizeScale }
func (e *Engine) Elapsed() float64     { return e.elapsed }

// Pressure returns the rolling pressure estimate for display.
func (e *Engine) Pressure() float64 {
	if !e.initialized {
		return 0
	}
	return e.gauge.Pressure(e.region.Perimeter())
}

// PressureSamples returns a copy of the impulse window, oldest first.
func (e *Engine) PressureSamples() []float64 {
	if !e.initialized {
		return nil
	}
	return e.gauge.Samples()
}

// Observables returns this frame's macroscopic snapshot: the pressure
// estimate plus per-species empirical and theoretical statistics.
func (e *Engine) Observables() observe.Frame {
	f := observe.Frame{
		Time:        e.elapsed,
		Pressure:    e.Pressure(),
		WallImpulse: e.frameImpulse,
	}
	counts := make([]int, len(e.species))
	sums := make([]float64, len(e.species))
	for _, p := range e.particles {
		counts[p.SpeciesIndex]++
		sums[p.SpeciesIndex] += p.Speed()
	}
	for i, sp := range e.species {
		st := observe.SpeciesStats{
			Name:                 sp.Name,
			Count:                counts[i],
			TheoreticalMeanSpeed: thermo.MeanSpeed(sp.Mass, e.temperature) * thermo.PixelsPerMeter,
			MeanKineticEnergy:    thermo.MeanKineticEnergy(e.temperature),
		}
		if counts[i] > 0 {
			st.MeanSpeed = sums[i] / float64(counts[i])
		}
		f.Species = append(f.Species, st)
	}
	return f
}

// StateDescription returns a one-line human-readable summary.
func (e *Engine) StateDescription() string {
	if !e.initialized {
		return "gas: not initialized"
	}
	f := e.Observables()
	var b strings.Builder
	fmt.Fprintf(&b, "T=%.0fK N=%d P=%.3f", e.temperature, len(e.particles), f.Pressure)
	for _, s := range f.Species {
		fmt.Fprintf(&b, " %s:%d", s.Name, s.Count)
	}
	return b.String()
}

// apply reconciles the particle store against a parameter diff. Runs
// atomically at the top of Update, never mid-substep.
func (e *Engine) apply(params Params) {
	if t, ok := params[ParamTemperature]; ok {
		e.setTemperature(t)
	}
	if n, ok := params[ParamPopulation]; ok {
		e.setPopulation(int(math.Round(n)))
	}
	if s, ok := params[ParamSize]; ok {
		e.setSize(s)
	}
}

// setTemperature rescales every velocity by sqrt(Tnew/Told),
// preserving direction. Positions are untouched.
func (e *Engine) setTemperature(t float64) {
	if t < minTemperature {
		t = minTemperature
	}
	if t == e.temperature {
		return
	}
	factor := math.Sqrt(t / e.temperature)
	for i := range e.particles {
		e.particles[i].VX *= factor
		e.particles[i].VY *= factor
	}
	e.temperature = t
}

// setPopulation grows the store with freshly sampled particles or
// truncates the suffix. The surviving prefix is untouched.
func (e *Engine) setPopulation(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(e.particles) {
		e.particles = e.particles[:n]
	}
	for i := len(e.particles); i < n; i++ {
		e.particles = append(e.particles, e.spawn(i))
	}
	e.population = n
}

// setSize recomputes every radius and clamps wall-adjacent particles
// back inside the region, so a grown particle is never left partially
// outside until the next wall pass.
func (e *Engine) setSize(s float64) {
	if s < minSizeScale {
		s = minSizeScale
	}
	e.sizeScale = s
	for i := range e.particles {
		p := &e.particles[i]
		sp := e.species[p.SpeciesIndex]
		p.Radius = e.cfg.BaseRadius * sp.RadiusFactor * s
		p.X = clamp(p.X, e.region.Left+p.Radius, e.region.Right-p.Radius)
		p.Y = clamp(p.Y, e.region.Top+p.Radius, e.region.Bottom-p.Radius)
	}
}

// spawn creates a particle at a uniform random in-bounds position with
// a thermally sampled velocity. Species are assigned round-robin by
// index so a later population grow/shrink keeps a stable prefix.
func (e *Engine) spawn(index int) Particle {
	si := index % len(e.species)
	sp := e.species[si]
	radius := e.cfg.BaseRadius * sp.RadiusFactor * e.sizeScale

	vx, vy := e.sampler.SampleVelocity(sp.Mass, e.temperature)

	w := e.region.Width() - 2*radius
	h := e.region.Height() - 2*radius
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Particle{
		X:            e.region.Left + radius + e.rng.Float64()*w,
		Y:            e.region.Top + radius + e.rng.Float64()*h,
		VX:           vx * thermo.PixelsPerMeter,
		VY:           vy * thermo.PixelsPerMeter,
		Radius:       radius,
		SpeciesIndex: si,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
