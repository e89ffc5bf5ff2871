package gas_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kvasha/gaslab/internal/gas"
	"github.com/kvasha/gaslab/internal/observe"
)

const frameDt = 1.0 / 60

func newEngine(cfg gas.Config) *gas.Engine {
	if cfg.Seed == 0 {
		cfg.Seed = 1234
	}
	e := gas.New(cfg)
	Expect(e.Init(320, 200)).To(Succeed())
	return e
}

var _ = Describe("Engine", func() {
	Describe("containment", func() {
		It("keeps every particle inside the bounding region over a long run", func() {
			e := newEngine(gas.Config{Temperature: 300, Population: 50})
			for frame := 0; frame < 600; frame++ {
				e.Update(frameDt, nil)
				region := e.Region()
				for _, p := range e.Particles() {
					Expect(region.Contains(p)).To(BeTrue(),
						"frame %d: particle at (%f,%f) escaped", frame, p.X, p.Y)
				}
			}
		})

		It("holds after shrinking the region mid-run", func() {
			e := newEngine(gas.Config{Population: 40})
			for frame := 0; frame < 60; frame++ {
				e.Update(frameDt, nil)
			}
			e.Resize(120, 90)
			region := e.Region()
			for _, p := range e.Particles() {
				Expect(region.Contains(p)).To(BeTrue())
			}
			for frame := 0; frame < 60; frame++ {
				e.Update(frameDt, nil)
				for _, p := range e.Particles() {
					Expect(region.Contains(p)).To(BeTrue())
				}
			}
		})
	})

	Describe("pairwise collisions", func() {
		It("conserves momentum through a two-particle collision", func() {
			e := newEngine(gas.Config{Population: 2})
			ps := e.Particles()
			species := e.Species()

			// Collision course near the center, far from any wall.
			ps[0] = gas.Particle{X: 150, Y: 100, VX: 90, VY: 10, Radius: 4, SpeciesIndex: 0}
			ps[1] = gas.Particle{X: 158, Y: 101, VX: -60, VY: -5, Radius: 4, SpeciesIndex: 1}

			ma := species[0].Mass
			mb := species[1].Mass
			px := ma*ps[0].VX + mb*ps[1].VX
			py := ma*ps[0].VY + mb*ps[1].VY

			e.Update(frameDt, nil)

			ps = e.Particles()
			Expect(ma*ps[0].VX + mb*ps[1].VX).To(BeNumerically("~", px, math.Abs(px)*1e-9))
			Expect(ma*ps[0].VY + mb*ps[1].VY).To(BeNumerically("~", py, math.Abs(py)*1e-9+1e-30))
		})

		It("exactly negates velocities in an equal-mass head-on collision", func() {
			e := newEngine(gas.Config{Population: 2})
			ps := e.Particles()

			ps[0] = gas.Particle{X: 150, Y: 100, VX: 30, VY: 0, Radius: 4, SpeciesIndex: 0}
			ps[1] = gas.Particle{X: 158.2, Y: 100, VX: -30, VY: 0, Radius: 4, SpeciesIndex: 0}

			e.Update(frameDt, nil)

			ps = e.Particles()
			Expect(ps[0].VX).To(BeNumerically("~", -30, 1e-9))
			Expect(ps[1].VX).To(BeNumerically("~", 30, 1e-9))
			Expect(ps[0].VY).To(BeZero())
			Expect(ps[1].VY).To(BeZero())
		})
	})

	Describe("temperature rescale", func() {
		It("returns every speed to its original value after T1 -> T2 -> T1", func() {
			e := newEngine(gas.Config{Temperature: 300, Population: 30})

			before := make([]float64, 30)
			for i, p := range e.Particles() {
				before[i] = p.Speed()
			}

			e.Update(0, gas.Params{gas.ParamTemperature: 750})
			e.Update(0, gas.Params{gas.ParamTemperature: 300})

			for i, p := range e.Particles() {
				Expect(p.Speed()).To(BeNumerically("~", before[i], before[i]*1e-12))
			}
		})
	})

	Describe("population reconciliation", func() {
		It("grows by appending and keeps the existing prefix untouched", func() {
			e := newEngine(gas.Config{Population: 50})

			orig := make([]gas.Particle, 50)
			copy(orig, e.Particles())

			e.Update(0, gas.Params{gas.ParamPopulation: 80})

			ps := e.Particles()
			Expect(ps).To(HaveLen(80))
			for i := 0; i < 50; i++ {
				Expect(ps[i]).To(Equal(orig[i]))
			}
		})

		It("shrinks to a prefix of the original set", func() {
			e := newEngine(gas.Config{Population: 50})

			orig := make([]gas.Particle, 50)
			copy(orig, e.Particles())

			e.Update(0, gas.Params{gas.ParamPopulation: 30})

			ps := e.Particles()
			Expect(ps).To(HaveLen(30))
			for i := 0; i < 30; i++ {
				Expect(ps[i]).To(Equal(orig[i]))
			}
		})
	})

	Describe("pressure window", func() {
		It("never exceeds its fixed capacity", func() {
			e := newEngine(gas.Config{Population: 30})
			for frame := 0; frame < 3*observe.WindowSize; frame++ {
				e.Update(frameDt, nil)
				Expect(len(e.PressureSamples())).To(BeNumerically("<=", observe.WindowSize))
			}
			Expect(e.PressureSamples()).To(HaveLen(observe.WindowSize))
		})
	})

	Describe("ten-second run at 300K with 50 particles", func() {
		It("stays bounded, fills the pressure window, and tracks kinetic theory", func() {
			e := newEngine(gas.Config{Temperature: 300, Population: 50})

			empirical := 0.0
			tail := 0
			for frame := 0; frame < 600; frame++ {
				e.Update(frameDt, nil)
				region := e.Region()
				for _, p := range e.Particles() {
					Expect(region.Contains(p)).To(BeTrue())
				}
				// Time-average the empirical mean speed over the last
				// two seconds to damp small-ensemble noise.
				if frame >= 480 {
					empirical += e.Observables().MeanSpeed()
					tail++
				}
			}

			Expect(e.PressureSamples()).To(HaveLen(observe.WindowSize))
			Expect(e.Pressure()).To(BeNumerically(">", 0))

			empirical /= float64(tail)
			theory := e.Observables().TheoreticalMeanSpeed()
			// Generous tolerance: 50 particles diverge visibly from the
			// closed form, and that divergence is part of the contract.
			Expect(empirical).To(BeNumerically("~", theory, theory*0.25))
		})
	})
})
