package thermo

import (
	"math"
	"math/rand"
)

// Sampler draws thermal velocity components from a normal distribution
// with σ = sqrt(kT/m), so that aggregated over many particles the
// components approximate Maxwell–Boltzmann at the target temperature.
// The uniform source is injected so tests can fix the seed.
type Sampler struct {
	rng *rand.Rand
}

func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// SampleVelocity returns an (vx, vy) pair in m/s for a particle of the
// given mass at the given temperature. The two components are drawn
// independently.
func (s *Sampler) SampleVelocity(mass, temperature float64) (vx, vy float64) {
	sigma := math.Sqrt(BoltzmannConst * temperature / mass)
	return sigma * s.normal(), sigma * s.normal()
}

// normal is one Box–Muller draw: sqrt(-2 ln u1) cos(2π u2).
func (s *Sampler) normal() float64 {
	u1 := s.rng.Float64()
	if u1 == 0 {
		// ln(0) is undefined; substitute the smallest positive float.
		u1 = math.SmallestNonzeroFloat64
	}
	u2 := s.rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
