package thermo

import (
	"math"
	"math/rand"
	"testing"
)

func TestMeanSpeed(t *testing.T) {
	// Helium at 300K: sqrt(8kT/(πm)) ≈ 1259.6 m/s (kinetic theory tables).
	got := MeanSpeed(heliumMass, 300)
	if math.Abs(got-1259.6) > 1.0 {
		t.Errorf("helium mean speed at 300K: got %.1f, expected ~1259.6", got)
	}
}

func TestMeanSpeedScaling(t *testing.T) {
	// Mean speed scales as sqrt(T) and as 1/sqrt(m).
	v1 := MeanSpeed(heliumMass, 300)
	v2 := MeanSpeed(heliumMass, 1200)
	if math.Abs(v2/v1-2.0) > 1e-12 {
		t.Errorf("quadrupling T should double mean speed, ratio %f", v2/v1)
	}

	v3 := MeanSpeed(4*heliumMass, 300)
	if math.Abs(v1/v3-2.0) > 1e-12 {
		t.Errorf("quadrupling mass should halve mean speed, ratio %f", v1/v3)
	}
}

func TestMeanKineticEnergy(t *testing.T) {
	e := MeanKineticEnergy(300)
	// Constant folding rounds the all-constant expression once, the
	// function twice; compare within a relative ulp-scale tolerance.
	expected := 1.5 * BoltzmannConst * 300
	if math.Abs(e-expected)/expected > 1e-12 {
		t.Errorf("expected %e, got %e", expected, e)
	}
}

func TestMeanKineticEnergyScalesLinearly(t *testing.T) {
	e1 := MeanKineticEnergy(300)
	e2 := MeanKineticEnergy(600)
	if math.Abs(e2/e1-2.0) > 1e-12 {
		t.Errorf("doubling T should double mean energy, ratio %f", e2/e1)
	}
}

func TestSpeedDensityPeak(t *testing.T) {
	// The 2-D distribution peaks at the most probable speed sqrt(kT/m).
	mp := math.Sqrt(BoltzmannConst * 300 / heliumMass)
	peak := SpeedDensity(heliumMass, 300, mp)

	for _, v := range []float64{mp * 0.5, mp * 0.9, mp * 1.1, mp * 2.0} {
		if SpeedDensity(heliumMass, 300, v) >= peak {
			t.Errorf("density at %.0f m/s should be below the peak at %.0f m/s", v, mp)
		}
	}
}

func TestSamplerMeanSpeed(t *testing.T) {
	s := NewSampler(rand.New(rand.NewSource(42)))

	n := 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		vx, vy := s.SampleVelocity(heliumMass, 300)
		sum += math.Hypot(vx, vy)
	}
	empirical := sum / float64(n)

	// 2-D sampled speeds average sqrt(πkT/2m); within 2% for 20k samples.
	expected := math.Sqrt(math.Pi * BoltzmannConst * 300 / (2 * heliumMass))
	if math.Abs(empirical-expected)/expected > 0.02 {
		t.Errorf("empirical mean speed %.1f, expected %.1f", empirical, expected)
	}
}

func TestSamplerComponentsUnbiased(t *testing.T) {
	s := NewSampler(rand.New(rand.NewSource(7)))

	n := 20000
	sumX, sumY := 0.0, 0.0
	for i := 0; i < n; i++ {
		vx, vy := s.SampleVelocity(heliumMass, 300)
		sumX += vx
		sumY += vy
	}

	sigma := math.Sqrt(BoltzmannConst * 300 / heliumMass)
	tol := 4 * sigma / math.Sqrt(float64(n))
	if math.Abs(sumX/float64(n)) > tol || math.Abs(sumY/float64(n)) > tol {
		t.Errorf("component means (%.2f, %.2f) exceed tolerance %.2f",
			sumX/float64(n), sumY/float64(n), tol)
	}
}

func TestPixelsPerMeterCalibration(t *testing.T) {
	px := MeanSpeed(heliumMass, ReferenceTemperature) * PixelsPerMeter
	if math.Abs(px-ReferencePixelSpeed) > 1e-9 {
		t.Errorf("reference helium speed maps to %.2f px/s, expected %.1f", px, ReferencePixelSpeed)
	}
}
