package thermo

import "math"

const (
	// BoltzmannConst is kB in J/K (exact SI value).
	BoltzmannConst = 1.380649e-23

	// Calibration anchor: a helium atom at ReferenceTemperature maps to
	// ReferencePixelSpeed on screen. Everything else scales from there.
	ReferenceTemperature = 300.0
	ReferencePixelSpeed  = 120.0

	heliumMass = 6.6464731e-27
)

// PixelsPerMeter converts physical speeds (m/s) into on-screen pixel
// speeds (px/s). It is a presentation calibration, not physics: screen
// speed is not physical speed.
var PixelsPerMeter = ReferencePixelSpeed / MeanSpeed(heliumMass, ReferenceTemperature)

// MeanSpeed returns the Maxwell–Boltzmann mean speed sqrt(8kT/(πm)) in m/s.
// It is the theoretical value for the given temperature, never a
// measurement of a live ensemble.
func MeanSpeed(mass, temperature float64) float64 {
	return math.Sqrt(8 * BoltzmannConst * temperature / (math.Pi * mass))
}

// MeanKineticEnergy returns the equipartition average kinetic energy
// 1.5kT in joules.
func MeanKineticEnergy(temperature float64) float64 {
	return 1.5 * BoltzmannConst * temperature
}

// SpeedDensity returns the 2-D Maxwell–Boltzmann probability density at
// speed v (m/s) for the given mass and temperature:
//
//	f(v) = (m·v / kT) · exp(-m·v² / 2kT)
func SpeedDensity(mass, temperature, v float64) float64 {
	kt := BoltzmannConst * temperature
	return mass * v / kt * math.Exp(-mass*v*v/(2*kt))
}
