// Package thermo provides Maxwell–Boltzmann velocity sampling and the
// closed-form kinetic theory values used by the gas engine:
//
//   - [Sampler]: Box–Muller thermal velocity sampler
//   - [MeanSpeed]: theoretical mean speed sqrt(8kT/πm)
//   - [MeanKineticEnergy]: equipartition value 1.5kT
//   - [SpeedDensity]: 2-D Maxwell–Boltzmann speed distribution
//
// Physical velocities are in m/s. The engine stores pixel velocities;
// [PixelsPerMeter] is the single documented conversion factor between the
// two, calibrated so a helium atom at the reference temperature moves at
// the reference on-screen speed.
package thermo
