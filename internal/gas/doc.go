// Package gas implements a bounded 2-D gas of heterogeneous particles:
// Maxwell–Boltzmann-seeded thermal motion, pairwise elastic collisions,
// wall reflection with impulse accounting, and live re-parameterization
// without restarting the simulation.
//
// The core types are:
//
//   - [Engine]: instance-scoped simulation state and lifecycle
//   - [Particle]: position, velocity, radius, species index
//   - [Species]: immutable per-gas reference data
//   - [Region]: axis-aligned bounding rectangle
//   - [Params]: flat knob map applied atomically per frame
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. The host is expected to drive a
// single engine from one goroutine, calling Update once per frame and
// reading state between calls. Multiple engines are independent.
//
// # Scale
//
// Pairwise collision detection is an O(n²) scan over all unordered
// pairs. This is a deliberate ceiling: target populations are tens to
// low hundreds, where the scan fits comfortably in a frame budget.
package gas
