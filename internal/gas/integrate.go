package gas

const (
	// substeps subdivides each frame's dt so collision response stays
	// stable at high speeds. Fewer substeps means fast pairs can skip
	// past each other between checks; a known trade-off, not a bug.
	substeps = 3

	// maxFrameDt caps a frame hitch so particles cannot tunnel
	// through walls in one step.
	maxFrameDt = 0.05
)

// Update advances the simulation by dt seconds. Parameter changes are
// applied atomically before any integration, then each substep moves
// every particle, resolves pairwise collisions once over all unordered
// pairs, and reflects off walls. The frame's accumulated wall impulse
// is pushed into the pressure window afterwards.
//
// Stored velocities are px/s against a one-second reference interval,
// so displacement per substep is simply v·subDt. No-op before Init or
// after Destroy.
func (e *Engine) Update(dt float64, params Params) {
	if !e.initialized {
		return
	}
	e.apply(params)
	if dt <= 0 {
		return
	}
	if dt > maxFrameDt {
		dt = maxFrameDt
	}

	e.frameImpulse = 0
	sub := dt / substeps
	for s := 0; s < substeps; s++ {
		for i := range e.particles {
			p := &e.particles[i]
			p.X += p.VX * sub
			p.Y += p.VY * sub
		}
		e.resolvePairs()
		e.reflectWalls()
	}
	e.gauge.Push(e.frameImpulse)
	e.elapsed += dt
}
