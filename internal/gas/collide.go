package gas

import "math"

// separationEps pushes resolved pairs slightly beyond touching so the
// same contact does not re-trigger next substep.
const separationEps = 0.05

func (e *Engine) resolvePairs() {
	ps := e.particles
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			e.resolvePair(&ps[i], &ps[j])
		}
	}
}

// resolvePair applies a mass-weighted elastic impulse along the
// collision normal. Momentum is conserved exactly; with restitution 1
// the normal-component kinetic energy is too, and the tangential
// components are untouched.
func (e *Engine) resolvePair(a, b *Particle) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)
	minDist := a.Radius + b.Radius
	if dist >= minDist || dist == 0 {
		// No contact, or exactly coincident centers. Coincidence is a
		// degenerate but valid state; normal integration separates
		// the pair by the next substep.
		return
	}
	nx, ny := dx/dist, dy/dist

	// Relative velocity along the normal. Non-positive means the pair
	// is already separating: skip, or the same contact would resolve
	// twice across frames.
	dvn := (a.VX-b.VX)*nx + (a.VY-b.VY)*ny
	if dvn <= 0 {
		return
	}

	ma := e.species[a.SpeciesIndex].Mass
	mb := e.species[b.SpeciesIndex].Mass
	imp := 2 * dvn / (ma + mb)
	a.VX -= imp * mb * nx
	a.VY -= imp * mb * ny
	b.VX += imp * ma * nx
	b.VY += imp * ma * ny

	// Separate positionally along the normal, each particle moving by
	// the other's mass fraction: the heavier one moves less.
	overlap := minDist - dist + separationEps
	a.X -= overlap * mb / (ma + mb) * nx
	a.Y -= overlap * mb / (ma + mb) * ny
	b.X += overlap * ma / (ma + mb) * nx
	b.Y += overlap * ma / (ma + mb) * ny
}

// reflectWalls clamps each particle back inside the region and flips
// the offending velocity component, independently per axis. Each
// reflection transfers impulse 2m|v| to the wall; the frame total
// feeds the pressure estimate.
func (e *Engine) reflectWalls() {
	r := e.region
	for i := range e.particles {
		p := &e.particles[i]
		m := e.species[p.SpeciesIndex].Mass

		if p.X-p.Radius < r.Left {
			p.X = r.Left + p.Radius
			p.VX = -p.VX
			e.frameImpulse += 2 * m * math.Abs(p.VX)
		} else if p.X+p.Radius > r.Right {
			p.X = r.Right - p.Radius
			p.VX = -p.VX
			e.frameImpulse += 2 * m * math.Abs(p.VX)
		}

		if p.Y-p.Radius < r.Top {
			p.Y = r.Top + p.Radius
			p.VY = -p.VY
			e.frameImpulse += 2 * m * math.Abs(p.VY)
		} else if p.Y+p.Radius > r.Bottom {
			p.Y = r.Bottom - p.Radius
			p.VY = -p.VY
			e.frameImpulse += 2 * m * math.Abs(p.VY)
		}
	}
}
