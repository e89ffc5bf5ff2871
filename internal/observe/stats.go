package observe

// SpeciesStats pairs the measured state of one species with the
// closed-form kinetic theory values for the current temperature. The
// two are expected to diverge visibly for small populations; that
// divergence is the point, not an error.
type SpeciesStats struct {
	Name                 string
	Count                int
	MeanSpeed            float64 // empirical, px/s, from the live ensemble
	TheoreticalMeanSpeed float64 // sqrt(8kT/πm) in px/s
	MeanKineticEnergy    float64 // equipartition 1.5kT, joules
}

// Frame is one frame's observable snapshot.
type Frame struct {
	Time        float64
	Pressure    float64
	WallImpulse float64 // this frame's accumulated wall impulse
	Species     []SpeciesStats
}

// MeanSpeed returns the population-weighted empirical mean speed.
func (f Frame) MeanSpeed() float64 {
	sum, n := 0.0, 0
	for _, s := range f.Species {
		sum += s.MeanSpeed * float64(s.Count)
		n += s.Count
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// TheoreticalMeanSpeed returns the population-weighted theory value.
func (f Frame) TheoreticalMeanSpeed() float64 {
	sum, n := 0.0, 0
	for _, s := range f.Species {
		sum += s.TheoreticalMeanSpeed * float64(s.Count)
		n += s.Count
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// SpeedHistogram bins the given speeds into bins equal-width buckets
// over [0, maxSpeed] and normalizes the counts so the tallest bin is
// 1. Speeds at or beyond maxSpeed land in the last bin.
func SpeedHistogram(speeds []float64, bins int, maxSpeed float64) []float64 {
	if bins <= 0 || maxSpeed <= 0 {
		return nil
	}
	hist := make([]float64, bins)
	for _, v := range speeds {
		i := int(v / maxSpeed * float64(bins))
		if i < 0 {
			i = 0
		}
		if i >= bins {
			i = bins - 1
		}
		hist[i]++
	}
	peak := 0.0
	for _, c := range hist {
		if c > peak {
			peak = c
		}
	}
	if peak > 0 {
		for i := range hist {
			hist[i] /= peak
		}
	}
	return hist
}
