package gas

import "errors"

// Lifecycle misuse errors. The physics hot path never returns errors:
// numerical degeneracies are silent, well-defined fallbacks.
var (
	// ErrNotInitialized indicates a read before Init or after Destroy.
	ErrNotInitialized = errors.New("gas: engine not initialized")

	// ErrInvalidRegion indicates a bounding region too small to hold a particle.
	ErrInvalidRegion = errors.New("gas: region too small for particle radius")
)
