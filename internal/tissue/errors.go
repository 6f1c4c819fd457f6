package tissue

import "errors"

// Domain errors for mesh and stepping operations.
var (
	// ErrInvalidMesh indicates empty or length-mismatched vertex/normal input.
	ErrInvalidMesh = errors.New("tissue: invalid mesh (empty or mismatched vertex/normal arrays)")

	// ErrNoMesh indicates a step or reset was requested before any mesh loaded.
	ErrNoMesh = errors.New("tissue: no mesh loaded")

	// ErrIndexRange indicates the parallel vertex arrays diverged in length.
	// This is an internal invariant violation, not a recoverable condition.
	ErrIndexRange = errors.New("tissue: vertex index out of range (parallel arrays diverged)")

	// ErrInvalidStep indicates a non-positive timestep.
	ErrInvalidStep = errors.New("tissue: timestep must be positive")
)
