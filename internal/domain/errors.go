package domain

import "errors"

// Computation and precondition failures surfaced by the drift and time
// stages. These indicate data-quality conditions that need operator
// attention and must never degrade silently into NaN output.
var (
	// ErrMissingEndpoints means drift correction was requested but the
	// message lacks a parseable REL or SPG fix.
	ErrMissingEndpoints = errors.New("drift correction requires both REL and SPG fixes")

	// ErrDegenerateSpan means every advected position collapsed onto one
	// point, so the trajectory cannot be normalized onto the REL-SPG span.
	ErrDegenerateSpan = errors.New("degenerate trajectory span")

	// ErrZeroVelocity means a level pair has no wind-speed proxy, so no
	// elapsed-time offset can be reconstructed for it.
	ErrZeroVelocity = errors.New("zero wind velocity between levels")

	// ErrNoDecodeOutput means the external decode routine produced no
	// output for the message. The format is deterministic, so this is a
	// malformed message, not a transient condition; it is never retried.
	ErrNoDecodeOutput = errors.New("external decoder produced no output")
)
