package domain

import "errors"

// Stage failures. Every one of them is recoverable by retrying with a new seed.
var (
	ErrComposition = errors.New("no block composition found")
	ErrPath        = errors.New("no valid path found")
	ErrPlacement   = errors.New("no free cell for power/target gear")
	// ErrCoverageInvariant means a kept block ended with no live gear. It
	// points at a generator bug rather than bad luck.
	ErrCoverageInvariant = errors.New("kept block has no enabled gear")
	ErrValidation        = errors.New("level validation failed")
	ErrOverlap           = errors.New("blocks overlap")
	ErrUnreachable       = errors.New("power chain does not reach every target")
	ErrExhausted         = errors.New("level generation exhausted attempts")
)
