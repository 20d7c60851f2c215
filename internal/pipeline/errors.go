package pipeline

import "errors"

// Error taxonomy for pipeline runs. Adapters treat both as fatal; the
// aggregation orchestrator downgrades ErrMissingInput to a skip-with-warning
// for its per-dataset loop.
var (
	// ErrMissingInput marks a referenced input file or directory that does
	// not exist.
	ErrMissingInput = errors.New("input not found")

	// ErrMalformedInput marks a raw file that exists but cannot be parsed
	// into the layout its adapter expects.
	ErrMalformedInput = errors.New("malformed input")
)
