package app

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	// ErrNoSeeds rejects a research request with an empty seed list.
	ErrNoSeeds = errors.New("seed keyword list is empty")

	// ErrNoResults reports a pipeline run that produced zero records. The
	// heuristic generator makes this unreachable by construction for valid
	// input, but it is surfaced explicitly rather than returned as a silent
	// empty success.
	ErrNoResults = errors.New("research produced no results")
)
