package provider

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	// ErrAuth marks a permanent 401/403 failure; the provider disables
	// itself for the remainder of the run.
	ErrAuth = errors.New("provider authentication failed")

	// ErrTransport marks a transient network or HTTP failure.
	ErrTransport = errors.New("provider transport failed")

	// ErrParse marks a malformed or unexpected response shape.
	ErrParse = errors.New("provider response parse failed")
)
