package ratelimit

import "time"

// Option applies a configuration option to the Limiter.
type Option func(*Limiter)

// WithDelay sets the minimum delay between calls for one provider id.
// A delay of zero means the provider never waits.
func WithDelay(providerID string, delay time.Duration) Option {
	return func(l *Limiter) {
		if delay >= 0 {
			l.delays[providerID] = delay
		}
	}
}

// WithDefaultDelay sets the delay used for provider ids without an explicit
// WithDelay entry.
func WithDefaultDelay(delay time.Duration) Option {
	return func(l *Limiter) {
		if delay >= 0 {
			l.defaultDelay = delay
		}
	}
}
