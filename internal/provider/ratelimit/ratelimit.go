// Package ratelimit enforces a minimum delay between successive calls to the
// same named provider.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// defaultDelay applies to provider ids without an explicit delay.
const defaultDelay = time.Second

// Limiter tracks the last call time per provider id and suspends callers
// until that provider's configured delay has elapsed. Different provider ids
// never block each other; a per-id guard serializes concurrent callers that
// share an id.
type Limiter struct {
	mu           sync.Mutex
	entries      map[string]*entry
	delays       map[string]time.Duration
	defaultDelay time.Duration
}

type entry struct {
	mu   sync.Mutex
	last time.Time
}

// New creates a Limiter with configuration options.
func New(opts ...Option) *Limiter {
	l := &Limiter{
		entries:      make(map[string]*entry),
		delays:       make(map[string]time.Duration),
		defaultDelay: defaultDelay,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Acquire blocks until at least the configured delay has elapsed since the
// previous Acquire for the same provider id. The first call for an id never
// waits. Returns early with the context error if ctx is canceled while
// waiting.
func (l *Limiter) Acquire(ctx context.Context, providerID string) error {
	e := l.entry(providerID)
	delay := l.delay(providerID)

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.last.IsZero() && delay > 0 {
		// time.Since uses the monotonic clock reading carried by e.last.
		if wait := delay - time.Since(e.last); wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return fmt.Errorf("rate limit wait for %s: %w", providerID, ctx.Err())
			case <-timer.C:
			}
		}
	}

	e.last = time.Now()
	return nil
}

// Delay reports the configured delay for a provider id.
func (l *Limiter) Delay(providerID string) time.Duration {
	return l.delay(providerID)
}

func (l *Limiter) entry(providerID string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[providerID]
	if !ok {
		e = &entry{}
		l.entries[providerID] = e
	}
	return e
}

func (l *Limiter) delay(providerID string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if d, ok := l.delays[providerID]; ok {
		return d
	}
	return l.defaultDelay
}
