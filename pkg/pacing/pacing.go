package pacing

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Strategy yields the delay to wait before the next request or cycle
type Strategy interface {
	Next() time.Duration
}

// Uniform draws delays uniformly from [Min, Max]. A fixed interval is
// avoided on purpose: a constant cadence is easy to fingerprint.
type Uniform struct {
	Min time.Duration
	Max time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewUniform creates a uniform strategy with its own random source
func NewUniform(min, max time.Duration) *Uniform {
	if max < min {
		min, max = max, min
	}
	return &Uniform{
		Min: min,
		Max: max,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSeededUniform creates a uniform strategy with a deterministic source
func NewSeededUniform(min, max time.Duration, seed int64) *Uniform {
	u := NewUniform(min, max)
	u.rnd = rand.New(rand.NewSource(seed))
	return u
}

// Next returns a delay in [Min, Max]
func (u *Uniform) Next() time.Duration {
	span := u.Max - u.Min
	if span <= 0 {
		return u.Min
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if u.rnd == nil {
		u.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return u.Min + time.Duration(u.rnd.Int63n(int64(span)+1))
}

// Fixed always returns the same delay
type Fixed time.Duration

// Next returns the fixed delay
func (f Fixed) Next() time.Duration {
	return time.Duration(f)
}

// None returns a strategy that never waits
func None() Strategy {
	return Fixed(0)
}

// Recorder wraps a strategy and remembers every delay it produced
type Recorder struct {
	Strategy Strategy

	mu     sync.Mutex
	delays []time.Duration
}

// Next delegates to the wrapped strategy and records the result
func (r *Recorder) Next() time.Duration {
	d := time.Duration(0)
	if r.Strategy != nil {
		d = r.Strategy.Next()
	}
	r.mu.Lock()
	r.delays = append(r.delays, d)
	r.mu.Unlock()
	return d
}

// Delays returns a copy of the recorded delays
func (r *Recorder) Delays() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]time.Duration, len(r.delays))
	copy(out, r.delays)
	return out
}

// Sleep waits for the given delay or until the context is cancelled.
// A non-positive delay returns immediately.
func Sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
