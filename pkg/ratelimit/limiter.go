package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for rate limiting
type Limiter interface {
	// Wait blocks until another request is allowed or ctx is done
	Wait(ctx context.Context) error
	// Allow reports whether a request may proceed now without waiting
	Allow() bool
}

// RequestCeiling caps outgoing requests per minute with a token bucket
type RequestCeiling struct {
	limiter *rate.Limiter
}

// NewRequestCeiling creates a limiter allowing requestsPerMinute requests,
// with bursts of one so requests stay spread out. Zero or less disables the ceiling.
func NewRequestCeiling(requestsPerMinute int) *RequestCeiling {
	if requestsPerMinute <= 0 {
		return &RequestCeiling{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	every := time.Minute / time.Duration(requestsPerMinute)
	return &RequestCeiling{limiter: rate.NewLimiter(rate.Every(every), 1)}
}

// Wait blocks until a token is available
func (r *RequestCeiling) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}

// Allow checks if a request can proceed
func (r *RequestCeiling) Allow() bool {
	return r.limiter.Allow()
}

// Unlimited returns a limiter that never blocks
func Unlimited() Limiter {
	return NewRequestCeiling(0)
}
