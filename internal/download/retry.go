package download

import (
	"math/rand"
	"time"
)

// RetryPolicy bounds how transient network failures are retried:
// exponential backoff from BaseDelay, capped at MaxDelay, with a
// random jitter fraction so concurrent tasks do not retry in lockstep.
type RetryPolicy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// Jitter is the fraction of the delay randomized in either
	// direction, in [0,1].
	Jitter float64
}

// DefaultRetryPolicy is used when the engine is configured without one.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    10 * time.Second,
		Jitter:      0.2,
	}
}

// Delay returns the backoff before the given retry. attempt counts
// from 1 (the delay after the first failure).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := p.BaseDelay << (attempt - 1)
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	if p.Jitter > 0 {
		spread := float64(d) * p.Jitter
		d = time.Duration(float64(d) + (rand.Float64()*2-1)*spread)
	}
	if d < 0 {
		d = 0
	}
	return d
}
