package clock

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Backoff produces a deterministic exponential delay sequence.
type Backoff struct {
	exp *backoff.ExponentialBackOff
}

// NewBackoff returns a Backoff starting at initial, multiplying by multiplier
// and capped at max. Jitter is disabled so retry schedules are reproducible.
func NewBackoff(initial, max time.Duration, multiplier float64) *Backoff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = initial
	exp.MaxInterval = max
	exp.Multiplier = multiplier
	exp.RandomizationFactor = 0
	exp.MaxElapsedTime = 0
	exp.Reset()
	return &Backoff{exp: exp}
}

// Next returns the delay before the next attempt.
func (b *Backoff) Next() time.Duration {
	return b.exp.NextBackOff()
}

// Reset restarts the sequence from the initial delay.
func (b *Backoff) Reset() {
	b.exp.Reset()
}
