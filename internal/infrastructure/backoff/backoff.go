package backoff

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// Backoff computes exponential delays between retry attempts.
type Backoff struct {
	Min    time.Duration
	Max    time.Duration
	Factor float64
	Jitter bool
}

func New(min, max time.Duration, factor float64) *Backoff {
	return &Backoff{
		Min:    min,
		Max:    max,
		Factor: factor,
		Jitter: true,
	}
}

// Duration returns the delay before attempt n (1-based).
func (b *Backoff) Duration(attempt int) time.Duration {
	if attempt <= 0 {
		return b.Min
	}

	d := float64(b.Min) * math.Pow(b.Factor, float64(attempt-1))
	if d > float64(b.Max) {
		d = float64(b.Max)
	}
	if b.Jitter {
		d *= 0.5 + rand.Float64()*0.5
	}
	return time.Duration(d)
}

// Wait sleeps for Duration(attempt) or until ctx is done.
func (b *Backoff) Wait(ctx context.Context, attempt int) error {
	d := b.Duration(attempt)
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
