package transport

import (
	"context"
	"math/rand/v2"
	"time"
)

// Jitter sleeps a random duration before each scrape request.
type Jitter struct {
	Min time.Duration
	Max time.Duration
}

// NewJitter returns the jitter for a named profile, or nil for "none" and unknown names.
func NewJitter(profile string) *Jitter {
	switch profile {
	case "cautious":
		return &Jitter{Min: time.Second, Max: 3 * time.Second}
	case "normal":
		return &Jitter{Min: 200 * time.Millisecond, Max: 800 * time.Millisecond}
	default:
		return nil
	}
}

// Wait sleeps for a random duration within [Min, Max) or until ctx is done.
func (j *Jitter) Wait(ctx context.Context) error {
	t := time.NewTimer(j.next())
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *Jitter) next() time.Duration {
	if j.Min >= j.Max {
		return j.Min
	}
	return j.Min + time.Duration(rand.Int64N(int64(j.Max-j.Min)))
}
