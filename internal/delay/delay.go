package delay

import (
	"context"
	"math/rand"
	"time"
)

// Provider models the variable downstream processing latency applied before
// an order commits. Wait blocks the calling goroutine only and returns the
// context error when canceled before the delay elapses.
type Provider interface {
	Wait(ctx context.Context) error
}

type randomProvider struct {
	min time.Duration
	max time.Duration
}

// NewRandom returns a provider that sleeps a uniformly-random whole-second
// duration in [min, max]. A single provider is shared across request
// goroutines, so draws go through the locked package-level rand source.
func NewRandom(min, max time.Duration) Provider {
	if max < min {
		max = min
	}
	return &randomProvider{min: min, max: max}
}

func (p *randomProvider) Wait(ctx context.Context) error {
	return sleep(ctx, p.duration())
}

func (p *randomProvider) duration() time.Duration {
	seconds := int64(p.min / time.Second)
	if span := int64((p.max - p.min) / time.Second); span > 0 {
		seconds += rand.Int63n(span + 1)
	}
	return time.Duration(seconds) * time.Second
}

type fixedProvider struct {
	d time.Duration
}

// NewFixed returns a provider that always waits the given duration
// (zero for tests that should not block).
func NewFixed(d time.Duration) Provider {
	return fixedProvider{d: d}
}

func (p fixedProvider) Wait(ctx context.Context) error {
	return sleep(ctx, p.d)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
