package zha

import (
	"context"
	"golang.org/x/sync/semaphore"
	"sync/atomic"
)

// DefaultConcurrency is the number of channel operations a single device may
// have in flight.
const DefaultConcurrency = 3

// limiter bounds concurrent channel operations of a device, recording the peak
// number in flight.
type limiter struct {
	sem      *semaphore.Weighted
	inFlight atomic.Int64
	peak     atomic.Int64
}

func newLimiter(n int64) *limiter {
	return &limiter{sem: semaphore.NewWeighted(n)}
}

// Do runs fn once a slot is free, the slot is released however fn returns.
func (l *limiter) Do(ctx context.Context, fn func(context.Context) error) error {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer l.sem.Release(1)

	current := l.inFlight.Add(1)
	defer l.inFlight.Add(-1)

	for {
		peak := l.peak.Load()
		if current <= peak || l.peak.CompareAndSwap(peak, current) {
			break
		}
	}

	return fn(ctx)
}

func (l *limiter) InFlight() int64 {
	return l.inFlight.Load()
}

func (l *limiter) Peak() int64 {
	return l.peak.Load()
}
