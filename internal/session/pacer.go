package session

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Pacer inserts jittered pauses between page interactions.
type Pacer struct {
	min, max time.Duration

	mu  sync.Mutex
	rng *rand.Rand

	// Sleep waits for d; tests replace it.
	Sleep func(ctx context.Context, d time.Duration) error
}

func NewPacer(min, max time.Duration) *Pacer {
	if max < min {
		max = min
	}
	return &Pacer{
		min:   min,
		max:   max,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		Sleep: Sleep,
	}
}

// Pause waits a random duration within the configured bounds.
func (p *Pacer) Pause(ctx context.Context) error {
	return p.Between(ctx, p.min, p.max)
}

// Between waits a random duration in [lo, hi].
func (p *Pacer) Between(ctx context.Context, lo, hi time.Duration) error {
	return p.Sleep(ctx, p.Duration(lo, hi))
}

func (p *Pacer) Duration(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return lo + time.Duration(p.rng.Int63n(int64(hi-lo)+1))
}

// Intn returns a random int in [lo, hi].
func (p *Pacer) Intn(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return lo + p.rng.Intn(hi-lo+1)
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
