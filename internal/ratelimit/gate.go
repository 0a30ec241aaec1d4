package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Gate enforces a minimum spacing between operations against the chat
// gateway. It is a mutex-guarded "wait until elapsed >= spacing" gate, not a
// queue: callers block until their turn, FIFO-ish, no fairness guarantee.
// Gates only shape notification timing; they never affect account or ledger
// correctness.
type Gate struct {
	mu      sync.Mutex
	spacing time.Duration
	last    time.Time
	sleep   func(time.Duration) // injectable for testing
}

// NewGate creates a Gate with the given minimum inter-operation spacing.
func NewGate(spacing time.Duration) *Gate {
	return &Gate{
		spacing: spacing,
		sleep:   time.Sleep,
	}
}

// Wait blocks until at least the configured spacing has elapsed since the
// previous caller was released, then claims the slot.
func (g *Gate) Wait() {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if !g.last.IsZero() {
		if elapsed := now.Sub(g.last); elapsed < g.spacing {
			g.sleep(g.spacing - elapsed)
			now = now.Add(g.spacing - elapsed)
		}
	}
	g.last = now
}

// RevealGate caps the number of simultaneous long-running animated reveal
// sequences. Callers beyond the cap block for a slot.
type RevealGate struct {
	slots chan struct{}
}

// NewRevealGate creates a RevealGate with the given concurrency cap.
func NewRevealGate(cap int) *RevealGate {
	return &RevealGate{slots: make(chan struct{}, cap)}
}

// Acquire claims a reveal slot, blocking until one is free or the context is
// done. Returns the context error on cancellation.
func (rg *RevealGate) Acquire(ctx context.Context) error {
	select {
	case rg.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a previously acquired slot.
func (rg *RevealGate) Release() {
	select {
	case <-rg.slots:
	default:
	}
}

// InUse reports how many reveal slots are currently held.
func (rg *RevealGate) InUse() int {
	return len(rg.slots)
}
