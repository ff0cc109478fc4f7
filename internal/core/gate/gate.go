package gate

import (
	"context"
	"sync"
	"time"
)

// Gate spaces outbound call starts a minimum interval apart, process-wide.
// Every route shares one Gate; there is deliberately no per-credential or
// per-endpoint partitioning.
//
// A caller reserves its start slot atomically under the lock and sleeps after
// releasing it, so a slow in-flight upstream call never blocks later callers
// beyond the spacing itself.
type Gate struct {
	// Interval is the minimum gap between any two reserved starts. A zero or
	// negative interval disables the gate.
	Interval time.Duration
	// Clock overrides time.Now for tests.
	Clock func() time.Time
	// Sleep overrides the context-aware wait for tests.
	Sleep func(ctx context.Context, d time.Duration) error

	mu   sync.Mutex
	next time.Time
}

// New returns a Gate enforcing the given minimum interval between call starts.
func New(interval time.Duration) *Gate {
	return &Gate{Interval: interval}
}

// Wait blocks until the caller's reserved slot arrives. Concurrent callers
// commit slots in arrival order, each exactly Interval after the previous one,
// no two of them ever closer than Interval. A canceled wait keeps its
// reservation so the spacing invariant survives abandonment.
func (g *Gate) Wait(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if g == nil || g.Interval <= 0 {
		return ctx.Err()
	}

	g.mu.Lock()
	now := g.now()
	start := g.next
	if start.Before(now) {
		start = now
	}
	g.next = start.Add(g.Interval)
	g.mu.Unlock()

	if wait := start.Sub(now); wait > 0 {
		return g.sleep(ctx, wait)
	}
	return ctx.Err()
}

func (g *Gate) now() time.Time {
	if g.Clock != nil {
		return g.Clock()
	}
	return time.Now()
}

func (g *Gate) sleep(ctx context.Context, d time.Duration) error {
	if g.Sleep != nil {
		return g.Sleep(ctx, d)
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
