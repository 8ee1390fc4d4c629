// Package ratelimit throttles outbound catalog requests to the quota the
// upstream API enforces.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// safetyMargin is added to every computed wait so a grant never lands
// exactly on the window edge.
const safetyMargin = 100 * time.Millisecond

// Governor is a single-process sliding-window limiter. It keeps the
// timestamps of recent grants and admits a caller only while fewer than
// quota grants fall inside the trailing window. Saturated callers sleep
// until the oldest grant leaves the window, then re-check the live
// window; concurrent callers serialize on the mutex and each re-evaluates
// at wake time rather than pre-committing a slot.
type Governor struct {
	mu     sync.Mutex
	grants []time.Time
	quota  int
	window time.Duration
	now    func() time.Time
	sleep  func(context.Context, time.Duration) error
}

// NewGovernor creates a governor admitting quota grants per window
func NewGovernor(quota int, window time.Duration) *Governor {
	return &Governor{
		quota:  quota,
		window: window,
		now:    time.Now,
		sleep:  sleepCtx,
	}
}

// Acquire blocks until it is safe to issue the next request. It never
// rejects; the only error it can return is the context's, when the
// caller gives up waiting.
func (g *Governor) Acquire(ctx context.Context) error {
	for {
		wait, ok := g.tryAcquire()
		if ok {
			return nil
		}
		if err := g.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// tryAcquire prunes expired grants and either records a new grant or
// returns how long to wait before the next check.
func (g *Governor) tryAcquire() (time.Duration, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	live := g.grants[:0]
	for _, t := range g.grants {
		if now.Sub(t) < g.window {
			live = append(live, t)
		}
	}
	g.grants = live

	if len(g.grants) < g.quota {
		g.grants = append(g.grants, now)
		return 0, true
	}

	if len(g.grants) == 0 {
		// quota <= 0 admits nothing; wait a full window and re-check
		return g.window + safetyMargin, false
	}

	oldest := g.grants[0]
	wait := g.window - now.Sub(oldest) + safetyMargin
	return wait, false
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
