package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock drives the governor deterministically: sleeps advance the
// clock instead of blocking.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestGovernor(quota int, window time.Duration) (*Governor, *fakeClock, *[]time.Duration) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	var slept []time.Duration
	g := NewGovernor(quota, window)
	g.now = clock.Now
	g.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		clock.Advance(d)
		return nil
	}
	return g, clock, &slept
}

func TestAcquireWithinQuotaIsImmediate(t *testing.T) {
	g, _, slept := newTestGovernor(3, time.Second)

	for i := 0; i < 3; i++ {
		require.NoError(t, g.Acquire(context.Background()))
	}
	assert.Empty(t, *slept)
}

func TestAcquireBeyondQuotaDelays(t *testing.T) {
	g, _, slept := newTestGovernor(3, time.Second)

	for i := 0; i < 5; i++ {
		require.NoError(t, g.Acquire(context.Background()))
	}

	// 4th and 5th calls each wait for the window to free up
	require.Len(t, *slept, 2)
	for _, d := range *slept {
		assert.GreaterOrEqual(t, d, time.Second)
	}
}

func TestAcquireNeverRejects(t *testing.T) {
	g, _, _ := newTestGovernor(1, time.Second)

	for i := 0; i < 10; i++ {
		assert.NoError(t, g.Acquire(context.Background()))
	}
}

func TestAcquireRechecksWindowAtWake(t *testing.T) {
	g, clock, _ := newTestGovernor(2, time.Second)

	require.NoError(t, g.Acquire(context.Background()))
	require.NoError(t, g.Acquire(context.Background()))

	// After a full window elapses both slots are free again
	clock.Advance(time.Second + safetyMargin)
	start := clock.Now()
	require.NoError(t, g.Acquire(context.Background()))
	assert.Equal(t, start, clock.Now())
}

func TestAcquireHonorsContextCancellation(t *testing.T) {
	g := NewGovernor(1, time.Hour)
	require.NoError(t, g.Acquire(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := g.Acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAcquireZeroQuotaWaitsForever(t *testing.T) {
	// A zero quota admits nothing; Acquire must keep waiting instead of
	// panicking, until the caller's context expires
	g := NewGovernor(0, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := g.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAcquireNegativeQuotaWaitsForever(t *testing.T) {
	g, _, slept := newTestGovernor(-1, time.Second)
	g.sleep = func(ctx context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return context.Canceled
	}

	err := g.Acquire(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, *slept, 1)
	assert.Equal(t, time.Second+safetyMargin, (*slept)[0])
}

func TestConcurrentAcquiresAllGrant(t *testing.T) {
	g := NewGovernor(3, 50*time.Millisecond)

	var wg sync.WaitGroup
	errs := make([]error, 9)
	for i := 0; i < 9; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = g.Acquire(context.Background())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestElapsedTimeUnderRealClock(t *testing.T) {
	g := NewGovernor(3, 100*time.Millisecond)

	start := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, g.Acquire(context.Background()))
	}
	// 4th and 5th grants each need a window to free up
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}
