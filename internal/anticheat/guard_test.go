package anticheat

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
)

// fakeClock lets tests step time deterministically.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestGuard(windowDur time.Duration, cap int) (*Guard, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	g := NewGuard(windowDur, cap)
	g.now = clock.now
	return g, clock
}

func TestAllowUnderCap(t *testing.T) {
	g, _ := newTestGuard(DefaultWindow, DefaultCap)

	for i := 0; i < DefaultCap; i++ {
		require.NoError(t, g.Allow("user-1"), "request %d should pass", i+1)
	}
}

func TestFiftyFirstRequestThrottled(t *testing.T) {
	g, _ := newTestGuard(DefaultWindow, DefaultCap)

	for i := 0; i < DefaultCap; i++ {
		require.NoError(t, g.Allow("user-1"))
	}

	err := g.Allow("user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrThrottled)

	var throttled domain.ThrottledError
	require.True(t, errors.As(err, &throttled))
	assert.Equal(t, "user-1", throttled.UserID)
	assert.Greater(t, throttled.RetryAfter, time.Duration(0))
}

func TestThrottledAttemptNotRecorded(t *testing.T) {
	g, clock := newTestGuard(DefaultWindow, 2)

	require.NoError(t, g.Allow("user-1"))
	require.NoError(t, g.Allow("user-1"))
	require.Error(t, g.Allow("user-1"))

	// The rejected attempt must not extend the window. Once the first two
	// expire the user is clean again.
	clock.advance(DefaultWindow + time.Second)
	assert.NoError(t, g.Allow("user-1"))
}

func TestWindowEviction(t *testing.T) {
	g, clock := newTestGuard(DefaultWindow, 2)

	require.NoError(t, g.Allow("user-1"))
	clock.advance(30 * time.Second)
	require.NoError(t, g.Allow("user-1"))
	require.Error(t, g.Allow("user-1"))

	// First attempt ages out, freeing one slot.
	clock.advance(31 * time.Second)
	assert.NoError(t, g.Allow("user-1"))
}

func TestUsersIsolated(t *testing.T) {
	g, _ := newTestGuard(DefaultWindow, 1)

	require.NoError(t, g.Allow("user-1"))
	require.Error(t, g.Allow("user-1"))
	assert.NoError(t, g.Allow("user-2"))
}

func TestPruneDropsIdleWindows(t *testing.T) {
	g, clock := newTestGuard(DefaultWindow, 5)

	require.NoError(t, g.Allow("user-1"))
	require.NoError(t, g.Allow("user-2"))

	clock.advance(DefaultWindow + time.Second)
	removed := g.Prune()
	assert.Equal(t, 2, removed)
	assert.Empty(t, g.windows)
}

func BenchmarkAllow(b *testing.B) {
	g := NewGuard(DefaultWindow, DefaultCap)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Allow("bench-user")
	}
}
