package anticheat

import (
	"sync"
	"time"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
)

// Guard is a per-user sliding-window throttle on spin requests. It is a
// best-effort heuristic against abusive bursts, not a security boundary.
//
// Windows live in a keyed store owned by the guard, created on first use and
// pruned lazily; there is no ambient module-level state.
type Guard struct {
	mu      sync.Mutex
	windows map[string]*window
	window  time.Duration
	cap     int
	now     func() time.Time // injectable for testing
}

type window struct {
	attempts []time.Time
}

// NewGuard creates a Guard with the given window duration and request cap.
func NewGuard(windowDur time.Duration, cap int) *Guard {
	return &Guard{
		windows: make(map[string]*window),
		window:  windowDur,
		cap:     cap,
		now:     time.Now,
	}
}

// NewDefaultGuard creates a Guard with the production limits.
func NewDefaultGuard() *Guard {
	return NewGuard(DefaultWindow, DefaultCap)
}

// Allow records a spin request attempt for the user if the window has room.
// When the surviving attempt count has reached the cap the request is
// rejected with a ThrottledError and the attempt is not recorded.
func (g *Guard) Allow(userID string) error {
	now := g.now()
	cutoff := now.Add(-g.window)

	g.mu.Lock()
	defer g.mu.Unlock()

	w, ok := g.windows[userID]
	if !ok {
		w = &window{}
		g.windows[userID] = w
	}

	w.evict(cutoff)

	if len(w.attempts) >= g.cap {
		oldest := w.attempts[0]
		return domain.ThrottledError{
			UserID:     userID,
			RetryAfter: oldest.Add(g.window).Sub(now),
		}
	}

	w.attempts = append(w.attempts, now)
	return nil
}

// Prune drops fully-expired windows. Called periodically so idle users do
// not accumulate entries forever.
func (g *Guard) Prune() int {
	cutoff := g.now().Add(-g.window)

	g.mu.Lock()
	defer g.mu.Unlock()

	removed := 0
	for userID, w := range g.windows {
		w.evict(cutoff)
		if len(w.attempts) == 0 {
			delete(g.windows, userID)
			removed++
		}
	}
	return removed
}

// evict drops attempts older than the cutoff, keeping order.
func (w *window) evict(cutoff time.Time) {
	i := 0
	for i < len(w.attempts) && !w.attempts[i].After(cutoff) {
		i++
	}
	if i > 0 {
		w.attempts = append(w.attempts[:0], w.attempts[i:]...)
	}
}
