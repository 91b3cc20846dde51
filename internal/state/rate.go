package state

import (
	"sync"
	"time"

	"github.com/fortunaclub/spinbot/internal/clock"
)

// RateWindow admits at most max actions per user inside a sliding window.
// It stores the raw action timestamps, not a counter, so pruning stays
// correct across arbitrarily long idle gaps. Both Record and CanAct prune,
// which bounds each slice to max entries in steady state.
type RateWindow struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	clk    clock.Clock
	hits   map[int64][]time.Time
}

func NewRateWindow(max int, window time.Duration, clk clock.Clock) *RateWindow {
	return &RateWindow{
		max:    max,
		window: window,
		clk:    clk,
		hits:   make(map[int64][]time.Time),
	}
}

// CanAct reports whether the user is under the limit right now.
func (r *RateWindow) CanAct(userID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.prune(userID, r.clk.Now())) < r.max
}

// Record counts one action at the current instant.
func (r *RateWindow) Record(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.clk.Now()
	r.hits[userID] = append(r.prune(userID, now), now)
}

// NextAllowed reports when the user may act again; the zero time means the
// user is not limited.
func (r *RateWindow) NextAllowed(userID int64) time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	hits := r.prune(userID, r.clk.Now())
	if len(hits) < r.max {
		return time.Time{}
	}
	// The oldest surviving hit must leave the window first.
	return hits[0].Add(r.window)
}

// prune drops timestamps older than the trailing window. Caller holds mu.
func (r *RateWindow) prune(userID int64, now time.Time) []time.Time {
	hits := r.hits[userID]
	cutoff := now.Add(-r.window)
	i := 0
	for i < len(hits) && hits[i].Before(cutoff) {
		i++
	}
	if i > 0 {
		hits = hits[i:]
	}
	if len(hits) == 0 {
		delete(r.hits, userID)
	} else {
		r.hits[userID] = hits
	}
	return hits
}
