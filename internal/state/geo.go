package state

import (
	"sync"
	"time"

	"github.com/fortunaclub/spinbot/internal/clock"
	"github.com/fortunaclub/spinbot/internal/core/domain"
)

// GeoConfirmation manages per-user presence grants. Expired entries are
// deleted lazily on read; there is no background sweeper because grants are
// only ever consulted on demand.
type GeoConfirmation struct {
	mu      sync.Mutex
	ttl     time.Duration
	clk     clock.Clock
	grants  map[int64]domain.GeoGrant
	pending map[int64]struct{}
}

func NewGeoConfirmation(ttl time.Duration, clk clock.Clock) *GeoConfirmation {
	return &GeoConfirmation{
		ttl:     ttl,
		clk:     clk,
		grants:  make(map[int64]domain.GeoGrant),
		pending: make(map[int64]struct{}),
	}
}

// Grant records presence at the given point, overwriting any prior grant.
func (g *GeoConfirmation) Grant(userID int64, lat, lon float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.clk.Now()
	g.grants[userID] = domain.GeoGrant{
		GrantedAt: now,
		ExpiresAt: now.Add(g.ttl),
		Latitude:  lat,
		Longitude: lon,
	}
}

// Valid reports whether the user holds a live grant.
func (g *GeoConfirmation) Valid(userID int64) bool {
	_, ok := g.Get(userID)
	return ok
}

// Get returns the live grant for the user, deleting it when expired.
func (g *GeoConfirmation) Get(userID int64) (domain.GeoGrant, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	grant, ok := g.grants[userID]
	if !ok {
		return domain.GeoGrant{}, false
	}
	if !grant.ValidAt(g.clk.Now()) {
		delete(g.grants, userID)
		return domain.GeoGrant{}, false
	}
	return grant, true
}

// Revoke drops a grant early, e.g. when the backend reports the user left
// the venue radius.
func (g *GeoConfirmation) Revoke(userID int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.grants, userID)
}

// RequestConfirm marks that the user was asked to share a location.
func (g *GeoConfirmation) RequestConfirm(userID int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending[userID] = struct{}{}
}

// ConfirmPending reports whether a location is currently expected.
func (g *GeoConfirmation) ConfirmPending(userID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.pending[userID]
	return ok
}

// ClearPending drops the confirm-intent marker.
func (g *GeoConfirmation) ClearPending(userID int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.pending, userID)
}
