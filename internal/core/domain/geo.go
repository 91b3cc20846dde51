package domain

import "time"

// GeoGrant asserts that a user proved physical presence at the venue.
// A grant is valid strictly before ExpiresAt; the backend can also revoke
// it early when the user leaves the allowed radius.
type GeoGrant struct {
	GrantedAt time.Time
	ExpiresAt time.Time
	Latitude  float64
	Longitude float64
}

// ValidAt reports whether the grant is still live at the given instant.
func (g GeoGrant) ValidAt(now time.Time) bool {
	return now.Before(g.ExpiresAt)
}
