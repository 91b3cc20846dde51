package ports

import (
	"context"
	"time"

	"github.com/fortunaclub/spinbot/internal/core/domain"
)

// SessionStore is the durable mapping from a user to its auth session.
// It is the only store that must survive a process restart.
type SessionStore interface {
	Get(ctx context.Context, userID int64) (domain.Session, bool, error)
	// Set merges: a previously known phone is preserved when the new
	// session carries none.
	Set(ctx context.Context, userID int64, s domain.Session) error
	Remove(ctx context.Context, userID int64) error
}

// DialogStore holds the per-conversation wizard state. Process-lifetime
// only; a restart forgets in-progress wizards.
type DialogStore interface {
	Get(chatID int64) domain.DialogState
	Set(chatID int64, s domain.DialogState)
	Reset(chatID int64)
}

// GeoConfirmer manages time-bounded presence grants and the pending
// confirm-intent marker consulted on inbound locations.
type GeoConfirmer interface {
	Grant(userID int64, lat, lon float64)
	Valid(userID int64) bool
	Revoke(userID int64)
	// Get returns the current grant; ok is false when none is valid.
	Get(userID int64) (domain.GeoGrant, bool)

	RequestConfirm(userID int64)
	ConfirmPending(userID int64) bool
	ClearPending(userID int64)
}

// RateLimiter bounds how often a user may perform the spin action inside a
// sliding window.
type RateLimiter interface {
	CanAct(userID int64) bool
	Record(userID int64)
	// NextAllowed reports when the user may act again. The zero time means
	// the user may act now.
	NextAllowed(userID int64) time.Time
}

// ReferralLedger carries a pending referral code from first contact until a
// successful registration consumes it.
type ReferralLedger interface {
	// SetIfPresent stores a trimmed non-empty code; empty input is a no-op.
	SetIfPresent(userID int64, code string)
	// Peek returns the pending code without clearing it.
	Peek(userID int64) (string, bool)
	// Consume returns and clears the code in one step.
	Consume(userID int64) (string, bool)
}
