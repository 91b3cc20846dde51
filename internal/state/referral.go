package state

import (
	"strings"
	"sync"
)

// ReferralLedger holds one pending referral code per user until a
// successful registration consumes it.
type ReferralLedger struct {
	mu    sync.Mutex
	codes map[int64]string
}

func NewReferralLedger() *ReferralLedger {
	return &ReferralLedger{codes: make(map[int64]string)}
}

// SetIfPresent stores a trimmed non-empty code. Empty or blank input is a
// no-op. A code is set at most once before consumption: a later set does
// not overwrite a pending one.
func (l *ReferralLedger) SetIfPresent(userID int64, code string) {
	code = strings.TrimSpace(code)
	if code == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.codes[userID]; exists {
		return
	}
	l.codes[userID] = code
}

// Peek returns the pending code without clearing it.
func (l *ReferralLedger) Peek(userID int64) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	code, ok := l.codes[userID]
	return code, ok
}

// Consume returns and clears the code in one step, so a code is attributed
// to at most one registration.
func (l *ReferralLedger) Consume(userID int64) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	code, ok := l.codes[userID]
	if ok {
		delete(l.codes, userID)
	}
	return code, ok
}
