package domain

import "time"

// Profile is the player record returned by the club backend.
type Profile struct {
	Name         string
	Phone        string
	ReferralCode string
}

// Transaction is one entry in the player's points history.
type Transaction struct {
	Type        string
	Amount      int
	Description string
	CreatedAt   time.Time
}

// Earned reports whether the transaction credited points.
func (t Transaction) Earned() bool {
	switch t.Type {
	case "earned", "registration_bonus", "prize_points", "referral_bonus":
		return true
	default:
		return false
	}
}

// Prize is a prize the player has won.
type Prize struct {
	Name   string
	Status string
	WonAt  time.Time
}

// Win is one public recent-wins feed entry.
type Win struct {
	MaskedPhone string
	PrizeName   string
}

// SpinResult is the outcome of a roulette spin.
type SpinResult struct {
	PrizeName  string
	NewBalance int
}
