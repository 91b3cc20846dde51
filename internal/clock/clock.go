// Package clock isolates wall-clock reads behind an injectable interface so
// TTL and sliding-window logic can be tested without real sleeping.
package clock

import "time"

// Clock supplies the current time and deferred execution.
type Clock interface {
	Now() time.Time
	// AfterFunc runs f after d has elapsed. Fire-and-forget: there is no
	// cancellation handle, callers must tolerate the call being dropped
	// on process exit.
	AfterFunc(d time.Duration, f func())
}

// System is the real wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

func (System) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }
