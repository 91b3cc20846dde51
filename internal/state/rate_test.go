package state

import (
	"testing"
	"time"

	"github.com/fortunaclub/spinbot/internal/clock"
)

func TestRateWindow_BlocksAfterMax(t *testing.T) {
	clk := clock.NewMock(time.Unix(1_700_000_000, 0))
	rw := NewRateWindow(5, 10*time.Minute, clk)

	for i := 0; i < 5; i++ {
		if !rw.CanAct(42) {
			t.Fatalf("CanAct false after %d records, want true", i)
		}
		rw.Record(42)
	}

	if rw.CanAct(42) {
		t.Fatal("CanAct true after max records, want false")
	}
}

func TestRateWindow_OldestLeavingWindowReadmits(t *testing.T) {
	clk := clock.NewMock(time.Unix(1_700_000_000, 0))
	rw := NewRateWindow(5, 600*time.Second, clk)

	for i := 0; i < 5; i++ {
		rw.Record(42)
	}

	clk.Advance(599 * time.Second)
	if rw.CanAct(42) {
		t.Fatal("CanAct true at t=599s, want false")
	}

	clk.Advance(2 * time.Second)
	if !rw.CanAct(42) {
		t.Fatal("CanAct false at t=601s, want true")
	}
}

func TestRateWindow_NextAllowed(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	clk := clock.NewMock(start)
	rw := NewRateWindow(2, time.Minute, clk)

	if got := rw.NextAllowed(7); !got.IsZero() {
		t.Fatalf("NextAllowed = %v for fresh user, want zero", got)
	}

	rw.Record(7)
	clk.Advance(10 * time.Second)
	rw.Record(7)

	want := start.Add(time.Minute)
	if got := rw.NextAllowed(7); !got.Equal(want) {
		t.Fatalf("NextAllowed = %v, want %v", got, want)
	}
}

func TestRateWindow_CorrectForAnyNW(t *testing.T) {
	cases := []struct {
		max    int
		window time.Duration
	}{
		{1, time.Second},
		{3, 90 * time.Second},
		{10, time.Hour},
	}

	for _, tc := range cases {
		clk := clock.NewMock(time.Unix(1_700_000_000, 0))
		rw := NewRateWindow(tc.max, tc.window, clk)

		for i := 0; i < tc.max; i++ {
			rw.Record(1)
		}
		if rw.CanAct(1) {
			t.Fatalf("N=%d W=%v: CanAct true at limit", tc.max, tc.window)
		}

		clk.Advance(tc.window + time.Millisecond)
		if !rw.CanAct(1) {
			t.Fatalf("N=%d W=%v: CanAct false after window elapsed", tc.max, tc.window)
		}
	}
}

func TestRateWindow_PrunesAcrossIdleGap(t *testing.T) {
	clk := clock.NewMock(time.Unix(1_700_000_000, 0))
	rw := NewRateWindow(5, 10*time.Minute, clk)

	for i := 0; i < 5; i++ {
		rw.Record(42)
	}

	// A week later the stored timestamps must not leak into the decision.
	clk.Advance(7 * 24 * time.Hour)
	if !rw.CanAct(42) {
		t.Fatal("CanAct false after long idle gap, want true")
	}
}

func TestRateWindow_UsersIndependent(t *testing.T) {
	clk := clock.NewMock(time.Unix(1_700_000_000, 0))
	rw := NewRateWindow(1, time.Minute, clk)

	rw.Record(1)
	if rw.CanAct(1) {
		t.Fatal("user 1 should be limited")
	}
	if !rw.CanAct(2) {
		t.Fatal("user 2 must not be affected by user 1")
	}
}
