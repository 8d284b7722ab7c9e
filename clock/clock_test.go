// SPDX-License-Identifier: Unlicense OR MIT

package clock

import (
	"testing"
	"time"
)

func TestFrozenClock(t *testing.T) {
	c := WithTime(0)
	if got, want := c.Now(), time.Duration(0); got != want {
		t.Fatalf("Now() = %v, want %v", got, want)
	}

	c.SetUnadjusted(100 * time.Millisecond)
	if got, want := c.Now(), 100*time.Millisecond; got != want {
		t.Fatalf("Now() = %v, want %v", got, want)
	}

	c.SetUnadjusted(200 * time.Millisecond)
	if got, want := c.Now(), 200*time.Millisecond; got != want {
		t.Fatalf("Now() = %v, want %v", got, want)
	}
}

func TestRateChange(t *testing.T) {
	c := WithTime(0)
	c.SetRate(0.5)

	c.SetUnadjusted(100 * time.Millisecond)
	if got, want := c.NowUnadjusted(), 100*time.Millisecond; got != want {
		t.Fatalf("NowUnadjusted() = %v, want %v", got, want)
	}
	if got, want := c.Now(), 50*time.Millisecond; got != want {
		t.Fatalf("Now() = %v, want %v", got, want)
	}

	c.SetUnadjusted(200 * time.Millisecond)
	if got, want := c.Now(), 100*time.Millisecond; got != want {
		t.Fatalf("Now() = %v, want %v", got, want)
	}

	// Going backwards in unadjusted time should move the adjusted time
	// backwards by the same scaled delta.
	c.SetUnadjusted(150 * time.Millisecond)
	if got, want := c.Now(), 75*time.Millisecond; got != want {
		t.Fatalf("Now() = %v, want %v", got, want)
	}

	c.SetRate(2.0)
	c.SetUnadjusted(250 * time.Millisecond)
	if got, want := c.Now(), 275*time.Millisecond; got != want {
		t.Fatalf("Now() = %v, want %v", got, want)
	}
}

func TestRateClamped(t *testing.T) {
	c := WithTime(0)
	c.SetRate(-1)
	if got, want := c.Rate(), 0.; got != want {
		t.Errorf("Rate() = %v, want %v", got, want)
	}
	c.SetRate(5000)
	if got, want := c.Rate(), 1000.; got != want {
		t.Errorf("Rate() = %v, want %v", got, want)
	}
}

func TestRateZeroFreezes(t *testing.T) {
	c := WithTime(0)
	c.SetRate(0)
	c.SetUnadjusted(500 * time.Millisecond)
	if got, want := c.Now(), time.Duration(0); got != want {
		t.Errorf("Now() = %v, want %v", got, want)
	}
}

func TestSharedHandleIdentity(t *testing.T) {
	a := WithTime(0)
	b := a
	if !a.Same(b) {
		t.Fatal("copies of a Clock value should share state")
	}
	b.SetUnadjusted(42 * time.Millisecond)
	if got, want := a.NowUnadjusted(), 42*time.Millisecond; got != want {
		t.Fatalf("mutation through one handle should be visible via the other: got %v want %v", got, want)
	}

	other := WithTime(0)
	if a.Same(other) {
		t.Fatal("independently constructed clocks should not be Same")
	}
}

func TestClearRefetchesSource(t *testing.T) {
	var calls int
	c := withSource(func() time.Duration {
		calls++
		return time.Duration(calls) * time.Millisecond
	})
	first := c.NowUnadjusted()
	second := c.NowUnadjusted()
	if first != second {
		t.Fatalf("lazy source should cache until Clear: got %v then %v", first, second)
	}
	c.Clear()
	third := c.NowUnadjusted()
	if third == second {
		t.Fatalf("Clear should force a refetch")
	}
}
