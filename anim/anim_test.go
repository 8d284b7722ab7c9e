// SPDX-License-Identifier: Unlicense OR MIT

package anim

import (
	"math"
	"testing"
	"time"

	"github.com/sciurus-wm/corium/clock"
)

func TestEasingBoundaries(t *testing.T) {
	c := clock.WithTime(0)
	a := NewEasing(c, 0, 100, 0, EasingConfig{DurationMS: 200, CurveKind: EaseOutCubic})

	if got, want := a.Value(), 0.; got != want {
		t.Fatalf("Value() at start = %v, want %v", got, want)
	}

	c.SetUnadjusted(200 * time.Millisecond)
	if got, want := a.Value(), 100.; got != want {
		t.Fatalf("Value() at end = %v, want %v", got, want)
	}

	c.SetUnadjusted(400 * time.Millisecond)
	if got, want := a.Value(), 100.; got != want {
		t.Fatalf("Value() past end = %v, want %v", got, want)
	}
}

func TestEasingContinuous(t *testing.T) {
	c := clock.WithTime(0)
	a := NewEasing(c, 10, 20, 0, EasingConfig{DurationMS: 100, CurveKind: Linear})
	var prev float64 = math.NaN()
	for ms := int64(0); ms <= 100; ms += 10 {
		c.SetUnadjusted(time.Duration(ms) * time.Millisecond)
		v := a.Value()
		if !math.IsNaN(prev) && v < prev-1e-9 {
			t.Fatalf("linear ease should be monotone increasing, got %v after %v at t=%dms", v, prev, ms)
		}
		prev = v
	}
}

func TestBezierRejectsOutOfRangeX1(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for out-of-range bezier control point")
		}
	}()
	c := clock.WithTime(0)
	NewEasing(c, 0, 1, 0, EasingConfig{DurationMS: 1, CurveKind: CubicBezier, Bezier: BezierControl{X1: 2}})
}

func TestDecelerationReachesThreshold(t *testing.T) {
	c := clock.WithTime(0)
	a := NewDeceleration(c, 0, 1000, 0.998, 0.001)

	c.SetUnadjusted(a.Duration())
	if got, want := a.Value(), a.To(); math.Abs(got-want) > 1e-6 {
		t.Fatalf("Value() at derived duration = %v, want %v", got, want)
	}
}

func TestSpringConverges(t *testing.T) {
	c := clock.WithTime(0)
	s := Spring{From: 0, To: 1, Params: SpringParams{DampingRatio: 1, Stiffness: 400, Epsilon: 0.001}}
	a := NewSpring(c, s)

	c.SetUnadjusted(a.Duration())
	if got, want := a.Value(), 1.; math.Abs(got-want) > 0.05 {
		t.Fatalf("spring should have settled near To: got %v want ~%v", got, want)
	}
}

func TestSpringMinEpsilonStillConverges(t *testing.T) {
	c := clock.WithTime(0)
	s := Spring{From: 0, To: 1, Params: SpringParams{DampingRatio: 0.6, Stiffness: 200, Epsilon: 0.00001}}
	a := NewSpring(c, s)
	if a.Duration() <= 0 {
		t.Fatal("expected a positive settling duration")
	}
	c.SetUnadjusted(a.Duration())
	if got, want := a.Value(), 1.; math.Abs(got-want) > 0.05 {
		t.Fatalf("underdamped spring with tiny epsilon should still converge: got %v want ~%v", got, want)
	}
}

func TestSpringOvershootHasClampedDuration(t *testing.T) {
	s := Spring{From: 0, To: 1, Params: SpringParams{DampingRatio: 0.3, Stiffness: 300, Epsilon: 0.001}}
	cd, ok := s.ClampedDuration()
	if !ok {
		t.Fatal("underdamped spring should overshoot and report a clamped duration")
	}
	if cd <= 0 || cd >= s.Duration() {
		t.Fatalf("clamped duration %v should be in (0, duration=%v)", cd, s.Duration())
	}
}

func TestCriticallyDampedSpringHasNoClampedDuration(t *testing.T) {
	s := Spring{From: 0, To: 1, Params: SpringParams{DampingRatio: 1, Stiffness: 300, Epsilon: 0.001}}
	if _, ok := s.ClampedDuration(); ok {
		t.Fatal("critically damped spring does not overshoot")
	}
}

func TestOffsetPreservesSampledValues(t *testing.T) {
	c := clock.WithTime(0)
	a := NewEasing(c, 0, 100, 0, EasingConfig{DurationMS: 200, CurveKind: EaseOutQuad})
	c.SetUnadjusted(100 * time.Millisecond)
	before := a.Value()

	a.Offset(50)
	a.Offset(-50)

	after := a.Value()
	if math.Abs(before-after) > 1e-9 {
		t.Fatalf("offset(+50) then offset(-50) changed the sampled value: %v vs %v", before, after)
	}
}

func TestCompleteInstantlyForcesToValue(t *testing.T) {
	c := clock.WithTime(0)
	c.SetCompleteInstantly(true)
	a := NewEasing(c, 0, 42, 0, EasingConfig{DurationMS: 1000, CurveKind: Linear})
	if got, want := a.Value(), 42.; got != want {
		t.Fatalf("complete_instantly should force Value() == To immediately: got %v want %v", got, want)
	}
}

func TestAnimationsOffForcesZeroDurationAndToValue(t *testing.T) {
	c := clock.WithTime(0)
	a := NewOff(c, 10, 20)
	if !a.IsOff() {
		t.Fatal("expected IsOff")
	}
	if a.Duration() != 0 {
		t.Fatalf("off animation should have zero duration, got %v", a.Duration())
	}
	if got, want := a.Value(), 20.; got != want {
		t.Fatalf("Value() = %v, want %v", got, want)
	}
}

func TestSlowdownStretchesPerceivedTime(t *testing.T) {
	SetSlowdown(2)
	defer SetSlowdown(1)

	c := clock.WithTime(0)
	a := NewEasing(c, 0, 100, 0, EasingConfig{DurationMS: 100, CurveKind: Linear})

	// At half speed, after 50ms of real time only ~25ms of animation
	// time should have elapsed, so the value should be well under 50.
	c.SetUnadjusted(50 * time.Millisecond)
	v := a.Value()
	if v >= 50 {
		t.Fatalf("slowdown=2 should roughly halve progress: got %v at 50ms", v)
	}
}

func TestSlowdownZeroCompletesImmediately(t *testing.T) {
	SetSlowdown(0)
	defer SetSlowdown(1)

	c := clock.WithTime(0)
	a := NewEasing(c, 0, 100, 0, EasingConfig{DurationMS: 100, CurveKind: Linear})
	c.SetUnadjusted(1 * time.Millisecond)
	if got, want := a.Value(), 100.; got != want {
		t.Fatalf("slowdown=0 should finish the animation instantly: got %v want %v", got, want)
	}
}
