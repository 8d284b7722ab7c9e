// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"math"
	"testing"
	"time"
)

func TestEstimatorTwoSamples(t *testing.T) {
	var e Estimator
	e.Sample(0, 0)
	e.Sample(100*time.Millisecond, 50)

	v, d := e.Estimate()
	if got, want := d, 50.; got != want {
		t.Fatalf("distance = %v, want %v", got, want)
	}
	if got, want := v, 500.; math.Abs(got-want) > 1e-6 {
		t.Fatalf("velocity = %v, want %v", got, want)
	}
}

func TestEstimatorEvictsOldestBeyondFour(t *testing.T) {
	var e Estimator
	for i := 0; i < 6; i++ {
		e.Sample(time.Duration(i)*100*time.Millisecond, float64(i)*10)
	}
	if e.n != maxSamples {
		t.Fatalf("expected window capped at %d samples, got %d", maxSamples, e.n)
	}
	// Oldest retained sample should be index 2 (i=2..5).
	if got, want := e.samples[0].pos, 20.; got != want {
		t.Fatalf("oldest retained sample = %v, want %v", got, want)
	}
}

func TestEstimatorConstantVelocity(t *testing.T) {
	var e Estimator
	for i := 0; i < 4; i++ {
		e.Sample(time.Duration(i)*50*time.Millisecond, float64(i)*20)
	}
	v, _ := e.Estimate()
	// 20 units per 50ms == 400 units/s.
	if math.Abs(v-400) > 1e-6 {
		t.Fatalf("velocity = %v, want ~400", v)
	}
}

func TestSwipeTrackerEndProjectsTerminus(t *testing.T) {
	s := NewSwipeTracker(0.998)
	s.Begin(0, 0)
	s.Update(100*time.Millisecond, 250)
	s.Update(200*time.Millisecond, 250)

	_, terminus := s.End(200 * time.Millisecond)
	if terminus <= s.Position() {
		t.Fatalf("a positive-velocity fling should project beyond the release position: terminus=%v pos=%v", terminus, s.Position())
	}
	if s.State() != StateIdle {
		t.Fatal("End should return the tracker to idle")
	}
}

func TestNearestSnapPoint(t *testing.T) {
	points := []SnapPoint{
		{ColumnIdx: 0, Offset: 0},
		{ColumnIdx: 1, Offset: 400},
		{ColumnIdx: 2, Offset: 800},
	}
	got := NearestSnapPoint(650, points)
	if got.ColumnIdx != 2 {
		t.Fatalf("NearestSnapPoint(650) = column %d, want 2", got.ColumnIdx)
	}
}
