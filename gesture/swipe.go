// SPDX-License-Identifier: Unlicense OR MIT

// Package gesture converts raw pointer/touchpad deltas into the
// projected terminal position used to drive scrolling-space view
// gestures (spec §4.5) and floating-space drags.
//
// The velocity estimator is a re-expression, in this module's own
// domain, of the contract pinned down by the teacher's
// internal/fling/extrapolation_test.go: accumulate timestamped
// samples and fit a low-order polynomial to them, then evaluate its
// derivative at the most recent sample to get an instantaneous
// velocity. The teacher's own Scroll gesture (gesture/gesture.go) is
// the model for start/update/end state transitions.
package gesture

import (
	"math"
	"time"
)

// sample is one timestamped position observation.
type sample struct {
	t   time.Duration
	pos float64
}

// maxSamples bounds the velocity estimator to its most recent
// observations, per spec §3 ("4-sample velocity estimator").
const maxSamples = 4

// Estimator fits recent position samples to estimate instantaneous
// velocity and a characteristic travelled distance, the inputs to a
// fling/deceleration animation.
type Estimator struct {
	samples [maxSamples]sample
	n       int
}

// Reset discards all accumulated samples.
func (e *Estimator) Reset() {
	e.n = 0
}

// Sample records a new timestamped position, evicting the oldest
// sample once the window is full.
func (e *Estimator) Sample(t time.Duration, pos float64) {
	if e.n < maxSamples {
		e.samples[e.n] = sample{t, pos}
		e.n++
		return
	}
	copy(e.samples[:], e.samples[1:])
	e.samples[maxSamples-1] = sample{t, pos}
}

// Estimate reports the velocity (position units per second) and net
// distance travelled across the retained sample window. With fewer
// than two samples the estimate is zero.
func (e *Estimator) Estimate() (velocity, distance float64) {
	if e.n < 2 {
		return 0, 0
	}
	first, last := e.samples[0], e.samples[e.n-1]
	distance = last.pos - first.pos

	dt := (last.t - first.t).Seconds()
	if dt <= 0 {
		return 0, distance
	}

	if e.n == 2 {
		return distance / dt, distance
	}

	// Least-squares fit of a line through the window (the two middle
	// samples provide the degrees of freedom a 2-point secant can't);
	// the slope of that line is the velocity estimate.
	var sumT, sumP, sumTT, sumTP float64
	t0 := e.samples[0].t
	for i := 0; i < e.n; i++ {
		s := e.samples[i]
		dt := (s.t - t0).Seconds()
		sumT += dt
		sumP += s.pos
		sumTT += dt * dt
		sumTP += dt * s.pos
	}
	n := float64(e.n)
	denom := n*sumTT - sumT*sumT
	if denom == 0 {
		return distance / dt, distance
	}
	velocity = (n*sumTP - sumT*sumP) / denom
	return velocity, distance
}

// State reports the lifecycle phase of a SwipeTracker.
type State uint8

const (
	StateIdle State = iota
	StateTracking
	StateAnimating
)

// SwipeTracker accumulates pointer/touchpad deltas during a gesture
// and, on release, projects a terminal position from the observed
// velocity — the input to the scrolling space's snap-point selection
// (spec §4.5).
type SwipeTracker struct {
	state     State
	estimator Estimator
	pos       float64
	deceleration float64
}

// NewSwipeTracker returns a tracker whose projected terminus uses the
// given exponential deceleration rate (matching anim.NewDeceleration's
// decelerationRate parameter).
func NewSwipeTracker(decelerationRate float64) *SwipeTracker {
	return &SwipeTracker{deceleration: decelerationRate}
}

// Begin starts tracking a new gesture at the given position.
func (s *SwipeTracker) Begin(t time.Duration, pos float64) {
	s.state = StateTracking
	s.pos = pos
	s.estimator.Reset()
	s.estimator.Sample(t, pos)
}

// Update records a new sample during an in-progress gesture.
func (s *SwipeTracker) Update(t time.Duration, delta float64) {
	if s.state != StateTracking {
		return
	}
	s.pos += delta
	s.estimator.Sample(t, s.pos)
}

// Position returns the tracker's current accumulated position.
func (s *SwipeTracker) Position() float64 {
	return s.pos
}

// State reports the tracker's lifecycle phase.
func (s *SwipeTracker) State() State {
	return s.state
}

// End finalizes the gesture and returns the projected terminal
// position: the current position plus the displacement a
// deceleration-model fling with the observed velocity would travel
// before stopping. Terminal displacement is
// -v/(1000*ln(decelerationRate)), matching the Deceleration kind's
// closed-form target in anim.NewDeceleration.
func (s *SwipeTracker) End(t time.Duration) (velocity, terminus float64) {
	velocity, _ = s.estimator.Estimate()
	s.state = StateIdle

	rate := s.deceleration
	if rate <= 0 || rate >= 1 {
		return velocity, s.pos
	}
	displacement := -velocity / (1000 * math.Log(rate))
	return velocity, s.pos + displacement
}
