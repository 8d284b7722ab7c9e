// SPDX-License-Identifier: Unlicense OR MIT

// Package clock implements a shareable, lazily-sampled virtual clock
// with rate control, used to drive every animation in the layout
// engine from a single, mockable time source.
package clock

import "time"

// Clock is a shareable handle to a lazily-sampled monotonic time
// source with a playback rate and a complete-instantly flag.
//
// Two Clock values are equal (by Same) iff they refer to the same
// underlying state: Clock is a thin handle around a pointer, the Go
// equivalent of the teacher's Rc<RefCell<_>> sharing.
type Clock struct {
	state *state
}

type state struct {
	raw               lazySource
	currentTime       time.Duration
	lastSeenTime      time.Duration
	rate              float64
	completeInstantly bool
}

// lazySource fetches the monotonic time once and retains it until
// explicitly cleared.
type lazySource struct {
	now   func() time.Duration
	time  time.Duration
	valid bool
}

func (l *lazySource) Now() time.Duration {
	if !l.valid {
		l.time = l.now()
		l.valid = true
	}
	return l.time
}

func (l *lazySource) Set(t time.Duration) {
	l.time = t
	l.valid = true
}

func (l *lazySource) Clear() {
	l.valid = false
}

// New creates a clock seeded with time.Now's monotonic reading.
func New() Clock {
	start := time.Now()
	return withSource(func() time.Duration {
		return time.Since(start)
	})
}

// WithTime creates a clock whose underlying monotonic reading starts
// fixed at t, for deterministic tests.
func WithTime(t time.Duration) Clock {
	c := withSource(func() time.Duration { return t })
	c.state.raw.Set(t)
	c.state.currentTime = t
	c.state.lastSeenTime = t
	return c
}

func withSource(now func() time.Duration) Clock {
	c := Clock{state: &state{rate: 1}}
	c.state.raw.now = now
	t := c.state.raw.Now()
	c.state.currentTime = t
	c.state.lastSeenTime = t
	return c
}

// Same reports whether c and other share the same underlying state.
func (c Clock) Same(other Clock) bool {
	return c.state == other.state
}

// Now samples the adjusted current time: on each call it reads the
// underlying lazy time t; if t equals the last seen reading, the
// cached current time is returned unchanged; otherwise current time
// advances by |t-lastSeenTime| * rate, with sign matching the raw
// direction.
func (c Clock) Now() time.Duration {
	s := c.state
	t := s.raw.Now()
	if s.lastSeenTime == t {
		return s.currentTime
	}
	if s.lastSeenTime < t {
		delta := t - s.lastSeenTime
		s.currentTime += scale(delta, s.rate)
	} else {
		delta := s.lastSeenTime - t
		s.currentTime -= scale(delta, s.rate)
	}
	s.lastSeenTime = t
	return s.currentTime
}

func scale(d time.Duration, rate float64) time.Duration {
	return time.Duration(float64(d) * rate)
}

// NowUnadjusted returns the underlying time, unaffected by rate.
func (c Clock) NowUnadjusted() time.Duration {
	return c.state.raw.Now()
}

// SetUnadjusted sets the underlying clock time directly, for tests and
// for replaying recorded input.
func (c Clock) SetUnadjusted(t time.Duration) {
	c.state.raw.Set(t)
}

// Clear forces the next sample to re-fetch the monotonic source.
func (c Clock) Clear() {
	c.state.raw.Clear()
}

// Rate returns the clock's playback rate.
func (c Clock) Rate() float64 {
	return c.state.rate
}

// SetRate sets the clock's playback rate, clamped to [0, 1000].
func (c Clock) SetRate(rate float64) {
	if rate < 0 {
		rate = 0
	} else if rate > 1000 {
		rate = 1000
	}
	c.state.rate = rate
}

// ShouldCompleteInstantly reports whether animations driven by this
// clock should skip straight to their end value.
func (c Clock) ShouldCompleteInstantly() bool {
	return c.state.completeInstantly
}

// SetCompleteInstantly sets the complete-instantly flag.
func (c Clock) SetCompleteInstantly(v bool) {
	c.state.completeInstantly = v
}
