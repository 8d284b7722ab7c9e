// SPDX-License-Identifier: Unlicense OR MIT

// Package anim implements the animation primitives that drive every
// moving element in the layout engine: easing curves, a critically-
// damped spring integrator, and an exponential deceleration model, all
// sampled from a shared clock.Clock and subject to a process-wide
// slowdown factor.
package anim

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/sciurus-wm/corium/clock"
)

// slowdown is a process-wide factor applied to every animation's
// perceived passage of time; s == 0 means "skip to end". Represented
// as a single atomic value read at construction and before sampling,
// per the "don't thread it through every call" design note.
var slowdown atomic.Uint64 // bits of a float64, default 1.0

func init() {
	SetSlowdown(1)
}

// SetSlowdown sets the global animation slowdown factor.
func SetSlowdown(s float64) {
	if s < 0 {
		s = 0
	}
	slowdown.Store(math.Float64bits(s))
}

// Slowdown returns the current global animation slowdown factor.
func Slowdown() float64 {
	return math.Float64frombits(slowdown.Load())
}

// Curve names a shape for an Easing animation.
type Curve uint8

const (
	Linear Curve = iota
	EaseOutQuad
	EaseOutCubic
	EaseOutExpo
	CubicBezier
)

// BezierControl holds the two free control points of a cubic Bezier
// easing curve; X1 must lie in [0, 1] so the curve is a function of x.
type BezierControl struct {
	X1, Y1, X2, Y2 float64
}

func (c Curve) y(x float64, b BezierControl) float64 {
	switch c {
	case Linear:
		return x
	case EaseOutQuad:
		return 1 - (1-x)*(1-x)
	case EaseOutCubic:
		u := 1 - x
		return 1 - u*u*u
	case EaseOutExpo:
		if x >= 1 {
			return 1
		}
		return 1 - math.Pow(2, -10*x)
	case CubicBezier:
		return bezierY(x, b)
	default:
		return x
	}
}

// Kind selects which of the three driver families an Animation uses.
type Kind int

const (
	KindEasing Kind = iota
	KindSpring
	KindDeceleration
)

// EasingConfig parameterizes an Easing animation.
type EasingConfig struct {
	DurationMS int64
	CurveKind  Curve
	Bezier     BezierControl
}

// Animation is an immutable-after-construction value driven by a
// clock.Clock. See spec §3 for the invariants it must uphold.
type Animation struct {
	clock clock.Clock

	from, to         float64
	initialVelocity  float64
	isOff            bool
	duration         time.Duration
	clampedDuration  time.Duration
	startTime        time.Duration
	currentTime      time.Duration

	kind   Kind
	easing EasingConfig
	spring Spring
	decel  decelParams
}

type decelParams struct {
	initialVelocity  float64
	decelerationRate float64
}

// NewEasing constructs an easing-driven animation.
func NewEasing(c clock.Clock, from, to, initialVelocity float64, cfg EasingConfig) Animation {
	if cfg.CurveKind == CubicBezier {
		validateBezier(cfg.Bezier)
	}
	now := c.Now()
	d := time.Duration(cfg.DurationMS) * time.Millisecond
	initialVelocity *= Slowdown()
	a := Animation{
		clock:           c,
		from:            from,
		to:              to,
		initialVelocity: initialVelocity,
		duration:        d,
		clampedDuration: d, // monotone easing curves never overshoot
		startTime:       now,
		currentTime:     now,
		kind:            KindEasing,
		easing:          cfg,
	}
	return a
}

// NewSpring constructs a spring-driven animation.
func NewSpring(c clock.Clock, s Spring) Animation {
	now := c.Now()
	initialVelocity := s.InitialVelocity * Slowdown()
	s.InitialVelocity = initialVelocity
	d := s.Duration()
	cd, ok := s.ClampedDuration()
	if !ok {
		cd = d
	}
	return Animation{
		clock:           c,
		from:            s.From,
		to:              s.To,
		initialVelocity: initialVelocity,
		duration:        d,
		clampedDuration: cd,
		startTime:       now,
		currentTime:     now,
		kind:            KindSpring,
		spring:          s,
	}
}

// NewDeceleration constructs a deceleration-driven animation (used for
// flung scroll gestures). threshold is the remaining distance to the
// terminal value, in value units, at which the animation is considered
// settled; the duration is the time taken to get that close.
func NewDeceleration(c clock.Clock, from, initialVelocity, decelerationRate, threshold float64) Animation {
	now := c.Now()
	initialVelocity *= Slowdown()

	var durationS float64
	if initialVelocity != 0 {
		coeff := 1000 * math.Log(decelerationRate)
		durationS = math.Log(-coeff*threshold/math.Abs(initialVelocity)) / coeff
	}
	d := time.Duration(durationS * float64(time.Second))
	to := from - initialVelocity/(1000*math.Log(decelerationRate))

	return Animation{
		clock:           c,
		from:            from,
		to:              to,
		initialVelocity: initialVelocity,
		duration:        d,
		clampedDuration: d,
		startTime:       now,
		currentTime:     now,
		kind:            KindDeceleration,
		decel:           decelParams{initialVelocity: initialVelocity, decelerationRate: decelerationRate},
	}
}

// NewOff constructs an already-complete animation for the
// animations-off configuration mode: IsOff is true, Duration is zero,
// and Value always returns to.
func NewOff(c clock.Clock, from, to float64) Animation {
	now := c.Now()
	return Animation{
		clock:       c,
		from:        from,
		to:          to,
		isOff:       true,
		startTime:   now,
		currentTime: now,
		kind:        KindEasing,
	}
}

// IsOff reports whether this animation was constructed in
// animations-off mode.
func (a Animation) IsOff() bool { return a.isOff }

// To returns the animation's target value.
func (a Animation) To() float64 { return a.to }

// From returns the animation's starting value.
func (a Animation) From() float64 { return a.from }

// Duration returns the animation's total duration.
func (a Animation) Duration() time.Duration { return a.duration }

// ClampedDuration returns the time until the value first reaches To,
// best-effort for overshooting springs.
func (a Animation) ClampedDuration() time.Duration { return a.clampedDuration }

// sample advances a.currentTime to the clock's current reading,
// applying the global slowdown by shifting startTime rather than
// current time (incoming time values are always real time).
func (a *Animation) sample() {
	t := a.clock.Now()
	if a.isOff || a.clock.ShouldCompleteInstantly() {
		a.currentTime = a.startTime + a.duration
		return
	}
	a.setCurrentTime(t)
}

func (a *Animation) setCurrentTime(t time.Duration) {
	if a.duration == 0 {
		a.currentTime = t
		return
	}
	endTime := a.startTime + a.duration
	if endTime <= a.currentTime {
		return
	}

	s := Slowdown()
	if s <= math.SmallestNonzeroFloat64 {
		a.currentTime = endTime
		return
	}

	if a.currentTime <= t {
		delta := t - a.currentTime
		maxDelta := endTime - a.currentTime
		minSlowdown := delta.Seconds() / maxDelta.Seconds()
		if s <= minSlowdown {
			a.currentTime = endTime
			return
		}
		adjusted := time.Duration(float64(delta) / s)
		if adjusted >= delta {
			a.startTime -= adjusted - delta
		} else {
			a.startTime += delta - adjusted
		}
	} else {
		delta := a.currentTime - t
		minSlowdown := delta.Seconds() / a.currentTime.Seconds()
		if s <= minSlowdown {
			a.currentTime = endTime
			return
		}
		adjusted := time.Duration(float64(delta) / s)
		if adjusted >= delta {
			a.startTime += adjusted - delta
		} else {
			a.startTime -= delta - adjusted
		}
	}
	a.currentTime = t
}

// IsDone reports whether the animation has reached its end time.
func (a *Animation) IsDone() bool {
	a.sample()
	return a.currentTime >= a.startTime+a.duration
}

// IsClampedDone reports whether the animation has passed its clamped
// duration (first arrival at To).
func (a *Animation) IsClampedDone() bool {
	a.sample()
	return a.currentTime >= a.startTime+a.clampedDuration
}

// Value samples the animation at the clock's current time.
func (a *Animation) Value() float64 {
	a.sample()
	if a.currentTime >= a.startTime+a.duration {
		return a.to
	}
	passed := a.currentTime - a.startTime

	switch a.kind {
	case KindEasing:
		x := passed.Seconds() / a.duration.Seconds()
		x = clampUnit(x)
		return a.easing.CurveKind.y(x, a.easing.Bezier)*(a.to-a.from) + a.from
	case KindSpring:
		v := a.spring.ValueAt(passed)
		lo, hi := a.from-10*(a.to-a.from), a.to+10*(a.to-a.from)
		if lo > hi {
			lo, hi = hi, lo
		}
		return clampF(v, lo, hi)
	case KindDeceleration:
		t := passed.Seconds()
		coeff := 1000 * math.Log(a.decel.decelerationRate)
		return a.from + (math.Pow(a.decel.decelerationRate, 1000*t)-1)/coeff*a.decel.initialVelocity
	default:
		return a.to
	}
}

// ClampedValue returns a value that stops at To after first reaching
// it, useful for overshooting springs where later oscillation should
// not be observed by a one-shot consumer (e.g. input focus routing).
func (a *Animation) ClampedValue() float64 {
	if a.IsClampedDone() {
		return a.to
	}
	return a.Value()
}

// Offset translates From, To, and any spring anchors by the same
// amount, leaving the animation's progress and timing untouched.
func (a *Animation) Offset(delta float64) {
	a.from += delta
	a.to += delta
	if a.kind == KindSpring {
		a.spring.From += delta
		a.spring.To += delta
	}
}

func clampUnit(x float64) float64 {
	return clampF(x, 0, 1)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func validateBezier(b BezierControl) {
	if b.X1 < 0 || b.X1 > 1 {
		panic("anim: curve out of range")
	}
}

// bezierY evaluates a cubic Bezier curve with fixed endpoints (0,0)
// and (1,1) at parameter x, via Newton's method on the parametric t.
func bezierY(x float64, b BezierControl) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	t := x
	for i := 0; i < 8; i++ {
		cx := bezierComponent(t, b.X1, b.X2)
		dx := bezierDerivative(t, b.X1, b.X2)
		if dx == 0 {
			break
		}
		t -= (cx - x) / dx
		t = clampUnit(t)
	}
	return bezierComponent(t, b.Y1, b.Y2)
}

func bezierComponent(t, p1, p2 float64) float64 {
	u := 1 - t
	return 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t
}

func bezierDerivative(t, p1, p2 float64) float64 {
	u := 1 - t
	return 3*u*u*p1 + 6*u*t*(p2-p1) + 3*t*t*(1-p2)
}
