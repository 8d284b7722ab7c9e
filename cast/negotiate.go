// SPDX-License-Identifier: Unlicense OR MIT

package cast

import "time"

// frameDelayAllowance is the "0.1 ms allowance for presentation time
// errors" the original frame-pacing gate tolerates before deciding a
// frame truly arrived early enough to delay (spec §4.8 "Frame
// pacing"; ported from the original's CAST_DELAY_ALLOWANCE).
const frameDelayAllowance = 100 * time.Microsecond

// TargetKind selects what a stream captures.
type TargetKind uint8

const (
	TargetOutput TargetKind = iota
	TargetWindow
)

// Target identifies what a single stream captures: either a named
// output or a window id (spec §4.8, ported from the original's
// StreamTarget/StreamTargetId split between a live reference and its
// stable identity).
type Target struct {
	Kind       TargetKind
	OutputName string
	WindowID   uint64
}

// StreamParameters is the record-oriented container of everything a
// consumer needs to map a stream to a screen region, sent once at
// stream-start time (spec §6, ported from the original's
// `StreamParameters` D-Bus dict).
type StreamParameters struct {
	// Position of the stream's captured region, in logical coordinates.
	Position [2]int
	// Size of the captured region, in logical coordinates.
	Size [2]int
	// MappingID lets a remote-desktop absolute pointer device be
	// correlated with the screen region this stream captures.
	MappingID string
}

// Cast is one negotiated screencast stream: its identity, target,
// negotiation state, cursor mode, and buffer pipeline.
type Cast struct {
	SessionID SessionID
	StreamID  StreamID

	Target        Target
	DynamicTarget bool

	CursorMode CursorMode
	state      CastState
	pipeline   *Pipeline

	// RefreshMillihz is the negotiated stream framerate in millihertz
	// (spec §3 "Cast"), used to derive minTimeBetweenFrames. Zero
	// means no rate limit has been negotiated yet.
	RefreshMillihz uint32
	// LastFrameTime is the target frame time of the most recently
	// rendered frame, zero until the first frame (spec §4.8 "Frame
	// pacing").
	LastFrameTime time.Duration

	scheduledRedraw    bool
	scheduledDeadline  time.Duration
	scheduledToken     RedrawToken
	redrawTokenCounter uint64
}

// NewCast creates a cast awaiting its first format at the given
// initial size.
func NewCast(session SessionID, stream StreamID, target Target, cursorMode CursorMode, width, height int) *Cast {
	return &Cast{
		SessionID:  session,
		StreamID:   stream,
		Target:     target,
		CursorMode: cursorMode,
		state:      ResizePending(width, height),
		pipeline:   NewPipeline(),
	}
}

// RedrawToken identifies one scheduled redraw so a caller can tell a
// stale, already-fired redraw apart from the current one when
// removing it (spec §5 "Scheduled cast redraws are removable by
// token").
type RedrawToken uint64

// SetRefresh updates the stream's negotiated framerate, in millihertz
// (spec §3, ported from the original's Cast::set_refresh).
func (c *Cast) SetRefresh(refreshMillihz uint32) {
	c.RefreshMillihz = refreshMillihz
}

// minTimeBetweenFrames derives the minimum spacing between frames from
// the negotiated refresh rate (spec §4.8 "min_time_between_frames
// (derived from negotiated max framerate)"). Zero refresh means no
// limit has been negotiated yet, so frames are never throttled.
func (c *Cast) minTimeBetweenFrames() time.Duration {
	if c.RefreshMillihz == 0 {
		return 0
	}
	return time.Duration(uint64(time.Second) * 1000 / uint64(c.RefreshMillihz))
}

// computeExtraDelay returns how much longer the caller must wait
// before targetFrameTime is far enough past LastFrameTime to satisfy
// minTimeBetweenFrames, or zero if it already is (spec §4.8; ported
// from the original's Cast::compute_extra_delay).
func (c *Cast) computeExtraDelay(targetFrameTime time.Duration) time.Duration {
	if c.LastFrameTime == 0 {
		return 0
	}
	if targetFrameTime < c.LastFrameTime {
		// Target overflowed or was mispredicted; treat as due now
		// rather than blocking forever.
		return 0
	}
	diff := targetFrameTime - c.LastFrameTime
	min := c.minTimeBetweenFrames()
	if diff < min {
		return min - diff
	}
	return 0
}

// CheckTimeAndSchedule implements spec §4.8's frame-pacing gate: if
// targetFrameTime arrives more than frameDelayAllowance (0.1 ms)
// before LastFrameTime+minTimeBetweenFrames would allow, this frame is
// skipped and a redraw is scheduled for the exact deadline; otherwise
// any previously scheduled redraw is canceled and the caller should
// render now (ported from the original's Cast::check_time_and_schedule).
//
// skip reports whether this frame must be skipped. When skip is true,
// deadline and token describe the redraw the caller must arrange (via
// its own timer) and may later cancel with token. When skip is false,
// any previously scheduled redraw has already been canceled and the
// caller should proceed straight to rendering.
func (c *Cast) CheckTimeAndSchedule(targetFrameTime time.Duration) (skip bool, deadline time.Duration, token RedrawToken) {
	delay := c.computeExtraDelay(targetFrameTime)
	if delay >= frameDelayAllowance {
		return true, c.scheduleRedraw(targetFrameTime + delay), c.scheduledToken
	}
	c.CancelScheduledRedraw()
	return false, 0, 0
}

// scheduleRedraw records a pending redraw at deadline, unless one is
// already scheduled (the original never replaces an outstanding
// timer), and returns the deadline that applies.
func (c *Cast) scheduleRedraw(deadline time.Duration) time.Duration {
	if c.scheduledRedraw {
		return c.scheduledDeadline
	}
	c.redrawTokenCounter++
	c.scheduledRedraw = true
	c.scheduledDeadline = deadline
	c.scheduledToken = RedrawToken(c.redrawTokenCounter)
	return deadline
}

// CancelScheduledRedraw clears any pending scheduled redraw, e.g. once
// a frame has actually rendered or the cast is torn down.
func (c *Cast) CancelScheduledRedraw() {
	c.scheduledRedraw = false
}

// ScheduledRedraw reports the currently pending scheduled redraw, if
// any.
func (c *Cast) ScheduledRedraw() (token RedrawToken, deadline time.Duration, ok bool) {
	return c.scheduledToken, c.scheduledDeadline, c.scheduledRedraw
}

// MarkFrameRendered records targetFrameTime as the new LastFrameTime
// and cancels any scheduled redraw, to be called once a frame has
// actually been dequeued and rendered.
func (c *Cast) MarkFrameRendered(targetFrameTime time.Duration) {
	c.LastFrameTime = targetFrameTime
	c.CancelScheduledRedraw()
}

// State returns the cast's current negotiation state.
func (c *Cast) State() CastState { return c.state }

// Pipeline returns the cast's buffer pipeline.
func (c *Cast) Pipeline() *Pipeline { return c.pipeline }

// IsReady reports whether the cast has completed negotiation and may
// render frames.
func (c *Cast) IsReady() bool { return c.state.Kind == StateReady }

// Negotiate advances the cast's state machine with a new format
// proposal from the consumer.
func (c *Cast) Negotiate(p FormatProposal, resolve ModifierResolver) error {
	next, err := c.state.Advance(p, resolve)
	if err != nil {
		return err
	}
	c.state = next
	return nil
}

// RequestResize moves the cast back to ResizePending at a new target
// size, if it differs from the size already negotiated.
func (c *Cast) RequestResize(width, height int) bool {
	next, changed := c.state.RequestResize(width, height)
	if changed {
		c.state = next
	}
	return changed
}
