// SPDX-License-Identifier: Unlicense OR MIT

package wm

import (
	"github.com/sciurus-wm/corium/anim"
	"github.com/sciurus-wm/corium/clock"
	"github.com/sciurus-wm/corium/geom"
)

// OutputID identifies a physical output (monitor).
type OutputID uint64

// ResizeEdges is a bitmask of the active edges in an interactive
// resize session (spec §4.7 "interactive move/resize").
type ResizeEdges uint8

const (
	EdgeLeft ResizeEdges = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// InteractiveResize tracks the single in-flight interactive resize
// session a Layout may have (spec §3 "at most one").
type InteractiveResize struct {
	Window      WindowID
	Edges       ResizeEdges
	InitialSize geom.Point
	committed   bool

	// pendingSerial is the configure serial most recently sent to the
	// resizing window that hasn't yet been acknowledged by a matching
	// commit, or zero when no configure is outstanding (spec §5
	// "configure events ... reflect a consistent snapshot"; serial
	// bookkeeping for ConfigureIntent below).
	pendingSerial uint64
	nextSerial    uint64
}

// ConfigureIntent is the decision returned when asking whether a
// configure may be sent to a window undergoing interactive resize
// right now (spec §5: "an interactive-resize commit throttles further
// configures (CanSend/ShouldSend/HoldOff) unless transactions are
// disabled").
type ConfigureIntent uint8

const (
	// CanSend means no resize throttling applies to this window at
	// all (no active resize session, or transactions are disabled) —
	// send unconditionally.
	CanSend ConfigureIntent = iota
	// ShouldSend means a resize transaction is active, but the
	// previously sent configure (if any) has already been
	// acknowledged, so a new one may go out now.
	ShouldSend
	// HoldOff means a resize transaction is active and the last
	// configure sent for it is still unacknowledged; sending another
	// now would let multiple in-flight configures race on the client.
	HoldOff
)

// InteractiveMove tracks the single in-flight interactive move session
// a Layout may have.
type InteractiveMove struct {
	Window      WindowID
	InitialPos  geom.Point
}

// Output owns the workspaces assigned to one physical output.
type Output struct {
	ID          OutputID
	Area        geom.Rect
	Scale       float64
	Workspaces  []*Workspace
	ActiveIdx   int

	switchAnim *anim.Spring // inter-workspace vertical-switch spring, nil when idle
	switchFrom int
}

// Layout owns every output's workspaces, and the at-most-one
// interactive move/resize session (spec §3 "Layout").
type Layout struct {
	Outputs []*Output

	resize *InteractiveResize
	move   *InteractiveMove

	prevFocused WindowID
	hasPrev     bool

	clock clock.Clock
}

// NewLayout creates an empty layout.
func NewLayout(c clock.Clock) *Layout {
	return &Layout{clock: c}
}

// AddOutput registers a new output with one empty workspace.
func (l *Layout) AddOutput(id OutputID, area geom.Rect, scale float64, gaps float64) *Output {
	out := &Output{ID: id, Area: area, Scale: scale}
	out.Workspaces = append(out.Workspaces, NewWorkspace(l.clock, area, gaps))
	l.Outputs = append(l.Outputs, out)
	return out
}

// RemoveOutput detaches the output with the given id. Its workspaces
// are returned so the caller can reassign them to a surviving output;
// Layout itself holds no policy for where orphaned workspaces go.
func (l *Layout) RemoveOutput(id OutputID) []*Workspace {
	for i, o := range l.Outputs {
		if o.ID == id {
			l.Outputs = append(l.Outputs[:i], l.Outputs[i+1:]...)
			return o.Workspaces
		}
	}
	return nil
}

// MoveWorkspace moves the workspace at srcIdx on src to the end of
// dst's workspace list (spec §4.7 "output-to-output moves").
func (l *Layout) MoveWorkspace(src *Output, srcIdx int, dst *Output) {
	if srcIdx < 0 || srcIdx >= len(src.Workspaces) {
		return
	}
	ws := src.Workspaces[srcIdx]
	src.Workspaces = append(src.Workspaces[:srcIdx], src.Workspaces[srcIdx+1:]...)
	if len(src.Workspaces) == 0 {
		src.Workspaces = append(src.Workspaces, NewWorkspace(l.clock, src.Area, 0))
	}
	if src.ActiveIdx >= len(src.Workspaces) {
		src.ActiveIdx = len(src.Workspaces) - 1
	}
	dst.Workspaces = append(dst.Workspaces, ws)
}

// SwitchWorkspace begins an animated vertical switch to idx on o,
// driven by an independent spring (spec §4.7 "its own spring").
func (o *Output) SwitchWorkspace(idx int, params anim.SpringParams) {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(o.Workspaces) {
		idx = len(o.Workspaces) - 1
	}
	if idx == o.ActiveIdx {
		return
	}
	o.switchFrom = o.ActiveIdx
	o.ActiveIdx = idx
	s := Spring(params)
	s.From = 0
	s.To = 1
	o.switchAnim = &s
}

// Spring is a free function alias kept for readability at call sites;
// it simply zero-values a Spring with the given params.
func Spring(params anim.SpringParams) anim.Spring {
	return anim.Spring{Params: params}
}

// ActiveWorkspace returns the output's currently active workspace.
func (o *Output) ActiveWorkspace() *Workspace {
	return o.Workspaces[o.ActiveIdx]
}

// BeginResize starts the layout's single interactive resize session.
// Returns false if a session is already active (spec §3 invariant: at
// most one interactive resize in flight).
func (l *Layout) BeginResize(window WindowID, edges ResizeEdges, initialSize geom.Point) bool {
	if l.resize != nil {
		return false
	}
	l.resize = &InteractiveResize{Window: window, Edges: edges, InitialSize: initialSize}
	return true
}

// UpdateResize applies a pointer delta to the active resize session,
// honoring edge sign: dragging the left or top edge grows the tile
// when the pointer moves toward the opposite edge (spec §4.7).
func (l *Layout) UpdateResize(delta geom.Point) geom.Point {
	if l.resize == nil {
		return geom.Point{}
	}
	size := l.resize.InitialSize
	dx, dy := delta.X, delta.Y
	if l.resize.Edges&EdgeLeft != 0 {
		dx = -dx
	}
	if l.resize.Edges&EdgeTop != 0 {
		dy = -dy
	}
	if l.resize.Edges&(EdgeLeft|EdgeRight) == 0 {
		dx = 0
	}
	if l.resize.Edges&(EdgeTop|EdgeBottom) == 0 {
		dy = 0
	}
	return geom.Point{X: size.X + dx, Y: size.Y + dy}
}

// CommitResize marks the first commit of the active resize session.
// The first commit is when the caller must recompute the scrolling
// space's view offset to account for the new size (spec §4.7 "first
// resize commit recomputes view offset").
func (l *Layout) CommitResize() (firstCommit bool) {
	if l.resize == nil {
		return false
	}
	firstCommit = !l.resize.committed
	l.resize.committed = true
	return firstCommit
}

// ConfigureIntent reports whether a configure may be sent to window
// right now (spec §5). disableTransactions mirrors the config escape
// hatch: when set, throttling never applies, "for more intuitive
// behavior" matching the original's disable_resize_throttling.
func (l *Layout) ConfigureIntent(window WindowID, disableTransactions bool) ConfigureIntent {
	if disableTransactions {
		return CanSend
	}
	if l.resize == nil || l.resize.Window != window {
		return CanSend
	}
	if l.resize.pendingSerial == 0 {
		return ShouldSend
	}
	return HoldOff
}

// SendConfigure is the configure-delivery call site: it decides
// whether window may be sent a configure right now via ConfigureIntent.
// HoldOff never invokes send. CanSend invokes send with serial 0 (no
// transaction is tracking this window, so there is nothing to
// acknowledge). ShouldSend invokes send with a freshly allocated
// serial and records it as outstanding for the active resize
// transaction, so subsequent calls hold off until AckResizeConfigure
// reports it acknowledged.
func (l *Layout) SendConfigure(window WindowID, disableTransactions bool, send func(serial uint64)) ConfigureIntent {
	intent := l.ConfigureIntent(window, disableTransactions)
	if intent == HoldOff {
		return intent
	}
	if l.resize != nil && l.resize.Window == window && !disableTransactions {
		l.resize.nextSerial++
		l.resize.pendingSerial = l.resize.nextSerial
		send(l.resize.pendingSerial)
		return intent
	}
	send(0)
	return intent
}

// AckResizeConfigure acknowledges a client commit carrying serial
// against the active resize session's outstanding configure, clearing
// pendingSerial once it matches so the next SendConfigure call is
// free to send again (spec §5 "configure ... throttles ... unless
// transactions are disabled"). A stale serial from before the
// outstanding one is ignored.
func (l *Layout) AckResizeConfigure(window WindowID, serial uint64) {
	if l.resize == nil || l.resize.Window != window {
		return
	}
	if serial >= l.resize.pendingSerial {
		l.resize.pendingSerial = 0
	}
}

// EndResize ends the active interactive resize session, if any.
func (l *Layout) EndResize() {
	l.resize = nil
}

// BeginMove starts the layout's single interactive move session.
func (l *Layout) BeginMove(window WindowID, initialPos geom.Point) bool {
	if l.move != nil {
		return false
	}
	l.move = &InteractiveMove{Window: window, InitialPos: initialPos}
	return true
}

// UpdateMove applies a pointer delta to the active move session.
func (l *Layout) UpdateMove(delta geom.Point) geom.Point {
	if l.move == nil {
		return geom.Point{}
	}
	return l.move.InitialPos.Add(delta)
}

// EndMove ends the active interactive move session, if any.
func (l *Layout) EndMove() {
	l.move = nil
}

// RecordFocus remembers the previously focused window, so focus can
// be restored after a transient focus change (spec §3 "previously-
// focused window").
func (l *Layout) RecordFocus(id WindowID) {
	l.prevFocused = id
	l.hasPrev = true
}

// PreviouslyFocused returns the last window recorded via RecordFocus.
func (l *Layout) PreviouslyFocused() (WindowID, bool) {
	return l.prevFocused, l.hasPrev
}
