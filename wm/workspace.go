// SPDX-License-Identifier: Unlicense OR MIT

package wm

import (
	"github.com/sciurus-wm/corium/anim"
	"github.com/sciurus-wm/corium/clock"
	"github.com/sciurus-wm/corium/geom"
)

// FocusFollowsMouse selects the discipline under which pointer motion
// changes keyboard focus (spec §4.7).
type FocusFollowsMouse uint8

const (
	FocusFollowsMouseOff FocusFollowsMouse = iota
	FocusFollowsMouseOn
)

// Workspace combines one ScrollingSpace and one FloatingSpace, and
// owns the closing-window animations that outlive their original tile
// (spec §3/§4.7).
type Workspace struct {
	Scrolling *ScrollingSpace
	Floating  *FloatingSpace

	closing []*closingWindow

	fullscreenColumn    *Column
	fullscreenPrevColIdx int
	hasFullscreen       bool

	FocusFollowsMouse FocusFollowsMouse
	clock             clock.Clock
}

type closingWindow struct {
	snapshot *ClosingSnapshot
}

// NewWorkspace creates a workspace over the given working area.
func NewWorkspace(c clock.Clock, workingArea geom.Rect, gaps float64) *Workspace {
	return &Workspace{
		Scrolling: NewScrollingSpace(c, workingArea, gaps),
		Floating:  NewFloatingSpace(workingArea),
		clock:     c,
	}
}

// CloseTile drains t into a closing-window snapshot that continues to
// animate after the tile itself is discarded (spec §3 "Workspace"
// invariant: a closing window never participates in layout
// decisions).
func (w *Workspace) CloseTile(t *Tile, cfg anim.EasingConfig) {
	if !t.IsClosing() {
		t.StartCloseAnimation(cfg)
	}
	snap, ok := t.TakeUnmapSnapshot()
	if !ok {
		return // "no close animation for this tile": nothing to drain
	}
	for _, c := range w.closing {
		if c.snapshot == snap {
			return
		}
	}
	w.closing = append(w.closing, &closingWindow{snapshot: snap})
}

// ReapClosingWindows drops closing-window records whose animation has
// finished. Returns the number reaped.
func (w *Workspace) ReapClosingWindows() int {
	n := 0
	kept := w.closing[:0]
	for _, c := range w.closing {
		if c.snapshot.Done() {
			n++
			continue
		}
		kept = append(kept, c)
	}
	w.closing = kept
	return n
}

// ClosingWindowCount reports how many closing-window animations are
// still in flight.
func (w *Workspace) ClosingWindowCount() int {
	return len(w.closing)
}

// SetFullscreen moves the column at idx into fullscreen: the scrolling
// space's view offset is recorded and animated to 0 (spec §4.5/§4.7).
func (w *Workspace) SetFullscreen(idx int, cfg anim.EasingConfig) {
	if w.hasFullscreen {
		return
	}
	w.fullscreenColumn = w.Scrolling.Columns[idx]
	w.fullscreenPrevColIdx = idx
	w.hasFullscreen = true
	w.Scrolling.SetFullscreen(cfg)
}

// UnsetFullscreen ends fullscreen on the current fullscreen column. On
// the last tile leaving fullscreen, the stored view offset is
// consumed and the scrolling space animates back to it — the column
// never rejoins its previous index, per spec §4.7 ("may or may not
// rejoin its previous column — but never its previous index").
func (w *Workspace) UnsetFullscreen(cfg anim.EasingConfig) {
	if !w.hasFullscreen {
		return
	}
	w.hasFullscreen = false
	w.fullscreenColumn = nil
	w.Scrolling.UnsetFullscreen(cfg)
}

// IsFullscreen reports whether a column is currently fullscreen.
func (w *Workspace) IsFullscreen() bool {
	return w.hasFullscreen
}

// ActiveWindow returns the focused window across both spaces: the
// floating space's active window takes priority when set, otherwise
// the active tile of the active scrolling column (spec §3 Layout
// invariant: focus is always defined when any window exists).
func (w *Workspace) ActiveWindow() (WindowID, bool) {
	if id, ok := w.Floating.ActiveWindow(); ok {
		return id, true
	}
	if len(w.Scrolling.Columns) > 0 {
		return w.Scrolling.Columns[w.Scrolling.ActiveColumnIdx].ActiveTile().Window, true
	}
	return 0, false
}

// Windows returns every non-closing window id hosted by this
// workspace, across both spaces.
func (w *Workspace) Windows() []WindowID {
	var out []WindowID
	for _, c := range w.Scrolling.Columns {
		for _, t := range c.Tiles {
			out = append(out, t.Window)
		}
	}
	for _, t := range w.Floating.Tiles() {
		out = append(out, t.Window)
	}
	return out
}
