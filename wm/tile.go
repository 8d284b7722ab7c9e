// SPDX-License-Identifier: Unlicense OR MIT

// Package wm implements the layout engine: Tile, Column, ScrollingSpace,
// FloatingSpace, Workspace and Layout from spec §3-§4, arranging client
// surfaces into columns across workspaces with a horizontally
// scrolling viewport and first-class animation/gesture integration.
package wm

import (
	"github.com/sciurus-wm/corium/anim"
	"github.com/sciurus-wm/corium/clock"
	"github.com/sciurus-wm/corium/geom"
)

// WindowID identifies a client surface. The core never dereferences
// it; it is an opaque key into whatever table the protocol
// implementation (out of scope) maintains.
type WindowID uint64

// ResizeAnimateThreshold is the minimum size delta, in logical pixels,
// below which a tile resize snaps instead of animating (spec §9 open
// question: "product decision", preserved as a named constant).
const ResizeAnimateThreshold = 10

// Tile owns one window identity, a size requested from the client, a
// resolved tile size, and the per-tile animations described in spec §3.
type Tile struct {
	Window WindowID

	clock clock.Clock

	pendingSize  geom.Point
	resolvedSize geom.Point

	resizeAnim *anim.Animation // animates resolvedSize.X or .Y toward pendingSize
	resizeAxis axis

	openCloseAnim *anim.Animation // 0 = fully open/closed progress space
	alphaAnim     *anim.Animation
	moveAnimX     *anim.Animation
	moveAnimY     *anim.Animation

	closing bool
	unmapSnapshot *ClosingSnapshot
}

type axis uint8

const (
	axisWidth axis = iota
	axisHeight
)

// NewTile creates a tile for window id, already resolved to initial
// size.
func NewTile(c clock.Clock, id WindowID, size geom.Point) *Tile {
	return &Tile{
		Window:       id,
		clock:        c,
		pendingSize:  size,
		resolvedSize: size,
	}
}

// Size returns the tile's current resolved (client + decoration) size,
// which may be mid-animation.
func (t *Tile) Size() geom.Point {
	size := t.resolvedSize
	if t.resizeAnim != nil {
		v := t.resizeAnim.Value()
		switch t.resizeAxis {
		case axisWidth:
			size.X = v
		case axisHeight:
			size.Y = v
		}
	}
	return size
}

// RequestTileSize sets the pending size; if animate is true and the
// size differs by at least ResizeAnimateThreshold pixels on either
// axis, a resize animation is started, otherwise the tile snaps.
func (t *Tile) RequestTileSize(size geom.Point, animate bool, cfg anim.EasingConfig) {
	prev := t.pendingSize
	t.pendingSize = size

	dw := absf(size.X - prev.X)
	dh := absf(size.Y - prev.Y)

	if !animate || (dw < ResizeAnimateThreshold && dh < ResizeAnimateThreshold) {
		t.resolvedSize = size
		t.resizeAnim = nil
		return
	}

	// Animate whichever axis changed the most; the other axis snaps,
	// matching the teacher's single window-resize animation drawing
	// the most visually significant change.
	if dw >= dh {
		cur := t.Size()
		a := anim.NewEasing(t.clock, cur.X, size.X, 0, cfg)
		t.resizeAnim = &a
		t.resizeAxis = axisWidth
		t.resolvedSize.Y = size.Y
	} else {
		cur := t.Size()
		a := anim.NewEasing(t.clock, cur.Y, size.Y, 0, cfg)
		t.resizeAnim = &a
		t.resizeAxis = axisHeight
		t.resolvedSize.X = size.X
	}
}

// UpdateWindow pulls newly acknowledged state from the window after a
// commit: once the resize animation (if any) has reached its target,
// it is retired and the resolved size is snapped to the latest
// pending size reported by the client.
func (t *Tile) UpdateWindow() {
	if t.resizeAnim != nil && t.resizeAnim.IsDone() {
		t.resolvedSize = t.pendingSize
		t.resizeAnim = nil
	}
}

// AnimateAlpha adds a fading alpha animation, composed multiplicatively
// with the tile's base alpha (e.g. for tabbed-column background fade).
func (t *Tile) AnimateAlpha(from, to float64, cfg anim.EasingConfig) {
	a := anim.NewEasing(t.clock, from, to, 0, cfg)
	t.alphaAnim = &a
}

// Alpha returns the tile's current composed alpha in [0, 1].
func (t *Tile) Alpha() float64 {
	if t.alphaAnim == nil {
		return 1
	}
	return t.alphaAnim.Value()
}

// AnimateMove starts a render-offset animation used for "move"
// effects (a tile sliding to its new position rather than jumping).
func (t *Tile) AnimateMove(fromOffset geom.Point, cfg anim.EasingConfig) {
	ax := anim.NewEasing(t.clock, fromOffset.X, 0, 0, cfg)
	ay := anim.NewEasing(t.clock, fromOffset.Y, 0, 0, cfg)
	t.moveAnimX = &ax
	t.moveAnimY = &ay
}

// RenderOffset returns the tile's current animated render offset.
func (t *Tile) RenderOffset() geom.Point {
	var p geom.Point
	if t.moveAnimX != nil {
		p.X = t.moveAnimX.Value()
	}
	if t.moveAnimY != nil {
		p.Y = t.moveAnimY.Value()
	}
	return p
}

// StartOpenAnimation animates the tile's alpha in from 0, used on map.
func (t *Tile) StartOpenAnimation(cfg anim.EasingConfig) {
	t.AnimateAlpha(0, 1, cfg)
}

// StartCloseAnimation begins the tile's close animation. While it is
// in progress the tile must not be mutated by layout (spec §3
// invariant); callers should immediately drain it via
// TakeUnmapSnapshot.
func (t *Tile) StartCloseAnimation(cfg anim.EasingConfig) {
	a := anim.NewEasing(t.clock, 1, 0, 0, cfg)
	t.openCloseAnim = &a
	t.closing = true
}

// ClosingSnapshot is an immutable texture-list stand-in captured from
// a tile at unmap time, driving its own animation after the original
// tile has been discarded.
type ClosingSnapshot struct {
	Size  geom.Point
	Alpha *anim.Animation
}

// TakeUnmapSnapshot captures the tile's current render state into a
// ClosingSnapshot and consumes the tile's renderable identity: the
// tile itself must not be rendered again. Returns (nil, false) with a
// "no close animation for this tile" condition logged by the caller
// when the tile was never started closing (spec §4.3 local error).
func (t *Tile) TakeUnmapSnapshot() (*ClosingSnapshot, bool) {
	if t.openCloseAnim == nil {
		return nil, false
	}
	if t.unmapSnapshot != nil {
		return t.unmapSnapshot, true
	}
	snap := &ClosingSnapshot{
		Size:  t.Size(),
		Alpha: t.openCloseAnim,
	}
	t.unmapSnapshot = snap
	return snap, true
}

// IsClosing reports whether the tile has an in-flight close
// animation and must not be mutated by layout.
func (t *Tile) IsClosing() bool { return t.closing }

// Done reports whether the closing snapshot's animation has finished,
// at which point the Workspace should drop the record entirely.
func (s *ClosingSnapshot) Done() bool {
	return s.Alpha.IsDone()
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
