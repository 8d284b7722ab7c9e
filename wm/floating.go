// SPDX-License-Identifier: Unlicense OR MIT

package wm

import (
	"math"

	"github.com/sciurus-wm/corium/geom"
)

// floatingEntry is one tile in a FloatingSpace's stacking order (index
// 0 is the bottom of the stack).
type floatingEntry struct {
	tile     *Tile
	normPos  geom.Point
	cachedPos geom.Point
	parent   WindowID // zero value means "no parent"
	hasParent bool
}

// FloatingSpace holds unordered (by placement, but stacking-ordered)
// tiles with positions normalized against the working area (spec
// §3/§4.6).
type FloatingSpace struct {
	entries       []*floatingEntry
	workingArea   geom.Rect
	activeWindow  WindowID
	hasActive     bool
}

// NewFloatingSpace creates an empty floating space.
func NewFloatingSpace(workingArea geom.Rect) *FloatingSpace {
	return &FloatingSpace{workingArea: workingArea}
}

// minVisibleOverlap returns the guardrail minimum visible overlap (in
// pixels) for a tile of the given size along one axis, per spec §4.6:
// clamp(size/4, 10, 75).
func minVisibleOverlap(size float64) float64 {
	return geom.Clamp(size/4, 10, 75)
}

// AddTile appends a tile to the top of the stack at the given absolute
// position, storing it normalized against the working area.
func (f *FloatingSpace) AddTile(t *Tile, pos geom.Point, parent WindowID, hasParent bool) {
	e := &floatingEntry{
		tile:      t,
		normPos:   geom.Normalize(pos, f.workingArea),
		cachedPos: pos,
		parent:    parent,
		hasParent: hasParent,
	}
	f.entries = append(f.entries, e)
	f.raiseDescendants(t.Window)
}

// RemoveTile removes the tile with the given window id.
func (f *FloatingSpace) RemoveTile(id WindowID) {
	for i, e := range f.entries {
		if e.tile.Window == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			if f.hasActive && f.activeWindow == id {
				f.hasActive = false
			}
			return
		}
	}
}

// Tiles returns the stacking order, bottom to top.
func (f *FloatingSpace) Tiles() []*Tile {
	out := make([]*Tile, len(f.entries))
	for i, e := range f.entries {
		out[i] = e.tile
	}
	return out
}

// Position returns the current logical (denormalized) position of the
// tile with the given window id.
func (f *FloatingSpace) Position(id WindowID) (geom.Point, bool) {
	for _, e := range f.entries {
		if e.tile.Window == id {
			return e.cachedPos, true
		}
	}
	return geom.Point{}, false
}

// Refresh recomputes every tile's cached logical position from its
// normalized position against a new working area, enforcing the
// minimum-visible-overlap guardrail of spec §4.6.
func (f *FloatingSpace) Refresh(workingArea geom.Rect) {
	f.workingArea = workingArea
	for _, e := range f.entries {
		pos := geom.Denormalize(e.normPos, workingArea)
		size := e.tile.Size()

		minX := workingArea.Min.X - size.X + minVisibleOverlap(size.X)
		maxX := workingArea.Max.X - minVisibleOverlap(size.X)
		minY := workingArea.Min.Y - size.Y + minVisibleOverlap(size.Y)
		maxY := workingArea.Max.Y - minVisibleOverlap(size.Y)

		pos.X = geom.Clamp(pos.X, minX, maxX)
		pos.Y = geom.Clamp(pos.Y, minY, maxY)

		e.cachedPos = pos
		e.normPos = geom.Normalize(pos, workingArea)
	}
}

// Activate marks id as the active window and raises every descendant
// of it above it, preserving relative descendant order (spec §4.6).
func (f *FloatingSpace) Activate(id WindowID) {
	f.activeWindow = id
	f.hasActive = true
	f.raiseDescendants(id)
}

// ActiveWindow returns the window last passed to Activate, or false
// when none has been activated or the active one was removed. The
// active window need not be topmost (spec §3).
func (f *FloatingSpace) ActiveWindow() (WindowID, bool) {
	return f.activeWindow, f.hasActive
}

// raiseDescendants moves every tile that (transitively) declares id as
// a parent to immediately above id in stacking order, preserving
// relative order among the moved tiles.
func (f *FloatingSpace) raiseDescendants(id WindowID) {
	idx := f.indexOf(id)
	if idx < 0 {
		return
	}

	descendants := f.transitiveDescendants(id)
	if len(descendants) == 0 {
		return
	}

	kept := make([]*floatingEntry, 0, len(f.entries))
	moved := make([]*floatingEntry, 0, len(descendants))
	for _, e := range f.entries {
		if descendants[e.tile.Window] {
			moved = append(moved, e)
		} else {
			kept = append(kept, e)
		}
	}

	out := make([]*floatingEntry, 0, len(f.entries))
	for _, e := range kept {
		out = append(out, e)
		if e.tile.Window == id {
			out = append(out, moved...)
		}
	}
	f.entries = out
}

func (f *FloatingSpace) transitiveDescendants(id WindowID) map[WindowID]bool {
	children := map[WindowID][]WindowID{}
	for _, e := range f.entries {
		if e.hasParent {
			children[e.parent] = append(children[e.parent], e.tile.Window)
		}
	}

	result := map[WindowID]bool{}
	var visit func(WindowID)
	visit = func(w WindowID) {
		for _, c := range children[w] {
			if !result[c] {
				result[c] = true
				visit(c)
			}
		}
	}
	visit(id)
	return result
}

func (f *FloatingSpace) indexOf(id WindowID) int {
	for i, e := range f.entries {
		if e.tile.Window == id {
			return i
		}
	}
	return -1
}

// Direction is a focus-navigation axis (spec §4.6 "focus left/right/
// up/down").
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

func (d Direction) vector() geom.Point {
	switch d {
	case DirLeft:
		return geom.Point{X: -1}
	case DirRight:
		return geom.Point{X: 1}
	case DirUp:
		return geom.Point{Y: -1}
	default:
		return geom.Point{Y: 1}
	}
}

// FocusDirectional selects, among tiles whose center-vector from the
// currently focused tile's center has strictly positive projection on
// dir, the one with minimum Euclidean distance (spec §4.6).
func (f *FloatingSpace) FocusDirectional(from WindowID, dir Direction) (WindowID, bool) {
	var fromCenter geom.Point
	found := false
	for _, e := range f.entries {
		if e.tile.Window == from {
			fromCenter = center(e.cachedPos, e.tile.Size())
			found = true
			break
		}
	}
	if !found {
		return 0, false
	}

	v := dir.vector()
	var best *floatingEntry
	bestDist := math.Inf(1)
	for _, e := range f.entries {
		if e.tile.Window == from {
			continue
		}
		c := center(e.cachedPos, e.tile.Size())
		toVec := c.Sub(fromCenter)
		if toVec.Dot(v) <= 0 {
			continue
		}
		d := fromCenter.Dist(c)
		if d < bestDist {
			bestDist = d
			best = e
		}
	}
	if best == nil {
		return 0, false
	}
	return best.tile.Window, true
}

func center(pos, size geom.Point) geom.Point {
	return geom.Point{X: pos.X + size.X/2, Y: pos.Y + size.Y/2}
}
