// SPDX-License-Identifier: Unlicense OR MIT

package wm

import (
	"time"

	"github.com/sciurus-wm/corium/anim"
	"github.com/sciurus-wm/corium/clock"
	"github.com/sciurus-wm/corium/geom"
	"github.com/sciurus-wm/corium/gesture"
)

// CenterFocusedColumn selects when the active column is kept centered
// in the viewport (spec §6 layout.center-focused-column).
type CenterFocusedColumn uint8

const (
	CenterNever CenterFocusedColumn = iota
	CenterOnOverflow
	CenterAlways
)

// ViewOffsetKind tags which of the three sources currently drives a
// ScrollingSpace's view offset (spec §3).
type ViewOffsetKind uint8

const (
	ViewOffsetStatic ViewOffsetKind = iota
	ViewOffsetAnimated
	ViewOffsetGesture
)

// ScrollingSpace is an ordered, horizontally scrolling set of columns
// (spec §3/§4.5).
type ScrollingSpace struct {
	Columns         []*Column
	ActiveColumnIdx int

	Gaps                float64
	CenterFocusedColumn CenterFocusedColumn
	RightToLeft         bool
	WorkingArea         geom.Rect
	ParentArea          geom.Rect

	viewOffsetKind   ViewOffsetKind
	viewOffsetStatic float64
	viewOffsetAnim   *anim.Animation
	gestureTracker   *gesture.SwipeTracker

	// activatePrevColumnOnRemoval, when non-nil, records the active
	// column's static view offset at the time a neighboring insertion
	// happened, to be restored if that column is later removed while
	// still active and a left neighbor exists (spec §4.5).
	activatePrevColumnOnRemoval *float64

	// viewOffsetToRestore holds the pre-fullscreen view offset,
	// consumed when the last fullscreen tile leaves fullscreen.
	viewOffsetToRestore *float64

	clock clock.Clock
}

// NewScrollingSpace creates an empty scrolling space.
func NewScrollingSpace(c clock.Clock, workingArea geom.Rect, gaps float64) *ScrollingSpace {
	return &ScrollingSpace{
		WorkingArea: workingArea,
		Gaps:        gaps,
		clock:       c,
	}
}

// ColumnX returns the X coordinate of the left edge of the column at
// idx, the running sum of prior column widths and gaps.
func (s *ScrollingSpace) ColumnX(idx int) float64 {
	x := 0.
	for i := 0; i < idx; i++ {
		x += s.Columns[i].ActiveTile().Size().X + s.Gaps
	}
	return x
}

// ViewOffset resolves the space's current view offset from whichever
// of the three sources (static, animated, gesture) is active.
func (s *ScrollingSpace) ViewOffset() float64 {
	switch s.viewOffsetKind {
	case ViewOffsetAnimated:
		if s.viewOffsetAnim != nil {
			return s.viewOffsetAnim.Value()
		}
	case ViewOffsetGesture:
		if s.gestureTracker != nil {
			return s.gestureTracker.Position()
		}
	}
	return s.viewOffsetStatic
}

func (s *ScrollingSpace) setStaticOffset(v float64) {
	s.viewOffsetKind = ViewOffsetStatic
	s.viewOffsetStatic = v
	s.viewOffsetAnim = nil
}

func (s *ScrollingSpace) animateOffsetTo(target float64, cfg anim.EasingConfig) {
	from := s.ViewOffset()
	a := anim.NewEasing(s.clock, from, target, 0, cfg)
	s.viewOffsetAnim = &a
	s.viewOffsetKind = ViewOffsetAnimated
}

// ComputeViewOffset implements spec §4.5's view-offset computation:
// given the current view X, the working-area width W, a column at
// (colX, colW), a gap, and an RTL flag, returns the new view X
// relative to the column's left edge: the view's left edge goes to
// colX plus the result. A column already fully visible with its
// padding keeps the current view X.
//
// RTL scrolling is intentionally stubbed to 0 (spec §9 open question):
// the correct behavior is undefined upstream and is preserved as a
// stub here rather than guessed at.
func ComputeViewOffset(curX, viewWidth, colX, colWidth, gap float64, rtl bool) float64 {
	if rtl {
		return 0
	}
	if viewWidth <= colWidth {
		return 0
	}

	padding := geom.Clamp((viewWidth-colWidth)/2, 0, gap)
	newX := colX - padding
	newRightX := colX + colWidth + padding

	if curX <= newX && newRightX <= curX+viewWidth {
		return -(colX - curX)
	}

	distToLeft := absf(curX - newX)
	distToRight := absf((curX + viewWidth) - newRightX)
	if distToLeft <= distToRight {
		return -padding
	}
	return -(viewWidth - padding - colWidth)
}

// fitOffset computes the absolute view offset that satisfies
// ComputeViewOffset for the column at idx, given the space's current
// view offset as the "current position" input.
func (s *ScrollingSpace) fitOffset(idx int) float64 {
	cur := -s.ViewOffset()
	colX := s.ColumnX(idx)
	colW := s.Columns[idx].ActiveTile().Size().X
	delta := ComputeViewOffset(cur, s.WorkingArea.Dx(), colX, colW, s.Gaps, s.RightToLeft)
	return -(colX + delta)
}

// centeredOffset computes the view offset that centers the column at
// idx in the working area.
func (s *ScrollingSpace) centeredOffset(idx int) float64 {
	colX := s.ColumnX(idx)
	colW := s.Columns[idx].ActiveTile().Size().X
	return -(colX - (s.WorkingArea.Dx()-colW)/2)
}

// targetOffsetFor picks fit-or-centered depending on
// CenterFocusedColumn and whether the layout currently overflows the
// working area.
func (s *ScrollingSpace) targetOffsetFor(idx int) float64 {
	switch s.CenterFocusedColumn {
	case CenterAlways:
		return s.centeredOffset(idx)
	case CenterOnOverflow:
		if s.totalWidth() > s.WorkingArea.Dx() {
			return s.centeredOffset(idx)
		}
	}
	return s.fitOffset(idx)
}

func (s *ScrollingSpace) totalWidth() float64 {
	if len(s.Columns) == 0 {
		return 0
	}
	w := s.ColumnX(len(s.Columns) - 1)
	w += s.Columns[len(s.Columns)-1].ActiveTile().Size().X
	return w
}

// AddColumn inserts col at idx (if idx < 0, immediately right of the
// active column) and updates the view offset and active index per
// spec §4.5.
func (s *ScrollingSpace) AddColumn(idx int, col *Column, cfg anim.EasingConfig) {
	wasEmpty := len(s.Columns) == 0
	if idx < 0 {
		idx = s.ActiveColumnIdx + 1
	}
	if wasEmpty {
		idx = 0
	}

	insertedWidth := col.ActiveTile().Size().X
	leftOfActive := idx <= s.ActiveColumnIdx

	s.Columns = append(s.Columns, nil)
	copy(s.Columns[idx+1:], s.Columns[idx:])
	s.Columns[idx] = col

	if leftOfActive {
		s.ActiveColumnIdx++
	}

	if wasEmpty {
		s.ActiveColumnIdx = idx
		s.setStaticOffset(s.fitOffset(idx))
		return
	}

	// Record the (now previous) active column's offset so a later
	// removal can restore it.
	cur := s.ViewOffset()
	s.activatePrevColumnOnRemoval = &cur

	// Shift neighbors by the inserted column's width.
	sign := 1.0
	if leftOfActive {
		sign = -1
	}
	s.animateOffsetTo(s.ViewOffset()+sign*(insertedWidth+s.Gaps), cfg)
	s.ActiveColumnIdx = idx
}

// AddTileToColumn inserts t into the column at colIdx, cross-fading
// the previously active tile when the column is Tabbed (spec §4.5).
func (s *ScrollingSpace) AddTileToColumn(colIdx, tileIdx int, t *Tile, makeActive bool, h WindowHeight, cons SizeConstraint, cfg anim.EasingConfig) {
	col := s.Columns[colIdx]
	prevWidth := col.ActiveTile().Size().X
	prevActive := col.ActiveTile()

	col.InsertTile(tileIdx, t, h, cons)

	if col.DisplayMode == Tabbed {
		if makeActive {
			prevActive.AnimateAlpha(1, 0, cfg)
			col.Activate(tileIdx)
		} else {
			t.AnimateAlpha(0, 0, cfg) // joins background, already invisible
		}
	} else if makeActive {
		col.Activate(tileIdx)
	}

	newWidth := col.ActiveTile().Size().X
	if newWidth != prevWidth {
		s.shiftNeighbors(colIdx, newWidth-prevWidth, cfg)
	}
}

// shiftNeighbors animates every column to the right of colIdx by
// delta, used when a column's width changes (spec §4.5 resize
// coupling). If delta is below the animate threshold the shift is
// instantaneous.
func (s *ScrollingSpace) shiftNeighbors(colIdx int, delta float64, cfg anim.EasingConfig) {
	if delta == 0 {
		return
	}
	if colIdx <= s.ActiveColumnIdx && colIdx != s.ActiveColumnIdx {
		// A change to the left of the active column shifts the view.
		if absf(delta) < ResizeAnimateThreshold {
			s.setStaticOffset(s.ViewOffset() - delta)
		} else {
			s.animateOffsetTo(s.ViewOffset()-delta, cfg)
		}
	}
}

// RemoveTile removes the tile at tileIdx from the column at colIdx.
// If the column becomes empty it is removed entirely via
// RemoveColumn.
func (s *ScrollingSpace) RemoveTile(colIdx, tileIdx int, cfg anim.EasingConfig) {
	col := s.Columns[colIdx]
	prevWidth := col.ActiveTile().Size().X

	if empty := col.RemoveTileAt(tileIdx); empty {
		s.RemoveColumn(colIdx, cfg)
		return
	}

	newWidth := col.ActiveTile().Size().X
	if newWidth != prevWidth {
		s.shiftNeighbors(colIdx, newWidth-prevWidth, cfg)
	}
}

// RemoveColumn removes the column at idx, animating neighbors toward
// the freed space and applying the activation policy of spec §4.5:
// if activatePrevColumnOnRemoval is set and idx is the active column
// with a left neighbor, activate that neighbor and restore the
// recorded offset; otherwise activate the next-right column, clamped.
func (s *ScrollingSpace) RemoveColumn(idx int, cfg anim.EasingConfig) {
	removedWidth := s.Columns[idx].ActiveTile().Size().X

	s.Columns = append(s.Columns[:idx], s.Columns[idx+1:]...)

	if len(s.Columns) == 0 {
		s.ActiveColumnIdx = 0
		s.activatePrevColumnOnRemoval = nil
		s.setStaticOffset(0)
		return
	}

	if idx < s.ActiveColumnIdx {
		s.ActiveColumnIdx--
	} else if idx == s.ActiveColumnIdx {
		if s.activatePrevColumnOnRemoval != nil && idx > 0 {
			restore := *s.activatePrevColumnOnRemoval
			s.ActiveColumnIdx = idx - 1
			s.activatePrevColumnOnRemoval = nil
			s.setStaticOffset(restore)
			return
		}
		if s.ActiveColumnIdx >= len(s.Columns) {
			s.ActiveColumnIdx = len(s.Columns) - 1
		}
	}
	s.activatePrevColumnOnRemoval = nil

	if idx <= s.ActiveColumnIdx {
		s.animateOffsetTo(s.ViewOffset()+removedWidth+s.Gaps, cfg)
	}
}

// ActivateColumn sets the active column index and animates the view
// offset toward the fit-or-centered target.
func (s *ScrollingSpace) ActivateColumn(idx int, cfg anim.EasingConfig) {
	if idx < 0 || idx >= len(s.Columns) {
		return
	}
	s.ActiveColumnIdx = idx
	s.animateOffsetTo(s.targetOffsetFor(idx), cfg)
}

// StartViewGesture begins a touchpad scroll gesture, switching the
// view-offset source to the gesture tracker.
func (s *ScrollingSpace) StartViewGesture(decelerationRate float64, t time.Duration) {
	s.gestureTracker = gesture.NewSwipeTracker(decelerationRate)
	s.gestureTracker.Begin(t, s.ViewOffset())
	s.viewOffsetKind = ViewOffsetGesture
}

// UpdateViewGesture records a new touchpad delta sample.
func (s *ScrollingSpace) UpdateViewGesture(t time.Duration, delta float64) {
	if s.gestureTracker == nil {
		return
	}
	s.gestureTracker.Update(t, delta)
}

// EndViewGesture finalizes the gesture: projects a terminal offset,
// selects the nearest snap point among every column's fit (or
// centered) edge, selects that column as active, and animates there
// (spec §4.5).
func (s *ScrollingSpace) EndViewGesture(t time.Duration, cfg anim.EasingConfig) {
	if s.gestureTracker == nil {
		return
	}
	_, terminus := s.gestureTracker.End(t)
	s.gestureTracker = nil

	if len(s.Columns) == 0 {
		s.setStaticOffset(0)
		return
	}

	candidates := make([]gesture.SnapPoint, len(s.Columns))
	for i := range s.Columns {
		var off float64
		if s.CenterFocusedColumn == CenterAlways {
			off = s.centeredOffset(i)
		} else {
			off = s.offsetForFitAt(i, terminus)
		}
		candidates[i] = gesture.SnapPoint{ColumnIdx: i, Offset: off}
	}
	best := gesture.NearestSnapPoint(terminus, candidates)
	s.ActivateColumn(best.ColumnIdx, cfg)
}

// offsetForFitAt computes the fit offset for column idx using
// terminus as the reference "current" position, so each candidate is
// evaluated independently of the space's live view offset.
func (s *ScrollingSpace) offsetForFitAt(idx int, terminus float64) float64 {
	colX := s.ColumnX(idx)
	colW := s.Columns[idx].ActiveTile().Size().X
	delta := ComputeViewOffset(-terminus, s.WorkingArea.Dx(), colX, colW, s.Gaps, s.RightToLeft)
	return -(colX + delta)
}

// SetFullscreen records the current static view offset so it can be
// restored on unfullscreen, and animates the view offset to 0 (spec
// §4.5 fullscreen interaction).
func (s *ScrollingSpace) SetFullscreen(cfg anim.EasingConfig) {
	cur := s.ViewOffset()
	s.viewOffsetToRestore = &cur
	s.animateOffsetTo(0, cfg)
}

// UnsetFullscreen consumes the stored pre-fullscreen view offset and
// animates back to it, unless a view gesture is active in which case
// the stored value is still consumed but no animation starts.
func (s *ScrollingSpace) UnsetFullscreen(cfg anim.EasingConfig) {
	if s.viewOffsetToRestore == nil {
		return
	}
	restore := *s.viewOffsetToRestore
	s.viewOffsetToRestore = nil
	if s.viewOffsetKind == ViewOffsetGesture {
		return
	}
	s.animateOffsetTo(restore, cfg)
}

// CheckInvariants verifies the spec §8 universal invariants for a
// non-empty scrolling space.
func (s *ScrollingSpace) CheckInvariants() bool {
	if len(s.Columns) == 0 {
		return true
	}
	if s.ActiveColumnIdx < 0 || s.ActiveColumnIdx >= len(s.Columns) {
		return false
	}
	for _, col := range s.Columns {
		if len(col.Tiles) == 0 {
			return false
		}
		if col.ActiveTileIdx < 0 || col.ActiveTileIdx >= len(col.Tiles) {
			return false
		}
	}
	return true
}
