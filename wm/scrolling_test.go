// SPDX-License-Identifier: Unlicense OR MIT

package wm

import (
	"testing"
	"time"

	"github.com/sciurus-wm/corium/clock"
	"github.com/sciurus-wm/corium/geom"
)

func TestComputeViewOffsetColumnWiderThanViewIsNoop(t *testing.T) {
	if got := ComputeViewOffset(0, 100, 0, 100, 10, false); got != 0 {
		t.Fatalf("expected 0 when view width == column width, got %v", got)
	}
	if got := ComputeViewOffset(0, 100, 0, 150, 10, false); got != 0 {
		t.Fatalf("expected 0 when column wider than view, got %v", got)
	}
}

func TestComputeViewOffsetRTLStub(t *testing.T) {
	if got := ComputeViewOffset(0, 500, 200, 100, 10, true); got != 0 {
		t.Fatalf("expected RTL stub to always return 0, got %v", got)
	}
}

func TestComputeViewOffsetFullyVisibleIsNoop(t *testing.T) {
	// Column already fully within [curX, curX+viewWidth] with padding
	// satisfied: no delta needed.
	got := ComputeViewOffset(0, 500, 0, 100, 0, false)
	if got != 0 {
		t.Fatalf("expected already-visible column to need no shift, got %v", got)
	}
}

func newScrollSpace() *ScrollingSpace {
	c := clock.WithTime(0)
	return NewScrollingSpace(c, geom.RectWH(500, 500), 10)
}

func col(c clock.Clock, id WindowID, w float64) *Column {
	return NewColumn(NewTile(c, id, geom.Point{X: w, Y: 100}), WidthPolicy{Kind: WidthFixed, Fixed: w})
}

func TestAddThenRemoveColumnRestoresRepresentation(t *testing.T) {
	s := newScrollSpace()
	c := s.clock

	s.AddColumn(-1, col(c, 1, 200), easing(0))
	if len(s.Columns) != 1 || s.ActiveColumnIdx != 0 {
		t.Fatalf("unexpected state after first insert: %+v", s)
	}
	offsetBefore := s.ViewOffset()

	s.AddColumn(-1, col(c, 2, 200), easing(0))
	if len(s.Columns) != 2 {
		t.Fatalf("expected 2 columns")
	}

	s.RemoveColumn(1, easing(0))
	if len(s.Columns) != 1 {
		t.Fatalf("expected 1 column after removal")
	}
	if s.ActiveColumnIdx != 0 {
		t.Fatalf("expected active column back to 0, got %d", s.ActiveColumnIdx)
	}
	if got := s.ViewOffset(); absf(got-offsetBefore) > 0.001 {
		t.Fatalf("expected view offset restored to %v, got %v", offsetBefore, got)
	}
}

func TestRemoveColumnClampsActiveIdxWithoutPriorRecord(t *testing.T) {
	s := newScrollSpace()
	c := s.clock
	s.AddColumn(-1, col(c, 1, 100), easing(0))
	s.AddColumn(-1, col(c, 2, 100), easing(0))
	s.AddColumn(-1, col(c, 3, 100), easing(0))
	s.ActivateColumn(2, easing(0))

	s.activatePrevColumnOnRemoval = nil
	s.RemoveColumn(2, easing(0))

	if s.ActiveColumnIdx != 1 {
		t.Fatalf("expected active idx clamped to 1, got %d", s.ActiveColumnIdx)
	}
}

func TestEndViewGestureSnapsToNearestColumn(t *testing.T) {
	s := newScrollSpace()
	c := s.clock
	s.AddColumn(-1, col(c, 1, 100), easing(0))
	s.AddColumn(-1, col(c, 2, 100), easing(0))
	s.AddColumn(-1, col(c, 3, 100), easing(0))

	s.StartViewGesture(0.998, 0)
	s.UpdateViewGesture(10*time.Millisecond, -50)
	s.UpdateViewGesture(20*time.Millisecond, -50)
	s.EndViewGesture(30*time.Millisecond, easing(0))

	if s.viewOffsetKind == ViewOffsetGesture {
		t.Fatalf("expected gesture source cleared after EndViewGesture")
	}
	if s.ActiveColumnIdx < 0 || s.ActiveColumnIdx >= len(s.Columns) {
		t.Fatalf("expected valid active column after gesture end, got %d", s.ActiveColumnIdx)
	}
}

func TestFullscreenRoundTrip(t *testing.T) {
	s := newScrollSpace()
	c := s.clock
	s.AddColumn(-1, col(c, 1, 100), easing(0))
	s.AddColumn(-1, col(c, 2, 100), easing(0))
	s.ActivateColumn(1, easing(0))

	before := s.ViewOffset()
	s.SetFullscreen(easing(0))
	if got := s.ViewOffset(); got != 0 {
		t.Fatalf("expected view offset 0 immediately after instant fullscreen animation, got %v", got)
	}

	s.UnsetFullscreen(easing(0))
	if got := s.ViewOffset(); absf(got-before) > 0.001 {
		t.Fatalf("expected view offset restored to %v after unfullscreen, got %v", before, got)
	}
}

func TestCheckInvariantsDetectsOutOfRangeActiveIdx(t *testing.T) {
	s := newScrollSpace()
	c := s.clock
	s.AddColumn(-1, col(c, 1, 100), easing(0))
	if !s.CheckInvariants() {
		t.Fatalf("expected valid invariants")
	}
	s.ActiveColumnIdx = 5
	if s.CheckInvariants() {
		t.Fatalf("expected invariant violation detected")
	}
}
