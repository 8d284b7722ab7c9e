// SPDX-License-Identifier: Unlicense OR MIT

package wm

import (
	"testing"

	"github.com/sciurus-wm/corium/clock"
	"github.com/sciurus-wm/corium/geom"
)

func TestColumnInsertRemoveFixesActiveIdx(t *testing.T) {
	c := clock.WithTime(0)
	col := NewColumn(NewTile(c, 1, geom.Point{X: 100, Y: 100}), WidthPolicy{Kind: WidthFixed, Fixed: 100})
	col.InsertTile(0, NewTile(c, 2, geom.Point{X: 100, Y: 100}), WindowHeight{Kind: HeightAuto, Weight: 1}, SizeConstraint{})

	if col.ActiveTileIdx != 1 {
		t.Fatalf("expected active idx shifted to 1, got %d", col.ActiveTileIdx)
	}
	if col.ActiveTile().Window != 1 {
		t.Fatalf("expected active tile to remain window 1")
	}

	empty := col.RemoveTileAt(0)
	if empty {
		t.Fatalf("column should not be empty after removing one of two tiles")
	}
	if col.ActiveTileIdx != 0 {
		t.Fatalf("expected active idx to shift down to 0, got %d", col.ActiveTileIdx)
	}

	empty = col.RemoveTileAt(0)
	if !empty {
		t.Fatalf("expected column empty after removing last tile")
	}
}

func TestRemoveTileResetsHeightOnLastTile(t *testing.T) {
	c := clock.WithTime(0)
	col := NewColumn(NewTile(c, 1, geom.Point{X: 100, Y: 100}), WidthPolicy{Kind: WidthFixed, Fixed: 100})
	col.InsertTile(1, NewTile(c, 2, geom.Point{X: 100, Y: 100}), WindowHeight{Kind: HeightFixed, Fixed: 300}, SizeConstraint{})
	col.RemoveTileAt(1)

	if col.heights[0].Kind != HeightAuto || col.heights[0].Weight != 1 {
		t.Fatalf("expected height policy reset to Auto{1} on lone tile, got %+v", col.heights[0])
	}
}

func TestTileHeightsEqualWeightsSplitEvenly(t *testing.T) {
	c := clock.WithTime(0)
	col := NewColumn(NewTile(c, 1, geom.Point{X: 100, Y: 100}), WidthPolicy{Kind: WidthFixed, Fixed: 100})
	col.InsertTile(1, NewTile(c, 2, geom.Point{X: 100, Y: 100}), WindowHeight{Kind: HeightAuto, Weight: 1}, SizeConstraint{})

	heights := col.TileHeights(200, 10)
	if len(heights) != 2 {
		t.Fatalf("expected 2 heights, got %d", len(heights))
	}
	sum := heights[0] + heights[1]
	if sum < 189 || sum > 191 {
		t.Fatalf("expected heights to sum to ~190 (200 - 10 gap), got %v", sum)
	}
	if d := heights[0] - heights[1]; d > 1 || d < -1 {
		t.Fatalf("expected roughly equal split, got %v and %v", heights[0], heights[1])
	}
}

func TestTileHeightsPinsMinConstraint(t *testing.T) {
	c := clock.WithTime(0)
	col := NewColumn(NewTile(c, 1, geom.Point{X: 100, Y: 100}), WidthPolicy{Kind: WidthFixed, Fixed: 100})
	col.constraints[0] = SizeConstraint{Min: 150}
	col.InsertTile(1, NewTile(c, 2, geom.Point{X: 100, Y: 100}), WindowHeight{Kind: HeightAuto, Weight: 1}, SizeConstraint{})

	heights := col.TileHeights(200, 0)
	if heights[0] < 149.9 {
		t.Fatalf("expected tile 0 pinned to its min of 150, got %v", heights[0])
	}
	if heights[1] > 50.1 {
		t.Fatalf("expected tile 1 to take the remaining ~50, got %v", heights[1])
	}
}

func TestTileHeightsFixedSubtractsFromPool(t *testing.T) {
	c := clock.WithTime(0)
	col := NewColumn(NewTile(c, 1, geom.Point{X: 100, Y: 100}), WidthPolicy{Kind: WidthFixed, Fixed: 100})
	col.heights[0] = WindowHeight{Kind: HeightFixed, Fixed: 60}
	col.InsertTile(1, NewTile(c, 2, geom.Point{X: 100, Y: 100}), WindowHeight{Kind: HeightAuto, Weight: 1}, SizeConstraint{})

	heights := col.TileHeights(200, 0)
	if heights[0] != 60 {
		t.Fatalf("expected fixed height honored exactly, got %v", heights[0])
	}
	if heights[1] != 140 {
		t.Fatalf("expected remaining 140 given to the auto tile, got %v", heights[1])
	}
}

func TestVisibleAlphaZeroForInactiveInTabbedMode(t *testing.T) {
	c := clock.WithTime(0)
	col := NewColumn(NewTile(c, 1, geom.Point{X: 100, Y: 100}), WidthPolicy{Kind: WidthFixed, Fixed: 100})
	col.InsertTile(1, NewTile(c, 2, geom.Point{X: 100, Y: 100}), WindowHeight{Kind: HeightAuto, Weight: 1}, SizeConstraint{})
	col.DisplayMode = Tabbed
	col.Activate(1)

	if col.VisibleAlpha(0) != 0 {
		t.Fatalf("expected inactive tile alpha 0 in tabbed mode")
	}
	if col.VisibleAlpha(1) != 1 {
		t.Fatalf("expected active tile alpha 1 in tabbed mode")
	}
}
