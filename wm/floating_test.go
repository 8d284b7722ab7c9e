// SPDX-License-Identifier: Unlicense OR MIT

package wm

import (
	"testing"

	"github.com/sciurus-wm/corium/clock"
	"github.com/sciurus-wm/corium/geom"
)

func TestFloatingAddAndPositionRoundTrip(t *testing.T) {
	c := clock.WithTime(0)
	area := geom.RectWH(1000, 1000)
	f := NewFloatingSpace(area)

	tile := NewTile(c, 1, geom.Point{X: 200, Y: 150})
	f.AddTile(tile, geom.Point{X: 100, Y: 100}, 0, false)

	pos, ok := f.Position(1)
	if !ok {
		t.Fatalf("expected tile 1 present")
	}
	if pos.X != 100 || pos.Y != 100 {
		t.Fatalf("expected position (100,100), got %v", pos)
	}
}

func TestFloatingRefreshClampsWithMinOverlap(t *testing.T) {
	c := clock.WithTime(0)
	area := geom.RectWH(1000, 1000)
	f := NewFloatingSpace(area)
	tile := NewTile(c, 1, geom.Point{X: 200, Y: 150})
	f.AddTile(tile, geom.Point{X: 990, Y: 10}, 0, false)

	f.Refresh(area)
	pos, _ := f.Position(1)
	minOverlap := minVisibleOverlap(200.)
	maxX := area.Max.X - minOverlap
	if pos.X > maxX+0.01 {
		t.Fatalf("expected position clamped to leave %v px visible, got x=%v (max %v)", minOverlap, pos.X, maxX)
	}
}

func TestRaiseDescendantsKeepsChildAboveParent(t *testing.T) {
	c := clock.WithTime(0)
	area := geom.RectWH(1000, 1000)
	f := NewFloatingSpace(area)

	parent := NewTile(c, 1, geom.Point{X: 100, Y: 100})
	child := NewTile(c, 2, geom.Point{X: 100, Y: 100})
	other := NewTile(c, 3, geom.Point{X: 100, Y: 100})

	f.AddTile(parent, geom.Point{}, 0, false)
	f.AddTile(child, geom.Point{}, 1, true)
	f.AddTile(other, geom.Point{}, 0, false)

	f.Activate(1) // raising the parent should pull its child with it

	order := f.Tiles()
	parentIdx, childIdx := -1, -1
	for i, tl := range order {
		if tl.Window == 1 {
			parentIdx = i
		}
		if tl.Window == 2 {
			childIdx = i
		}
	}
	if childIdx != parentIdx+1 {
		t.Fatalf("expected child immediately above parent, got order %v (parent=%d child=%d)", windowIDs(order), parentIdx, childIdx)
	}
}

func windowIDs(tiles []*Tile) []WindowID {
	out := make([]WindowID, len(tiles))
	for i, t := range tiles {
		out[i] = t.Window
	}
	return out
}

func TestFocusDirectionalPicksNearestInDirection(t *testing.T) {
	c := clock.WithTime(0)
	area := geom.RectWH(1000, 1000)
	f := NewFloatingSpace(area)

	center := NewTile(c, 1, geom.Point{X: 100, Y: 100})
	right := NewTile(c, 2, geom.Point{X: 100, Y: 100})
	farRight := NewTile(c, 3, geom.Point{X: 100, Y: 100})

	f.AddTile(center, geom.Point{X: 400, Y: 400}, 0, false)
	f.AddTile(right, geom.Point{X: 600, Y: 400}, 0, false)
	f.AddTile(farRight, geom.Point{X: 900, Y: 400}, 0, false)

	got, ok := f.FocusDirectional(1, DirRight)
	if !ok || got != 2 {
		t.Fatalf("expected nearest window to the right (2), got %v ok=%v", got, ok)
	}
}

func TestFocusDirectionalNoneFound(t *testing.T) {
	c := clock.WithTime(0)
	area := geom.RectWH(1000, 1000)
	f := NewFloatingSpace(area)
	lone := NewTile(c, 1, geom.Point{X: 100, Y: 100})
	f.AddTile(lone, geom.Point{X: 400, Y: 400}, 0, false)

	_, ok := f.FocusDirectional(1, DirRight)
	if ok {
		t.Fatalf("expected no candidate found")
	}
}
