// SPDX-License-Identifier: Unlicense OR MIT

package wm

import (
	"testing"
	"time"

	"github.com/sciurus-wm/corium/anim"
	"github.com/sciurus-wm/corium/clock"
	"github.com/sciurus-wm/corium/geom"
)

func TestWorkspaceCloseTileTracksUntilDone(t *testing.T) {
	c := clock.WithTime(0)
	ws := NewWorkspace(c, geom.RectWH(800, 600), 10)
	tile := NewTile(c, 1, geom.Point{X: 100, Y: 100})

	cfg := anim200()
	ws.CloseTile(tile, cfg)
	if ws.ClosingWindowCount() != 1 {
		t.Fatalf("expected 1 closing window, got %d", ws.ClosingWindowCount())
	}

	if n := ws.ReapClosingWindows(); n != 0 {
		t.Fatalf("expected nothing reaped before animation completes, got %d", n)
	}

	c.SetUnadjusted(200 * time.Millisecond)
	if n := ws.ReapClosingWindows(); n != 1 {
		t.Fatalf("expected 1 reaped after animation completes, got %d", n)
	}
	if ws.ClosingWindowCount() != 0 {
		t.Fatalf("expected 0 closing windows remaining")
	}
}

func TestWorkspaceCloseTileIdempotentWhenAlreadyClosing(t *testing.T) {
	c := clock.WithTime(0)
	ws := NewWorkspace(c, geom.RectWH(800, 600), 10)
	tile := NewTile(c, 1, geom.Point{X: 100, Y: 100})

	ws.CloseTile(tile, anim200())
	ws.CloseTile(tile, anim200())
	if ws.ClosingWindowCount() != 1 {
		t.Fatalf("expected calling CloseTile twice not to double-record, got %d", ws.ClosingWindowCount())
	}
}

func TestWorkspaceFullscreenRoundTrip(t *testing.T) {
	c := clock.WithTime(0)
	ws := NewWorkspace(c, geom.RectWH(800, 600), 10)
	ws.Scrolling.AddColumn(-1, col(c, 1, 200), easing(0))
	ws.Scrolling.AddColumn(-1, col(c, 2, 200), easing(0))
	ws.Scrolling.ActivateColumn(1, easing(0))

	if ws.IsFullscreen() {
		t.Fatalf("expected not fullscreen initially")
	}

	ws.SetFullscreen(1, easing(0))
	if !ws.IsFullscreen() {
		t.Fatalf("expected fullscreen after SetFullscreen")
	}
	if got := ws.Scrolling.ViewOffset(); got != 0 {
		t.Fatalf("expected view offset 0 while fullscreen, got %v", got)
	}

	ws.UnsetFullscreen(easing(0))
	if ws.IsFullscreen() {
		t.Fatalf("expected not fullscreen after UnsetFullscreen")
	}
}

func TestWorkspaceActiveWindowPrefersFloating(t *testing.T) {
	c := clock.WithTime(0)
	ws := NewWorkspace(c, geom.RectWH(800, 600), 10)
	ws.Scrolling.AddColumn(-1, col(c, 1, 200), easing(0))

	floatTile := NewTile(c, 2, geom.Point{X: 50, Y: 50})
	ws.Floating.AddTile(floatTile, geom.Point{X: 0, Y: 0}, 0, false)
	ws.Floating.Activate(2)

	got, ok := ws.ActiveWindow()
	if !ok || got != 2 {
		t.Fatalf("expected active floating window 2, got %v ok=%v", got, ok)
	}
}

func TestWorkspaceActiveWindowFallsBackToScrolling(t *testing.T) {
	c := clock.WithTime(0)
	ws := NewWorkspace(c, geom.RectWH(800, 600), 10)
	ws.Scrolling.AddColumn(-1, col(c, 1, 200), easing(0))

	got, ok := ws.ActiveWindow()
	if !ok || got != 1 {
		t.Fatalf("expected active scrolling window 1, got %v ok=%v", got, ok)
	}
}

func TestWorkspaceWindowsListsBothSpaces(t *testing.T) {
	c := clock.WithTime(0)
	ws := NewWorkspace(c, geom.RectWH(800, 600), 10)
	ws.Scrolling.AddColumn(-1, col(c, 1, 200), easing(0))
	ws.Floating.AddTile(NewTile(c, 2, geom.Point{X: 50, Y: 50}), geom.Point{}, 0, false)

	windows := ws.Windows()
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows total, got %d: %v", len(windows), windows)
	}
}

func anim200() anim.EasingConfig {
	return easing(200)
}
