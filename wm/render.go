// SPDX-License-Identifier: Unlicense OR MIT

package wm

import "github.com/sciurus-wm/corium/geom"

// RenderElementKind tags the variant held by a RenderElement (SPEC_FULL
// §9 "Dynamic dispatch over render-element families": a closed tagged
// sum is preferred here over an interface hierarchy, since the set of
// kinds is fixed and every consumer needs to switch on all of them).
type RenderElementKind uint8

const (
	RenderTile RenderElementKind = iota
	RenderCursor
	RenderWindowCast
	RenderRelocatedCursor
	RenderOutput
)

// Damage is a list of rectangles, in the element's local coordinate
// space, that changed since the last frame. A nil Damage means the
// whole element's geometry is damaged.
type Damage []geom.Rect

// RenderElement is one item in a frame's render list. Exactly one of
// the Tile/Cursor/WindowCast/RelocatedCursor/Output payload fields is
// meaningful, selected by Kind.
type RenderElement struct {
	Kind RenderElementKind
	Geom geom.Rect

	Tile            *TileElement
	Cursor          *CursorElement
	WindowCast      *WindowCastElement
	RelocatedCursor *RelocatedCursorElement
	Output          *OutputElement
}

// TileElement renders one Tile at its current animated geometry.
type TileElement struct {
	Window WindowID
	Alpha  float64
	Offset geom.Point
}

// CursorElement renders the pointer cursor image at its live position.
type CursorElement struct {
	Pos    geom.Point
	Hotspot geom.Point
}

// WindowCastElement renders a single-window screencast's source
// content, independent of that window's on-screen tile (a cast can
// keep capturing a window that has since been unmapped from the
// layout, spec §4.8).
type WindowCastElement struct {
	Window WindowID
}

// RelocatedCursorElement renders the cursor at a position relative to
// a screencast's captured region rather than the output's own pointer
// position (spec §4.8 cursor mode Embedded).
type RelocatedCursorElement struct {
	Pos geom.Point
}

// OutputElement renders a full-output screencast's backdrop (used when
// compositing an entire output into a cast stream).
type OutputElement struct {
	Output OutputID
}

// Geometry returns the element's placement rectangle.
func (e *RenderElement) Geometry() geom.Rect {
	return e.Geom
}

// EffectiveAlpha returns the alpha the element should be composited
// with; non-tile kinds are always fully opaque.
func (e *RenderElement) EffectiveAlpha() float64 {
	if e.Kind == RenderTile && e.Tile != nil {
		return e.Tile.Alpha
	}
	return 1
}
