// SPDX-License-Identifier: Unlicense OR MIT

package wm

import (
	"math"

	"github.com/sciurus-wm/corium/geom"
)

// Struts are reserved output edges subtracted from an output's full
// area to produce its working area (spec glossary).
type Struts struct {
	Left, Right, Top, Bottom float64
}

// ComputeWorkingArea subtracts struts from parentArea and rounds the
// resulting origin up to the nearest physical pixel at the given
// output scale, shrinking size by the rounding remainder so the
// working area never extends past the parent area (SPEC_FULL §9,
// grounded on original_source's compute_working_area).
func ComputeWorkingArea(parentArea geom.Rect, scale float64, struts Struts) geom.Rect {
	w := math.Max(0, parentArea.Dx()-struts.Left-struts.Right)
	h := math.Max(0, parentArea.Dy()-struts.Top-struts.Bottom)

	loc := geom.Point{X: parentArea.Min.X + struts.Left, Y: parentArea.Min.Y + struts.Top}

	rounded := geom.Point{
		X: roundLogicalInPhysical(scale, loc.X),
		Y: roundLogicalInPhysical(scale, loc.Y),
	}

	diffX := math.Min(w, rounded.X-loc.X)
	diffY := math.Min(h, rounded.Y-loc.Y)

	return geom.Rect{
		Min: rounded,
		Max: geom.Point{X: rounded.X + w - diffX, Y: rounded.Y + h - diffY},
	}
}

// roundLogicalInPhysical rounds a logical coordinate up to the
// nearest physical pixel boundary at the given scale.
func roundLogicalInPhysical(scale, logical float64) float64 {
	if scale <= 0 {
		return logical
	}
	return math.Ceil(logical*scale) / scale
}

// PresetSize is either a proportion of the view width or a fixed
// pixel width (spec §4.4 width policy, SPEC_FULL §9).
type PresetSize struct {
	IsFixed    bool
	Proportion float64
	Fixed      float64
}

// ResolvedSize is the outcome of resolving a PresetSize: either a Tile
// size (the full tile including decorations) or a Window size (the
// client content area only).
type ResolvedSize struct {
	IsWindow bool
	Value    float64
}

// ResolvePresetSize converts a PresetSize into a ResolvedSize given
// the available view size and any extra (decoration) size that must
// be subtracted from a proportional width before it reaches the
// client.
func ResolvePresetSize(preset PresetSize, gaps, viewSize, extraSize float64) ResolvedSize {
	if preset.IsFixed {
		return ResolvedSize{IsWindow: true, Value: preset.Fixed}
	}
	return ResolvedSize{
		IsWindow: false,
		Value:    (viewSize-gaps)*preset.Proportion - gaps - extraSize,
	}
}

// BorderConfig describes the decoration border drawn around a tile.
type BorderConfig struct {
	Off   bool
	Width float64
}

// ComputeToplevelBounds derives the configure bounds a tile advertises
// to its client from the working-area size, gaps, extra decoration
// size, and border width (SPEC_FULL §9).
func ComputeToplevelBounds(border BorderConfig, workingAreaSize geom.Point, extraSize geom.Point, gaps float64) (w, h int) {
	b := 0.
	if !border.Off {
		b = border.Width * 2
	}
	w = int(math.Max(workingAreaSize.X-gaps*2-extraSize.X-b, 1))
	h = int(math.Max(workingAreaSize.Y-gaps*2-extraSize.Y-b, 1))
	return w, h
}
