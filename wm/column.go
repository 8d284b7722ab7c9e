// SPDX-License-Identifier: Unlicense OR MIT

package wm

import (
	"github.com/sciurus-wm/corium/anim"
)

// DisplayMode selects how a Column presents its tiles (spec §4.4).
type DisplayMode uint8

const (
	// Stacked shows all tiles vertically, heights auto-distributed.
	Stacked DisplayMode = iota
	// Tabbed shows only the active tile; background tiles fade out.
	Tabbed
)

// WidthPolicy describes how a Column's width is derived.
type WidthPolicy struct {
	Kind WidthKind
	// Proportion is used when Kind == WidthProportion, a fraction of
	// the working area width.
	Proportion float64
	// Fixed is used when Kind == WidthFixed, an absolute pixel width.
	Fixed float64
	// PresetIndex is used when Kind == WidthPreset, an index into the
	// configured preset-column-widths list.
	PresetIndex int
}

type WidthKind uint8

const (
	WidthPreset WidthKind = iota
	WidthProportion
	WidthFixed
)

// WindowHeight is a per-tile height policy within a stacked column.
type WindowHeight struct {
	Kind   HeightKind
	Weight float64 // used when Kind == HeightAuto
	Fixed  float64 // used when Kind == HeightFixed
}

type HeightKind uint8

const (
	HeightAuto HeightKind = iota
	HeightFixed
)

// SizeConstraint bounds a tile's height.
type SizeConstraint struct {
	Min, Max float64 // Max == 0 means unbounded
}

// Column is a vertical stack of one or more tiles sharing a width
// policy and display mode (spec §3/§4.4).
type Column struct {
	Tiles         []*Tile
	ActiveTileIdx int
	Width         WidthPolicy
	DisplayMode   DisplayMode

	heights     []WindowHeight
	constraints []SizeConstraint

	widthAnim *anim.Animation // neighbor-shift animation, X offset
}

// NewColumn creates a column containing a single tile.
func NewColumn(t *Tile, width WidthPolicy) *Column {
	return &Column{
		Tiles:       []*Tile{t},
		Width:       width,
		heights:     []WindowHeight{{Kind: HeightAuto, Weight: 1}},
		constraints: []SizeConstraint{{}},
	}
}

// ActiveTile returns the column's active tile. Panics if the column
// has no tiles, which should never happen (spec invariant len >= 1).
func (c *Column) ActiveTile() *Tile {
	return c.Tiles[c.ActiveTileIdx]
}

// InsertTile inserts t at idx with the given height policy and
// constraint, and fixes up ActiveTileIdx to keep pointing at the same
// tile it pointed at before the insertion.
func (c *Column) InsertTile(idx int, t *Tile, h WindowHeight, cons SizeConstraint) {
	c.Tiles = append(c.Tiles, nil)
	copy(c.Tiles[idx+1:], c.Tiles[idx:])
	c.Tiles[idx] = t

	c.heights = append(c.heights, WindowHeight{})
	copy(c.heights[idx+1:], c.heights[idx:])
	c.heights[idx] = h

	c.constraints = append(c.constraints, SizeConstraint{})
	copy(c.constraints[idx+1:], c.constraints[idx:])
	c.constraints[idx] = cons

	if idx <= c.ActiveTileIdx {
		c.ActiveTileIdx++
	}
}

// RemoveTileAt removes the tile at idx, fixing up ActiveTileIdx to
// remain in bounds. Reports whether the column is now empty.
func (c *Column) RemoveTileAt(idx int) (empty bool) {
	c.Tiles = append(c.Tiles[:idx], c.Tiles[idx+1:]...)
	c.heights = append(c.heights[:idx], c.heights[idx+1:]...)
	c.constraints = append(c.constraints[:idx], c.constraints[idx+1:]...)

	if len(c.Tiles) == 0 {
		c.ActiveTileIdx = 0
		return true
	}
	if idx < c.ActiveTileIdx {
		c.ActiveTileIdx--
	}
	if c.ActiveTileIdx >= len(c.Tiles) {
		c.ActiveTileIdx = len(c.Tiles) - 1
	}
	// Reset stored heights when only one tile remains: a lone tile
	// always fills the column (spec §4.5 "Remove tile").
	if len(c.Tiles) == 1 {
		c.heights[0] = WindowHeight{Kind: HeightAuto, Weight: 1}
	}
	return false
}

// Activate sets the active tile index, clamped into range.
func (c *Column) Activate(idx int) {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(c.Tiles) {
		idx = len(c.Tiles) - 1
	}
	c.ActiveTileIdx = idx
}

// VisibleAlpha returns the rendered alpha for the tile at idx given
// the column's display mode: in Tabbed mode, only the active tile is
// visible, matching spec §4.4's "background tiles have alpha 0".
func (c *Column) VisibleAlpha(idx int) float64 {
	base := c.Tiles[idx].Alpha()
	if c.DisplayMode == Tabbed && idx != c.ActiveTileIdx {
		return 0
	}
	return base
}

// TileHeights distributes the available height H among the column's
// tiles under their min/max constraints (spec §4.4, stacked mode).
//
// Algorithm: pin tiles whose min == max to that size and subtract
// from the pool; then iteratively compute a tentative auto height for
// the remaining "auto" tiles, pinning any whose min exceeds that
// tentative height and removing them from the auto set, repeating
// until stable; remaining integer pixels are distributed one at a
// time to the first tiles. Fixed heights are clamped into
// [min, max] before participating in the pool subtraction.
func (c *Column) TileHeights(availableHeight float64, gap float64) []float64 {
	n := len(c.Tiles)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	gapsTotal := gap * float64(n-1)
	heightLeft := availableHeight - gapsTotal
	if heightLeft < 0 {
		heightLeft = 0
	}

	pinned := make([]bool, n)
	autoSet := make([]bool, n)

	for i, h := range c.heights {
		cons := c.constraints[i]
		switch h.Kind {
		case HeightFixed:
			v := h.Fixed
			v = clampConstraint(v, cons)
			out[i] = v
			pinned[i] = true
			heightLeft -= v
		default:
			if cons.Max > 0 && cons.Min >= cons.Max {
				out[i] = cons.Min
				pinned[i] = true
				heightLeft -= cons.Min
			} else {
				autoSet[i] = true
			}
		}
	}

	// Iteratively pin auto tiles whose min exceeds the tentative
	// share, until the remaining auto set is stable.
	for {
		autoCount := 0
		totalWeight := 0.
		for i := range c.Tiles {
			if autoSet[i] {
				autoCount++
				w := c.heights[i].Weight
				if w <= 0 {
					w = 1
				}
				totalWeight += w
			}
		}
		if autoCount == 0 {
			break
		}
		tentativePerWeight := heightLeft / totalWeight

		changed := false
		for i := range c.Tiles {
			if !autoSet[i] {
				continue
			}
			w := c.heights[i].Weight
			if w <= 0 {
				w = 1
			}
			tentative := tentativePerWeight * w
			min := c.constraints[i].Min
			if min > 0 && tentative < min {
				out[i] = min
				pinned[i] = true
				autoSet[i] = false
				heightLeft -= min
				changed = true
			}
		}
		if !changed {
			// Stable: assign the remaining auto tiles their weighted share.
			for i := range c.Tiles {
				if autoSet[i] {
					w := c.heights[i].Weight
					if w <= 0 {
						w = 1
					}
					out[i] = tentativePerWeight * w
				}
			}
			break
		}
	}

	distributeRemainder(out, availableHeight-gapsTotal)
	return out
}

func clampConstraint(v float64, cons SizeConstraint) float64 {
	if cons.Min > 0 && v < cons.Min {
		v = cons.Min
	}
	if cons.Max > 0 && v > cons.Max {
		v = cons.Max
	}
	return v
}

// distributeRemainder hands out leftover whole pixels one at a time to
// the first tiles, at most one per tile. A fractional remainder, or a
// remainder larger than the number of tiles, is not handed out, so the
// sum of out can stay below target.
func distributeRemainder(out []float64, target float64) {
	sum := 0.
	for _, v := range out {
		sum += v
	}
	remainder := target - sum
	if remainder <= 0 {
		return
	}
	whole := int(remainder)
	for i := 0; i < whole && i < len(out); i++ {
		out[i]++
	}
}
