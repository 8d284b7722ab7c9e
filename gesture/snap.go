// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import "math"

// SnapPoint is a candidate view offset a gesture can come to rest at,
// tagged with the index of the column it belongs to (spec §4.5).
type SnapPoint struct {
	ColumnIdx int
	Offset    float64
}

// NearestSnapPoint returns the point in candidates whose Offset is
// closest to terminus. Panics on an empty slice: callers must supply
// at least the current column's own snap point.
func NearestSnapPoint(terminus float64, candidates []SnapPoint) SnapPoint {
	best := candidates[0]
	bestDist := math.Abs(candidates[0].Offset - terminus)
	for _, c := range candidates[1:] {
		if d := math.Abs(c.Offset - terminus); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
