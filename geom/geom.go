// SPDX-License-Identifier: Unlicense OR MIT

// Package geom implements float64 point and rectangle math for logical
// compositor coordinates.
//
// The coordinate space has the origin in the top left corner with the
// axes extending right and down, matching every other space in the
// layout engine (working areas, tile geometry, normalized floating
// positions).
package geom

import "math"

// Point is a two dimensional point.
type Point struct {
	X, Y float64
}

// Add returns p+p2.
func (p Point) Add(p2 Point) Point {
	return Point{X: p.X + p2.X, Y: p.Y + p2.Y}
}

// Sub returns the vector p-p2.
func (p Point) Sub(p2 Point) Point {
	return Point{X: p.X - p2.X, Y: p.Y - p2.Y}
}

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of p and p2.
func (p Point) Dot(p2 Point) float64 {
	return p.X*p2.X + p.Y*p2.Y
}

// Len returns the Euclidean length of p treated as a vector.
func (p Point) Len() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Dist returns the Euclidean distance between p and p2.
func (p Point) Dist(p2 Point) float64 {
	return p.Sub(p2).Len()
}

// Rect is an axis-aligned rectangle, containing the points (X, Y)
// where Min.X <= X < Max.X, Min.Y <= Y < Max.Y.
type Rect struct {
	Min, Max Point
}

// RectWH builds a Rect at the origin with the given width and height.
func RectWH(w, h float64) Rect {
	return Rect{Max: Point{X: w, Y: h}}
}

// Size returns r's width and height as a Point.
func (r Rect) Size() Point {
	return Point{X: r.Dx(), Y: r.Dy()}
}

// Dx returns r's width.
func (r Rect) Dx() float64 {
	return r.Max.X - r.Min.X
}

// Dy returns r's height.
func (r Rect) Dy() float64 {
	return r.Max.Y - r.Min.Y
}

// Add offsets r by the vector p.
func (r Rect) Add(p Point) Rect {
	return Rect{r.Min.Add(p), r.Max.Add(p)}
}

// Sub offsets r by the vector -p.
func (r Rect) Sub(p Point) Rect {
	return Rect{r.Min.Sub(p), r.Max.Sub(p)}
}

// Intersect returns the intersection of r and s.
func (r Rect) Intersect(s Rect) Rect {
	if r.Min.X < s.Min.X {
		r.Min.X = s.Min.X
	}
	if r.Min.Y < s.Min.Y {
		r.Min.Y = s.Min.Y
	}
	if r.Max.X > s.Max.X {
		r.Max.X = s.Max.X
	}
	if r.Max.Y > s.Max.Y {
		r.Max.Y = s.Max.Y
	}
	return r
}

// Empty reports whether r represents the empty area.
func (r Rect) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Clamp restricts v to [lo, hi], swapping the bounds if lo > hi.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Normalize expresses the absolute point p as a position relative to
// area, in the range [0, 1] along each axis when p lies within area.
// Used by the floating space (spec §4.6) to keep tile placement
// consistent across output/working-area changes.
func Normalize(p Point, area Rect) Point {
	w, h := area.Dx(), area.Dy()
	n := Point{}
	if w != 0 {
		n.X = (p.X - area.Min.X) / w
	}
	if h != 0 {
		n.Y = (p.Y - area.Min.Y) / h
	}
	return n
}

// Denormalize is the inverse of Normalize: it resolves a normalized
// position back into absolute coordinates against area.
func Denormalize(n Point, area Rect) Point {
	return Point{
		X: area.Min.X + n.X*area.Dx(),
		Y: area.Min.Y + n.Y*area.Dy(),
	}
}
