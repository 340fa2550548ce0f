// Package region defines the axis-aligned bounding box (AABB) used by the
// polyline and rtree packages to describe the planar or geodetic extent of
// geometry without depending on either package.
package region

import "math"

// Region is an axis-aligned bounding box (minX, minY, maxX, maxY).
//
// An empty Region (no geometry contributed to it yet) is represented by NaN
// corners; Empty reports this condition. A non-empty Region always satisfies
// minX <= maxX and minY <= maxY.
type Region struct {
	MinX, MinY, MaxX, MaxY float64
}

// Empty returns a Region with NaN corners, representing "no extent yet".
// ExpandToInclude on an Empty Region adopts the first point/region given.
func Empty() Region {
	return Region{MinX: math.NaN(), MinY: math.NaN(), MaxX: math.NaN(), MaxY: math.NaN()}
}

// IsEmpty reports whether r carries no extent (NaN corners).
func (r Region) IsEmpty() bool {
	return math.IsNaN(r.MinX) || math.IsNaN(r.MinY) || math.IsNaN(r.MaxX) || math.IsNaN(r.MaxY)
}

// New builds a Region from two opposite corners, normalizing so that
// MinX <= MaxX and MinY <= MaxY regardless of argument order.
func New(x1, y1, x2, y2 float64) Region {
	r := Region{MinX: x1, MinY: y1, MaxX: x2, MaxY: y2}
	if r.MinX > r.MaxX {
		r.MinX, r.MaxX = r.MaxX, r.MinX
	}
	if r.MinY > r.MaxY {
		r.MinY, r.MaxY = r.MaxY, r.MinY
	}

	return r
}

// FromPoint returns the degenerate Region containing only (x, y).
func FromPoint(x, y float64) Region {
	return Region{MinX: x, MinY: y, MaxX: x, MaxY: y}
}

// ExpandToInclude returns the smallest Region covering both r and other.
// If r is empty, other is returned unchanged (and vice versa).
func (r Region) ExpandToInclude(other Region) Region {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}

	return Region{
		MinX: math.Min(r.MinX, other.MinX),
		MinY: math.Min(r.MinY, other.MinY),
		MaxX: math.Max(r.MaxX, other.MaxX),
		MaxY: math.Max(r.MaxY, other.MaxY),
	}
}

// ExpandToIncludePoint returns the smallest Region covering r and (x, y).
func (r Region) ExpandToIncludePoint(x, y float64) Region {
	return r.ExpandToInclude(FromPoint(x, y))
}

// Intersects reports whether r and other share at least one point.
// Two empty regions, or an empty and a non-empty region, never intersect.
func (r Region) Intersects(other Region) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}

	return r.MinX <= other.MaxX && r.MaxX >= other.MinX &&
		r.MinY <= other.MaxY && r.MaxY >= other.MinY
}

// Contains reports whether other lies entirely within r.
func (r Region) Contains(other Region) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}

	return other.MinX >= r.MinX && other.MaxX <= r.MaxX &&
		other.MinY >= r.MinY && other.MaxY <= r.MaxY
}

// ContainsPoint reports whether (x, y) lies within r, inclusive of edges.
func (r Region) ContainsPoint(x, y float64) bool {
	if r.IsEmpty() {
		return false
	}

	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Width returns MaxX - MinX, or 0 for an empty Region.
func (r Region) Width() float64 {
	if r.IsEmpty() {
		return 0
	}

	return r.MaxX - r.MinX
}

// Height returns MaxY - MinY, or 0 for an empty Region.
func (r Region) Height() float64 {
	if r.IsEmpty() {
		return 0
	}

	return r.MaxY - r.MinY
}

// Area returns Width * Height, or 0 for an empty Region.
func (r Region) Area() float64 {
	return r.Width() * r.Height()
}

// CenterX returns the midpoint of MinX and MaxX.
func (r Region) CenterX() float64 {
	return (r.MinX + r.MaxX) / 2
}

// CenterY returns the midpoint of MinY and MaxY.
func (r Region) CenterY() float64 {
	return (r.MinY + r.MaxY) / 2
}

// Buffer grows r by d on every side. Used to turn a point-radius circle query
// into a conservative rectangular query before a precise distance filter.
func (r Region) Buffer(d float64) Region {
	if r.IsEmpty() {
		return r
	}

	return Region{MinX: r.MinX - d, MinY: r.MinY - d, MaxX: r.MaxX + d, MaxY: r.MaxY + d}
}
