// Package polyline implements immutable ordered point sequences over the
// geo package's coordinate model: bounding box, segment projection,
// along-track distance, reversal, concatenation, and cutting.
//
// A Polyline never mutates after construction; every transformation
// (Reverse, Append, Cut, ...) returns a new value. Consecutive duplicate
// points are collapsed at construction time so a Polyline's internal
// invariant ("no two consecutive points are equal") always holds.
package polyline

import (
	"math"

	"github.com/arborix/mapmatch/geo"
	"github.com/arborix/mapmatch/region"
)

// defaultEpsilon is the point-equality tolerance used when collapsing
// consecutive duplicates and comparing projected endpoints, matching
// geo's default Point.Equal tolerance (0.1m / 0.1 units).
const defaultEpsilon = 0.1

// Polyline is an immutable ordered sequence of points. It is empty iff it
// has zero points; a non-empty Polyline has points[0] as its start and
// points[n-1] as its end.
type Polyline struct {
	points []geo.Point
}

// New builds a Polyline from points, collapsing consecutive duplicates
// (within eps; pass 0 for the default tolerance). An empty or nil input
// yields an empty Polyline.
func New(points []geo.Point, eps float64) Polyline {
	if eps <= 0 {
		eps = defaultEpsilon
	}
	if len(points) == 0 {
		return Polyline{}
	}

	collapsed := make([]geo.Point, 0, len(points))
	collapsed = append(collapsed, points[0])
	for _, p := range points[1:] {
		if p.Equal(collapsed[len(collapsed)-1], eps) {
			continue
		}
		collapsed = append(collapsed, p)
	}

	return Polyline{points: collapsed}
}

// IsEmpty reports whether pl has zero points.
func (pl Polyline) IsEmpty() bool { return len(pl.points) == 0 }

// Len returns the number of points in pl.
func (pl Polyline) Len() int { return len(pl.points) }

// Points returns a copy of pl's points, safe for the caller to retain.
func (pl Polyline) Points() []geo.Point {
	out := make([]geo.Point, len(pl.points))
	copy(out, pl.points)

	return out
}

// Point returns the point at index i. Panics if i is out of range, mirroring
// slice indexing semantics (callers are expected to check Len first).
func (pl Polyline) Point(i int) geo.Point { return pl.points[i] }

// Start returns the first point. Panics on an empty Polyline.
func (pl Polyline) Start() geo.Point { return pl.points[0] }

// End returns the last point. Panics on an empty Polyline.
func (pl Polyline) End() geo.Point { return pl.points[len(pl.points)-1] }

// IsClosed reports whether Start and End coincide (within the default
// tolerance). An empty Polyline is not closed.
func (pl Polyline) IsClosed() bool {
	if pl.IsEmpty() {
		return false
	}

	return pl.Start().Equal(pl.End(), defaultEpsilon)
}

// BoundingBox returns the axis-aligned envelope of all points, in O(n).
// Returns region.Empty() for an empty Polyline.
func (pl Polyline) BoundingBox() region.Region {
	r := region.Empty()
	for _, p := range pl.points {
		r = r.ExpandToIncludePoint(p.X, p.Y)
	}

	return r
}

// Length returns the total geometric length of pl (sum of segment
// distances), 0 for a Polyline of fewer than two points.
func (pl Polyline) Length() float64 {
	if len(pl.points) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(pl.points); i++ {
		total += geo.Distance(pl.points[i-1], pl.points[i])
	}

	return total
}

// Reverse returns a new Polyline with the point order reversed.
func (pl Polyline) Reverse() Polyline {
	n := len(pl.points)
	out := make([]geo.Point, n)
	for i, p := range pl.points {
		out[n-1-i] = p
	}

	return Polyline{points: out}
}

// nanPoint is used internally to report "no closest point" for an empty
// Polyline without panicking.
func nanPoint(topology geo.Topology) geo.Point {
	return geo.NewPoint(math.NaN(), math.NaN(), topology)
}
