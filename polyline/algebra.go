// File: algebra.go
// Role: Concatenation (Append/Prepend) and segment projection
// (OnTrackClosestPoint, OnTrackClosestNode, AlongTrackDistance).
package polyline

import (
	"math"

	"github.com/arborix/mapmatch/geo"
)

// Append concatenates pl and other, dropping the shared endpoint when
// pl.End() == other.Start() (within the default tolerance). An empty pl or
// other is handled by returning the non-empty side unchanged.
func (pl Polyline) Append(other Polyline) Polyline {
	if pl.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return pl
	}

	out := make([]geo.Point, 0, pl.Len()+other.Len())
	out = append(out, pl.points...)
	rest := other.points
	if pl.End().Equal(other.Start(), defaultEpsilon) {
		rest = rest[1:]
	}
	out = append(out, rest...)

	return New(out, defaultEpsilon)
}

// Prepend concatenates other ahead of pl, dropping the shared endpoint when
// other.End() == pl.Start() (within the default tolerance).
func (pl Polyline) Prepend(other Polyline) Polyline {
	return other.Append(pl)
}

// OnTrackClosestPoint returns the point on pl closest to p: the minimum over
// every segment of geo.OnTrackClosestPoint. Returns nanPoint for an empty
// Polyline, and that single point for a single-point Polyline.
func (pl Polyline) OnTrackClosestPoint(p geo.Point) geo.Point {
	best, _, _ := pl.closestSegment(p)

	return best
}

// OnTrackClosestNodeIndex returns the index of the existing vertex nearest to
// p, breaking ties by the smaller index, then refined by comparing p's
// distance to the two end vertices of the globally closest segment
// (segment-closest need not equal vertex-closest).
// Returns -1 for an empty Polyline.
func (pl Polyline) OnTrackClosestNodeIndex(p geo.Point) int {
	if pl.IsEmpty() {
		return -1
	}

	bestIdx := 0
	bestDist := geo.Distance(pl.points[0], p)
	for i := 1; i < len(pl.points); i++ {
		d := geo.Distance(pl.points[i], p)
		if d < bestDist {
			bestDist = d
			bestIdx = i
		}
	}

	// Refine: check the two end vertices of the globally closest segment
	// against the nearest vertex found so far.
	_, segIdx, _ := pl.closestSegment(p)
	for _, candidate := range []int{segIdx, segIdx + 1} {
		if candidate < 0 || candidate >= len(pl.points) {
			continue
		}
		d := geo.Distance(pl.points[candidate], p)
		if d < bestDist {
			bestDist = d
			bestIdx = candidate
		}
	}

	return bestIdx
}

// OnTrackClosestNode returns the existing vertex nearest to p.
func (pl Polyline) OnTrackClosestNode(p geo.Point) geo.Point {
	idx := pl.OnTrackClosestNodeIndex(p)
	if idx < 0 {
		return nanPoint(p.Topology)
	}

	return pl.points[idx]
}

// AlongTrackDistance locates the segment whose closest point to p is
// globally closest, sums segment lengths up to that segment, and adds the
// along-segment offset. Returns NaN for an empty Polyline.
func (pl Polyline) AlongTrackDistance(p geo.Point) float64 {
	if pl.IsEmpty() {
		return math.NaN()
	}
	if pl.Len() == 1 {
		return 0
	}

	closest, segIdx, _ := pl.closestSegment(p)

	prefix := 0.0
	for i := 1; i <= segIdx; i++ {
		prefix += geo.Distance(pl.points[i-1], pl.points[i])
	}

	return prefix + geo.Distance(pl.points[segIdx], closest)
}

// closestSegment scans every segment of pl and returns the globally closest
// projection, the index of that segment's start vertex, and the distance to
// p. For a single-point Polyline it returns that point with distance 0.
func (pl Polyline) closestSegment(p geo.Point) (closest geo.Point, segIdx int, dist float64) {
	if pl.IsEmpty() {
		return nanPoint(p.Topology), -1, math.NaN()
	}
	if pl.Len() == 1 {
		return pl.points[0], 0, geo.Distance(pl.points[0], p)
	}

	bestDist := math.Inf(1)
	var bestPoint geo.Point
	bestIdx := 0

	for i := 1; i < len(pl.points); i++ {
		proj, err := geo.OnTrackClosestPoint(pl.points[i-1], pl.points[i], p)
		if err != nil {
			continue // degenerate (duplicate) segment; never produced by New, defensive only
		}
		d := geo.Distance(proj, p)
		if d < bestDist {
			bestDist = d
			bestPoint = proj
			bestIdx = i - 1
		}
	}

	return bestPoint, bestIdx, bestDist
}
