// File: cut.go
// Role: Splits a Polyline at a point's projection, either snapped to the
// nearest existing vertex (Soft) or at the exact projected coordinate
// (Hard), returning an ordered (before, after) pair that shares a single
// point at the cut.
package polyline

import "github.com/arborix/mapmatch/geo"

// CutMode selects how Cut locates the split point.
type CutMode int

const (
	// Soft snaps the cut to the nearest existing vertex.
	Soft CutMode = iota

	// Hard inserts a new vertex at the exact projected coordinate.
	Hard
)

// Cut splits pl at p's projection according to mode, returning (before,
// after). Both halves are non-empty; a projection landing on an endpoint
// yields one side equal to a single-point Polyline holding that endpoint.
//
// Invariant: before.End() == after.Start() (within the default tolerance).
func (pl Polyline) Cut(p geo.Point, mode CutMode) (before, after Polyline) {
	if pl.IsEmpty() {
		return Polyline{}, Polyline{}
	}
	if pl.Len() == 1 {
		return pl, pl
	}

	if mode == Soft {
		idx := pl.OnTrackClosestNodeIndex(p)

		return New(pl.points[:idx+1], defaultEpsilon), New(pl.points[idx:], defaultEpsilon)
	}

	closest, segIdx, _ := pl.closestSegment(p)

	beforePts := make([]geo.Point, 0, segIdx+2)
	beforePts = append(beforePts, pl.points[:segIdx+1]...)
	beforePts = append(beforePts, closest)

	afterPts := make([]geo.Point, 0, len(pl.points)-segIdx)
	afterPts = append(afterPts, closest)
	afterPts = append(afterPts, pl.points[segIdx+1:]...)

	return New(beforePts, defaultEpsilon), New(afterPts, defaultEpsilon)
}
