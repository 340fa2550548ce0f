// File: dispatch.go
// Role: Public distance/bearing/destination surface, dispatching to the
// Vincenty (Geodetic) or Euclidean (Planar) implementation by p.Topology.
package geo

import "math"

// Distance returns the distance between p and q in meters (Geodetic,
// Vincenty inverse) or in coordinate units (Planar, 2-norm).
//
// Both points must share a Topology; mismatched topologies are treated as
// Planar (callers should never mix them).
func Distance(p, q Point) float64 {
	if p.Topology == Geodetic && q.Topology == Geodetic {
		d, _, err := vincentyInverse(p.Y, p.X, q.Y, q.X)
		if err != nil {
			return math.NaN()
		}

		return d
	}

	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// InitialBearing returns the initial bearing from p to q in degrees,
// [0, 360). Returns ErrDegenerate if p and q are coincident, since no
// direction is defined.
func InitialBearing(p, q Point) (float64, error) {
	if p.Equal(q, 0) {
		return 0, ErrDegenerate
	}

	if p.Topology == Geodetic && q.Topology == Geodetic {
		_, bearing, err := vincentyInverse(p.Y, p.X, q.Y, q.X)
		if err != nil {
			return 0, err
		}

		return bearing, nil
	}

	return normalizeBearing(radToDeg(math.Atan2(q.X-p.X, q.Y-p.Y))), nil
}

// Destination returns the point reached by travelling distanceM meters from
// p along bearingDeg degrees.
func Destination(p Point, bearingDeg, distanceM float64) (Point, error) {
	if p.Topology == Geodetic {
		lat2, lon2, err := vincentyDirect(p.Y, p.X, bearingDeg, distanceM)
		if err != nil {
			return Point{}, err
		}

		return NewPoint(lon2, lat2, Geodetic), nil
	}

	rad := degToRad(bearingDeg)
	x := p.X + distanceM*math.Sin(rad)
	y := p.Y + distanceM*math.Cos(rad)

	return NewPoint(x, y, Planar), nil
}
