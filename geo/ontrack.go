// File: ontrack.go
// Role: Segment projection (OnTrackClosestPoint) and along-track distance,
// dispatched between a closed-form Planar projection and an iterative
// Geodetic projection that converges on the ellipsoid.
package geo

import "math"

// onTrackTolerance is the convergence threshold (meters) for the geodetic
// iterative projection, ε_on_track in spec terms.
const onTrackTolerance = 0.1

// onTrackMaxIterations bounds the geodetic projection loop.
const onTrackMaxIterations = 50

// onTrackMemory is how many previous along-track-distance estimates are
// remembered for oscillation detection.
const onTrackMemory = 3

// OnTrackClosestPoint returns the point on segment a->b closest to p,
// clamped to the segment endpoints. Returns ErrDegenerate (and a) if a and b
// coincide, since no segment direction exists to project onto.
func OnTrackClosestPoint(a, b, p Point) (Point, error) {
	if a.Equal(b, 0) {
		return a, ErrDegenerate
	}

	if a.Topology == Planar {
		return onTrackClosestPointPlanar(a, b, p), nil
	}

	return onTrackClosestPointGeodetic(a, b, p)
}

// AlongTrackDistance returns the distance from a to OnTrackClosestPoint(a, b, p)
// measured along the segment a->b.
func AlongTrackDistance(a, b, p Point) (float64, error) {
	closest, err := OnTrackClosestPoint(a, b, p)
	if err != nil {
		return 0, err
	}

	return Distance(a, closest), nil
}

// onTrackClosestPointPlanar projects p onto segment a->b using the standard
// dot-product parametrization, clamped to [0, 1].
func onTrackClosestPointPlanar(a, b, p Point) Point {
	abx := b.X - a.X
	aby := b.Y - a.Y
	apx := p.X - a.X
	apy := p.Y - a.Y

	denom := abx*abx + aby*aby
	t := (apx*abx + apy*aby) / denom
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return NewPoint(a.X+t*abx, a.Y+t*aby, Planar)
}

// onTrackClosestPointGeodetic iteratively locates the along-track distance s
// (from a, along bearing a->b) whose destination point C minimizes distance
// to p: the bearing from C to p becomes perpendicular to the segment
// bearing once s has converged. Oscillating estimates (a step that revisits
// a previously seen s, within onTrackMemory entries) are damped by halving
// the correction, matching the source's convergence strategy.
func onTrackClosestPointGeodetic(a, b, p Point) (Point, error) {
	bearingAB, err := InitialBearing(a, b)
	if err != nil {
		return a, err
	}
	total := Distance(a, b)

	if p.Equal(a, 0) {
		return a, nil
	}
	if p.Equal(b, 0) {
		return b, nil
	}

	bearingAP, _ := InitialBearing(a, p)
	distAP := Distance(a, p)
	s := clamp(distAP*math.Cos(degToRad(angleDiff(bearingAP, bearingAB))), 0, total)

	seen := make([]float64, 0, onTrackMemory)
	for i := 0; i < onTrackMaxIterations; i++ {
		candidate, err := Destination(a, bearingAB, s)
		if err != nil {
			return a, err
		}
		if candidate.Equal(p, 0) {
			return candidate, nil
		}

		bearingCP, err := InitialBearing(candidate, p)
		if err != nil {
			// candidate coincides with p; nothing left to correct.
			break
		}
		distCP := Distance(candidate, p)
		correction := distCP * math.Cos(degToRad(angleDiff(bearingCP, bearingAB)))

		damping := 1.0
		for _, prior := range seen {
			if math.Abs(prior-(s+correction)) < onTrackTolerance {
				damping = 0.5
				break
			}
		}

		sNew := clamp(s+correction*damping, 0, total)

		if math.Abs(sNew-s) < onTrackTolerance {
			s = sNew
			break
		}

		seen = append(seen, s)
		if len(seen) > onTrackMemory {
			seen = seen[len(seen)-onTrackMemory:]
		}
		s = sNew
	}

	return Destination(a, bearingAB, s)
}

// angleDiff reduces (a - b) modulo 360, taking the wrap-around at 180 so the
// result lies in (-180, 180].
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}

	return d
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
