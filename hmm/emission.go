package hmm

import (
	"math"

	"github.com/arborix/mapmatch/geo"
	"github.com/arborix/mapmatch/mapgraph"
)

// EmissionProbability scores how well a candidate edge explains an
// observation. UpdateEmissionProbability runs once per observation, before
// any EmissionProbability calls for that observation's candidate set, so a
// calculator may precompute shared state (e.g. the Bayesian variant's
// distance sum).
type EmissionProbability interface {
	UpdateEmissionProbability(o Observation, candidates []*mapgraph.Edge)
	EmissionProbability(o Observation, e *mapgraph.Edge, previous *Observation) float64
}

// GaussianEmission scores each candidate independently by its perpendicular
// distance to the observation, identical in shape to GaussianInitial.
type GaussianEmission struct {
	Sigma float64
}

// NewGaussianEmission constructs a GaussianEmission, validating Sigma > 0.
func NewGaussianEmission(sigma float64) (*GaussianEmission, error) {
	if sigma <= 0 {
		return nil, ErrNonPositiveSigma
	}

	return &GaussianEmission{Sigma: sigma}, nil
}

// UpdateEmissionProbability is a no-op: GaussianEmission is stateless.
func (g *GaussianEmission) UpdateEmissionProbability(_ Observation, _ []*mapgraph.Edge) {}

// EmissionProbability implements EmissionProbability.
func (g *GaussianEmission) EmissionProbability(o Observation, e *mapgraph.Edge, _ *Observation) float64 {
	return gaussianLogPr(perpendicularDistance(o, e), g.Sigma)
}

// paretoTau0 is the baseline heading-agreement weight used when a prior
// observation's projection disagrees with the current one, per spec.md §4.F.
const paretoTau0 = 0.6

// ParetoEmission models urban, heavy-tailed emission noise. Shape controls
// the tail thickness; Sigma is the characteristic scale. The heading
// agreement weight tau sharpens the score when the observation's direction
// of travel disagrees with the edge's direction between consecutive fixes.
type ParetoEmission struct {
	Sigma float64
	Shape float64
}

// NewParetoEmission constructs a ParetoEmission, validating Sigma > 0 and
// Shape > 0.
func NewParetoEmission(sigma, shape float64) (*ParetoEmission, error) {
	if sigma <= 0 {
		return nil, ErrNonPositiveSigma
	}
	if shape <= 0 {
		return nil, ErrNonPositiveShape
	}

	return &ParetoEmission{Sigma: sigma, Shape: shape}, nil
}

// UpdateEmissionProbability is a no-op: ParetoEmission derives tau per call
// from the previous observation passed into EmissionProbability.
func (p *ParetoEmission) UpdateEmissionProbability(_ Observation, _ []*mapgraph.Edge) {}

// EmissionProbability implements EmissionProbability: -ln(P(d)) =
// (1/k + 1)*ln(1 + k*tau*d/sigma) + ln(sigma).
func (p *ParetoEmission) EmissionProbability(o Observation, e *mapgraph.Edge, previous *Observation) float64 {
	d := perpendicularDistance(o, e)
	tau := headingAgreementTau(o, previous, e)

	k := p.Shape
	return (1/k+1)*math.Log(1+k*tau*d/p.Sigma) + math.Log(p.Sigma)
}

// headingAgreementTau computes tau = tau0 + exp(|deltaAngle| - 2/pi) from the
// bearing between the observation's projection onto e at t-1 and at t,
// versus the inter-observation bearing; falls back to tau = 1 when there is
// no prior observation or the two projections coincide.
func headingAgreementTau(o Observation, previous *Observation, e *mapgraph.Edge) float64 {
	if previous == nil {
		return 1
	}

	prevProj := e.Path.OnTrackClosestPoint(previous.Point)
	currProj := e.Path.OnTrackClosestPoint(o.Point)
	if prevProj.Equal(currProj, 1e-9) {
		return 1
	}

	edgeBearing, err := geo.InitialBearing(prevProj, currProj)
	if err != nil {
		return 1
	}
	obsBearing, err := geo.InitialBearing(previous.Point, o.Point)
	if err != nil {
		return 1
	}

	delta := wrappedAngleDeltaDeg(edgeBearing, obsBearing)

	return paretoTau0 + math.Exp(math.Abs(delta*math.Pi/180)-2/math.Pi)
}

// wrappedAngleDeltaDeg reduces a-b modulo 360 degrees, wrapping at ±180.
func wrappedAngleDeltaDeg(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}

	return d
}

// BayesianEmission is retained for legacy callers; it normalizes inverse
// distances across the candidate set rather than scoring each edge against
// an absolute noise model. Deprecated: prefer GaussianEmission or
// ParetoEmission for new matchers.
type BayesianEmission struct {
	inverseSum float64
	distances  map[*mapgraph.Edge]float64
}

// NewBayesianEmission constructs a BayesianEmission.
func NewBayesianEmission() *BayesianEmission {
	return &BayesianEmission{}
}

// UpdateEmissionProbability precomputes every candidate's distance and their
// inverse-distance sum, substituting zero distances with the polyline's
// closest-vertex distance to avoid division by zero.
func (b *BayesianEmission) UpdateEmissionProbability(o Observation, candidates []*mapgraph.Edge) {
	b.distances = make(map[*mapgraph.Edge]float64, len(candidates))
	b.inverseSum = 0

	for _, e := range candidates {
		d := perpendicularDistance(o, e)
		if d == 0 {
			vertex := e.Path.OnTrackClosestNode(o.Point)
			d = geo.Distance(o.Point, vertex)
		}
		b.distances[e] = d
		if d > 0 {
			b.inverseSum += 1 / d
		}
	}
}

// EmissionProbability implements EmissionProbability: -ln(p_j / sum(p)),
// p_j = (1/d_j) / sum(1/d_k).
func (b *BayesianEmission) EmissionProbability(_ Observation, e *mapgraph.Edge, _ *Observation) float64 {
	d, ok := b.distances[e]
	if !ok || d <= 0 || b.inverseSum <= 0 {
		return math.Inf(1)
	}

	return logPr((1 / d) / b.inverseSum)
}
