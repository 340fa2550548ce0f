package hmm

import (
	"math"

	"github.com/arborix/mapmatch/geo"
	"github.com/arborix/mapmatch/mapgraph"
)

// InitialProbability scores a candidate edge as the first state in the
// trellis, given the observation that seeded it and the full candidate set
// (needed by the Uniform variant to normalize).
type InitialProbability interface {
	InitialLogProbability(o Observation, e *mapgraph.Edge, candidates []*mapgraph.Edge) float64
}

// UniformInitial assigns every candidate the same initial probability,
// 1/|candidates|, expressing no prior preference among them.
type UniformInitial struct{}

// InitialLogProbability implements InitialProbability.
func (UniformInitial) InitialLogProbability(_ Observation, _ *mapgraph.Edge, candidates []*mapgraph.Edge) float64 {
	if len(candidates) == 0 {
		return math.Inf(1)
	}

	return logPr(1 / float64(len(candidates)))
}

// GaussianInitial scores a candidate by the perpendicular distance from the
// observation to the edge's geometry under a zero-mean Gaussian-shaped
// density with standard deviation Sigma.
type GaussianInitial struct {
	Sigma float64
}

// NewGaussianInitial constructs a GaussianInitial, validating Sigma > 0.
func NewGaussianInitial(sigma float64) (*GaussianInitial, error) {
	if sigma <= 0 {
		return nil, ErrNonPositiveSigma
	}

	return &GaussianInitial{Sigma: sigma}, nil
}

// InitialLogProbability implements InitialProbability.
func (g *GaussianInitial) InitialLogProbability(o Observation, e *mapgraph.Edge, _ []*mapgraph.Edge) float64 {
	d := perpendicularDistance(o, e)

	return gaussianLogPr(d, g.Sigma)
}

// RayleighInitial scores a candidate under an open-sky Rayleigh-shaped
// density with scale Sigma, favoring a nonzero most-likely distance rather
// than the Gaussian's mode at zero.
type RayleighInitial struct {
	Sigma float64
}

// NewRayleighInitial constructs a RayleighInitial, validating Sigma > 0.
func NewRayleighInitial(sigma float64) (*RayleighInitial, error) {
	if sigma <= 0 {
		return nil, ErrNonPositiveSigma
	}

	return &RayleighInitial{Sigma: sigma}, nil
}

// InitialLogProbability implements InitialProbability.
func (r *RayleighInitial) InitialLogProbability(o Observation, e *mapgraph.Edge, _ []*mapgraph.Edge) float64 {
	d := perpendicularDistance(o, e)

	return rayleighLogPr(d, r.Sigma)
}

// perpendicularDistance is the distance from o's point to its closest
// on-track point on e's geometry, shared by every probability variant that
// needs "how far is the observation from this candidate edge".
func perpendicularDistance(o Observation, e *mapgraph.Edge) float64 {
	closest := e.Path.OnTrackClosestPoint(o.Point)

	return geo.Distance(o.Point, closest)
}
