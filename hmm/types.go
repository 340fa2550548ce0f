// Package hmm provides the pluggable hidden Markov model probability
// calculators consumed by package viterbi: initial-state, emission, and
// transition scorers, all carried in negative-natural-log space so that
// summation replaces multiplication and a lower score is always better.
//
// Design goals mirror the teacher's dtw package: a handful of
// interchangeable scoring strategies behind small, focused interfaces,
// each independently constructible with its own tuning parameters, plus
// tsp's convention of one sentinel error per precondition.
package hmm

import (
	"errors"
	"math"
	"time"

	"github.com/arborix/mapmatch/geo"
)

// Sentinel errors for hmm probability calculators.
var (
	// ErrNoCandidates indicates a probability calculator was asked to score
	// against an empty candidate set.
	ErrNoCandidates = errors.New("hmm: no candidate edges")

	// ErrNonPositiveSigma indicates a Gaussian/Rayleigh/Pareto calculator was
	// constructed with Sigma <= 0.
	ErrNonPositiveSigma = errors.New("hmm: sigma must be positive")

	// ErrNonPositiveShape indicates a Pareto calculator was constructed with
	// a non-positive shape parameter.
	ErrNonPositiveShape = errors.New("hmm: pareto shape must be positive")
)

// Observation is a single GPS fix: a point and the time it was recorded.
// A nil *Observation (as opposed to a zero value) represents a dropped
// fix in an observation sequence; extractNextObservation (package viterbi)
// skips over these.
type Observation struct {
	Point     geo.Point
	Timestamp time.Time
}

// logPr converts a raw probability in (0, 1] to its negative-natural-log
// score: 0 maps to +Inf, 1 maps to 0. Every calculator in this package
// ultimately reduces to a call to logPr or an equivalent closed form.
func logPr(p float64) float64 {
	if p <= 0 {
		return math.Inf(1)
	}

	return -math.Log(p)
}

// gaussianLogPr is the negative-log Gaussian-shaped density at distance d
// with standard deviation sigma, shared by the Initial and Emission
// Gaussian variants: -ln( exp(-0.5*d/sigma) / (sigma*sqrt(2*pi)) )
//   = 0.5*(d/sigma) - ln(sigma*sqrt(2*pi)).
func gaussianLogPr(d, sigma float64) float64 {
	return 0.5*(d/sigma) - math.Log(sigma*math.Sqrt(2*math.Pi))
}

// rayleighLogPr is the negative-log Rayleigh-shaped density at distance d
// with scale sigma: -ln( (d/sigma^2) * exp(-d^2/(2*sigma^2)) )
//   = ln(sigma) - ln(d/sigma) + 0.5*(d/sigma)^2.
func rayleighLogPr(d, sigma float64) float64 {
	if d <= 0 {
		return math.Inf(1)
	}

	return math.Log(sigma) - math.Log(d/sigma) + 0.5*math.Pow(d/sigma, 2)
}
