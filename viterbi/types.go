// Package viterbi implements the trellis-based hidden Markov model decoder
// that turns a sequence of GPS observations into the most likely sequence
// of edges traversed on a mapgraph.Graph, using the pluggable probability
// calculators from package hmm.
//
// FindPath is a pure function over its inputs: it performs no I/O and does
// not mutate graph, matching the concurrency model that lets independent
// calls on independent graphs run in parallel (spec.md §5).
package viterbi

import (
	"errors"

	"github.com/arborix/mapmatch/hmm"
	"github.com/arborix/mapmatch/mapgraph"
)

// Sentinel errors. Both are returned as a successful empty MatchResult
// rather than surfaced to the caller as failures, per spec.md §7's
// MatchError::EmptyGraph / MatchError::NoObservations contract; they are
// exported so callers that want to distinguish "nothing to match" from
// "no path found" may do so via errors.Is against the reason recorded in
// MatchResult.Reason.
var (
	// ErrEmptyGraph indicates graph has no edges.
	ErrEmptyGraph = errors.New("viterbi: graph has no edges")

	// ErrNoObservations indicates every observation was nil or the
	// sequence was empty.
	ErrNoObservations = errors.New("viterbi: no non-nil observations")
)

// Options configures a FindPath call.
type Options struct {
	// EdgesNearObservationThreshold bounds the candidate set to edges
	// within this many meters (Geodetic) or coordinate units (Planar) of
	// each observation, when the graph supports proximity queries. Zero
	// (the default) disables the bound: every call falls back to the
	// graph's full edge set.
	EdgesNearObservationThreshold float64

	// OffRoadEnabled augments each step's candidate set with synthetic
	// off-road edges (spec.md §4.H) when true.
	OffRoadEnabled bool

	Initial    hmm.InitialProbability
	Emission   hmm.EmissionProbability
	Transition hmm.TransitionProbability
}

// Option configures Options at a FindPath call.
type Option func(*Options)

// WithThreshold sets EdgesNearObservationThreshold.
func WithThreshold(meters float64) Option {
	return func(o *Options) { o.EdgesNearObservationThreshold = meters }
}

// WithOffRoad enables off-road augmentation.
func WithOffRoad() Option {
	return func(o *Options) { o.OffRoadEnabled = true }
}

// WithInitial sets the initial-probability calculator.
func WithInitial(i hmm.InitialProbability) Option {
	return func(o *Options) { o.Initial = i }
}

// WithEmission sets the emission-probability calculator.
func WithEmission(e hmm.EmissionProbability) Option {
	return func(o *Options) { o.Emission = e }
}

// WithTransition sets the transition-probability calculator.
func WithTransition(tr hmm.TransitionProbability) Option {
	return func(o *Options) { o.Transition = tr }
}

// DefaultOptions returns Options with Gaussian emission/initial (sigma 4.07,
// the spec's worked Scenario E value) and topological transition; the
// candidate-set threshold is unset (0, meaning "use every edge") and
// off-road augmentation is disabled. Callers needing different calculators
// pass WithInitial/WithEmission/WithTransition to override.
func DefaultOptions() Options {
	gaussian, _ := hmm.NewGaussianEmission(4.07)
	gaussianInitial, _ := hmm.NewGaussianInitial(4.07)

	return Options{
		Initial:    gaussianInitial,
		Emission:   gaussian,
		Transition: hmm.TopologicalTransition{},
	}
}

// ScoredPath pairs a decoded edge sequence with its total trellis score
// (lower is better, per hmm's negative-log convention).
type ScoredPath struct {
	Score float64
	Path  []*mapgraph.Edge
}

// MatchResult is the outcome of a FindPath call: zero or more candidate
// paths in ascending score order (best first). Empty for an empty graph or
// an all-nil observation sequence, with Reason set to ErrEmptyGraph or
// ErrNoObservations respectively so callers can distinguish "nothing to
// match" from "decoding ran but found no path" (both leave Paths empty).
type MatchResult struct {
	Paths  []ScoredPath
	Reason error
}
