package hmm

import (
	"math"

	"github.com/arborix/mapmatch/astar"
	"github.com/arborix/mapmatch/geo"
	"github.com/arborix/mapmatch/mapgraph"
)

// TransitionProbability scores the log-cost of moving from fromEdge to
// toEdge between two consecutive observations. Implementations invoke A*
// (package astar) over graph to obtain the connecting path from
// fromEdge.To to toEdge.From; this is the dominant cost of a decoding step.
type TransitionProbability interface {
	TransitionLogProbability(fromEdge, toEdge *mapgraph.Edge, prevObs, currObs Observation, graph *mapgraph.Graph) float64
}

// edgeLengthWeight is the shared A* edge-weight function used by every
// transition calculator: an edge's geometric length, regardless of topology
// (polyline.Length dispatches per-point).
func edgeLengthWeight(e *mapgraph.Edge) float64 { return e.Path.Length() }

// zeroHeuristic degrades A* to Dijkstra; admissible for any non-negative
// edge weight, used here because transition calculators need the true
// shortest connecting path, not an approximate one.
func zeroHeuristic(_, _ *mapgraph.Node) float64 { return 0 }

// connectingPath runs A* from fromEdge.To to toEdge.From and returns the
// resulting summary. A nil graph or a == b both route through astar's own
// argument validation / trivial-path handling.
func connectingPath(fromEdge, toEdge *mapgraph.Edge, graph *mapgraph.Graph) (*astar.PathSummary, error) {
	return astar.FindPath(fromEdge.To, toEdge.From, graph, edgeLengthWeight, zeroHeuristic)
}

// TopologicalTransition scores fromEdge==toEdge as "stayed on the same
// road", any other connected pair as "took the connecting path", and an
// unreachable pair as impossible.
type TopologicalTransition struct{}

// TransitionLogProbability implements TransitionProbability.
func (TopologicalTransition) TransitionLogProbability(fromEdge, toEdge *mapgraph.Edge, _, _ Observation, graph *mapgraph.Graph) float64 {
	a := topologicalA(fromEdge, toEdge, graph)

	return logPr(a)
}

// topologicalA computes the raw (non-log) transition weight shared by
// TopologicalTransition and TopologicalNoUTurnTransition.
func topologicalA(fromEdge, toEdge *mapgraph.Edge, graph *mapgraph.Graph) float64 {
	if fromEdge == toEdge {
		return math.Exp(-0.5)
	}

	summary, err := connectingPath(fromEdge, toEdge, graph)

	return topologicalAFromSummary(summary, err)
}

// topologicalAFromSummary computes the raw (non-log) transition weight for a
// fromEdge != toEdge pair from an already-computed connectingPath result,
// letting a caller that needs the summary for its own purposes (e.g.
// TopologicalNoUTurnTransition's U-turn check) avoid running A* twice.
func topologicalAFromSummary(summary *astar.PathSummary, err error) float64 {
	if err != nil || !summary.Found {
		return 0
	}

	return math.Exp(-1)
}

// TopologicalNoUTurnTransition behaves as TopologicalTransition but forbids
// U-turns (an edge whose (from,to) equals some edge's (to,from) along the
// connecting path) and mixed-direction paths.
type TopologicalNoUTurnTransition struct{}

// TransitionLogProbability implements TransitionProbability.
func (TopologicalNoUTurnTransition) TransitionLogProbability(fromEdge, toEdge *mapgraph.Edge, _, _ Observation, graph *mapgraph.Graph) float64 {
	if fromEdge == toEdge {
		return logPr(topologicalA(fromEdge, toEdge, graph))
	}

	summary, err := connectingPath(fromEdge, toEdge, graph)
	if err != nil || !summary.Found {
		return logPr(0)
	}
	if hasUTurn(fromEdge, summary.Edges, toEdge) || isMixedDirection(summary.Edges) {
		return logPr(0)
	}

	return logPr(topologicalAFromSummary(summary, err))
}

// hasUTurn reports whether the full traversed sequence (fromEdge, path...,
// toEdge) contains an edge whose (From, To) equals some earlier edge's
// (To, From), whether or not the two are linked via Reverse.
func hasUTurn(fromEdge *mapgraph.Edge, path []*mapgraph.Edge, toEdge *mapgraph.Edge) bool {
	seq := make([]*mapgraph.Edge, 0, len(path)+2)
	seq = append(seq, fromEdge)
	seq = append(seq, path...)
	seq = append(seq, toEdge)

	type hop struct{ from, to *mapgraph.Node }
	seen := make(map[hop]bool, len(seq))
	for _, e := range seq {
		if seen[hop{from: e.To, to: e.From}] {
			return true
		}
		seen[hop{from: e.From, to: e.To}] = true
	}

	return false
}

// isMixedDirection reports whether path contains both some edge and that
// edge's Reverse counterpart, the adapted equivalent of the original
// id-suffix-based "forward and -rev count > 0 and < |path|" check: with
// pointer-identified Reverse pairs rather than string-suffixed ids, an edge
// and its reverse both appearing in one connecting path is itself the
// mixed-direction signal.
func isMixedDirection(path []*mapgraph.Edge) bool {
	present := make(map[*mapgraph.Edge]bool, len(path))
	for _, e := range path {
		present[e] = true
	}

	mixed := 0
	for _, e := range path {
		if e.Reverse != nil && present[e.Reverse] {
			mixed++
		}
	}

	return mixed > 0 && mixed < len(path)
}

// ExponentialLengthDifferenceTransition penalizes a connecting path whose
// length diverges from the great-circle (or planar) distance between the
// two observations, with decay rate Beta.
type ExponentialLengthDifferenceTransition struct {
	Beta float64
}

// NewExponentialLengthDifferenceTransition constructs the calculator with
// the spec's default Beta = 3 when beta <= 0 is passed.
func NewExponentialLengthDifferenceTransition(beta float64) *ExponentialLengthDifferenceTransition {
	if beta <= 0 {
		beta = 3
	}

	return &ExponentialLengthDifferenceTransition{Beta: beta}
}

// TransitionLogProbability implements TransitionProbability.
func (t *ExponentialLengthDifferenceTransition) TransitionLogProbability(fromEdge, toEdge *mapgraph.Edge, prevObs, currObs Observation, graph *mapgraph.Graph) float64 {
	summary, err := connectingPath(fromEdge, toEdge, graph)
	if err != nil || !summary.Found {
		return logPr(0)
	}

	pathDistance := summary.Cost
	greatCircle := geo.Distance(prevObs.Point, currObs.Point)
	diff := math.Abs(greatCircle - pathDistance)

	a := t.Beta * math.Exp(-t.Beta*diff)

	return logPr(a)
}
