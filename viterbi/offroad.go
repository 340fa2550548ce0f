package viterbi

import (
	"fmt"
	"math"

	"github.com/arborix/mapmatch/geo"
	"github.com/arborix/mapmatch/hmm"
	"github.com/arborix/mapmatch/mapgraph"
	"github.com/arborix/mapmatch/polyline"
)

// twoPointEpsilon is the collapsing tolerance used when building the
// two-point polylines backing synthetic off-road edges; coincident
// endpoints (an observation sitting exactly on an edge) collapse to a
// single-point path rather than erroring.
const twoPointEpsilon = 0.01

// offRoadState tracks the synthetic nodes and edges created for one
// FindPath call's off-road augmentation (spec.md §4.H). Synthetic elements
// are owned by this call frame (mapgraph.NewSyntheticNode/NewSyntheticEdge
// never register them in the graph) and are discarded when FindPath
// returns.
type offRoadState struct {
	counter     int
	obsNodes    map[int]*mapgraph.Node
	toProjected map[*mapgraph.Edge]*mapgraph.Edge // synthetic obs->p, keyed by its real edge e
	fromProject map[*mapgraph.Edge]*mapgraph.Edge // synthetic p->obs, keyed by its real edge e
}

func newOffRoadState() *offRoadState {
	return &offRoadState{
		obsNodes:    make(map[int]*mapgraph.Node),
		toProjected: make(map[*mapgraph.Edge]*mapgraph.Edge),
		fromProject: make(map[*mapgraph.Edge]*mapgraph.Edge),
	}
}

func (s *offRoadState) nextID(prefix string) string {
	s.counter++

	return fmt.Sprintf("%s%d", prefix, s.counter)
}

// candidatesFor returns the candidate edge set for observation index i: a
// proximity-bounded or full scan of real edges, optionally augmented with
// synthetic off-road edges.
func (r *runner) candidatesFor(i int, o hmm.Observation) []*mapgraph.Edge {
	var real []*mapgraph.Edge
	if r.opts.EdgesNearObservationThreshold > 0 {
		real = r.graph.GetEdgesNear(o.Point, r.opts.EdgesNearObservationThreshold)
	} else {
		real = r.graph.Edges()
	}

	if !r.opts.OffRoadEnabled {
		return real
	}

	return r.offRoad.augment(i, o, real)
}

// augment builds the synthetic node/edge set for observation index i per
// spec.md §4.H and appends it to real.
func (s *offRoadState) augment(i int, o hmm.Observation, real []*mapgraph.Edge) []*mapgraph.Edge {
	obsNode := mapgraph.NewSyntheticNode(s.nextID("obs"), o.Point)
	s.obsNodes[i] = obsNode

	out := make([]*mapgraph.Edge, 0, len(real)*3+1)
	out = append(out, real...)

	for _, e := range real {
		p := e.Path.OnTrackClosestPoint(o.Point)
		projNode := mapgraph.NewSyntheticNode(s.nextID("proj"), p)

		toProj := mapgraph.NewSyntheticEdge(s.nextID("sx"), obsNode, projNode,
			pointPath(o.Point, p), nil, e)
		fromProj := mapgraph.NewSyntheticEdge(s.nextID("sx"), projNode, obsNode,
			pointPath(p, o.Point), e, nil)

		s.toProjected[e] = toProj
		s.fromProject[e] = fromProj
		out = append(out, toProj, fromProj)
	}

	if prevNode, ok := s.obsNodes[i-1]; ok {
		direct := mapgraph.NewSyntheticEdge(s.nextID("sx"), prevNode, obsNode,
			pointPath(prevNode.Point, o.Point), nil, nil)
		out = append(out, direct)
	}

	return out
}

// pointPath builds a two-point polyline between a and b, the geometry unit
// used by every synthetic off-road edge.
func pointPath(a, b geo.Point) polyline.Polyline {
	return polyline.New([]geo.Point{a, b}, twoPointEpsilon)
}

// transitionScore dispatches to the real-graph transition calculator when
// both edges are on the real graph, or to the off-road connectivity rule
// (spec.md §4.H: off-road edges never participate in A* on the real graph)
// when either edge is synthetic.
func (r *runner) transitionScore(fromEdge, toEdge *mapgraph.Edge, prev, curr hmm.Observation) float64 {
	if !fromEdge.IsOffRoad() && !toEdge.IsOffRoad() {
		return r.opts.Transition.TransitionLogProbability(fromEdge, toEdge, prev, curr, r.graph)
	}

	return offRoadTransitionLogProbability(fromEdge, toEdge)
}

// offRoadTransitionLogProbability scores a transition touching at least one
// synthetic edge by direct connectivity of the synthesized path, using the
// same closed-form weights as hmm.TopologicalTransition (e^-0.5 for staying
// on the same edge, e^-1 for a directly connected pair, 0 otherwise) since
// off-road transitions bypass A* entirely and their "path" is the synthesis
// described in spec.md §4.H rather than a graph search result.
func offRoadTransitionLogProbability(fromEdge, toEdge *mapgraph.Edge) float64 {
	if fromEdge == toEdge {
		return -math.Log(math.Exp(-0.5))
	}
	if synthesizedPathConnects(fromEdge, toEdge) {
		return -math.Log(math.Exp(-1))
	}

	return math.Inf(1)
}

// synthesizedPathConnects implements spec.md §4.H's three connecting cases:
// an off-road edge followed by the real edge it projects onto (or the
// reverse), or two off-road edges sharing a node.
func synthesizedPathConnects(fromEdge, toEdge *mapgraph.Edge) bool {
	switch {
	case fromEdge.IsOffRoad() && !toEdge.IsOffRoad():
		return toEdge == fromEdge.ToProjected
	case !fromEdge.IsOffRoad() && toEdge.IsOffRoad():
		return fromEdge == toEdge.FromProjected
	case fromEdge.IsOffRoad() && toEdge.IsOffRoad():
		return fromEdge.To == toEdge.From
	default:
		return false
	}
}
