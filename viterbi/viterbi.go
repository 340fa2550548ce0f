package viterbi

import (
	"math"
	"sort"

	"github.com/arborix/mapmatch/hmm"
	"github.com/arborix/mapmatch/mapgraph"
)

// FindPath decodes the most likely edge sequence traversed by observations
// across graph, per spec.md §4.G. A nil entry in observations marks a
// dropped fix and is skipped. Returns an empty MatchResult (no error) for
// an empty graph or an all-nil observation sequence, per spec.md §7.
func FindPath(graph *mapgraph.Graph, observations []*hmm.Observation, opts ...Option) (*MatchResult, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if graph == nil || len(graph.Edges()) == 0 {
		return &MatchResult{Reason: ErrEmptyGraph}, nil
	}

	i0 := extractNextObservation(observations, 0)
	if i0 < 0 {
		return &MatchResult{Reason: ErrNoObservations}, nil
	}

	r := &runner{
		graph:        graph,
		observations: observations,
		opts:         cfg,
		trellis:      newTrellis(len(observations)),
		offRoad:      newOffRoadState(),
	}

	r.initialize(i0)
	lastIdx := r.induct(i0)

	return r.terminate(i0, lastIdx), nil
}

// extractNextObservation returns the smallest j >= i with observations[j]
// non-nil, or -1 if none exists.
func extractNextObservation(observations []*hmm.Observation, i int) int {
	for j := i; j < len(observations); j++ {
		if observations[j] != nil {
			return j
		}
	}

	return -1
}

// runner holds the mutable state of one FindPath decoding pass, structured
// like package astar/dijkstra's runner: initialize sets up the trellis,
// induct drives the per-step loop, relax scores one (fromEdge, toEdge)
// transition.
type runner struct {
	graph        *mapgraph.Graph
	observations []*hmm.Observation
	opts         Options
	trellis      *trellis
	offRoad      *offRoadState

	prevCandidates []*mapgraph.Edge
	prevIdx        int
}

// initialize performs the trellis's initialization step at the first
// non-nil observation index i0.
func (r *runner) initialize(i0 int) {
	o := *r.observations[i0]
	candidates := r.candidatesFor(i0, o)

	r.opts.Emission.UpdateEmissionProbability(o, candidates)
	for _, e := range candidates {
		score := r.opts.Initial.InitialLogProbability(o, e, candidates) +
			r.opts.Emission.EmissionProbability(o, e, nil)
		r.trellis.setScore(e, i0, score)
		r.trellis.initBackpointer(e, i0)
	}

	r.prevCandidates = candidates
	r.prevIdx = i0
}

// induct runs the induction step for every subsequent non-nil observation
// and returns the last observation index processed.
func (r *runner) induct(i0 int) int {
	lastIdx := i0
	i := extractNextObservation(r.observations, i0+1)
	for i >= 0 {
		lastIdx = i
		curr := *r.observations[i]
		prev := *r.observations[r.prevIdx]
		candidates := r.candidatesFor(i, curr)

		r.opts.Emission.UpdateEmissionProbability(curr, candidates)

		for _, toEdge := range candidates {
			bestScore := math.Inf(1)
			var bestFrom *mapgraph.Edge

			for _, fromEdge := range r.prevCandidates {
				s := r.relax(fromEdge, toEdge, prev, curr)
				if s < bestScore {
					bestScore = s
					bestFrom = fromEdge
				}
			}

			if bestFrom == nil || math.IsInf(bestScore, 1) {
				continue
			}

			total := bestScore + r.opts.Emission.EmissionProbability(curr, toEdge, &prev)
			r.trellis.setScore(toEdge, i, total)
			r.trellis.stageBackpointer(bestFrom, toEdge, i)
		}

		r.trellis.commitPending()
		r.prevCandidates = candidates
		r.prevIdx = i
		i = extractNextObservation(r.observations, i+1)
	}

	return lastIdx
}

// relax scores one (fromEdge, toEdge) transition: the previous step's score
// at fromEdge plus the transition cost between fromEdge and toEdge.
func (r *runner) relax(fromEdge, toEdge *mapgraph.Edge, prev, curr hmm.Observation) float64 {
	prevScore, ok := r.trellis.score(fromEdge, r.prevIdx)
	if !ok || math.IsInf(prevScore, 1) {
		return math.Inf(1)
	}

	transitionCost := r.transitionScore(fromEdge, toEdge, prev, curr)
	if math.IsInf(transitionCost, 1) {
		return math.Inf(1)
	}

	return prevScore + transitionCost
}

// terminate builds the final MatchResult: for every edge ever scored at
// lastIdx, a (score, path) pair, sorted ascending by score.
func (r *runner) terminate(i0, lastIdx int) *MatchResult {
	type terminal struct {
		edge  *mapgraph.Edge
		score float64
	}

	var terminals []terminal
	for e, row := range r.trellis.s {
		if s, ok := row[lastIdx]; ok {
			terminals = append(terminals, terminal{edge: e, score: s})
		}
	}

	sort.Slice(terminals, func(i, j int) bool {
		if terminals[i].score != terminals[j].score {
			return terminals[i].score < terminals[j].score
		}

		return terminals[i].edge.ID < terminals[j].edge.ID
	})

	result := &MatchResult{}
	for _, t := range terminals {
		result.Paths = append(result.Paths, ScoredPath{
			Score: t.score,
			Path:  r.trellis.path(t.edge, i0, lastIdx),
		})
	}

	return result
}
