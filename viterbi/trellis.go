package viterbi

import "github.com/arborix/mapmatch/mapgraph"

// trellis holds the sparse Viterbi table S[edge, observationIndex] and the
// parallel back-pointer table pi[edge], a slice of length m recording the
// best predecessor edge chosen at each observation index. Entries exist
// only for edges ever seen as candidates, per spec.md §3.
type trellis struct {
	m       int
	s       map[*mapgraph.Edge]map[int]float64
	pi      map[*mapgraph.Edge][]*mapgraph.Edge
	pending map[*mapgraph.Edge][]*mapgraph.Edge
}

// newTrellis allocates an empty trellis sized for m observations.
func newTrellis(m int) *trellis {
	return &trellis{
		m:       m,
		s:       make(map[*mapgraph.Edge]map[int]float64),
		pi:      make(map[*mapgraph.Edge][]*mapgraph.Edge),
		pending: make(map[*mapgraph.Edge][]*mapgraph.Edge),
	}
}

// score returns S[e, i] and whether it was set.
func (t *trellis) score(e *mapgraph.Edge, i int) (float64, bool) {
	row, ok := t.s[e]
	if !ok {
		return 0, false
	}
	v, ok := row[i]

	return v, ok
}

// setScore records S[e, i] = score, allocating e's row on first use.
func (t *trellis) setScore(e *mapgraph.Edge, i int, score float64) {
	row, ok := t.s[e]
	if !ok {
		row = make(map[int]float64)
		t.s[e] = row
	}
	row[i] = score
}

// initBackpointer seeds pi[e] as a length-m slice with e recorded at index i
// (the initialization step: pi[e][i0] = e).
func (t *trellis) initBackpointer(e *mapgraph.Edge, i int) {
	path := make([]*mapgraph.Edge, t.m)
	path[i] = e
	t.pi[e] = path
}

// stageBackpointer computes toEdge's new back-pointer history from from's
// *previous* step's history (t.pi, not yet touched by this step) and holds
// it in a pending buffer rather than writing t.pi directly: the induction
// step's "copy pi[minFrom][..i_k] into pi[toEdge] and set pi[toEdge][i_k] =
// toEdge". Candidate sets across steps overlap, so toEdge may itself be
// used as a from for another candidate later in the same step; reading
// t.pi (not pending) here and writing only to pending keeps that read
// looking at the prior step's committed state, per spec.md §4.G step 2.
func (t *trellis) stageBackpointer(from, toEdge *mapgraph.Edge, i int) {
	path := make([]*mapgraph.Edge, t.m)
	copy(path, t.pi[from])
	path[i] = toEdge
	t.pending[toEdge] = path
}

// commitPending moves every staged back-pointer from this step's pending
// buffer into t.pi and clears the buffer, making them visible as "from"
// history for the next step.
func (t *trellis) commitPending() {
	for e, path := range t.pending {
		t.pi[e] = path
	}
	t.pending = make(map[*mapgraph.Edge][]*mapgraph.Edge)
}

// path returns e's recorded back-pointer history, truncated to [from, to]
// inclusive.
func (t *trellis) path(e *mapgraph.Edge, from, to int) []*mapgraph.Edge {
	full := t.pi[e]
	if full == nil {
		return nil
	}

	out := make([]*mapgraph.Edge, 0, to-from+1)
	for i := from; i <= to; i++ {
		if full[i] != nil {
			out = append(out, full[i])
		}
	}

	return out
}
