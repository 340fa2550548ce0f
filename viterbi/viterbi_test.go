package viterbi_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborix/mapmatch/geo"
	"github.com/arborix/mapmatch/hmm"
	"github.com/arborix/mapmatch/mapgraph"
	"github.com/arborix/mapmatch/polyline"
	"github.com/arborix/mapmatch/viterbi"
)

func vpt(x, y float64) geo.Point { return geo.NewPoint(x, y, geo.Planar) }

func obs(t time.Time, x, y float64) *hmm.Observation {
	return &hmm.Observation{Point: vpt(x, y), Timestamp: t}
}

// buildBranch builds a graph with one branching node: a main trunk
// (0,0)->(100,0), and a second branch (100,0)->(100,50), matching spec
// Scenario E's shape (one branching node, observations along one branch).
func buildBranch(t *testing.T) (*mapgraph.Graph, *mapgraph.Edge, *mapgraph.Edge) {
	t.Helper()
	g := mapgraph.New(geo.Planar)
	trunk, err := g.AddApproximateDirectEdge(polyline.New([]geo.Point{vpt(0, 0), vpt(100, 0)}, 0.01))
	require.NoError(t, err)
	branch, err := g.AddApproximateDirectEdge(polyline.New([]geo.Point{vpt(100, 0), vpt(100, 50)}, 0.01))
	require.NoError(t, err)

	return g, trunk, branch
}

// TestFindPath_TrunkObservationsStayOnTrunk covers Scenario E: ten
// observations along one branch should decode to that branch's edge alone.
func TestFindPath_TrunkObservationsStayOnTrunk(t *testing.T) {
	g, trunk, _ := buildBranch(t)

	base := time.Now()
	var observations []*hmm.Observation
	for i := 0; i < 10; i++ {
		x := float64(i) * 10
		observations = append(observations, obs(base.Add(time.Duration(i)*time.Second), x, 0.5))
	}

	emission, err := hmm.NewGaussianEmission(4.07)
	require.NoError(t, err)
	initial, err := hmm.NewGaussianInitial(4.07)
	require.NoError(t, err)

	result, err := viterbi.FindPath(g, observations,
		viterbi.WithThreshold(50),
		viterbi.WithInitial(initial),
		viterbi.WithEmission(emission),
		viterbi.WithTransition(hmm.TopologicalTransition{}),
	)
	require.NoError(t, err)
	require.NotEmpty(t, result.Paths)

	best := result.Paths[0]
	for _, e := range best.Path {
		assert.Same(t, trunk, e)
	}
}

// TestFindPath_SkipsNilObservations covers extractNextObservation: a nil
// entry in the middle of the sequence must not break decoding.
func TestFindPath_SkipsNilObservations(t *testing.T) {
	g, _, _ := buildBranch(t)

	base := time.Now()
	observations := []*hmm.Observation{
		obs(base, 0, 0.5),
		nil,
		obs(base.Add(2*time.Second), 20, 0.5),
	}

	result, err := viterbi.FindPath(g, observations, viterbi.WithThreshold(50))
	require.NoError(t, err)
	require.NotEmpty(t, result.Paths)
}

// TestFindPath_EmptyGraph covers the MatchError::EmptyGraph contract.
func TestFindPath_EmptyGraph(t *testing.T) {
	g := mapgraph.New(geo.Planar)
	result, err := viterbi.FindPath(g, []*hmm.Observation{obs(time.Now(), 0, 0)})
	require.NoError(t, err)
	assert.Empty(t, result.Paths)
	assert.ErrorIs(t, result.Reason, viterbi.ErrEmptyGraph)
}

// TestFindPath_NoObservations covers the MatchError::NoObservations
// contract: an all-nil sequence decodes to an empty result.
func TestFindPath_NoObservations(t *testing.T) {
	g, _, _ := buildBranch(t)
	result, err := viterbi.FindPath(g, []*hmm.Observation{nil, nil})
	require.NoError(t, err)
	assert.Empty(t, result.Paths)
	assert.ErrorIs(t, result.Reason, viterbi.ErrNoObservations)
}

// TestFindPath_OffRoadExcursion covers Scenario F: an observation far from
// any edge, with off-road enabled, should still decode (the synthetic
// edges keep the trellis alive for the next on-graph observation).
func TestFindPath_OffRoadExcursion(t *testing.T) {
	g, _, _ := buildBranch(t)

	base := time.Now()
	observations := []*hmm.Observation{
		obs(base, 0, 0.5),
		obs(base.Add(time.Second), 20, 120), // 120m off any edge
		obs(base.Add(2*time.Second), 40, 0.5),
	}

	result, err := viterbi.FindPath(g, observations,
		viterbi.WithThreshold(50),
		viterbi.WithOffRoad(),
	)
	require.NoError(t, err)
	require.NotEmpty(t, result.Paths)
}
