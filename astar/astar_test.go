package astar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborix/mapmatch/astar"
	"github.com/arborix/mapmatch/geo"
	"github.com/arborix/mapmatch/mapgraph"
	"github.com/arborix/mapmatch/polyline"
)

func ppt(x, y float64) geo.Point { return geo.NewPoint(x, y, geo.Planar) }

func straightEdge(g *mapgraph.Graph, x1, y1, x2, y2 float64) *mapgraph.Edge {
	pl := polyline.New([]geo.Point{ppt(x1, y1), ppt(x2, y2)}, 0.01)
	e, err := g.AddApproximateDirectEdge(pl)
	if err != nil {
		panic(err)
	}

	return e
}

func weightByLength(e *mapgraph.Edge) float64 { return e.Path.Length() }

func zeroHeuristic(a, b *mapgraph.Node) float64 { return 0 }

func euclideanHeuristic(a, b *mapgraph.Node) float64 { return geo.Distance(a.Point, b.Point) }

// buildDiamond creates two routes from A(0,0) to D(10,10): A-B-D along two
// sides of the square (length 20) and A-C-D through C(0,3) (length
// 3 + sqrt(149)), so the shortest path must choose the cheaper pair.
func buildDiamond(g *mapgraph.Graph) (a, d *mapgraph.Node) {
	straightEdge(g, 0, 0, 10, 0) // A -> B
	straightEdge(g, 10, 0, 10, 10) // B -> D (total 20)
	straightEdge(g, 0, 0, 0, 3)    // A -> C
	straightEdge(g, 0, 3, 10, 10) // C -> D (shorter combined path)

	for _, n := range g.Nodes() {
		if n.Point.Equal(ppt(0, 0), 1e-6) {
			a = n
		}
		if n.Point.Equal(ppt(10, 10), 1e-6) {
			d = n
		}
	}

	return a, d
}

// TestFindPath_PicksCheaperRoute covers the core optimality contract: of two
// disjoint routes between the same endpoints, A* returns the cheaper one.
func TestFindPath_PicksCheaperRoute(t *testing.T) {
	g := mapgraph.New(geo.Planar)
	a, d := buildDiamond(g)
	require.NotNil(t, a)
	require.NotNil(t, d)

	summary, err := astar.FindPath(a, d, g, weightByLength, euclideanHeuristic)
	require.NoError(t, err)
	require.True(t, summary.Found)
	assert.Len(t, summary.Edges, 2)
	assert.InDelta(t, 3+12.20655562, summary.Cost, 1e-3)
}

// TestFindPath_ZeroHeuristicMatchesDijkstra checks that a zero heuristic
// still finds the optimal path (A* degrades gracefully to Dijkstra).
func TestFindPath_ZeroHeuristicMatchesDijkstra(t *testing.T) {
	g := mapgraph.New(geo.Planar)
	a, d := buildDiamond(g)

	summary, err := astar.FindPath(a, d, g, weightByLength, zeroHeuristic)
	require.NoError(t, err)
	require.True(t, summary.Found)
	assert.Len(t, summary.Edges, 2)
}

// TestFindPath_StartEqualsEnd covers the trivial zero-length path.
func TestFindPath_StartEqualsEnd(t *testing.T) {
	g := mapgraph.New(geo.Planar)
	straightEdge(g, 0, 0, 1, 0)
	a := g.Nodes()[0]

	summary, err := astar.FindPath(a, a, g, weightByLength, zeroHeuristic)
	require.NoError(t, err)
	assert.True(t, summary.Found)
	assert.Empty(t, summary.Edges)
}

// TestFindPath_Unreachable covers an end node with no incoming path: Found
// is false and no error is returned.
func TestFindPath_Unreachable(t *testing.T) {
	g := mapgraph.New(geo.Planar)
	straightEdge(g, 0, 0, 1, 0)
	straightEdge(g, 100, 100, 101, 100)

	nodes := g.Nodes()
	var start, isolated *mapgraph.Node
	for _, n := range nodes {
		if n.Point.Equal(ppt(0, 0), 1e-6) {
			start = n
		}
		if n.Point.Equal(ppt(100, 100), 1e-6) {
			isolated = n
		}
	}
	require.NotNil(t, start)
	require.NotNil(t, isolated)

	summary, err := astar.FindPath(start, isolated, g, weightByLength, zeroHeuristic)
	require.NoError(t, err)
	assert.False(t, summary.Found)
}

// TestFindPath_NilArguments covers the validation contract.
func TestFindPath_NilArguments(t *testing.T) {
	g := mapgraph.New(geo.Planar)
	straightEdge(g, 0, 0, 1, 0)
	a := g.Nodes()[0]

	_, err := astar.FindPath(nil, a, g, weightByLength, zeroHeuristic)
	assert.ErrorIs(t, err, astar.ErrNilStart)

	_, err = astar.FindPath(a, nil, g, weightByLength, zeroHeuristic)
	assert.ErrorIs(t, err, astar.ErrNilEnd)

	_, err = astar.FindPath(a, a, nil, weightByLength, zeroHeuristic)
	assert.ErrorIs(t, err, astar.ErrNilGraph)

	_, err = astar.FindPath(a, a, g, nil, zeroHeuristic)
	assert.ErrorIs(t, err, astar.ErrNilWeightFn)

	_, err = astar.FindPath(a, a, g, weightByLength, nil)
	assert.ErrorIs(t, err, astar.ErrNilHeuristicFn)
}
