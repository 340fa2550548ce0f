// Package astar implements the A* shortest-path search over a mapgraph.Graph,
// with pluggable edge-weight and heuristic functions so callers can drive the
// search with whatever cost model fits their use (geometric length, travel
// time, transition penalty, ...).
//
// Complexity:
//
//	- Time:  O((V + E) log V), as for Dijkstra, provided the heuristic is
//	  admissible and cheap to evaluate.
//	- Space: O(V + E)
//
// Errors (sentinel):
//
//	- ErrNilGraph       if the provided graph pointer is nil.
//	- ErrNilStart       if the provided start node is nil.
//	- ErrNilEnd         if the provided end node is nil.
//	- ErrNilWeightFn    if edgeWeightFn is nil.
//	- ErrNilHeuristicFn if heuristicFn is nil.
package astar

import (
	"errors"

	"github.com/arborix/mapmatch/mapgraph"
)

// Sentinel errors returned by FindPath.
var (
	// ErrNilGraph indicates a nil *mapgraph.Graph was passed to FindPath.
	ErrNilGraph = errors.New("astar: graph is nil")

	// ErrNilStart indicates a nil start node was passed to FindPath.
	ErrNilStart = errors.New("astar: start node is nil")

	// ErrNilEnd indicates a nil end node was passed to FindPath.
	ErrNilEnd = errors.New("astar: end node is nil")

	// ErrNilWeightFn indicates edgeWeightFn was nil.
	ErrNilWeightFn = errors.New("astar: edgeWeightFn is nil")

	// ErrNilHeuristicFn indicates heuristicFn was nil.
	ErrNilHeuristicFn = errors.New("astar: heuristicFn is nil")
)

// PathSummary is the result of a successful or unsuccessful FindPath call.
//
// Found   – whether end was reached from start.
// Edges   – the edges traversed, start to end, in order. Empty if start == end.
// Nodes   – the nodes visited, start to end, in order. Len(Nodes) == Len(Edges)+1.
// Cost    – the total edgeWeightFn-summed cost of Edges.
type PathSummary struct {
	Found bool
	Edges []*mapgraph.Edge
	Nodes []*mapgraph.Node
	Cost  float64
}
