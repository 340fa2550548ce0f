// Package mapgraph builds a directed multigraph from a stream of road
// polylines, fusing endpoints that lie within a configurable tolerance
// (near-line-merge), and exposes proximity lookups backed by a Hilbert
// R-tree over edge geometry.
//
// Unlike the adjacency-list graphs elsewhere in this kind of library,
// nodes and edges here hold direct references to each other (edges know
// their endpoint nodes; nodes own their incident edge lists; bidirectional
// edge pairs reference each other via Reverse), because the map matcher
// walks the graph structurally during A* and Viterbi decoding rather than
// through ID-keyed maps.
//
// Errors:
//
//	ErrEmptyPolyline - AddApproximateDirectEdge was given a zero-point path.
package mapgraph

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/arborix/mapmatch/geo"
	"github.com/arborix/mapmatch/polyline"
	"github.com/arborix/mapmatch/rtree"
)

// Sentinel errors for mapgraph operations.
var (
	// ErrEmptyPolyline indicates AddApproximateDirectEdge(s) was given a
	// path with zero points.
	ErrEmptyPolyline = errors.New("mapgraph: edge path is empty")
)

// defaultEpsilonMergeGeodetic is ε_merge under Geodetic topology, meters.
const defaultEpsilonMergeGeodetic = 50.0

// defaultEpsilonMergePlanar is ε_merge under Planar topology, coordinate units.
const defaultEpsilonMergePlanar = 1.0

// Node is a fused endpoint: an identifier plus a representative point. A
// Node owns the directed edge lists of every edge incident to it.
//
// outEdges/inEdges are mutated only while the owning Graph's mu is held
// (during AddApproximateDirectEdge(s)); once the Graph is frozen, readers
// may call OutEdges/InEdges from any number of goroutines without locking,
// per the concurrency model in spec.md §5.
type Node struct {
	ID    string
	Point geo.Point

	outEdges []*Edge
	inEdges  []*Edge
}

// OutEdges returns a snapshot of n's outgoing edges.
func (n *Node) OutEdges() []*Edge {
	out := make([]*Edge, len(n.outEdges))
	copy(out, n.outEdges)

	return out
}

// InEdges returns a snapshot of n's incoming edges.
func (n *Node) InEdges() []*Edge {
	out := make([]*Edge, len(n.inEdges))
	copy(out, n.inEdges)

	return out
}

// Edge is a directed connection between two nodes, carrying the polyline
// geometry actually traversed.
type Edge struct {
	ID      string
	From    *Node
	To      *Node
	Path    polyline.Polyline
	Reverse *Edge // back-reference for bidirectional pairs, nil otherwise

	// Weight is a mutable numeric cost used only by legacy callers that
	// assign edge costs directly; the A* and Viterbi packages take their
	// own edgeWeightFn/emission calculators instead.
	Weight float64

	// FromProjected/ToProjected mark an off-road synthetic edge: the real
	// edge a projection was taken from (see package viterbi's offroad.go).
	FromProjected *Edge
	ToProjected   *Edge

	offRoad bool
}

// IsOffRoad reports whether e was synthesized by off-road augmentation
// rather than ingested from AddApproximateDirectEdge(s).
func (e *Edge) IsOffRoad() bool { return e.offRoad }

// GraphOption configures a Graph at construction.
type GraphOption func(*Graph)

// WithEpsilonMerge overrides ε_merge, the node-fusion tolerance (meters
// under Geodetic, coordinate units under Planar).
func WithEpsilonMerge(eps float64) GraphOption {
	return func(g *Graph) { g.epsilonMerge = eps }
}

// Graph is a directed multigraph over fused nodes and polyline edges,
// backed by a Hilbert R-tree (package rtree) for edge proximity queries.
//
// Graph is append-only via AddApproximateDirectEdge(s) until Freeze (or the
// first GetEdgesNear) triggers the R-tree build; after that, concurrent
// readers may safely call the query methods. AddApproximateDirectEdge(s)
// does not reject calls after Freeze: such edges appear in Nodes and Edges
// but are not in the R-tree, so GetEdgesNear does not return them.
type Graph struct {
	topology     geo.Topology
	epsilonMerge float64

	mu    sync.RWMutex
	nodes map[string]*Node
	edges map[string]*Edge

	nextNodeID uint64
	nextEdgeID uint64

	freezeOnce sync.Once
	tree       *rtree.HilbertRTree
	frozen     atomic.Bool
}

// New constructs an empty Graph over the given topology.
func New(topology geo.Topology, opts ...GraphOption) *Graph {
	eps := defaultEpsilonMergePlanar
	if topology == geo.Geodetic {
		eps = defaultEpsilonMergeGeodetic
	}

	g := &Graph{
		topology:     topology,
		epsilonMerge: eps,
		nodes:        make(map[string]*Node),
		edges:        make(map[string]*Edge),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
