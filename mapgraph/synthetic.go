// File: synthetic.go
// Role: Constructors for off-road Nodes/Edges that live outside any Graph's
// permanent catalog — used by package viterbi's off-road augmentation
// (spec.md §4.H) to attach observation nodes and projection edges to a
// single matching call's candidate set without mutating the frozen graph.
//
// Synthetic nodes/edges are owned by the matcher call frame that creates
// them (spec.md §3 "Ownership"): they are never inserted into a Graph's
// node/edge maps, so no locking is needed to mutate their edge lists.
package mapgraph

import (
	"github.com/arborix/mapmatch/geo"
	"github.com/arborix/mapmatch/polyline"
)

// NewSyntheticNode returns a Node with the given id and point, not
// registered in any Graph.
func NewSyntheticNode(id string, p geo.Point) *Node {
	return &Node{ID: id, Point: p}
}

// NewSyntheticEdge builds an off-road Edge from->to over path and links it
// into both endpoints' edge lists. fromProjected/toProjected tag which real
// candidate edge (if any) this synthetic edge projects onto or from.
func NewSyntheticEdge(id string, from, to *Node, path polyline.Polyline, fromProjected, toProjected *Edge) *Edge {
	e := &Edge{
		ID:            id,
		From:          from,
		To:            to,
		Path:          path,
		FromProjected: fromProjected,
		ToProjected:   toProjected,
		offRoad:       true,
	}
	from.outEdges = append(from.outEdges, e)
	to.inEdges = append(to.inEdges, e)

	return e
}
