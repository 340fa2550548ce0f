// File: build.go
// Role: Near-line-merge edge ingestion: AddApproximateDirectEdge fuses a
// polyline's endpoints into existing nodes within ε_merge, or creates fresh
// ones; AddApproximateDirectEdges additionally creates the reverse edge and
// links the pair via Reverse.
package mapgraph

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/arborix/mapmatch/geo"
	"github.com/arborix/mapmatch/polyline"
)

// AddApproximateDirectEdge ingests a single directed edge from path,
// reusing any existing node within ε_merge of path's start/end points or
// creating fresh ones. Returns ErrEmptyPolyline for an empty path.
//
// Complexity: O(V) to scan existing nodes for a merge candidate, O(1)
// amortized for edge bookkeeping.
func (g *Graph) AddApproximateDirectEdge(path polyline.Polyline) (*Edge, error) {
	if path.IsEmpty() {
		return nil, ErrEmptyPolyline
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	from := g.findOrCreateNodeLocked(path.Start())
	to := g.findOrCreateNodeLocked(path.End())

	edge := g.newEdgeLocked(from, to, path, false)

	return edge, nil
}

// AddApproximateDirectEdges ingests path as a directed edge, and when
// bidirectional is true also creates the reverse edge (reversed geometry,
// swapped endpoints) and links the pair via Reverse.
func (g *Graph) AddApproximateDirectEdges(path polyline.Polyline, bidirectional bool) (forward, backward *Edge, err error) {
	if path.IsEmpty() {
		return nil, nil, ErrEmptyPolyline
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	from := g.findOrCreateNodeLocked(path.Start())
	to := g.findOrCreateNodeLocked(path.End())

	forward = g.newEdgeLocked(from, to, path, false)
	if !bidirectional {
		return forward, nil, nil
	}

	backward = g.newEdgeLocked(to, from, path.Reverse(), false)
	forward.Reverse = backward
	backward.Reverse = forward

	return forward, backward, nil
}

// findOrCreateNodeLocked returns the existing node within ε_merge of p, or
// creates and registers a fresh one. Callers must hold g.mu.
func (g *Graph) findOrCreateNodeLocked(p geo.Point) *Node {
	for _, n := range g.nodes {
		if geo.Distance(n.Point, p) <= g.epsilonMerge {
			return n
		}
	}

	id := "n" + strconv.FormatUint(atomic.AddUint64(&g.nextNodeID, 1), 10)
	n := &Node{ID: id, Point: p}
	g.nodes[id] = n

	return n
}

// newEdgeLocked constructs an edge from->to over path, assigns a fresh ID,
// and registers it in the graph and both endpoints' edge lists. Callers
// must hold g.mu.
func (g *Graph) newEdgeLocked(from, to *Node, path polyline.Polyline, offRoad bool) *Edge {
	id := fmt.Sprintf("e%d", atomic.AddUint64(&g.nextEdgeID, 1))
	e := &Edge{ID: id, From: from, To: to, Path: path, offRoad: offRoad}

	g.edges[id] = e
	from.outEdges = append(from.outEdges, e)
	to.inEdges = append(to.inEdges, e)

	return e
}
