package astar

import (
	"container/heap"

	"github.com/arborix/mapmatch/mapgraph"
)

// EdgeWeightFunc returns the traversal cost of e. Must be non-negative.
type EdgeWeightFunc func(e *mapgraph.Edge) float64

// HeuristicFunc estimates the remaining cost from a to b. For the search to
// return an optimal path it must never overestimate the true remaining cost
// (admissibility); a zero heuristic degrades FindPath to Dijkstra.
type HeuristicFunc func(a, b *mapgraph.Node) float64

// FindPath searches graph for the least-cost path from start to end under
// edgeWeightFn, guided by heuristicFn. If start == end, it returns a found
// summary with no edges. If end is unreachable, it returns Found=false with
// no error.
func FindPath(start, end *mapgraph.Node, graph *mapgraph.Graph, edgeWeightFn EdgeWeightFunc, heuristicFn HeuristicFunc) (*PathSummary, error) {
	if graph == nil {
		return nil, ErrNilGraph
	}
	if start == nil {
		return nil, ErrNilStart
	}
	if end == nil {
		return nil, ErrNilEnd
	}
	if edgeWeightFn == nil {
		return nil, ErrNilWeightFn
	}
	if heuristicFn == nil {
		return nil, ErrNilHeuristicFn
	}

	if start == end {
		return &PathSummary{Found: true, Nodes: []*mapgraph.Node{start}}, nil
	}

	r := &runner{
		start:      start,
		end:        end,
		edgeWeight: edgeWeightFn,
		heuristic:  heuristicFn,
		gScore:     make(map[*mapgraph.Node]float64),
		cameFrom:   make(map[*mapgraph.Node]*mapgraph.Edge),
		closed:     make(map[*mapgraph.Node]bool),
	}
	r.init()
	r.process()

	return r.summary(), nil
}

// runner holds the mutable state for a single FindPath execution.
type runner struct {
	start, end *mapgraph.Node
	edgeWeight EdgeWeightFunc
	heuristic  HeuristicFunc

	gScore   map[*mapgraph.Node]float64        // best known cost from start
	cameFrom map[*mapgraph.Node]*mapgraph.Edge // predecessor edge on best path
	closed   map[*mapgraph.Node]bool           // finalized nodes

	pq    nodePQ
	found bool
}

// init seeds the open set with the start node.
func (r *runner) init() {
	r.gScore[r.start] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{node: r.start, g: 0, f: r.heuristic(r.start, r.end)})
}

// process is the core A* loop: repeatedly pop the lowest f-score node and
// relax its outgoing edges, using a lazy-decrease-key heap as dijkstra does.
func (r *runner) process() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.node

		if r.closed[u] {
			continue
		}
		if u == r.end {
			r.found = true
			return
		}
		r.closed[u] = true

		for _, e := range u.OutEdges() {
			v := e.To
			if r.closed[v] {
				continue
			}

			w := r.edgeWeight(e)
			newG := r.gScore[u] + w

			if old, ok := r.gScore[v]; ok && newG >= old {
				continue
			}

			r.gScore[v] = newG
			r.cameFrom[v] = e
			heap.Push(&r.pq, &nodeItem{node: v, g: newG, f: newG + r.heuristic(v, r.end)})
		}
	}
}

// summary reconstructs the path from r.cameFrom, walking backward from end.
func (r *runner) summary() *PathSummary {
	if !r.found {
		return &PathSummary{Found: false}
	}

	var edges []*mapgraph.Edge
	var nodes []*mapgraph.Node
	cur := r.end
	for cur != r.start {
		e, ok := r.cameFrom[cur]
		if !ok {
			return &PathSummary{Found: false}
		}
		edges = append(edges, e)
		nodes = append(nodes, cur)
		cur = e.From
	}
	nodes = append(nodes, r.start)

	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}

	return &PathSummary{Found: true, Edges: edges, Nodes: nodes, Cost: r.gScore[r.end]}
}

// nodeItem represents a node and its current f-score (g + heuristic). It is
// stored in the priority queue to order the open set by estimated total cost.
type nodeItem struct {
	node *mapgraph.Node
	g    float64
	f    float64
}

// nodePQ is a min-heap of *nodeItem ordered by f-score ascending, using the
// same lazy-decrease-key pattern as the graph's other shortest-path search:
// stale entries are pushed rather than updated in place, and are skipped on
// pop via runner.closed.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].f < pq[j].f }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
