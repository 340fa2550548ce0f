// File: query.go
// Role: Proximity lookups (GetNodesNear, GetEdgesNear) and the lazy R-tree
// freeze that backs GetEdgesNear.
package mapgraph

import (
	"math"
	"sort"

	"github.com/arborix/mapmatch/geo"
	"github.com/arborix/mapmatch/region"
	"github.com/arborix/mapmatch/rtree"
)

// Nodes returns every node in the graph, in unspecified order.
func (g *Graph) Nodes() []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}

	return out
}

// Edges returns every edge in the graph, sorted by ID for determinism.
func (g *Graph) Edges() []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// GetNodesNear returns every node within ε_merge of p, via a linear scan.
func (g *Graph) GetNodesNear(p geo.Point) []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []*Node
	for _, n := range g.nodes {
		if geo.Distance(n.Point, p) <= g.epsilonMerge {
			out = append(out, n)
		}
	}

	return out
}

// Freeze builds the R-tree over edge bounding boxes if it has not already
// been built. Safe to call concurrently; only the first caller does the
// work. Called implicitly by the first GetEdgesNear.
func (g *Graph) Freeze() {
	g.freezeOnce.Do(func() {
		g.mu.RLock()
		tree := rtree.New()
		for _, e := range g.edges {
			_ = tree.Insert(e.Path.BoundingBox(), e)
		}
		g.mu.RUnlock()

		tree.Build()
		g.tree = tree
		g.frozen.Store(true)
	})
}

// CanHaveEdgesNear reports whether the graph's R-tree has been built
// (i.e., Freeze or a prior GetEdgesNear has run).
func (g *Graph) CanHaveEdgesNear() bool {
	return g.frozen.Load()
}

// GetEdgesNear returns every edge whose geometry lies within radiusM of p:
// first a bounding-box range query against the R-tree (region of p buffered
// by radiusM), then a precise filter comparing p against each candidate's
// closest on-track point. Results are sorted by edge ID for determinism,
// per spec.md §9's reproducibility note.
func (g *Graph) GetEdgesNear(p geo.Point, radiusM float64) []*Edge {
	g.Freeze()

	query := region.FromPoint(p.X, p.Y).Buffer(queryBuffer(p, radiusM))
	candidates := g.tree.Query(query)

	out := make([]*Edge, 0, len(candidates))
	for _, c := range candidates {
		e := c.(*Edge)
		closest := e.Path.OnTrackClosestPoint(p)
		if geo.Distance(p, closest) <= radiusM {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// metersPerDegree is a conservative (equatorial) estimate used to turn a
// meter radius into a coordinate-degree buffer for the R-tree's rectangular
// query under Geodetic topology: the length of a degree of latitude at the
// equator, the shortest degree of latitude on WGS84. The R-tree stores edge
// bounds in raw (lon, lat) degrees, so radiusM must be translated before it
// can bound a region query; the subsequent precise distance filter in
// GetEdgesNear discards any false positives this conservative estimate admits.
const metersPerDegree = 110574.0

// queryBuffer returns the region buffer to use for a radiusM proximity
// query around p: radiusM itself under Planar (already in coordinate
// units), or its degree-equivalent under Geodetic.
//
// The Geodetic conversion divides by metersPerDegree*cos(latitude), which
// is no longer than a degree of either longitude or latitude at p, so the
// same buffer covers radiusM on both axes.
func queryBuffer(p geo.Point, radiusM float64) float64 {
	if p.Topology == geo.Planar {
		return radiusM
	}

	return radiusM / (metersPerDegree * math.Cos(p.Y*math.Pi/180))
}
