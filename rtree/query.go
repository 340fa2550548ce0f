// File: query.go
// Role: Rectangular range query via depth-first traversal of the flat
// layer stack built by build.go. Triggers the lazy one-shot build on first
// call.
package rtree

import "github.com/arborix/mapmatch/region"

// Query returns every inserted payload whose Region intersects r. Triggers
// the one-shot bulk build if it has not already happened. No false
// negatives: every item whose Region intersects r is included (duplicates
// are never produced, since each item lives in exactly one leaf slot).
func (t *HilbertRTree) Query(r region.Region) []any {
	t.Build()

	if len(t.layerBounds) == 0 {
		return nil
	}

	var out []any
	topLayer := len(t.layerBounds) - 1
	for i := range t.layerBounds[topLayer] {
		t.queryNode(topLayer, i, r, &out)
	}

	return out
}

// queryNode recurses into node i of layer, collecting leaf payloads whose
// region intersects r. Child range for an internal node is derived purely
// from array indices (node i at layer k covers children
// [i*C, i*C+C) at layer k-1), matching the "no pointers" contract.
func (t *HilbertRTree) queryNode(layer, i int, r region.Region, out *[]any) {
	bound := t.layerBounds[layer][i]
	if !bound.Intersects(r) {
		return
	}

	if layer == 0 {
		item := t.sortedItems[i]
		if item.Region.Intersects(r) {
			*out = append(*out, item.Payload)
		}

		return
	}

	childLayer := layer - 1
	start := i * t.nodeCapacity
	end := start + t.nodeCapacity
	if end > len(t.layerBounds[childLayer]) {
		end = len(t.layerBounds[childLayer])
	}
	for c := start; c < end; c++ {
		t.queryNode(childLayer, c, r, out)
	}
}
