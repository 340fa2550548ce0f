// File: build.go
// Role: One-shot bulk build: compute the total extent, assign Hilbert
// codes, sort, and pack bottom-up into fixed-fanout layers.
package rtree

import (
	"sort"

	"github.com/arborix/mapmatch/region"
)

// indexed pairs an item with its original insertion order, so the sort by
// Hilbert code can break ties deterministically (stable sort already does
// this, but we keep the field explicit for clarity in build()).
type indexed struct {
	item  Item
	order int
}

// Build triggers the one-shot bulk load if it has not already happened.
// Safe to call concurrently; only the first caller performs the work.
func (t *HilbertRTree) Build() {
	t.once.Do(t.build)
}

// build performs the bulk-load pipeline described in spec.md §4.C:
//  1. compute the union extent of all items,
//  2. assign each item a Hilbert code from its region's center,
//  3. sort ascending by code (ties by insertion order),
//  4. pack layer 0 (sorted items) into fixed-fanout internal layers until a
//     single root node remains.
func (t *HilbertRTree) build() {
	t.mu.Lock()
	defer t.mu.Unlock()

	items := t.items
	t.items = nil // release; sortedItems takes over as the canonical storage

	if len(items) == 0 {
		t.sortedItems = []Item{}
		t.layerBounds = [][]region.Region{}

		return
	}

	extent := region.Empty()
	for _, it := range items {
		extent = extent.ExpandToInclude(it.Region)
	}

	indexedItems := make([]indexed, len(items))
	for i, it := range items {
		indexedItems[i] = indexed{item: it, order: i}
	}

	sort.SliceStable(indexedItems, func(i, j int) bool {
		ci := hilbertCode(indexedItems[i].item.Region, extent, t.hilbertLevel)
		cj := hilbertCode(indexedItems[j].item.Region, extent, t.hilbertLevel)
		if ci != cj {
			return ci < cj
		}

		return indexedItems[i].order < indexedItems[j].order
	})

	sorted := make([]Item, len(indexedItems))
	leafBounds := make([]region.Region, len(indexedItems))
	for i, ix := range indexedItems {
		sorted[i] = ix.item
		leafBounds[i] = ix.item.Region
	}
	t.sortedItems = sorted

	layers := [][]region.Region{leafBounds}
	for len(layers[len(layers)-1]) > 1 {
		prev := layers[len(layers)-1]
		next := make([]region.Region, 0, (len(prev)+t.nodeCapacity-1)/t.nodeCapacity)
		for i := 0; i < len(prev); i += t.nodeCapacity {
			end := i + t.nodeCapacity
			if end > len(prev) {
				end = len(prev)
			}
			bound := region.Empty()
			for _, child := range prev[i:end] {
				bound = bound.ExpandToInclude(child)
			}
			next = append(next, bound)
		}
		layers = append(layers, next)
	}

	t.layerBounds = layers
}
