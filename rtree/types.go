// Package rtree implements a static, bulk-built spatial index: a
// Hilbert-packed R-tree over axis-aligned regions with rectangular range
// query. Items are inserted freely until the first Query (or an explicit
// Build), at which point the tree is sealed: bulk-loaded once, read-only
// forever after.
//
// Errors:
//
//	ErrSealed      - Insert was called after the tree was built.
//	ErrUnsupported - Delete was called; deletion is not supported.
package rtree

import (
	"errors"
	"sync"

	"github.com/arborix/mapmatch/region"
)

// Sentinel errors for rtree operations.
var (
	// ErrSealed indicates Insert was attempted after the tree was already
	// built (by an explicit Build or a first Query).
	ErrSealed = errors.New("rtree: tree is sealed, insert not allowed after build")

	// ErrUnsupported indicates an operation the index intentionally does
	// not implement (Delete).
	ErrUnsupported = errors.New("rtree: operation not supported")
)

// defaultNodeCapacity is C, the fan-out of internal nodes.
const defaultNodeCapacity = 16

// defaultHilbertLevel is L, the Hilbert curve grid resolution (2^L per
// axis). Clamped to [1, 16] so the resulting code fits in 32 bits.
const defaultHilbertLevel = 12

// Item is a (Region, payload) pair inserted into the tree.
type Item struct {
	Region  region.Region
	Payload any
}

// Option configures a HilbertRTree at construction.
type Option func(*HilbertRTree)

// WithNodeCapacity sets C, the number of children per internal node.
// Values < 1 are ignored (default 16).
func WithNodeCapacity(c int) Option {
	return func(t *HilbertRTree) {
		if c >= 1 {
			t.nodeCapacity = c
		}
	}
}

// WithHilbertLevel sets L, clamped to [1, 16] (default 12).
func WithHilbertLevel(l int) Option {
	return func(t *HilbertRTree) {
		if l < 1 {
			l = 1
		} else if l > 16 {
			l = 16
		}
		t.hilbertLevel = l
	}
}

// HilbertRTree is a static, bulk-built spatial index.
//
// Lifecycle: append-only via Insert until the first Query (or explicit
// Build) triggers a one-shot bulk build; Insert fails with ErrSealed
// thereafter. Build itself is safe under concurrent first callers via
// sync.Once.
type HilbertRTree struct {
	nodeCapacity int
	hilbertLevel int

	mu    sync.Mutex // guards items/insertion-order before the build
	items []Item

	once    sync.Once
	sealErr error // any build-time error observed (bulk build never fails today, but reserved)

	// layerBounds[k] holds the bound of each node in layer k, one
	// region.Region (minX, minY, maxX, maxY) per node; layer 0 is the sorted
	// leaf items themselves.
	layerBounds [][]region.Region
	sortedItems []Item // items sorted by Hilbert code, this is layer 0
}

// New constructs an empty HilbertRTree.
func New(opts ...Option) *HilbertRTree {
	t := &HilbertRTree{
		nodeCapacity: defaultNodeCapacity,
		hilbertLevel: defaultHilbertLevel,
	}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Insert adds (r, payload) to the tree. Fails with ErrSealed if the tree
// has already been built (by Build or a prior Query).
func (t *HilbertRTree) Insert(r region.Region, payload any) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.isSealed() {
		return ErrSealed
	}
	t.items = append(t.items, Item{Region: r, Payload: payload})

	return nil
}

// Delete is explicitly not supported.
func (t *HilbertRTree) Delete(any) error {
	return ErrUnsupported
}

// Size returns the number of items inserted, before or after the build.
func (t *HilbertRTree) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.isSealed() {
		return len(t.sortedItems)
	}

	return len(t.items)
}

// IsEmpty reports whether the tree holds zero items.
func (t *HilbertRTree) IsEmpty() bool {
	return t.Size() == 0
}

// isSealed reports whether the tree has been built. Must be called with
// t.mu held, or after Build/Query has returned (where no further mutation
// is possible).
func (t *HilbertRTree) isSealed() bool {
	return t.sortedItems != nil || t.layerBounds != nil
}
