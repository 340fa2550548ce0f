package rtree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborix/mapmatch/region"
	"github.com/arborix/mapmatch/rtree"
)

// TestQuery_UnitSquares covers spec Scenario D: 100 unit squares
// Region(i, i+1, i, i+1), query(5,6,5,6) == 3, query(0,10,0,10) == 11.
func TestQuery_UnitSquares(t *testing.T) {
	tree := rtree.New()
	for i := 0; i < 100; i++ {
		f := float64(i)
		require.NoError(t, tree.Insert(region.New(f, f, f+1, f+1), i))
	}

	got := tree.Query(region.New(5, 5, 6, 6))
	assert.Len(t, got, 3)

	got = tree.Query(region.New(0, 0, 10, 10))
	assert.Len(t, got, 11)
}

// TestQuery_NoFalseNegatives covers invariant 4: every inserted item whose
// region intersects the query region is returned, and the result is a
// subset of all inserted items.
func TestQuery_NoFalseNegatives(t *testing.T) {
	tree := rtree.New(rtree.WithNodeCapacity(4))
	regions := []region.Region{
		region.New(0, 0, 1, 1),
		region.New(2, 2, 3, 3),
		region.New(0.5, 0.5, 1.5, 1.5),
		region.New(10, 10, 11, 11),
	}
	for i, r := range regions {
		require.NoError(t, tree.Insert(r, i))
	}

	query := region.New(0, 0, 2, 2)
	got := tree.Query(query)

	want := map[int]bool{0: true, 2: true}
	gotSet := map[int]bool{}
	for _, p := range got {
		gotSet[p.(int)] = true
	}
	for k := range want {
		assert.True(t, gotSet[k], "expected item %d in results", k)
	}
	for k := range gotSet {
		assert.Less(t, k, len(regions))
	}
}

// TestInsert_SealedAfterQuery covers ErrSealed.
func TestInsert_SealedAfterQuery(t *testing.T) {
	tree := rtree.New()
	require.NoError(t, tree.Insert(region.New(0, 0, 1, 1), "a"))
	tree.Query(region.New(0, 0, 1, 1))

	err := tree.Insert(region.New(2, 2, 3, 3), "b")
	require.ErrorIs(t, err, rtree.ErrSealed)
}

// TestDelete_Unsupported covers ErrUnsupported.
func TestDelete_Unsupported(t *testing.T) {
	tree := rtree.New()
	err := tree.Delete("anything")
	require.ErrorIs(t, err, rtree.ErrUnsupported)
}

// TestQuery_Empty covers the empty-tree edge case.
func TestQuery_Empty(t *testing.T) {
	tree := rtree.New()
	assert.True(t, tree.IsEmpty())
	got := tree.Query(region.New(0, 0, 1, 1))
	assert.Empty(t, got)
}

// TestSize_SurvivesBuild covers the spec's "size/isEmpty trivially correct"
// contract across the seal boundary: a non-empty tree must still report its
// true item count, and report itself non-empty, after the first Query (or
// Build) triggers the bulk load.
func TestSize_SurvivesBuild(t *testing.T) {
	tree := rtree.New()
	for i := 0; i < 5; i++ {
		f := float64(i)
		require.NoError(t, tree.Insert(region.New(f, f, f+1, f+1), i))
	}
	require.Equal(t, 5, tree.Size())
	require.False(t, tree.IsEmpty())

	tree.Query(region.New(0, 0, 1, 1))

	assert.Equal(t, 5, tree.Size())
	assert.False(t, tree.IsEmpty())
}
