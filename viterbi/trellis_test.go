package viterbi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborix/mapmatch/mapgraph"
)

// TestTrellis_StagedBackpointersDontLeakWithinStep covers testable invariant
// #6 (the returned path sums to the returned score): when edge A is both a
// candidate at step i (so it would overwrite pi[A] early) and later chosen
// as the bestFrom for edge B at the same step, B's committed history must
// still be built from A's *previous* step back-pointer, not from whatever
// A itself staged during this step.
func TestTrellis_StagedBackpointersDontLeakWithinStep(t *testing.T) {
	a := &mapgraph.Edge{ID: "a"}
	b := &mapgraph.Edge{ID: "b"}
	c := &mapgraph.Edge{ID: "c"}

	tr := newTrellis(3)

	// Step 0: C is the only real predecessor on record.
	tr.initBackpointer(c, 0)

	// Step 1: both A and B are candidates. A's best predecessor is C; B's
	// best predecessor is A (A's step-0 state, which never existed, so this
	// models A being seeded fresh at step 1 while also feeding B).
	tr.stageBackpointer(c, a, 1)
	tr.stageBackpointer(a, b, 1)
	tr.commitPending()

	aPath := tr.path(a, 0, 1)
	bPath := tr.path(b, 0, 1)

	require.Equal(t, []*mapgraph.Edge{c, a}, aPath)
	// b must inherit a's *pre-step* history (empty, since a had none before
	// step 1), not a's step-1 history (which would incorrectly prepend c).
	assert.Equal(t, []*mapgraph.Edge{b}, bPath)
}

// TestTrellis_CommitPendingClearsBuffer covers that a step with no staged
// back-pointers (every candidate's bestFrom was nil) leaves pi untouched
// and pending empty for the next step.
func TestTrellis_CommitPendingClearsBuffer(t *testing.T) {
	a := &mapgraph.Edge{ID: "a"}
	tr := newTrellis(2)
	tr.initBackpointer(a, 0)

	tr.commitPending()

	assert.Equal(t, []*mapgraph.Edge{a}, tr.path(a, 0, 0))
	assert.Empty(t, tr.pending)
}
