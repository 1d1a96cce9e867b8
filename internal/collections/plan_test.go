package collections_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vmunix/collectarr/internal/collections"
	"github.com/vmunix/collectarr/internal/library"
)

func ids(ss ...string) []library.ItemID {
	out := make([]library.ItemID, len(ss))
	for i, s := range ss {
		out[i] = library.ItemID(s)
	}
	return out
}

func TestDiff(t *testing.T) {
	plan := collections.Diff(ids("2", "3", "4"), ids("1", "2", "3"))

	assert.Equal(t, ids("4"), plan.Adds, "only the missing item should be added")
	assert.Equal(t, ids("1"), plan.Removes, "only the stale item should be removed")
	assert.False(t, plan.Empty())
}

func TestDiff_FirstSync(t *testing.T) {
	plan := collections.Diff(ids("1", "2", "3"), nil)

	assert.Equal(t, ids("1", "2", "3"), plan.Adds, "empty collection takes everything")
	assert.Empty(t, plan.Removes)
}

func TestDiff_FilterMatchesNothing(t *testing.T) {
	plan := collections.Diff(nil, ids("1", "2"))

	assert.Empty(t, plan.Adds)
	assert.Equal(t, ids("1", "2"), plan.Removes, "stale members should all go")
}

func TestDiff_Converged(t *testing.T) {
	plan := collections.Diff(ids("1", "2"), ids("2", "1"))

	assert.True(t, plan.Empty(), "matching sets need no changes")
}

func TestDiff_ApplyThenDiffIsEmpty(t *testing.T) {
	desired := ids("2", "3", "4")
	observed := ids("1", "2", "3")

	plan := collections.Diff(desired, observed)

	// Apply the plan to the observed set by hand.
	next := map[library.ItemID]bool{}
	for _, id := range observed {
		next[id] = true
	}
	for _, id := range plan.Adds {
		next[id] = true
	}
	for _, id := range plan.Removes {
		delete(next, id)
	}
	applied := make([]library.ItemID, 0, len(next))
	for id := range next {
		applied = append(applied, id)
	}

	assert.True(t, collections.Diff(desired, applied).Empty(), "second pass should be a no-op")
}

func TestDiff_OutputSorted(t *testing.T) {
	plan := collections.Diff(ids("c", "a", "b"), ids("z", "x", "y"))

	assert.Equal(t, ids("a", "b", "c"), plan.Adds, "adds should be sorted")
	assert.Equal(t, ids("x", "y", "z"), plan.Removes, "removes should be sorted")
}
