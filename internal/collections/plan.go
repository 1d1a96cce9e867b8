package collections

import (
	"sort"

	"github.com/vmunix/collectarr/internal/library"
)

// Plan is the membership delta that brings a collection in line with its
// filter: items to add and items to remove.
type Plan struct {
	Adds    []library.ItemID
	Removes []library.ItemID
}

// Empty reports whether the plan changes nothing.
func (p Plan) Empty() bool {
	return len(p.Adds) == 0 && len(p.Removes) == 0
}

// Diff computes the plan that turns observed membership into desired.
// Items in both sets are left alone, so applying a plan and diffing again
// yields an empty plan. Both lists come back sorted.
func Diff(desired, observed []library.ItemID) Plan {
	want := make(map[library.ItemID]struct{}, len(desired))
	for _, id := range desired {
		want[id] = struct{}{}
	}
	have := make(map[library.ItemID]struct{}, len(observed))
	for _, id := range observed {
		have[id] = struct{}{}
	}

	var plan Plan
	for id := range want {
		if _, ok := have[id]; !ok {
			plan.Adds = append(plan.Adds, id)
		}
	}
	for id := range have {
		if _, ok := want[id]; !ok {
			plan.Removes = append(plan.Removes, id)
		}
	}
	sort.Slice(plan.Adds, func(i, j int) bool { return plan.Adds[i] < plan.Adds[j] })
	sort.Slice(plan.Removes, func(i, j int) bool { return plan.Removes[i] < plan.Removes[j] })
	return plan
}
