package query

import "github.com/vmunix/collectarr/internal/library"

// Select evaluates the query against every catalog item of the given scope
// and returns the matching identifiers in catalog order. Items outside the
// scope are never evaluated.
func Select(q *Query, scope library.Scope, items []library.Item) []library.ItemID {
	var ids []library.ItemID
	for i := range items {
		if items[i].Scope != scope {
			continue
		}
		if q.Match(items[i]) {
			ids = append(ids, items[i].ID)
		}
	}
	return ids
}
