// Package library defines the catalog item model shared by the query engine
// and the collection sync pipeline.
package library

import "strings"

// ItemID is an opaque media server item identifier.
type ItemID string

// Scope identifies which catalog subset an item belongs to and which subset
// a query runs against.
type Scope int

const (
	ScopeUnknown Scope = iota
	ScopeMovie
	ScopeEpisode
	ScopeSeries
)

func (s Scope) String() string {
	switch s {
	case ScopeMovie:
		return "movies"
	case ScopeEpisode:
		return "episodes"
	case ScopeSeries:
		return "series"
	default:
		return "unknown"
	}
}

// ParseScope maps a configuration value to a Scope.
// Unrecognized values return ScopeUnknown.
func ParseScope(s string) Scope {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies":
		return ScopeMovie
	case "episode", "episodes":
		return ScopeEpisode
	case "series", "show", "shows":
		return ScopeSeries
	default:
		return ScopeUnknown
	}
}

// Item is one catalog entry, snapshotted at fetch time and immutable for the
// rest of the run. Optional attributes carry a Has flag; a clear flag means
// the server did not report the field for this item.
type Item struct {
	ID     ItemID
	Scope  Scope
	Name   string
	Played bool

	SeriesName    string
	HasSeriesName bool

	ProductionYear    int
	HasProductionYear bool
}
