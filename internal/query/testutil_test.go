package query

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vmunix/collectarr/internal/library"
)

func mustCompile(t *testing.T, raw string) *Query {
	t.Helper()
	q, err := Compile(raw)
	require.NoError(t, err, "compile %q", raw)
	return q
}

func movie(id string, year int, played bool) library.Item {
	return library.Item{
		ID:                library.ItemID(id),
		Scope:             library.ScopeMovie,
		Played:            played,
		ProductionYear:    year,
		HasProductionYear: year != 0,
	}
}

func episode(id, series string, year int, played bool) library.Item {
	return library.Item{
		ID:                library.ItemID(id),
		Scope:             library.ScopeEpisode,
		Played:            played,
		SeriesName:        series,
		HasSeriesName:     series != "",
		ProductionYear:    year,
		HasProductionYear: year != 0,
	}
}

func series(id, name string, year int) library.Item {
	return library.Item{
		ID:                library.ItemID(id),
		Scope:             library.ScopeSeries,
		Name:              name,
		SeriesName:        name,
		HasSeriesName:     name != "",
		ProductionYear:    year,
		HasProductionYear: year != 0,
	}
}
