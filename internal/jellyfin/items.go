package jellyfin

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vmunix/collectarr/internal/library"
)

// itemsPage mirrors the server's item listing envelope.
type itemsPage struct {
	Items            []itemJSON `json:"Items"`
	TotalRecordCount int        `json:"TotalRecordCount"`
}

type itemJSON struct {
	ID             string    `json:"Id"`
	Name           string    `json:"Name"`
	Type           string    `json:"Type"`
	SeriesName     string    `json:"SeriesName"`
	ProductionYear int       `json:"ProductionYear"`
	UserData       *userData `json:"UserData"`
}

type userData struct {
	Played    bool `json:"Played"`
	PlayCount int  `json:"PlayCount"`
}

// toItem converts a server item to the catalog model. Played is folded from
// the played flag and the play count: an item counts as played when either
// says so. A zero production year means the server does not know it.
func (j itemJSON) toItem(scope library.Scope) library.Item {
	item := library.Item{
		ID:    library.ItemID(j.ID),
		Scope: scope,
		Name:  j.Name,
	}
	if j.UserData != nil {
		item.Played = j.UserData.Played || j.UserData.PlayCount > 0
	}

	seriesName := j.SeriesName
	if scope == library.ScopeSeries && seriesName == "" {
		// A series is its own series.
		seriesName = j.Name
	}
	if seriesName != "" {
		item.SeriesName = seriesName
		item.HasSeriesName = true
	}

	if j.ProductionYear > 0 {
		item.ProductionYear = j.ProductionYear
		item.HasProductionYear = true
	}
	return item
}

// CatalogItems fetches every item of the given scope under a library,
// with the user's play state attached.
func (c *Client) CatalogItems(ctx context.Context, userID, libraryID string, scope library.Scope) ([]library.Item, error) {
	params := url.Values{}
	params.Set("ParentId", libraryID)
	params.Set("Recursive", "true")
	params.Set("EnableUserData", "true")
	params.Set("Fields", "ProductionYear,SeriesName")

	switch scope {
	case library.ScopeMovie:
		params.Set("IncludeItemTypes", "Movie")
	case library.ScopeEpisode:
		params.Set("IncludeItemTypes", "Episode")
		// Virtual episodes are unaired placeholders with no play state.
		params.Set("ExcludeItemTypes", "Virtual")
	case library.ScopeSeries:
		params.Set("IncludeItemTypes", "Series")
	default:
		return nil, fmt.Errorf("scope %s is not fetchable", scope)
	}

	var page itemsPage
	if err := c.get(ctx, "/Users/"+userID+"/Items", params, &page); err != nil {
		return nil, err
	}

	items := make([]library.Item, 0, len(page.Items))
	for _, it := range page.Items {
		items = append(items, it.toItem(scope))
	}
	return items, nil
}
