package jellyfin

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/vmunix/collectarr/internal/library"
)

// batchSize caps the number of item ids per membership mutation request.
const batchSize = 50

// Collection is a named box set on the server.
type Collection struct {
	ID   string
	Name string
}

// CollectionByName finds a collection by exact name.
// Returns nil when no collection has that name.
func (c *Client) CollectionByName(ctx context.Context, userID, name string) (*Collection, error) {
	params := url.Values{}
	params.Set("IncludeItemTypes", "BoxSet")
	params.Set("Recursive", "true")

	var page itemsPage
	if err := c.get(ctx, "/Users/"+userID+"/Items", params, &page); err != nil {
		return nil, err
	}
	for _, it := range page.Items {
		if it.Name == name {
			return &Collection{ID: it.ID, Name: it.Name}, nil
		}
	}
	return nil, nil
}

// CreateCollection creates an unlocked collection and returns its id.
func (c *Client) CreateCollection(ctx context.Context, name string) (string, error) {
	params := url.Values{}
	params.Set("Name", name)
	params.Set("IsLocked", "false")

	var created struct {
		ID string `json:"Id"`
	}
	if err := c.post(ctx, "/Collections", params, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// CollectionItems lists the member ids of a collection.
func (c *Client) CollectionItems(ctx context.Context, userID, collectionID string) ([]library.ItemID, error) {
	params := url.Values{}
	params.Set("ParentId", collectionID)

	var page itemsPage
	if err := c.get(ctx, "/Users/"+userID+"/Items", params, &page); err != nil {
		return nil, err
	}
	ids := make([]library.ItemID, 0, len(page.Items))
	for _, it := range page.Items {
		ids = append(ids, library.ItemID(it.ID))
	}
	return ids, nil
}

// AddToCollection adds items to a collection, splitting the id list into
// batches the server accepts.
func (c *Client) AddToCollection(ctx context.Context, collectionID string, ids []library.ItemID) error {
	return c.mutateCollection(ctx, http.MethodPost, collectionID, ids)
}

// RemoveFromCollection removes items from a collection.
func (c *Client) RemoveFromCollection(ctx context.Context, collectionID string, ids []library.ItemID) error {
	return c.mutateCollection(ctx, http.MethodDelete, collectionID, ids)
}

func (c *Client) mutateCollection(ctx context.Context, method, collectionID string, ids []library.ItemID) error {
	for start := 0; start < len(ids); start += batchSize {
		end := min(start+batchSize, len(ids))

		batch := make([]string, 0, end-start)
		for _, id := range ids[start:end] {
			batch = append(batch, string(id))
		}
		params := url.Values{}
		params.Set("Ids", strings.Join(batch, ","))

		resp, err := c.do(ctx, method, "/Collections/"+collectionID+"/Items", params)
		if err != nil {
			return err
		}
		_ = resp.Body.Close()
	}
	return nil
}
