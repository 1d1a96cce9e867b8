package collections

import (
	"context"

	"github.com/vmunix/collectarr/internal/library"
)

// Gateway defines the media server operations the reconciler needs.
// This abstraction keeps the reconciler independent of the server API
// (Jellyfin today, Emby and friends share the same surface).
type Gateway interface {
	// Catalog fetches the item snapshot of a named library. When scope is
	// ScopeUnknown the library's own type decides; the effective scope is
	// returned alongside the items.
	Catalog(ctx context.Context, source string, scope library.Scope) ([]library.Item, library.Scope, error)

	// FindCollection resolves a collection name to its id, or "" when no
	// collection has that name.
	FindCollection(ctx context.Context, name string) (string, error)

	// CreateCollection creates an empty collection and returns its id.
	CreateCollection(ctx context.Context, name string) (string, error)

	// CollectionItems lists the current member ids of a collection.
	CollectionItems(ctx context.Context, collectionID string) ([]library.ItemID, error)

	// AddToCollection adds items to a collection.
	AddToCollection(ctx context.Context, collectionID string, ids []library.ItemID) error

	// RemoveFromCollection removes items from a collection.
	RemoveFromCollection(ctx context.Context, collectionID string, ids []library.ItemID) error
}
