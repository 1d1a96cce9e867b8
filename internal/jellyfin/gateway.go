package jellyfin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vmunix/collectarr/internal/library"
)

// Gateway binds a Client to a resolved user and adapts the raw API to the
// sync pipeline: library lookup by name, scope derivation, and collection
// membership access. Methods are safe for concurrent use.
type Gateway struct {
	client *Client
	userID string
	log    *slog.Logger

	mu          sync.Mutex
	views       []View
	viewsLoaded bool
}

// NewGateway creates a gateway over one user's libraries.
func NewGateway(client *Client, userID string, log *slog.Logger) *Gateway {
	var gwLog *slog.Logger
	if log != nil {
		gwLog = log.With("component", "gateway")
	}
	return &Gateway{client: client, userID: userID, log: gwLog}
}

// Catalog fetches the item snapshot for a named library. When scope is
// ScopeUnknown the library's collection type picks it: movie libraries serve
// movies, show libraries serve episodes. The effective scope is returned
// alongside the items.
func (g *Gateway) Catalog(ctx context.Context, source string, scope library.Scope) ([]library.Item, library.Scope, error) {
	view, err := g.findView(ctx, source)
	if err != nil {
		return nil, library.ScopeUnknown, err
	}
	effective, err := effectiveScope(view, scope)
	if err != nil {
		return nil, library.ScopeUnknown, err
	}
	items, err := g.client.CatalogItems(ctx, g.userID, view.ID, effective)
	if err != nil {
		return nil, library.ScopeUnknown, fmt.Errorf("fetch %s from %q: %w", effective, view.Name, err)
	}
	if g.log != nil {
		g.log.Debug("catalog fetched", "library", view.Name, "scope", effective.String(), "items", len(items))
	}
	return items, effective, nil
}

// ResolveLibrary resolves a configured library name without fetching its
// catalog: it returns the library's display name and the scope a sync
// would use. Config checking uses this as a cheap probe.
func (g *Gateway) ResolveLibrary(ctx context.Context, source string, scope library.Scope) (string, library.Scope, error) {
	view, err := g.findView(ctx, source)
	if err != nil {
		return "", library.ScopeUnknown, err
	}
	effective, err := effectiveScope(view, scope)
	if err != nil {
		return view.Name, library.ScopeUnknown, err
	}
	return view.Name, effective, nil
}

// findView matches a configured library name against the user's views,
// ignoring case and accents. Views are fetched once and reused.
func (g *Gateway) findView(ctx context.Context, name string) (*View, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.viewsLoaded {
		views, err := g.client.Views(ctx, g.userID)
		if err != nil {
			return nil, fmt.Errorf("list libraries: %w", err)
		}
		g.views = views
		g.viewsLoaded = true
	}

	want := normalizeName(name)
	for i := range g.views {
		if normalizeName(g.views[i].Name) == want {
			return &g.views[i], nil
		}
	}

	names := make([]string, len(g.views))
	for i, v := range g.views {
		names[i] = v.Name
	}
	if suggestion := closestName(name, names); suggestion != "" {
		return nil, fmt.Errorf("library %q (did you mean %q?): %w", name, suggestion, ErrLibraryNotFound)
	}
	return nil, fmt.Errorf("library %q: %w", name, ErrLibraryNotFound)
}

// effectiveScope reconciles a requested scope with what the library can
// serve. Requesting series from a movie library is a configuration error.
func effectiveScope(view *View, requested library.Scope) (library.Scope, error) {
	switch view.CollectionType {
	case "movies":
		if requested == library.ScopeUnknown || requested == library.ScopeMovie {
			return library.ScopeMovie, nil
		}
	case "tvshows":
		switch requested {
		case library.ScopeUnknown, library.ScopeEpisode:
			return library.ScopeEpisode, nil
		case library.ScopeSeries:
			return library.ScopeSeries, nil
		}
	default:
		return library.ScopeUnknown, fmt.Errorf("library %q has unsupported type %q", view.Name, view.CollectionType)
	}
	return library.ScopeUnknown, fmt.Errorf("library %q cannot serve %s", view.Name, requested)
}

// FindCollection returns the id of the collection with this exact name,
// or "" when none exists.
func (g *Gateway) FindCollection(ctx context.Context, name string) (string, error) {
	col, err := g.client.CollectionByName(ctx, g.userID, name)
	if err != nil {
		return "", err
	}
	if col == nil {
		return "", nil
	}
	return col.ID, nil
}

// CreateCollection creates a collection and returns its id.
func (g *Gateway) CreateCollection(ctx context.Context, name string) (string, error) {
	return g.client.CreateCollection(ctx, name)
}

// CollectionItems lists a collection's current member ids.
func (g *Gateway) CollectionItems(ctx context.Context, collectionID string) ([]library.ItemID, error) {
	return g.client.CollectionItems(ctx, g.userID, collectionID)
}

// AddToCollection adds items to a collection.
func (g *Gateway) AddToCollection(ctx context.Context, collectionID string, ids []library.ItemID) error {
	return g.client.AddToCollection(ctx, collectionID, ids)
}

// RemoveFromCollection removes items from a collection.
func (g *Gateway) RemoveFromCollection(ctx context.Context, collectionID string, ids []library.ItemID) error {
	return g.client.RemoveFromCollection(ctx, collectionID, ids)
}
