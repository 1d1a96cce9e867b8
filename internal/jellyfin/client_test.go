package jellyfin

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/collectarr/internal/library"
)

const serverInfoJSON = `{"ServerName":"velcro","Version":"10.9.2","Id":"srv-1"}`

func TestClient_ServerInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/System/Info/Public", r.URL.Path, "unexpected path")
		assert.Contains(t, r.Header.Get("Authorization"), `Token="test-key"`, "missing auth token")
		_, _ = w.Write([]byte(serverInfoJSON))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", nil)
	info, err := client.ServerInfo(context.Background())
	require.NoError(t, err, "ServerInfo failed")

	assert.Equal(t, "velcro", info.Name, "unexpected server name")
	assert.Equal(t, "10.9.2", info.Version, "unexpected version")
	assert.Equal(t, "srv-1", info.ID, "unexpected id")
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client := NewClient("http://example.com/", "key", nil)
	assert.Equal(t, "http://example.com", client.baseURL, "expected trailing slash trimmed")
}

func TestClient_UserByName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Users", r.URL.Path, "unexpected path")
		_, _ = w.Write([]byte(`[{"Id":"user-1","Name":"alice"},{"Id":"user-2","Name":"Bob"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)

	user, err := client.UserByName(context.Background(), "BOB")
	require.NoError(t, err, "UserByName failed")
	assert.Equal(t, "user-2", user.ID, "name match should ignore case")

	_, err = client.UserByName(context.Background(), "carol")
	require.Error(t, err, "expected error for unknown user")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Contains(t, err.Error(), `"carol"`, "error should name the user")
}

func TestClient_Views(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Users/user-1/Views", r.URL.Path, "unexpected path")
		_, _ = w.Write([]byte(`{"Items":[
			{"Id":"lib-1","Name":"Movies","CollectionType":"movies"},
			{"Id":"lib-2","Name":"TV Shows","CollectionType":"tvshows"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)
	views, err := client.Views(context.Background(), "user-1")
	require.NoError(t, err, "Views failed")

	require.Len(t, views, 2, "expected 2 views")
	assert.Equal(t, "lib-1", views[0].ID)
	assert.Equal(t, "movies", views[0].CollectionType)
	assert.Equal(t, "TV Shows", views[1].Name)
}

func TestCatalogItems_Movies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Users/user-1/Items", r.URL.Path, "unexpected path")
		q := r.URL.Query()
		assert.Equal(t, "lib-1", q.Get("ParentId"), "unexpected ParentId")
		assert.Equal(t, "true", q.Get("Recursive"), "expected recursive listing")
		assert.Equal(t, "true", q.Get("EnableUserData"), "expected user data")
		assert.Equal(t, "ProductionYear,SeriesName", q.Get("Fields"), "unexpected fields")
		assert.Equal(t, "Movie", q.Get("IncludeItemTypes"), "unexpected item types")

		_, _ = w.Write([]byte(`{"Items":[
			{"Id":"m1","Name":"Heat","Type":"Movie","ProductionYear":1995,"UserData":{"Played":true,"PlayCount":2}},
			{"Id":"m2","Name":"Collateral","Type":"Movie","ProductionYear":2004,"UserData":{"Played":false,"PlayCount":0}}
		],"TotalRecordCount":2}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)
	items, err := client.CatalogItems(context.Background(), "user-1", "lib-1", library.ScopeMovie)
	require.NoError(t, err, "CatalogItems failed")

	require.Len(t, items, 2, "expected 2 items")
	assert.Equal(t, library.ItemID("m1"), items[0].ID)
	assert.Equal(t, library.ScopeMovie, items[0].Scope)
	assert.True(t, items[0].Played, "m1 should be played")
	assert.Equal(t, 1995, items[0].ProductionYear)
	assert.True(t, items[0].HasProductionYear)
	assert.False(t, items[1].Played, "m2 should be unplayed")
}

func TestCatalogItems_Episodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Episode", q.Get("IncludeItemTypes"), "unexpected item types")
		assert.Equal(t, "Virtual", q.Get("ExcludeItemTypes"), "virtual episodes should be excluded")

		_, _ = w.Write([]byte(`{"Items":[
			{"Id":"e1","Name":"Pilot","Type":"Episode","SeriesName":"The Office","ProductionYear":2005,"UserData":{"Played":false,"PlayCount":0}}
		],"TotalRecordCount":1}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)
	items, err := client.CatalogItems(context.Background(), "user-1", "lib-2", library.ScopeEpisode)
	require.NoError(t, err, "CatalogItems failed")

	require.Len(t, items, 1, "expected 1 item")
	assert.Equal(t, "The Office", items[0].SeriesName)
	assert.True(t, items[0].HasSeriesName)
}

func TestCatalogItems_UnknownScope(t *testing.T) {
	client := NewClient("http://example.com", "key", nil)
	_, err := client.CatalogItems(context.Background(), "user-1", "lib-1", library.ScopeUnknown)
	require.Error(t, err, "expected error for unknown scope")
	assert.Contains(t, err.Error(), "not fetchable")
}

func TestItemConversion(t *testing.T) {
	tests := []struct {
		name  string
		in    itemJSON
		scope library.Scope
		want  library.Item
	}{
		{
			name:  "played flag set",
			in:    itemJSON{ID: "m1", Name: "Heat", ProductionYear: 1995, UserData: &userData{Played: true}},
			scope: library.ScopeMovie,
			want: library.Item{
				ID: "m1", Scope: library.ScopeMovie, Name: "Heat",
				Played: true, ProductionYear: 1995, HasProductionYear: true,
			},
		},
		{
			// Some clients bump the play count without setting the flag.
			name:  "play count only",
			in:    itemJSON{ID: "m2", Name: "Ronin", ProductionYear: 1998, UserData: &userData{PlayCount: 3}},
			scope: library.ScopeMovie,
			want: library.Item{
				ID: "m2", Scope: library.ScopeMovie, Name: "Ronin",
				Played: true, ProductionYear: 1998, HasProductionYear: true,
			},
		},
		{
			name:  "no user data",
			in:    itemJSON{ID: "m3", Name: "Thief", ProductionYear: 1981},
			scope: library.ScopeMovie,
			want: library.Item{
				ID: "m3", Scope: library.ScopeMovie, Name: "Thief",
				ProductionYear: 1981, HasProductionYear: true,
			},
		},
		{
			name:  "zero year means unknown",
			in:    itemJSON{ID: "e1", Name: "Pilot", SeriesName: "The Office"},
			scope: library.ScopeEpisode,
			want: library.Item{
				ID: "e1", Scope: library.ScopeEpisode, Name: "Pilot",
				SeriesName: "The Office", HasSeriesName: true,
			},
		},
		{
			name:  "series is its own series",
			in:    itemJSON{ID: "s1", Name: "The Wire", ProductionYear: 2002},
			scope: library.ScopeSeries,
			want: library.Item{
				ID: "s1", Scope: library.ScopeSeries, Name: "The Wire",
				SeriesName: "The Wire", HasSeriesName: true,
				ProductionYear: 2002, HasProductionYear: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.toItem(tt.scope))
		})
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(serverInfoJSON))
	}))
	defer server.Close()

	client := NewClientWithRetry(server.URL, "key", 5, time.Millisecond, nil)
	info, err := client.ServerInfo(context.Background())
	require.NoError(t, err, "transient errors should be retried")
	assert.Equal(t, 3, attempts, "expected success on third attempt")
	assert.Equal(t, "velcro", info.Name)
}

func TestClient_NoRetryOnAuthError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClientWithRetry(server.URL, "bad-key", 5, time.Millisecond, nil)
	_, err := client.ServerInfo(context.Background())
	require.Error(t, err, "expected error for 401 response")
	assert.Equal(t, 1, attempts, "auth failures must not be retried")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr, "expected a status error")
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
}

func TestClient_RetriesExhausted(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClientWithRetry(server.URL, "key", 2, time.Millisecond, nil)
	_, err := client.ServerInfo(context.Background())
	require.Error(t, err, "expected error after retries exhausted")
	assert.Equal(t, 2, attempts, "expected exactly 2 attempts")
	assert.Contains(t, err.Error(), "503", "error should contain status code")
}

func TestClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(serverInfoJSON))
	}))
	defer server.Close()

	client := NewClientWithRetry(server.URL, "key", 3, time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ServerInfo(ctx)
	require.Error(t, err, "expected error for canceled context")
}

func TestClient_ConnectionError(t *testing.T) {
	client := NewClientWithRetry("http://localhost:1", "key", 1, time.Millisecond, nil)
	_, err := client.ServerInfo(context.Background())
	assert.Error(t, err, "expected connection error")
}

func TestClient_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ServerName":"velcro"`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)
	_, err := client.ServerInfo(context.Background())
	require.Error(t, err, "expected error for truncated JSON")
	assert.Contains(t, err.Error(), "decode response", "error should mention decoding")
}

func TestCreateCollection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method, "unexpected method")
		assert.Equal(t, "/Collections", r.URL.Path, "unexpected path")
		assert.Equal(t, "Unwatched Movies", r.URL.Query().Get("Name"), "unexpected name")
		assert.Equal(t, "false", r.URL.Query().Get("IsLocked"), "collection should be unlocked")
		_, _ = w.Write([]byte(`{"Id":"col-1"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)
	id, err := client.CreateCollection(context.Background(), "Unwatched Movies")
	require.NoError(t, err, "CreateCollection failed")
	assert.Equal(t, "col-1", id, "unexpected collection id")
}

func TestCollectionByName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Users/user-1/Items", r.URL.Path, "unexpected path")
		assert.Equal(t, "BoxSet", r.URL.Query().Get("IncludeItemTypes"), "unexpected item types")
		_, _ = w.Write([]byte(`{"Items":[
			{"Id":"col-1","Name":"Unwatched Movies","Type":"BoxSet"},
			{"Id":"col-2","Name":"90s Films","Type":"BoxSet"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)

	col, err := client.CollectionByName(context.Background(), "user-1", "90s Films")
	require.NoError(t, err, "CollectionByName failed")
	require.NotNil(t, col, "expected a match")
	assert.Equal(t, "col-2", col.ID)

	col, err = client.CollectionByName(context.Background(), "user-1", "Nonexistent")
	require.NoError(t, err, "missing collection should not error")
	assert.Nil(t, col, "expected nil for missing collection")
}

func TestCollectionItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "col-1", r.URL.Query().Get("ParentId"), "unexpected ParentId")
		_, _ = w.Write([]byte(`{"Items":[{"Id":"m1"},{"Id":"m2"},{"Id":"m3"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)
	ids, err := client.CollectionItems(context.Background(), "user-1", "col-1")
	require.NoError(t, err, "CollectionItems failed")
	assert.Equal(t, []library.ItemID{"m1", "m2", "m3"}, ids)
}

func TestAddToCollection_Batches(t *testing.T) {
	var methods []string
	var batches []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Collections/col-1/Items", r.URL.Path, "unexpected path")
		methods = append(methods, r.Method)
		batches = append(batches, r.URL.Query().Get("Ids"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	ids := make([]library.ItemID, 0, 120)
	for i := 0; i < 120; i++ {
		ids = append(ids, library.ItemID(fmt.Sprintf("item-%03d", i)))
	}

	client := NewClient(server.URL, "key", nil)
	err := client.AddToCollection(context.Background(), "col-1", ids)
	require.NoError(t, err, "AddToCollection failed")

	require.Len(t, batches, 3, "120 ids should split into 3 requests")
	assert.Len(t, strings.Split(batches[0], ","), 50, "first batch should be full")
	assert.Len(t, strings.Split(batches[1], ","), 50, "second batch should be full")
	assert.Len(t, strings.Split(batches[2], ","), 20, "last batch holds the remainder")
	assert.True(t, strings.HasPrefix(batches[0], "item-000,"), "batches should preserve order")
	assert.True(t, strings.HasSuffix(batches[2], "item-119"), "batches should preserve order")
	for _, m := range methods {
		assert.Equal(t, http.MethodPost, m, "adds use POST")
	}
}

func TestRemoveFromCollection(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method, "removes use DELETE")
		assert.Equal(t, "/Collections/col-1/Items", r.URL.Path, "unexpected path")
		assert.Equal(t, "m1,m2", r.URL.Query().Get("Ids"), "unexpected ids")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)
	err := client.RemoveFromCollection(context.Background(), "col-1", []library.ItemID{"m1", "m2"})
	require.NoError(t, err, "RemoveFromCollection failed")
	assert.True(t, called, "remove endpoint was not called")
}

func TestMutateCollection_NoIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)
	err := client.AddToCollection(context.Background(), "col-1", nil)
	require.NoError(t, err, "empty id list should be a no-op")
}
