package lookup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchSpotifyArtists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/spotify/artists/search", r.URL.Path)
		assert.Equal(t, "astro", r.URL.Query().Get("query"))

		w.Write([]byte(`{
			"success": true,
			"results": [
				{"id": "1", "name": "Astro", "url": "https://open.spotify.com/artist/1", "images": [{"url": "https://img/1"}]},
				{"spotify_id": "2", "artist_name": "Astronaut", "spotify_url": "https://open.spotify.com/artist/2"},
				{"name": "No ID No URL"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api", nil, time.Second, zerolog.Nop())
	results, err := c.SearchSpotifyArtists(context.Background(), " astro ")
	require.NoError(t, err)

	require.Len(t, results, 2, "entries without id/name/url are dropped")
	assert.Equal(t, ArtistResult{ID: "1", Name: "Astro", URL: "https://open.spotify.com/artist/1", Image: "https://img/1"}, results[0])
	assert.Equal(t, "2", results[1].ID)
	assert.Equal(t, "Astronaut", results[1].Name)
}

func TestShortQuerySkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api", nil, time.Second, zerolog.Nop())

	results, err := c.SearchSpotifyArtists(context.Background(), "a")
	assert.NoError(t, err)
	assert.Nil(t, results)

	results, err = c.SearchAppleMusicArtists(context.Background(), "  ", "LV")
	assert.NoError(t, err)
	assert.Nil(t, results)

	assert.False(t, called)
}

func TestSearchAppleMusicDefaultsCountry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/apple-music/artists", r.URL.Path)
		assert.Equal(t, "LV", r.URL.Query().Get("country"))
		w.Write([]byte(`{"success": true, "results": [{"apple_music_id": "9", "title": "Astro", "href": "https://music.apple.com/artist/9", "artworkUrl100": "https://img/9"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api", nil, time.Second, zerolog.Nop())
	results, err := c.SearchAppleMusicArtists(context.Background(), "astro", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, ArtistResult{ID: "9", Name: "Astro", URL: "https://music.apple.com/artist/9", Image: "https://img/9"}, results[0])
}

func TestSearchPlaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"results": []map[string]any{
				{"place_id": "p1", "name": "Zeit", "address": "Riga", "lat": 56.9, "lng": 24.1},
				{"name": "missing place_id"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api", nil, time.Second, zerolog.Nop())
	places, err := c.SearchPlaces(context.Background(), "zeit")
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "p1", places[0].PlaceID)
	assert.Equal(t, 56.9, places[0].Lat)
}

func TestSearchRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"success": false}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api", nil, time.Second, zerolog.Nop())
	_, err := c.SearchSpotifyArtists(context.Background(), "astro")
	assert.Error(t, err)
}

// recorder collects deliveries in order.
type recorder struct {
	mu      sync.Mutex
	queries []string
	results [][]ArtistResult
}

func (r *recorder) deliver(query string, results []ArtistResult, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, query)
	r.results = append(r.results, results)
}

func (r *recorder) last() (string, []ArtistResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queries) == 0 {
		return "", nil, false
	}
	return r.queries[len(r.queries)-1], r.results[len(r.results)-1], true
}

func TestTypeaheadDebouncesAndDeliversLatest(t *testing.T) {
	rec := &recorder{}

	search := func(ctx context.Context, query string) ([]ArtistResult, error) {
		return []ArtistResult{{ID: query, Name: query, URL: "https://x/" + query}}, nil
	}

	ta := NewTypeahead(search, rec.deliver, 20*time.Millisecond)

	// Three keystrokes inside one debounce window: only the last settles.
	ta.Update(context.Background(), "as")
	ta.Update(context.Background(), "ast")
	ta.Update(context.Background(), "astro")

	assert.Eventually(t, func() bool {
		q, res, ok := rec.last()
		return ok && q == "astro" && len(res) == 1
	}, time.Second, 5*time.Millisecond)

	rec.mu.Lock()
	assert.Len(t, rec.queries, 1, "superseded keystrokes never searched")
	rec.mu.Unlock()
}

func TestTypeaheadDiscardsStaleResponse(t *testing.T) {
	rec := &recorder{}
	release := make(chan struct{})

	search := func(ctx context.Context, query string) ([]ArtistResult, error) {
		if query == "slow" {
			<-release
		}
		return []ArtistResult{{ID: query, Name: query, URL: "https://x/" + query}}, nil
	}

	ta := NewTypeahead(search, rec.deliver, time.Millisecond)

	ta.Update(context.Background(), "slow")
	// Let the slow search start before superseding it.
	time.Sleep(20 * time.Millisecond)
	ta.Update(context.Background(), "fast")

	assert.Eventually(t, func() bool {
		q, _, ok := rec.last()
		return ok && q == "fast"
	}, time.Second, 5*time.Millisecond)

	// Unblock the stale response: it must be dropped, not delivered.
	close(release)
	time.Sleep(50 * time.Millisecond)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []string{"fast"}, rec.queries)
}

func TestTypeaheadShortQueryClearsImmediately(t *testing.T) {
	rec := &recorder{}
	searched := false

	ta := NewTypeahead(func(ctx context.Context, query string) ([]ArtistResult, error) {
		searched = true
		return nil, nil
	}, rec.deliver, time.Millisecond)

	ta.Update(context.Background(), "a")

	q, res, ok := rec.last()
	assert.True(t, ok, "clear delivered synchronously")
	assert.Equal(t, "a", q)
	assert.Nil(t, res)

	time.Sleep(20 * time.Millisecond)
	assert.False(t, searched)
}

func TestTypeaheadCancel(t *testing.T) {
	rec := &recorder{}

	ta := NewTypeahead(func(ctx context.Context, query string) ([]ArtistResult, error) {
		return []ArtistResult{{ID: "1", Name: query, URL: "https://x"}}, nil
	}, rec.deliver, 10*time.Millisecond)

	ta.Update(context.Background(), "astro")
	ta.Cancel()

	time.Sleep(50 * time.Millisecond)
	_, _, ok := rec.last()
	assert.False(t, ok, "cancelled search never delivers")
}
