// Package lookup provides the typeahead search clients used while filling
// onboarding steps: Spotify and Apple Music artist search and the place
// search for venues. Responses are normalized into one result shape per
// family regardless of which upstream the backend proxied.
package lookup

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/skatuve/skatuve-client/internal/profile"
)

// MinQueryLength is the shortest query worth sending upstream.
const MinQueryLength = 2

// ArtistResult is one selectable catalog artist. Selecting it stores these
// fields verbatim; nothing is reconstructed from the typed text.
type ArtistResult struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Image string `json:"image,omitempty"`
}

// TokenSource supplies the bearer token, same contract as the api package.
type TokenSource interface {
	Token() string
}

type searchEnvelope struct {
	Success bool              `json:"success"`
	Results []json.RawMessage `json:"results"`
}

// Client performs lookup requests against the backend proxy endpoints.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     zerolog.Logger
}

// NewClient creates a lookup client.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// SearchSpotifyArtists queries the Spotify proxy. Queries shorter than
// MinQueryLength return no results without a request.
func (c *Client) SearchSpotifyArtists(ctx context.Context, query string) ([]ArtistResult, error) {
	q := strings.TrimSpace(query)
	if len([]rune(q)) < MinQueryLength {
		return nil, nil
	}

	values := url.Values{"query": {q}}
	raws, err := c.search(ctx, "/spotify/artists/search", values)
	if err != nil {
		return nil, err
	}
	return normalizeArtistResults(raws), nil
}

// SearchAppleMusicArtists queries the Apple Music proxy. An empty country
// defaults to LV.
func (c *Client) SearchAppleMusicArtists(ctx context.Context, query, country string) ([]ArtistResult, error) {
	q := strings.TrimSpace(query)
	if len([]rune(q)) < MinQueryLength {
		return nil, nil
	}
	if country == "" {
		country = "LV"
	}

	values := url.Values{"query": {q}, "country": {country}}
	raws, err := c.search(ctx, "/apple-music/artists", values)
	if err != nil {
		return nil, err
	}
	return normalizeArtistResults(raws), nil
}

// SearchPlaces queries the place lookup used by the venue details step.
func (c *Client) SearchPlaces(ctx context.Context, query string) ([]profile.Place, error) {
	q := strings.TrimSpace(query)
	if len([]rune(q)) < MinQueryLength {
		return nil, nil
	}

	raws, err := c.search(ctx, "/places/search", url.Values{"query": {q}})
	if err != nil {
		return nil, err
	}

	places := make([]profile.Place, 0, len(raws))
	for _, raw := range raws {
		var p profile.Place
		if err := json.Unmarshal(raw, &p); err != nil {
			continue
		}
		if p.PlaceID == "" {
			continue
		}
		places = append(places, p)
	}
	return places, nil
}

func (c *Client) search(ctx context.Context, path string, values url.Values) ([]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+values.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build search request")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "search request failed")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read search response")
	}

	var env searchEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.Wrap(err, "decode search response")
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 || !env.Success {
		return nil, errors.Errorf("search rejected with status %d", res.StatusCode)
	}

	return env.Results, nil
}

// rawArtistResult tolerates the field aliases the different upstreams use.
type rawArtistResult struct {
	ID            string `json:"id"`
	SpotifyID     string `json:"spotify_id"`
	ArtistID      string `json:"artist_id"`
	AppleMusicID  string `json:"apple_music_id"`
	Name          string `json:"name"`
	ArtistName    string `json:"artist_name"`
	Title         string `json:"title"`
	URL           string `json:"url"`
	SpotifyURL    string `json:"spotify_url"`
	ArtistURL     string `json:"artist_url"`
	Href          string `json:"href"`
	Image         string `json:"image"`
	ImageURL      string `json:"image_url"`
	ArtworkURL    string `json:"artwork_url"`
	ArtworkURL100 string `json:"artworkUrl100"`
	Images        []struct {
		URL string `json:"url"`
	} `json:"images"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// normalizeArtistResults keeps entries that resolve an id, a name and a
// URL; anything else is unusable as a catalog selection and is dropped.
func normalizeArtistResults(raws []json.RawMessage) []ArtistResult {
	results := make([]ArtistResult, 0, len(raws))
	for _, raw := range raws {
		var r rawArtistResult
		if err := json.Unmarshal(raw, &r); err != nil {
			continue
		}

		id := firstNonEmpty(r.ID, r.SpotifyID, r.ArtistID, r.AppleMusicID)
		name := firstNonEmpty(r.Name, r.ArtistName, r.Title)
		link := firstNonEmpty(r.URL, r.SpotifyURL, r.ArtistURL, r.Href)
		if id == "" || name == "" || link == "" {
			continue
		}

		image := firstNonEmpty(r.Image, r.ImageURL, r.ArtworkURL, r.ArtworkURL100)
		if image == "" && len(r.Images) > 0 {
			image = r.Images[0].URL
		}

		results = append(results, ArtistResult{ID: id, Name: name, URL: link, Image: image})
	}
	return results
}
