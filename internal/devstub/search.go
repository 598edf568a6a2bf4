package devstub

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/skatuve/skatuve-client/internal/profile"
)

// Fixture catalogs backing the search endpoints. Matching is a plain
// case-insensitive substring check, which is plenty for demos and tests.

type artistFixture struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Image string `json:"image,omitempty"`
}

var spotifyFixtures = []artistFixture{
	{ID: "sp-1", Name: "Astro", URL: "https://open.spotify.com/artist/sp-1", Image: "https://cdn.devstub.local/art/sp-1.jpg"},
	{ID: "sp-2", Name: "Astronaut Parade", URL: "https://open.spotify.com/artist/sp-2", Image: "https://cdn.devstub.local/art/sp-2.jpg"},
	{ID: "sp-3", Name: "Carnival Youth", URL: "https://open.spotify.com/artist/sp-3"},
	{ID: "sp-4", Name: "Instrumenti", URL: "https://open.spotify.com/artist/sp-4"},
}

var appleMusicFixtures = []artistFixture{
	{ID: "am-1", Name: "Astro", URL: "https://music.apple.com/artist/am-1", Image: "https://cdn.devstub.local/art/am-1.jpg"},
	{ID: "am-2", Name: "Carnival Youth", URL: "https://music.apple.com/artist/am-2"},
}

var placeFixtures = []profile.Place{
	{PlaceID: "pl-1", Name: "Zeit", Address: "Valmieras iela 20, Riga", Lat: 56.9465, Lng: 24.1342, City: "Riga", Country: "LV"},
	{PlaceID: "pl-2", Name: "Depo", Address: "Valnu iela 32, Riga", Lat: 56.9478, Lng: 24.1123, City: "Riga", Country: "LV"},
	{PlaceID: "pl-3", Name: "Kanepes Kulturas Centrs", Address: "Skolas iela 15, Riga", Lat: 56.9556, Lng: 24.1189, City: "Riga", Country: "LV"},
}

func matchArtists(catalog []artistFixture, query string) []artistFixture {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []artistFixture{}
	if len(q) < 2 {
		return out
	}
	for _, a := range catalog {
		if strings.Contains(strings.ToLower(a.Name), q) {
			out = append(out, a)
		}
	}
	return out
}

type searchEnvelope struct {
	Success bool `json:"success"`
	Results any  `json:"results"`
}

func writeSearchResults(w http.ResponseWriter, results any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(searchEnvelope{Success: true, Results: results})
}

func (h *Handler) handleSpotifySearch(w http.ResponseWriter, r *http.Request, _ *profile.UserProfile) {
	writeSearchResults(w, matchArtists(spotifyFixtures, r.URL.Query().Get("query")))
}

func (h *Handler) handleAppleMusicSearch(w http.ResponseWriter, r *http.Request, _ *profile.UserProfile) {
	if r.URL.Query().Get("country") == "" {
		writeRejection(w, http.StatusBadRequest, "country is required")
		return
	}
	writeSearchResults(w, matchArtists(appleMusicFixtures, r.URL.Query().Get("query")))
}

func (h *Handler) handlePlaceSearch(w http.ResponseWriter, r *http.Request, _ *profile.UserProfile) {
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("query")))
	out := []profile.Place{}
	if len(q) >= 2 {
		for _, p := range placeFixtures {
			if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Address), q) {
				out = append(out, p)
			}
		}
	}
	writeSearchResults(w, out)
}
