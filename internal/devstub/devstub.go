// Package devstub is an in-memory backend implementing the same HTTP
// contract the real API serves. It exists so the client, the integration
// tests and local demos can run without the production stack.
package devstub

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/skatuve/skatuve-client/internal/profile"
)

const maxUploadBytes = 8 << 20

// Handler serves the stub API. Profiles are keyed by bearer token; any
// non-empty token is accepted and lazily gets a fresh profile.
type Handler struct {
	log zerolog.Logger

	mu       sync.Mutex
	profiles map[string]*profile.UserProfile
}

// NewHandler creates an empty stub backend.
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{
		log:      log,
		profiles: make(map[string]*profile.UserProfile),
	}
}

// Router builds the chi router with all stub routes mounted under /api.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/me", h.auth(h.handleMe))

		r.Route("/profile", func(r chi.Router) {
			r.Post("/set-type", h.auth(h.handleSetType))
			r.Post("/base", h.auth(h.handleBase))
			r.Post("/watcher-preferences", h.auth(h.handleWatcherPreferences))
			r.Post("/venue-details", h.auth(h.handleVenueDetails))
			r.Post("/venue-social-media", h.auth(h.handleSocialMedia))
			r.Post("/artist-details", h.auth(h.handleArtistDetails))
			r.Post("/artist-music", h.auth(h.handleArtistMusic))
			r.Post("/artist-social-media", h.auth(h.handleSocialMedia))
			r.Post("/artist-gallery", h.auth(h.handleArtistGallery))
		})

		r.Get("/spotify/artists/search", h.auth(h.handleSpotifySearch))
		r.Get("/apple-music/artists", h.auth(h.handleAppleMusicSearch))
		r.Get("/places/search", h.auth(h.handlePlaceSearch))
	})

	return r
}

type envelope struct {
	Success bool   `json:"success"`
	Payload any    `json:"payload,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeRejection(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// auth resolves the profile for the request's bearer token and passes it
// on. Tokens double as user ids, which is all a stub needs.
func (h *Handler) auth(next func(http.ResponseWriter, *http.Request, *profile.UserProfile)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			writeRejection(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		h.mu.Lock()
		defer h.mu.Unlock()

		p, ok := h.profiles[token]
		if !ok {
			p = &profile.UserProfile{ID: token}
			h.profiles[token] = p
		}
		next(w, r, p)
	}
}

// refreshProgress recomputes the server-side progress record after a
// mutation. A step is completed when its data is present; the next step is
// the first uncompleted one.
func refreshProgress(p *profile.UserProfile) {
	completed := []profile.StepKey{}
	done := func(key profile.StepKey) bool {
		switch key {
		case profile.StepChooseType:
			return p.Type != ""
		case profile.StepBase:
			return p.Name != ""
		case profile.StepWatcherPreferences:
			return len(p.PreferredGenres) > 0
		case profile.StepVenueDetails:
			return p.Venue != nil && p.Venue.PlaceID != ""
		case profile.StepVenueSocialMedia, profile.StepArtistSocialMedia:
			return p.SocialMedia != nil
		case profile.StepArtistDetails:
			return p.Artist != nil && len(p.Artist.Genres) > 0
		case profile.StepArtistMusic:
			return p.Artist != nil && p.Artist.Music != nil
		}
		return false
	}

	steps := profile.StepsForType(p.Type)
	var next profile.StepKey
	for _, key := range steps {
		if done(key) {
			completed = append(completed, key)
		} else if next == "" {
			next = key
		}
	}

	p.Progress = &profile.Progress{
		IsCompleted:    p.Type != "" && next == "",
		NextStep:       next,
		CompletedSteps: completed,
	}
}

func (h *Handler) respond(w http.ResponseWriter, p *profile.UserProfile) {
	refreshProgress(p)
	writeJSON(w, http.StatusOK, envelope{Success: true, Payload: p})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request, p *profile.UserProfile) {
	h.respond(w, p)
}

func (h *Handler) handleSetType(w http.ResponseWriter, r *http.Request, p *profile.UserProfile) {
	var body struct {
		Type profile.UserType `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !body.Type.Valid() {
		writeRejection(w, http.StatusBadRequest, "unknown profile type")
		return
	}
	if p.Type != "" && p.Type != body.Type {
		writeRejection(w, http.StatusConflict, "type already set")
		return
	}

	p.Type = body.Type
	h.respond(w, p)
}

func (h *Handler) handleBase(w http.ResponseWriter, r *http.Request, p *profile.UserProfile) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeRejection(w, http.StatusBadRequest, "expected multipart form")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		writeRejection(w, http.StatusUnprocessableEntity, "name is required")
		return
	}

	p.Name = name
	if cc := r.FormValue("country_code"); cc != "" {
		p.CountryCode = cc
	}

	if file, _, err := r.FormFile("avatar"); err == nil {
		io.Copy(io.Discard, file)
		file.Close()
		id := uuid.NewString()
		p.AvatarThumbURL = "https://cdn.devstub.local/avatars/" + id + "_thumb.jpg"
		p.AvatarFullURL = "https://cdn.devstub.local/avatars/" + id + ".jpg"
	} else if p.AvatarThumbURL == "" && p.Type != profile.UserTypeWatcher {
		writeRejection(w, http.StatusUnprocessableEntity, "avatar is required")
		return
	}

	h.respond(w, p)
}

func (h *Handler) handleWatcherPreferences(w http.ResponseWriter, r *http.Request, p *profile.UserProfile) {
	var body struct {
		Genres []string `json:"genres"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Genres) == 0 {
		writeRejection(w, http.StatusUnprocessableEntity, "at least one genre is required")
		return
	}

	p.PreferredGenres = body.Genres
	h.respond(w, p)
}

func (h *Handler) handleVenueDetails(w http.ResponseWriter, r *http.Request, p *profile.UserProfile) {
	var body struct {
		PlaceID     string  `json:"place_id"`
		Name        string  `json:"name"`
		Address     string  `json:"address"`
		Lat         float64 `json:"lat"`
		Lng         float64 `json:"lng"`
		City        string  `json:"city"`
		Country     string  `json:"country"`
		Description string  `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.PlaceID == "" {
		writeRejection(w, http.StatusUnprocessableEntity, "a selected place is required")
		return
	}

	p.Venue = &profile.Venue{
		PlaceID:     body.PlaceID,
		Name:        body.Name,
		Address:     body.Address,
		Lat:         body.Lat,
		Lng:         body.Lng,
		City:        body.City,
		Country:     body.Country,
		Description: body.Description,
	}
	h.respond(w, p)
}

func (h *Handler) handleSocialMedia(w http.ResponseWriter, r *http.Request, p *profile.UserProfile) {
	var body profile.SocialLinks
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeRejection(w, http.StatusBadRequest, "malformed body")
		return
	}
	if body == (profile.SocialLinks{}) {
		writeRejection(w, http.StatusUnprocessableEntity, "at least one social link is required")
		return
	}

	p.SocialMedia = &body
	h.respond(w, p)
}

func (h *Handler) handleArtistDetails(w http.ResponseWriter, r *http.Request, p *profile.UserProfile) {
	var body struct {
		Bio    string   `json:"bio"`
		Genres []string `json:"genres"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Genres) == 0 {
		writeRejection(w, http.StatusUnprocessableEntity, "at least one genre is required")
		return
	}

	if p.Artist == nil {
		p.Artist = &profile.Artist{}
	}
	p.Artist.Bio = body.Bio
	p.Artist.Genres = body.Genres
	h.respond(w, p)
}

func (h *Handler) handleArtistMusic(w http.ResponseWriter, r *http.Request, p *profile.UserProfile) {
	var body profile.MusicLinks
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeRejection(w, http.StatusBadRequest, "malformed body")
		return
	}
	if body == (profile.MusicLinks{}) {
		writeRejection(w, http.StatusUnprocessableEntity, "at least one music link is required")
		return
	}

	if p.Artist == nil {
		p.Artist = &profile.Artist{}
	}
	p.Artist.Music = &body
	h.respond(w, p)
}

func (h *Handler) handleArtistGallery(w http.ResponseWriter, r *http.Request, p *profile.UserProfile) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeRejection(w, http.StatusBadRequest, "expected multipart form")
		return
	}

	if p.Artist == nil {
		p.Artist = &profile.Artist{}
	}

	form := r.MultipartForm
	for _, header := range form.File["images"] {
		file, err := header.Open()
		if err != nil {
			continue
		}
		io.Copy(io.Discard, file)
		file.Close()

		id := uuid.NewString()
		p.Artist.Gallery = append(p.Artist.Gallery, profile.Image{
			ID:  id,
			URL: "https://cdn.devstub.local/gallery/" + id + ".jpg",
		})
	}

	h.respond(w, p)
}
