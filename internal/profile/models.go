package profile

// UserType is the account variant chosen on the first onboarding step.
// The server never allows it to change after the first successful save.
type UserType string

const (
	UserTypeWatcher UserType = "watcher"
	UserTypeVenue   UserType = "venue"
	UserTypeArtist  UserType = "artist"
)

// Valid reports whether t is one of the known account variants.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeWatcher, UserTypeVenue, UserTypeArtist:
		return true
	}
	return false
}

// Image represents a stored image reference returned by the API.
type Image struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url"`
}

// Place represents a location picked from a place-lookup result.
// Free text never produces a Place; only a lookup selection does.
type Place struct {
	PlaceID string  `json:"place_id"`
	Name    string  `json:"name,omitempty"`
	Address string  `json:"address,omitempty"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	City    string  `json:"city,omitempty"`
	Country string  `json:"country,omitempty"`
}

// SocialLinks holds the social link family shared by artists and venues.
type SocialLinks struct {
	Instagram string `json:"instagram,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Website   string `json:"website,omitempty"`
}

// MusicLinks holds an artist's music presence. The catalog platforms
// (Spotify, Apple Music) carry the selected search result verbatim; the
// plain link platforms are normalized free text.
type MusicLinks struct {
	Spotify               string `json:"spotify,omitempty"`
	SpotifyArtistID       string `json:"spotify_artist_id,omitempty"`
	SpotifyArtistName     string `json:"spotify_artist_name,omitempty"`
	SpotifyArtistImage    string `json:"spotify_artist_image,omitempty"`
	AppleMusic            string `json:"apple_music,omitempty"`
	AppleMusicArtistID    string `json:"apple_music_artist_id,omitempty"`
	AppleMusicArtistName  string `json:"apple_music_artist_name,omitempty"`
	AppleMusicArtistImage string `json:"apple_music_artist_image,omitempty"`
	YouTube               string `json:"youtube,omitempty"`
	SoundCloud            string `json:"soundcloud,omitempty"`
	Bandcamp              string `json:"bandcamp,omitempty"`
}

// Artist holds the artist-specific profile section.
type Artist struct {
	Bio     string      `json:"bio,omitempty"`
	Genres  []string    `json:"genres,omitempty"`
	Music   *MusicLinks `json:"music,omitempty"`
	Gallery []Image     `json:"gallery,omitempty"`
}

// Venue holds the venue-specific profile section.
type Venue struct {
	PlaceID     string  `json:"place_id,omitempty"`
	Name        string  `json:"name,omitempty"`
	Address     string  `json:"address,omitempty"`
	Lat         float64 `json:"lat,omitempty"`
	Lng         float64 `json:"lng,omitempty"`
	City        string  `json:"city,omitempty"`
	Country     string  `json:"country,omitempty"`
	Description string  `json:"description,omitempty"`
}

// Progress is the server-computed onboarding progress. The client never
// derives completion on its own; this record drives initial placement.
type Progress struct {
	IsCompleted    bool      `json:"is_completed"`
	NextStep       StepKey   `json:"next_step,omitempty"`
	CompletedSteps []StepKey `json:"completed_steps,omitempty"`
}

// HasCompleted reports whether key is in the completed set.
func (p *Progress) HasCompleted(key StepKey) bool {
	if p == nil {
		return false
	}
	for _, k := range p.CompletedSteps {
		if k == key {
			return true
		}
	}
	return false
}

// UserProfile is the locally cached copy of the remote profile. It is an
// append-only merge target: each successful step submission returns fields
// that are shallow-merged into it.
type UserProfile struct {
	ID              string       `json:"id,omitempty"`
	Type            UserType     `json:"type,omitempty"`
	Name            string       `json:"name,omitempty"`
	CountryCode     string       `json:"country_code,omitempty"`
	AvatarThumbURL  string       `json:"avatar_thumb_url,omitempty"`
	AvatarFullURL   string       `json:"avatar_full_url,omitempty"`
	SocialMedia     *SocialLinks `json:"social_media,omitempty"`
	PreferredGenres []string     `json:"preferred_genres,omitempty"`
	Artist          *Artist      `json:"artist,omitempty"`
	Venue           *Venue       `json:"venue,omitempty"`
	Progress        *Progress    `json:"profile_progress,omitempty"`
}

// Merge shallow-merges non-zero fields of update into p. Sections arrive
// whole from the server, so each present section replaces the cached one.
func (p *UserProfile) Merge(update UserProfile) {
	if update.ID != "" {
		p.ID = update.ID
	}
	if update.Type != "" {
		p.Type = update.Type
	}
	if update.Name != "" {
		p.Name = update.Name
	}
	if update.CountryCode != "" {
		p.CountryCode = update.CountryCode
	}
	if update.AvatarThumbURL != "" {
		p.AvatarThumbURL = update.AvatarThumbURL
	}
	if update.AvatarFullURL != "" {
		p.AvatarFullURL = update.AvatarFullURL
	}
	if update.SocialMedia != nil {
		p.SocialMedia = update.SocialMedia
	}
	if update.PreferredGenres != nil {
		p.PreferredGenres = update.PreferredGenres
	}
	if update.Artist != nil {
		p.Artist = update.Artist
	}
	if update.Venue != nil {
		p.Venue = update.Venue
	}
	if update.Progress != nil {
		p.Progress = update.Progress
	}
}
