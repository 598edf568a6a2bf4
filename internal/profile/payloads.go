package profile

// Per-step payload schemas. Draft entries and gateway submissions are a
// tagged union over StepKey: each step persists and submits exactly one of
// these shapes, never a mix.

// BasePayload carries the shared base step. AvatarPath points at a local
// file to upload; AvatarURL is a previously stored avatar that satisfies
// the requirement without re-uploading.
type BasePayload struct {
	Name        string `json:"name"`
	CountryCode string `json:"country_code,omitempty"`
	AvatarPath  string `json:"avatar_path,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// WatcherPreferencesPayload carries a watcher's preferred genres.
type WatcherPreferencesPayload struct {
	Genres []string `json:"genres"`
}

// ArtistDetailsPayload carries the artist genre/bio step.
type ArtistDetailsPayload struct {
	Bio    string   `json:"bio"`
	Genres []string `json:"genres"`
}

// VenueDetailsPayload carries the venue location step. Place stays nil
// until the user picks a lookup result.
type VenueDetailsPayload struct {
	Place       *Place `json:"place,omitempty"`
	Description string `json:"description"`
}

// GalleryPayload carries local image files for a gallery upload.
type GalleryPayload struct {
	ImagePaths []string `json:"image_paths"`
}
