// Package validation holds the per-step rule sets of the onboarding
// wizard. Validators are pure: they read already-normalized fields and
// report an ordered error list. Only the first error is ever surfaced to
// the user, so the rule-check order below is a contract.
package validation

import (
	"math"
	"strings"

	"github.com/skatuve/skatuve-client/internal/profile"
	"github.com/skatuve/skatuve-client/internal/profile/links"
)

// Load-bearing thresholds. The server enforces its own copies; these exist
// for immediate UX feedback and must match.
const (
	MinGenres    = 1
	MaxGenres    = 3
	MinBioLength = 20
	MaxBioLength = 1200
)

const (
	msgNameRequired       = "Name is required."
	msgAvatarRequired     = "A profile photo is required."
	msgGenreRequired      = "Please select at least one genre."
	msgGenreLimit         = "You can select at most 3 genres."
	msgGenreUnknown       = "Unknown genre selected."
	msgBioTooShort        = "Biography must be at least 20 characters."
	msgBioTooLong         = "Biography must be at most 1200 characters."
	msgMusicRequired      = "Please add at least one music profile."
	msgSocialRequired     = "Please add at least one social link."
	msgPlaceRequired      = "Please pick a place from the list."
	msgPlaceCoordsInvalid = "The selected place has no usable coordinates."
	msgDescriptionNeeded  = "Description is required."
)

// Result is the outcome of validating one step's form state.
type Result struct {
	Valid  bool
	Errors []string
}

// FirstError returns the first rule violation, or "" when valid.
func (r Result) FirstError() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0]
}

func result(errs []string) Result {
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// BaseInput is the base step's form state plus the already-chosen user
// type, which decides whether an avatar is mandatory.
type BaseInput struct {
	Name        string
	AvatarPath  string
	AvatarURL   string
	CountryCode string
	UserType    profile.UserType
}

// ValidateBase checks the shared name/avatar step. Watchers may skip the
// avatar; everyone else needs either a local file or a stored one.
func ValidateBase(in BaseInput) Result {
	var errs []string

	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, msgNameRequired)
	}

	avatarRequired := in.UserType != profile.UserTypeWatcher
	if avatarRequired && in.AvatarPath == "" && in.AvatarURL == "" {
		errs = append(errs, msgAvatarRequired)
	}

	return result(errs)
}

// ValidateArtistDetails checks the genre/bio step: 1-3 known genres and a
// trimmed biography of 20-1200 characters.
func ValidateArtistDetails(in profile.ArtistDetailsPayload) Result {
	var errs []string

	if len(in.Genres) < MinGenres {
		errs = append(errs, msgGenreRequired)
	}
	if len(in.Genres) > MaxGenres {
		errs = append(errs, msgGenreLimit)
	}
	for _, g := range in.Genres {
		if !IsKnownGenre(g) {
			errs = append(errs, msgGenreUnknown)
			break
		}
	}

	trimmedLen := len([]rune(strings.TrimSpace(in.Bio)))
	if trimmedLen < MinBioLength {
		errs = append(errs, msgBioTooShort)
	}
	if trimmedLen > MaxBioLength {
		errs = append(errs, msgBioTooLong)
	}

	return result(errs)
}

// ValidateWatcherPreferences requires at least one known preferred genre.
func ValidateWatcherPreferences(in profile.WatcherPreferencesPayload) Result {
	var errs []string

	if len(in.Genres) < MinGenres {
		errs = append(errs, msgGenreRequired)
	}
	for _, g := range in.Genres {
		if !IsKnownGenre(g) {
			errs = append(errs, msgGenreUnknown)
			break
		}
	}

	return result(errs)
}

// ValidateArtistMusic requires at least one filled entry across the
// catalog selections and the normalized free-text links.
func ValidateArtistMusic(m profile.MusicLinks) Result {
	var errs []string

	if links.CountFilledMusic(m) < 1 {
		errs = append(errs, msgMusicRequired)
	}

	return result(errs)
}

// ValidateSocial requires at least one filled social link after
// normalization. Shared by the artist and venue social steps.
func ValidateSocial(s profile.SocialLinks) Result {
	var errs []string

	if links.CountFilledSocial(s) < 1 {
		errs = append(errs, msgSocialRequired)
	}

	return result(errs)
}

// ValidateVenueDetails gates on a selected place, not on typed text: a
// place with an id and usable coordinates must have been picked from the
// lookup, and the description must be non-empty after trimming.
func ValidateVenueDetails(in profile.VenueDetailsPayload) Result {
	var errs []string

	switch {
	case in.Place == nil || in.Place.PlaceID == "":
		errs = append(errs, msgPlaceRequired)
	case !validCoords(in.Place.Lat, in.Place.Lng):
		errs = append(errs, msgPlaceCoordsInvalid)
	}

	if strings.TrimSpace(in.Description) == "" {
		errs = append(errs, msgDescriptionNeeded)
	}

	return result(errs)
}

func validCoords(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
