package profile

// StepKey identifies one screen of the onboarding wizard.
type StepKey string

const (
	StepChooseType         StepKey = "choose_type"
	StepBase               StepKey = "base"
	StepWatcherPreferences StepKey = "watcher_preferences"
	StepVenueDetails       StepKey = "venue_details"
	StepVenueSocialMedia   StepKey = "venue_social_media"
	StepArtistDetails      StepKey = "artist_details"
	StepArtistMusic        StepKey = "artist_music"
	StepArtistSocialMedia  StepKey = "artist_social_media"
)

var stepsByType = map[UserType][]StepKey{
	UserTypeWatcher: {
		StepChooseType,
		StepBase,
		StepWatcherPreferences,
	},
	UserTypeVenue: {
		StepChooseType,
		StepBase,
		StepVenueDetails,
		StepVenueSocialMedia,
	},
	UserTypeArtist: {
		StepChooseType,
		StepBase,
		StepArtistDetails,
		StepArtistMusic,
		StepArtistSocialMedia,
	},
}

// Until a type is chosen only the shared prefix is known.
var bootstrapSteps = []StepKey{StepChooseType, StepBase}

// StepsForType returns the ordered step sequence for the given user type.
// An unknown or empty type yields the two-step bootstrap sequence.
func StepsForType(t UserType) []StepKey {
	steps, ok := stepsByType[t]
	if !ok {
		steps = bootstrapSteps
	}
	out := make([]StepKey, len(steps))
	copy(out, steps)
	return out
}

// StepIndex returns the position of key within the sequence for t.
// Absent keys and unknown types default to 0.
func StepIndex(t UserType, key StepKey) int {
	for i, k := range StepsForType(t) {
		if k == key {
			return i
		}
	}
	return 0
}
