package onboarding

import "github.com/skatuve/skatuve-client/internal/profile"

// Hydration fills a step form when it opens. Priority order: the draft
// loaded for this flow, then the stored profile section, then empty. Only
// venue_details and artist_music write drafts, so the other steps resolve
// straight from the profile.

// HydrateBase prefills the shared name/avatar step from the profile.
func (o *Orchestrator) HydrateBase() profile.BasePayload {
	return profile.BasePayload{
		Name:        o.user.Name,
		CountryCode: o.user.CountryCode,
		AvatarURL:   o.user.AvatarThumbURL,
	}
}

// HydrateWatcherPreferences prefills the watcher genre step.
func (o *Orchestrator) HydrateWatcherPreferences() profile.WatcherPreferencesPayload {
	return profile.WatcherPreferencesPayload{Genres: o.user.PreferredGenres}
}

// HydrateVenueDetails prefills the venue location step, preferring an
// unsaved draft over the stored profile.
func (o *Orchestrator) HydrateVenueDetails() profile.VenueDetailsPayload {
	var fromDraft profile.VenueDetailsPayload
	if o.draft.Decode(profile.StepVenueDetails, &fromDraft) {
		return fromDraft
	}

	v := o.user.Venue
	if v == nil {
		return profile.VenueDetailsPayload{}
	}

	out := profile.VenueDetailsPayload{Description: v.Description}
	if v.PlaceID != "" {
		out.Place = &profile.Place{
			PlaceID: v.PlaceID,
			Name:    v.Name,
			Address: v.Address,
			Lat:     v.Lat,
			Lng:     v.Lng,
			City:    v.City,
			Country: v.Country,
		}
	}
	return out
}

// HydrateArtistDetails prefills the artist genre/bio step.
func (o *Orchestrator) HydrateArtistDetails() profile.ArtistDetailsPayload {
	a := o.user.Artist
	if a == nil {
		return profile.ArtistDetailsPayload{}
	}
	return profile.ArtistDetailsPayload{Bio: a.Bio, Genres: a.Genres}
}

// HydrateArtistMusic prefills the music step, preferring an unsaved draft
// so a restart does not lose a picked catalog artist.
func (o *Orchestrator) HydrateArtistMusic() profile.MusicLinks {
	var fromDraft profile.MusicLinks
	if o.draft.Decode(profile.StepArtistMusic, &fromDraft) {
		return fromDraft
	}

	if a := o.user.Artist; a != nil && a.Music != nil {
		return *a.Music
	}
	return profile.MusicLinks{}
}

// HydrateSocial prefills either social media step from the profile.
func (o *Orchestrator) HydrateSocial() profile.SocialLinks {
	if o.user.SocialMedia != nil {
		return *o.user.SocialMedia
	}
	return profile.SocialLinks{}
}

// UpdateVenueDetailsDraft persists the venue form as the user edits it.
func (o *Orchestrator) UpdateVenueDetailsDraft(in profile.VenueDetailsPayload) {
	o.draft = o.drafts.SetStep(o.userID, profile.StepVenueDetails, in)
}

// UpdateArtistMusicDraft persists the music form as the user edits it.
func (o *Orchestrator) UpdateArtistMusicDraft(m profile.MusicLinks) {
	o.draft = o.drafts.SetStep(o.userID, profile.StepArtistMusic, m)
}

// DiscardDrafts wipes the user's draft namespace, for a profile reset or
// sign-out.
func (o *Orchestrator) DiscardDrafts() {
	o.drafts.ClearAll(o.userID)
	o.draft = o.drafts.Load(o.userID)
}
