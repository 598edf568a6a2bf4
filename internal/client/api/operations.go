package api

import (
	"context"

	"github.com/skatuve/skatuve-client/internal/profile"
)

// SetType submits the user type choice. The server rejects changes after
// the first successful save.
func (c *Client) SetType(ctx context.Context, t profile.UserType) (*profile.UserProfile, error) {
	return c.postJSON(ctx, "/profile/set-type", map[string]profile.UserType{"type": t})
}

// SaveBase submits the shared base step. The avatar file, when present,
// travels as a multipart part alongside the text fields.
func (c *Client) SaveBase(ctx context.Context, in profile.BasePayload) (*profile.UserProfile, error) {
	fields := map[string]string{"name": in.Name}
	if in.CountryCode != "" {
		fields["country_code"] = in.CountryCode
	}

	var files []filePart
	if in.AvatarPath != "" {
		files = append(files, filePart{field: "avatar", path: in.AvatarPath, fileName: "avatar.jpg"})
	}

	return c.postMultipart(ctx, "/profile/base", fields, files)
}

// SaveWatcherPreferences submits a watcher's preferred genres.
func (c *Client) SaveWatcherPreferences(ctx context.Context, in profile.WatcherPreferencesPayload) (*profile.UserProfile, error) {
	return c.postJSON(ctx, "/profile/watcher-preferences", in)
}

type venueDetailsRequest struct {
	PlaceID     string  `json:"place_id"`
	Name        string  `json:"name,omitempty"`
	Address     string  `json:"address,omitempty"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	City        string  `json:"city,omitempty"`
	Country     string  `json:"country,omitempty"`
	Description string  `json:"description"`
}

// SaveVenueDetails submits the venue location step. The place fields are
// flattened into the wire shape the API expects.
func (c *Client) SaveVenueDetails(ctx context.Context, in profile.VenueDetailsPayload) (*profile.UserProfile, error) {
	req := venueDetailsRequest{Description: in.Description}
	if in.Place != nil {
		req.PlaceID = in.Place.PlaceID
		req.Name = in.Place.Name
		req.Address = in.Place.Address
		req.Lat = in.Place.Lat
		req.Lng = in.Place.Lng
		req.City = in.Place.City
		req.Country = in.Place.Country
	}
	return c.postJSON(ctx, "/profile/venue-details", req)
}

// SaveVenueSocialMedia submits the venue social links.
func (c *Client) SaveVenueSocialMedia(ctx context.Context, s profile.SocialLinks) (*profile.UserProfile, error) {
	return c.postJSON(ctx, "/profile/venue-social-media", s)
}

// SaveArtistDetails submits the artist genre/bio step.
func (c *Client) SaveArtistDetails(ctx context.Context, in profile.ArtistDetailsPayload) (*profile.UserProfile, error) {
	return c.postJSON(ctx, "/profile/artist-details", in)
}

// SaveArtistMusic submits the artist music step.
func (c *Client) SaveArtistMusic(ctx context.Context, m profile.MusicLinks) (*profile.UserProfile, error) {
	return c.postJSON(ctx, "/profile/artist-music", m)
}

// SaveArtistSocialMedia submits the artist social links.
func (c *Client) SaveArtistSocialMedia(ctx context.Context, s profile.SocialLinks) (*profile.UserProfile, error) {
	return c.postJSON(ctx, "/profile/artist-social-media", s)
}

// SaveArtistGallery uploads gallery images as multipart parts.
func (c *Client) SaveArtistGallery(ctx context.Context, in profile.GalleryPayload) (*profile.UserProfile, error) {
	files := make([]filePart, 0, len(in.ImagePaths))
	for _, p := range in.ImagePaths {
		files = append(files, filePart{field: "images", path: p})
	}
	return c.postMultipart(ctx, "/profile/artist-gallery", nil, files)
}

// FetchMe loads the current profile together with the server-computed
// onboarding progress. Called once per app entry to place the wizard.
func (c *Client) FetchMe(ctx context.Context) (*profile.UserProfile, error) {
	return c.getJSON(ctx, "/me")
}
