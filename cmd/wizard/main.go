// Command wizard walks the profile onboarding flow in the terminal against
// a running backend (the devstub or the real API). It exercises the full
// client stack: token storage, draft persistence, validation, submission.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/skatuve/skatuve-client/internal/client/api"
	"github.com/skatuve/skatuve-client/internal/client/lookup"
	"github.com/skatuve/skatuve-client/internal/config"
	"github.com/skatuve/skatuve-client/internal/logger"
	"github.com/skatuve/skatuve-client/internal/onboarding"
	"github.com/skatuve/skatuve-client/internal/profile"
	"github.com/skatuve/skatuve-client/internal/profile/draft"
	"github.com/skatuve/skatuve-client/internal/profile/validation"
	"github.com/skatuve/skatuve-client/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Environment)

	store, err := storage.OpenSQLite(cfg.DraftDBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open local storage")
	}
	defer store.Close()

	tokens := api.NewStorageTokenSource(store)
	in := bufio.NewScanner(os.Stdin)

	if tokens.Token() == "" {
		token := prompt(in, "API token")
		if token == "" {
			log.Fatal().Msg("a token is required")
		}
		if err := tokens.SetToken(token); err != nil {
			log.Fatal().Err(err).Msg("store token")
		}
	}

	client := api.NewClient(cfg.APIBaseURL, tokens, cfg.HTTPTimeout, log)
	search := lookup.NewClient(cfg.APIBaseURL, tokens, cfg.HTTPTimeout, log)
	drafts := draft.NewStore(store, log)

	ctx := context.Background()
	user, err := client.FetchMe(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load profile")
	}
	if user.ID == "" {
		user.ID = api.UserIDFromToken(tokens.Token())
	}

	flow := onboarding.New(client, drafts, user, log)
	if flow.Finished() {
		fmt.Println("Profile already completed. Nothing to do.")
		return
	}

	w := &wizard{in: in, ctx: ctx, flow: flow, search: search, country: cfg.DefaultCountry}
	w.run()
}

type wizard struct {
	in      *bufio.Scanner
	ctx     context.Context
	flow    *onboarding.Orchestrator
	search  *lookup.Client
	country string
}

func (w *wizard) run() {
	for !w.flow.Finished() {
		step := w.flow.CurrentStep()
		fmt.Printf("\n== %s ==\n", step)

		var err error
		switch step {
		case profile.StepChooseType:
			err = w.chooseType()
		case profile.StepBase:
			err = w.base()
		case profile.StepWatcherPreferences:
			err = w.watcherPreferences()
		case profile.StepVenueDetails:
			err = w.venueDetails()
		case profile.StepVenueSocialMedia, profile.StepArtistSocialMedia:
			err = w.socialMedia(step)
		case profile.StepArtistDetails:
			err = w.artistDetails()
		case profile.StepArtistMusic:
			err = w.artistMusic()
		default:
			fmt.Println("unknown step, stopping")
			return
		}

		if err != nil {
			fmt.Println("  !", err)
		}
	}
	fmt.Println("\nProfile complete.")
}

func (w *wizard) chooseType() error {
	t := profile.UserType(prompt(w.in, "Profile type (watcher/venue/artist)"))
	return w.flow.SubmitChooseType(w.ctx, t)
}

func (w *wizard) base() error {
	current := w.flow.HydrateBase()
	in := profile.BasePayload{
		Name:        promptDefault(w.in, "Name", current.Name),
		CountryCode: promptDefault(w.in, "Country code", current.CountryCode),
		AvatarURL:   current.AvatarURL,
	}
	if path := prompt(w.in, "Avatar file path (empty to keep current)"); path != "" {
		in.AvatarPath = path
	}
	return w.flow.SubmitBase(w.ctx, in)
}

func (w *wizard) watcherPreferences() error {
	fmt.Println("  Genres:", strings.Join(validation.GenreCatalog, ", "))
	genres := splitList(prompt(w.in, "Preferred genres (comma separated)"))
	return w.flow.SubmitWatcherPreferences(w.ctx, profile.WatcherPreferencesPayload{Genres: genres})
}

func (w *wizard) venueDetails() error {
	in := w.flow.HydrateVenueDetails()
	if in.Place != nil {
		fmt.Println("  Current place:", in.Place.Name)
	}

	if query := prompt(w.in, "Search place (empty to keep current)"); query != "" {
		places, err := w.search.SearchPlaces(w.ctx, query)
		if err != nil {
			return err
		}
		if pick := pickPlace(w.in, places); pick != nil {
			in.Place = pick
		}
	}

	in.Description = promptDefault(w.in, "Description", in.Description)
	w.flow.UpdateVenueDetailsDraft(in)
	return w.flow.SubmitVenueDetails(w.ctx, in)
}

func (w *wizard) socialMedia(step profile.StepKey) error {
	current := w.flow.HydrateSocial()
	links := profile.SocialLinks{
		Instagram: promptDefault(w.in, "Instagram", current.Instagram),
		TikTok:    promptDefault(w.in, "TikTok", current.TikTok),
		Facebook:  promptDefault(w.in, "Facebook", current.Facebook),
		Website:   promptDefault(w.in, "Website", current.Website),
	}
	if step == profile.StepVenueSocialMedia {
		return w.flow.SubmitVenueSocialMedia(w.ctx, links)
	}
	return w.flow.SubmitArtistSocialMedia(w.ctx, links)
}

func (w *wizard) artistDetails() error {
	in := w.flow.HydrateArtistDetails()
	fmt.Println("  Genres:", strings.Join(validation.GenreCatalog, ", "))
	if genres := splitList(prompt(w.in, "Genres (comma separated, up to 3)")); len(genres) > 0 {
		in.Genres = genres
	}
	in.Bio = promptDefault(w.in, "Bio (min 20 characters)", in.Bio)
	if runes := []rune(in.Bio); len(runes) > validation.MaxBioLength {
		in.Bio = string(runes[:validation.MaxBioLength])
	}
	return w.flow.SubmitArtistDetails(w.ctx, in)
}

func (w *wizard) artistMusic() error {
	in := w.flow.HydrateArtistMusic()
	if in.SpotifyArtistName != "" {
		fmt.Println("  Current Spotify artist:", in.SpotifyArtistName)
	}

	if query := prompt(w.in, "Search Spotify artist (empty to skip)"); query != "" {
		results, err := w.search.SearchSpotifyArtists(w.ctx, query)
		if err != nil {
			return err
		}
		if pick := pickArtist(w.in, results); pick != nil {
			in.Spotify = pick.URL
			in.SpotifyArtistID = pick.ID
			in.SpotifyArtistName = pick.Name
			in.SpotifyArtistImage = pick.Image
			w.flow.UpdateArtistMusicDraft(in)
		}
	}

	in.YouTube = promptDefault(w.in, "YouTube", in.YouTube)
	in.SoundCloud = promptDefault(w.in, "SoundCloud", in.SoundCloud)
	in.Bandcamp = promptDefault(w.in, "Bandcamp", in.Bandcamp)
	w.flow.UpdateArtistMusicDraft(in)
	return w.flow.SubmitArtistMusic(w.ctx, in)
}

func pickArtist(in *bufio.Scanner, results []lookup.ArtistResult) *lookup.ArtistResult {
	if len(results) == 0 {
		fmt.Println("  no matches")
		return nil
	}
	for i, r := range results {
		fmt.Printf("  [%d] %s\n", i+1, r.Name)
	}
	var idx int
	if _, err := fmt.Sscanf(prompt(in, "Pick"), "%d", &idx); err != nil || idx < 1 || idx > len(results) {
		return nil
	}
	return &results[idx-1]
}

func pickPlace(in *bufio.Scanner, places []profile.Place) *profile.Place {
	if len(places) == 0 {
		fmt.Println("  no matches")
		return nil
	}
	for i, p := range places {
		fmt.Printf("  [%d] %s, %s\n", i+1, p.Name, p.Address)
	}
	var idx int
	if _, err := fmt.Sscanf(prompt(in, "Pick"), "%d", &idx); err != nil || idx < 1 || idx > len(places) {
		return nil
	}
	return &places[idx-1]
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Printf("%s: ", label)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

func promptDefault(in *bufio.Scanner, label, current string) string {
	if current != "" {
		label = fmt.Sprintf("%s [%s]", label, current)
	}
	value := prompt(in, label)
	if value == "" {
		return current
	}
	return value
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
