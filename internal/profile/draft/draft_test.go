package draft

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skatuve/skatuve-client/internal/profile"
	"github.com/skatuve/skatuve-client/internal/storage"
)

// brokenStorage fails every operation.
type brokenStorage struct{}

func (brokenStorage) GetItem(string) (string, error) { return "", errors.New("disk gone") }
func (brokenStorage) SetItem(string, string) error   { return errors.New("disk gone") }
func (brokenStorage) RemoveItem(string) error        { return errors.New("disk gone") }

func newTestStore() (*Store, *storage.MemoryStorage) {
	st := storage.NewMemoryStorage()
	return NewStore(st, zerolog.Nop()), st
}

func TestKey(t *testing.T) {
	assert.Equal(t, "profile_draft_v1_42", Key("42"))
	assert.Equal(t, "profile_draft_v1_anon", Key(""))
}

func TestSetStepThenLoad(t *testing.T) {
	s, _ := newTestStore()

	s.SetStep("42", profile.StepVenueDetails, profile.VenueDetailsPayload{
		Place:       &profile.Place{PlaceID: "p1", Lat: 56.9, Lng: 24.1},
		Description: "cozy stage",
	})

	d := s.Load("42")
	require.True(t, d.Has(profile.StepVenueDetails))

	var got profile.VenueDetailsPayload
	require.True(t, d.Decode(profile.StepVenueDetails, &got))
	assert.Equal(t, "p1", got.Place.PlaceID)
	assert.Equal(t, "cozy stage", got.Description)
}

func TestSetStepReplacesWholeEntry(t *testing.T) {
	s, _ := newTestStore()

	s.SetStep("42", profile.StepArtistMusic, profile.MusicLinks{Spotify: "https://open.spotify.com/artist/1", YouTube: "https://youtube.com/@a"})
	s.SetStep("42", profile.StepArtistMusic, profile.MusicLinks{SoundCloud: "https://soundcloud.com/a"})

	var got profile.MusicLinks
	require.True(t, s.Load("42").Decode(profile.StepArtistMusic, &got))
	assert.Empty(t, got.Spotify, "entry is replaced, not merged")
	assert.Equal(t, "https://soundcloud.com/a", got.SoundCloud)
}

func TestClearStepKeepsOtherKeys(t *testing.T) {
	s, _ := newTestStore()

	s.SetStep("42", profile.StepVenueDetails, profile.VenueDetailsPayload{Description: "a"})
	s.SetStep("42", profile.StepArtistMusic, profile.MusicLinks{YouTube: "https://youtube.com/@a"})

	d := s.ClearStep("42", profile.StepVenueDetails)
	assert.False(t, d.Has(profile.StepVenueDetails))
	assert.True(t, d.Has(profile.StepArtistMusic))

	d = s.Load("42")
	assert.False(t, d.Has(profile.StepVenueDetails))
	assert.True(t, d.Has(profile.StepArtistMusic))
}

func TestClearAll(t *testing.T) {
	s, _ := newTestStore()

	s.SetStep("42", profile.StepArtistMusic, profile.MusicLinks{YouTube: "https://youtube.com/@a"})
	s.ClearAll("42")

	assert.Empty(t, s.Load("42"))
}

func TestNilValueStoredAsEmptyObject(t *testing.T) {
	s, _ := newTestStore()

	d := s.SetStep("42", profile.StepBase, nil)
	assert.JSONEq(t, "{}", string(d[profile.StepBase]))
}

func TestNamespacesAreIndependent(t *testing.T) {
	s, _ := newTestStore()

	s.SetStep("42", profile.StepBase, profile.BasePayload{Name: "Astro"})
	s.SetStep("", profile.StepBase, profile.BasePayload{Name: "Anon"})

	var a, b profile.BasePayload
	require.True(t, s.Load("42").Decode(profile.StepBase, &a))
	require.True(t, s.Load("").Decode(profile.StepBase, &b))
	assert.Equal(t, "Astro", a.Name)
	assert.Equal(t, "Anon", b.Name)
}

func TestUnparsableContentDegradesToEmpty(t *testing.T) {
	s, st := newTestStore()

	require.NoError(t, st.SetItem(Key("42"), "not json at all"))
	assert.Empty(t, s.Load("42"))

	// A write after a corrupt read starts from a clean draft.
	d := s.SetStep("42", profile.StepBase, profile.BasePayload{Name: "Astro"})
	assert.Len(t, d, 1)
}

func TestStorageFailureNeverPropagates(t *testing.T) {
	s := NewStore(brokenStorage{}, zerolog.Nop())

	assert.Empty(t, s.Load("42"))
	assert.NotPanics(t, func() {
		d := s.SetStep("42", profile.StepBase, profile.BasePayload{Name: "Astro"})
		// The returned draft still reflects the in-memory merge even though
		// persisting it failed.
		assert.True(t, d.Has(profile.StepBase))
		s.ClearStep("42", profile.StepBase)
		s.ClearAll("42")
	})
}

func TestDraftOverSQLiteSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts.db")

	st, err := storage.OpenSQLite(path)
	require.NoError(t, err)

	s := NewStore(st, zerolog.Nop())
	s.SetStep("42", profile.StepArtistMusic, profile.MusicLinks{
		Spotify:           "https://open.spotify.com/artist/1",
		SpotifyArtistID:   "1",
		SpotifyArtistName: "Astro",
	})
	require.NoError(t, st.Close())

	// Simulated app restart.
	st2, err := storage.OpenSQLite(path)
	require.NoError(t, err)
	defer st2.Close()

	var got profile.MusicLinks
	require.True(t, NewStore(st2, zerolog.Nop()).Load("42").Decode(profile.StepArtistMusic, &got))
	assert.Equal(t, "Astro", got.SpotifyArtistName)
}

func TestOldFormatKeySimplyMisses(t *testing.T) {
	s, st := newTestStore()

	// Data written under a previous version key is invisible to v1 reads.
	require.NoError(t, st.SetItem("profile_draft_v0_42", `{"base":{"name":"Old"}}`))
	assert.Empty(t, s.Load("42"))
}
