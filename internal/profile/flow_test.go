package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepsForType(t *testing.T) {
	t.Run("Every sequence starts with the shared prefix", func(t *testing.T) {
		for _, ut := range []UserType{UserTypeWatcher, UserTypeVenue, UserTypeArtist} {
			steps := StepsForType(ut)
			assert.GreaterOrEqual(t, len(steps), 3)
			assert.Equal(t, StepChooseType, steps[0])
			assert.Equal(t, StepBase, steps[1])
		}
	})

	t.Run("No step repeats within a sequence", func(t *testing.T) {
		for _, ut := range []UserType{UserTypeWatcher, UserTypeVenue, UserTypeArtist} {
			seen := map[StepKey]bool{}
			for _, k := range StepsForType(ut) {
				assert.False(t, seen[k], "duplicate step %s for %s", k, ut)
				seen[k] = true
			}
		}
	})

	t.Run("Unknown type yields bootstrap sequence", func(t *testing.T) {
		assert.Equal(t, []StepKey{StepChooseType, StepBase}, StepsForType(""))
		assert.Equal(t, []StepKey{StepChooseType, StepBase}, StepsForType("promoter"))
	})

	t.Run("Artist sequence has five steps", func(t *testing.T) {
		assert.Equal(t, []StepKey{
			StepChooseType,
			StepBase,
			StepArtistDetails,
			StepArtistMusic,
			StepArtistSocialMedia,
		}, StepsForType(UserTypeArtist))
	})

	t.Run("Returned slice is a copy", func(t *testing.T) {
		steps := StepsForType(UserTypeWatcher)
		steps[0] = "mutated"
		assert.Equal(t, StepChooseType, StepsForType(UserTypeWatcher)[0])
	})
}

func TestStepIndex(t *testing.T) {
	assert.Equal(t, 0, StepIndex(UserTypeArtist, StepChooseType))
	assert.Equal(t, 1, StepIndex(UserTypeArtist, StepBase))
	assert.Equal(t, 3, StepIndex(UserTypeArtist, StepArtistMusic))
	assert.Equal(t, 2, StepIndex(UserTypeVenue, StepVenueDetails))

	t.Run("Absent key defaults to 0", func(t *testing.T) {
		assert.Equal(t, 0, StepIndex(UserTypeWatcher, StepArtistMusic))
		assert.Equal(t, 0, StepIndex("unknown", StepVenueDetails))
	})
}

func TestProgressHasCompleted(t *testing.T) {
	var p *Progress
	assert.False(t, p.HasCompleted(StepBase))

	p = &Progress{CompletedSteps: []StepKey{StepChooseType, StepBase}}
	assert.True(t, p.HasCompleted(StepBase))
	assert.False(t, p.HasCompleted(StepArtistDetails))
}

func TestUserProfileMerge(t *testing.T) {
	p := UserProfile{
		ID:   "u1",
		Type: UserTypeArtist,
		Name: "Old Name",
		Artist: &Artist{
			Bio: "old bio",
		},
	}

	p.Merge(UserProfile{
		Name:     "Astro",
		Progress: &Progress{NextStep: StepArtistDetails},
	})

	assert.Equal(t, "u1", p.ID)
	assert.Equal(t, UserTypeArtist, p.Type)
	assert.Equal(t, "Astro", p.Name)
	assert.Equal(t, "old bio", p.Artist.Bio)
	assert.Equal(t, StepArtistDetails, p.Progress.NextStep)

	// A present section replaces the cached one whole.
	p.Merge(UserProfile{Artist: &Artist{Bio: "new bio", Genres: []string{"pop"}}})
	assert.Equal(t, "new bio", p.Artist.Bio)
	assert.Equal(t, []string{"pop"}, p.Artist.Genres)
}
