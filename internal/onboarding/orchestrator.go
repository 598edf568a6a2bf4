// Package onboarding drives the multi-step, type-branching profile
// creation flow. The orchestrator owns the step pointer, the draft cache
// and the local profile copy while the flow is active; the server owns the
// truth and computes completion.
package onboarding

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/skatuve/skatuve-client/internal/profile"
	"github.com/skatuve/skatuve-client/internal/profile/draft"
	"github.com/skatuve/skatuve-client/internal/profile/links"
	"github.com/skatuve/skatuve-client/internal/profile/validation"
)

var (
	// ErrSubmissionInFlight rejects a submit while another is outstanding.
	// The lock is flow-wide: only one step is ever active at a time.
	ErrSubmissionInFlight = errors.New("onboarding: submission already in progress")

	// ErrFlowFinished rejects operations after the sequence completed.
	ErrFlowFinished = errors.New("onboarding: flow already finished")

	// ErrStepNotNavigable rejects navigation to a step that is neither the
	// current one nor already completed.
	ErrStepNotNavigable = errors.New("onboarding: step not reachable yet")
)

// ValidationError carries a failed local validation. It never reaches the
// network: the gateway is only called for valid payloads.
type ValidationError struct {
	Result validation.Result
}

func (e *ValidationError) Error() string {
	if msg := e.Result.FirstError(); msg != "" {
		return msg
	}
	return "validation failed"
}

// Gateway is the remote submission capability, one operation per step.
type Gateway interface {
	SetType(ctx context.Context, t profile.UserType) (*profile.UserProfile, error)
	SaveBase(ctx context.Context, in profile.BasePayload) (*profile.UserProfile, error)
	SaveWatcherPreferences(ctx context.Context, in profile.WatcherPreferencesPayload) (*profile.UserProfile, error)
	SaveVenueDetails(ctx context.Context, in profile.VenueDetailsPayload) (*profile.UserProfile, error)
	SaveVenueSocialMedia(ctx context.Context, s profile.SocialLinks) (*profile.UserProfile, error)
	SaveArtistDetails(ctx context.Context, in profile.ArtistDetailsPayload) (*profile.UserProfile, error)
	SaveArtistMusic(ctx context.Context, m profile.MusicLinks) (*profile.UserProfile, error)
	SaveArtistSocialMedia(ctx context.Context, s profile.SocialLinks) (*profile.UserProfile, error)
}

// DraftStore is the local draft capability.
type DraftStore interface {
	Load(userID string) draft.Draft
	SetStep(userID string, key profile.StepKey, value any) draft.Draft
	ClearStep(userID string, key profile.StepKey) draft.Draft
	ClearAll(userID string)
}

// Orchestrator is the onboarding state machine. It is not safe for
// concurrent use; the flow is UI-event driven and single-threaded.
type Orchestrator struct {
	gateway Gateway
	drafts  DraftStore
	log     zerolog.Logger

	userID   string
	user     *profile.UserProfile
	steps    []profile.StepKey
	index    int
	frontier int
	draft    draft.Draft
	saving   bool
	finished bool
}

// New builds an orchestrator around the given capabilities and the profile
// loaded at app entry. Initial placement comes from the server-computed
// progress; the orchestrator never infers progress from local data.
func New(gateway Gateway, drafts DraftStore, user *profile.UserProfile, log zerolog.Logger) *Orchestrator {
	if user == nil {
		user = &profile.UserProfile{}
	}

	o := &Orchestrator{
		gateway: gateway,
		drafts:  drafts,
		log:     log,
		userID:  user.ID,
		user:    user,
		steps:   profile.StepsForType(user.Type),
	}

	if p := user.Progress; p != nil {
		if p.IsCompleted {
			o.finished = true
		} else if p.NextStep != "" {
			o.index = profile.StepIndex(user.Type, p.NextStep)
		}
	}
	o.frontier = o.index

	o.draft = drafts.Load(o.userID)
	return o
}

// Steps returns the current step sequence.
func (o *Orchestrator) Steps() []profile.StepKey {
	out := make([]profile.StepKey, len(o.steps))
	copy(out, o.steps)
	return out
}

// CurrentIndex returns the step pointer.
func (o *Orchestrator) CurrentIndex() int { return o.index }

// CurrentStep returns the active step key, defaulting to choose_type when
// the pointer is somehow out of range.
func (o *Orchestrator) CurrentStep() profile.StepKey {
	if o.index < 0 || o.index >= len(o.steps) {
		return profile.StepChooseType
	}
	return o.steps[o.index]
}

// Finished reports whether the flow has run past its last step, or the
// server already marked the profile completed.
func (o *Orchestrator) Finished() bool { return o.finished }

// Saving reports whether a submission is outstanding. The UI keeps its
// modal lock up while this is true.
func (o *Orchestrator) Saving() bool { return o.saving }

// User returns the locally cached profile copy.
func (o *Orchestrator) User() *profile.UserProfile { return o.user }

// StepCompleted reports whether key may be treated as done: either the
// server says so, or it sits behind the furthest point this flow reached.
func (o *Orchestrator) StepCompleted(key profile.StepKey) bool {
	if o.user.Progress.HasCompleted(key) {
		return true
	}
	for i, k := range o.steps {
		if k == key {
			return i < o.frontier
		}
	}
	return false
}

// GoToStep moves the pointer out of linear order, as when a completed step
// is tapped on the progress bar. Reachable steps are the completed ones and
// everything up to the furthest step reached; skipping ahead is not.
func (o *Orchestrator) GoToStep(key profile.StepKey) error {
	if o.saving {
		return ErrSubmissionInFlight
	}

	idx := -1
	for i, k := range o.steps {
		if k == key {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrStepNotNavigable
	}

	if idx > o.frontier && !o.StepCompleted(key) {
		return ErrStepNotNavigable
	}

	o.index = idx
	o.finished = false
	return nil
}

// advance moves one step forward, terminating the flow when the sequence
// is exhausted.
func (o *Orchestrator) advance() {
	o.index++
	if o.index >= len(o.steps) {
		o.index = len(o.steps) - 1
		o.finished = true
		o.log.Info().Str("user_id", o.userID).Msg("onboarding finished")
	}
	if o.index > o.frontier {
		o.frontier = o.index
	}
}

// submit runs the shared transition: guard, validate, call the gateway,
// merge the returned fields, clear the step's draft, advance. A gateway
// or transport error leaves the pointer, the draft and the cached profile
// untouched so the user can retry.
func (o *Orchestrator) submit(
	ctx context.Context,
	key profile.StepKey,
	res validation.Result,
	call func(context.Context) (*profile.UserProfile, error),
	clearDraft bool,
) error {
	if o.finished {
		return ErrFlowFinished
	}
	if o.saving {
		return ErrSubmissionInFlight
	}
	if !res.Valid {
		return &ValidationError{Result: res}
	}

	o.saving = true
	defer func() { o.saving = false }()

	payload, err := call(ctx)
	if err != nil {
		o.log.Warn().Str("step", string(key)).Err(err).Msg("step submission failed")
		return err
	}

	if payload != nil {
		o.user.Merge(*payload)
	}
	if clearDraft {
		o.draft = o.drafts.ClearStep(o.userID, key)
	}

	o.advance()
	return nil
}

// SubmitChooseType saves the user type. This is the only transition that
// can change the type, and with it the remaining sequence: on success the
// sequence is re-derived and the pointer lands on base, discarding any
// stale downstream assumption.
func (o *Orchestrator) SubmitChooseType(ctx context.Context, t profile.UserType) error {
	if o.finished {
		return ErrFlowFinished
	}
	if o.saving {
		return ErrSubmissionInFlight
	}
	if !t.Valid() {
		return &ValidationError{Result: validation.Result{Errors: []string{"Please choose a profile type."}}}
	}

	o.saving = true
	defer func() { o.saving = false }()

	payload, err := o.gateway.SetType(ctx, t)
	if err != nil {
		o.log.Warn().Err(err).Msg("set-type failed")
		return err
	}

	if payload != nil {
		o.user.Merge(*payload)
	}
	if o.user.Type == "" {
		// Server echoed nothing; trust the accepted submission.
		o.user.Type = t
	}

	o.steps = profile.StepsForType(o.user.Type)
	o.index = profile.StepIndex(o.user.Type, profile.StepBase)
	// The old frontier belonged to a possibly different sequence; only
	// server-confirmed completions keep steps reachable past base now.
	o.frontier = o.index
	return nil
}

// SubmitBase saves the shared name/avatar step.
func (o *Orchestrator) SubmitBase(ctx context.Context, in profile.BasePayload) error {
	res := validation.ValidateBase(validation.BaseInput{
		Name:        in.Name,
		AvatarPath:  in.AvatarPath,
		AvatarURL:   in.AvatarURL,
		CountryCode: in.CountryCode,
		UserType:    o.user.Type,
	})

	return o.submit(ctx, profile.StepBase, res, func(ctx context.Context) (*profile.UserProfile, error) {
		return o.gateway.SaveBase(ctx, in)
	}, false)
}

// SubmitWatcherPreferences saves a watcher's preferred genres.
func (o *Orchestrator) SubmitWatcherPreferences(ctx context.Context, in profile.WatcherPreferencesPayload) error {
	res := validation.ValidateWatcherPreferences(in)

	return o.submit(ctx, profile.StepWatcherPreferences, res, func(ctx context.Context) (*profile.UserProfile, error) {
		return o.gateway.SaveWatcherPreferences(ctx, in)
	}, false)
}

// SubmitVenueDetails saves the venue location step and clears its draft on
// success.
func (o *Orchestrator) SubmitVenueDetails(ctx context.Context, in profile.VenueDetailsPayload) error {
	res := validation.ValidateVenueDetails(in)

	return o.submit(ctx, profile.StepVenueDetails, res, func(ctx context.Context) (*profile.UserProfile, error) {
		return o.gateway.SaveVenueDetails(ctx, in)
	}, true)
}

// SubmitVenueSocialMedia normalizes and saves the venue social links.
func (o *Orchestrator) SubmitVenueSocialMedia(ctx context.Context, s profile.SocialLinks) error {
	normalized := links.NormalizeSocialSet(s)
	res := validation.ValidateSocial(normalized)

	return o.submit(ctx, profile.StepVenueSocialMedia, res, func(ctx context.Context) (*profile.UserProfile, error) {
		return o.gateway.SaveVenueSocialMedia(ctx, normalized)
	}, false)
}

// SubmitArtistDetails saves the artist genre/bio step.
func (o *Orchestrator) SubmitArtistDetails(ctx context.Context, in profile.ArtistDetailsPayload) error {
	res := validation.ValidateArtistDetails(in)

	return o.submit(ctx, profile.StepArtistDetails, res, func(ctx context.Context) (*profile.UserProfile, error) {
		return o.gateway.SaveArtistDetails(ctx, in)
	}, true)
}

// SubmitArtistMusic normalizes the free-text links, keeps catalog
// selections verbatim, saves, and clears the step's draft on success.
func (o *Orchestrator) SubmitArtistMusic(ctx context.Context, m profile.MusicLinks) error {
	normalized := links.NormalizeMusicSet(m)
	res := validation.ValidateArtistMusic(normalized)

	return o.submit(ctx, profile.StepArtistMusic, res, func(ctx context.Context) (*profile.UserProfile, error) {
		return o.gateway.SaveArtistMusic(ctx, normalized)
	}, true)
}

// SubmitArtistSocialMedia normalizes and saves the artist social links.
func (o *Orchestrator) SubmitArtistSocialMedia(ctx context.Context, s profile.SocialLinks) error {
	normalized := links.NormalizeSocialSet(s)
	res := validation.ValidateSocial(normalized)

	return o.submit(ctx, profile.StepArtistSocialMedia, res, func(ctx context.Context) (*profile.UserProfile, error) {
		return o.gateway.SaveArtistSocialMedia(ctx, normalized)
	}, false)
}
