// Package draft persists not-yet-submitted step form state so an
// interrupted onboarding flow can resume without losing typed data. The
// draft is a pure resumability cache: once the server confirms a step, its
// entry is cleared and the remote profile is authoritative.
package draft

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/skatuve/skatuve-client/internal/profile"
	"github.com/skatuve/skatuve-client/internal/storage"
)

// Version tags the storage key so a future format change simply misses old
// data instead of trying to parse it.
const Version = "v1"

// Draft maps step keys to their raw persisted form state. Entries are
// step-local and never reference each other.
type Draft map[profile.StepKey]json.RawMessage

// Has reports whether an entry exists for key.
func (d Draft) Has(key profile.StepKey) bool {
	_, ok := d[key]
	return ok
}

// Decode unmarshals the entry for key into dst. It returns false when the
// entry is absent or unreadable.
func (d Draft) Decode(key profile.StepKey, dst any) bool {
	raw, ok := d[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// Key builds the versioned, per-user storage key. Users without an id yet
// fall back to a shared anonymous namespace.
func Key(userID string) string {
	id := userID
	if id == "" {
		id = "anon"
	}
	return "profile_draft_" + Version + "_" + id
}

// Store reads and writes drafts through a Storage backend. Storage is
// best-effort: every failure degrades to an empty read or a skipped write,
// never to an error reaching the caller.
type Store struct {
	storage storage.Storage
	log     zerolog.Logger
}

// NewStore creates a draft store over the given backend.
func NewStore(st storage.Storage, log zerolog.Logger) *Store {
	return &Store{storage: st, log: log}
}

// Load returns the full draft for the user, or an empty draft on any miss
// or failure.
func (s *Store) Load(userID string) Draft {
	return s.safeRead(Key(userID))
}

// SetStep replaces the entry at key with value (full replace, not a deep
// merge), persists, and returns the new draft. A nil value is stored as an
// empty object so the draft never holds a literal null step.
func (s *Store) SetStep(userID string, key profile.StepKey, value any) Draft {
	storageKey := Key(userID)
	d := s.safeRead(storageKey)

	raw, err := json.Marshal(value)
	if err != nil || string(raw) == "null" {
		raw = []byte("{}")
	}

	d[key] = raw
	s.safeWrite(storageKey, d)
	return d
}

// ClearStep removes exactly that key, persists, and returns the new draft.
func (s *Store) ClearStep(userID string, key profile.StepKey) Draft {
	storageKey := Key(userID)
	d := s.safeRead(storageKey)

	delete(d, key)
	s.safeWrite(storageKey, d)
	return d
}

// ClearAll wipes the user's entire draft namespace.
func (s *Store) ClearAll(userID string) {
	s.safeWrite(Key(userID), Draft{})
}

func (s *Store) safeRead(key string) Draft {
	raw, err := s.storage.GetItem(key)
	if err != nil || raw == "" {
		return Draft{}
	}

	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		s.log.Debug().Str("key", key).Err(err).Msg("unreadable draft, starting empty")
		return Draft{}
	}
	if d == nil {
		return Draft{}
	}
	return d
}

func (s *Store) safeWrite(key string, d Draft) {
	raw, err := json.Marshal(d)
	if err != nil {
		s.log.Debug().Str("key", key).Err(err).Msg("draft marshal failed, skipping write")
		return
	}
	if err := s.storage.SetItem(key, string(raw)); err != nil {
		s.log.Debug().Str("key", key).Err(err).Msg("draft write failed")
	}
}
