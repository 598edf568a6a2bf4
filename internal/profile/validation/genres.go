package validation

import (
	"fmt"

	"github.com/pkg/errors"
)

// GenreCatalog is the fixed set of selectable genres, in display order.
var GenreCatalog = []string{
	"pop", "rock", "indie", "hip_hop", "electronic", "jazz", "folk",
	"metal", "punk", "rnb", "soul", "reggae", "classical", "blues",
	"country", "alternative",
}

var genreSet = func() map[string]bool {
	m := make(map[string]bool, len(GenreCatalog))
	for _, g := range GenreCatalog {
		m[g] = true
	}
	return m
}()

// IsKnownGenre reports whether key is in the catalog.
func IsKnownGenre(key string) bool {
	return genreSet[key]
}

// ErrGenreLimit is returned when toggling a genre on would exceed the
// selection limit. The selection stays unchanged.
var ErrGenreLimit = errors.New("genre limit reached")

// ErrUnknownGenre is returned for keys outside the catalog.
var ErrUnknownGenre = errors.New("unknown genre")

// GenreSelection enforces the toggle contract of the genre chips: turning
// a genre off always works, turning one on past the limit is rejected with
// an error rather than silently dropped.
type GenreSelection struct {
	keys []string
	max  int
}

// NewGenreSelection seeds a selection. A non-positive max falls back to
// MaxGenres.
func NewGenreSelection(initial []string, max int) *GenreSelection {
	if max <= 0 {
		max = MaxGenres
	}
	s := &GenreSelection{max: max}
	for _, k := range initial {
		if IsKnownGenre(k) && !s.contains(k) && len(s.keys) < max {
			s.keys = append(s.keys, k)
		}
	}
	return s
}

func (s *GenreSelection) contains(key string) bool {
	for _, k := range s.keys {
		if k == key {
			return true
		}
	}
	return false
}

// Toggle flips the key's selection state.
func (s *GenreSelection) Toggle(key string) error {
	if !IsKnownGenre(key) {
		return errors.Wrap(ErrUnknownGenre, fmt.Sprintf("genre %q", key))
	}

	if s.contains(key) {
		next := s.keys[:0]
		for _, k := range s.keys {
			if k != key {
				next = append(next, k)
			}
		}
		s.keys = next
		return nil
	}

	if len(s.keys) >= s.max {
		return ErrGenreLimit
	}

	s.keys = append(s.keys, key)
	return nil
}

// Keys returns the selected genres in toggle order.
func (s *GenreSelection) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}
