package lookup

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultDebounce matches the keystroke settle time used by the forms.
const DefaultDebounce = 300 * time.Millisecond

// SearchFunc performs one search request for a settled query.
type SearchFunc func(ctx context.Context, query string) ([]ArtistResult, error)

// DeliverFunc receives the outcome of the latest search. It is never
// called for a superseded query.
type DeliverFunc func(query string, results []ArtistResult, err error)

// Typeahead debounces keystrokes and discards stale responses. Each
// Update bumps a monotonically increasing generation; a response is
// delivered only while its generation is still the newest, so a slow
// response for an old query can never overwrite results for a newer one.
// Cancellation is advisory: in-flight requests run to completion and are
// dropped on arrival.
type Typeahead struct {
	search  SearchFunc
	deliver DeliverFunc
	delay   time.Duration

	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
}

// NewTypeahead creates a typeahead. A non-positive delay falls back to
// DefaultDebounce.
func NewTypeahead(search SearchFunc, deliver DeliverFunc, delay time.Duration) *Typeahead {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Typeahead{search: search, deliver: deliver, delay: delay}
}

// Update registers a new keystroke. Queries shorter than MinQueryLength
// clear the results immediately and cancel any pending search.
func (t *Typeahead) Update(ctx context.Context, query string) {
	t.mu.Lock()
	t.gen++
	gen := t.gen
	if t.timer != nil {
		t.timer.Stop()
	}

	if len([]rune(strings.TrimSpace(query))) < MinQueryLength {
		t.timer = nil
		t.mu.Unlock()
		t.deliver(query, nil, nil)
		return
	}

	t.timer = time.AfterFunc(t.delay, func() {
		t.run(ctx, gen, query)
	})
	t.mu.Unlock()
}

// Cancel invalidates any pending or in-flight search.
func (t *Typeahead) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Typeahead) run(ctx context.Context, gen uint64, query string) {
	if !t.current(gen) {
		return
	}

	results, err := t.search(ctx, query)

	// Re-check after the round trip: a newer keystroke may have landed
	// while this request was in flight.
	if !t.current(gen) {
		return
	}
	t.deliver(query, results, err)
}

func (t *Typeahead) current(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return gen == t.gen
}
