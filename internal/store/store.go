// Package store holds the application state aggregate and runs the
// asynchronous fetch workflows that keep it consistent.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"brewhound/internal/breweryapi"
)

// Store owns the process-wide application state. All mutation goes through
// intents and workflow transitions under a single mutex; external
// collaborators only dispatch intents and read snapshots.
type Store struct {
	directory breweryapi.Directory
	log       zerolog.Logger

	// ctx bounds the session; workflows spawned by intents run under it.
	ctx context.Context
	wg  sync.WaitGroup

	mu    sync.Mutex
	state State

	// Sequence numbers implement last-issued-wins per workflow slot: a
	// completion whose sequence is no longer the latest issued for its slot
	// is discarded. Load-all and Load-filtered share the catalog slot so a
	// superseded decision can never overwrite a later one.
	catalogSeq  uint64
	randomSeq   uint64
	suggestSeq  uint64
	selectedSeq uint64
}

// New creates a Store reading from the given directory. ctx bounds the
// session; cancel it to stop background workflows.
func New(ctx context.Context, directory breweryapi.Directory, log zerolog.Logger) *Store {
	return &Store{
		directory: directory,
		log:       log,
		ctx:       ctx,
		state:     initialState(),
	}
}

// Wait blocks until every workflow spawned by an intent has finished.
// Used on shutdown and by tests.
func (s *Store) Wait() {
	s.wg.Wait()
}

func (s *Store) spawn(fn func(context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()
}

// SetFilters merges the patch into the filter set, resets pagination to the
// first page and kicks off the catalog workflow chosen by the new filter
// state. Invalid patches are rejected without touching state.
func (s *Store) SetFilters(patch FilterPatch) error {
	s.mu.Lock()
	merged := mergeFilters(s.state.Filters, patch)
	if err := merged.Validate(); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("invalid filters: %w", err)
	}
	s.state.Filters = merged
	s.state.CurrentPage = 1
	s.mu.Unlock()

	s.spawn(s.LoadCatalog)
	return nil
}

// SetUserLocation records the user position and triggers the random-nearby
// workflow once for this acquisition. Filter and page changes never
// re-trigger it.
func (s *Store) SetUserLocation(loc breweryapi.Location) {
	s.mu.Lock()
	s.state.UserLocation = &loc
	s.mu.Unlock()

	s.spawn(func(ctx context.Context) {
		s.LoadRandom(ctx, loc)
	})
}

// SetCurrentPage moves to page n. Keeping n within [1, totalPages] is the
// presentation layer's contract; the store does not clamp.
func (s *Store) SetCurrentPage(n int) {
	s.mu.Lock()
	s.state.CurrentPage = n
	s.mu.Unlock()
}

// Select kicks off the detail workflow for a single brewery.
func (s *Store) Select(id string) {
	s.spawn(func(ctx context.Context) {
		s.LoadSelected(ctx, id)
	})
}

// SuggestInput feeds a raw search-text change into the suggestion workflow.
// Callers are expected to debounce; the store dispatches as told.
func (s *Store) SuggestInput(query string) {
	s.spawn(func(ctx context.Context) {
		s.LoadSuggestions(ctx, query)
	})
}

// ClearError resets the user-visible error.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
}

// ClearSuggestions empties the suggestion list.
func (s *Store) ClearSuggestions() {
	s.mu.Lock()
	s.state.Suggestions = []string{}
	s.mu.Unlock()
}

// Snapshot returns a deep copy of the current application state; mutating
// it cannot affect the store.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyState(s.state)
}

// Page returns the slice of filtered breweries visible on the current page
// along with the page number and total page count. Concatenating every page
// in order reproduces the filtered list exactly.
func (s *Store) Page() ([]breweryapi.Brewery, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.state.CurrentPage
	start := (page - 1) * itemsPerPage
	if start < 0 || start >= len(s.state.FilteredBreweries) {
		return []breweryapi.Brewery{}, page, s.state.TotalPages
	}
	end := start + itemsPerPage
	if end > len(s.state.FilteredBreweries) {
		end = len(s.state.FilteredBreweries)
	}
	return copyBreweries(s.state.FilteredBreweries[start:end]), page, s.state.TotalPages
}

// copyState deep-copies the aggregate, pointer fields included, so nothing
// handed out can reach back into the live state.
func copyState(st State) State {
	out := st
	out.Breweries = copyBreweries(st.Breweries)
	out.FilteredBreweries = copyBreweries(st.FilteredBreweries)
	out.Suggestions = append([]string(nil), st.Suggestions...)
	out.Selected = copyBrewery(st.Selected)
	out.Random = copyBrewery(st.Random)
	if st.Filters.MaxDistance != nil {
		d := *st.Filters.MaxDistance
		out.Filters.MaxDistance = &d
	}
	if st.UserLocation != nil {
		loc := *st.UserLocation
		out.UserLocation = &loc
	}
	return out
}

func copyBreweries(in []breweryapi.Brewery) []breweryapi.Brewery {
	out := make([]breweryapi.Brewery, len(in))
	for i, b := range in {
		if b.Distance != nil {
			d := *b.Distance
			b.Distance = &d
		}
		out[i] = b
	}
	return out
}

func copyBrewery(b *breweryapi.Brewery) *breweryapi.Brewery {
	if b == nil {
		return nil
	}
	out := *b
	if b.Distance != nil {
		d := *b.Distance
		out.Distance = &d
	}
	return &out
}
