package store

import (
	"context"

	"brewhound/internal/breweryapi"
)

// Generic user-facing messages; the underlying errors go to the log.
const (
	msgFetchBreweries = "Failed to fetch breweries"
	msgFetchDetails   = "Failed to fetch brewery details"
	msgFetchRandom    = "Failed to fetch random brewery"
)

// LoadCatalog runs the catalog workflow. The filtered-vs-unfiltered decision
// is made exactly once, from the filter state at dispatch time: any active
// filter field selects the filtered fetch, otherwise the plain listing runs.
// Both paths share one slot, so whichever dispatch was issued last is the
// only one allowed to write its result.
func (s *Store) LoadCatalog(ctx context.Context) {
	s.mu.Lock()
	s.catalogSeq++
	seq := s.catalogSeq
	filters := s.state.Filters
	loc := s.state.UserLocation
	var locCopy *breweryapi.Location
	if loc != nil {
		l := *loc
		locCopy = &l
	}
	filtered := filters.Active()
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()

	var (
		breweries []breweryapi.Brewery
		err       error
	)
	if filtered {
		breweries, err = s.directory.ListFiltered(ctx, filters, locCopy)
	} else {
		breweries, err = s.directory.List(ctx, breweryapi.ListParams{})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.catalogSeq {
		s.log.Debug().Uint64("seq", seq).Uint64("latest", s.catalogSeq).
			Msg("discarding stale catalog response")
		return
	}

	if err != nil {
		s.log.Error().Err(err).Bool("filtered", filtered).Msg("catalog fetch failed")
		s.state.Loading = false
		s.state.Error = msgFetchBreweries
		return
	}

	if breweries == nil {
		breweries = []breweryapi.Brewery{}
	}
	s.state.Loading = false
	s.state.Breweries = breweries
	s.state.FilteredBreweries = breweries
	s.state.TotalPages = totalPages(len(breweries))
	if filtered {
		s.state.CurrentPage = 1
	}
	s.log.Debug().Int("count", len(breweries)).Bool("filtered", filtered).
		Msg("catalog updated")
}

// LoadRandom runs the random-nearby workflow. A failed pick sets the error
// but leaves everything else alone so browsing is never blocked by it.
func (s *Store) LoadRandom(ctx context.Context, loc breweryapi.Location) {
	s.mu.Lock()
	s.randomSeq++
	seq := s.randomSeq
	s.mu.Unlock()

	brewery, err := s.directory.RandomNear(ctx, loc)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.randomSeq {
		s.log.Debug().Uint64("seq", seq).Msg("discarding stale random-pick response")
		return
	}

	if err != nil {
		s.log.Warn().Err(err).Msg("random pick failed")
		s.state.Error = msgFetchRandom
		return
	}
	s.state.Random = brewery
}

// LoadSelected runs the detail workflow for a single brewery.
func (s *Store) LoadSelected(ctx context.Context, id string) {
	s.mu.Lock()
	s.selectedSeq++
	seq := s.selectedSeq
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()

	brewery, err := s.directory.GetByID(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.selectedSeq {
		s.log.Debug().Str("id", id).Msg("discarding stale detail response")
		return
	}

	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("detail fetch failed")
		s.state.Loading = false
		s.state.Error = msgFetchDetails
		return
	}
	s.state.Loading = false
	s.state.Selected = brewery
}

// LoadSuggestions runs the suggestion workflow. Suggestions are a
// best-effort affordance: failures clear the list and are never surfaced to
// the user-visible error field.
func (s *Store) LoadSuggestions(ctx context.Context, query string) {
	s.mu.Lock()
	s.suggestSeq++
	seq := s.suggestSeq
	s.mu.Unlock()

	names, err := s.directory.Suggest(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.suggestSeq {
		s.log.Debug().Str("query", query).Msg("discarding stale suggestion response")
		return
	}

	if err != nil {
		s.log.Debug().Err(err).Str("query", query).Msg("suggestion fetch failed")
		s.state.Suggestions = []string{}
		return
	}
	if names == nil {
		names = []string{}
	}
	s.state.Suggestions = names
}
