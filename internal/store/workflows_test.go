package store

import (
	"context"
	"sync"
	"testing"

	"brewhound/internal/breweryapi"
)

func TestCatalogDecisionUnfiltered(t *testing.T) {
	var listCalls, filteredCalls int
	dir := &stubDirectory{
		listFn: func(ctx context.Context, params breweryapi.ListParams) ([]breweryapi.Brewery, error) {
			listCalls++
			return makeBreweries(2), nil
		},
		listFilteredFn: func(ctx context.Context, filters breweryapi.Filters, loc *breweryapi.Location) ([]breweryapi.Brewery, error) {
			filteredCalls++
			return nil, nil
		},
	}
	s := newTestStore(dir)

	s.LoadCatalog(context.Background())

	if listCalls != 1 || filteredCalls != 0 {
		t.Fatalf("calls = list %d / filtered %d, want 1/0", listCalls, filteredCalls)
	}
	st := s.Snapshot()
	if len(st.Breweries) != 2 || len(st.FilteredBreweries) != 2 {
		t.Fatalf("catalog not replaced: %d/%d", len(st.Breweries), len(st.FilteredBreweries))
	}
	if st.Loading {
		t.Fatal("loading flag still set after fulfillment")
	}
}

func TestCatalogDecisionFiltered(t *testing.T) {
	// A single non-empty filter field must route through the filtered fetch.
	var gotFilters breweryapi.Filters
	var listCalls int
	dir := &stubDirectory{
		listFn: func(ctx context.Context, params breweryapi.ListParams) ([]breweryapi.Brewery, error) {
			listCalls++
			return nil, nil
		},
		listFilteredFn: func(ctx context.Context, filters breweryapi.Filters, loc *breweryapi.Location) ([]breweryapi.Brewery, error) {
			gotFilters = filters
			return makeBreweries(1), nil
		},
	}
	s := newTestStore(dir)

	if err := s.SetFilters(FilterPatch{Search: strPtr("Dog")}); err != nil {
		t.Fatalf("SetFilters: %v", err)
	}
	s.Wait()

	if listCalls != 0 {
		t.Fatal("unfiltered List called despite active filters")
	}
	if gotFilters.Search != "Dog" {
		t.Fatalf("filtered fetch saw filters %+v", gotFilters)
	}
	if got := s.Snapshot().CurrentPage; got != 1 {
		t.Fatalf("currentPage = %d, want 1", got)
	}
}

func TestCatalogFailureSetsError(t *testing.T) {
	dir := &stubDirectory{
		listFn: func(ctx context.Context, params breweryapi.ListParams) ([]breweryapi.Brewery, error) {
			return nil, &breweryapi.NetworkError{Op: "list breweries", StatusCode: 503}
		},
	}
	s := newTestStore(dir)

	s.LoadCatalog(context.Background())

	st := s.Snapshot()
	if st.Error != msgFetchBreweries {
		t.Fatalf("error = %q, want %q", st.Error, msgFetchBreweries)
	}
	if st.Loading {
		t.Fatal("loading flag still set after rejection")
	}
}

func TestCatalogWorkflowIsReentrant(t *testing.T) {
	var calls int
	dir := &stubDirectory{
		listFn: func(ctx context.Context, params breweryapi.ListParams) ([]breweryapi.Brewery, error) {
			calls++
			if calls == 1 {
				return nil, &breweryapi.NetworkError{Op: "list breweries", StatusCode: 500}
			}
			return makeBreweries(3), nil
		},
	}
	s := newTestStore(dir)

	s.LoadCatalog(context.Background())
	if s.Snapshot().Error == "" {
		t.Fatal("first dispatch should have failed")
	}

	// A rejected workflow re-enters pending on the next dispatch.
	s.LoadCatalog(context.Background())
	st := s.Snapshot()
	if st.Error != "" {
		t.Fatalf("error not cleared on redispatch: %q", st.Error)
	}
	if len(st.Breweries) != 3 {
		t.Fatalf("breweries = %d, want 3", len(st.Breweries))
	}
}

func TestStaleCatalogResponseDiscarded(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0

	dir := &stubDirectory{
		listFn: func(ctx context.Context, params breweryapi.ListParams) ([]breweryapi.Brewery, error) {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()
			if n == 1 {
				close(entered)
				<-release
				return []breweryapi.Brewery{{ID: "stale"}}, nil
			}
			return []breweryapi.Brewery{{ID: "fresh"}, {ID: "fresh-2"}}, nil
		},
	}
	s := newTestStore(dir)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.LoadCatalog(context.Background())
	}()
	<-entered

	// Second dispatch supersedes the first while it is still in flight.
	s.LoadCatalog(context.Background())
	close(release)
	wg.Wait()

	st := s.Snapshot()
	if len(st.Breweries) != 2 || st.Breweries[0].ID != "fresh" {
		t.Fatalf("stale response overwrote state: %+v", st.Breweries)
	}
}

func TestSupersededDecisionCannotOverwrite(t *testing.T) {
	// An unfiltered fetch in flight is superseded by a filter change; its
	// late response must not clobber the filtered result.
	entered := make(chan struct{})
	release := make(chan struct{})

	dir := &stubDirectory{
		listFn: func(ctx context.Context, params breweryapi.ListParams) ([]breweryapi.Brewery, error) {
			close(entered)
			<-release
			return makeBreweries(7), nil
		},
		listFilteredFn: func(ctx context.Context, filters breweryapi.Filters, loc *breweryapi.Location) ([]breweryapi.Brewery, error) {
			return []breweryapi.Brewery{{ID: "dog", Name: "Dog Brewing"}}, nil
		},
	}
	s := newTestStore(dir)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.LoadCatalog(context.Background())
	}()
	<-entered

	if err := s.SetFilters(FilterPatch{Search: strPtr("Dog")}); err != nil {
		t.Fatalf("SetFilters: %v", err)
	}
	s.Wait()
	close(release)
	wg.Wait()

	st := s.Snapshot()
	if len(st.FilteredBreweries) != 1 || st.FilteredBreweries[0].ID != "dog" {
		t.Fatalf("superseded unfiltered response overwrote state: %+v", st.FilteredBreweries)
	}
	if st.TotalPages != 1 {
		t.Fatalf("totalPages = %d, want 1", st.TotalPages)
	}
}

func TestSetUserLocationTriggersRandomOnce(t *testing.T) {
	var mu sync.Mutex
	randomCalls := 0
	dir := &stubDirectory{
		randomNearFn: func(ctx context.Context, loc breweryapi.Location) (*breweryapi.Brewery, error) {
			mu.Lock()
			randomCalls++
			mu.Unlock()
			return &breweryapi.Brewery{ID: "pick", Name: "Picked Brewery"}, nil
		},
	}
	s := newTestStore(dir)

	s.SetUserLocation(breweryapi.Location{Latitude: 40, Longitude: -75})
	s.Wait()

	// Filter and page changes never re-trigger the random pick.
	if err := s.SetFilters(FilterPatch{City: strPtr("Denver")}); err != nil {
		t.Fatalf("SetFilters: %v", err)
	}
	s.SetCurrentPage(2)
	s.Wait()

	mu.Lock()
	defer mu.Unlock()
	if randomCalls != 1 {
		t.Fatalf("RandomNear called %d times, want 1", randomCalls)
	}

	st := s.Snapshot()
	if st.Random == nil || st.Random.ID != "pick" {
		t.Fatalf("random brewery = %+v", st.Random)
	}
	if st.UserLocation == nil || st.UserLocation.Latitude != 40 {
		t.Fatalf("user location = %+v", st.UserLocation)
	}
}

func TestRandomFailureLeavesBrowsingIntact(t *testing.T) {
	dir := &stubDirectory{
		listFn: func(ctx context.Context, params breweryapi.ListParams) ([]breweryapi.Brewery, error) {
			return makeBreweries(4), nil
		},
		randomNearFn: func(ctx context.Context, loc breweryapi.Location) (*breweryapi.Brewery, error) {
			return nil, breweryapi.ErrEmptyResult
		},
	}
	s := newTestStore(dir)
	s.LoadCatalog(context.Background())

	s.LoadRandom(context.Background(), breweryapi.Location{Latitude: 40, Longitude: -75})

	st := s.Snapshot()
	if st.Error != msgFetchRandom {
		t.Fatalf("error = %q, want %q", st.Error, msgFetchRandom)
	}
	if len(st.Breweries) != 4 || st.Loading {
		t.Fatal("random failure disturbed catalog state")
	}
	if st.Random != nil {
		t.Fatal("random brewery set despite failure")
	}
}

func TestSuggestionsReplaceAndFailSilently(t *testing.T) {
	var fail bool
	dir := &stubDirectory{
		suggestFn: func(ctx context.Context, query string) ([]string, error) {
			if fail {
				return nil, &breweryapi.NetworkError{Op: "search breweries", StatusCode: 500}
			}
			return []string{"Dog Brewing", "Dogfish Head"}, nil
		},
	}
	s := newTestStore(dir)

	s.LoadSuggestions(context.Background(), "dog")
	if got := s.Snapshot().Suggestions; len(got) != 2 {
		t.Fatalf("suggestions = %v", got)
	}

	fail = true
	s.LoadSuggestions(context.Background(), "dogf")
	st := s.Snapshot()
	if len(st.Suggestions) != 0 {
		t.Fatalf("suggestions after failure = %v", st.Suggestions)
	}
	if st.Error != "" {
		t.Fatalf("suggestion failure leaked into error field: %q", st.Error)
	}
}

func TestSelectedWorkflow(t *testing.T) {
	dir := &stubDirectory{
		getByIDFn: func(ctx context.Context, id string) (*breweryapi.Brewery, error) {
			if id == "dog" {
				return &breweryapi.Brewery{ID: "dog", Name: "Dog Brewing"}, nil
			}
			return nil, breweryapi.ErrNotFound
		},
	}
	s := newTestStore(dir)

	s.Select("dog")
	s.Wait()
	st := s.Snapshot()
	if st.Selected == nil || st.Selected.Name != "Dog Brewing" {
		t.Fatalf("selected = %+v", st.Selected)
	}

	s.Select("missing")
	s.Wait()
	st = s.Snapshot()
	if st.Error != msgFetchDetails {
		t.Fatalf("error = %q, want %q", st.Error, msgFetchDetails)
	}
	if st.Loading {
		t.Fatal("loading flag still set after rejection")
	}
}
