// Package httpapi exposes the application state to the frontend: read-model
// endpoints plus intent endpoints. It never mutates state directly; every
// write goes through a store intent.
package httpapi

import (
	"encoding/json"
	"net/http"

	"brewhound/internal/breweryapi"
	"brewhound/internal/store"
)

// StateStore captures the intents and read models the handlers dispatch to.
type StateStore interface {
	Snapshot() store.State
	Page() ([]breweryapi.Brewery, int, int)
	SetFilters(patch store.FilterPatch) error
	SetUserLocation(loc breweryapi.Location)
	SetCurrentPage(n int)
	Select(id string)
	ClearError()
	ClearSuggestions()
}

// SearchInput receives raw search-text changes; the implementation debounces
// before any suggestion fetch is dispatched.
type SearchInput interface {
	Input(query string)
}

// Server wires HTTP handlers to the state store.
type Server struct {
	state  StateStore
	search SearchInput
}

// New configures a Server over the given store and search pipeline.
func New(state StateStore, search SearchInput) *Server {
	return &Server{state: state, search: search}
}

// Routes exposes the HTTP handlers for state reads and intents.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Read models
	mux.HandleFunc("GET /api/v1/state", s.handleState)
	mux.HandleFunc("GET /api/v1/breweries", s.handleBreweriesPage)
	mux.HandleFunc("GET /api/v1/breweries/{id}", s.handleBrewery)
	mux.HandleFunc("GET /api/v1/random", s.handleRandom)
	mux.HandleFunc("GET /api/v1/suggestions", s.handleSuggestions)

	// Intents
	mux.HandleFunc("PUT /api/v1/filters", s.handleSetFilters)
	mux.HandleFunc("PUT /api/v1/page", s.handleSetPage)
	mux.HandleFunc("PUT /api/v1/location", s.handleSetLocation)
	mux.HandleFunc("POST /api/v1/search-input", s.handleSearchInput)
	mux.HandleFunc("POST /api/v1/errors/clear", s.handleClearError)
	mux.HandleFunc("POST /api/v1/suggestions/clear", s.handleClearSuggestions)

	return mux
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
