package httpapi

import (
	"encoding/json"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"brewhound/internal/breweryapi"
	"brewhound/internal/store"
)

// handleSetFilters merges a filter patch into the current filter set.
func (s *Server) handleSetFilters(w http.ResponseWriter, r *http.Request) {
	var patch store.FilterPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.state.SetFilters(patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, s.state.Snapshot().Filters)
}

type setPageRequest struct {
	Page int `json:"page"`
}

// handleSetPage moves pagination. The store leaves clamping to its
// collaborators, so the bounds check lives here.
func (s *Server) handleSetPage(w http.ResponseWriter, r *http.Request) {
	var req setPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	_, _, total := s.state.Page()
	page := req.Page
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	s.state.SetCurrentPage(page)

	writeJSON(w, http.StatusOK, map[string]int{"page": page, "totalPages": total})
}

type setLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (req setLocationRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&req.Longitude, validation.Min(-180.0), validation.Max(180.0)),
	)
}

// handleSetLocation records the geolocation reported by the browser and lets
// the store trigger its one random-nearby pick for this acquisition.
func (s *Server) handleSetLocation(w http.ResponseWriter, r *http.Request) {
	var req setLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.state.SetUserLocation(breweryapi.Location{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	w.WriteHeader(http.StatusAccepted)
}

type searchInputRequest struct {
	Query string `json:"query"`
}

// handleSearchInput routes raw search text through the debounce pipeline.
// Nothing is fetched here; a quiet period must pass first.
func (s *Server) handleSearchInput(w http.ResponseWriter, r *http.Request) {
	var req searchInputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.search.Input(req.Query)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleClearError(w http.ResponseWriter, r *http.Request) {
	s.state.ClearError()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearSuggestions(w http.ResponseWriter, r *http.Request) {
	s.state.ClearSuggestions()
	w.WriteHeader(http.StatusNoContent)
}
