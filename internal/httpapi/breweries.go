package httpapi

import (
	"net/http"

	"brewhound/internal/breweryapi"
)

// handleState returns the full application state snapshot.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.state.Snapshot())
}

type breweriesPageResponse struct {
	Breweries    []breweryapi.Brewery `json:"breweries"`
	Page         int                  `json:"page"`
	TotalPages   int                  `json:"totalPages"`
	ItemsPerPage int                  `json:"itemsPerPage"`
	Loading      bool                 `json:"loading"`
	Error        string               `json:"error,omitempty"`
}

// handleBreweriesPage returns the slice of filtered breweries visible on the
// current page.
func (s *Server) handleBreweriesPage(w http.ResponseWriter, r *http.Request) {
	items, page, total := s.state.Page()
	st := s.state.Snapshot()
	writeJSON(w, http.StatusOK, breweriesPageResponse{
		Breweries:    items,
		Page:         page,
		TotalPages:   total,
		ItemsPerPage: st.ItemsPerPage,
		Loading:      st.Loading,
		Error:        st.Error,
	})
}

// handleBrewery serves the detail view. The record normally comes from the
// already-fetched list; the detail workflow is dispatched as a background
// refresh either way.
func (s *Server) handleBrewery(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Brewery id is required", http.StatusBadRequest)
		return
	}

	s.state.Select(id)

	st := s.state.Snapshot()
	for _, b := range st.Breweries {
		if b.ID == id {
			writeJSON(w, http.StatusOK, b)
			return
		}
	}
	if st.Selected != nil && st.Selected.ID == id {
		writeJSON(w, http.StatusOK, st.Selected)
		return
	}
	http.Error(w, "Brewery not found", http.StatusNotFound)
}

// handleRandom returns the random nearby pick, if one has been made.
func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	st := s.state.Snapshot()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"randomBrewery": st.Random,
	})
}

// handleSuggestions returns the current autocomplete suggestion list.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	st := s.state.Snapshot()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": st.Suggestions,
	})
}
