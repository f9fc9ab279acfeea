package store

import (
	"brewhound/internal/breweryapi"
)

// itemsPerPage is the fixed page size for the presented brewery list.
const itemsPerPage = 12

// State is the single mutable aggregate the whole application reads from.
// It is only ever mutated through Store intents and workflow transitions;
// collaborators get copies via Snapshot.
type State struct {
	Breweries         []breweryapi.Brewery `json:"breweries"`
	FilteredBreweries []breweryapi.Brewery `json:"filteredBreweries"`
	Selected          *breweryapi.Brewery  `json:"selectedBrewery"`
	Random            *breweryapi.Brewery  `json:"randomBrewery"`
	Loading           bool                 `json:"loading"`
	Error             string               `json:"error,omitempty"`
	Filters           breweryapi.Filters   `json:"filters"`
	UserLocation      *breweryapi.Location `json:"userLocation"`
	Suggestions       []string             `json:"suggestions"`
	CurrentPage       int                  `json:"currentPage"`
	TotalPages        int                  `json:"totalPages"`
	ItemsPerPage      int                  `json:"itemsPerPage"`
}

func initialState() State {
	return State{
		Breweries:         []breweryapi.Brewery{},
		FilteredBreweries: []breweryapi.Brewery{},
		Suggestions:       []string{},
		CurrentPage:       1,
		TotalPages:        1,
		ItemsPerPage:      itemsPerPage,
	}
}

// FilterPatch merges into the current filter set. Nil fields are left
// untouched; ClearMaxDistance removes the distance limit.
type FilterPatch struct {
	Search           *string  `json:"search,omitempty"`
	City             *string  `json:"city,omitempty"`
	State            *string  `json:"state,omitempty"`
	MaxDistance      *float64 `json:"distance,omitempty"`
	ClearMaxDistance bool     `json:"clearDistance,omitempty"`
	BreweryType      *string  `json:"breweryType,omitempty"`
}

func mergeFilters(current breweryapi.Filters, patch FilterPatch) breweryapi.Filters {
	if patch.Search != nil {
		current.Search = *patch.Search
	}
	if patch.City != nil {
		current.City = *patch.City
	}
	if patch.State != nil {
		current.State = *patch.State
	}
	if patch.MaxDistance != nil {
		v := *patch.MaxDistance
		current.MaxDistance = &v
	}
	if patch.ClearMaxDistance {
		current.MaxDistance = nil
	}
	if patch.BreweryType != nil {
		current.BreweryType = *patch.BreweryType
	}
	return current
}

// totalPages derives the page count for n filtered records, floored at 1.
func totalPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + itemsPerPage - 1) / itemsPerPage
}
