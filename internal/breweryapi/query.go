package breweryapi

import (
	"net/url"
	"strconv"
)

// defaultPerPage is the page size requested from the directory when the
// caller does not paginate explicitly.
const defaultPerPage = 200

// listQuery translates ListParams into directory query parameters. Empty
// fields contribute no parameter; page and per_page always carry defaults so
// the unfiltered listing is a single bounded call.
func listQuery(params ListParams) url.Values {
	page := params.Page
	if page <= 0 {
		page = 1
	}
	perPage := params.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	if params.Search != "" {
		q.Set("by_name", params.Search)
	}
	if params.City != "" {
		q.Set("by_city", params.City)
	}
	if params.State != "" {
		q.Set("by_state", params.State)
	}
	if params.BreweryType != "" {
		q.Set("by_type", params.BreweryType)
	}
	return q
}

// filterQuery translates a filter set into directory query parameters.
// The by_dist parameter carries the user's coordinates as a proximity hint;
// the numeric radius itself is enforced client-side after the fetch. Output
// is deterministic for identical inputs.
func filterQuery(filters Filters, loc *Location) url.Values {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(defaultPerPage))
	if filters.Search != "" {
		q.Set("by_name", filters.Search)
	}
	if filters.City != "" {
		q.Set("by_city", filters.City)
	}
	if filters.State != "" {
		q.Set("by_state", filters.State)
	}
	if filters.MaxDistance != nil && loc != nil {
		q.Set("by_dist", formatCoords(*loc))
	}
	if filters.BreweryType != "" {
		q.Set("by_type", filters.BreweryType)
	}
	return q
}

func formatCoords(loc Location) string {
	return strconv.FormatFloat(loc.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(loc.Longitude, 'f', -1, 64)
}
