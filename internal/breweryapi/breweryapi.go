// Package breweryapi talks to the external brewery directory service and
// defines the domain records shared across the application.
package breweryapi

import (
	"context"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// BreweryType is the directory's enumerated brewery classification.
type BreweryType string

const (
	TypeMicro      BreweryType = "micro"
	TypeNano       BreweryType = "nano"
	TypeRegional   BreweryType = "regional"
	TypeBrewpub    BreweryType = "brewpub"
	TypeLarge      BreweryType = "large"
	TypePlanning   BreweryType = "planning"
	TypeBar        BreweryType = "bar"
	TypeContract   BreweryType = "contract"
	TypeProprietor BreweryType = "proprietor"
	TypeClosed     BreweryType = "closed"
)

// Types lists every valid brewery type tag.
var Types = []BreweryType{
	TypeMicro, TypeNano, TypeRegional, TypeBrewpub, TypeLarge,
	TypePlanning, TypeBar, TypeContract, TypeProprietor, TypeClosed,
}

// Brewery is an immutable snapshot of a directory record. Latitude and
// longitude arrive as numeric strings and are empty when unknown. Distance
// is a client-side annotation in miles, set only when both the record's
// coordinates and the user's location are known.
type Brewery struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	BreweryType   string   `json:"brewery_type"`
	Address1      string   `json:"address_1,omitempty"`
	Address2      string   `json:"address_2,omitempty"`
	Address3      string   `json:"address_3,omitempty"`
	City          string   `json:"city"`
	StateProvince string   `json:"state_province"`
	PostalCode    string   `json:"postal_code"`
	Country       string   `json:"country"`
	Longitude     string   `json:"longitude,omitempty"`
	Latitude      string   `json:"latitude,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	WebsiteURL    string   `json:"website_url,omitempty"`
	State         string   `json:"state"`
	Street        string   `json:"street,omitempty"`
	Distance      *float64 `json:"distance,omitempty"`
}

// Coordinates parses the record's latitude/longitude strings. ok is false
// when either value is absent or unparsable.
func (b Brewery) Coordinates() (lat, lon float64, ok bool) {
	if b.Latitude == "" || b.Longitude == "" {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(b.Latitude, 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(b.Longitude, 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

// Location is a user position in decimal degrees.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Filters is the user's current narrowing criteria. Zero values mean
// "no filter"; MaxDistance nil means no distance limit.
type Filters struct {
	Search      string   `json:"search"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	MaxDistance *float64 `json:"distance"`
	BreweryType string   `json:"breweryType"`
}

// Active reports whether any filter field is set, which decides between the
// unfiltered and filtered catalog workflows.
func (f Filters) Active() bool {
	return f.Search != "" || f.City != "" || f.State != "" ||
		f.MaxDistance != nil || f.BreweryType != ""
}

// Validate checks field-level constraints before a filter set is accepted.
func (f Filters) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.BreweryType, validation.In(typeValues()...)),
		validation.Field(&f.MaxDistance, validation.Min(0.0)),
	)
}

func typeValues() []interface{} {
	vals := make([]interface{}, 0, len(Types))
	for _, t := range Types {
		vals = append(vals, string(t))
	}
	return vals
}

// ListParams narrows a plain directory listing.
type ListParams struct {
	Page        int
	PerPage     int
	Search      string
	City        string
	State       string
	BreweryType string
}

// Directory is the remote brewery directory. All operations are idempotent
// reads; each surfaces network failures, missing records and empty candidate
// sets as distinct errors rather than substituting defaults.
type Directory interface {
	// List fetches an ordered page of breweries with optional filters.
	List(ctx context.Context, params ListParams) ([]Brewery, error)

	// ListFiltered fetches up to one full page-size-200 result set for the
	// given filters, annotating and radius-filtering by distance when a
	// maximum distance and a user location are available.
	ListFiltered(ctx context.Context, filters Filters, loc *Location) ([]Brewery, error)

	// GetByID fetches a single brewery, ErrNotFound when it does not exist.
	GetByID(ctx context.Context, id string) (*Brewery, error)

	// RandomNear picks a random brewery near the location, preferring
	// candidates within the nearby radius.
	RandomNear(ctx context.Context, loc Location) (*Brewery, error)

	// Suggest returns brewery names matching the query for autocomplete.
	Suggest(ctx context.Context, query string) ([]string, error)
}
