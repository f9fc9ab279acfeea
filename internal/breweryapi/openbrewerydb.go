package breweryapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"brewhound/internal/geo"
)

const (
	// nearbyRadiusMiles bounds the preferred candidate set for random picks.
	nearbyRadiusMiles = 10.0
	// minSuggestQueryLen is the shortest query that triggers a suggestion call.
	minSuggestQueryLen = 2
	// defaultSuggestDelay sheds load under rapid typing; it complements the
	// debounce in front of the suggestion workflow, it does not replace it.
	defaultSuggestDelay = 100 * time.Millisecond
)

// Client implements Directory against an Open Brewery DB style service.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	suggestDelay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRand fixes the random source used for random-near picks.
func WithRand(rng *rand.Rand) Option {
	return func(c *Client) { c.rng = rng }
}

// WithSuggestDelay overrides the fixed delay before suggestion calls.
func WithSuggestDelay(d time.Duration) Option {
	return func(c *Client) { c.suggestDelay = d }
}

// NewClient creates a directory client for the given base URL, e.g.
// "https://api.openbrewerydb.org/v1/breweries".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		suggestDelay: defaultSuggestDelay,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// doRequest performs a GET against the directory and decodes the JSON body.
func (c *Client) doRequest(ctx context.Context, op, path string, params url.Values, result interface{}) error {
	apiURL := c.baseURL + path
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &NetworkError{Op: op, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	if err := jsoniter.ConfigFastest.Unmarshal(body, result); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// List fetches an ordered page of breweries with optional filters.
func (c *Client) List(ctx context.Context, params ListParams) ([]Brewery, error) {
	var breweries []Brewery
	if err := c.doRequest(ctx, "list breweries", "", listQuery(params), &breweries); err != nil {
		return nil, err
	}
	return breweries, nil
}

// ListFiltered fetches the filtered result set in a single page-size-200
// call. When a maximum distance is active and the user location is known,
// each located result is annotated with its rounded distance and results
// beyond the radius are dropped; records without coordinates are kept with
// no distance. The directory's by_dist parameter only hints proximity
// ordering, so the radius is enforced here.
func (c *Client) ListFiltered(ctx context.Context, filters Filters, loc *Location) ([]Brewery, error) {
	var breweries []Brewery
	if err := c.doRequest(ctx, "list filtered breweries", "", filterQuery(filters, loc), &breweries); err != nil {
		return nil, err
	}

	if filters.MaxDistance == nil || loc == nil {
		return breweries, nil
	}

	filtered := make([]Brewery, 0, len(breweries))
	for _, b := range breweries {
		lat, lon, ok := b.Coordinates()
		if !ok {
			filtered = append(filtered, b)
			continue
		}
		d := geo.RoundMiles(geo.Miles(loc.Latitude, loc.Longitude, lat, lon))
		if d > *filters.MaxDistance {
			continue
		}
		b.Distance = &d
		filtered = append(filtered, b)
	}
	return filtered, nil
}

// GetByID fetches a single brewery by its identifier.
func (c *Client) GetByID(ctx context.Context, id string) (*Brewery, error) {
	var brewery Brewery
	err := c.doRequest(ctx, "get brewery", "/"+url.PathEscape(id), nil, &brewery)
	if err != nil {
		var netErr *NetworkError
		if errors.As(err, &netErr) && netErr.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &brewery, nil
}

// RandomNear picks a random brewery seeded by the user location. Candidates
// within the nearby radius are preferred; when none qualify the pick falls
// back to the full candidate set. Only a literally empty candidate set is an
// error.
func (c *Client) RandomNear(ctx context.Context, loc Location) (*Brewery, error) {
	params := url.Values{}
	params.Set("by_dist", formatCoords(loc))

	var candidates []Brewery
	if err := c.doRequest(ctx, "random brewery", "/random", params, &candidates); err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrEmptyResult
	}

	var nearby []Brewery
	for _, b := range candidates {
		lat, lon, ok := b.Coordinates()
		if !ok {
			continue
		}
		if geo.Miles(loc.Latitude, loc.Longitude, lat, lon) <= nearbyRadiusMiles {
			nearby = append(nearby, b)
		}
	}
	if len(nearby) == 0 {
		nearby = candidates
	}

	c.mu.Lock()
	pick := nearby[c.rng.Intn(len(nearby))]
	c.mu.Unlock()
	return &pick, nil
}

// Suggest returns brewery names matching the query. Queries shorter than two
// characters short-circuit without a network call. A fixed small delay
// precedes the call to shed load under rapid typing.
func (c *Client) Suggest(ctx context.Context, query string) ([]string, error) {
	if len([]rune(query)) < minSuggestQueryLen {
		return []string{}, nil
	}

	select {
	case <-time.After(c.suggestDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(defaultPerPage))

	var breweries []Brewery
	if err := c.doRequest(ctx, "search breweries", "/search", params, &breweries); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(breweries))
	for _, b := range breweries {
		names = append(names, b.Name)
	}
	return names, nil
}
