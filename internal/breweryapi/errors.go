package breweryapi

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a by-id lookup for a brewery that does not exist.
	ErrNotFound = errors.New("brewery not found")
	// ErrEmptyResult signals that the random-pick candidate set was empty.
	ErrEmptyResult = errors.New("no breweries returned")
)

// NetworkError reports a transport failure or a non-2xx directory response.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: directory returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
