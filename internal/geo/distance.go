// Package geo provides great-circle distance math for brewery coordinates.
package geo

import (
	"math"

	"github.com/golang/geo/s2"
)

// earthRadiusMiles is the mean Earth radius used for all distances in the
// application. Miles are the single unit everywhere.
const earthRadiusMiles = 3959.0

// Miles returns the great-circle distance in miles between two points given
// in decimal degrees. Identical points yield 0; the function is defined for
// every valid coordinate pair, antipodes included.
func Miles(lat1, lon1, lat2, lon2 float64) float64 {
	a := s2.LatLngFromDegrees(lat1, lon1)
	b := s2.LatLngFromDegrees(lat2, lon2)
	return a.Distance(b).Radians() * earthRadiusMiles
}

// RoundMiles rounds a distance to one decimal place. Distances stored on
// records go through this so displayed values stay stable across fetches.
func RoundMiles(d float64) float64 {
	return math.Round(d*10) / 10
}
