package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMilesSymmetry(t *testing.T) {
	pairs := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"new york / los angeles", 40.7128, -74.0060, 34.0522, -118.2437},
		{"equator crossing", -1.5, 30.0, 1.5, -30.0},
		{"near poles", 89.9, 10.0, -89.9, -170.0},
		{"short hop", 40.0, -75.0, 40.01, -75.01},
	}

	for _, tc := range pairs {
		t.Run(tc.name, func(t *testing.T) {
			ab := Miles(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			ba := Miles(tc.lat2, tc.lon2, tc.lat1, tc.lon1)
			assert.InDelta(t, ab, ba, 1e-9)
		})
	}
}

func TestMilesIdentity(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{40.7128, -74.0060},
		{-33.8688, 151.2093},
		{90, 0},
	}

	for _, p := range points {
		if d := Miles(p[0], p[1], p[0], p[1]); d != 0 {
			t.Fatalf("Miles(%v, %v, same) = %v, want 0", p[0], p[1], d)
		}
	}
}

func TestMilesKnownValue(t *testing.T) {
	// New York City to Los Angeles, roughly 2446 miles great-circle.
	d := Miles(40.7128, -74.0060, 34.0522, -118.2437)
	assert.InDelta(t, 2445.7, d, 1.0)
}

func TestRoundMiles(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{2445.7101, 2445.7},
		{9.95, 10.0},
		{9.94, 9.9},
		{0.04, 0.0},
	}

	for _, tc := range tests {
		if got := RoundMiles(tc.in); got != tc.want {
			t.Fatalf("RoundMiles(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
