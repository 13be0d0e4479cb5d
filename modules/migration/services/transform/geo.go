package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	maxLatitude  = decimal.NewFromInt(90)
	maxLongitude = decimal.NewFromInt(180)
)

// ParseCoordinates reads a legacy "lat,lng" pair. Blank input yields nils
// and no error.
func ParseCoordinates(raw string) (*float64, *float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("coordinates %q: want \"lat,lng\"", raw)
	}
	lat, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, nil, fmt.Errorf("coordinates %q: latitude: %w", raw, err)
	}
	lng, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, nil, fmt.Errorf("coordinates %q: longitude: %w", raw, err)
	}
	if lat.Abs().GreaterThan(maxLatitude) || lng.Abs().GreaterThan(maxLongitude) {
		return nil, nil, fmt.Errorf("coordinates %q: out of range", raw)
	}
	la, _ := lat.Round(7).Float64()
	lo, _ := lng.Round(7).Float64()
	return &la, &lo, nil
}

// ParseZoom returns nil for blank or non-numeric zoom levels.
func ParseZoom(raw string) *int {
	z, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || z < 0 {
		return nil
	}
	return &z
}
