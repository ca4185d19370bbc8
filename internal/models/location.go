package models

import "time"

// Tokyo Station. Used whenever no better coordinate is available.
const (
	FallbackLatitude  = 35.6812
	FallbackLongitude = 139.7671
)

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// FallbackCoordinates returns the fixed default point.
func FallbackCoordinates() Coordinates {
	return Coordinates{Latitude: FallbackLatitude, Longitude: FallbackLongitude}
}

// GeocodeRequest is a single lookup against a geocoding provider.
type GeocodeRequest struct {
	Query       string
	CountryHint string
	Timeout     time.Duration
	UserAgent   string
}
