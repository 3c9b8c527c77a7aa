package domain

import "context"

// GeocodingResult contains address components returned by a geocoding provider.
type GeocodingResult struct {
	State            string
	City             string
	LGA              string
	FormattedAddress string
	Confidence       float64 // 0.0–1.0 provider confidence score
}

// Geocoder fills in address details from coordinates.
type Geocoder interface {
	// ReverseGeocode converts coordinates to address components.
	ReverseGeocode(ctx context.Context, lat, lon float64) (GeocodingResult, error)
}
