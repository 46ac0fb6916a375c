package domain

import "context"

// GeocodingResult contains location data returned by a geocoding provider.
type GeocodingResult struct {
	Lat              float64
	Lon              float64
	FormattedAddress string
	PlaceName        string  // region (province) name for region-level lookups
	Confidence       float64 // 0.0–1.0 provider confidence score
}

// Geocoder resolves coordinates to the administrative region containing them.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (GeocodingResult, error)
}
