package domain

import (
	"context"
	"log/slog"
)

// EnrichStats counts the outcome of province enrichment.
type EnrichStats struct {
	Attempted int
	Enriched  int
	Failed    int
}

// EnrichProvinces fills in empty provinces by reverse geocoding the detection
// coordinates. Rows that already carry a province are left alone. Lookup
// failures are logged and the province stays empty (graceful degradation).
// The input slice is not modified.
func EnrichProvinces(ctx context.Context, detections []Detection, geocoder Geocoder, logger *slog.Logger) ([]Detection, EnrichStats) {
	var stats EnrichStats
	if geocoder == nil {
		return detections, stats
	}

	out := make([]Detection, len(detections))
	copy(out, detections)

	for i := range out {
		if out[i].Province != "" {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		stats.Attempted++
		result, err := geocoder.ReverseGeocode(ctx, out[i].Latitude, out[i].Longitude)
		if err != nil {
			logger.Warn("reverse geocoding failed",
				"detection_id", out[i].ID,
				"lat", out[i].Latitude,
				"lon", out[i].Longitude,
				"error", err,
			)
			stats.Failed++
			continue
		}
		if result.PlaceName == "" {
			continue
		}
		out[i].Province = result.PlaceName
		stats.Enriched++
	}

	return out, stats
}
