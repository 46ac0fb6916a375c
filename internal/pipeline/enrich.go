package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/fire-hotspot-dashboard/internal/domain"
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/observability"
)

// ProvinceEnricher implements Enricher by reverse geocoding detections that
// arrive without a province.
type ProvinceEnricher struct {
	geocoder domain.Geocoder
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewProvinceEnricher creates a ProvinceEnricher. Pass a nil geocoder to
// disable enrichment.
func NewProvinceEnricher(geocoder domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics) *ProvinceEnricher {
	return &ProvinceEnricher{
		geocoder: geocoder,
		logger:   logger,
		metrics:  metrics,
	}
}

func (e *ProvinceEnricher) Enrich(ctx context.Context, detections []domain.Detection) []domain.Detection {
	out, stats := domain.EnrichProvinces(ctx, detections, e.geocoder, e.logger)

	empty := stats.Attempted - stats.Enriched - stats.Failed
	e.metrics.EnrichOutcomes.WithLabelValues("enriched").Add(float64(stats.Enriched))
	e.metrics.EnrichOutcomes.WithLabelValues("failed").Add(float64(stats.Failed))
	e.metrics.EnrichOutcomes.WithLabelValues("empty").Add(float64(empty))

	if stats.Attempted > 0 {
		e.logger.Info("province enrichment finished",
			"attempted", stats.Attempted,
			"enriched", stats.Enriched,
			"failed", stats.Failed,
		)
	}
	return out
}
