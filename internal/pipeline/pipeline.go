package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/fire-hotspot-dashboard/internal/domain"
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/observability"
)

// Extractor reads every raw record from the source.
type Extractor interface {
	Extract(ctx context.Context) ([]domain.RawRecord, error)
}

// Enricher fills in missing detection attributes. It must not fail the load.
type Enricher interface {
	Enrich(ctx context.Context, detections []domain.Detection) []domain.Detection
}

// Publisher writes detections to a downstream feed.
type Publisher interface {
	Publish(ctx context.Context, detections []domain.Detection) error
}

// Options tunes preprocessing and feed publishing.
type Options struct {
	Preprocess domain.PreprocessOptions

	// PublishAttempts bounds feed retries. Zero means 3.
	PublishAttempts int
}

// Pipeline orchestrates the startup extract-transform-load run that builds
// the dashboard baseline.
type Pipeline struct {
	extractor Extractor
	enricher  Enricher
	publisher Publisher
	opts      Options
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Pipeline. enricher and publisher may be nil to skip province
// enrichment and the detection feed.
func New(e Extractor, en Enricher, pub Publisher, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	if opts.PublishAttempts <= 0 {
		opts.PublishAttempts = 3
	}
	return &Pipeline{
		extractor: e,
		enricher:  en,
		publisher: pub,
		opts:      opts,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once the baseline has been loaded, or an error
// describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("baseline has not been loaded yet")
	}
	return nil
}

// Ready reports whether Run has completed successfully.
func (p *Pipeline) Ready() bool { return p.ready.Load() }

// Run extracts the raw records, preprocesses and enriches them, and returns
// the immutable baseline. Any extract or preprocess error is fatal.
func (p *Pipeline) Run(ctx context.Context) (*domain.Baseline, error) {
	start := time.Now()
	p.logger.Info("pipeline started",
		"retained_years", p.opts.Preprocess.Years,
		"skip_malformed_dates", p.opts.Preprocess.SkipMalformedDates,
	)

	raw, err := p.extractor.Extract(ctx)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	p.metrics.RowsRead.Add(float64(len(raw)))

	detections, stats, err := domain.Preprocess(raw, p.opts.Preprocess)
	if err != nil {
		return nil, fmt.Errorf("preprocess: %w", err)
	}
	p.metrics.RowsDropped.WithLabelValues("malformed_date").Add(float64(stats.MalformedDates))
	p.metrics.RowsDropped.WithLabelValues("out_of_range").Add(float64(stats.OutOfRange))
	p.metrics.RowsDropped.WithLabelValues("missing_field").Add(float64(stats.MissingFields))
	if stats.MalformedDates > 0 {
		p.logger.Warn("skipped rows with malformed acq_date", "count", stats.MalformedDates)
	}
	if stats.MissingFields > 0 {
		p.logger.Warn("skipped rows with blank latitude, longitude or frp", "count", stats.MissingFields)
	}

	if p.enricher != nil {
		detections = p.enricher.Enrich(ctx, detections)
	}

	baseline := domain.NewBaseline(detections)
	p.metrics.RowsRetained.Add(float64(baseline.Len()))
	p.metrics.BaselineSize.Set(float64(baseline.Len()))
	p.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	p.metrics.PipelineReady.Set(1)
	p.ready.Store(true)

	p.logger.Info("baseline loaded",
		"rows_read", stats.Read,
		"detections", baseline.Len(),
		"out_of_range", stats.OutOfRange,
		"years", baseline.Years(),
		"duration", time.Since(start),
	)
	return baseline, nil
}

// Publish writes the baseline to the detection feed, retrying with
// exponential backoff. Failures are logged and counted, never returned: the
// dashboard keeps serving without the feed.
func (p *Pipeline) Publish(ctx context.Context, baseline *domain.Baseline) {
	if p.publisher == nil {
		return
	}
	detections := baseline.All()

	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for attempt := 1; attempt <= p.opts.PublishAttempts; attempt++ {
		err := p.publisher.Publish(ctx, detections)
		if err == nil {
			p.metrics.MessagesPublished.Add(float64(len(detections)))
			p.logger.Info("detections published", "count", len(detections), "attempt", attempt)
			return
		}

		p.metrics.PublishErrors.Inc()
		p.logger.Error("publish detections failed", "error", err, "attempt", attempt)
		if ctx.Err() != nil || attempt == p.opts.PublishAttempts {
			break
		}
		if !sleepWithContext(ctx, backoff) {
			break
		}
		backoff = nextBackoff(backoff, maxBackoff)
	}
	p.logger.Warn("detection feed unavailable, continuing without it")
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
