package dashboard

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/fire-hotspot-dashboard/internal/domain"
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/observability"
)

// View is everything the page shows for one year: the four figures plus the
// aggregates they were built from.
type View struct {
	Year        int       `json:"year"`
	GeneratedAt time.Time `json:"generated_at"`
	Total       int       `json:"total"`
	Bounds      *Bounds   `json:"bounds,omitempty"`

	Map  Figure `json:"map"`
	Bar  Figure `json:"bar"`
	Line Figure `json:"line"`
	Pie  Figure `json:"pie"`

	Detections []domain.Detection `json:"-"`
	Provinces  []ProvinceCount    `json:"-"`
	Daily      []DailyCount       `json:"-"`
	Confidence []ConfidenceShare  `json:"-"`
}

// BuildView recomputes every panel from a year slice.
func BuildView(year int, rows []domain.Detection) View {
	v := View{
		Year:        year,
		GeneratedAt: domain.Now(),
		Total:       len(rows),
		Detections:  rows,
		Provinces:   TopProvinces(rows, TopProvinceLimit),
		Daily:       DailyCounts(rows),
		Confidence:  ConfidenceShares(rows),
	}
	if b, ok := DetectionBounds(rows); ok {
		v.Bounds = &b
	}
	v.Map = BuildDensityMap(rows)
	v.Bar = provinceBar(v.Provinces)
	v.Line = dailyLine(v.Daily)
	v.Pie = confidencePie(v.Confidence)
	return v
}

// Service answers per-year view requests from an immutable baseline. It is
// safe for concurrent use.
type Service struct {
	baseline    *domain.Baseline
	defaultYear int
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// NewService creates a Service. If defaultYear is not in the baseline the
// smallest available year is used instead.
func NewService(baseline *domain.Baseline, defaultYear int, logger *slog.Logger, metrics *observability.Metrics) *Service {
	years := baseline.Years()
	if !baseline.HasYear(defaultYear) && len(years) > 0 {
		logger.Warn("default year not in dataset, falling back",
			"requested", defaultYear, "fallback", years[0])
		defaultYear = years[0]
	}
	return &Service{
		baseline:    baseline,
		defaultYear: defaultYear,
		logger:      logger,
		metrics:     metrics,
	}
}

// Years returns the selectable years, ascending.
func (s *Service) Years() []int { return s.baseline.Years() }

// DefaultYear returns the year shown on first page load.
func (s *Service) DefaultYear() int { return s.defaultYear }

// Slice returns the detections for year, or domain.ErrUnknownYear.
func (s *Service) Slice(year int) ([]domain.Detection, error) {
	if !s.baseline.HasYear(year) {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownYear, year)
	}
	return s.baseline.FilterYear(year), nil
}

// View builds the dashboard for year.
func (s *Service) View(year int) (View, error) {
	label := strconv.Itoa(year)
	rows, err := s.Slice(year)
	if err != nil {
		s.metrics.ViewRequests.WithLabelValues("unknown", "unknown_year").Inc()
		return View{}, err
	}

	// Build latency is measured on the wall clock; GeneratedAt comes from the domain clock.
	start := time.Now()
	v := BuildView(year, rows)
	s.metrics.ViewBuildDuration.Observe(time.Since(start).Seconds())
	s.metrics.ViewRequests.WithLabelValues(label, "success").Inc()

	s.logger.Debug("view built", "year", year, "detections", v.Total)
	return v, nil
}
