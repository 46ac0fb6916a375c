// Package render draws the dashboard panels as PNG images for clients that
// cannot run Plotly, such as reports and chat previews.
package render

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/couchcryptid/fire-hotspot-dashboard/internal/dashboard"
)

// Chart names accepted by Render.
const (
	ChartMap  = "map"
	ChartBar  = "bar"
	ChartLine = "line"
	ChartPie  = "pie"
)

// Charts lists every renderable chart.
var Charts = []string{ChartMap, ChartBar, ChartLine, ChartPie}

var (
	// ErrUnknownChart is returned for a chart name not in Charts.
	ErrUnknownChart = errors.New("unknown chart")

	// ErrNoData is returned when the view has nothing to draw for the chart.
	ErrNoData = errors.New("no detections to render")
)

// hasData reports whether v has anything to draw for chart. The bar and pie
// skip rows without a province or confidence code, so they can be empty
// even when the year has detections.
func hasData(chart string, v dashboard.View) bool {
	switch {
	case v.Total == 0:
		return false
	case chart == ChartBar:
		return len(v.Provinces) > 0
	case chart == ChartPie:
		return len(v.Confidence) > 0
	}
	return true
}

// Render writes chart as a PNG image for the given view.
func Render(w io.Writer, chart string, v dashboard.View) error {
	if !slices.Contains(Charts, chart) {
		return fmt.Errorf("%w: %q", ErrUnknownChart, chart)
	}
	if !hasData(chart, v) {
		return ErrNoData
	}

	var err error
	switch chart {
	case ChartMap:
		err = renderMap(w, v)
	case ChartBar:
		err = renderBar(w, v)
	case ChartLine:
		err = renderLine(w, v)
	case ChartPie:
		err = renderPie(w, v)
	}
	if err != nil {
		return fmt.Errorf("render %s chart: %w", chart, err)
	}
	return nil
}
