package render

import (
	"fmt"
	"io"
	"time"

	"github.com/couchcryptid/fire-hotspot-dashboard/internal/dashboard"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// YlOrRd reversed, darkest first, matching the interactive pie.
var pieColors = []string{
	"800026", "bd0026", "e31a1c", "fc4e2a", "fd8d3c", "feb24c", "fed976", "ffeda0", "ffffcc",
}

// renderLine draws the daily detection counts.
func renderLine(w io.Writer, v dashboard.View) error {
	daily := padSingleDay(v.Daily)

	xs := make([]time.Time, len(daily))
	ys := make([]float64, len(daily))
	maxY := 1.0
	for i, d := range daily {
		xs[i] = d.Date
		ys[i] = float64(d.Count)
		maxY = max(maxY, ys[i])
	}

	graph := chart.Chart{
		Width:  dashboard.LineWidth,
		Height: dashboard.LineHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 16, Left: 16, Right: 16, Bottom: 8},
		},
		XAxis: chart.XAxis{ValueFormatter: chart.TimeDateValueFormatter},
		YAxis: chart.YAxis{
			Name:  dashboard.LineYTitle,
			Range: &chart.ContinuousRange{Min: 0, Max: maxY * 1.1},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    dashboard.LineYTitle,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("cd5c5c"),
					StrokeWidth: 2,
				},
			},
		},
	}
	return graph.Render(chart.PNG, w)
}

// padSingleDay surrounds a lone date with zero-count neighbours; a time
// series needs at least two points to span an x range.
func padSingleDay(daily []dashboard.DailyCount) []dashboard.DailyCount {
	if len(daily) != 1 {
		return daily
	}
	d := daily[0]
	return []dashboard.DailyCount{
		{Date: d.Date.AddDate(0, 0, -1)},
		d,
		{Date: d.Date.AddDate(0, 0, 1)},
	}
}

// renderPie draws the confidence level shares.
func renderPie(w io.Writer, v dashboard.View) error {
	values := make([]chart.Value, len(v.Confidence))
	for i, s := range v.Confidence {
		values[i] = chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", s.Label, s.Percent),
			Value: s.Percent,
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex(pieColors[i%len(pieColors)]),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
			},
		}
	}

	pie := chart.PieChart{
		Title:  dashboard.PieTitle,
		Width:  dashboard.PieWidth,
		Height: dashboard.PieHeight,
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}
