package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/couchcryptid/fire-hotspot-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []domain.Detection {
	a := det("Riau", "n", day(1, 1))
	a.Latitude, a.Longitude, a.FRP = 0.5, 101.4, 12.5
	b := det("Jambi", "l", day(1, 2))
	b.Latitude, b.Longitude, b.FRP = -1.6, 103.6, 3
	c := det("Riau", "h", day(1, 2))
	c.Latitude, c.Longitude, c.FRP = 1.1, 100.9, 40
	return []domain.Detection{a, b, c}
}

func TestBuildDensityMap(t *testing.T) {
	fig := BuildDensityMap(sampleRows())

	require.Len(t, fig.Data, 1)
	tr := fig.Data[0]
	assert.Equal(t, "densitymapbox", tr.Type)
	assert.Equal(t, []float64{0.5, -1.6, 1.1}, tr.Lat)
	assert.Equal(t, []float64{101.4, 103.6, 100.9}, tr.Lon)
	assert.Equal(t, []float64{12.5, 3, 40}, tr.Z)
	assert.Equal(t, MapRadius, tr.Radius)
	assert.Equal(t, []string{"Riau", "Jambi", "Riau"}, tr.HoverText)
	assert.Equal(t, []any{"2020-01-01", "0530"}, tr.CustomData[0])

	l := fig.Layout
	require.NotNil(t, l.Mapbox)
	assert.Equal(t, "carto-darkmatter", l.Mapbox.Style)
	assert.Equal(t, LatLon{Lat: -2.5, Lon: 118}, l.Mapbox.Center)
	assert.Equal(t, 3.7, l.Mapbox.Zoom)
	assert.Equal(t, 400, l.Height)
	assert.Equal(t, &Margin{L: 1, R: 1, T: 1, B: 1}, l.Margin)
	assert.Equal(t, Transparent, l.PaperBgColor)
	assert.Equal(t, Transparent, l.PlotBgColor)
	require.NotNil(t, l.ColorAxis)
	assert.Equal(t, "Fire<br>Radiative<br>Power", l.ColorAxis.ColorBar.Title.Text)
	assert.Equal(t, 0.75, l.ColorAxis.ColorBar.Len)
	assert.Equal(t, 15, l.ColorAxis.ColorBar.Thickness)
	assert.Equal(t, 0.99, l.ColorAxis.ColorBar.X)
}

func TestMatterReversed(t *testing.T) {
	require.Len(t, MatterReversed, 12)
	assert.Equal(t, ColorStop{Pos: 0, Color: "rgb(47, 15, 61)"}, MatterReversed[0])
	assert.Equal(t, ColorStop{Pos: 1, Color: "rgb(253, 237, 176)"}, MatterReversed[11])
}

func TestBuildProvinceBar(t *testing.T) {
	fig := BuildProvinceBar(sampleRows())

	require.Len(t, fig.Data, 1)
	tr := fig.Data[0]
	assert.Equal(t, "bar", tr.Type)
	assert.Equal(t, "h", tr.Orientation)
	assert.Equal(t, []int{2, 1}, tr.X)
	assert.Equal(t, []string{"Riau", "Jambi"}, tr.Y)
	assert.Equal(t, "indianred", tr.Marker.Color)

	l := fig.Layout
	assert.Equal(t, BarTitle, l.Title.Text)
	assert.Equal(t, 450, l.Width)
	assert.Equal(t, 375, l.Height)
	assert.Equal(t, "total ascending", l.YAxis.CategoryOrder)
	assert.Equal(t, "Fire Count", l.XAxis.Title.Text)
	assert.False(t, *l.XAxis.ShowGrid)
	assert.False(t, *l.YAxis.ShowGrid)
}

func TestBuildDailyLine(t *testing.T) {
	fig := BuildDailyLine(sampleRows())

	tr := fig.Data[0]
	assert.Equal(t, "scatter", tr.Type)
	assert.Equal(t, "lines", tr.Mode)
	assert.Equal(t, []string{"2020-01-01", "2020-01-02"}, tr.X)
	assert.Equal(t, []int{1, 2}, tr.Y)
	assert.Equal(t, "indianred", tr.Line.Color)

	l := fig.Layout
	assert.Equal(t, 1100, l.Width)
	assert.Equal(t, 250, l.Height)
	assert.Equal(t, &Margin{}, l.Margin)
	assert.Contains(t, l.YAxis.Title.Text, "Daily Fire Detection")
}

func TestBuildConfidencePie(t *testing.T) {
	fig := BuildConfidencePie(sampleRows())

	tr := fig.Data[0]
	assert.Equal(t, "pie", tr.Type)
	assert.Equal(t, []string{"High", "Low", "Nominal"}, tr.Labels)
	require.Len(t, tr.Values, 3)
	for _, v := range tr.Values {
		assert.InDelta(t, 33.333, v, 0.001)
	}
	assert.Equal(t, YlOrRdReversed[:3], tr.Marker.Colors)
	assert.Equal(t, PieTitle, fig.Layout.Title.Text)
	assert.Equal(t, 450, fig.Layout.Width)
	assert.Equal(t, 300, fig.Layout.Height)
}

func TestFigureJSON(t *testing.T) {
	data, err := json.Marshal(BuildDailyLine(sampleRows()))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	layout := got["layout"].(map[string]any)
	assert.Equal(t, map[string]any{"l": 0.0, "r": 0.0, "t": 0.0, "b": 0.0}, layout["margin"])
	assert.Equal(t, false, layout["xaxis"].(map[string]any)["showgrid"])

	data, err = json.Marshal(BuildDensityMap(sampleRows()))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"colorscale":[[0,"rgb(47, 15, 61)"]`)
}

func TestConfidencePieJSON_DefaultOrdering(t *testing.T) {
	data, err := json.Marshal(BuildConfidencePie(sampleRows()))
	require.NoError(t, err)

	var got struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got.Data, 1)
	assert.NotContains(t, got.Data[0], "sort")
}

func TestBuilders_EmptySlice(t *testing.T) {
	assert.NotPanics(t, func() {
		BuildDensityMap(nil)
		BuildProvinceBar(nil)
		BuildDailyLine(nil)
		BuildConfidencePie(nil)
	})
}

func TestDetectionBounds(t *testing.T) {
	b, ok := DetectionBounds(sampleRows())

	require.True(t, ok)
	assert.InDelta(t, -1.6, b.South, 1e-9)
	assert.InDelta(t, 1.1, b.North, 1e-9)
	assert.InDelta(t, 100.9, b.West, 1e-9)
	assert.InDelta(t, 103.6, b.East, 1e-9)

	_, ok = DetectionBounds(nil)
	assert.False(t, ok)
}
