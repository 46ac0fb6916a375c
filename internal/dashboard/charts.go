package dashboard

import (
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/domain"
)

// Figure styling shared by the four panels.
const (
	ChartColor  = "indianred"
	Transparent = "rgba(0, 0, 0, 0)"
	FontColor   = "#f2f5fa"

	MapStyle  = "carto-darkmatter"
	MapRadius = 1.5
	MapZoom   = 3.7
	MapHeight = 400

	BarTitle  = "Top 10 Provinces (January to December)"
	BarWidth  = 450
	BarHeight = 375

	LineYTitle = "Daily Fire Detection"
	LineWidth  = 1100
	LineHeight = 250

	PieTitle  = "Fire Confidence Level"
	PieWidth  = 450
	PieHeight = 300

	titleFontSize     = 14
	axisTitleFontSize = 12
)

// MapCenter is the initial map view over the Indonesian archipelago.
var MapCenter = LatLon{Lat: -2.5, Lon: 118}

// MatterReversed is Plotly's "matter_r" colorscale: pale yellow for low FRP
// through deep purple for high. Stops are evenly spaced.
var MatterReversed = evenStops(
	"rgb(47, 15, 61)",
	"rgb(76, 21, 80)",
	"rgb(107, 24, 93)",
	"rgb(138, 29, 99)",
	"rgb(168, 40, 96)",
	"rgb(195, 56, 90)",
	"rgb(216, 80, 83)",
	"rgb(231, 109, 84)",
	"rgb(240, 142, 98)",
	"rgb(246, 173, 119)",
	"rgb(250, 205, 145)",
	"rgb(253, 237, 176)",
)

// YlOrRdReversed is Plotly's sequential "YlOrRd_r" palette, darkest first.
var YlOrRdReversed = []string{
	"rgb(128,0,38)",
	"rgb(189,0,38)",
	"rgb(227,26,28)",
	"rgb(252,78,42)",
	"rgb(253,141,60)",
	"rgb(254,178,76)",
	"rgb(254,217,118)",
	"rgb(255,237,160)",
	"rgb(255,255,204)",
}

func evenStops(colors ...string) []ColorStop {
	stops := make([]ColorStop, len(colors))
	for i, c := range colors {
		stops[i] = ColorStop{Pos: float64(i) / float64(len(colors)-1), Color: c}
	}
	return stops
}

func darkLayout() Layout {
	return Layout{
		Font:         &Font{Color: FontColor},
		PaperBgColor: Transparent,
		PlotBgColor:  Transparent,
	}
}

// BuildDensityMap builds the FRP-weighted density map. Every detection is a
// point; hover shows the province with date, time and FRP.
func BuildDensityMap(rows []domain.Detection) Figure {
	n := len(rows)
	lat := make([]float64, n)
	lon := make([]float64, n)
	z := make([]float64, n)
	hover := make([]string, n)
	custom := make([][]any, n)
	for i, d := range rows {
		lat[i] = d.Latitude
		lon[i] = d.Longitude
		z[i] = d.FRP
		hover[i] = d.Province
		custom[i] = []any{d.DateKey(), d.AcqTime}
	}

	layout := darkLayout()
	layout.AutoSize = true
	layout.Height = MapHeight
	layout.Margin = &Margin{L: 1, R: 1, T: 1, B: 1}
	layout.Mapbox = &Mapbox{Style: MapStyle, Center: MapCenter, Zoom: MapZoom}
	layout.ColorAxis = &ColorAxis{
		ColorScale: MatterReversed,
		ShowScale:  true,
		ColorBar: &ColorBar{
			Title:     Title{Text: "Fire<br>Radiative<br>Power"},
			Len:       0.75,
			Thickness: 15,
			X:         0.99,
		},
	}

	return Figure{
		Data: []Trace{{
			Type:          "densitymapbox",
			Lat:           lat,
			Lon:           lon,
			Z:             z,
			Radius:        MapRadius,
			ColorAxis:     "coloraxis",
			HoverText:     hover,
			CustomData:    custom,
			HoverTemplate: "<b>%{hovertext}</b><br><br>acq_date=%{customdata[0]}<br>acq_time=%{customdata[1]}<br>frp=%{z}<extra></extra>",
		}},
		Layout: layout,
	}
}

// BuildProvinceBar builds the horizontal top-10 province bar chart. The
// largest province is drawn at the top.
func BuildProvinceBar(rows []domain.Detection) Figure {
	return provinceBar(TopProvinces(rows, TopProvinceLimit))
}

func provinceBar(top []ProvinceCount) Figure {
	x := make([]int, len(top))
	y := make([]string, len(top))
	for i, p := range top {
		x[i] = p.Count
		y[i] = p.Province
	}

	layout := darkLayout()
	layout.Width = BarWidth
	layout.Height = BarHeight
	layout.Title = &Title{Text: BarTitle, Font: &Font{Size: titleFontSize}}
	layout.XAxis = &Axis{
		Title:    &Title{Text: "Fire Count", Font: &Font{Size: axisTitleFontSize}},
		ShowGrid: boolPtr(false),
	}
	layout.YAxis = &Axis{
		Title:         &Title{Text: ""},
		ShowGrid:      boolPtr(false),
		CategoryOrder: "total ascending",
	}

	return Figure{
		Data: []Trace{{
			Type:          "bar",
			Orientation:   "h",
			X:             x,
			Y:             y,
			Marker:        &Marker{Color: ChartColor},
			HoverTemplate: "Fire Count=%{x}<br>province=%{y}<extra></extra>",
		}},
		Layout: layout,
	}
}

// BuildDailyLine builds the daily detection count line chart.
func BuildDailyLine(rows []domain.Detection) Figure {
	return dailyLine(DailyCounts(rows))
}

func dailyLine(daily []DailyCount) Figure {
	x := make([]string, len(daily))
	y := make([]int, len(daily))
	for i, d := range daily {
		x[i] = d.Date.Format(domain.DateLayout)
		y[i] = d.Count
	}

	layout := darkLayout()
	layout.Width = LineWidth
	layout.Height = LineHeight
	layout.Margin = &Margin{}
	layout.XAxis = &Axis{Title: &Title{Text: ""}, ShowGrid: boolPtr(false), Type: "date"}
	layout.YAxis = &Axis{
		Title:    &Title{Text: "<b>" + LineYTitle + "</b>", Font: &Font{Size: axisTitleFontSize}},
		ShowGrid: boolPtr(false),
	}

	return Figure{
		Data: []Trace{{
			Type:          "scatter",
			Mode:          "lines",
			X:             x,
			Y:             y,
			Line:          &Line{Color: ChartColor},
			HoverTemplate: "%{x}<br>" + LineYTitle + "=%{y}<extra></extra>",
		}},
		Layout: layout,
	}
}

// BuildConfidencePie builds the confidence level pie chart.
func BuildConfidencePie(rows []domain.Detection) Figure {
	return confidencePie(ConfidenceShares(rows))
}

func confidencePie(shares []ConfidenceShare) Figure {
	labels := make([]string, len(shares))
	values := make([]float64, len(shares))
	colors := make([]string, len(shares))
	for i, s := range shares {
		labels[i] = s.Label
		values[i] = s.Percent
		colors[i] = YlOrRdReversed[i%len(YlOrRdReversed)]
	}

	layout := darkLayout()
	layout.Width = PieWidth
	layout.Height = PieHeight
	layout.Title = &Title{Text: PieTitle, Font: &Font{Size: titleFontSize}}

	return Figure{
		Data: []Trace{{
			Type:   "pie",
			Labels: labels,
			Values: values,
			Marker: &Marker{Colors: colors},
		}},
		Layout: layout,
	}
}
