package dashboard

import (
	"encoding/json"
)

// Figure is a Plotly figure specification. It marshals to the JSON shape
// Plotly.newPlot expects, so the page can hand it to the browser unchanged.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is the subset of Plotly trace attributes the dashboard uses.
type Trace struct {
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	Orientation string `json:"orientation,omitempty"`
	Mode        string `json:"mode,omitempty"`

	// Cartesian traces.
	X any `json:"x,omitempty"`
	Y any `json:"y,omitempty"`

	// densitymapbox.
	Lat       []float64 `json:"lat,omitempty"`
	Lon       []float64 `json:"lon,omitempty"`
	Z         []float64 `json:"z,omitempty"`
	Radius    float64   `json:"radius,omitempty"`
	ColorAxis string    `json:"coloraxis,omitempty"`

	// pie.
	Labels []string  `json:"labels,omitempty"`
	Values []float64 `json:"values,omitempty"`

	HoverText     []string `json:"hovertext,omitempty"`
	CustomData    [][]any  `json:"customdata,omitempty"`
	HoverTemplate string   `json:"hovertemplate,omitempty"`

	Marker *Marker `json:"marker,omitempty"`
	Line   *Line   `json:"line,omitempty"`
}

// Marker styles bar and pie segments.
type Marker struct {
	Color  string   `json:"color,omitempty"`
	Colors []string `json:"colors,omitempty"`
}

// Line styles a line trace.
type Line struct {
	Color string `json:"color,omitempty"`
}

// Layout is the subset of Plotly layout attributes the dashboard uses.
type Layout struct {
	Title        *Title     `json:"title,omitempty"`
	AutoSize     bool       `json:"autosize"`
	Width        int        `json:"width,omitempty"`
	Height       int        `json:"height,omitempty"`
	Margin       *Margin    `json:"margin,omitempty"`
	Font         *Font      `json:"font,omitempty"`
	PaperBgColor string     `json:"paper_bgcolor,omitempty"`
	PlotBgColor  string     `json:"plot_bgcolor,omitempty"`
	Mapbox       *Mapbox    `json:"mapbox,omitempty"`
	ColorAxis    *ColorAxis `json:"coloraxis,omitempty"`
	XAxis        *Axis      `json:"xaxis,omitempty"`
	YAxis        *Axis      `json:"yaxis,omitempty"`
	ShowLegend   *bool      `json:"showlegend,omitempty"`
}

// Title is a chart or axis title.
type Title struct {
	Text string `json:"text"`
	Font *Font  `json:"font,omitempty"`
}

// Font sets text color and size. Zero values are omitted.
type Font struct {
	Color string `json:"color,omitempty"`
	Size  int    `json:"size,omitempty"`
}

// Margin is always emitted in full; Plotly treats a missing side as its
// default of 80px, not zero.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Mapbox positions the base map.
type Mapbox struct {
	Style  string  `json:"style"`
	Center LatLon  `json:"center"`
	Zoom   float64 `json:"zoom"`
}

// LatLon is a map coordinate.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ColorAxis holds a shared continuous color scale.
type ColorAxis struct {
	ColorScale []ColorStop `json:"colorscale"`
	ShowScale  bool        `json:"showscale"`
	ColorBar   *ColorBar   `json:"colorbar,omitempty"`
}

// ColorBar configures the legend of a continuous color scale.
type ColorBar struct {
	Title     Title   `json:"title"`
	Len       float64 `json:"len"`
	Thickness int     `json:"thickness"`
	X         float64 `json:"x"`
}

// ColorStop is one entry of a Plotly colorscale.
type ColorStop struct {
	Pos   float64
	Color string
}

// MarshalJSON encodes the stop as the [position, color] pair Plotly expects.
func (c ColorStop) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Pos, c.Color})
}

// Axis configures a cartesian axis.
type Axis struct {
	Title         *Title `json:"title,omitempty"`
	ShowGrid      *bool  `json:"showgrid,omitempty"`
	CategoryOrder string `json:"categoryorder,omitempty"`
	Type          string `json:"type,omitempty"`
}

func boolPtr(v bool) *bool { return &v }
