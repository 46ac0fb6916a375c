package render

import (
	"fmt"
	"image/color"
	"io"
	"slices"

	"github.com/couchcryptid/fire-hotspot-dashboard/internal/dashboard"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var indianRed = color.RGBA{R: 205, G: 92, B: 92, A: 255}

const (
	mapWidth  = 9 * vg.Inch
	mapHeight = 4 * vg.Inch

	// Degrees of padding around the detection bounds.
	mapPadding = 1.0
)

// renderMap draws each detection as a dot at its coordinates, colored by FRP.
func renderMap(w io.Writer, v dashboard.View) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Active Fires %d (colored by Fire Radiative Power)", v.Year)
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"

	points := make(plotter.XYs, len(v.Detections))
	frp := make([]float64, len(v.Detections))
	for i, d := range v.Detections {
		points[i] = plotter.XY{X: d.Longitude, Y: d.Latitude}
		frp[i] = d.FRP
	}

	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(0)
	cmap.SetMax(max(slices.Max(frp), 1))

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return err
	}
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		c, err := cmap.At(min(max(frp[i], cmap.Min()), cmap.Max()))
		if err != nil {
			c = indianRed
		}
		return draw.GlyphStyle{Color: c, Radius: vg.Points(1.5), Shape: draw.CircleGlyph{}}
	}
	p.Add(scatter)

	if v.Bounds != nil {
		p.X.Min = v.Bounds.West - mapPadding
		p.X.Max = v.Bounds.East + mapPadding
		p.Y.Min = v.Bounds.South - mapPadding
		p.Y.Max = v.Bounds.North + mapPadding
	}

	return writePNG(w, p, mapWidth, mapHeight)
}

// renderBar draws the top provinces as horizontal bars, largest on top.
func renderBar(w io.Writer, v dashboard.View) error {
	p := plot.New()
	p.Title.Text = dashboard.BarTitle
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Fire Count"

	// Bars are laid out bottom-up, so reverse to put the largest at the top.
	top := slices.Clone(v.Provinces)
	slices.Reverse(top)

	values := make(plotter.Values, len(top))
	labels := make([]string, len(top))
	for i, pc := range top {
		values[i] = float64(pc.Count)
		labels[i] = pc.Province
	}

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return err
	}
	bars.Horizontal = true
	bars.Color = indianRed
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalY(labels...)
	p.X.Min = 0

	return writePNG(w, p, vg.Points(dashboard.BarWidth), vg.Points(dashboard.BarHeight))
}

func writePNG(w io.Writer, p *plot.Plot, width, height vg.Length) error {
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
