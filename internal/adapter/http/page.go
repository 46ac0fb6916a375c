package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"
)

// Page copy shown above the charts.
const (
	PageTitle    = "Indonesia Active Fires Dashboard"
	PageSubtitle = "This dashboard shows active fires as observed by the Visible Infrared Imaging Radiometer Suite, or VIIRS, during 2020 to 2021. " +
		"The VIIRS instrument flies on the Joint Polar Satellite System's Suomi-NPP and NOAA-20 polar-orbiting satellites. " +
		"Instruments on polar orbiting satellites typically observe a wildfire at a given location a few times a day as they orbit the Earth from pole to pole. " +
		"VIIRS detects hot spots at a resolution of 375 meters per pixel, which means it can detect smaller, lower temperature fires than other fire-observing satellites. " +
		"VIIRS also provides nighttime fire detection capabilities through its Day-Night Band, which can measure low-intensity visible light emitted by small and fledgling fires."
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type yearOption struct {
	Value    int
	Label    string
	Selected bool
}

type pageData struct {
	Title    string
	Subtitle string
	Years    []yearOption
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	d, ok := s.dashboard()
	if !ok {
		http.Error(w, errDashboardLoading.Error(), http.StatusServiceUnavailable)
		return
	}

	data := pageData{Title: PageTitle, Subtitle: PageSubtitle}
	def := d.DefaultYear()
	for _, y := range d.Years() {
		data.Years = append(data.Years, yearOption{Value: y, Label: strconv.Itoa(y), Selected: y == def})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.logger.Error("render page failed", "error", err)
		http.Error(w, "page rendering failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w) //nolint:errcheck // client went away
}
