package dashboard

import (
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/domain"
	"github.com/golang/geo/s2"
)

// Bounds is the lat/lon box enclosing a set of detections, in degrees.
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// DetectionBounds returns the smallest box containing every detection and
// false when rows is empty.
func DetectionBounds(rows []domain.Detection) (Bounds, bool) {
	rect := s2.EmptyRect()
	for _, d := range rows {
		rect = rect.AddPoint(s2.LatLngFromDegrees(d.Latitude, d.Longitude))
	}
	if rect.IsEmpty() {
		return Bounds{}, false
	}
	lo, hi := rect.Lo(), rect.Hi()
	return Bounds{
		South: lo.Lat.Degrees(),
		West:  lo.Lng.Degrees(),
		North: hi.Lat.Degrees(),
		East:  hi.Lng.Degrees(),
	}, true
}
