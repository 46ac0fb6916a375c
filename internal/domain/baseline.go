package domain

import (
	"errors"
	"slices"
	"time"
)

// ErrUnknownYear is returned when a view is requested for a year the baseline
// does not contain.
var ErrUnknownYear = errors.New("year not present in dataset")

// Baseline is the preprocessed detection table. It is built once at startup
// and never mutated afterwards, so it is safe for concurrent readers.
type Baseline struct {
	detections []Detection
	years      []int
	loadedAt   time.Time
}

// NewBaseline copies detections into an immutable baseline.
func NewBaseline(detections []Detection) *Baseline {
	ds := slices.Clone(detections)

	var years []int
	for _, d := range ds {
		if !slices.Contains(years, d.Year) {
			years = append(years, d.Year)
		}
	}
	slices.Sort(years)

	return &Baseline{
		detections: ds,
		years:      years,
		loadedAt:   clock.Now(),
	}
}

// Len returns the number of detections in the baseline.
func (b *Baseline) Len() int { return len(b.detections) }

// LoadedAt reports when the baseline was built.
func (b *Baseline) LoadedAt() time.Time { return b.loadedAt }

// Years returns the distinct years present, ascending.
func (b *Baseline) Years() []int { return slices.Clone(b.years) }

// HasYear reports whether any detection falls in year.
func (b *Baseline) HasYear(year int) bool { return slices.Contains(b.years, year) }

// All returns a copy of every detection in source order.
func (b *Baseline) All() []Detection { return slices.Clone(b.detections) }

// FilterYear returns a fresh slice of the detections acquired in year,
// preserving source order.
func (b *Baseline) FilterYear(year int) []Detection {
	out := make([]Detection, 0)
	for _, d := range b.detections {
		if d.Year == year {
			out = append(out, d)
		}
	}
	return out
}
