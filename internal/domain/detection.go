package domain

import "time"

// RawRecord is one row of the VIIRS CSV extract with every field still text.
type RawRecord struct {
	Row        int // 1-based data row, header excluded
	AcqDate    string
	AcqTime    string
	Latitude   string
	Longitude  string
	Brightness string
	FRP        string
	Confidence string
	DayNight   string
	Type       string
	Province   string
}

// Detection is a single VIIRS fire hotspot after preprocessing.
type Detection struct {
	ID         string    `json:"id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	AcqDate    time.Time `json:"acq_date"`
	AcqTime    string    `json:"acq_time"`
	Brightness float64   `json:"brightness"`
	FRP        float64   `json:"frp"`
	Confidence string    `json:"confidence"`
	DayNight   string    `json:"daynight"`
	Type       string    `json:"type"`
	Province   string    `json:"province"`

	// Derived during preprocessing.
	Year  int    `json:"year"`
	Month string `json:"month"`
}

// DateKey returns the acquisition date in the CSV layout, e.g. "2020-09-14".
func (d Detection) DateKey() string {
	return d.AcqDate.Format(DateLayout)
}
