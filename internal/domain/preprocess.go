package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/golang/geo/s2"
)

// DateLayout is the fixed acq_date format of the VIIRS extract.
const DateLayout = "2006-01-02"

// DefaultYears are the years retained by preprocessing unless overridden.
var DefaultYears = []int{2020, 2021}

var (
	// ErrMalformedDate is returned when an acq_date does not match DateLayout.
	ErrMalformedDate = errors.New("malformed acq_date")

	// ErrInvalidField is returned when a numeric column cannot be parsed.
	ErrInvalidField = errors.New("invalid field")

	// errMissingField marks a blank latitude, longitude or frp cell. Preprocess
	// drops such rows instead of failing.
	errMissingField = errors.New("missing field")

	// ErrInvalidCoordinates is returned for latitude/longitude outside WGS-84 ranges.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// PreprocessOptions controls date handling and year retention.
type PreprocessOptions struct {
	// Years to keep. Empty means DefaultYears.
	Years []int

	// SkipMalformedDates drops rows whose acq_date does not parse instead of
	// failing the whole load.
	SkipMalformedDates bool
}

// PreprocessStats summarizes what happened to the input rows.
type PreprocessStats struct {
	Read           int
	Retained       int
	MalformedDates int
	OutOfRange     int
	MissingFields  int
}

// Preprocess parses acquisition dates, derives year and month name, and keeps
// only rows whose year is in the retained set. Retained rows keep their
// source order.
//
// Date parsing runs over every row before filtering: in strict mode a single
// malformed date fails the call even if that row would have been filtered out.
// Numeric fields are only parsed for retained rows. A retained row with a
// blank latitude, longitude or frp is dropped and counted in MissingFields;
// one that holds unparsable text fails the call.
func Preprocess(rows []RawRecord, opts PreprocessOptions) ([]Detection, PreprocessStats, error) {
	years := opts.Years
	if len(years) == 0 {
		years = DefaultYears
	}

	stats := PreprocessStats{Read: len(rows)}
	out := make([]Detection, 0, len(rows))

	for _, row := range rows {
		date, err := parseAcqDate(row.AcqDate)
		if err != nil {
			if opts.SkipMalformedDates {
				stats.MalformedDates++
				continue
			}
			return nil, stats, fmt.Errorf("row %d: %w", row.Row, err)
		}

		if !slices.Contains(years, date.Year()) {
			stats.OutOfRange++
			continue
		}

		d, err := buildDetection(row, date)
		if errors.Is(err, errMissingField) {
			stats.MissingFields++
			continue
		}
		if err != nil {
			return nil, stats, fmt.Errorf("row %d: %w", row.Row, err)
		}
		out = append(out, d)
	}

	stats.Retained = len(out)
	return out, stats, nil
}

func parseAcqDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, value)
	}
	return t, nil
}

func buildDetection(row RawRecord, date time.Time) (Detection, error) {
	lat, err := parseFloatField("latitude", row.Latitude)
	if err != nil {
		return Detection{}, err
	}
	lon, err := parseFloatField("longitude", row.Longitude)
	if err != nil {
		return Detection{}, err
	}
	if !s2.LatLngFromDegrees(lat, lon).IsValid() {
		return Detection{}, fmt.Errorf("%w: lat=%g lon=%g", ErrInvalidCoordinates, lat, lon)
	}
	frp, err := parseFloatField("frp", row.FRP)
	if err != nil {
		return Detection{}, err
	}

	// Brightness is informational only; an empty cell reads as zero.
	var brightness float64
	if strings.TrimSpace(row.Brightness) != "" {
		brightness, err = parseFloatField("brightness", row.Brightness)
		if err != nil {
			return Detection{}, err
		}
	}

	acqTime := normalizeAcqTime(row.AcqTime)

	return Detection{
		ID:         generateID(date, acqTime, lat, lon, frp),
		Latitude:   lat,
		Longitude:  lon,
		AcqDate:    date,
		AcqTime:    acqTime,
		Brightness: brightness,
		FRP:        frp,
		Confidence: strings.TrimSpace(row.Confidence),
		DayNight:   strings.TrimSpace(row.DayNight),
		Type:       strings.TrimSpace(row.Type),
		Province:   strings.TrimSpace(row.Province),
		Year:       date.Year(),
		Month:      date.Month().String(),
	}, nil
}

func parseFloatField(name, value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("%w: %s", errMissingField, name)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidField, name, value)
	}
	return v, nil
}

// normalizeAcqTime left-pads all-digit HHMM values, so "530" becomes "0530".
// Anything else is returned trimmed but otherwise untouched.
func normalizeAcqTime(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || len(value) >= 4 {
		return value
	}
	if _, err := strconv.Atoi(value); err != nil {
		return value
	}
	return strings.Repeat("0", 4-len(value)) + value
}

// generateID produces a deterministic detection ID so the Kafka feed can be
// replayed without creating duplicates downstream.
func generateID(date time.Time, acqTime string, lat, lon, frp float64) string {
	input := fmt.Sprintf("%s|%s|%.5f|%.5f|%g", date.Format(DateLayout), acqTime, lat, lon, frp)
	hash := sha256.Sum256([]byte(input))
	return "viirs-" + hex.EncodeToString(hash[:8])
}
