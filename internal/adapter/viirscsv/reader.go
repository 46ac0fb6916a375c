package viirscsv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/couchcryptid/fire-hotspot-dashboard/internal/domain"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ErrMissingColumn is returned when the extract lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// Column names of the VIIRS extract.
const (
	ColAcqDate    = "acq_date"
	ColAcqTime    = "acq_time"
	ColLatitude   = "latitude"
	ColLongitude  = "longitude"
	ColBrightness = "brightness"
	ColFRP        = "frp"
	ColConfidence = "confidence"
	ColDayNight   = "daynight"
	ColType       = "type"
	ColProvince   = "province"
)

// RequiredColumns must be present in every extract. The remaining columns
// read as empty strings when absent.
var RequiredColumns = []string{
	ColAcqDate, ColAcqTime, ColLatitude, ColLongitude, ColFRP, ColConfidence, ColProvince,
}

// Columns lists every column the loader understands, in file order for
// generated extracts.
var Columns = []string{
	ColLatitude, ColLongitude, ColBrightness, ColAcqDate, ColAcqTime,
	ColConfidence, ColFRP, ColDayNight, ColType, ColProvince,
}

// Reader loads the VIIRS CSV extract from disk.
// It implements pipeline.Extractor.
type Reader struct {
	path   string
	logger *slog.Logger
}

// NewReader creates a Reader for the CSV at path.
func NewReader(path string, logger *slog.Logger) *Reader {
	return &Reader{path: path, logger: logger}
}

// Extract reads every row of the extract.
func (r *Reader) Extract(ctx context.Context) ([]domain.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open extract: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	r.logger.Info("extract loaded", "path", r.path, "rows", len(records))
	return records, nil
}

// ReadRecords parses a CSV stream into raw records. Every column is read as
// text; typing happens in domain.Preprocess so errors carry row context.
func ReadRecords(rd io.Reader) ([]domain.RawRecord, error) {
	df := dataframe.ReadCSV(rd,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parse csv: %w", df.Err)
	}

	names := df.Names()
	for _, col := range RequiredColumns {
		if !slices.Contains(names, col) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	column := func(name string) []string {
		if !slices.Contains(names, name) {
			return make([]string, df.Nrow())
		}
		return df.Col(name).Records()
	}

	acqDate := column(ColAcqDate)
	acqTime := column(ColAcqTime)
	lat := column(ColLatitude)
	lon := column(ColLongitude)
	brightness := column(ColBrightness)
	frp := column(ColFRP)
	confidence := column(ColConfidence)
	dayNight := column(ColDayNight)
	typ := column(ColType)
	province := column(ColProvince)

	out := make([]domain.RawRecord, df.Nrow())
	for i := range out {
		out[i] = domain.RawRecord{
			Row:        i + 1,
			AcqDate:    acqDate[i],
			AcqTime:    acqTime[i],
			Latitude:   lat[i],
			Longitude:  lon[i],
			Brightness: brightness[i],
			FRP:        frp[i],
			Confidence: confidence[i],
			DayNight:   dayNight[i],
			Type:       typ[i],
			Province:   province[i],
		}
	}
	return out, nil
}

// WriteRecords writes detections as a VIIRS extract with the standard header.
// Used by the mock generator so fixtures round-trip through ReadRecords.
func WriteRecords(w io.Writer, records []domain.RawRecord) error {
	cols := map[string][]string{}
	for _, name := range Columns {
		cols[name] = make([]string, len(records))
	}
	for i, r := range records {
		cols[ColLatitude][i] = r.Latitude
		cols[ColLongitude][i] = r.Longitude
		cols[ColBrightness][i] = r.Brightness
		cols[ColAcqDate][i] = r.AcqDate
		cols[ColAcqTime][i] = r.AcqTime
		cols[ColConfidence][i] = r.Confidence
		cols[ColFRP][i] = r.FRP
		cols[ColDayNight][i] = r.DayNight
		cols[ColType][i] = r.Type
		cols[ColProvince][i] = r.Province
	}

	ss := make([]series.Series, 0, len(Columns))
	for _, name := range Columns {
		ss = append(ss, series.New(cols[name], series.String, name))
	}
	df := dataframe.New(ss...)
	if df.Err != nil {
		return fmt.Errorf("build dataframe: %w", df.Err)
	}
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
