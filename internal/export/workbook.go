// Package export writes a year view as an Excel workbook.
package export

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/couchcryptid/fire-hotspot-dashboard/internal/dashboard"
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Sheet names, in workbook order.
const (
	SheetSummary    = "Summary"
	SheetProvinces  = "Top Provinces"
	SheetDaily      = "Daily Detections"
	SheetConfidence = "Confidence"
)

// ContentType is the MIME type of the workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Filename returns the download name for a year's workbook.
func Filename(year int) string {
	return fmt.Sprintf("indonesia-active-fires-%d.xlsx", year)
}

// Write renders v as an XLSX workbook with one sheet per panel.
func Write(w io.Writer, v dashboard.View) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // in-memory workbook

	b := &builder{f: f}
	b.header, b.err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	b.sheet(SheetSummary, []any{"Field", "Value"}, 24, summaryRows(v))

	provinces := make([][]any, len(v.Provinces))
	for i, p := range v.Provinces {
		provinces[i] = []any{i + 1, p.Province, p.Count}
	}
	b.sheet(SheetProvinces, []any{"Rank", "Province", "Fire Count"}, 22, provinces)

	daily := make([][]any, len(v.Daily))
	for i, d := range v.Daily {
		daily[i] = []any{d.Date.Format(domain.DateLayout), d.Count}
	}
	b.sheet(SheetDaily, []any{"Date", "Fire Count"}, 16, daily)

	confidence := make([][]any, len(v.Confidence))
	for i, c := range v.Confidence {
		confidence[i] = []any{c.Code, c.Label, c.Count, roundTenth(c.Percent)}
	}
	b.sheet(SheetConfidence, []any{"Code", "Confidence", "Count", "Percent"}, 14, confidence)

	if b.err != nil {
		return fmt.Errorf("build workbook: %w", b.err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func summaryRows(v dashboard.View) [][]any {
	rows := [][]any{
		{"Year", v.Year},
		{"Detections", v.Total},
		{"Generated at", v.GeneratedAt.UTC().Format(time.RFC3339)},
	}
	if v.Bounds != nil {
		rows = append(rows,
			[]any{"South", v.Bounds.South},
			[]any{"West", v.Bounds.West},
			[]any{"North", v.Bounds.North},
			[]any{"East", v.Bounds.East},
		)
	}
	return rows
}

// builder accumulates the first error so sheet writes read linearly.
type builder struct {
	f      *excelize.File
	header int
	err    error
}

func (b *builder) sheet(name string, header []any, width float64, rows [][]any) {
	if b.err != nil {
		return
	}
	if name == SheetSummary {
		b.err = b.f.SetSheetName("Sheet1", name)
	} else {
		_, b.err = b.f.NewSheet(name)
	}
	if b.err != nil {
		return
	}

	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if b.err = b.f.SetColWidth(name, "A", last[:len(last)-1], width); b.err != nil {
		return
	}
	if b.err = b.f.SetSheetRow(name, "A1", &header); b.err != nil {
		return
	}
	if b.err = b.f.SetCellStyle(name, "A1", last, b.header); b.err != nil {
		return
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if b.err = b.f.SetSheetRow(name, cell, &row); b.err != nil {
			return
		}
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
