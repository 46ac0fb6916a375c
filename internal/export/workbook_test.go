package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/couchcryptid/fire-hotspot-dashboard/internal/dashboard"
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func view() dashboard.View {
	date := func(d int) time.Time { return time.Date(2020, 9, d, 0, 0, 0, 0, time.UTC) }
	rows := []domain.Detection{
		{Latitude: 0.5, Longitude: 101.4, AcqDate: date(1), Confidence: "n", Province: "Riau", Year: 2020},
		{Latitude: -1.6, Longitude: 103.6, AcqDate: date(1), Confidence: "n", Province: "Jambi", Year: 2020},
		{Latitude: 1.1, Longitude: 100.9, AcqDate: date(3), Confidence: "l", Province: "Riau", Year: 2020},
	}
	return dashboard.BuildView(2020, rows)
}

func openWorkbook(t *testing.T, v dashboard.View) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, v))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWrite_Sheets(t *testing.T) {
	f := openWorkbook(t, view())

	assert.Equal(t, []string{SheetSummary, SheetProvinces, SheetDaily, SheetConfidence}, f.GetSheetList())
}

func TestWrite_Summary(t *testing.T) {
	f := openWorkbook(t, view())

	rows, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 4)
	assert.Equal(t, []string{"Field", "Value"}, rows[0])
	assert.Equal(t, []string{"Year", "2020"}, rows[1])
	assert.Equal(t, []string{"Detections", "3"}, rows[2])
}

func TestWrite_TopProvinces(t *testing.T) {
	f := openWorkbook(t, view())

	rows, err := f.GetRows(SheetProvinces)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Rank", "Province", "Fire Count"},
		{"1", "Riau", "2"},
		{"2", "Jambi", "1"},
	}, rows)
}

func TestWrite_Daily(t *testing.T) {
	f := openWorkbook(t, view())

	rows, err := f.GetRows(SheetDaily)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Date", "Fire Count"},
		{"2020-09-01", "2"},
		{"2020-09-03", "1"},
	}, rows)
}

func TestWrite_ConfidenceRounded(t *testing.T) {
	f := openWorkbook(t, view())

	rows, err := f.GetRows(SheetConfidence)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Code", "Confidence", "Count", "Percent"},
		{"l", "Low", "1", "33.3"},
		{"n", "Nominal", "2", "66.7"},
	}, rows)
}

func TestWrite_EmptyView(t *testing.T) {
	f := openWorkbook(t, dashboard.BuildView(2021, nil))

	rows, err := f.GetRows(SheetProvinces)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "indonesia-active-fires-2021.xlsx", Filename(2021))
}
