package dashboard

import (
	"cmp"
	"slices"
	"time"

	"github.com/couchcryptid/fire-hotspot-dashboard/internal/domain"
)

// TopProvinceLimit is the number of provinces shown in the bar chart.
const TopProvinceLimit = 10

// ProvinceCount is the number of detections attributed to a province.
type ProvinceCount struct {
	Province string `json:"province"`
	Count    int    `json:"count"`
}

// DailyCount is the number of detections acquired on one date.
type DailyCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// ConfidenceShare is the share of detections with one confidence code.
type ConfidenceShare struct {
	Code    string  `json:"code"`
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// TopProvinces counts detections per province and returns the n largest,
// highest count first. Ties are broken by province name so the result is
// stable across requests. n <= 0 returns every province. Rows without a
// province are not counted.
func TopProvinces(rows []domain.Detection, n int) []ProvinceCount {
	counts := map[string]int{}
	for _, d := range rows {
		if d.Province == "" {
			continue
		}
		counts[d.Province]++
	}

	out := make([]ProvinceCount, 0, len(counts))
	for p, c := range counts {
		out = append(out, ProvinceCount{Province: p, Count: c})
	}
	slices.SortFunc(out, func(a, b ProvinceCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Province, b.Province)
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// DailyCounts counts detections per acquisition date, ascending by date.
func DailyCounts(rows []domain.Detection) []DailyCount {
	counts := map[time.Time]int{}
	for _, d := range rows {
		counts[d.AcqDate]++
	}

	out := make([]DailyCount, 0, len(counts))
	for date, c := range counts {
		out = append(out, DailyCount{Date: date, Count: c})
	}
	slices.SortFunc(out, func(a, b DailyCount) int { return a.Date.Compare(b.Date) })
	return out
}

// ConfidenceShares counts detections per confidence code, sorted by code,
// with each count as a percentage of the rows that carry a code. Rows with
// a blank code are left out of both.
func ConfidenceShares(rows []domain.Detection) []ConfidenceShare {
	counts := map[string]int{}
	total := 0
	for _, d := range rows {
		if d.Confidence == "" {
			continue
		}
		counts[d.Confidence]++
		total++
	}

	out := make([]ConfidenceShare, 0, len(counts))
	for code, c := range counts {
		out = append(out, ConfidenceShare{
			Code:    code,
			Label:   domain.ConfidenceLabel(code),
			Count:   c,
			Percent: float64(c) / float64(total) * 100,
		})
	}
	slices.SortFunc(out, func(a, b ConfidenceShare) int { return cmp.Compare(a.Code, b.Code) })
	return out
}
