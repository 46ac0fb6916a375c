// Command validate runs the VIIRS extract through the loader and
// preprocessor offline and prints a per-phase integrity report: schema,
// acquisition dates, retained years, coordinates, confidence codes and
// provinces. It exits non-zero if any phase fails, so it can gate a data
// refresh before the dashboard is restarted.
//
// Usage:
//
//	go run ./cmd/validate -csv data/viirs-processed.csv -years 2020,2021
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/fire-hotspot-dashboard/internal/adapter/viirscsv"
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/domain"
	"github.com/golang/geo/s2"
)

// maxReported caps the detailed errors printed per phase.
const maxReported = 20

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
	notes  []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) notef(format string, args ...any) {
	p.notes = append(p.notes, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "path to the VIIRS CSV extract")
	years := flag.String("years", "2020,2021", "comma-separated years the dashboard retains")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	retained, err := parseYears(*years)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: -years: %v\n", err)
		os.Exit(1)
	}

	os.Exit(run(os.Stdout, *csvPath, retained))
}

func run(out io.Writer, csvPath string, years []int) int {
	fmt.Fprintln(out, "=== VIIRS Extract Validation ===")
	fmt.Fprintln(out)

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(out, "FATAL: open extract: %v\n", err)
		return 1
	}
	defer f.Close()

	schema := &phase{name: "Schema (required columns)"}
	records, err := viirscsv.ReadRecords(f)
	if err != nil {
		schema.errorf("%v", err)
		report(out, []*phase{schema}, 0)
		return 1
	}
	schema.notef("%d data rows", len(records))

	phases := []*phase{
		schema,
		validateDates(records),
		validateYears(records, years),
		validateCoordinates(records),
		validateConfidence(records),
		validateProvinces(records, years),
		validatePreprocess(records, years),
	}

	return report(out, phases, len(records))
}

func report(out io.Writer, phases []*phase, rows int) int {
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
		for _, n := range p.notes {
			fmt.Fprintf(out, "      %s\n", n)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Records: %d\n", rows)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i == maxReported {
				fmt.Fprintf(out, "  ... %d more\n", len(p.errors)-maxReported)
				break
			}
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Phases ──

func validateDates(records []domain.RawRecord) *phase {
	p := &phase{name: "Acquisition dates (YYYY-MM-DD)"}
	for _, r := range records {
		if _, err := time.Parse(domain.DateLayout, strings.TrimSpace(r.AcqDate)); err != nil {
			p.errorf("row %d: malformed acq_date %q", r.Row, r.AcqDate)
		}
	}
	return p
}

func validateYears(records []domain.RawRecord, years []int) *phase {
	p := &phase{name: "Retained years"}
	counts := make(map[int]int)
	other := 0
	for _, r := range records {
		date, err := time.Parse(domain.DateLayout, strings.TrimSpace(r.AcqDate))
		if err != nil {
			continue
		}
		if slices.Contains(years, date.Year()) {
			counts[date.Year()]++
		} else {
			other++
		}
	}
	for _, y := range years {
		if counts[y] == 0 {
			p.errorf("no detections for retained year %d", y)
			continue
		}
		p.notef("%d: %d detections", y, counts[y])
	}
	if other > 0 {
		p.notef("%d rows outside retained years will be dropped", other)
	}
	return p
}

func validateCoordinates(records []domain.RawRecord) *phase {
	p := &phase{name: "Coordinates (WGS-84)"}
	blank := 0
	for _, r := range records {
		if strings.TrimSpace(r.Latitude) == "" || strings.TrimSpace(r.Longitude) == "" {
			blank++
			continue
		}
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(r.Latitude), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(r.Longitude), 64)
		if latErr != nil || lonErr != nil {
			p.errorf("row %d: unparsable coordinates %q, %q", r.Row, r.Latitude, r.Longitude)
			continue
		}
		if !s2.LatLngFromDegrees(lat, lon).IsValid() {
			p.errorf("row %d: coordinates out of range lat=%g lon=%g", r.Row, lat, lon)
		}
	}
	if blank > 0 {
		p.notef("%d rows have blank coordinates and will be dropped", blank)
	}
	return p
}

func validateConfidence(records []domain.RawRecord) *phase {
	p := &phase{name: "Confidence codes (n, l, h)"}
	unknown := make(map[string]int)
	for _, r := range records {
		code := strings.TrimSpace(r.Confidence)
		if !domain.IsKnownConfidence(code) {
			unknown[code]++
		}
	}
	codes := make([]string, 0, len(unknown))
	for c := range unknown {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	for _, c := range codes {
		p.errorf("unknown confidence code %q in %d rows", c, unknown[c])
	}
	return p
}

// validateProvinces never fails: blank provinces are filled by geocoding when
// it is enabled and otherwise left out of the province bar chart.
func validateProvinces(records []domain.RawRecord, years []int) *phase {
	p := &phase{name: "Provinces"}
	blank := 0
	names := make(map[string]struct{})
	for _, r := range records {
		date, err := time.Parse(domain.DateLayout, strings.TrimSpace(r.AcqDate))
		if err != nil || !slices.Contains(years, date.Year()) {
			continue
		}
		name := strings.TrimSpace(r.Province)
		if name == "" {
			blank++
			continue
		}
		names[name] = struct{}{}
	}
	p.notef("%d distinct provinces", len(names))
	if blank > 0 {
		p.notef("%d retained rows have no province (enable MAPBOX_ENABLED to fill them)", blank)
	}
	return p
}

func validatePreprocess(records []domain.RawRecord, years []int) *phase {
	p := &phase{name: "Strict preprocessing"}
	detections, stats, err := domain.Preprocess(records, domain.PreprocessOptions{Years: years})
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	p.notef("%d read, %d retained, %d out of range, %d missing fields",
		stats.Read, len(detections), stats.OutOfRange, stats.MissingFields)
	return p
}

func parseYears(s string) ([]int, error) {
	var years []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		y, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q", part)
		}
		years = append(years, y)
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("no years given")
	}
	return years, nil
}
