// Command genmock writes a deterministic synthetic VIIRS extract for demos and
// tests. Detections cluster around the fire-prone provinces of Sumatra and
// Kalimantan and peak in the August to October dry season. The output goes
// through the same CSV writer the loader reads, so it always round-trips.
//
// Usage:
//
//	go run ./cmd/genmock -out data/viirs-processed.csv -per-year 5000
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/couchcryptid/fire-hotspot-dashboard/internal/adapter/viirscsv"
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/domain"
)

// province is a rough centroid and a relative share of detections.
type province struct {
	name   string
	lat    float64
	lon    float64
	spread float64
	weight int
}

var provinces = []province{
	{name: "Kalimantan Tengah", lat: -1.68, lon: 113.38, spread: 1.2, weight: 18},
	{name: "Kalimantan Barat", lat: -0.28, lon: 111.48, spread: 1.3, weight: 15},
	{name: "Sumatera Selatan", lat: -3.32, lon: 104.91, spread: 1.0, weight: 14},
	{name: "Riau", lat: 0.29, lon: 101.71, spread: 0.9, weight: 12},
	{name: "Jambi", lat: -1.61, lon: 103.61, spread: 0.8, weight: 9},
	{name: "Kalimantan Timur", lat: 0.54, lon: 116.42, spread: 1.2, weight: 7},
	{name: "Kalimantan Selatan", lat: -3.09, lon: 115.28, spread: 0.6, weight: 6},
	{name: "Papua", lat: -4.27, lon: 138.08, spread: 1.8, weight: 6},
	{name: "Nusa Tenggara Timur", lat: -8.66, lon: 121.08, spread: 0.9, weight: 5},
	{name: "Lampung", lat: -4.56, lon: 105.41, spread: 0.6, weight: 3},
	{name: "Sulawesi Selatan", lat: -3.67, lon: 119.97, spread: 0.7, weight: 2},
	{name: "Jawa Timur", lat: -7.54, lon: 112.24, spread: 0.7, weight: 2},
	{name: "Nusa Tenggara Barat", lat: -8.65, lon: 117.36, spread: 0.5, weight: 1},
}

// overpasses are typical Suomi-NPP and NOAA-20 acquisition times in UTC.
var overpasses = []string{"0518", "0554", "0612", "0636", "1712", "1736", "1754", "1830"}

type options struct {
	seed          uint64
	fromYear      int
	toYear        int
	perYear       int
	blankProvince float64
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output CSV path (default stdout)")
	seed := flag.Uint64("seed", 20200914, "random seed")
	from := flag.Int("from", 2019, "first year to generate")
	to := flag.Int("to", 2022, "last year to generate")
	perYear := flag.Int("per-year", 2000, "detections per year")
	blank := flag.Float64("blank-province", 0, "fraction of rows with an empty province (0-1)")
	flag.Parse()

	opts := options{seed: *seed, fromYear: *from, toYear: *to, perYear: *perYear, blankProvince: *blank}
	if err := opts.validate(); err != nil {
		flag.Usage()
		return err
	}

	records := generate(opts)

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := viirscsv.WriteRecords(w, records); err != nil {
		return fmt.Errorf("write extract: %w", err)
	}

	log.Printf("generated %d detections for %d-%d", len(records), opts.fromYear, opts.toYear)
	return nil
}

func (o options) validate() error {
	if o.fromYear > o.toYear {
		return fmt.Errorf("-from %d is after -to %d", o.fromYear, o.toYear)
	}
	if o.perYear <= 0 {
		return fmt.Errorf("-per-year must be positive")
	}
	if o.blankProvince < 0 || o.blankProvince > 1 {
		return fmt.Errorf("-blank-province must be between 0 and 1")
	}
	return nil
}

// generate builds the records year by year, each year in date order.
func generate(opts options) []domain.RawRecord {
	rng := rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15))

	total := 0
	for _, p := range provinces {
		total += p.weight
	}

	var records []domain.RawRecord
	for year := opts.fromYear; year <= opts.toYear; year++ {
		days := dayOfYearCounts(rng, year, opts.perYear)
		for doy, n := range days {
			date := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, doy)
			for range n {
				records = append(records, detection(rng, pick(rng, total), date, opts.blankProvince, len(records)+1))
			}
		}
	}
	return records
}

// dayOfYearCounts spreads n detections over the year with a dry-season peak
// centred on mid September.
func dayOfYearCounts(rng *rand.Rand, year, n int) []int {
	daysInYear := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
	counts := make([]int, daysInYear)
	for range n {
		var doy int
		if rng.Float64() < 0.7 {
			doy = int(math.Round(rng.NormFloat64()*25 + 257))
		} else {
			doy = rng.IntN(daysInYear)
		}
		doy = min(max(doy, 0), daysInYear-1)
		counts[doy]++
	}
	return counts
}

func pick(rng *rand.Rand, total int) province {
	r := rng.IntN(total)
	for _, p := range provinces {
		if r < p.weight {
			return p
		}
		r -= p.weight
	}
	return provinces[len(provinces)-1]
}

func detection(rng *rand.Rand, p province, date time.Time, blankProvince float64, row int) domain.RawRecord {
	acqTime := overpasses[rng.IntN(len(overpasses))]
	dayNight := "N"
	if hour, _ := strconv.Atoi(acqTime[:2]); hour < 12 {
		// Morning UTC overpasses are early afternoon local time over Indonesia.
		dayNight = "D"
	}

	confidence := "n"
	switch r := rng.Float64(); {
	case r < 0.08:
		confidence = "h"
	case r < 0.25:
		confidence = "l"
	}

	name := p.name
	if rng.Float64() < blankProvince {
		name = ""
	}

	return domain.RawRecord{
		Row:        row,
		AcqDate:    date.Format(domain.DateLayout),
		AcqTime:    acqTime,
		Latitude:   formatCoord(p.lat + rng.NormFloat64()*p.spread/2),
		Longitude:  formatCoord(p.lon + rng.NormFloat64()*p.spread/2),
		Brightness: strconv.FormatFloat(300+rng.Float64()*67, 'f', 2, 64),
		FRP:        strconv.FormatFloat(0.5+rng.ExpFloat64()*6, 'f', 2, 64),
		Confidence: confidence,
		DayNight:   dayNight,
		Type:       "0",
		Province:   name,
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 5, 64)
}
