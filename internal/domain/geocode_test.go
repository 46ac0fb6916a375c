package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock geocoder ---

type mockGeocoder struct {
	result GeocodingResult
	err    error
	calls  int
}

func (m *mockGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (GeocodingResult, error) {
	m.calls++
	return m.result, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- tests ---

func TestEnrichProvinces_NilGeocoder(t *testing.T) {
	in := []Detection{{ID: "a"}}

	out, stats := EnrichProvinces(context.Background(), in, nil, discardLogger())

	assert.Equal(t, in, out)
	assert.Zero(t, stats.Attempted)
}

func TestEnrichProvinces_FillsMissingProvince(t *testing.T) {
	geo := &mockGeocoder{result: GeocodingResult{PlaceName: "Riau", FormattedAddress: "Riau, Indonesia", Confidence: 0.9}}
	in := []Detection{
		{ID: "a", Latitude: 0.5, Longitude: 101.4},
		{ID: "b", Latitude: -2.2, Longitude: 113.9, Province: testProvince},
	}

	out, stats := EnrichProvinces(context.Background(), in, geo, discardLogger())

	require.Len(t, out, 2)
	assert.Equal(t, "Riau", out[0].Province)
	assert.Equal(t, testProvince, out[1].Province)
	assert.Equal(t, 1, geo.calls)
	assert.Equal(t, EnrichStats{Attempted: 1, Enriched: 1}, stats)
	assert.Empty(t, in[0].Province, "input must not be modified")
}

func TestEnrichProvinces_ErrorGracefulDegradation(t *testing.T) {
	geo := &mockGeocoder{err: errors.New("rate limited")}

	out, stats := EnrichProvinces(context.Background(), []Detection{{ID: "a"}}, geo, discardLogger())

	assert.Empty(t, out[0].Province)
	assert.Equal(t, 1, stats.Failed)
	assert.Zero(t, stats.Enriched)
}

func TestEnrichProvinces_EmptyResult(t *testing.T) {
	geo := &mockGeocoder{}

	out, stats := EnrichProvinces(context.Background(), []Detection{{ID: "a"}}, geo, discardLogger())

	assert.Empty(t, out[0].Province)
	assert.Equal(t, EnrichStats{Attempted: 1}, stats)
}

func TestEnrichProvinces_StopsOnCancelledContext(t *testing.T) {
	geo := &mockGeocoder{result: GeocodingResult{PlaceName: "Riau"}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, stats := EnrichProvinces(ctx, []Detection{{ID: "a"}, {ID: "b"}}, geo, discardLogger())

	assert.Len(t, out, 2)
	assert.Zero(t, geo.calls)
	assert.Zero(t, stats.Attempted)
}
