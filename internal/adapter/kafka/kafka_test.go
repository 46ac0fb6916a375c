package kafka

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/fire-hotspot-dashboard/internal/config"
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	d := domain.Detection{
		ID:         "viirs-0011223344556677",
		Latitude:   -2.21,
		Longitude:  113.92,
		AcqDate:    time.Date(2020, 9, 14, 0, 0, 0, 0, time.UTC),
		AcqTime:    "0530",
		FRP:        12.4,
		Confidence: "n",
		DayNight:   "D",
		Province:   "Kalimantan Tengah",
		Year:       2020,
		Month:      "September",
	}

	msg, err := serializeToMessage(d)
	require.NoError(t, err)

	assert.Equal(t, []byte("viirs-0011223344556677"), msg.Key)
	assert.Contains(t, string(msg.Value), `"province":"Kalimantan Tengah"`)
	assert.Contains(t, string(msg.Value), `"acq_date":"2020-09-14T00:00:00Z"`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "year", msg.Headers[0].Key)
	assert.Equal(t, []byte("2020"), msg.Headers[0].Value)
	assert.Equal(t, "confidence", msg.Headers[1].Key)
	assert.Equal(t, []byte("n"), msg.Headers[1].Value)

	var back domain.Detection
	require.NoError(t, json.Unmarshal(msg.Value, &back))
	assert.Equal(t, d, back)
}

func TestNewWriter(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"broker1:9092"}, KafkaTopic: "viirs-detections"}

	w := NewWriter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = w.Close() })

	assert.Equal(t, "viirs-detections", w.writer.Topic)
	assert.IsType(t, &kafkago.Hash{}, w.writer.Balancer)
	assert.Equal(t, kafkago.RequireAll, w.writer.RequiredAcks)
}

func TestPublish_Empty(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"127.0.0.1:1"}, KafkaTopic: "viirs-detections"}
	w := NewWriter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = w.Close() })

	assert.NoError(t, w.Publish(context.Background(), nil))
}
