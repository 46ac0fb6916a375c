//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/fire-hotspot-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/config"
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/domain"
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/observability"
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus/testutil"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testFeedTopic = "test-viirs-detections"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node KRaft broker and returns its address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("fire-dashboard-test"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates topic through the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     3,
		ReplicationFactor: 1,
	}))
}

type staticExtractor struct {
	records []domain.RawRecord
}

func (s staticExtractor) Extract(_ context.Context) ([]domain.RawRecord, error) {
	return s.records, nil
}

func raw(row int, date, confidence, province string) domain.RawRecord {
	return domain.RawRecord{
		Row: row, AcqDate: date, AcqTime: "0554", Latitude: "-2.2" + strconv.Itoa(row), Longitude: "113.9",
		Brightness: "331.4", FRP: "6.1", Confidence: confidence, DayNight: "D", Type: "0",
		Province: province,
	}
}

// TestDetectionFeed loads a small extract through the pipeline, publishes the
// baseline with kafka.Writer, and reads every message back.
func TestDetectionFeed(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testFeedTopic)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testFeedTopic}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(staticExtractor{records: []domain.RawRecord{
		raw(1, "2019-06-01", "n", "Riau"),
		raw(2, "2020-09-14", "n", "Kalimantan Tengah"),
		raw(3, "2020-09-15", "l", "Riau"),
		raw(4, "2021-08-02", "h", "Jambi"),
	}}, nil, writer, pipeline.Options{}, discardLogger(), metrics)

	baseline, err := p.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, baseline.Len())

	p.Publish(ctx, baseline)
	assert.InDelta(t, 3, testutil.ToFloat64(metrics.MessagesPublished), 0)
	assert.Zero(t, testutil.ToFloat64(metrics.PublishErrors))

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testFeedTopic,
		GroupID:     "feed-test-" + strconv.FormatInt(time.Now().UnixNano(), 10),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = reader.Close() })

	want := make(map[string]domain.Detection)
	for _, d := range baseline.All() {
		want[d.ID] = d
	}

	for range baseline.Len() {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := reader.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read from feed topic")

		headers := make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}

		var got domain.Detection
		require.NoError(t, json.Unmarshal(msg.Value, &got))

		expected, ok := want[string(msg.Key)]
		require.True(t, ok, "unexpected key %s", msg.Key)
		assert.Equal(t, expected, got)
		assert.Equal(t, strconv.Itoa(expected.Year), headers["year"])
		assert.Equal(t, expected.Confidence, headers["confidence"])
		delete(want, string(msg.Key))
	}
	assert.Empty(t, want, "every detection should be published exactly once")
}
