package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/couchcryptid/fire-hotspot-dashboard/internal/config"
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// publishChunk caps how many messages go into one WriteMessages call so a
// full-year baseline does not build one huge request.
const publishChunk = 1000

// Writer produces detection messages to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured detection topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes and writes detections in chunks. Messages are keyed by
// detection ID so a replay lands on the same partition.
func (w *Writer) Publish(ctx context.Context, detections []domain.Detection) error {
	for start := 0; start < len(detections); start += publishChunk {
		end := min(start+publishChunk, len(detections))

		msgs := make([]kafkago.Message, 0, end-start)
		for i := start; i < end; i++ {
			msg, err := serializeToMessage(detections[i])
			if err != nil {
				return err
			}
			msgs = append(msgs, msg)
		}
		if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
			return fmt.Errorf("write detections %d-%d: %w", start, end, err)
		}
		w.logger.Debug("published detection chunk", "from", start, "to", end)
	}
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Detection into a Kafka message.
func serializeToMessage(d domain.Detection) (kafkago.Message, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize detection: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(d.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "year", Value: []byte(strconv.Itoa(d.Year))},
			{Key: "confidence", Value: []byte(d.Confidence)},
		},
	}, nil
}
