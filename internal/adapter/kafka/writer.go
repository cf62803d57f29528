// Package kafka publishes normalized alarm records to an export topic so
// downstream consumers (archival, long-term analytics) see the same records
// the summary and notification paths work from. Export is optional; the
// notification cycle never depends on it.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/pulseforge/alarm-report-etl/internal/domain"
)

// Writer produces normalized event records to the export topic.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the export topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// ExportRecords publishes one ingested dataset in a single WriteMessages
// call. ingestedAt stamps every message so consumers can tell report
// generations apart.
func (w *Writer) ExportRecords(ctx context.Context, records []domain.EventRecord, ingestedAt time.Time) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeRecord(records[i], ingestedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeRecord marshals an EventRecord into a Kafka message keyed by
// zone, so one zone's records land on one partition in order.
func serializeRecord(rec domain.EventRecord, ingestedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize event record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(rec.Zone),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "alarm_kind", Value: []byte(rec.Kind)},
			{Key: "ingested_at", Value: []byte(ingestedAt.Format(time.RFC3339))},
		},
	}, nil
}
