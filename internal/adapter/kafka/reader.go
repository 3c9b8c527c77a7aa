package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/delivery-quote-service/internal/config"
	"github.com/couchcryptid/delivery-quote-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// messageFetcher is the subset of *kafkago.Reader the Reader uses.
type messageFetcher interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Reader consumes order events from a Kafka topic as part of a consumer group.
// It implements pipeline.BatchExtractor.
type Reader struct {
	reader        messageFetcher
	flushInterval time.Duration
	logger        *slog.Logger
}

// NewReader creates a Kafka consumer for the configured source topic.
// Offsets are committed explicitly through each RawEvent's Commit callback.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     cfg.KafkaBrokers,
		Topic:       cfg.KafkaSourceTopic,
		GroupID:     cfg.KafkaGroupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	return &Reader{reader: r, flushInterval: cfg.BatchFlushInterval, logger: logger}
}

// ExtractBatch fetches up to batchSize messages. It returns early with
// whatever it has once the flush interval elapses, which may be nothing.
// A fetch error after some messages were read ends the batch without an
// error so those messages are still processed; the consumer does not
// hand them out again.
func (r *Reader) ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, r.flushInterval)
	defer cancel()

	batch := make([]domain.RawEvent, 0, batchSize)
	for len(batch) < batchSize {
		msg, err := r.reader.FetchMessage(fetchCtx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if fetchCtx.Err() != nil {
				break
			}
			if len(batch) == 0 {
				return nil, err
			}
			r.logger.Warn("fetch failed, returning partial batch", "error", err, "batch_size", len(batch))
			break
		}

		raw := mapMessageToRawEvent(msg)
		raw.Commit = func(ctx context.Context) error {
			return r.reader.CommitMessages(ctx, msg)
		}
		batch = append(batch, raw)
	}

	if len(batch) > 0 {
		r.logger.Debug("extracted batch", "batch_size", len(batch))
	}
	return batch, nil
}

// Close leaves the consumer group and releases the connection.
func (r *Reader) Close() error {
	return r.reader.Close()
}

// mapMessageToRawEvent copies a Kafka message into the domain RawEvent.
// The Commit callback is attached by the caller.
func mapMessageToRawEvent(msg kafkago.Message) domain.RawEvent {
	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	return domain.RawEvent{
		Key:       msg.Key,
		Value:     msg.Value,
		Headers:   headers,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
	}
}
