package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/delivery-quote-service/internal/domain"
	"github.com/couchcryptid/delivery-quote-service/internal/observability"
)

// BatchExtractor reads up to batchSize raw order events from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer turns a raw order event into a serialized quoted order.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error)
}

// BatchLoader writes multiple quoted orders to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.OutputEvent) error
}

// Pipeline reads placed orders, quotes them, and publishes the quotes.
// Source offsets are committed only after the batch's quotes are published.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	batchSize   int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// Ready reports whether at least one batch of quotes has been published.
func (p *Pipeline) Ready() bool {
	return p.ready.Load()
}

// CheckReadiness returns nil once the pipeline has published a batch,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not quoted any orders yet")
	}
	return nil
}

// Run quotes batches until the context is cancelled. Extract and load
// failures are retried with backoff; Run itself only returns nil.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	retry := newRetrier()
	for ctx.Err() == nil {
		raws, err := p.extractor.ExtractBatch(ctx, p.batchSize)
		switch {
		case ctx.Err() != nil:
		case err != nil:
			p.logger.Error("extract batch failed", "error", err)
			retry.wait(ctx)
		case len(raws) > 0:
			retry.reset()
			p.handleBatch(ctx, raws, retry)
		}
	}

	p.logger.Info("pipeline stopping", "reason", ctx.Err())
	return nil
}

// handleBatch quotes, publishes, and commits one extracted batch. If the
// context ends before the quotes are published nothing is committed, so
// the whole batch is redelivered to the next consumer.
func (p *Pipeline) handleBatch(ctx context.Context, raws []domain.RawEvent, retry *retrier) {
	start := time.Now()
	p.metrics.MessagesConsumed.Add(float64(len(raws)))
	p.metrics.BatchSize.Observe(float64(len(raws)))

	quotes := p.quote(ctx, raws)
	if len(quotes) > 0 {
		if !p.publish(ctx, quotes, retry) {
			return
		}
		p.metrics.MessagesProduced.Add(float64(len(quotes)))
		p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
		p.ready.Store(true)
	}

	for _, raw := range raws {
		p.commit(ctx, raw)
	}
}

// quote transforms each message. Messages that cannot be quoted are logged
// and dropped; they are still committed with the rest of the batch.
func (p *Pipeline) quote(ctx context.Context, raws []domain.RawEvent) []domain.OutputEvent {
	quotes := make([]domain.OutputEvent, 0, len(raws))
	for _, raw := range raws {
		out, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			p.logger.Warn("quote failed, skipping message",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.TransformErrors.Inc()
			continue
		}
		quotes = append(quotes, out)
	}
	return quotes
}

// publish loads the same quotes until the loader accepts them. Going back
// to extract instead would move the consumer past uncommitted orders.
// Returns false if the context ended first.
func (p *Pipeline) publish(ctx context.Context, quotes []domain.OutputEvent, retry *retrier) bool {
	for attempt := 1; ; attempt++ {
		err := p.loader.LoadBatch(ctx, quotes)
		if err == nil {
			retry.reset()
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("load batch failed, retrying",
			"error", err,
			"batch_size", len(quotes),
			"attempt", attempt,
		)
		if !retry.wait(ctx) {
			return false
		}
	}
}

func (p *Pipeline) commit(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}
