package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/delivery-quote-service/internal/domain"
	"github.com/couchcryptid/delivery-quote-service/internal/observability"
)

// QuoteTransformer implements Transformer: it parses an order, optionally
// completes its address by geocoding, and attaches a delivery quote.
type QuoteTransformer struct {
	geocoder domain.Geocoder
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewTransformer creates a QuoteTransformer. Pass a nil geocoder to disable
// address completion.
func NewTransformer(geocoder domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics) *QuoteTransformer {
	return &QuoteTransformer{
		geocoder: geocoder,
		logger:   logger,
		metrics:  metrics,
	}
}

func (t *QuoteTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	order, err := domain.ParseOrderEvent(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	order = domain.CompleteAddress(ctx, order, t.geocoder, t.logger)

	quoted, err := domain.QuoteOrder(order)
	if err != nil {
		return domain.OutputEvent{}, err
	}
	t.metrics.QuotesIssued.WithLabelValues(quoted.ZoneID, "pipeline").Inc()
	t.logger.Debug("order quoted",
		"order_id", quoted.OrderID,
		"zone_id", quoted.ZoneID,
		"delivery_fee", quoted.DeliveryFee,
		"address_source", quoted.AddressSource,
	)

	return domain.SerializeQuotedOrder(quoted)
}
