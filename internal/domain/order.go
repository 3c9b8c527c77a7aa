package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidOrder wraps every validation failure from ParseOrderEvent and
// CartSubtotal.
var ErrInvalidOrder = errors.New("invalid order")

// ParseOrderEvent deserializes a RawEvent's value into an OrderPlaced. The
// message key stands in for a missing order ID, and the message timestamp
// for a missing placed_at.
func ParseOrderEvent(raw RawEvent) (OrderPlaced, error) {
	var order OrderPlaced
	if err := json.Unmarshal(raw.Value, &order); err != nil {
		return OrderPlaced{}, fmt.Errorf("parse order event: %w", err)
	}

	order.OrderID = strings.TrimSpace(order.OrderID)
	if order.OrderID == "" {
		order.OrderID = string(raw.Key)
	}
	if order.OrderID == "" {
		return OrderPlaced{}, fmt.Errorf("%w: missing order_id", ErrInvalidOrder)
	}
	if order.PlacedAt.IsZero() {
		order.PlacedAt = raw.Timestamp
	}
	if _, err := CartSubtotal(order.Items); err != nil {
		return OrderPlaced{}, fmt.Errorf("order %s: %w", order.OrderID, err)
	}
	return order, nil
}

// CartSubtotal sums price × quantity over the items. An empty cart totals
// zero; negative prices and non-positive quantities are rejected.
func CartSubtotal(items []LineItem) (int, error) {
	total := 0
	for i, it := range items {
		if it.Price < 0 {
			return 0, fmt.Errorf("%w: item %d (%s) has negative price %d", ErrInvalidOrder, i, it.ProductID, it.Price)
		}
		if it.Quantity <= 0 {
			return 0, fmt.Errorf("%w: item %d (%s) has quantity %d", ErrInvalidOrder, i, it.ProductID, it.Quantity)
		}
		total += it.Price * it.Quantity
	}
	return total, nil
}

// QuoteOrder prices an order: subtotal, delivery fee for its shipping
// address, total, and the delivery window projected from now.
func QuoteOrder(order OrderPlaced) (QuotedOrder, error) {
	subtotal, err := CartSubtotal(order.Items)
	if err != nil {
		return QuotedOrder{}, fmt.Errorf("order %s: %w", order.OrderID, err)
	}

	now := clock.Now()
	q := QuoteDeliveryAt(now, order.ShippingAddress)

	return QuotedOrder{
		OrderID:               order.OrderID,
		CustomerID:            order.CustomerID,
		ShippingAddress:       order.ShippingAddress,
		AddressSource:         order.AddressSource,
		Subtotal:              subtotal,
		DeliveryFee:           q.Fee,
		Total:                 subtotal + q.Fee,
		ZoneID:                q.ZoneID,
		Zone:                  q.Zone,
		MinDays:               q.Estimate.Min,
		MaxDays:               q.Estimate.Max,
		AverageDays:           q.Estimate.AverageDays,
		EstimatedDeliveryDate: q.Estimate.EstimatedDate,
		FormattedDeliveryDate: FormatDeliveryDate(q.Estimate.EstimatedDate),
		DisplayText:           q.Estimate.DisplayText,
		QuotedAt:              now,
	}, nil
}

// SerializeQuotedOrder converts a QuotedOrder into an OutputEvent keyed by
// order ID, so all quotes for one order land on the same partition.
func SerializeQuotedOrder(q QuotedOrder) (OutputEvent, error) {
	data, err := json.Marshal(q)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize quoted order: %w", err)
	}
	return OutputEvent{
		Key:   []byte(q.OrderID),
		Value: data,
		Headers: map[string]string{
			"zone_id":   q.ZoneID,
			"quoted_at": q.QuotedAt.Format(time.RFC3339),
		},
	}, nil
}
