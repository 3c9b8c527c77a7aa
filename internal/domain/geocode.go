package domain

import (
	"context"
	"log/slog"
)

// Address sources recorded on OrderPlaced.AddressSource.
const (
	AddressProvided   = "provided"
	AddressReverse    = "reverse"
	AddressUnresolved = "unresolved"
	AddressFailed     = "failed"
)

// CompleteAddress reverse-geocodes an order's coordinates when the shipping
// address has no state. Only empty fields are filled; a caller-supplied
// city or LGA is never overwritten. Failures degrade to the address as
// given, which classifies into the default zone.
func CompleteAddress(ctx context.Context, order OrderPlaced, geocoder Geocoder, logger *slog.Logger) OrderPlaced {
	order.AddressSource = AddressProvided
	if geocoder == nil || order.ShippingAddress.State != "" || order.Coordinates.IsZero() {
		return order
	}

	result, err := geocoder.ReverseGeocode(ctx, order.Coordinates.Lat, order.Coordinates.Lon)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"order_id", order.OrderID,
			"lat", order.Coordinates.Lat,
			"lon", order.Coordinates.Lon,
			"error", err,
		)
		order.AddressSource = AddressFailed
		return order
	}
	if result.State == "" {
		logger.Info("reverse geocoding found no state",
			"order_id", order.OrderID,
			"lat", order.Coordinates.Lat,
			"lon", order.Coordinates.Lon,
		)
		order.AddressSource = AddressUnresolved
		return order
	}

	addr := &order.ShippingAddress
	addr.State = result.State
	if addr.City == "" {
		addr.City = result.City
	}
	if addr.LGA == "" {
		addr.LGA = result.LGA
	}
	order.AddressSource = AddressReverse
	return order
}
