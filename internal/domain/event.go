package domain

import (
	"context"
	"time"
)

// Address is a Nigerian shipping destination. Nothing validates it against
// an authority; unknown combinations fall through to the default zone.
type Address struct {
	State string `json:"state"`
	City  string `json:"city"`
	LGA   string `json:"lga"`
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat,omitempty"`
	Lon float64 `json:"lon,omitempty"`
}

// IsZero reports whether no coordinates were supplied.
func (g Geo) IsZero() bool { return g.Lat == 0 && g.Lon == 0 }

// LineItem is one product line of a cart or order. Price is per unit, in
// the same minor units as zone fees.
type LineItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name,omitempty"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
}

// OrderPlaced is the event the storefront backend publishes at checkout.
type OrderPlaced struct {
	OrderID         string     `json:"order_id"`
	CustomerID      string     `json:"customer_id,omitempty"`
	Items           []LineItem `json:"items"`
	ShippingAddress Address    `json:"shipping_address"`
	Coordinates     Geo        `json:"coordinates,omitempty"`
	PlacedAt        time.Time  `json:"placed_at,omitempty"`

	// AddressSource records how ShippingAddress was obtained:
	// "provided", "reverse" (filled by geocoding), "unresolved" (geocoding
	// found no state), or "failed" (geocoding errored).
	AddressSource string `json:"-"`
}

// QuotedOrder is an order with its delivery fee, totals, and delivery
// window attached.
type QuotedOrder struct {
	OrderID               string    `json:"order_id"`
	CustomerID            string    `json:"customer_id,omitempty"`
	ShippingAddress       Address   `json:"shipping_address"`
	AddressSource         string    `json:"address_source,omitempty"`
	Subtotal              int       `json:"subtotal"`
	DeliveryFee           int       `json:"delivery_fee"`
	Total                 int       `json:"total"`
	ZoneID                string    `json:"zone_id"`
	Zone                  string    `json:"zone"`
	MinDays               int       `json:"min_days"`
	MaxDays               int       `json:"max_days"`
	AverageDays           int       `json:"average_days"`
	EstimatedDeliveryDate time.Time `json:"estimated_delivery_date"`
	FormattedDeliveryDate string    `json:"formatted_delivery_date"`
	DisplayText           string    `json:"display_text"`
	QuotedAt              time.Time `json:"quoted_at"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
