package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/delivery-quote-service/internal/domain"
	"github.com/couchcryptid/delivery-quote-service/internal/observability"
)

const maxQuoteBody = 1 << 20

type quoteAPI struct {
	geocoder domain.Geocoder
	metrics  *observability.Metrics
	logger   *slog.Logger
}

type zonesResponse struct {
	Warehouse domain.Origin `json:"warehouse"`
	Zones     []domain.Zone `json:"zones"`
}

type feeResponse struct {
	ZoneID string `json:"zone_id"`
	Zone   string `json:"zone"`
	Fee    int    `json:"fee"`
}

type estimateResponse struct {
	Zone          string    `json:"zone"`
	Min           int       `json:"min"`
	Max           int       `json:"max"`
	AverageDays   int       `json:"average_days"`
	EstimatedDate time.Time `json:"estimated_delivery_date"`
	FormattedDate string    `json:"formatted_date"`
	DisplayText   string    `json:"display_text"`
	Warning       string    `json:"warning,omitempty"`
}

type quoteRequest struct {
	OrderID         string            `json:"order_id"`
	Items           []domain.LineItem `json:"items"`
	ShippingAddress domain.Address    `json:"shipping_address"`
	Coordinates     domain.Geo        `json:"coordinates"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *quoteAPI) handleZones(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, zonesResponse{
		Warehouse: domain.Warehouse(),
		Zones:     domain.Zones(),
	})
}

// handleDeliveryFee never rejects input: missing or unknown states price
// at the default zone.
func (a *quoteAPI) handleDeliveryFee(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	z := domain.ClassifyAddress(domain.Address{
		State: q.Get("state"),
		City:  q.Get("city"),
		LGA:   q.Get("lga"),
	})
	a.metrics.QuotesIssued.WithLabelValues(z.ID, "fee").Inc()
	writeJSON(w, http.StatusOK, feeResponse{ZoneID: z.ID, Zone: z.Name, Fee: z.Fee})
}

// handleDeliveryEstimate answers with the default window for unknown zone
// names, flagging them in the warning field.
func (a *quoteAPI) handleDeliveryEstimate(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("zone")

	resp := estimateResponse{}
	if name != "" {
		if _, err := domain.LookupZone(name); errors.Is(err, domain.ErrUnknownZone) {
			a.metrics.UnknownZones.Inc()
			a.logger.Warn("unknown zone requested, using default", "zone", name)
			resp.Warning = err.Error()
		}
	}

	est := domain.CalculateEstimatedDeliveryDate(name)
	resp.Zone = domain.GetDeliveryTimeEstimate(name).ZoneName
	resp.Min = est.Min
	resp.Max = est.Max
	resp.AverageDays = est.AverageDays
	resp.EstimatedDate = est.EstimatedDate
	resp.FormattedDate = domain.FormatDeliveryDate(est.EstimatedDate)
	resp.DisplayText = est.DisplayText
	writeJSON(w, http.StatusOK, resp)
}

func (a *quoteAPI) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQuoteBody))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be a JSON quote request")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order := domain.CompleteAddress(ctx, domain.OrderPlaced{
		OrderID:         req.OrderID,
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		Coordinates:     req.Coordinates,
	}, a.geocoder, a.logger)

	quoted, err := domain.QuoteOrder(order)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a.metrics.QuotesIssued.WithLabelValues(quoted.ZoneID, "api").Inc()
	writeJSON(w, http.StatusOK, quoted)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
