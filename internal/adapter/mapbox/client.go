package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/delivery-quote-service/internal/domain"
	"github.com/couchcryptid/delivery-quote-service/internal/observability"
)

// Client implements domain.Geocoder using the Mapbox Geocoding API.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Mapbox geocoding client.
func NewClient(token string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.mapbox.com/geocoding/v5/mapbox.places",
		metrics: metrics,
		logger:  logger,
	}
}

// ReverseGeocode converts coordinates to state, city, and LGA.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.GeocodingResult, error) {
	// Mapbox uses lon,lat order.
	coord := fmt.Sprintf("%.6f,%.6f", lon, lat)
	u := fmt.Sprintf("%s/%s.json", c.baseURL, coord)
	// Reverse lookups reject limit unless exactly one type is requested.
	// Without it Mapbox returns at most one feature per layer, most
	// specific first.
	params := url.Values{
		"access_token": {c.token},
		"country":      {"ng"},
	}

	start := time.Now()
	result, err := c.doRequest(ctx, u+"?"+params.Encode())
	c.metrics.GeocodeAPIDuration.Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
	case result.State == "":
		c.metrics.GeocodeRequests.WithLabelValues("empty").Inc()
	default:
		c.metrics.GeocodeRequests.WithLabelValues("success").Inc()
	}
	return result, err
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (domain.GeocodingResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.GeocodingResult{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.GeocodingResult{}, fmt.Errorf("reverse geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.GeocodingResult{}, fmt.Errorf("mapbox API error: status %d: %s", resp.StatusCode, body)
	}

	var mapboxResp response
	if err := json.NewDecoder(resp.Body).Decode(&mapboxResp); err != nil {
		return domain.GeocodingResult{}, fmt.Errorf("decode response: %w", err)
	}

	if len(mapboxResp.Features) == 0 {
		c.logger.Debug("mapbox returned no features", "url_path", req.URL.Path)
		return domain.GeocodingResult{}, nil
	}

	f := mapboxResp.Features[0]
	result := domain.GeocodingResult{
		FormattedAddress: f.PlaceName,
		Confidence:       f.Relevance,
	}
	// The feature itself may be the place or district, so it is examined
	// alongside its context. The most specific match is seen first.
	parts := append([]contextEntry{{ID: f.ID, Text: f.Text}}, f.Context...)
	for _, p := range parts {
		switch layer(p.ID) {
		case "region":
			if result.State == "" {
				result.State = normalizeState(p.Text)
			}
		case "place":
			if result.City == "" {
				result.City = p.Text
			}
		case "district", "locality":
			if result.LGA == "" {
				result.LGA = p.Text
			}
		}
	}
	return result, nil
}

// layer returns the Mapbox data layer of a feature ID, e.g. "region.123" -> "region".
func layer(id string) string {
	name, _, _ := strings.Cut(id, ".")
	return name
}

// normalizeState strips the " State" suffix Mapbox sometimes appends, so
// "Edo State" compares equal to the zone table's "Edo".
func normalizeState(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "Federal Capital Territory") {
		return "FCT"
	}
	return strings.TrimSpace(strings.TrimSuffix(s, " State"))
}

// Mapbox API response types.

type response struct {
	Features []feature `json:"features"`
}

type feature struct {
	ID        string         `json:"id"`
	Center    []float64      `json:"center"` // [lon, lat]
	PlaceName string         `json:"place_name"`
	Text      string         `json:"text"`
	Relevance float64        `json:"relevance"`
	Context   []contextEntry `json:"context"`
}

type contextEntry struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}
