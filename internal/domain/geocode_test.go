package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- mock geocoder ---

type mockGeocoder struct {
	result GeocodingResult
	err    error
	calls  int
}

func (m *mockGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (GeocodingResult, error) {
	m.calls++
	return m.result, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var beninCoords = Geo{Lat: 6.335, Lon: 5.6037}

// --- tests ---

func TestCompleteAddress_NilGeocoder(t *testing.T) {
	order := OrderPlaced{OrderID: "o-1", Coordinates: beninCoords}

	result := CompleteAddress(context.Background(), order, nil, discardLogger())

	assert.Equal(t, AddressProvided, result.AddressSource)
	assert.Empty(t, result.ShippingAddress.State)
}

func TestCompleteAddress_StatePresentSkipsLookup(t *testing.T) {
	geo := &mockGeocoder{result: GeocodingResult{State: "Lagos"}}
	order := OrderPlaced{
		OrderID:         "o-2",
		ShippingAddress: Address{State: "Edo", City: "Benin City", LGA: "Oredo"},
		Coordinates:     beninCoords,
	}

	result := CompleteAddress(context.Background(), order, geo, discardLogger())

	assert.Equal(t, "Edo", result.ShippingAddress.State)
	assert.Equal(t, AddressProvided, result.AddressSource)
	assert.Equal(t, 0, geo.calls)
}

func TestCompleteAddress_NoCoordinatesSkipsLookup(t *testing.T) {
	geo := &mockGeocoder{}

	result := CompleteAddress(context.Background(), OrderPlaced{OrderID: "o-3"}, geo, discardLogger())

	assert.Equal(t, AddressProvided, result.AddressSource)
	assert.Equal(t, 0, geo.calls)
}

func TestCompleteAddress_ReverseFillsEmptyFields(t *testing.T) {
	geo := &mockGeocoder{result: GeocodingResult{
		State:            "Edo",
		City:             "Benin City",
		LGA:              "Oredo",
		FormattedAddress: "Ring Road, Benin City, Edo, Nigeria",
		Confidence:       0.9,
	}}
	order := OrderPlaced{
		OrderID:         "o-4",
		ShippingAddress: Address{LGA: "Egor"},
		Coordinates:     beninCoords,
	}

	result := CompleteAddress(context.Background(), order, geo, discardLogger())

	assert.Equal(t, AddressReverse, result.AddressSource)
	assert.Equal(t, Address{State: "Edo", City: "Benin City", LGA: "Egor"}, result.ShippingAddress)
	assert.Equal(t, 1, geo.calls)
	assert.Equal(t, ZoneSameCity, ClassifyAddress(result.ShippingAddress).ID)
}

func TestCompleteAddress_ErrorDegrades(t *testing.T) {
	geo := &mockGeocoder{err: errors.New("rate limited")}
	order := OrderPlaced{OrderID: "o-5", Coordinates: beninCoords}

	result := CompleteAddress(context.Background(), order, geo, discardLogger())

	assert.Equal(t, AddressFailed, result.AddressSource)
	assert.Empty(t, result.ShippingAddress.State)
	assert.Equal(t, ZoneNorthern, ClassifyAddress(result.ShippingAddress).ID)
}

func TestCompleteAddress_EmptyResultMarkedUnresolved(t *testing.T) {
	geo := &mockGeocoder{result: GeocodingResult{City: "Somewhere Else"}}
	order := OrderPlaced{OrderID: "o-6", ShippingAddress: Address{City: "Somewhere"}, Coordinates: beninCoords}

	result := CompleteAddress(context.Background(), order, geo, discardLogger())

	assert.Equal(t, AddressUnresolved, result.AddressSource)
	assert.Equal(t, "Somewhere", result.ShippingAddress.City)
	assert.Empty(t, result.ShippingAddress.State)
	assert.Equal(t, ZoneNorthern, ClassifyAddress(result.ShippingAddress).ID)
}
