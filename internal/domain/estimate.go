package domain

import (
	"fmt"
	"time"
)

// deliveryDateLayout renders dates like "Jan 15, 2025".
const deliveryDateLayout = "Jan 2, 2006"

// DeliveryTimeEstimate is a zone's delivery window in business days.
type DeliveryTimeEstimate struct {
	ZoneName string `json:"zone"`
	Min      int    `json:"min"`
	Max      int    `json:"max"`
}

// EstimatedDelivery is a delivery window projected onto the calendar.
type EstimatedDelivery struct {
	EstimatedDate time.Time `json:"estimated_delivery_date"`
	DisplayText   string    `json:"display_text"`
	Min           int       `json:"min"`
	Max           int       `json:"max"`
	AverageDays   int       `json:"average_days"`
}

// GetDeliveryTimeEstimate returns the business-day window for a zone name.
// Unknown names fall back to the default zone's window.
func GetDeliveryTimeEstimate(zoneName string) DeliveryTimeEstimate {
	z := ResolveZone(zoneName)
	return DeliveryTimeEstimate{ZoneName: z.Name, Min: z.MinDays, Max: z.MaxDays}
}

// CalculateEstimatedDeliveryDate projects a zone's window from today. An
// empty zone name behaves like DefaultZoneName.
func CalculateEstimatedDeliveryDate(zoneName string) EstimatedDelivery {
	return EstimateFrom(clock.Now(), zoneName)
}

// EstimateFrom projects a zone's window from the given start time.
func EstimateFrom(start time.Time, zoneName string) EstimatedDelivery {
	if zoneName == "" {
		zoneName = DefaultZoneName
	}
	window := GetDeliveryTimeEstimate(zoneName)
	avg := averageDays(window.Min, window.Max)

	return EstimatedDelivery{
		EstimatedDate: AddBusinessDays(start, avg),
		DisplayText:   fmt.Sprintf("%d–%d business days", window.Min, window.Max),
		Min:           window.Min,
		Max:           window.Max,
		AverageDays:   avg,
	}
}

// averageDays is ceil((min+max)/2) for non-negative windows.
func averageDays(minDays, maxDays int) int {
	return (minDays + maxDays + 1) / 2
}

// IsBusinessDay reports whether t falls Monday through Friday. Public
// holidays are not considered.
func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// AddBusinessDays walks forward one calendar day at a time from start,
// counting only business days, and returns the day on which the count
// reaches n. The time of day is preserved. n <= 0 returns start.
func AddBusinessDays(start time.Time, n int) time.Time {
	d := start
	for counted := 0; counted < n; {
		d = d.AddDate(0, 0, 1)
		if IsBusinessDay(d) {
			counted++
		}
	}
	return d
}

// FormatDeliveryDate renders a date for display, e.g. "Jan 15, 2025".
func FormatDeliveryDate(t time.Time) string {
	return t.Format(deliveryDateLayout)
}

// DeliveryQuote is the classified zone of an address together with its fee
// and projected delivery window.
type DeliveryQuote struct {
	ZoneID   string            `json:"zone_id"`
	Zone     string            `json:"zone"`
	Fee      int               `json:"fee"`
	Estimate EstimatedDelivery `json:"estimate"`
}

// QuoteDelivery classifies the address and estimates delivery from today
// using the same zone, so fee and window can never disagree.
func QuoteDelivery(a Address) DeliveryQuote {
	return QuoteDeliveryAt(clock.Now(), a)
}

// QuoteDeliveryAt is QuoteDelivery with an explicit start time.
func QuoteDeliveryAt(start time.Time, a Address) DeliveryQuote {
	z := ClassifyAddress(a)
	return DeliveryQuote{
		ZoneID:   z.ID,
		Zone:     z.Name,
		Fee:      z.Fee,
		Estimate: EstimateFrom(start, z.ID),
	}
}
