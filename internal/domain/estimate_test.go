package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Friday 17 January 2025, mid-morning in Lagos.
var testFriday = time.Date(2025, time.January, 17, 10, 30, 0, 0, time.FixedZone("WAT", 3600))

func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { SetClock(nil) })
}

func TestGetDeliveryTimeEstimate(t *testing.T) {
	tests := []struct {
		zone     string
		wantName string
		min, max int
	}{
		{"Same City", "Same City", 1, 2},
		{"Same LGA", "Same City", 1, 2},
		{"Same State", "Edo State", 2, 3},
		{"Edo State", "Edo State", 2, 3},
		{"Same Region", "South-South Region", 3, 5},
		{"South-South Region", "South-South Region", 3, 5},
		{"Southern Region", "Southern Region", 4, 6},
		{"Northern Region", "Northern Region", 5, 7},
		{"Nowhere", "Northern Region", 5, 7},
		{"", "Northern Region", 5, 7},
	}

	for _, tt := range tests {
		t.Run(tt.zone, func(t *testing.T) {
			got := GetDeliveryTimeEstimate(tt.zone)
			assert.Equal(t, tt.wantName, got.ZoneName)
			assert.Equal(t, tt.min, got.Min)
			assert.Equal(t, tt.max, got.Max)
		})
	}
}

func TestAverageDays(t *testing.T) {
	assert.Equal(t, 2, averageDays(1, 2))
	assert.Equal(t, 3, averageDays(2, 3))
	assert.Equal(t, 4, averageDays(3, 5))
	assert.Equal(t, 5, averageDays(4, 6))
	assert.Equal(t, 6, averageDays(5, 7))
	assert.Equal(t, 0, averageDays(0, 0))
}

func TestAddBusinessDays(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, time.January, d, 10, 30, 0, 0, testFriday.Location())
	}

	tests := []struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}{
		{"friday plus five is next friday", day(17), 5, day(24)},
		{"friday plus one is monday", day(17), 1, day(20)},
		{"saturday plus one is monday", day(18), 1, day(20)},
		{"sunday plus one is monday", day(19), 1, day(20)},
		{"monday plus two is wednesday", day(20), 2, day(22)},
		{"thursday plus two skips weekend", day(16), 2, day(20)},
		{"ten days spans two weekends", day(17), 10, day(31)},
		{"zero returns start", day(18), 0, day(18)},
		{"negative returns start", day(17), -3, day(17)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddBusinessDays(tt.start, tt.n)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestAddBusinessDays_AcrossMonthEnd(t *testing.T) {
	// Thursday 27 Feb 2025 + 3 business days = Tuesday 4 Mar.
	start := time.Date(2025, time.February, 27, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC), AddBusinessDays(start, 3))
}

func TestIsBusinessDay(t *testing.T) {
	assert.True(t, IsBusinessDay(testFriday))
	assert.False(t, IsBusinessDay(testFriday.AddDate(0, 0, 1)))
	assert.False(t, IsBusinessDay(testFriday.AddDate(0, 0, 2)))
	assert.True(t, IsBusinessDay(testFriday.AddDate(0, 0, 3)))
}

func TestCalculateEstimatedDeliveryDate_SameCity(t *testing.T) {
	freezeClock(t, testFriday)

	got := CalculateEstimatedDeliveryDate("Same City")

	assert.Equal(t, 1, got.Min)
	assert.Equal(t, 2, got.Max)
	assert.Equal(t, 2, got.AverageDays)
	assert.Equal(t, "1–2 business days", got.DisplayText)
	assert.True(t, testFriday.AddDate(0, 0, 4).Equal(got.EstimatedDate), "got %s", got.EstimatedDate)
}

func TestCalculateEstimatedDeliveryDate_DefaultMatchesNorthern(t *testing.T) {
	freezeClock(t, testFriday)

	assert.Equal(t, CalculateEstimatedDeliveryDate("Northern Region"), CalculateEstimatedDeliveryDate(""))
	assert.Equal(t, CalculateEstimatedDeliveryDate("Northern Region"), CalculateEstimatedDeliveryDate("Atlantis"))
}

func TestCalculateEstimatedDeliveryDate_DisplayTextPattern(t *testing.T) {
	freezeClock(t, testFriday)
	pattern := regexp.MustCompile(`^\d+–\d+ business days$`)

	names := []string{"Same City", "Same LGA", "Same State", "Same Region", "Edo State",
		"South-South Region", "Southern Region", "Northern Region", "unknown"}
	for _, name := range names {
		got := CalculateEstimatedDeliveryDate(name)
		assert.Regexp(t, pattern, got.DisplayText, name)
		assert.Contains(t, got.DisplayText, "–", name)
	}
}

func TestFormatDeliveryDate(t *testing.T) {
	assert.Equal(t, "Jan 15, 2025", FormatDeliveryDate(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Dec 1, 2026", FormatDeliveryDate(time.Date(2026, time.December, 1, 23, 0, 0, 0, time.UTC)))
}

func TestQuoteDelivery_UsesClassifiedZoneWindow(t *testing.T) {
	freezeClock(t, testFriday)

	q := QuoteDelivery(Address{State: "Edo", City: "Auchi", LGA: "Etsako West"})

	require.Equal(t, ZoneEdoState, q.ZoneID)
	assert.Equal(t, "Edo State", q.Zone)
	assert.Equal(t, feeEdoState, q.Fee)
	assert.Equal(t, 2, q.Estimate.Min)
	assert.Equal(t, 3, q.Estimate.Max)
	assert.Equal(t, "2–3 business days", q.Estimate.DisplayText)
	// Friday + 3 business days = Wednesday.
	assert.Equal(t, time.Wednesday, q.Estimate.EstimatedDate.Weekday())
}
