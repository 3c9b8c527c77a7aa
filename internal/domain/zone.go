package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownZone reports a zone name that matches no zone or alias. Lookups
// that return it still return the default zone alongside the error.
var ErrUnknownZone = errors.New("unknown delivery zone")

// Zone identifiers, in precedence order.
const (
	ZoneSameCity   = "same-city"
	ZoneEdoState   = "edo-state"
	ZoneSouthSouth = "south-south"
	ZoneSouthern   = "southern"
	ZoneNorthern   = "northern"
)

// DefaultZoneName is used when an estimate is requested without a zone or
// with a name that resolves to nothing.
const DefaultZoneName = "Northern Region"

// Origin is where orders ship from.
type Origin struct {
	State string   `json:"state"`
	City  string   `json:"city"`
	LGAs  []string `json:"lgas"`
}

// warehouse is the fixed origin every zone comparison is made against.
var warehouse = Origin{
	State: "Edo",
	City:  "Benin",
	LGAs:  []string{"Oredo", "Egor", "Ikpoba-Okha"},
}

// Warehouse returns a copy of the warehouse origin.
func Warehouse() Origin {
	o := warehouse
	o.LGAs = slices.Clone(o.LGAs)
	return o
}

var southSouthStates = []string{"Akwa Ibom", "Bayelsa", "Cross River", "Delta", "Rivers"}

var southernStates = []string{
	// South-West
	"Lagos", "Ogun", "Oyo", "Osun", "Ondo", "Ekiti",
	// South-East
	"Abia", "Anambra", "Ebonyi", "Enugu", "Imo",
}

// Zone is a delivery tier: a fee, a business-day window, and the rule that
// decides which addresses fall into it.
type Zone struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Fee         int      `json:"fee"`
	MinDays     int      `json:"min_days"`
	MaxDays     int      `json:"max_days"`
	Coverage    []string `json:"coverage,omitempty"` // LGAs
	States      []string `json:"states,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`

	matches func(Address) bool
}

// zones is checked first-match-wins. The last entry matches everything.
var zones = []Zone{
	{
		ID:          ZoneSameCity,
		Name:        "Same City",
		Description: "Benin City metropolis, delivered from the warehouse",
		Fee:         1500,
		MinDays:     1,
		MaxDays:     2,
		Coverage:    slices.Clone(warehouse.LGAs),
		Aliases:     []string{"Same LGA"},
		matches:     inWarehouseCity,
	},
	{
		ID:          ZoneEdoState,
		Name:        "Edo State",
		Description: "Edo State outside Benin City",
		Fee:         2500,
		MinDays:     2,
		MaxDays:     3,
		States:      []string{warehouse.State},
		Aliases:     []string{"Same State"},
		matches:     func(a Address) bool { return sameName(a.State, warehouse.State) },
	},
	{
		ID:          ZoneSouthSouth,
		Name:        "South-South Region",
		Description: "Neighbouring South-South states",
		Fee:         3500,
		MinDays:     3,
		MaxDays:     5,
		States:      southSouthStates,
		Aliases:     []string{"Same Region"},
		matches:     func(a Address) bool { return containsName(southSouthStates, a.State) },
	},
	{
		ID:          ZoneSouthern,
		Name:        "Southern Region",
		Description: "South-West and South-East states",
		Fee:         4500,
		MinDays:     4,
		MaxDays:     6,
		States:      southernStates,
		matches:     func(a Address) bool { return containsName(southernStates, a.State) },
	},
	{
		ID:          ZoneNorthern,
		Name:        DefaultZoneName,
		Description: "Northern states, the FCT, and any unrecognised state",
		Fee:         6000,
		MinDays:     5,
		MaxDays:     7,
		matches:     func(Address) bool { return true },
	},
}

func inWarehouseCity(a Address) bool {
	return sameName(a.State, warehouse.State) &&
		containsName(warehouse.LGAs, a.LGA) &&
		strings.Contains(strings.ToLower(a.City), strings.ToLower(warehouse.City))
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), b)
}

func containsName(names []string, v string) bool {
	return slices.ContainsFunc(names, func(n string) bool { return sameName(v, n) })
}

// Zones returns a copy of the zone table in precedence order.
func Zones() []Zone {
	out := make([]Zone, len(zones))
	for i, z := range zones {
		out[i] = z.clone()
	}
	return out
}

func (z Zone) clone() Zone {
	z.Coverage = slices.Clone(z.Coverage)
	z.States = slices.Clone(z.States)
	z.Aliases = slices.Clone(z.Aliases)
	return z
}

// DefaultZone returns the catch-all zone.
func DefaultZone() Zone {
	return zones[len(zones)-1].clone()
}

// ClassifyAddress returns the first zone whose rule matches the address.
// Every address resolves; unknown or empty states land in the default zone.
func ClassifyAddress(a Address) Zone {
	for _, z := range zones {
		if z.matches(a) {
			return z.clone()
		}
	}
	return DefaultZone()
}

// CalculateDeliveryFee returns the fee of the zone the address falls in.
// Units are whatever the zone table is expressed in.
func CalculateDeliveryFee(state, city, lga string) int {
	return ClassifyAddress(Address{State: state, City: city, LGA: lga}).Fee
}

// LookupZone resolves a zone by display name, legacy alias, or ID. Unknown
// names return the default zone and an error wrapping ErrUnknownZone.
func LookupZone(name string) (Zone, error) {
	for _, z := range zones {
		if z.Name == name || z.ID == name || slices.Contains(z.Aliases, name) {
			return z.clone(), nil
		}
	}
	return DefaultZone(), fmt.Errorf("%w: %q", ErrUnknownZone, name)
}

// ResolveZone is LookupZone without the error.
func ResolveZone(name string) Zone {
	z, _ := LookupZone(name)
	return z
}
