// Package domain models storefront delivery pricing for Nigerian addresses.
//
// # Zones
//
// Every destination resolves to exactly one of five zones, checked in
// order with the first match winning:
//
//	Same City           Edo, LGA in {Oredo, Egor, Ikpoba-Okha}, city contains "benin"
//	Edo State           any other Edo address
//	South-South Region  Akwa Ibom, Bayelsa, Cross River, Delta, Rivers
//	Southern Region     South-West and South-East states
//	Northern Region     everything else, including unknown or empty states
//
// The city test is a case-insensitive substring match so "Benin",
// "Benin City" and "benin-city" all qualify. It is a heuristic, not
// geocoding. State and LGA comparisons ignore case and surrounding space.
//
// Each zone carries both its fee and its delivery window. Older callers
// that name windows "Same LGA", "Same State" or "Same Region" are served
// through per-zone aliases.
//
// # Delivery windows
//
// A window is a {min, max} range of business days. The projected date
// advances today by ceil((min+max)/2) business days, where a business day
// is Monday through Friday. Public holidays are not modelled.
//
// # Fallbacks
//
// Calculators never fail: unknown zone names resolve to the Northern
// Region. [LookupZone] exposes the same resolution with an
// [ErrUnknownZone] error so callers can surface misconfiguration.
package domain
