// Package fare derives infant fares and family price breakdowns.
//
// Infant (under 2, on lap) tickets are typically around 10% of the adult
// fare, with the exact rate varying per carrier. Derived fares are rounded
// half away from zero to whole currency units.
package fare

import "math"

// DefaultRate applies when the carrier is unknown or unspecified.
const DefaultRate = 0.10

// infantFareRates maps IATA carrier codes to the infant fare as a fraction
// of the adult fare.
var infantFareRates = map[string]float64{
	// Japanese carriers
	"JAL": 0.10,
	"ANA": 0.10,

	// Asian carriers
	"KE": 0.10,
	"OZ": 0.10,
	"CI": 0.10,
	"BR": 0.10,
	"CX": 0.10,
	"SQ": 0.10,
	"TG": 0.10,

	// US / European carriers
	"UA": 0.10,
	"AA": 0.10,
	"DL": 0.10,
	"BA": 0.10,
	"AF": 0.10,
	"LH": 0.10,

	// LCCs (seated infants can cost close to adult fare)
	"MM": 0.10,
	"JW": 0.10,
	"7C": 0.10,
	"TW": 0.10,
}

// Breakdown is a full family price calculation for one offer. It is
// derived on demand and never persisted.
type Breakdown struct {
	AdultUnitPrice  float64 `json:"adultUnitPrice"`
	InfantUnitPrice float64 `json:"infantUnitPrice"`
	AdultCount      int     `json:"adultCount"`
	InfantCount     int     `json:"infantCount"`
	AdultTotal      float64 `json:"adultTotal"`
	InfantTotal     float64 `json:"infantTotal"`
	GrandTotal      float64 `json:"grandTotal"`
	Currency        string  `json:"currency"`
}

// RateFor returns the infant fare rate for the given carrier code, falling
// back to DefaultRate for unknown or empty codes.
func RateFor(airlineCode string) float64 {
	if rate, ok := infantFareRates[airlineCode]; ok {
		return rate
	}
	return DefaultRate
}

// DeriveInfantFare computes the infant fare from an adult fare, rounded to
// a whole unit.
func DeriveInfantFare(adultFare float64, airlineCode string) float64 {
	return math.Round(adultFare * RateFor(airlineCode))
}

// ComputeFamilyPrice assembles the full breakdown for a family. It never
// fails: a zero or negative-count input simply yields zero totals.
func ComputeFamilyPrice(adultFare float64, adults, infants int, currency, airlineCode string) Breakdown {
	if adults < 0 {
		adults = 0
	}
	if infants < 0 {
		infants = 0
	}

	infantFare := DeriveInfantFare(adultFare, airlineCode)
	adultTotal := adultFare * float64(adults)
	infantTotal := infantFare * float64(infants)

	return Breakdown{
		AdultUnitPrice:  adultFare,
		InfantUnitPrice: infantFare,
		AdultCount:      adults,
		InfantCount:     infants,
		AdultTotal:      adultTotal,
		InfantTotal:     infantTotal,
		GrandTotal:      adultTotal + infantTotal,
		Currency:        currency,
	}
}
