// Package fallback synthesizes plausible offers for when every provider is
// unconfigured, failed, or empty. The product always has something to show;
// callers tell synthetic data apart by the "mock" source tag and id prefix.
package fallback

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/ticketscan/ticketscan/internal/fare"
	"github.com/ticketscan/ticketscan/internal/models"
	"github.com/ticketscan/ticketscan/pkg/currency"
)

var airlines = []struct {
	Code string
	Name string
}{
	{"JAL", "日本航空"},
	{"ANA", "全日空"},
	{"SQ", "シンガポール航空"},
	{"CX", "キャセイパシフィック"},
	{"TG", "タイ国際航空"},
}

// sourceTags keeps the per-source price spread of real comparison results;
// generated offers still carry SourceMock.
var sourceTags = []string{models.SourceSkyscanner, models.SourceAmadeus, models.SourceGoogleFlights}

// basePrices holds per-destination round-trip adult fares in JPY.
var basePrices = map[string]float64{
	"ICN": 35000,
	"TPE": 40000,
	"HKG": 45000,
	"BKK": 50000,
	"SIN": 55000,
	"HNL": 80000,
	"LAX": 100000,
	"LHR": 120000,
	"CDG": 115000,
}

const defaultBasePrice = 60000

// BasePrice returns the baseline adult fare for a destination.
func BasePrice(destination string) float64 {
	if p, ok := basePrices[destination]; ok {
		return p
	}
	return defaultBasePrice
}

// Generate produces one offer per airline and source tag, priced off the
// destination baseline with a bounded random variation (±10%) plus a fixed
// per-source offset so the grid looks like a real comparison.
func Generate(params models.SearchParams, rng *rand.Rand) []models.FlightOffer {
	base := BasePrice(params.Destination)

	offers := make([]models.FlightOffer, 0, len(airlines)*len(sourceTags))
	for i, airline := range airlines {
		for j, tag := range sourceTags {
			variation := (rng.Float64()*0.2 - 0.1) * base
			adultPrice := math.Round(base + variation + float64(j)*2000)

			breakdown := fare.ComputeFamilyPrice(adultPrice, params.Adults, params.Infants, "JPY", airline.Code)

			stops := 0
			if rng.Float64() > 0.7 {
				stops = 1
			}
			outbound, duration := outboundSegments(params, airline.Code, airline.Name, i, stops)

			offers = append(offers, models.FlightOffer{
				ID:     fmt.Sprintf("mock-%s-%s-%d-%d", airline.Code, tag, i, j),
				Source: models.SourceMock,
				Price: models.OfferPrice{
					Adult:     breakdown.AdultUnitPrice,
					Infant:    breakdown.InfantUnitPrice,
					Total:     breakdown.GrandTotal,
					Currency:  "JPY",
					Formatted: currency.Format(breakdown.GrandTotal, "JPY"),
				},
				Outbound: outbound,
				Inbound: []models.FlightSegment{
					{
						Departure:    models.SegmentPoint{Airport: params.Destination, Time: "15:00"},
						Arrival:      models.SegmentPoint{Airport: params.Origin, Time: "21:00"},
						Airline:      airline.Name,
						FlightNumber: fmt.Sprintf("%s%d", airline.Code, 200+i),
						Duration:     "4h 00m",
					},
				},
				Airline:    airline.Name,
				Stops:      stops,
				Duration:   duration,
				BookingURL: "https://example.com/book/" + airline.Code,
			})
		}
	}

	return offers
}

// outboundSegments builds the forward itinerary. One-stop itineraries
// connect through a hub so the segment count stays consistent with the
// offer's stop count.
func outboundSegments(params models.SearchParams, code, name string, i, stops int) ([]models.FlightSegment, string) {
	if stops == 0 {
		return []models.FlightSegment{
			{
				Departure:    models.SegmentPoint{Airport: params.Origin, Time: "10:00"},
				Arrival:      models.SegmentPoint{Airport: params.Destination, Time: "14:00"},
				Airline:      name,
				FlightNumber: fmt.Sprintf("%s%d", code, 100+i),
				Duration:     "4h 00m",
			},
		}, "4h 00m"
	}

	hub := "HKG"
	if params.Destination == hub || params.Origin == hub {
		hub = "TPE"
	}
	return []models.FlightSegment{
		{
			Departure:    models.SegmentPoint{Airport: params.Origin, Time: "10:00"},
			Arrival:      models.SegmentPoint{Airport: hub, Time: "12:30"},
			Airline:      name,
			FlightNumber: fmt.Sprintf("%s%d", code, 100+i),
			Duration:     "2h 30m",
		},
		{
			Departure:    models.SegmentPoint{Airport: hub, Time: "13:30"},
			Arrival:      models.SegmentPoint{Airport: params.Destination, Time: "16:00"},
			Airline:      name,
			FlightNumber: fmt.Sprintf("%s%d", code, 300+i),
			Duration:     "2h 30m",
		},
	}, "6h 00m"
}
