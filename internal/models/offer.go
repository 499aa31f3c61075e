package models

import (
	"regexp"
	"strconv"
)

// Source tags an offer with the upstream it came from. SourceMock marks
// synthetic offers generated when no provider returned anything.
const (
	SourceAmadeus       = "amadeus"
	SourceSkyscanner    = "skyscanner"
	SourceGoogleFlights = "googleflights"
	SourceMock          = "mock"
)

// ProviderSources lists the real upstream tags, in fan-out order.
var ProviderSources = []string{SourceAmadeus, SourceSkyscanner, SourceGoogleFlights}

// SegmentPoint is one end of a flight leg. Time is the provider-local
// clock time in HH:MM.
type SegmentPoint struct {
	Airport string `json:"airport"`
	Time    string `json:"time"`
}

// FlightSegment is a single non-stop leg within an itinerary.
type FlightSegment struct {
	Departure    SegmentPoint `json:"departure"`
	Arrival      SegmentPoint `json:"arrival"`
	Airline      string       `json:"airline"`
	FlightNumber string       `json:"flightNumber"`
	Duration     string       `json:"duration"`
}

// OfferPrice is the family price attached to an offer. Total equals
// Adult*adults + Infant*infants for the traveler counts the offer was
// priced against.
type OfferPrice struct {
	Adult     float64 `json:"adult"`
	Infant    float64 `json:"infant"`
	Total     float64 `json:"total"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted,omitempty"`
}

// FlightOffer is one priced round-trip itinerary as normalized from a
// provider. IDs are prefixed with the source tag so an offer can always be
// traced back to its origin.
type FlightOffer struct {
	ID             string          `json:"id"`
	Source         string          `json:"source"`
	Price          OfferPrice      `json:"price"`
	Outbound       []FlightSegment `json:"outbound"`
	Inbound        []FlightSegment `json:"inbound"`
	Airline        string          `json:"airline"`
	Stops          int             `json:"stops"`
	Duration       string          `json:"duration"`
	BookingURL     string          `json:"bookingUrl,omitempty"`
	BestValueScore float64         `json:"bestValueScore,omitempty"`
}

// IsMock reports whether the offer came from the fallback generator rather
// than a real provider.
func (o FlightOffer) IsMock() bool {
	return o.Source == SourceMock
}

var durationPattern = regexp.MustCompile(`(\d+)h\s*(\d+)m`)

// DurationMinutes parses the offer's "Nh Mm" outbound duration into total
// minutes. Unparseable durations count as 0.
func (o FlightOffer) DurationMinutes() int {
	m := durationPattern.FindStringSubmatch(o.Duration)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	return hours*60 + mins
}
