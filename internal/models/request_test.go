package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchParamsValidate(t *testing.T) {
	p := SearchParams{
		Destination:   "BKK",
		DepartureDate: "2026-10-01",
		ReturnDate:    "2026-10-08",
		Adults:        2,
		Infants:       1,
	}
	assert.NoError(t, p.Validate())
	assert.Equal(t, "NRT", p.Origin)

	p = SearchParams{DepartureDate: "2026-10-01", ReturnDate: "2026-10-08"}
	assert.ErrorIs(t, p.Validate(), ErrMissingDestination)

	p = SearchParams{Destination: "BKK", ReturnDate: "2026-10-08"}
	assert.ErrorIs(t, p.Validate(), ErrMissingDepartureDate)

	p = SearchParams{Destination: "BKK", DepartureDate: "2026-10-01"}
	assert.ErrorIs(t, p.Validate(), ErrMissingReturnDate)

	p = SearchParams{Destination: "BKK", DepartureDate: "2026-10-01", ReturnDate: "2026-10-08", Adults: 0, Infants: -2}
	assert.NoError(t, p.Validate())
	assert.Equal(t, 1, p.Adults)
	assert.Equal(t, 0, p.Infants)
}

func TestFlightOfferDurationMinutes(t *testing.T) {
	assert.Equal(t, 405, FlightOffer{Duration: "6h 45m"}.DurationMinutes())
	assert.Equal(t, 240, FlightOffer{Duration: "4h 00m"}.DurationMinutes())
	assert.Equal(t, 0, FlightOffer{Duration: "unknown"}.DurationMinutes())
}

func TestFlightOfferIsMock(t *testing.T) {
	assert.True(t, FlightOffer{Source: SourceMock}.IsMock())
	assert.False(t, FlightOffer{Source: SourceAmadeus}.IsMock())
}
