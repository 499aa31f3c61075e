package fallback

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketscan/ticketscan/internal/fare"
	"github.com/ticketscan/ticketscan/internal/models"
)

func testParams() models.SearchParams {
	return models.SearchParams{
		Origin:        "NRT",
		Destination:   "BKK",
		DepartureDate: "2026-10-01",
		ReturnDate:    "2026-10-08",
		Adults:        2,
		Infants:       1,
	}
}

func TestGenerate_GridShape(t *testing.T) {
	offers := Generate(testParams(), rand.New(rand.NewSource(1)))

	// 5 airlines x 3 source tags
	require.Len(t, offers, 15)
}

func TestGenerate_MockTagging(t *testing.T) {
	offers := Generate(testParams(), rand.New(rand.NewSource(1)))

	seen := make(map[string]bool)
	for _, o := range offers {
		assert.Equal(t, models.SourceMock, o.Source)
		assert.True(t, o.IsMock())
		assert.True(t, strings.HasPrefix(o.ID, "mock-"), "id %q should carry the mock prefix", o.ID)

		assert.False(t, seen[o.ID], "duplicate id %q", o.ID)
		seen[o.ID] = true
	}
}

func TestGenerate_PriceConsistency(t *testing.T) {
	params := testParams()
	offers := Generate(params, rand.New(rand.NewSource(42)))

	for _, o := range offers {
		want := o.Price.Adult*float64(params.Adults) + o.Price.Infant*float64(params.Infants)
		assert.Equal(t, want, o.Price.Total, "offer %s", o.ID)
		assert.GreaterOrEqual(t, o.Price.Total, 0.0)
		assert.Equal(t, "JPY", o.Price.Currency)
	}
}

func TestGenerate_PriceBounds(t *testing.T) {
	params := testParams()
	base := BasePrice(params.Destination)
	offers := Generate(params, rand.New(rand.NewSource(7)))

	for _, o := range offers {
		// base +/- 10% jitter, plus at most 2 source-index offsets of 2000
		assert.GreaterOrEqual(t, o.Price.Adult, base*0.9-1)
		assert.LessOrEqual(t, o.Price.Adult, base*1.1+4000+1)
	}
}

func TestGenerate_StopsMatchSegments(t *testing.T) {
	offers := Generate(testParams(), rand.New(rand.NewSource(3)))

	for _, o := range offers {
		assert.Contains(t, []int{0, 1}, o.Stops)
		assert.Equal(t, o.Stops, len(o.Outbound)-1, "offer %s", o.ID)
		assert.NotEmpty(t, o.Inbound)
	}
}

func TestGenerate_InfantFareUsesAirlineRate(t *testing.T) {
	offers := Generate(testParams(), rand.New(rand.NewSource(9)))

	for _, o := range offers {
		// mock airlines are all in the rate table at the default rate
		assert.Equal(t, fare.DeriveInfantFare(o.Price.Adult, ""), o.Price.Infant)
	}
}

func TestBasePrice(t *testing.T) {
	assert.Equal(t, 50000.0, BasePrice("BKK"))
	assert.Equal(t, 35000.0, BasePrice("ICN"))
	assert.Equal(t, 60000.0, BasePrice("XXX"))
}
