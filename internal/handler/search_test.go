package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ticketscan/ticketscan/internal/aggregator"
	"github.com/ticketscan/ticketscan/internal/cache"
	"github.com/ticketscan/ticketscan/internal/models"
	"github.com/ticketscan/ticketscan/internal/providers"
)

type stubProvider struct {
	name   string
	offers []models.FlightOffer
	err    error
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Search(ctx context.Context, params models.SearchParams) ([]models.FlightOffer, error) {
	return s.offers, s.err
}

func newTestHandler(providerList ...providers.Provider) *SearchHandler {
	agg := aggregator.New(providerList, aggregator.Config{Timeout: 2 * time.Second}, zap.NewNop())
	return NewSearchHandler(agg, cache.NewNoOpCache(), zap.NewNop())
}

func doSearch(t *testing.T, h *SearchHandler, query string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/flights/search?"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Search(c))
	return rec, c
}

func TestSearch_MissingDestination(t *testing.T) {
	h := newTestHandler(&stubProvider{name: "amadeus"})

	rec, _ := doSearch(t, h, "departureDate=2026-10-01&returnDate=2026-10-08")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error)
	assert.Equal(t, "destination is required", resp.Message)
}

func TestSearch_MissingDates(t *testing.T) {
	h := newTestHandler(&stubProvider{name: "amadeus"})

	rec, _ := doSearch(t, h, "destination=BKK")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearch_Success(t *testing.T) {
	h := newTestHandler(&stubProvider{
		name: "skyscanner",
		offers: []models.FlightOffer{
			{
				ID: "skyscanner-2", Source: "skyscanner",
				Price:    models.OfferPrice{Adult: 70000, Total: 70000, Currency: "JPY"},
				Outbound: []models.FlightSegment{{}},
				Duration: "7h 0m",
			},
			{
				ID: "skyscanner-1", Source: "skyscanner",
				Price:    models.OfferPrice{Adult: 45000, Total: 45000, Currency: "JPY"},
				Outbound: []models.FlightSegment{{}},
				Duration: "6h 45m",
			},
		},
	})

	rec, _ := doSearch(t, h, "destination=BKK&departureDate=2026-10-01&returnDate=2026-10-08&adults=2&infants=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Offers, 2)
	assert.Equal(t, "skyscanner-1", resp.Offers[0].ID)
	assert.Equal(t, "skyscanner-2", resp.Offers[1].ID)

	assert.Equal(t, "NRT", resp.Params.Origin) // defaulted
	assert.Equal(t, "BKK", resp.Params.Destination)
	assert.Equal(t, 2, resp.Params.Adults)
	assert.Equal(t, 1, resp.Params.Infants)
	assert.False(t, resp.SearchedAt.IsZero())

	assert.True(t, resp.Sources["skyscanner"])
	assert.False(t, resp.Sources["mock"])
	assert.Equal(t, 2, resp.Metadata.TotalResults)
	assert.False(t, resp.Metadata.CacheHit)
}

func TestSearch_AllProvidersDownServesMock(t *testing.T) {
	h := newTestHandler(
		&stubProvider{name: "amadeus", err: errors.New("down")},
		&stubProvider{name: "skyscanner", err: errors.New("down")},
		&stubProvider{name: "googleflights", err: errors.New("down")},
	)

	rec, _ := doSearch(t, h, "destination=BKK&departureDate=2026-10-01&returnDate=2026-10-08")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.NotEmpty(t, resp.Offers)
	assert.True(t, resp.Sources["mock"])
	for _, o := range resp.Offers {
		assert.Equal(t, models.SourceMock, o.Source)
	}
	assert.Equal(t, 3, resp.Metadata.ProvidersFailed)
}

func TestSearch_FilterParams(t *testing.T) {
	h := newTestHandler(&stubProvider{
		name: "skyscanner",
		offers: []models.FlightOffer{
			{ID: "cheap-direct", Source: "skyscanner", Stops: 0,
				Price: models.OfferPrice{Total: 45000}, Outbound: []models.FlightSegment{{}}, Duration: "6h 45m"},
			{ID: "cheap-onestop", Source: "skyscanner", Stops: 1,
				Price: models.OfferPrice{Total: 40000}, Outbound: []models.FlightSegment{{}, {}}, Duration: "9h 0m"},
		},
	})

	rec, _ := doSearch(t, h, "destination=BKK&departureDate=2026-10-01&returnDate=2026-10-08&maxStops=0")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Offers, 1)
	assert.Equal(t, "cheap-direct", resp.Offers[0].ID)
}

func TestSearch_CachedResult(t *testing.T) {
	agg := aggregator.New([]providers.Provider{
		&stubProvider{name: "amadeus", err: errors.New("must not be called after cache hit")},
	}, aggregator.Config{Timeout: 2 * time.Second}, zap.NewNop())

	c := &recordingCache{}
	h := NewSearchHandler(agg, c, zap.NewNop())

	rec, _ := doSearch(t, h, "destination=BKK&departureDate=2026-10-01&returnDate=2026-10-08")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, c.sets)

	rec, _ = doSearch(t, h, "destination=BKK&departureDate=2026-10-01&returnDate=2026-10-08")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Metadata.CacheHit)
	assert.Equal(t, 1, c.sets)
}

// recordingCache is a single-entry cache for exercising the hit path.
type recordingCache struct {
	entry *cache.Entry
	sets  int
}

func (c *recordingCache) Get(ctx context.Context, params models.SearchParams) (*cache.Entry, bool) {
	return c.entry, c.entry != nil
}

func (c *recordingCache) Set(ctx context.Context, params models.SearchParams, entry cache.Entry) error {
	c.entry = &entry
	c.sets++
	return nil
}

func (c *recordingCache) Close() error { return nil }

func TestHealthHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, HealthHandler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
}
