package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ticketscan/ticketscan/internal/aggregator"
	"github.com/ticketscan/ticketscan/internal/cache"
	"github.com/ticketscan/ticketscan/internal/filter"
	"github.com/ticketscan/ticketscan/internal/models"
)

type SearchHandler struct {
	aggregator *aggregator.Aggregator
	cache      cache.Cache
	logger     *zap.Logger
}

func NewSearchHandler(agg *aggregator.Aggregator, c cache.Cache, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		aggregator: agg,
		cache:      c,
		logger:     logger,
	}
}

func (h *SearchHandler) Search(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	params := paramsFromQuery(c)
	if err := params.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	opts := filterOptionsFromQuery(c)

	if entry, found := h.cache.Get(ctx, params); found {
		filtered := filter.Apply(entry.Offers, opts)

		return c.JSON(http.StatusOK, models.SearchResult{
			Offers:     filtered,
			SearchedAt: time.Now().UTC(),
			Params:     params,
			Sources:    entry.Sources,
			Metadata: models.SearchMetadata{
				TotalResults: len(filtered),
				SearchTimeMs: time.Since(startTime).Milliseconds(),
				CacheHit:     true,
			},
		})
	}

	result, err := h.aggregator.Search(ctx, params)
	if err != nil {
		h.logger.Error("aggregated search failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "search_error",
			Message: "Failed to search flights: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}

	_ = h.cache.Set(ctx, params, cache.Entry{Offers: result.Offers, Sources: result.Sources})

	filtered := filter.Apply(result.Offers, opts)

	return c.JSON(http.StatusOK, models.SearchResult{
		Offers:     filtered,
		SearchedAt: time.Now().UTC(),
		Params:     params,
		Sources:    result.Sources,
		Metadata: models.SearchMetadata{
			TotalResults:       len(filtered),
			ProvidersQueried:   result.ProvidersQueried,
			ProvidersSucceeded: result.ProvidersSucceeded,
			ProvidersFailed:    result.ProvidersFailed,
			FailedProviders:    result.FailedProviders,
			SearchTimeMs:       time.Since(startTime).Milliseconds(),
		},
	})
}

// paramsFromQuery reads the search query string. Traveler counts default
// to a typical family search (two adults, one infant) when absent.
func paramsFromQuery(c echo.Context) models.SearchParams {
	return models.SearchParams{
		Origin:        c.QueryParam("origin"),
		Destination:   c.QueryParam("destination"),
		DepartureDate: c.QueryParam("departureDate"),
		ReturnDate:    c.QueryParam("returnDate"),
		Adults:        intQueryParam(c, "adults", 2),
		Infants:       intQueryParam(c, "infants", 1),
	}
}

func filterOptionsFromQuery(c echo.Context) filter.Options {
	opts := filter.Options{
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}

	if v := c.QueryParam("maxPrice"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			opts.MaxPrice = &price
		}
	}
	if v := c.QueryParam("maxStops"); v != "" {
		if stops, err := strconv.Atoi(v); err == nil {
			opts.MaxStops = &stops
		}
	}
	if v := c.QueryParam("airlines"); v != "" {
		opts.Airlines = strings.Split(v, ",")
	}

	return opts
}

func intQueryParam(c echo.Context, name string, defaultValue int) int {
	v := c.QueryParam(name)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
