// Package filter narrows and re-sorts an aggregated offer collection for
// display. The aggregator's own price ordering is the default; filtering
// never touches the underlying offers.
package filter

import (
	"sort"
	"strings"

	"github.com/ticketscan/ticketscan/internal/models"
	"github.com/ticketscan/ticketscan/internal/ranking"
)

type Options struct {
	MaxPrice  *float64
	MaxStops  *int
	Airlines  []string
	SortBy    string // price | duration | stops | best_value
	SortOrder string // asc | desc
}

func Apply(offers []models.FlightOffer, opts Options) []models.FlightOffer {
	filtered := applyFilters(offers, opts)

	if opts.SortBy == "best_value" {
		filtered = ranking.CalculateScores(filtered)
	}

	return applySort(filtered, opts.SortBy, opts.SortOrder)
}

func applyFilters(offers []models.FlightOffer, opts Options) []models.FlightOffer {
	result := make([]models.FlightOffer, 0, len(offers))
	for _, o := range offers {
		if matches(o, opts) {
			result = append(result, o)
		}
	}
	return result
}

func matches(o models.FlightOffer, opts Options) bool {
	if opts.MaxPrice != nil && o.Price.Total > *opts.MaxPrice {
		return false
	}
	if opts.MaxStops != nil && o.Stops > *opts.MaxStops {
		return false
	}

	if len(opts.Airlines) > 0 {
		found := false
		for _, airline := range opts.Airlines {
			if strings.EqualFold(o.Airline, airline) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func applySort(offers []models.FlightOffer, sortBy, sortOrder string) []models.FlightOffer {
	if len(offers) == 0 {
		return offers
	}

	ascending := strings.ToLower(sortOrder) != "desc"

	switch strings.ToLower(sortBy) {
	case "duration":
		sort.SliceStable(offers, func(i, j int) bool {
			if ascending {
				return offers[i].DurationMinutes() < offers[j].DurationMinutes()
			}
			return offers[i].DurationMinutes() > offers[j].DurationMinutes()
		})

	case "stops":
		sort.SliceStable(offers, func(i, j int) bool {
			if ascending {
				return offers[i].Stops < offers[j].Stops
			}
			return offers[i].Stops > offers[j].Stops
		})

	case "best_value":
		sort.SliceStable(offers, func(i, j int) bool {
			if ascending {
				return offers[i].BestValueScore < offers[j].BestValueScore
			}
			return offers[i].BestValueScore > offers[j].BestValueScore
		})

	case "price":
		sort.SliceStable(offers, func(i, j int) bool {
			if ascending {
				return offers[i].Price.Total < offers[j].Price.Total
			}
			return offers[i].Price.Total > offers[j].Price.Total
		})

	default:
		// keep the aggregator's price-ascending order
	}

	return offers
}
