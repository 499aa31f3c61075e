package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/ticketscan/ticketscan/internal/fare"
	"github.com/ticketscan/ticketscan/internal/models"
	"github.com/ticketscan/ticketscan/pkg/currency"
)

const (
	skyscannerDefaultBaseURL = "https://skyscanner-api.p.rapidapi.com"
	skyscannerMaxOffers      = 20
)

type SkyscannerConfig struct {
	APIKey string
	// BaseURL overrides the API host, used by tests.
	BaseURL string
}

// SkyscannerProvider searches Skyscanner's live-search API via RapidAPI.
// One session-create call covers both legs of the round trip; pricing comes
// back as a single per-adult raw amount, so infant fares are derived.
type SkyscannerProvider struct {
	cfg    SkyscannerConfig
	client *http.Client
	logger *zap.Logger
}

func NewSkyscannerProvider(cfg SkyscannerConfig, logger *zap.Logger) *SkyscannerProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = skyscannerDefaultBaseURL
	}
	return &SkyscannerProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

func (p *SkyscannerProvider) Name() string {
	return models.SourceSkyscanner
}

type skyscannerResponse struct {
	Data struct {
		Itineraries []skyscannerItinerary `json:"itineraries"`
	} `json:"data"`
}

type skyscannerItinerary struct {
	ID    string `json:"id"`
	Price struct {
		Raw       float64 `json:"raw"`
		Formatted string  `json:"formatted"`
	} `json:"price"`
	Legs     []skyscannerLeg `json:"legs"`
	Deeplink string          `json:"deeplink"`
}

type skyscannerLeg struct {
	DurationInMinutes int `json:"durationInMinutes"`
	StopCount         int `json:"stopCount"`
	Carriers          struct {
		Marketing []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"marketing"`
	} `json:"carriers"`
	Segments []skyscannerSegment `json:"segments"`
}

type skyscannerSegment struct {
	Origin struct {
		DisplayCode string `json:"displayCode"`
	} `json:"origin"`
	Destination struct {
		DisplayCode string `json:"displayCode"`
	} `json:"destination"`
	Departure         string `json:"departure"`
	Arrival           string `json:"arrival"`
	DurationInMinutes int    `json:"durationInMinutes"`
	FlightNumber      string `json:"flightNumber"`
	MarketingCarrier  struct {
		Name        string `json:"name"`
		AlternateID string `json:"alternateId"`
	} `json:"marketingCarrier"`
}

func (p *SkyscannerProvider) Search(ctx context.Context, params models.SearchParams) ([]models.FlightOffer, error) {
	if p.cfg.APIKey == "" {
		p.logger.Info("skyscanner API key not configured, skipping")
		return nil, nil
	}

	query, err := p.searchQuery(params)
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	body, err := json.Marshal(map[string]any{"query": query})
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.cfg.BaseURL+"/v3/flights/live/search/create", bytes.NewReader(body))
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-RapidAPI-Key", p.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", rapidAPIHost(p.cfg.BaseURL))

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewProviderError(p.Name(), fmt.Errorf("search returned status %d", resp.StatusCode))
	}

	var decoded skyscannerResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, NewProviderError(p.Name(), err)
	}

	itineraries := decoded.Data.Itineraries
	if len(itineraries) > skyscannerMaxOffers {
		itineraries = itineraries[:skyscannerMaxOffers]
	}

	results := make([]models.FlightOffer, 0, len(itineraries))
	for _, it := range itineraries {
		results = append(results, p.normalize(it, params))
	}

	p.logger.Info("skyscanner search complete", zap.Int("offers", len(results)))
	return results, nil
}

// rapidAPIHost derives the X-RapidAPI-Host header value from a base URL.
// Bare hosts without a scheme pass through unchanged.
func rapidAPIHost(baseURL string) string {
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		return u.Host
	}
	return baseURL
}

func (p *SkyscannerProvider) searchQuery(params models.SearchParams) (map[string]any, error) {
	legs := make([]map[string]any, 0, 2)
	for _, leg := range []struct {
		origin, destination, date string
	}{
		{params.Origin, params.Destination, params.DepartureDate},
		{params.Destination, params.Origin, params.ReturnDate},
	} {
		date, err := time.Parse("2006-01-02", leg.date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", leg.date, err)
		}
		legs = append(legs, map[string]any{
			"originPlaceId":      map[string]string{"iata": leg.origin},
			"destinationPlaceId": map[string]string{"iata": leg.destination},
			"date": map[string]int{
				"year":  date.Year(),
				"month": int(date.Month()),
				"day":   date.Day(),
			},
		})
	}

	return map[string]any{
		"market":     "JP",
		"locale":     "ja-JP",
		"currency":   "JPY",
		"queryLegs":  legs,
		"adults":     params.Adults,
		"infants":    params.Infants,
		"cabinClass": "CABIN_CLASS_ECONOMY",
	}, nil
}

func (p *SkyscannerProvider) normalize(it skyscannerItinerary, params models.SearchParams) models.FlightOffer {
	adultPrice := it.Price.Raw
	breakdown := fare.ComputeFamilyPrice(adultPrice, params.Adults, params.Infants, "JPY", "")

	var outbound, inbound []models.FlightSegment
	airline := "Unknown"
	stops := 0
	duration := "0h 0m"

	if len(it.Legs) > 0 {
		leg := it.Legs[0]
		outbound = convertSkyscannerSegments(leg.Segments)
		stops = leg.StopCount
		duration = formatMinutes(leg.DurationInMinutes)
		if len(leg.Carriers.Marketing) > 0 {
			airline = leg.Carriers.Marketing[0].Name
		}
	}
	if len(it.Legs) > 1 {
		inbound = convertSkyscannerSegments(it.Legs[1].Segments)
	}

	return models.FlightOffer{
		ID:     "skyscanner-" + it.ID,
		Source: models.SourceSkyscanner,
		Price: models.OfferPrice{
			Adult:     math.Round(adultPrice),
			Infant:    breakdown.InfantUnitPrice,
			Total:     breakdown.GrandTotal,
			Currency:  "JPY",
			Formatted: currency.Format(breakdown.GrandTotal, "JPY"),
		},
		Outbound:   outbound,
		Inbound:    inbound,
		Airline:    airline,
		Stops:      stops,
		Duration:   duration,
		BookingURL: it.Deeplink,
	}
}

func convertSkyscannerSegments(segments []skyscannerSegment) []models.FlightSegment {
	result := make([]models.FlightSegment, len(segments))
	for i, s := range segments {
		result[i] = models.FlightSegment{
			Departure: models.SegmentPoint{
				Airport: s.Origin.DisplayCode,
				Time:    formatLocalTime(s.Departure),
			},
			Arrival: models.SegmentPoint{
				Airport: s.Destination.DisplayCode,
				Time:    formatLocalTime(s.Arrival),
			},
			Airline:      s.MarketingCarrier.Name,
			FlightNumber: s.FlightNumber,
			Duration:     formatMinutes(s.DurationInMinutes),
		}
	}
	return result
}
