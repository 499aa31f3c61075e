package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ticketscan/ticketscan/internal/fare"
	"github.com/ticketscan/ticketscan/internal/models"
	"github.com/ticketscan/ticketscan/pkg/currency"
)

const (
	googleFlightsDefaultBaseURL = "https://flights-scraper-data.p.rapidapi.com"
	googleFlightsMaxOffers      = 15
)

type GoogleFlightsConfig struct {
	APIKey string
	// BaseURL overrides the API host, used by tests.
	BaseURL string
}

// GoogleFlightsProvider searches a Google Flights scraper via RapidAPI.
// The upstream only models one-way legs, so a round trip is two sequential
// queries whose fares are combined per offer. A failed return-leg query
// degrades to outbound-only pricing rather than failing the search.
type GoogleFlightsProvider struct {
	cfg    GoogleFlightsConfig
	client *http.Client
	logger *zap.Logger

	// now stamps generated offer IDs; injectable for tests.
	now func() time.Time
}

func NewGoogleFlightsProvider(cfg GoogleFlightsConfig, logger *zap.Logger) *GoogleFlightsProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = googleFlightsDefaultBaseURL
	}
	return &GoogleFlightsProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
		now:    time.Now,
	}
}

func (p *GoogleFlightsProvider) Name() string {
	return models.SourceGoogleFlights
}

type googleFlightsResponse struct {
	Status bool `json:"status"`
	Data   struct {
		BestFlights  []googleFlightResult `json:"best_flights"`
		OtherFlights []googleFlightResult `json:"other_flights"`
	} `json:"data"`
}

type googleFlightResult struct {
	Flights       [][]googleFlightSegment `json:"flights"`
	TotalDuration int                     `json:"total_duration"`
	Price         float64                 `json:"price"`
	Type          string                  `json:"type"`
}

type googleFlightSegment struct {
	DepartureAirport googleAirport `json:"departure_airport"`
	ArrivalAirport   googleAirport `json:"arrival_airport"`
	Duration         int           `json:"duration"`
	FlightNumber     string        `json:"flight_number"`
	Airline          string        `json:"airline"`
}

type googleAirport struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Time string `json:"time"`
}

func (p *GoogleFlightsProvider) Search(ctx context.Context, params models.SearchParams) ([]models.FlightOffer, error) {
	if p.cfg.APIKey == "" {
		p.logger.Info("googleflights API key not configured, skipping")
		return nil, nil
	}

	outboundFlights, err := p.searchOneWay(ctx, params.Origin, params.Destination, params.DepartureDate, params)
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}

	returnFlights, err := p.searchOneWay(ctx, params.Destination, params.Origin, params.ReturnDate, params)
	if err != nil {
		p.logger.Warn("googleflights return-leg search failed, pricing outbound only", zap.Error(err))
		returnFlights = nil
	}

	limit := len(outboundFlights)
	if limit > googleFlightsMaxOffers {
		limit = googleFlightsMaxOffers
	}

	nonce := p.now().UnixMilli()
	offers := make([]models.FlightOffer, 0, limit)
	for i := 0; i < limit; i++ {
		outbound := outboundFlights[i]

		var inbound *googleFlightResult
		if len(returnFlights) > 0 {
			inbound = &returnFlights[i%len(returnFlights)]
		}

		offers = append(offers, p.combine(outbound, inbound, params, i, nonce))
	}

	p.logger.Info("googleflights search complete", zap.Int("offers", len(offers)))
	return offers, nil
}

func (p *GoogleFlightsProvider) searchOneWay(ctx context.Context, origin, destination, date string, params models.SearchParams) ([]googleFlightResult, error) {
	q := url.Values{}
	q.Set("origin", origin)
	q.Set("destination", destination)
	q.Set("date", date)
	q.Set("adults", strconv.Itoa(params.Adults))
	q.Set("children", "0")
	q.Set("infants_in_seat", "0")
	q.Set("infants_on_lap", strconv.Itoa(params.Infants))
	q.Set("currency", "JPY")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.cfg.BaseURL+"/flights/search-one-way?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-RapidAPI-Key", p.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", rapidAPIHost(p.cfg.BaseURL))

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	var decoded googleFlightsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	if !decoded.Status {
		return nil, nil
	}

	return append(decoded.Data.BestFlights, decoded.Data.OtherFlights...), nil
}

func (p *GoogleFlightsProvider) combine(outbound googleFlightResult, inbound *googleFlightResult, params models.SearchParams, index int, nonce int64) models.FlightOffer {
	outboundPrice := outbound.Price
	inboundPrice := outboundPrice
	if inbound != nil && inbound.Price > 0 {
		inboundPrice = inbound.Price
	}
	totalAdultPrice := outboundPrice + inboundPrice

	breakdown := fare.ComputeFamilyPrice(totalAdultPrice, params.Adults, params.Infants, "JPY", "")

	var outboundSegments, inboundSegments []googleFlightSegment
	if len(outbound.Flights) > 0 {
		outboundSegments = outbound.Flights[0]
	}
	if inbound != nil && len(inbound.Flights) > 0 {
		inboundSegments = inbound.Flights[0]
	}

	airline := "Unknown"
	if len(outboundSegments) > 0 {
		airline = outboundSegments[0].Airline
	}

	return models.FlightOffer{
		ID:     fmt.Sprintf("googleflights-%d-%d", index, nonce),
		Source: models.SourceGoogleFlights,
		Price: models.OfferPrice{
			Adult:     math.Round(totalAdultPrice),
			Infant:    breakdown.InfantUnitPrice,
			Total:     breakdown.GrandTotal,
			Currency:  "JPY",
			Formatted: currency.Format(breakdown.GrandTotal, "JPY"),
		},
		Outbound: convertGoogleSegments(outboundSegments),
		Inbound:  convertGoogleSegments(inboundSegments),
		Airline:  airline,
		Stops:    segmentStops(len(outboundSegments)),
		Duration: formatMinutes(outbound.TotalDuration),
		// no direct booking deep link from the scraper
	}
}

func convertGoogleSegments(segments []googleFlightSegment) []models.FlightSegment {
	result := make([]models.FlightSegment, len(segments))
	for i, s := range segments {
		result[i] = models.FlightSegment{
			Departure: models.SegmentPoint{
				Airport: s.DepartureAirport.ID,
				Time:    formatLocalTime(s.DepartureAirport.Time),
			},
			Arrival: models.SegmentPoint{
				Airport: s.ArrivalAirport.ID,
				Time:    formatLocalTime(s.ArrivalAirport.Time),
			},
			Airline:      s.Airline,
			FlightNumber: s.FlightNumber,
			Duration:     formatMinutes(s.Duration),
		}
	}
	return result
}
