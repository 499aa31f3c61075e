package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ticketscan/ticketscan/internal/fare"
	"github.com/ticketscan/ticketscan/internal/models"
	"github.com/ticketscan/ticketscan/pkg/currency"
)

const (
	amadeusDefaultBaseURL = "https://test.api.amadeus.com"
	amadeusMaxOffers      = 20
)

type AmadeusConfig struct {
	ClientID     string
	ClientSecret string
	// BaseURL overrides the API host, used by tests.
	BaseURL string
}

// AmadeusProvider searches the Amadeus Flight Offers API. Round trips are a
// single request with two originDestinations; infants travel as HELD_INFANT
// associated with an adult, which gets us real infant pricing when the
// carrier files one.
type AmadeusProvider struct {
	cfg    AmadeusConfig
	client *http.Client
	logger *zap.Logger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewAmadeusProvider(cfg AmadeusConfig, logger *zap.Logger) *AmadeusProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = amadeusDefaultBaseURL
	}
	return &AmadeusProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

func (p *AmadeusProvider) Name() string {
	return models.SourceAmadeus
}

func (p *AmadeusProvider) configured() bool {
	return p.cfg.ClientID != "" && p.cfg.ClientSecret != ""
}

type amadeusTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type amadeusResponse struct {
	Data []amadeusOffer `json:"data"`
}

type amadeusOffer struct {
	ID                     string                   `json:"id"`
	Itineraries            []amadeusItinerary       `json:"itineraries"`
	Price                  amadeusPrice             `json:"price"`
	ValidatingAirlineCodes []string                 `json:"validatingAirlineCodes"`
	TravelerPricings       []amadeusTravelerPricing `json:"travelerPricings"`
}

type amadeusItinerary struct {
	Duration string           `json:"duration"`
	Segments []amadeusSegment `json:"segments"`
}

type amadeusSegment struct {
	Departure   amadeusEndpoint `json:"departure"`
	Arrival     amadeusEndpoint `json:"arrival"`
	CarrierCode string          `json:"carrierCode"`
	Number      string          `json:"number"`
	Duration    string          `json:"duration"`
}

type amadeusEndpoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

type amadeusPrice struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	GrandTotal string `json:"grandTotal"`
}

type amadeusTravelerPricing struct {
	TravelerType string `json:"travelerType"`
	Price        struct {
		Currency string `json:"currency"`
		Total    string `json:"total"`
	} `json:"price"`
}

func (p *AmadeusProvider) Search(ctx context.Context, params models.SearchParams) ([]models.FlightOffer, error) {
	if !p.configured() {
		p.logger.Info("amadeus credentials not configured, skipping")
		return nil, nil
	}

	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}

	body, err := json.Marshal(p.searchBody(params))
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.cfg.BaseURL+"/v2/shopping/flight-offers", bytes.NewReader(body))
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewProviderError(p.Name(), fmt.Errorf("search returned status %d", resp.StatusCode))
	}

	var decoded amadeusResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, NewProviderError(p.Name(), err)
	}

	offers := decoded.Data
	if len(offers) > amadeusMaxOffers {
		offers = offers[:amadeusMaxOffers]
	}

	results := make([]models.FlightOffer, 0, len(offers))
	for _, o := range offers {
		results = append(results, p.normalize(o, params))
	}

	p.logger.Info("amadeus search complete", zap.Int("offers", len(results)))
	return results, nil
}

// accessToken fetches (and caches) a client-credentials OAuth token.
func (p *AmadeusProvider) accessToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && time.Now().Before(p.tokenExpiry) {
		return p.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.cfg.ClientID)
	form.Set("client_secret", p.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.cfg.BaseURL+"/v1/security/oauth2/token", bytes.NewBufferString(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var tok amadeusTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned empty token")
	}

	p.token = tok.AccessToken
	// renew a little early
	p.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn-30) * time.Second)
	return p.token, nil
}

func (p *AmadeusProvider) searchBody(params models.SearchParams) map[string]any {
	travelers := make([]map[string]any, 0, params.Adults+params.Infants)
	for i := 0; i < params.Adults; i++ {
		travelers = append(travelers, map[string]any{
			"id":           strconv.Itoa(i + 1),
			"travelerType": "ADULT",
		})
	}
	for i := 0; i < params.Infants; i++ {
		travelers = append(travelers, map[string]any{
			"id":                strconv.Itoa(params.Adults + i + 1),
			"travelerType":      "HELD_INFANT",
			"associatedAdultId": strconv.Itoa(i + 1),
		})
	}

	return map[string]any{
		"currencyCode": "JPY",
		"originDestinations": []map[string]any{
			{
				"id":                      "1",
				"originLocationCode":      params.Origin,
				"destinationLocationCode": params.Destination,
				"departureDateTimeRange":  map[string]string{"date": params.DepartureDate},
			},
			{
				"id":                      "2",
				"originLocationCode":      params.Destination,
				"destinationLocationCode": params.Origin,
				"departureDateTimeRange":  map[string]string{"date": params.ReturnDate},
			},
		},
		"travelers": travelers,
		"sources":   []string{"GDS"},
		"searchCriteria": map[string]any{
			"maxFlightOffers": amadeusMaxOffers,
		},
	}
}

func (p *AmadeusProvider) normalize(o amadeusOffer, params models.SearchParams) models.FlightOffer {
	var adultPrice, infantPrice float64
	for _, tp := range o.TravelerPricings {
		v, err := strconv.ParseFloat(tp.Price.Total, 64)
		if err != nil {
			continue
		}
		switch tp.TravelerType {
		case "ADULT":
			adultPrice = v
		case "HELD_INFANT":
			infantPrice = v
		}
	}

	airline := "Unknown"
	if len(o.ValidatingAirlineCodes) > 0 {
		airline = o.ValidatingAirlineCodes[0]
	}

	breakdown := fare.ComputeFamilyPrice(adultPrice, params.Adults, params.Infants, o.Price.Currency, airline)

	// Prefer the carrier-filed infant fare when present. The total is always
	// the sum of the reported per-traveler units so the price breakdown adds
	// up regardless of which fare was used.
	adult := math.Round(adultPrice)
	infant := breakdown.InfantUnitPrice
	if infantPrice > 0 {
		infant = math.Round(infantPrice)
	}
	total := adult*float64(params.Adults) + infant*float64(params.Infants)

	var outbound, inbound []models.FlightSegment
	outboundDuration := "PT0H"
	if len(o.Itineraries) > 0 {
		outbound = convertAmadeusSegments(o.Itineraries[0].Segments)
		outboundDuration = o.Itineraries[0].Duration
	}
	if len(o.Itineraries) > 1 {
		inbound = convertAmadeusSegments(o.Itineraries[1].Segments)
	}

	return models.FlightOffer{
		ID:     "amadeus-" + o.ID,
		Source: models.SourceAmadeus,
		Price: models.OfferPrice{
			Adult:     adult,
			Infant:    infant,
			Total:     total,
			Currency:  o.Price.Currency,
			Formatted: currency.Format(total, o.Price.Currency),
		},
		Outbound: outbound,
		Inbound:  inbound,
		Airline:  airline,
		Stops:    segmentStops(len(outbound)),
		Duration: formatISODuration(outboundDuration),
		// Amadeus has no direct booking deep link.
	}
}

func convertAmadeusSegments(segments []amadeusSegment) []models.FlightSegment {
	result := make([]models.FlightSegment, len(segments))
	for i, s := range segments {
		result[i] = models.FlightSegment{
			Departure: models.SegmentPoint{
				Airport: s.Departure.IATACode,
				Time:    formatLocalTime(s.Departure.At),
			},
			Arrival: models.SegmentPoint{
				Airport: s.Arrival.IATACode,
				Time:    formatLocalTime(s.Arrival.At),
			},
			Airline:      s.CarrierCode,
			FlightNumber: s.CarrierCode + s.Number,
			Duration:     formatISODuration(s.Duration),
		}
	}
	return result
}
