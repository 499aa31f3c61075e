package models

import "time"

// SavedSearchParams records what the user searched for. A single saved
// search may span several candidate destinations.
type SavedSearchParams struct {
	Origin        string   `json:"origin"`
	Destinations  []string `json:"destinations"`
	DepartureDate string   `json:"departureDate"`
	ReturnDate    string   `json:"returnDate"`
	Adults        int      `json:"adults"`
	Infants       int      `json:"infants"`
}

// DestinationSummary is the per-destination digest kept with a saved
// search. CheapestPrice and Airline are nil when the destination had no
// offers at save time.
type DestinationSummary struct {
	Destination   string   `json:"destination"`
	CheapestPrice *float64 `json:"cheapestPrice"`
	Airline       *string  `json:"airline"`
	FlightCount   int      `json:"flightCount"`
}

type SavedSearch struct {
	ID      string               `json:"id"`
	SavedAt time.Time            `json:"savedAt"`
	Params  SavedSearchParams    `json:"params"`
	Results []DestinationSummary `json:"results"`
	Note    string               `json:"note,omitempty"`
}
