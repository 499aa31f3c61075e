package models

import "time"

type SearchMetadata struct {
	TotalResults       int      `json:"totalResults"`
	ProvidersQueried   int      `json:"providersQueried"`
	ProvidersSucceeded int      `json:"providersSucceeded"`
	ProvidersFailed    int      `json:"providersFailed"`
	FailedProviders    []string `json:"failedProviders,omitempty"`
	SearchTimeMs       int64    `json:"searchTimeMs"`
	CacheHit           bool     `json:"cacheHit"`
}

// SearchResult is the aggregated response body. Sources holds one flag per
// provider tag (true when that provider contributed at least one real
// offer) plus a "mock" flag for the fallback dataset.
type SearchResult struct {
	Offers     []FlightOffer   `json:"offers"`
	SearchedAt time.Time       `json:"searchedAt"`
	Params     SearchParams    `json:"params"`
	Sources    map[string]bool `json:"sources"`
	Metadata   SearchMetadata  `json:"metadata"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
