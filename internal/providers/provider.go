package providers

import (
	"context"

	"github.com/ticketscan/ticketscan/internal/models"
)

// Provider is one upstream flight-data source. Search normalizes the
// upstream response into the common offer schema. A provider with missing
// credentials returns (nil, nil); transport, protocol and decode failures
// are returned as errors and contained by the aggregator.
type Provider interface {
	Name() string
	Search(ctx context.Context, params models.SearchParams) ([]models.FlightOffer, error)
}

type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}
