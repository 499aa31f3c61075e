// Package aggregator fans a search out to every configured provider,
// merges whatever comes back, and fills in the fallback dataset when
// nothing does.
package aggregator

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ticketscan/ticketscan/internal/fallback"
	"github.com/ticketscan/ticketscan/internal/models"
	"github.com/ticketscan/ticketscan/internal/providers"
	"github.com/ticketscan/ticketscan/internal/ratelimit"
)

type Config struct {
	Timeout     time.Duration
	MaxRetries  int
	RetryDelays []time.Duration
	RateLimiter *ratelimit.ProviderLimiter
}

type Aggregator struct {
	providers []providers.Provider
	config    Config
	logger    *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// Result bundles the merged offers with per-source availability. Sources
// has one entry per provider (true when it contributed at least one offer)
// plus the "mock" flag.
type Result struct {
	Offers             []models.FlightOffer
	Sources            map[string]bool
	ProvidersQueried   int
	ProvidersSucceeded int
	ProvidersFailed    int
	FailedProviders    []string
}

func New(providerList []providers.Provider, config Config, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		providers: providerList,
		config:    config,
		logger:    logger,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Search runs every provider concurrently and waits for all outcomes. A
// provider failure is logged and counted, never propagated: total provider
// exhaustion degrades to the mock fallback, and the only error returned is
// a cancellation of the request context itself.
func (a *Aggregator) Search(ctx context.Context, params models.SearchParams) (*Result, error) {
	searchCtx := ctx
	if a.config.Timeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, a.config.Timeout)
		defer cancel()
	}

	result := &Result{
		Offers:           make([]models.FlightOffer, 0),
		Sources:          make(map[string]bool, len(a.providers)+1),
		ProvidersQueried: len(a.providers),
	}
	for _, p := range a.providers {
		result.Sources[p.Name()] = false
	}
	result.Sources[models.SourceMock] = false

	type providerResult struct {
		provider string
		offers   []models.FlightOffer
		err      error
	}

	resultCh := make(chan providerResult, len(a.providers))
	var wg sync.WaitGroup

	for _, p := range a.providers {
		wg.Add(1)
		go func(provider providers.Provider) {
			defer wg.Done()

			if a.config.RateLimiter != nil {
				if err := a.config.RateLimiter.Wait(searchCtx, provider.Name()); err != nil {
					resultCh <- providerResult{provider: provider.Name(), err: err}
					return
				}
			}

			offers, err := a.searchWithRetry(searchCtx, provider, params)
			resultCh <- providerResult{provider: provider.Name(), offers: offers, err: err}
		}(p)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	for pr := range resultCh {
		if pr.err != nil {
			a.logger.Warn("provider failed", zap.String("provider", pr.provider), zap.Error(pr.err))
			result.ProvidersFailed++
			result.FailedProviders = append(result.FailedProviders, pr.provider)
			continue
		}
		result.ProvidersSucceeded++
		result.Sources[pr.provider] = len(pr.offers) > 0
		result.Offers = append(result.Offers, pr.offers...)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(result.Offers) == 0 {
		a.logger.Info("no provider offers, generating fallback dataset",
			zap.String("destination", params.Destination))
		result.Offers = a.generateFallback(params)
		result.Sources[models.SourceMock] = true
	}

	sort.SliceStable(result.Offers, func(i, j int) bool {
		return result.Offers[i].Price.Total < result.Offers[j].Price.Total
	})

	return result, nil
}

func (a *Aggregator) generateFallback(params models.SearchParams) []models.FlightOffer {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fallback.Generate(params, a.rng)
}

func (a *Aggregator) searchWithRetry(ctx context.Context, provider providers.Provider, params models.SearchParams) ([]models.FlightOffer, error) {
	var lastErr error

	for attempt := 0; attempt <= a.config.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if attempt > 0 {
			delayIdx := attempt - 1
			if delayIdx >= len(a.config.RetryDelays) {
				delayIdx = len(a.config.RetryDelays) - 1
			}
			var delay time.Duration
			if delayIdx >= 0 {
				delay = a.config.RetryDelays[delayIdx]
			}

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		offers, err := provider.Search(ctx, params)
		if err == nil {
			return offers, nil
		}

		lastErr = err
		a.logger.Warn("provider attempt failed",
			zap.String("provider", provider.Name()),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}

	return nil, lastErr
}
