// Package ratelimit throttles outbound calls per provider so a burst of
// searches cannot exhaust an upstream quota.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

type Limit struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultLimit() Limit {
	return Limit{
		RequestsPerSecond: 10,
		BurstSize:         20,
	}
}

// ProviderLimiter keeps one token bucket per provider tag. Unknown tags
// get a limiter built from the defaults on first use.
type ProviderLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	defaults Limit
}

// NewProviderLimiter builds a limiter with per-provider overrides applied
// over the defaults.
func NewProviderLimiter(defaults Limit, overrides map[string]Limit) *ProviderLimiter {
	p := &ProviderLimiter{
		limiters: make(map[string]*rate.Limiter, len(overrides)),
		defaults: defaults,
	}
	for provider, l := range overrides {
		p.limiters[provider] = rate.NewLimiter(rate.Limit(l.RequestsPerSecond), l.BurstSize)
	}
	return p
}

func (p *ProviderLimiter) limiter(provider string) *rate.Limiter {
	p.mu.RLock()
	limiter, exists := p.limiters[provider]
	p.mu.RUnlock()

	if exists {
		return limiter
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if limiter, exists = p.limiters[provider]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(p.defaults.RequestsPerSecond), p.defaults.BurstSize)
	p.limiters[provider] = limiter
	return limiter
}

// Wait blocks until the provider's bucket has a token or the context ends.
func (p *ProviderLimiter) Wait(ctx context.Context, provider string) error {
	return p.limiter(provider).Wait(ctx)
}
