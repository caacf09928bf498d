package usecase

import (
	"context"
	"errors"
	"strings"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/domain/repository"
	"CoinPulse/pkg/cache"
	xlogger "CoinPulse/pkg/logger"
)

// Resolve maps an uppercased ticker to its canonical provider identifier.
// Positive resolutions cache for a day; a live not-found is terminal and
// caches for an hour so persistently unknown symbols do not hammer the
// upstream, without shadowing a new listing for long. A lookup the provider
// never answered is neither: it is served degraded and left uncached so the
// next request retries live.
func (a *Aggregator) Resolve(ctx context.Context, symbol string) models.SymbolResolution {
	defer a.observe("resolve")()

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	key := cache.Key("resolve", symbol)

	var hit models.SymbolResolution
	err := a.deps.Store.Get(ctx, key, &hit)
	if err == nil {
		if a.deps.Metrics != nil {
			a.deps.Metrics.RecordCacheHit("resolve")
		}
		return hit
	}
	if !errors.Is(err, cache.ErrCacheMiss) && a.deps.Logger != nil {
		a.deps.Logger.Warn("cache read failed, fetching live",
			xlogger.String("key", key), xlogger.Error(err))
	}
	if a.deps.Metrics != nil {
		a.deps.Metrics.RecordCacheMiss("resolve")
	}

	id, outcome := a.deps.Market.ResolveSymbol(ctx, symbol)
	resolution := models.SymbolResolution{
		Symbol:     symbol,
		ProviderID: id,
		Found:      outcome == repository.ResolveFound,
	}

	if outcome == repository.ResolveFailed {
		resolution.Degraded = true
		a.degraded("resolve")
		return resolution
	}

	ttl := ttlResolve
	if !resolution.Found {
		ttl = ttlResolveNegative
	}
	if err := a.deps.Store.Set(ctx, key, resolution, ttl); err != nil && a.deps.Logger != nil {
		a.deps.Logger.Warn("cache write failed",
			xlogger.String("key", key), xlogger.Error(err))
	}
	return resolution
}
