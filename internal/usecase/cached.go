package usecase

import (
	"context"
	"errors"
	"time"

	"CoinPulse/pkg/cache"
	xlogger "CoinPulse/pkg/logger"
)

// lookupCached is the cache-aside spine of every logical query: check the
// store, compute on miss, write back with the category TTL. A store read or
// write failure is never fatal; the query falls through to a live fetch.
func lookupCached[T any](ctx context.Context, a *Aggregator, capability, key string, ttl time.Duration, fetch func(context.Context) T) T {
	var hit T
	err := a.deps.Store.Get(ctx, key, &hit)
	if err == nil {
		if a.deps.Metrics != nil {
			a.deps.Metrics.RecordCacheHit(capability)
		}
		return hit
	}
	if !errors.Is(err, cache.ErrCacheMiss) && a.deps.Logger != nil {
		a.deps.Logger.Warn("cache read failed, fetching live",
			xlogger.String("key", key), xlogger.Error(err))
	}
	if a.deps.Metrics != nil {
		a.deps.Metrics.RecordCacheMiss(capability)
	}

	compute := func() T {
		v := fetch(ctx)
		if err := a.deps.Store.Set(ctx, key, v, ttl); err != nil && a.deps.Logger != nil {
			a.deps.Logger.Warn("cache write failed",
				xlogger.String("key", key), xlogger.Error(err))
		}
		return v
	}

	if a.flight == nil {
		return compute()
	}
	v, _, _ := a.flight.Do(key, func() (interface{}, error) {
		return compute(), nil
	})
	return v.(T)
}
