package usecase

import (
	"context"
	"strings"

	"CoinPulse/internal/domain/models"
	"CoinPulse/pkg/cache"
)

// Token serves per-token market data, optionally decorated with the
// downstream risk score. Scored and unscored lookups cache separately so a
// cheap unscored request never pins a scoreless payload for scored callers.
func (a *Aggregator) Token(ctx context.Context, id string, withScore bool) models.TokenComposite {
	defer a.observe("token")()

	id = strings.ToLower(strings.TrimSpace(id))
	return lookupCached(ctx, a, "token", cache.Key("token", id, withScore), ttlToken,
		func(ctx context.Context) models.TokenComposite {
			return a.fetchToken(ctx, id, withScore)
		})
}

func (a *Aggregator) fetchToken(ctx context.Context, id string, withScore bool) models.TokenComposite {
	composite := models.TokenComposite{
		ID:   id,
		Data: a.deps.Market.TokenData(ctx, id),
	}
	if composite.Data.IsZero() {
		composite.Degraded = true
		a.degraded("token")
		return composite
	}

	if withScore && a.deps.Scorer != nil {
		composite.Score = a.deps.Scorer.Score(ctx, id, composite.Data)
	}
	return composite
}
