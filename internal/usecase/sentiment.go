package usecase

import (
	"context"
	"strings"
	"sync"

	"CoinPulse/internal/domain/models"
	"CoinPulse/pkg/cache"
)

// Sentiment serves the sentiment composite: the global Fear & Greed index,
// plus per-token social sentiment when a symbol was given. The two fetches
// run concurrently. Provider failure surfaces as the documented neutral
// defaults, which are indistinguishable from a genuinely neutral market, so
// the composite carries no degraded flag here.
func (a *Aggregator) Sentiment(ctx context.Context, symbol string) models.SentimentComposite {
	defer a.observe("sentiment")()

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	return lookupCached(ctx, a, "sentiment", cache.Key("sentiment", symbol), ttlSentiment,
		func(ctx context.Context) models.SentimentComposite {
			return a.fetchSentiment(ctx, symbol)
		})
}

func (a *Aggregator) fetchSentiment(ctx context.Context, symbol string) models.SentimentComposite {
	var composite models.SentimentComposite

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		composite.FearGreed = a.deps.Global.FearGreed(ctx)
	}()

	if symbol != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ts := a.deps.Social.TokenSentiment(ctx, symbol)
			composite.TokenSentiment = &ts
		}()
	}

	wg.Wait()
	return composite
}
