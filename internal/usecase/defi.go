package usecase

import (
	"context"
	"strings"

	"CoinPulse/internal/domain/models"
	"CoinPulse/pkg/cache"
)

// TVL serves DeFi total-value-locked data: the historical series for one
// protocol, or the global protocol listing when no protocol was named.
func (a *Aggregator) TVL(ctx context.Context, protocol string) models.TVLResult {
	defer a.observe("tvl")()

	protocol = strings.ToLower(strings.TrimSpace(protocol))
	return lookupCached(ctx, a, "tvl", cache.Key("tvl", protocol), ttlTVL,
		func(ctx context.Context) models.TVLResult {
			return a.fetchTVL(ctx, protocol)
		})
}

func (a *Aggregator) fetchTVL(ctx context.Context, protocol string) models.TVLResult {
	result := models.TVLResult{Protocol: protocol}

	if protocol == "" {
		result.Listing = a.deps.TVL.GlobalTVL(ctx)
		if len(result.Listing) == 0 {
			result.Degraded = true
			a.degraded("tvl")
		}
		return result
	}

	result.Series = a.deps.TVL.ProtocolTVL(ctx, protocol)
	if len(result.Series) == 0 {
		result.Degraded = true
		a.degraded("tvl")
	}
	return result
}
