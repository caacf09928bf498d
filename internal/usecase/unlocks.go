package usecase

import (
	"context"
	"strings"

	"CoinPulse/internal/domain/models"
	"CoinPulse/pkg/cache"
)

// Unlocks serves the future unlock schedule and allocation breakdown for one
// token.
func (a *Aggregator) UnlockSchedule(ctx context.Context, symbol string) models.UnlockSchedule {
	defer a.observe("unlocks")()

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	return lookupCached(ctx, a, "unlocks", cache.Key("unlocks", symbol), ttlUnlocks,
		func(ctx context.Context) models.UnlockSchedule {
			return a.fetchUnlocks(ctx, symbol)
		})
}

func (a *Aggregator) fetchUnlocks(ctx context.Context, symbol string) models.UnlockSchedule {
	events, allocations := a.deps.Unlocks.Unlocks(ctx, symbol)

	schedule := models.UnlockSchedule{
		Symbol:      symbol,
		Unlocks:     events,
		Allocations: allocations,
	}
	if len(events) == 0 && len(allocations) == 0 {
		schedule.Degraded = true
		a.degraded("unlocks")
	}
	return schedule
}
