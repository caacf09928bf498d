package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"CoinPulse/internal/domain/models"
	"CoinPulse/pkg/cache"
	xlogger "CoinPulse/pkg/logger"
)

// forwardTimeout bounds a detached sink delivery.
const forwardTimeout = 10 * time.Second

// SupportedChains are the chains the whale queries cover, in the order the
// totals response lists them.
var SupportedChains = []string{"bitcoin", "ethereum", "solana"}

// Whales serves recent large transfers on one chain, resolved through the
// feed fallback chain. Fresh results are archived and published best effort;
// neither sink can fail the query.
func (a *Aggregator) Whales(ctx context.Context, chain string) models.WhaleActivity {
	defer a.observe("whales")()

	chain = strings.ToLower(strings.TrimSpace(chain))
	return lookupCached(ctx, a, "whales", cache.Key("whales", chain), ttlWhales,
		func(ctx context.Context) models.WhaleActivity {
			return a.fetchWhales(ctx, chain)
		})
}

func (a *Aggregator) fetchWhales(ctx context.Context, chain string) models.WhaleActivity {
	txs, source := a.whaleChain(chain).Resolve(ctx)

	activity := models.WhaleActivity{
		Chain:        chain,
		Source:       source,
		Transactions: txs,
	}
	if len(txs) == 0 {
		activity.Degraded = true
		a.degraded("whales")
		return activity
	}

	// Sinks run off the request path; the caller never waits on them, and a
	// response served before cancellation must not drop the batch.
	go a.forwardWhales(context.WithoutCancel(ctx), chain, txs)
	return activity
}

func (a *Aggregator) forwardWhales(ctx context.Context, chain string, txs []models.WhaleTransaction) {
	ctx, cancel := context.WithTimeout(ctx, forwardTimeout)
	defer cancel()

	if a.deps.Archive != nil {
		if err := a.deps.Archive.ArchiveBatch(ctx, chain, txs); err != nil && a.deps.Logger != nil {
			a.deps.Logger.Warn("whale archive write failed",
				xlogger.String("chain", chain), xlogger.Error(err))
		}
	}
	if a.deps.Alerts != nil {
		if err := a.deps.Alerts.PublishAlerts(ctx, chain, txs); err != nil && a.deps.Logger != nil {
			a.deps.Logger.Warn("whale alert publish failed",
				xlogger.String("chain", chain), xlogger.Error(err))
		}
	}
}

// WhaleTotals aggregates whale volume across every supported chain, fetching
// the chains concurrently. A chain whose feeds all failed contributes a zero
// total rather than failing the aggregate.
func (a *Aggregator) WhaleTotals(ctx context.Context) models.WhaleTotals {
	defer a.observe("whales_totals")()

	results := make([]models.WhaleActivity, len(SupportedChains))

	var wg sync.WaitGroup
	for i, chain := range SupportedChains {
		wg.Add(1)
		go func(i int, chain string) {
			defer wg.Done()
			results[i] = a.Whales(ctx, chain)
		}(i, chain)
	}
	wg.Wait()

	totals := models.WhaleTotals{Chains: make([]models.ChainTotal, 0, len(results))}
	for _, activity := range results {
		total := models.ChainTotal{
			Chain:  activity.Chain,
			Count:  len(activity.Transactions),
			Source: activity.Source,
		}
		for _, tx := range activity.Transactions {
			total.Total += tx.Amount
		}
		totals.Chains = append(totals.Chains, total)
		totals.GrandTotal += total.Total
		if activity.Degraded {
			totals.Degraded = true
		}
	}
	if totals.Degraded {
		a.degraded("whales_totals")
	}
	return totals
}
