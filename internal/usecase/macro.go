package usecase

import (
	"context"
	"sync"

	"CoinPulse/internal/domain/models"
	"CoinPulse/pkg/cache"
)

// Macro serves the macroeconomic composite: CPI, policy rates, and fiscal
// deficits, fetched concurrently and cached as one entry. A failed series
// stays empty and marks the composite degraded.
func (a *Aggregator) Macro(ctx context.Context) models.MacroComposite {
	defer a.observe("macro")()
	return lookupCached(ctx, a, "macro", cache.Key("macro"), ttlMacro, a.fetchMacro)
}

func (a *Aggregator) fetchMacro(ctx context.Context) models.MacroComposite {
	var composite models.MacroComposite

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		composite.CPI = a.deps.Macro.CPISeries(ctx)
	}()
	go func() {
		defer wg.Done()
		composite.Rates = a.deps.Macro.PolicyRateSeries(ctx)
	}()
	go func() {
		defer wg.Done()
		composite.Deficits = a.deps.Macro.FiscalDeficitSeries(ctx)
	}()
	wg.Wait()

	if len(composite.CPI) == 0 || len(composite.Rates) == 0 || len(composite.Deficits) == 0 {
		composite.Degraded = true
		a.degraded("macro")
	}
	return composite
}
