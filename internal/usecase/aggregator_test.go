package usecase

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/domain/repository"
	"CoinPulse/pkg/cache"
	"CoinPulse/pkg/config"
	"CoinPulse/pkg/logger"
)

// fakeMetrics counts calls without prometheus.
type fakeMetrics struct {
	hits, misses, degraded int32
}

func (m *fakeMetrics) RecordCacheHit(string)              { atomic.AddInt32(&m.hits, 1) }
func (m *fakeMetrics) RecordCacheMiss(string)             { atomic.AddInt32(&m.misses, 1) }
func (m *fakeMetrics) RecordProviderError(string, string) {}
func (m *fakeMetrics) RecordFallbackDepth(string, int)    {}
func (m *fakeMetrics) RecordQueryLatency(string, float64) {}
func (m *fakeMetrics) RecordDegraded(string)              { atomic.AddInt32(&m.degraded, 1) }

type fakeMacro struct {
	calls int32
	cpi   []models.SeriesPoint
}

func (f *fakeMacro) CPISeries(context.Context) []models.SeriesPoint {
	atomic.AddInt32(&f.calls, 1)
	return f.cpi
}
func (f *fakeMacro) PolicyRateSeries(context.Context) []models.SeriesPoint {
	atomic.AddInt32(&f.calls, 1)
	return []models.SeriesPoint{{Date: "2026-01-01", Value: 4.5}}
}
func (f *fakeMacro) FiscalDeficitSeries(context.Context) []models.SeriesPoint {
	atomic.AddInt32(&f.calls, 1)
	return []models.SeriesPoint{{Date: "2026-01-01", Value: -120}}
}

type fakeMarket struct {
	resolveCalls int32
	failFirst    int32 // number of leading resolve calls that soft-fail
	ids          map[string]string
	data         map[string]models.TokenData
	snapshot     []models.MarketEntry
}

func (f *fakeMarket) TokenData(_ context.Context, id string) models.TokenData {
	return f.data[id]
}
func (f *fakeMarket) MarketsSnapshot(context.Context) []models.MarketEntry {
	return f.snapshot
}
func (f *fakeMarket) ResolveSymbol(_ context.Context, symbol string) (string, repository.ResolveOutcome) {
	n := atomic.AddInt32(&f.resolveCalls, 1)
	if n <= f.failFirst {
		return "", repository.ResolveFailed
	}
	id, ok := f.ids[symbol]
	if !ok {
		return "", repository.ResolveNotFound
	}
	return id, repository.ResolveFound
}

type fakeWhaleFeed struct {
	calls     int32
	available bool
	txs       []models.WhaleTransaction
}

func (f *fakeWhaleFeed) Available() bool { return f.available }
func (f *fakeWhaleFeed) WhaleTransactions(context.Context, string) []models.WhaleTransaction {
	atomic.AddInt32(&f.calls, 1)
	return f.txs
}

type fakePairs struct {
	tokens []models.LaunchpadToken
}

func (f *fakePairs) RecentPairs(context.Context, string) []models.LaunchpadToken {
	return f.tokens
}

type fakeTrades struct {
	available bool
	calls     int32
	tokens    []models.LaunchpadToken
}

func (f *fakeTrades) Available() bool { return f.available }
func (f *fakeTrades) LaunchTrades(context.Context, string) []models.LaunchpadToken {
	atomic.AddInt32(&f.calls, 1)
	return f.tokens
}

type fakeFilings struct {
	recent map[string][]models.RegulatoryFiling
	search map[string][]models.RegulatoryFiling
}

func (f *fakeFilings) CompanyFilings(_ context.Context, cik string) []models.RegulatoryFiling {
	return f.recent[cik]
}
func (f *fakeFilings) SearchFilings(_ context.Context, keyword string) []models.RegulatoryFiling {
	return f.search[keyword]
}

func newTestAggregator(t *testing.T, deps Deps) *Aggregator {
	t.Helper()
	if deps.Store == nil {
		store := cache.NewMemoryCache()
		t.Cleanup(func() { store.Close() })
		deps.Store = store
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.Metrics == nil {
		deps.Metrics = &fakeMetrics{}
	}
	return NewAggregator(deps)
}

func TestMacroCacheSuppressesRefetch(t *testing.T) {
	macro := &fakeMacro{cpi: []models.SeriesPoint{{Date: "2026-01-01", Value: 310.5}}}
	metrics := &fakeMetrics{}
	agg := newTestAggregator(t, Deps{Macro: macro, Metrics: metrics})

	ctx := context.Background()
	first := agg.Macro(ctx)
	if first.Degraded {
		t.Fatalf("composite unexpectedly degraded: %+v", first)
	}
	second := agg.Macro(ctx)

	if got := atomic.LoadInt32(&macro.calls); got != 3 {
		t.Fatalf("expected 3 provider calls total, got %d", got)
	}
	if metrics.hits != 1 || metrics.misses != 1 {
		t.Fatalf("expected 1 hit and 1 miss, got %d/%d", metrics.hits, metrics.misses)
	}
	if len(second.CPI) != 1 || second.CPI[0].Value != 310.5 {
		t.Fatalf("cached composite mismatch: %+v", second)
	}
}

func TestMacroExpiryRefetchesOncePerSource(t *testing.T) {
	macro := &fakeMacro{cpi: []models.SeriesPoint{{Date: "2026-01-01", Value: 310.5}}}
	store := cache.NewMemoryCache()
	defer store.Close()
	agg := newTestAggregator(t, Deps{Macro: macro, Store: store})

	ctx := context.Background()
	agg.Macro(ctx)

	// Force expiry instead of waiting out the TTL.
	if err := store.Set(ctx, cache.Key("macro"), models.MacroComposite{}, time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	agg.Macro(ctx)
	if got := atomic.LoadInt32(&macro.calls); got != 6 {
		t.Fatalf("expected each source re-invoked exactly once after expiry, got %d total calls", got)
	}
}

func TestMacroDegradedOnPartialFailure(t *testing.T) {
	macro := &fakeMacro{} // CPI empty, others answer
	metrics := &fakeMetrics{}
	agg := newTestAggregator(t, Deps{Macro: macro, Metrics: metrics})

	composite := agg.Macro(context.Background())
	if !composite.Degraded {
		t.Fatalf("expected degraded composite, got %+v", composite)
	}
	if len(composite.Rates) != 1 {
		t.Fatalf("healthy constituent lost: %+v", composite)
	}
	if metrics.degraded != 1 {
		t.Fatalf("expected degraded metric recorded once, got %d", metrics.degraded)
	}
}

func TestWhaleTotalsSumsChains(t *testing.T) {
	feed := &fakeWhaleFeed{available: true, txs: []models.WhaleTransaction{
		{Amount: 12.5, Symbol: "BTC"},
		{Amount: 40, Symbol: "BTC"},
	}}
	agg := newTestAggregator(t, Deps{
		WhaleFeeds: []NamedWhaleSource{{Name: "primary", Source: feed}},
	})

	totals := agg.WhaleTotals(context.Background())
	if len(totals.Chains) != len(SupportedChains) {
		t.Fatalf("expected %d chains, got %d", len(SupportedChains), len(totals.Chains))
	}
	want := 3 * 52.5 // same fake answers for every chain
	if totals.GrandTotal != want {
		t.Fatalf("grand total = %v, want %v", totals.GrandTotal, want)
	}
	if totals.Degraded {
		t.Fatalf("unexpected degraded flag: %+v", totals)
	}
}

func TestWhaleTotalsFailedChainContributesZero(t *testing.T) {
	agg := newTestAggregator(t, Deps{
		WhaleFeeds: []NamedWhaleSource{
			{Name: "keyed", Source: &fakeWhaleFeed{available: false, txs: []models.WhaleTransaction{{Amount: 999}}}},
			{Name: "scanner", Source: &fakeWhaleFeed{available: true}},
		},
	})

	totals := agg.WhaleTotals(context.Background())
	if totals.GrandTotal != 0 {
		t.Fatalf("grand total = %v, want 0", totals.GrandTotal)
	}
	if !totals.Degraded {
		t.Fatalf("expected degraded totals when every feed is empty")
	}
	for _, chain := range totals.Chains {
		if chain.Count != 0 || chain.Total != 0 {
			t.Fatalf("failed chain should contribute zero: %+v", chain)
		}
	}
}

func TestWhalesFallbackSkipsUnavailableFeed(t *testing.T) {
	gated := &fakeWhaleFeed{available: false, txs: []models.WhaleTransaction{{Amount: 1}}}
	backup := &fakeWhaleFeed{available: true, txs: []models.WhaleTransaction{{Amount: 7, Symbol: "ETH"}}}
	agg := newTestAggregator(t, Deps{
		WhaleFeeds: []NamedWhaleSource{
			{Name: "keyed", Source: gated},
			{Name: "scanner", Source: backup},
		},
	})

	activity := agg.Whales(context.Background(), "ethereum")
	if atomic.LoadInt32(&gated.calls) != 0 {
		t.Fatalf("credential-gated feed must not be attempted")
	}
	if activity.Source != "scanner" || len(activity.Transactions) != 1 {
		t.Fatalf("expected scanner to serve, got %+v", activity)
	}
}

type fakeSink struct {
	batches chan []models.WhaleTransaction
}

func (f *fakeSink) ArchiveBatch(_ context.Context, _ string, txs []models.WhaleTransaction) error {
	f.batches <- txs
	return nil
}
func (f *fakeSink) PublishAlerts(_ context.Context, _ string, txs []models.WhaleTransaction) error {
	f.batches <- txs
	return nil
}

func TestWhaleSinksRunOffRequestPath(t *testing.T) {
	feed := &fakeWhaleFeed{available: true, txs: []models.WhaleTransaction{{Amount: 42, Symbol: "BTC"}}}
	// Unbuffered channels: a synchronous sink call would deadlock Whales here.
	archive := &fakeSink{batches: make(chan []models.WhaleTransaction)}
	alerts := &fakeSink{batches: make(chan []models.WhaleTransaction)}
	agg := newTestAggregator(t, Deps{
		WhaleFeeds: []NamedWhaleSource{{Name: "primary", Source: feed}},
		Archive:    archive,
		Alerts:     alerts,
	})

	ctx, cancel := context.WithCancel(context.Background())
	activity := agg.Whales(ctx, "bitcoin")
	cancel()

	if len(activity.Transactions) != 1 || activity.Degraded {
		t.Fatalf("unexpected activity: %+v", activity)
	}
	// Both sinks still receive the batch after the request context is gone.
	// Delivery happens archive first, so drain in that order.
	for _, sink := range []struct {
		name string
		ch   chan []models.WhaleTransaction
	}{
		{"archive", archive.batches},
		{"alerts", alerts.batches},
	} {
		name, ch := sink.name, sink.ch
		select {
		case txs := <-ch:
			if len(txs) != 1 || txs[0].Amount != 42 {
				t.Fatalf("%s received wrong batch: %+v", name, txs)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("%s never received the batch", name)
		}
	}
}

func TestResolveCachesPositiveResult(t *testing.T) {
	market := &fakeMarket{ids: map[string]string{"BTC": "bitcoin"}}
	agg := newTestAggregator(t, Deps{Market: market})

	ctx := context.Background()
	first := agg.Resolve(ctx, "btc")
	second := agg.Resolve(ctx, "BTC")

	if !first.Found || first.ProviderID != "bitcoin" {
		t.Fatalf("resolution mismatch: %+v", first)
	}
	if second != first {
		t.Fatalf("cached resolution differs: %+v vs %+v", second, first)
	}
	if got := atomic.LoadInt32(&market.resolveCalls); got != 1 {
		t.Fatalf("expected one upstream lookup, got %d", got)
	}
}

func TestResolveUnknownSymbolIsTerminalNotFound(t *testing.T) {
	market := &fakeMarket{ids: map[string]string{}}
	agg := newTestAggregator(t, Deps{Market: market})

	ctx := context.Background()
	res := agg.Resolve(ctx, "ZZZNOPE")
	if res.Found || res.ProviderID != "" {
		t.Fatalf("expected not-found, got %+v", res)
	}

	// The negative result is itself cached.
	agg.Resolve(ctx, "ZZZNOPE")
	if got := atomic.LoadInt32(&market.resolveCalls); got != 1 {
		t.Fatalf("negative result not cached, %d upstream lookups", got)
	}
}

func TestResolveFailedLookupIsNotCachedAsNotFound(t *testing.T) {
	market := &fakeMarket{failFirst: 1, ids: map[string]string{"BTC": "bitcoin"}}
	agg := newTestAggregator(t, Deps{Market: market})

	ctx := context.Background()
	first := agg.Resolve(ctx, "BTC")
	if first.Found || !first.Degraded {
		t.Fatalf("unanswered lookup must degrade, not resolve: %+v", first)
	}

	// The provider recovered; the next request must retry live and succeed
	// rather than serve the failure as a cached not-found.
	second := agg.Resolve(ctx, "BTC")
	if !second.Found || second.ProviderID != "bitcoin" || second.Degraded {
		t.Fatalf("recovered lookup mismatch: %+v", second)
	}
	if got := atomic.LoadInt32(&market.resolveCalls); got != 2 {
		t.Fatalf("expected a live retry after the failure, got %d upstream lookups", got)
	}

	// The successful answer is the one that caches.
	agg.Resolve(ctx, "BTC")
	if got := atomic.LoadInt32(&market.resolveCalls); got != 2 {
		t.Fatalf("positive result not cached after recovery, %d upstream lookups", got)
	}
}

func TestLaunchpadMergeDedupAndCap(t *testing.T) {
	var pairTokens []models.LaunchpadToken
	for _, sym := range []string{"AAA", "BBB", "CCC", "DDD", "EEE", "FFF", "GGG", "HHH", "III", "JJJ", "KKK"} {
		pairTokens = append(pairTokens, models.LaunchpadToken{Symbol: sym, Platform: "pumpfun"})
	}
	// Duplicate of a pair-stage token plus a genuinely new one.
	trades := &fakeTrades{available: true, tokens: []models.LaunchpadToken{
		{Symbol: "AAA", Platform: "pumpfun"},
		{Symbol: "NEW", Platform: "pumpfun"},
	}}
	agg := newTestAggregator(t, Deps{
		Market: &fakeMarket{},
		Pairs:  &fakePairs{tokens: pairTokens},
		Trades: trades,
	})

	listing := agg.Launchpad(context.Background(), "pumpfun", "7d")
	if len(listing.Tokens) != 10 {
		t.Fatalf("cap violated: %d tokens", len(listing.Tokens))
	}
	seen := map[models.LaunchpadKey]bool{}
	for _, token := range listing.Tokens {
		if seen[token.Key()] {
			t.Fatalf("duplicate token %+v", token)
		}
		seen[token.Key()] = true
	}
	if atomic.LoadInt32(&trades.calls) != 0 {
		t.Fatalf("trade stage must not run once the cap is reached")
	}
	if listing.Placeholder {
		t.Fatalf("unexpected placeholder flag")
	}
}

func TestLaunchpadPlaceholderWhenEverySourceEmpty(t *testing.T) {
	agg := newTestAggregator(t, Deps{
		Market: &fakeMarket{},
		Pairs:  &fakePairs{},
		Trades: &fakeTrades{available: false},
	})

	listing := agg.Launchpad(context.Background(), "pumpfun", "7d")
	if !listing.Placeholder {
		t.Fatalf("expected placeholder listing, got %+v", listing)
	}
	if len(listing.Tokens) == 0 {
		t.Fatalf("placeholder set must not be empty")
	}
}

func TestFilingsKeywordFilterAndFallback(t *testing.T) {
	filings := &fakeFilings{
		recent: map[string][]models.RegulatoryFiling{
			"1318605": {
				{FilingDate: "2026-08-01", Form: "S-8", Description: "Bitcoin treasury update", CompanyCIK: "1318605"},
				{FilingDate: "2026-07-20", Form: "S-3", Description: "Shelf registration", CompanyCIK: "1318605"},
				{FilingDate: "2026-07-01", Form: "8-K", Description: "Material event", CompanyCIK: "1318605"},
			},
			"320193": {
				{FilingDate: "2026-08-10", Form: "S-3", Description: "Shelf registration", CompanyCIK: "320193"},
				{FilingDate: "2026-08-05", Form: "S-8", Description: "Equity plan", CompanyCIK: "320193"},
				{FilingDate: "2026-07-30", Form: "S-8", Description: "Equity plan again", CompanyCIK: "320193"},
				{FilingDate: "2026-07-25", Form: "S-3", Description: "More shelf", CompanyCIK: "320193"},
				{FilingDate: "2026-07-20", Form: "S-3", Description: "Still more", CompanyCIK: "320193"},
				{FilingDate: "2026-07-15", Form: "S-3", Description: "Sixth", CompanyCIK: "320193"},
			},
		},
	}
	companies := []config.TrackedCompany{
		{Name: "CoinCo", CIK: "1318605", Keywords: []string{"bitcoin"}},
		{Name: "FruitCo", CIK: "320193", Keywords: []string{"crypto"}},
	}
	agg := newTestAggregator(t, Deps{Filings: filings, Companies: companies})

	results := agg.Filings(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 companies, got %d", len(results))
	}

	coin := results[0]
	if coin.Fallback {
		t.Fatalf("keyword matches must not be flagged fallback: %+v", coin)
	}
	if len(coin.Filings) != 2 {
		t.Fatalf("expected keyword match plus 8-K, got %+v", coin.Filings)
	}

	fruit := results[1]
	if !fruit.Fallback {
		t.Fatalf("expected recency fallback for zero matches: %+v", fruit)
	}
	if len(fruit.Filings) != 5 {
		t.Fatalf("fallback should serve the 5 most recent, got %d", len(fruit.Filings))
	}
}

func TestFilingsSearchHitsMergeByCIK(t *testing.T) {
	filings := &fakeFilings{
		recent: map[string][]models.RegulatoryFiling{
			"1318605": {
				{FilingDate: "2026-08-01", Form: "8-K", Description: "Material event", CompanyCIK: "1318605"},
			},
		},
		search: map[string][]models.RegulatoryFiling{
			"bitcoin": {
				{FilingDate: "2026-06-15", Form: "S-1", Description: "Prospectus", CompanyCIK: "1318605"},
				{FilingDate: "2026-06-10", Form: "S-1", Description: "Unrelated issuer", CompanyCIK: "99999"},
			},
		},
	}
	companies := []config.TrackedCompany{
		{Name: "CoinCo", CIK: "1318605", Keywords: []string{"bitcoin"}},
	}
	agg := newTestAggregator(t, Deps{Filings: filings, Companies: companies})

	results := agg.Filings(context.Background())
	if len(results[0].Filings) != 2 {
		t.Fatalf("expected search hit merged in, got %+v", results[0].Filings)
	}
	for _, f := range results[0].Filings {
		if f.CompanyCIK != "1318605" {
			t.Fatalf("hit merged into wrong company: %+v", f)
		}
	}
}

func TestTokenScoreAttachedOnlyWhenRequested(t *testing.T) {
	market := &fakeMarket{data: map[string]models.TokenData{
		"bitcoin": {Price: 64000, MarketCap: 1.2e12},
	}}
	scorer := scorerFunc(func(_ context.Context, id string, _ models.TokenData) *models.RiskScore {
		return &models.RiskScore{Score: 42, Recommendation: "hold"}
	})
	agg := newTestAggregator(t, Deps{Market: market, Scorer: scorer})

	ctx := context.Background()
	plain := agg.Token(ctx, "bitcoin", false)
	if plain.Score != nil {
		t.Fatalf("score attached without request: %+v", plain)
	}
	scored := agg.Token(ctx, "bitcoin", true)
	if scored.Score == nil || scored.Score.Recommendation != "hold" {
		t.Fatalf("score missing: %+v", scored)
	}
}

func TestTokenUnknownIDDegradesWithoutScoring(t *testing.T) {
	scored := int32(0)
	scorer := scorerFunc(func(context.Context, string, models.TokenData) *models.RiskScore {
		atomic.AddInt32(&scored, 1)
		return &models.RiskScore{Score: 1}
	})
	agg := newTestAggregator(t, Deps{Market: &fakeMarket{}, Scorer: scorer})

	composite := agg.Token(context.Background(), "nope", true)
	if !composite.Degraded || composite.Score != nil {
		t.Fatalf("expected degraded unscored composite, got %+v", composite)
	}
	if atomic.LoadInt32(&scored) != 0 {
		t.Fatalf("scorer must not run on a zero record")
	}
}

type scorerFunc func(context.Context, string, models.TokenData) *models.RiskScore

func (f scorerFunc) Score(ctx context.Context, id string, data models.TokenData) *models.RiskScore {
	return f(ctx, id, data)
}

var _ repository.Scorer = scorerFunc(nil)
