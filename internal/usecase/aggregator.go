package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/domain/repository"
	"CoinPulse/internal/service/fallback"
	"CoinPulse/pkg/cache"
	"CoinPulse/pkg/config"
	xlogger "CoinPulse/pkg/logger"
)

// NamedWhaleSource pairs a whale feed with the name reported in responses.
type NamedWhaleSource struct {
	Name   string
	Source repository.WhaleSource
}

// NamedNewsSource pairs a news feed with its reported name.
type NamedNewsSource struct {
	Name   string
	Source repository.NewsSource
}

// Deps carries everything the aggregator composes over. Feed slices are in
// fallback priority order.
type Deps struct {
	Store   cache.Service
	Logger  *xlogger.Logger
	Metrics repository.Metrics

	Macro   repository.MacroSource
	Global  repository.GlobalSentimentSource
	Social  repository.TokenSentimentSource
	Market  repository.MarketDataSource
	TVL     repository.TVLSource
	Unlocks repository.UnlockSource
	Pairs   repository.TradingPairSource
	Trades  repository.TradeQuerySource
	Filings repository.FilingsSource
	Scorer  repository.Scorer

	WhaleFeeds []NamedWhaleSource
	NewsFeeds  []NamedNewsSource

	Archive repository.WhaleArchive
	Alerts  repository.AlertPublisher

	Companies []config.TrackedCompany

	// SingleFlight collapses concurrent misses on the same key into one
	// upstream computation.
	SingleFlight bool
}

// Aggregator serves every logical query: cache-aside over the provider
// adapters, composing partial results and never failing wholesale because
// one constituent source did.
type Aggregator struct {
	deps   Deps
	flight *singleflight.Group
}

func NewAggregator(deps Deps) *Aggregator {
	a := &Aggregator{deps: deps}
	if deps.SingleFlight {
		a.flight = &singleflight.Group{}
	}
	return a
}

func (a *Aggregator) whaleChain(chain string) *fallback.Chain[[]models.WhaleTransaction] {
	sources := make([]fallback.Source[[]models.WhaleTransaction], 0, len(a.deps.WhaleFeeds))
	for _, feed := range a.deps.WhaleFeeds {
		feed := feed
		sources = append(sources, fallback.Source[[]models.WhaleTransaction]{
			Name:      feed.Name,
			Available: feed.Source.Available,
			Fetch: func(ctx context.Context) []models.WhaleTransaction {
				return feed.Source.WhaleTransactions(ctx, chain)
			},
		})
	}
	return fallback.NewChain("whales", fallback.Empty[models.WhaleTransaction], sources...).
		WithMetrics(a.deps.Metrics)
}

func (a *Aggregator) newsChain(query string) *fallback.Chain[[]models.NewsArticle] {
	sources := make([]fallback.Source[[]models.NewsArticle], 0, len(a.deps.NewsFeeds))
	for _, feed := range a.deps.NewsFeeds {
		feed := feed
		sources = append(sources, fallback.Source[[]models.NewsArticle]{
			Name:      feed.Name,
			Available: feed.Source.Available,
			Fetch: func(ctx context.Context) []models.NewsArticle {
				return feed.Source.News(ctx, query)
			},
		})
	}
	return fallback.NewChain("news", fallback.Empty[models.NewsArticle], sources...).
		WithMetrics(a.deps.Metrics)
}

// observe times one logical query end to end.
func (a *Aggregator) observe(query string) func() {
	start := time.Now()
	return func() {
		if a.deps.Metrics != nil {
			a.deps.Metrics.RecordQueryLatency(query, time.Since(start).Seconds())
		}
	}
}

func (a *Aggregator) degraded(query string) {
	if a.deps.Metrics != nil {
		a.deps.Metrics.RecordDegraded(query)
	}
}
