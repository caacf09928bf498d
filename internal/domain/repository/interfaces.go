package repository

import (
	"context"

	"CoinPulse/internal/domain/models"
)

// Provider adapters never return errors past their boundary: any failure is
// logged inside the adapter and surfaces as the category's documented default.
// Orchestrators therefore compose plain values.

// MacroSource serves the three macroeconomic series.
type MacroSource interface {
	CPISeries(ctx context.Context) []models.SeriesPoint
	PolicyRateSeries(ctx context.Context) []models.SeriesPoint
	FiscalDeficitSeries(ctx context.Context) []models.SeriesPoint
}

// GlobalSentimentSource serves the global Fear & Greed index.
type GlobalSentimentSource interface {
	FearGreed(ctx context.Context) models.FearGreed
}

// TokenSentimentSource serves per-token social sentiment.
type TokenSentimentSource interface {
	TokenSentiment(ctx context.Context, symbol string) models.TokenSentiment
}

// ResolveOutcome distinguishes a definitive lookup answer from a lookup that
// never completed. Only a completed lookup may be treated as terminal.
type ResolveOutcome int

const (
	ResolveFound ResolveOutcome = iota
	ResolveNotFound
	ResolveFailed
)

// MarketDataSource serves token market data, the markets snapshot, and
// symbol resolution lookups.
type MarketDataSource interface {
	TokenData(ctx context.Context, id string) models.TokenData
	MarketsSnapshot(ctx context.Context) []models.MarketEntry
	// ResolveSymbol returns the provider identifier for an uppercased ticker.
	// A soft-failed lookup reports ResolveFailed, never ResolveNotFound.
	ResolveSymbol(ctx context.Context, symbol string) (id string, outcome ResolveOutcome)
}

// TVLSource serves DeFi protocol TVL data.
type TVLSource interface {
	ProtocolTVL(ctx context.Context, protocol string) []models.TVLPoint
	GlobalTVL(ctx context.Context) []models.ProtocolTVL
}

// UnlockSource serves token unlock schedules.
type UnlockSource interface {
	Unlocks(ctx context.Context, symbol string) ([]models.UnlockEvent, map[string]float64)
}

// TradingPairSource serves recent on-chain trading pairs for a platform
// (launchpad merge stage c).
type TradingPairSource interface {
	RecentPairs(ctx context.Context, platform string) []models.LaunchpadToken
}

// TradeQuerySource is the credential-gated on-chain trade query
// (launchpad merge stage d).
type TradeQuerySource interface {
	Available() bool
	LaunchTrades(ctx context.Context, platform string) []models.LaunchpadToken
}

// NewsSource serves recent news articles, optionally filtered by a query
// string. An empty query means the provider's front page.
type NewsSource interface {
	Available() bool
	News(ctx context.Context, query string) []models.NewsArticle
}

// WhaleSource serves recent large transactions on a chain. Sources that do
// not cover the requested chain return an empty slice.
type WhaleSource interface {
	Available() bool
	WhaleTransactions(ctx context.Context, chain string) []models.WhaleTransaction
}

// FilingsSource serves SEC filings per company plus global full-text search.
type FilingsSource interface {
	CompanyFilings(ctx context.Context, cik string) []models.RegulatoryFiling
	SearchFilings(ctx context.Context, keyword string) []models.RegulatoryFiling
}

// Scorer is the downstream scoring service, consumed as a black box.
// A nil result means the service was unreachable or declined to score.
type Scorer interface {
	Score(ctx context.Context, id string, data models.TokenData) *models.RiskScore
}

// WhaleArchive persists observed whale transactions for history.
type WhaleArchive interface {
	ArchiveBatch(ctx context.Context, chain string, txs []models.WhaleTransaction) error
}

// AlertPublisher ships large transactions to downstream consumers.
type AlertPublisher interface {
	PublishAlerts(ctx context.Context, chain string, txs []models.WhaleTransaction) error
}

// Metrics records operational metrics.
type Metrics interface {
	RecordCacheHit(capability string)
	RecordCacheMiss(capability string)
	RecordProviderError(provider, reason string)
	RecordFallbackDepth(capability string, depth int)
	RecordQueryLatency(query string, seconds float64)
	RecordDegraded(query string)
}
