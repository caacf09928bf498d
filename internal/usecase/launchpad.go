package usecase

import (
	"context"
	"strings"
	"time"

	"CoinPulse/internal/domain/models"
	"CoinPulse/pkg/cache"
	"CoinPulse/pkg/util"
)

// launchpadCap is the hard size of a launchpad listing.
const launchpadCap = 10

// launchAsset is one curated allow-list entry: a market-data asset id known
// to belong to a launch platform.
type launchAsset struct {
	ID     string
	Symbol string
}

// platformAssets is the curated platform allow-list matched against the
// markets snapshot (merge stage one) and used for direct lookups (stage two).
var platformAssets = map[string][]launchAsset{
	"pumpfun": {
		{ID: "pump-fun", Symbol: "PUMP"},
		{ID: "fartcoin", Symbol: "FARTCOIN"},
		{ID: "goatseus-maximus", Symbol: "GOAT"},
	},
	"virtuals": {
		{ID: "virtual-protocol", Symbol: "VIRTUAL"},
		{ID: "aixbt", Symbol: "AIXBT"},
		{ID: "game-by-virtuals", Symbol: "GAME"},
	},
	"raydium": {
		{ID: "raydium", Symbol: "RAY"},
	},
	"moonshot": {
		{ID: "moonshot-2", Symbol: "MOONSHOT"},
	},
}

// launchpadPlaceholders is the fixed degraded-mode set served when every
// merge stage comes back empty.
func launchpadPlaceholders(platform string) []models.LaunchpadToken {
	return []models.LaunchpadToken{
		{Symbol: "N/A", Platform: platform},
	}
}

// Launchpad serves the merged token listing for one launch platform and age
// window. Up to four ordered sources contribute, each consulted only while
// the listing is still under the cap; results are deduplicated by
// (symbol, platform) and truncated to the cap.
func (a *Aggregator) Launchpad(ctx context.Context, platform, age string) models.LaunchpadListing {
	defer a.observe("launchpad")()

	platform = strings.ToLower(strings.TrimSpace(platform))
	age = strings.ToLower(strings.TrimSpace(age))
	if age == "" {
		age = "7d"
	}
	return lookupCached(ctx, a, "launchpad", cache.Key("launchpad", platform, age), ttlLaunchpad,
		func(ctx context.Context) models.LaunchpadListing {
			return a.fetchLaunchpad(ctx, platform, age)
		})
}

func (a *Aggregator) fetchLaunchpad(ctx context.Context, platform, age string) models.LaunchpadListing {
	window, err := util.ParseAge(age)
	if err != nil {
		window = 7 * 24 * time.Hour
	}
	cutoff := time.Now().Add(-window)

	merged := newLaunchpadMerge(platform)

	// Stage one: allow-list against the markets snapshot.
	if assets := platformAssets[platform]; len(assets) > 0 {
		snapshot := a.deps.Market.MarketsSnapshot(ctx)
		byID := make(map[string]models.MarketEntry, len(snapshot))
		for _, entry := range snapshot {
			byID[entry.ID] = entry
		}
		for _, asset := range assets {
			entry, ok := byID[asset.ID]
			if !ok || !withinWindow(entry.LaunchDate, cutoff) {
				continue
			}
			merged.add(models.LaunchpadToken{
				Symbol:     asset.Symbol,
				Platform:   platform,
				LaunchDate: entry.LaunchDate,
				MarketCap:  entry.MarketCap,
			})
		}
	}

	// Stage two: direct lookups for the curated assets, only when the
	// snapshot produced nothing at all.
	if merged.len() == 0 {
		for _, asset := range platformAssets[platform] {
			data := a.deps.Market.TokenData(ctx, asset.ID)
			if data.IsZero() {
				continue
			}
			merged.add(models.LaunchpadToken{
				Symbol:    asset.Symbol,
				Platform:  platform,
				MarketCap: data.MarketCap,
			})
		}
	}

	// Stage three: recent on-chain trading pairs.
	if merged.len() < launchpadCap {
		for _, token := range a.deps.Pairs.RecentPairs(ctx, platform) {
			if !withinWindow(token.LaunchDate, cutoff) {
				continue
			}
			merged.add(token)
		}
	}

	// Stage four: credential-gated on-chain trade query.
	if merged.len() < launchpadCap && a.deps.Trades != nil && a.deps.Trades.Available() {
		for _, token := range a.deps.Trades.LaunchTrades(ctx, platform) {
			merged.add(token)
		}
	}

	listing := models.LaunchpadListing{
		Platform: platform,
		Age:      age,
		Tokens:   merged.tokens,
	}
	if merged.len() == 0 {
		listing.Tokens = launchpadPlaceholders(platform)
		listing.Placeholder = true
		a.degraded("launchpad")
	}
	return listing
}

// launchpadMerge accumulates tokens with (symbol, platform) dedup and the
// hard cap.
type launchpadMerge struct {
	platform string
	seen     map[models.LaunchpadKey]bool
	tokens   []models.LaunchpadToken
}

func newLaunchpadMerge(platform string) *launchpadMerge {
	return &launchpadMerge{
		platform: platform,
		seen:     make(map[models.LaunchpadKey]bool),
	}
}

func (m *launchpadMerge) add(token models.LaunchpadToken) {
	if len(m.tokens) >= launchpadCap {
		return
	}
	token.Symbol = strings.ToUpper(token.Symbol)
	if token.Platform == "" {
		token.Platform = m.platform
	}
	key := token.Key()
	if token.Symbol == "" || m.seen[key] {
		return
	}
	m.seen[key] = true
	m.tokens = append(m.tokens, token)
}

func (m *launchpadMerge) len() int {
	return len(m.tokens)
}

// withinWindow reports whether a launch date string falls after the cutoff.
// Undated entries pass; the sources already order by recency.
func withinWindow(date string, cutoff time.Time) bool {
	t, ok := util.ParseTime(date)
	if !ok {
		return true
	}
	return t.After(cutoff)
}
