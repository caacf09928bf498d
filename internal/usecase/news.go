package usecase

import (
	"context"
	"strings"

	"CoinPulse/internal/domain/models"
	"CoinPulse/pkg/cache"
)

// News serves recent articles, optionally filtered by a query term, resolved
// through the feed fallback chain.
func (a *Aggregator) News(ctx context.Context, query string) models.NewsFeed {
	defer a.observe("news")()

	query = strings.ToLower(strings.TrimSpace(query))
	return lookupCached(ctx, a, "news", cache.Key("news", query), ttlNews,
		func(ctx context.Context) models.NewsFeed {
			return a.fetchNews(ctx, query)
		})
}

func (a *Aggregator) fetchNews(ctx context.Context, query string) models.NewsFeed {
	articles, source := a.newsChain(query).Resolve(ctx)

	feed := models.NewsFeed{
		Query:    query,
		Source:   source,
		Articles: articles,
	}
	if len(articles) == 0 {
		feed.Degraded = true
		a.degraded("news")
	}
	return feed
}
