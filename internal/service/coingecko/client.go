package coingecko

import (
	"context"
	"strings"
	"time"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/domain/repository"
	"CoinPulse/internal/service/upstream"
	xlogger "CoinPulse/pkg/logger"
)

const defaultBaseURL = "https://api.coingecko.com/api/v3"

// Client covers the keyless CoinGecko surface: per-token market data, the
// markets snapshot, symbol resolution, and the news feed used as the
// secondary article source.
type Client struct {
	base    *upstream.Base
	baseURL string
}

func New(base *upstream.Base, opts ...Option) *Client {
	c := &Client{
		base:    base,
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

func (c *Client) Available() bool {
	return true
}

type coinResponse struct {
	MarketData struct {
		CurrentPrice      map[string]float64 `json:"current_price"`
		MarketCap         map[string]float64 `json:"market_cap"`
		FDV               map[string]float64 `json:"fully_diluted_valuation"`
		CirculatingSupply float64            `json:"circulating_supply"`
		TotalSupply       float64            `json:"total_supply"`
	} `json:"market_data"`
}

func (c *Client) TokenData(ctx context.Context, id string) models.TokenData {
	const op = "coingecko.token_data"

	var resp coinResponse
	err := c.base.GetJSON(ctx, c.baseURL+"/coins/"+strings.ToLower(id), map[string][]string{
		"localization":   {"false"},
		"tickers":        {"false"},
		"community_data": {"false"},
		"developer_data": {"false"},
	}, nil, &resp)
	if err != nil {
		c.base.SoftFail(op, err, xlogger.String("id", id))
		return models.TokenData{}
	}

	return models.TokenData{
		Price:             resp.MarketData.CurrentPrice["usd"],
		MarketCap:         resp.MarketData.MarketCap["usd"],
		FDV:               resp.MarketData.FDV["usd"],
		CirculatingSupply: resp.MarketData.CirculatingSupply,
		TotalSupply:       resp.MarketData.TotalSupply,
	}
}

type marketRow struct {
	ID          string  `json:"id"`
	Symbol      string  `json:"symbol"`
	MarketCap   float64 `json:"market_cap"`
	TotalVolume float64 `json:"total_volume"`
	// The markets listing carries no launch date; the all-time-low date is
	// the closest proxy and good enough for recency filtering.
	AtlDate string `json:"atl_date"`
}

func (c *Client) MarketsSnapshot(ctx context.Context) []models.MarketEntry {
	const op = "coingecko.markets_snapshot"

	var rows []marketRow
	err := c.base.GetJSON(ctx, c.baseURL+"/coins/markets", map[string][]string{
		"vs_currency": {"usd"},
		"order":       {"market_cap_desc"},
		"per_page":    {"250"},
		"page":        {"1"},
	}, nil, &rows)
	if err != nil {
		c.base.SoftFail(op, err)
		return nil
	}

	entries := make([]models.MarketEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, models.MarketEntry{
			ID:         r.ID,
			Symbol:     strings.ToUpper(r.Symbol),
			MarketCap:  r.MarketCap,
			Volume24h:  r.TotalVolume,
			LaunchDate: r.AtlDate,
		})
	}
	return entries
}

type searchResponse struct {
	Coins []struct {
		ID     string `json:"id"`
		Symbol string `json:"symbol"`
	} `json:"coins"`
}

func (c *Client) ResolveSymbol(ctx context.Context, symbol string) (string, repository.ResolveOutcome) {
	const op = "coingecko.resolve_symbol"

	var resp searchResponse
	err := c.base.GetJSON(ctx, c.baseURL+"/search", map[string][]string{
		"query": {symbol},
	}, nil, &resp)
	if err != nil {
		c.base.SoftFail(op, err, xlogger.String("symbol", symbol))
		return "", repository.ResolveFailed
	}

	// The search ranks by relevance but matches loosely; only an exact
	// ticker match counts as a resolution.
	for _, coin := range resp.Coins {
		if strings.EqualFold(coin.Symbol, symbol) {
			return coin.ID, repository.ResolveFound
		}
	}
	return "", repository.ResolveNotFound
}

type newsResponse struct {
	Data []struct {
		Title     string `json:"title"`
		URL       string `json:"url"`
		NewsSite  string `json:"news_site"`
		UpdatedAt int64  `json:"updated_at"`
	} `json:"data"`
}

func (c *Client) News(ctx context.Context, query string) []models.NewsArticle {
	const op = "coingecko.news"

	var resp newsResponse
	err := c.base.GetJSON(ctx, c.baseURL+"/news", nil, nil, &resp)
	if err != nil {
		c.base.SoftFail(op, err)
		return nil
	}

	articles := make([]models.NewsArticle, 0, len(resp.Data))
	for _, item := range resp.Data {
		if query != "" && !strings.Contains(strings.ToLower(item.Title), strings.ToLower(query)) {
			continue
		}
		articles = append(articles, models.NewsArticle{
			Title:       item.Title,
			URL:         item.URL,
			Source:      item.NewsSite,
			PublishedAt: unixToDate(item.UpdatedAt),
		})
	}
	return articles
}

func unixToDate(ts int64) string {
	if ts <= 0 {
		return ""
	}
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}
