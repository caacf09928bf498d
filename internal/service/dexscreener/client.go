package dexscreener

import (
	"context"
	"strings"
	"time"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/service/upstream"
	xlogger "CoinPulse/pkg/logger"
)

const defaultBaseURL = "https://api.dexscreener.com"

// Client finds recent trading pairs on a launch platform's DEX. Keyless.
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

type searchResponse struct {
	Pairs []struct {
		DexID     string `json:"dexId"`
		BaseToken struct {
			Symbol string `json:"symbol"`
		} `json:"baseToken"`
		PairCreatedAt int64   `json:"pairCreatedAt"` // ms
		MarketCap     float64 `json:"marketCap"`
		Liquidity     struct {
			USD float64 `json:"usd"`
		} `json:"liquidity"`
	} `json:"pairs"`
}

func (c *Client) RecentPairs(ctx context.Context, platform string) []models.LaunchpadToken {
	const op = "dexscreener.recent_pairs"

	var resp searchResponse
	err := c.base.GetJSON(ctx, c.baseURL+"/latest/dex/search", map[string][]string{
		"q": {platform},
	}, nil, &resp)
	if err != nil {
		c.base.SoftFail(op, err, xlogger.String("platform", platform))
		return nil
	}

	tokens := make([]models.LaunchpadToken, 0, len(resp.Pairs))
	for _, p := range resp.Pairs {
		// The search matches names and symbols too; only pairs actually
		// listed on the platform's DEX count.
		if !strings.EqualFold(p.DexID, platform) {
			continue
		}
		launch := ""
		if p.PairCreatedAt > 0 {
			launch = time.UnixMilli(p.PairCreatedAt).UTC().Format("2006-01-02")
		}
		tokens = append(tokens, models.LaunchpadToken{
			Symbol:     strings.ToUpper(p.BaseToken.Symbol),
			Platform:   strings.ToLower(platform),
			LaunchDate: launch,
			MarketCap:  p.MarketCap,
			Liquidity:  p.Liquidity.USD,
		})
	}
	return tokens
}
