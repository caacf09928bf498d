package lunarcrush

import (
	"context"
	"fmt"
	"strings"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/service/upstream"
	xlogger "CoinPulse/pkg/logger"
)

const defaultBaseURL = "https://lunarcrush.com/api4/public"

// Client reads per-token social sentiment. Every call needs an API key,
// so without one the neutral default is returned immediately.
type Client struct {
	base    *upstream.Base
	apiKey  string
	baseURL string
}

func New(base *upstream.Base, apiKey string, opts ...Option) *Client {
	c := &Client{
		base:    base,
		apiKey:  apiKey,
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
	return c.apiKey != ""
}

type coinResponse struct {
	Data struct {
		GalaxyScore float64  `json:"galaxy_score"`
		AltRank     *int     `json:"alt_rank"`
		SocialScore *float64 `json:"social_dominance"`
	} `json:"data"`
}

func (c *Client) TokenSentiment(ctx context.Context, symbol string) models.TokenSentiment {
	const op = "lunarcrush.token_sentiment"

	if !c.Available() {
		c.base.MissingCredential(op)
		return models.NeutralTokenSentiment()
	}

	var resp coinResponse
	err := c.base.GetJSON(ctx, fmt.Sprintf("%s/coins/%s/v1", c.baseURL, strings.ToLower(symbol)), nil, map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}, &resp)
	if err != nil {
		c.base.SoftFail(op, err, xlogger.String("symbol", symbol))
		return models.NeutralTokenSentiment()
	}
	if resp.Data.GalaxyScore == 0 {
		return models.NeutralTokenSentiment()
	}

	return models.TokenSentiment{
		GalaxyScore: resp.Data.GalaxyScore,
		AltRank:     resp.Data.AltRank,
		SocialScore: resp.Data.SocialScore,
	}
}
