package feargreed

import (
	"context"
	"strconv"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/service/upstream"
)

const defaultBaseURL = "https://api.alternative.me"

// Client fetches the global Fear & Greed index from alternative.me.
// Implements repository.GlobalSentimentSource; the soft-fail default is the
// neutral {50, "Neutral"} sentinel.
type Client struct {
	base    *upstream.Base
	baseURL string
}

func New(base *upstream.Base) *Client {
	return &Client{base: base, baseURL: defaultBaseURL}
}

// WithBaseURL overrides the upstream URL. Used in tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

type fngResponse struct {
	Data []struct {
		Value          string `json:"value"`
		Classification string `json:"value_classification"`
	} `json:"data"`
}

func (c *Client) FearGreed(ctx context.Context) models.FearGreed {
	var resp fngResponse
	err := c.base.GetJSON(ctx, c.baseURL+"/fng/", map[string][]string{
		"limit": {"1"},
	}, nil, &resp)
	if err != nil {
		c.base.SoftFail("fear_greed", err)
		return models.NeutralFearGreed()
	}
	if len(resp.Data) == 0 {
		c.base.SoftFail("fear_greed", upstream.ErrEmptyBody)
		return models.NeutralFearGreed()
	}

	value, err := strconv.Atoi(resp.Data[0].Value)
	if err != nil {
		c.base.SoftFail("fear_greed", err)
		return models.NeutralFearGreed()
	}

	return models.FearGreed{
		Value:          value,
		Classification: resp.Data[0].Classification,
	}
}
