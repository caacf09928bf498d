package scoring

import (
	"context"
	"strings"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/service/upstream"
	xlogger "CoinPulse/pkg/logger"
)

// Client calls the downstream risk scoring service. The verdict is opaque;
// a nil result means the service was unreachable or not configured, and the
// token query simply omits the score.
type Client struct {
	base    *upstream.Base
	baseURL string
}

func New(base *upstream.Base, baseURL string) *Client {
	return &Client{
		base:    base,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

type scoreRequest struct {
	TokenID           string  `json:"token_id"`
	Price             float64 `json:"price"`
	MarketCap         float64 `json:"market_cap"`
	FDV               float64 `json:"fdv"`
	CirculatingSupply float64 `json:"circulating_supply"`
	TotalSupply       float64 `json:"total_supply"`
}

func (c *Client) Score(ctx context.Context, id string, data models.TokenData) *models.RiskScore {
	const op = "scoring.score"

	if c.baseURL == "" {
		return nil
	}

	var score models.RiskScore
	err := c.base.PostJSON(ctx, c.baseURL+"/score-token", scoreRequest{
		TokenID:           id,
		Price:             data.Price,
		MarketCap:         data.MarketCap,
		FDV:               data.FDV,
		CirculatingSupply: data.CirculatingSupply,
		TotalSupply:       data.TotalSupply,
	}, nil, &score)
	if err != nil {
		c.base.SoftFail(op, err, xlogger.String("id", id))
		return nil
	}
	if score.Recommendation == "" && score.Score == 0 {
		return nil
	}
	return &score
}
