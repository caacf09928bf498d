package defillama

import (
	"context"
	"strings"
	"time"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/service/upstream"
	xlogger "CoinPulse/pkg/logger"
)

const defaultBaseURL = "https://api.llama.fi"

// Client reads DeFi TVL series and token emission schedules. The API is
// keyless, so availability never gates a call.
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

type protocolResponse struct {
	TVL []struct {
		Date              int64   `json:"date"`
		TotalLiquidityUSD float64 `json:"totalLiquidityUSD"`
	} `json:"tvl"`
}

func (c *Client) ProtocolTVL(ctx context.Context, protocol string) []models.TVLPoint {
	const op = "defillama.protocol_tvl"

	var resp protocolResponse
	err := c.base.GetJSON(ctx, c.baseURL+"/protocol/"+strings.ToLower(protocol), nil, nil, &resp)
	if err != nil {
		c.base.SoftFail(op, err, xlogger.String("protocol", protocol))
		return nil
	}

	points := make([]models.TVLPoint, 0, len(resp.TVL))
	for _, p := range resp.TVL {
		points = append(points, models.TVLPoint{
			Date: time.Unix(p.Date, 0).UTC().Format("2006-01-02"),
			TVL:  p.TotalLiquidityUSD,
		})
	}
	return points
}

type protocolRow struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	TVL      float64 `json:"tvl"`
}

func (c *Client) GlobalTVL(ctx context.Context) []models.ProtocolTVL {
	const op = "defillama.global_tvl"

	var rows []protocolRow
	err := c.base.GetJSON(ctx, c.baseURL+"/protocols", nil, nil, &rows)
	if err != nil {
		c.base.SoftFail(op, err)
		return nil
	}

	listing := make([]models.ProtocolTVL, 0, len(rows))
	for _, r := range rows {
		listing = append(listing, models.ProtocolTVL{
			Name:     r.Name,
			Category: r.Category,
			TVL:      r.TVL,
		})
	}
	return listing
}

type emissionResponse struct {
	Data struct {
		Events []struct {
			Timestamp   int64   `json:"timestamp"`
			NoOfTokens  float64 `json:"noOfTokens"`
			Description string  `json:"description"`
			Category    string  `json:"category"`
		} `json:"events"`
		Categories map[string]float64 `json:"categories"`
	} `json:"data"`
}

// Unlocks returns the future unlock events for a token plus its allocation
// breakdown. Past events are dropped; the provider keys emissions by the
// lowercased token symbol.
func (c *Client) Unlocks(ctx context.Context, symbol string) ([]models.UnlockEvent, map[string]float64) {
	const op = "defillama.unlocks"

	var resp emissionResponse
	err := c.base.GetJSON(ctx, c.baseURL+"/emission/"+strings.ToLower(symbol), nil, nil, &resp)
	if err != nil {
		c.base.SoftFail(op, err, xlogger.String("symbol", symbol))
		return nil, nil
	}

	now := time.Now().Unix()
	events := make([]models.UnlockEvent, 0, len(resp.Data.Events))
	for _, ev := range resp.Data.Events {
		if ev.Timestamp < now {
			continue
		}
		category := ev.Category
		if category == "" {
			category = ev.Description
		}
		events = append(events, models.UnlockEvent{
			Date:     time.Unix(ev.Timestamp, 0).UTC().Format("2006-01-02"),
			Amount:   ev.NoOfTokens,
			Category: category,
		})
	}
	return events, resp.Data.Categories
}
