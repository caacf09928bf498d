package whalealert

import (
	"context"
	"fmt"
	"strings"
	"time"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/service/upstream"
	xlogger "CoinPulse/pkg/logger"
)

const defaultBaseURL = "https://api.whale-alert.io/v1"

// Client reads recent large transfers from the Whale Alert REST API. It is
// the preferred feed for every chain but needs an API key, so without one it
// reports unavailable and the per-chain scanners take over.
type Client struct {
	base        *upstream.Base
	apiKey      string
	baseURL     string
	minValueUSD float64
	lookback    time.Duration
}

func New(base *upstream.Base, apiKey string, minValueUSD float64, opts ...Option) *Client {
	c := &Client{
		base:        base,
		apiKey:      apiKey,
		baseURL:     defaultBaseURL,
		minValueUSD: minValueUSD,
		lookback:    time.Hour,
	}
	if c.minValueUSD <= 0 {
		c.minValueUSD = 500000
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

func WithLookback(d time.Duration) Option {
	return func(c *Client) {
		c.lookback = d
	}
}

func (c *Client) Available() bool {
	return c.apiKey != ""
}

type transactionsResponse struct {
	Result       string `json:"result"`
	Transactions []struct {
		Blockchain string  `json:"blockchain"`
		Symbol     string  `json:"symbol"`
		Amount     float64 `json:"amount"`
		Timestamp  int64   `json:"timestamp"`
	} `json:"transactions"`
}

func (c *Client) WhaleTransactions(ctx context.Context, chain string) []models.WhaleTransaction {
	const op = "whalealert.transactions"

	if !c.Available() {
		c.base.MissingCredential(op)
		return nil
	}

	start := time.Now().Add(-c.lookback).Unix()
	var resp transactionsResponse
	err := c.base.GetJSON(ctx, c.baseURL+"/transactions", map[string][]string{
		"api_key":    {c.apiKey},
		"blockchain": {strings.ToLower(chain)},
		"min_value":  {fmt.Sprintf("%.0f", c.minValueUSD)},
		"start":      {fmt.Sprintf("%d", start)},
	}, nil, &resp)
	if err != nil {
		c.base.SoftFail(op, err, xlogger.String("chain", chain))
		return nil
	}
	if resp.Result != "success" {
		c.base.SoftFail(op, fmt.Errorf("result %q", resp.Result), xlogger.String("chain", chain))
		return nil
	}

	txs := make([]models.WhaleTransaction, 0, len(resp.Transactions))
	for _, t := range resp.Transactions {
		if !strings.EqualFold(t.Blockchain, chain) {
			continue
		}
		txs = append(txs, models.WhaleTransaction{
			Amount:       t.Amount,
			Symbol:       strings.ToUpper(t.Symbol),
			TimestampUTC: time.Unix(t.Timestamp, 0).UTC().Format(time.RFC3339),
		})
	}
	return txs
}
