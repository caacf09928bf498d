package etherscan

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/service/upstream"
	xlogger "CoinPulse/pkg/logger"
)

const (
	defaultBaseURL = "https://api.etherscan.io/api"

	maxBlockDepth = 20
	targetTxCount = 50
)

var weiPerEther = new(big.Float).SetFloat64(1e18)

// Client walks recent Ethereum blocks through the Etherscan proxy module and
// keeps transfers at or above the whale threshold. It only answers for the
// ethereum chain and needs an API key.
type Client struct {
	base      *upstream.Base
	apiKey    string
	baseURL   string
	minAmount float64
}

func New(base *upstream.Base, apiKey string, opts ...Option) *Client {
	c := &Client{
		base:      base,
		apiKey:    apiKey,
		baseURL:   defaultBaseURL,
		minAmount: 100,
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

// WithMinAmount sets the whale threshold in whole ETH.
func WithMinAmount(amount float64) Option {
	return func(c *Client) {
		c.minAmount = amount
	}
}

func (c *Client) Available() bool {
	return c.apiKey != ""
}

type proxyResponse struct {
	Result string `json:"result"`
}

type blockResponse struct {
	Result *struct {
		Timestamp    string `json:"timestamp"`
		Transactions []struct {
			Value string `json:"value"`
		} `json:"transactions"`
	} `json:"result"`
}

func (c *Client) WhaleTransactions(ctx context.Context, chain string) []models.WhaleTransaction {
	const op = "etherscan.whale_transactions"

	if !strings.EqualFold(chain, "ethereum") {
		return nil
	}
	if !c.Available() {
		c.base.MissingCredential(op)
		return nil
	}

	var head proxyResponse
	err := c.base.GetJSON(ctx, c.baseURL, map[string][]string{
		"module": {"proxy"},
		"action": {"eth_blockNumber"},
		"apikey": {c.apiKey},
	}, nil, &head)
	if err != nil {
		c.base.SoftFail(op, err)
		return nil
	}
	tip, ok := parseHexUint(head.Result)
	if !ok {
		c.base.SoftFail(op, fmt.Errorf("bad block number %q", head.Result))
		return nil
	}

	var txs []models.WhaleTransaction
	for depth := uint64(0); depth < maxBlockDepth && tip >= depth; depth++ {
		block, err := c.fetchBlock(ctx, tip-depth)
		if err != nil {
			c.base.SoftFail(op, err, xlogger.String("block", fmt.Sprintf("%d", tip-depth)))
			break
		}
		if block == nil {
			continue
		}
		txs = append(txs, block...)
		if len(txs) >= targetTxCount {
			txs = txs[:targetTxCount]
			break
		}
	}
	return txs
}

func (c *Client) fetchBlock(ctx context.Context, number uint64) ([]models.WhaleTransaction, error) {
	var resp blockResponse
	err := c.base.GetJSON(ctx, c.baseURL, map[string][]string{
		"module":  {"proxy"},
		"action":  {"eth_getBlockByNumber"},
		"tag":     {fmt.Sprintf("0x%x", number)},
		"boolean": {"true"},
		"apikey":  {c.apiKey},
	}, nil, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Result == nil {
		return nil, nil
	}

	ts := ""
	if sec, ok := parseHexUint(resp.Result.Timestamp); ok {
		ts = time.Unix(int64(sec), 0).UTC().Format(time.RFC3339)
	}

	var txs []models.WhaleTransaction
	for _, tx := range resp.Result.Transactions {
		amount, ok := weiToEther(tx.Value)
		if !ok || amount < c.minAmount {
			continue
		}
		txs = append(txs, models.WhaleTransaction{
			Amount:       amount,
			Symbol:       "ETH",
			TimestampUTC: ts,
		})
	}
	return txs, nil
}

func parseHexUint(raw string) (uint64, bool) {
	v, ok := new(big.Int).SetString(strings.TrimPrefix(raw, "0x"), 16)
	if !ok || !v.IsUint64() {
		return 0, false
	}
	return v.Uint64(), true
}

// weiToEther converts a hex wei value without losing the high bits a
// float64 parse of the raw integer would drop.
func weiToEther(raw string) (float64, bool) {
	wei, ok := new(big.Int).SetString(strings.TrimPrefix(raw, "0x"), 16)
	if !ok {
		return 0, false
	}
	eth, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), weiPerEther).Float64()
	return eth, true
}
