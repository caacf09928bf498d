package bitquery

import (
	"context"
	"strings"
	"time"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/service/upstream"
	xlogger "CoinPulse/pkg/logger"
)

const defaultBaseURL = "https://streaming.bitquery.io/eap"

// launchTradesQuery pulls the tokens most traded on a launch platform's
// program over the last day. Platform program addresses are resolved below.
const launchTradesQuery = `query ($program: String!, $since: DateTime!) {
  Solana {
    DEXTrades(
      where: {Trade: {Dex: {ProgramAddress: {is: $program}}}, Block: {Time: {since: $since}}}
      orderBy: {descendingByField: "volume"}
      limit: {count: 25}
    ) {
      Trade {
        Buy { Currency { Symbol } }
        Market { MarketAddress }
      }
      volume: sum(of: Trade_Buy_AmountInUSD)
      Block { Time }
    }
  }
}`

// Program addresses for the launch platforms we can query on chain.
var platformPrograms = map[string]string{
	"pumpfun":  "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P",
	"raydium":  "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8",
	"meteora":  "LBUZKhRxPF3XUpBCjp4YzTKgLccjZhTSDM9YuVaPwxo",
	"moonshot": "MoonCVVNZFSYkqNXP6bxHLPL6QQJiMagDL3qcqUQTrG",
}

// Client runs on-chain trade queries through the Bitquery GraphQL API.
// Credential gated; without a key the launchpad merge simply skips this
// stage.
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

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type tradesResponse struct {
	Data struct {
		Solana struct {
			DEXTrades []struct {
				Trade struct {
					Buy struct {
						Currency struct {
							Symbol string `json:"Symbol"`
						} `json:"Currency"`
					} `json:"Buy"`
				} `json:"Trade"`
				Volume string `json:"volume"`
				Block  struct {
					Time string `json:"Time"`
				} `json:"Block"`
			} `json:"DEXTrades"`
		} `json:"Solana"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) LaunchTrades(ctx context.Context, platform string) []models.LaunchpadToken {
	const op = "bitquery.launch_trades"

	if !c.Available() {
		c.base.MissingCredential(op)
		return nil
	}
	program, ok := platformPrograms[strings.ToLower(platform)]
	if !ok {
		return nil
	}

	var resp tradesResponse
	err := c.base.PostJSON(ctx, c.baseURL, graphQLRequest{
		Query: launchTradesQuery,
		Variables: map[string]interface{}{
			"program": program,
			"since":   time.Now().Add(-24 * time.Hour).UTC().Format(time.RFC3339),
		},
	}, map[string]string{
		"X-API-KEY": c.apiKey,
	}, &resp)
	if err != nil {
		c.base.SoftFail(op, err, xlogger.String("platform", platform))
		return nil
	}
	if len(resp.Errors) > 0 {
		c.base.SoftFail(op, upstream.ErrEmptyBody, xlogger.String("platform", platform), xlogger.String("graphql_error", resp.Errors[0].Message))
		return nil
	}

	tokens := make([]models.LaunchpadToken, 0, len(resp.Data.Solana.DEXTrades))
	for _, trade := range resp.Data.Solana.DEXTrades {
		symbol := strings.ToUpper(trade.Trade.Buy.Currency.Symbol)
		if symbol == "" {
			continue
		}
		launch := trade.Block.Time
		if t, err := time.Parse(time.RFC3339, launch); err == nil {
			launch = t.UTC().Format("2006-01-02")
		}
		tokens = append(tokens, models.LaunchpadToken{
			Symbol:     symbol,
			Platform:   strings.ToLower(platform),
			LaunchDate: launch,
		})
	}
	return tokens
}
