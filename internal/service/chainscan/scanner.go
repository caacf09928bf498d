// Package chainscan walks recent blocks on public chain endpoints to find
// large native transfers. It is the last resort behind the keyed whale feeds
// and needs no credentials, so it is always available.
package chainscan

import (
	"context"
	"strings"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/service/upstream"
)

const (
	maxBlockDepth = 20
	targetTxCount = 50
)

// Scanner dispatches to the per-chain block walkers.
type Scanner struct {
	base *upstream.Base

	bitcoinURL  string
	ethereumURL string
	solanaURL   string

	minBTC float64
	minETH float64
	minSOL float64
}

func New(base *upstream.Base, opts ...Option) *Scanner {
	s := &Scanner{
		base:        base,
		bitcoinURL:  "https://blockchain.info",
		ethereumURL: "https://ethereum-rpc.publicnode.com",
		solanaURL:   "https://api.mainnet-beta.solana.com",
		minBTC:      50,
		minETH:      100,
		minSOL:      10000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type Option func(*Scanner)

func WithBitcoinURL(u string) Option {
	return func(s *Scanner) {
		s.bitcoinURL = strings.TrimSuffix(u, "/")
	}
}

func WithEthereumURL(u string) Option {
	return func(s *Scanner) {
		s.ethereumURL = strings.TrimSuffix(u, "/")
	}
}

func WithSolanaURL(u string) Option {
	return func(s *Scanner) {
		s.solanaURL = strings.TrimSuffix(u, "/")
	}
}

// WithThresholds sets the whale thresholds in whole native units.
func WithThresholds(btc, eth, sol float64) Option {
	return func(s *Scanner) {
		s.minBTC, s.minETH, s.minSOL = btc, eth, sol
	}
}

func (s *Scanner) Available() bool {
	return true
}

func (s *Scanner) WhaleTransactions(ctx context.Context, chain string) []models.WhaleTransaction {
	switch strings.ToLower(chain) {
	case "bitcoin":
		return s.bitcoinWhales(ctx)
	case "ethereum":
		return s.ethereumWhales(ctx)
	case "solana":
		return s.solanaWhales(ctx)
	default:
		return nil
	}
}
