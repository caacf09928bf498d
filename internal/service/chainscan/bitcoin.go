package chainscan

import (
	"context"
	"time"

	"CoinPulse/internal/domain/models"
	xlogger "CoinPulse/pkg/logger"
)

const satoshiPerBTC = 1e8

type btcLatestBlock struct {
	Hash   string `json:"hash"`
	Height int64  `json:"height"`
}

type btcRawBlock struct {
	Time      int64  `json:"time"`
	PrevBlock string `json:"prev_block"`
	Tx        []struct {
		Out []struct {
			Value int64 `json:"value"` // satoshi
		} `json:"out"`
	} `json:"tx"`
}

// bitcoinWhales walks backwards from the chain tip via each block's
// prev_block link, keeping transactions whose total output clears the
// threshold.
func (s *Scanner) bitcoinWhales(ctx context.Context) []models.WhaleTransaction {
	const op = "chainscan.bitcoin"

	var latest btcLatestBlock
	if err := s.base.GetJSON(ctx, s.bitcoinURL+"/latestblock", nil, nil, &latest); err != nil {
		s.base.SoftFail(op, err)
		return nil
	}

	var txs []models.WhaleTransaction
	hash := latest.Hash
	for depth := 0; depth < maxBlockDepth && hash != ""; depth++ {
		var block btcRawBlock
		if err := s.base.GetJSON(ctx, s.bitcoinURL+"/rawblock/"+hash, nil, nil, &block); err != nil {
			s.base.SoftFail(op, err, xlogger.String("block", hash))
			break
		}

		ts := time.Unix(block.Time, 0).UTC().Format(time.RFC3339)
		for _, tx := range block.Tx {
			var total int64
			for _, out := range tx.Out {
				total += out.Value
			}
			amount := float64(total) / satoshiPerBTC
			if amount < s.minBTC {
				continue
			}
			txs = append(txs, models.WhaleTransaction{
				Amount:       amount,
				Symbol:       "BTC",
				TimestampUTC: ts,
			})
		}
		if len(txs) >= targetTxCount {
			return txs[:targetTxCount]
		}
		hash = block.PrevBlock
	}
	return txs
}
