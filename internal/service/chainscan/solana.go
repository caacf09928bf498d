package chainscan

import (
	"context"
	"fmt"
	"time"

	"CoinPulse/internal/domain/models"
	xlogger "CoinPulse/pkg/logger"
)

const lamportsPerSOL = 1e9

type solBlock struct {
	BlockTime    *int64 `json:"blockTime"`
	Transactions []struct {
		Meta *struct {
			PreBalances  []int64 `json:"preBalances"`
			PostBalances []int64 `json:"postBalances"`
		} `json:"meta"`
	} `json:"transactions"`
}

// solanaWhales inspects recent slots. Solana transactions carry no single
// transfer value, so the largest positive balance delta across accounts
// stands in for the moved amount.
func (s *Scanner) solanaWhales(ctx context.Context) []models.WhaleTransaction {
	const op = "chainscan.solana"

	var slot uint64
	if err := s.rpcCall(ctx, s.solanaURL, "getSlot", nil, &slot); err != nil {
		s.base.SoftFail(op, err)
		return nil
	}

	var txs []models.WhaleTransaction
	for depth := uint64(0); depth < maxBlockDepth && slot >= depth; depth++ {
		var block *solBlock
		params := []interface{}{
			slot - depth,
			map[string]interface{}{
				"transactionDetails":             "full",
				"rewards":                        false,
				"maxSupportedTransactionVersion": 0,
			},
		}
		if err := s.rpcCall(ctx, s.solanaURL, "getBlock", params, &block); err != nil {
			s.base.SoftFail(op, err, xlogger.String("slot", fmt.Sprintf("%d", slot-depth)))
			break
		}
		if block == nil {
			// Skipped slots are normal.
			continue
		}

		ts := ""
		if block.BlockTime != nil {
			ts = time.Unix(*block.BlockTime, 0).UTC().Format(time.RFC3339)
		}
		for _, tx := range block.Transactions {
			if tx.Meta == nil {
				continue
			}
			amount := largestDelta(tx.Meta.PreBalances, tx.Meta.PostBalances) / lamportsPerSOL
			if amount < s.minSOL {
				continue
			}
			txs = append(txs, models.WhaleTransaction{
				Amount:       amount,
				Symbol:       "SOL",
				TimestampUTC: ts,
			})
		}
		if len(txs) >= targetTxCount {
			return txs[:targetTxCount]
		}
	}
	return txs
}

func largestDelta(pre, post []int64) float64 {
	n := len(pre)
	if len(post) < n {
		n = len(post)
	}
	var max int64
	for i := 0; i < n; i++ {
		if d := post[i] - pre[i]; d > max {
			max = d
		}
	}
	return float64(max)
}
