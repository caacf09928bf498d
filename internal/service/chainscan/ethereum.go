package chainscan

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"

	"CoinPulse/internal/domain/models"
	xlogger "CoinPulse/pkg/logger"
)

var weiPerEther = new(big.Float).SetFloat64(1e18)

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type ethBlock struct {
	Timestamp    string `json:"timestamp"`
	Transactions []struct {
		Value string `json:"value"`
	} `json:"transactions"`
}

func (s *Scanner) ethereumWhales(ctx context.Context) []models.WhaleTransaction {
	const op = "chainscan.ethereum"

	var tipHex string
	if err := s.rpcCall(ctx, s.ethereumURL, "eth_blockNumber", nil, &tipHex); err != nil {
		s.base.SoftFail(op, err)
		return nil
	}
	tip, ok := parseHexUint(tipHex)
	if !ok {
		s.base.SoftFail(op, fmt.Errorf("bad block number %q", tipHex))
		return nil
	}

	var txs []models.WhaleTransaction
	for depth := uint64(0); depth < maxBlockDepth && tip >= depth; depth++ {
		var block *ethBlock
		params := []interface{}{fmt.Sprintf("0x%x", tip-depth), true}
		if err := s.rpcCall(ctx, s.ethereumURL, "eth_getBlockByNumber", params, &block); err != nil {
			s.base.SoftFail(op, err, xlogger.String("block", fmt.Sprintf("%d", tip-depth)))
			break
		}
		if block == nil {
			continue
		}

		ts := ""
		if sec, ok := parseHexUint(block.Timestamp); ok {
			ts = time.Unix(int64(sec), 0).UTC().Format(time.RFC3339)
		}
		for _, tx := range block.Transactions {
			amount, ok := weiToEther(tx.Value)
			if !ok || amount < s.minETH {
				continue
			}
			txs = append(txs, models.WhaleTransaction{
				Amount:       amount,
				Symbol:       "ETH",
				TimestampUTC: ts,
			})
		}
		if len(txs) >= targetTxCount {
			return txs[:targetTxCount]
		}
	}
	return txs
}

func (s *Scanner) rpcCall(ctx context.Context, url, method string, params []interface{}, result interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	var resp rpcResponse
	err := s.base.PostJSON(ctx, url, rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	}, nil, &resp)
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return fmt.Errorf("rpc %s: %s (%d)", method, resp.Error.Message, resp.Error.Code)
	}
	if len(resp.Result) == 0 || string(resp.Result) == "null" {
		return nil
	}
	return json.Unmarshal(resp.Result, result)
}

func parseHexUint(raw string) (uint64, bool) {
	v, ok := new(big.Int).SetString(strings.TrimPrefix(raw, "0x"), 16)
	if !ok || !v.IsUint64() {
		return 0, false
	}
	return v.Uint64(), true
}

func weiToEther(raw string) (float64, bool) {
	wei, ok := new(big.Int).SetString(strings.TrimPrefix(raw, "0x"), 16)
	if !ok {
		return 0, false
	}
	eth, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), weiPerEther).Float64()
	return eth, true
}
