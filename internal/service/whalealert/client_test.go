package whalealert

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"CoinPulse/internal/service/upstream"
	"CoinPulse/pkg/logger"
)

func TestWhaleTransactionsFiltersChainAndUppercasesSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("api_key") != "k" || q.Get("blockchain") != "ethereum" {
			t.Errorf("query = %v", q)
		}
		if q.Get("min_value") != "500000" {
			t.Errorf("min_value = %q", q.Get("min_value"))
		}
		w.Write([]byte(`{"result":"success","transactions":[
			{"blockchain":"ethereum","symbol":"eth","amount":120.5,"timestamp":1756500000},
			{"blockchain":"tron","symbol":"usdt","amount":900000,"timestamp":1756500000}
		]}`))
	}))
	defer srv.Close()

	c := New(upstream.New("whalealert", logger.Nop(), nil), "k", 0, WithBaseURL(srv.URL))
	txs := c.WhaleTransactions(context.Background(), "Ethereum")

	if len(txs) != 1 {
		t.Fatalf("expected the off-chain row dropped, got %+v", txs)
	}
	if txs[0].Symbol != "ETH" || txs[0].Amount != 120.5 {
		t.Fatalf("transaction mismatch: %+v", txs[0])
	}
}

func TestWhaleTransactionsNonSuccessResultSoftFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"error","transactions":[]}`))
	}))
	defer srv.Close()

	c := New(upstream.New("whalealert", logger.Nop(), nil), "k", 0, WithBaseURL(srv.URL))
	if txs := c.WhaleTransactions(context.Background(), "bitcoin"); txs != nil {
		t.Fatalf("expected nil on error result, got %+v", txs)
	}
}

func TestWhaleTransactionsWithoutKeyReportsUnavailable(t *testing.T) {
	c := New(upstream.New("whalealert", logger.Nop(), nil), "", 0)
	if c.Available() {
		t.Fatal("keyless client should be unavailable")
	}
	if txs := c.WhaleTransactions(context.Background(), "bitcoin"); txs != nil {
		t.Fatalf("expected nil without key, got %+v", txs)
	}
}
