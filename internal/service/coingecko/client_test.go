package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"CoinPulse/internal/domain/repository"
	"CoinPulse/internal/service/upstream"
	"CoinPulse/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(upstream.New("coingecko", logger.Nop(), nil), WithBaseURL(srv.URL))
}

func TestTokenDataExtractsUSDFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/bitcoin" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"market_data":{
			"current_price":{"usd":64000.5,"eur":59000},
			"market_cap":{"usd":1200000000000},
			"fully_diluted_valuation":{"usd":1350000000000},
			"circulating_supply":19700000,
			"total_supply":21000000
		}}`))
	})

	data := c.TokenData(context.Background(), "Bitcoin")
	if data.Price != 64000.5 || data.MarketCap != 1.2e12 {
		t.Fatalf("unexpected data: %+v", data)
	}
	if data.IsZero() {
		t.Fatalf("populated record reported zero")
	}
}

func TestTokenDataSoftFailsToZeroRecord(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	data := c.TokenData(context.Background(), "nope")
	if !data.IsZero() {
		t.Fatalf("expected zero record, got %+v", data)
	}
}

func TestResolveSymbolWantsExactTickerMatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"coins":[
			{"id":"bitcoin-cash","symbol":"BCH"},
			{"id":"bitcoin","symbol":"BTC"}
		]}`))
	})

	id, outcome := c.ResolveSymbol(context.Background(), "BTC")
	if outcome != repository.ResolveFound || id != "bitcoin" {
		t.Fatalf("resolve = (%q, %v)", id, outcome)
	}

	if _, outcome := c.ResolveSymbol(context.Background(), "ZZZNOPE"); outcome != repository.ResolveNotFound {
		t.Fatalf("loose match must not resolve, got %v", outcome)
	}
}

func TestResolveSymbolFailureIsNotNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	if _, outcome := c.ResolveSymbol(context.Background(), "BTC"); outcome != repository.ResolveFailed {
		t.Fatalf("failed lookup must report failure, got %v", outcome)
	}
}

func TestNewsFiltersByQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"title":"Bitcoin rallies","url":"https://a","news_site":"one","updated_at":1756500000},
			{"title":"Stablecoin rules","url":"https://b","news_site":"two","updated_at":1756500000}
		]}`))
	})

	articles := c.News(context.Background(), "bitcoin")
	if len(articles) != 1 || articles[0].Title != "Bitcoin rallies" {
		t.Fatalf("filter mismatch: %+v", articles)
	}

	all := c.News(context.Background(), "")
	if len(all) != 2 {
		t.Fatalf("expected unfiltered feed, got %+v", all)
	}
}
