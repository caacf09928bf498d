package fred

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"CoinPulse/internal/service/upstream"
	"CoinPulse/pkg/logger"
)

func TestSeriesParsesAndSkipsMissingObservations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("series_id"); got != "CPIAUCSL" {
			t.Errorf("series_id = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"observations":[
			{"date":"2026-07-01","value":"310.5"},
			{"date":"2026-06-01","value":"."},
			{"date":"2026-05-01","value":"309.1"}
		]}`))
	}))
	defer srv.Close()

	c := New(upstream.New("fred", logger.Nop(), nil), "test-key").WithBaseURL(srv.URL)
	points := c.CPISeries(context.Background())

	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d: %+v", len(points), points)
	}
	if points[0].Value != 310.5 || points[1].Value != 309.1 {
		t.Fatalf("values mismatch: %+v", points)
	}
}

func TestSeriesSoftFailsWithoutKey(t *testing.T) {
	c := New(upstream.New("fred", logger.Nop(), nil), "")
	if points := c.PolicyRateSeries(context.Background()); points != nil {
		t.Fatalf("expected empty series without credential, got %+v", points)
	}
}

func TestSeriesSoftFailsOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(upstream.New("fred", logger.Nop(), nil), "test-key").WithBaseURL(srv.URL)
	if points := c.FiscalDeficitSeries(context.Background()); points != nil {
		t.Fatalf("expected empty series on 502, got %+v", points)
	}
}
