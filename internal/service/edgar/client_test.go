package edgar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"CoinPulse/internal/service/upstream"
	"CoinPulse/pkg/logger"
)

func TestPadCIK(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1318605", "0001318605", true},
		{"0001318605", "0001318605", true},
		{"", "", false},
		{"12345678901", "", false},
		{"12ab", "", false},
	}
	for _, tc := range cases {
		got, err := padCIK(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("padCIK(%q) = (%q, %v), want %q", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("padCIK(%q) succeeded, want error", tc.in)
		}
	}
}

func TestCompanyFilingsRequiresUserAgentAndParsesColumns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "test agent@example.com" {
			t.Errorf("user agent = %q", r.Header.Get("User-Agent"))
		}
		if r.URL.Path != "/submissions/CIK0001318605.json" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"filings":{"recent":{
			"form":["8-K","10-Q"],
			"filingDate":["2026-08-01","2026-07-15"],
			"primaryDocDescription":["Material event",""],
			"items":["","Quarterly report"]
		}}}`))
	}))
	defer srv.Close()

	c := New(upstream.New("edgar", logger.Nop(), nil), "test agent@example.com",
		WithSubmissionsURL(srv.URL))
	filings := c.CompanyFilings(context.Background(), "1318605")

	if len(filings) != 2 {
		t.Fatalf("expected 2 filings, got %+v", filings)
	}
	if filings[0].Form != "8-K" || filings[0].Description != "Material event" {
		t.Fatalf("first filing mismatch: %+v", filings[0])
	}
	if filings[1].Description != "Quarterly report" {
		t.Fatalf("items fallback not applied: %+v", filings[1])
	}
	if filings[0].CompanyCIK != "1318605" {
		t.Fatalf("cik not unpadded: %+v", filings[0])
	}
}

func TestSearchFilingsMapsHits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != `"bitcoin"` {
			t.Errorf("q = %q", got)
		}
		w.Write([]byte(`{"hits":{"hits":[
			{"_source":{"ciks":["0001318605"],"file_date":"2026-06-15","file_type":"S-1","display_names":["Tesla Inc"]}}
		]}}`))
	}))
	defer srv.Close()

	c := New(upstream.New("edgar", logger.Nop(), nil), "test agent@example.com",
		WithSearchURL(srv.URL))
	filings := c.SearchFilings(context.Background(), "bitcoin")

	if len(filings) != 1 || filings[0].CompanyCIK != "1318605" || filings[0].Form != "S-1" {
		t.Fatalf("hits mismatch: %+v", filings)
	}
}
