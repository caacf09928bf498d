package edgar

import (
	"context"
	"fmt"
	"strings"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/service/upstream"
	xlogger "CoinPulse/pkg/logger"
)

const (
	defaultSubmissionsURL = "https://data.sec.gov"
	defaultSearchURL      = "https://efts.sec.gov/LATEST/search-index"
)

// Client reads SEC EDGAR filings. EDGAR is keyless but requires a declared
// User-Agent identifying the caller; requests without one get blocked.
type Client struct {
	base           *upstream.Base
	userAgent      string
	submissionsURL string
	searchURL      string
}

func New(base *upstream.Base, userAgent string, opts ...Option) *Client {
	c := &Client{
		base:           base,
		userAgent:      userAgent,
		submissionsURL: defaultSubmissionsURL,
		searchURL:      defaultSearchURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Option func(*Client)

func WithSubmissionsURL(u string) Option {
	return func(c *Client) {
		c.submissionsURL = strings.TrimSuffix(u, "/")
	}
}

func WithSearchURL(u string) Option {
	return func(c *Client) {
		c.searchURL = u
	}
}

func (c *Client) headers() map[string]string {
	return map[string]string{"User-Agent": c.userAgent}
}

type submissionsResponse struct {
	Filings struct {
		Recent struct {
			Form                  []string `json:"form"`
			FilingDate            []string `json:"filingDate"`
			PrimaryDocDescription []string `json:"primaryDocDescription"`
			Items                 []string `json:"items"`
		} `json:"recent"`
	} `json:"filings"`
}

// CompanyFilings returns the company's recent filings, newest first, exactly
// as EDGAR orders them. The CIK may come in unpadded; the submissions API
// wants ten digits.
func (c *Client) CompanyFilings(ctx context.Context, cik string) []models.RegulatoryFiling {
	const op = "edgar.company_filings"

	padded, err := padCIK(cik)
	if err != nil {
		c.base.SoftFail(op, err, xlogger.String("cik", cik))
		return nil
	}

	var resp submissionsResponse
	url := fmt.Sprintf("%s/submissions/CIK%s.json", c.submissionsURL, padded)
	if err := c.base.GetJSON(ctx, url, nil, c.headers(), &resp); err != nil {
		c.base.SoftFail(op, err, xlogger.String("cik", cik))
		return nil
	}

	recent := resp.Filings.Recent
	filings := make([]models.RegulatoryFiling, 0, len(recent.Form))
	for i := range recent.Form {
		description := at(recent.PrimaryDocDescription, i)
		if description == "" {
			description = at(recent.Items, i)
		}
		filings = append(filings, models.RegulatoryFiling{
			FilingDate:  at(recent.FilingDate, i),
			Form:        recent.Form[i],
			Description: description,
			CompanyCIK:  strings.TrimLeft(padded, "0"),
		})
	}
	return filings
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source struct {
				CIKs     []string `json:"ciks"`
				FileDate string   `json:"file_date"`
				FileType string   `json:"file_type"`
				Names    []string `json:"display_names"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// SearchFilings runs the global full-text search for a keyword.
func (c *Client) SearchFilings(ctx context.Context, keyword string) []models.RegulatoryFiling {
	const op = "edgar.search_filings"

	var resp searchResponse
	err := c.base.GetJSON(ctx, c.searchURL, map[string][]string{
		"q": {fmt.Sprintf("%q", keyword)},
	}, c.headers(), &resp)
	if err != nil {
		c.base.SoftFail(op, err, xlogger.String("keyword", keyword))
		return nil
	}

	filings := make([]models.RegulatoryFiling, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		cik := ""
		if len(hit.Source.CIKs) > 0 {
			cik = strings.TrimLeft(hit.Source.CIKs[0], "0")
		}
		description := ""
		if len(hit.Source.Names) > 0 {
			description = hit.Source.Names[0]
		}
		filings = append(filings, models.RegulatoryFiling{
			FilingDate:  hit.Source.FileDate,
			Form:        hit.Source.FileType,
			Description: description,
			CompanyCIK:  cik,
		})
	}
	return filings
}

func padCIK(cik string) (string, error) {
	trimmed := strings.TrimSpace(cik)
	if trimmed == "" || len(trimmed) > 10 {
		return "", fmt.Errorf("bad cik %q", cik)
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("bad cik %q", cik)
		}
	}
	return strings.Repeat("0", 10-len(trimmed)) + trimmed, nil
}

func at(list []string, i int) string {
	if i < len(list) {
		return list[i]
	}
	return ""
}
