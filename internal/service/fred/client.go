package fred

import (
	"context"
	"strconv"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/service/upstream"
	xlogger "CoinPulse/pkg/logger"
)

const defaultBaseURL = "https://api.stlouisfed.org/fred"

// Series identifiers for the macro composite.
const (
	seriesCPI           = "CPIAUCSL"
	seriesPolicyRate    = "FEDFUNDS"
	seriesFiscalDeficit = "FYFSD"
)

// Client fetches macroeconomic series from FRED. Implements
// repository.MacroSource: every failure yields an empty series.
type Client struct {
	base    *upstream.Base
	apiKey  string
	baseURL string
	limit   int
}

func New(base *upstream.Base, apiKey string) *Client {
	return &Client{
		base:    base,
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		limit:   24,
	}
}

// WithBaseURL overrides the upstream URL. Used in tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

func (c *Client) CPISeries(ctx context.Context) []models.SeriesPoint {
	return c.series(ctx, seriesCPI)
}

func (c *Client) PolicyRateSeries(ctx context.Context) []models.SeriesPoint {
	return c.series(ctx, seriesPolicyRate)
}

func (c *Client) FiscalDeficitSeries(ctx context.Context) []models.SeriesPoint {
	return c.series(ctx, seriesFiscalDeficit)
}

type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

func (c *Client) series(ctx context.Context, seriesID string) []models.SeriesPoint {
	if c.apiKey == "" {
		c.base.MissingCredential(seriesID)
		return nil
	}

	var resp observationsResponse
	err := c.base.GetJSON(ctx, c.baseURL+"/series/observations", map[string][]string{
		"series_id":  {seriesID},
		"api_key":    {c.apiKey},
		"file_type":  {"json"},
		"sort_order": {"desc"},
		"limit":      {strconv.Itoa(c.limit)},
	}, nil, &resp)
	if err != nil {
		c.base.SoftFail(seriesID, err, xlogger.String("series", seriesID))
		return nil
	}

	points := make([]models.SeriesPoint, 0, len(resp.Observations))
	for _, o := range resp.Observations {
		// FRED marks missing observations with ".".
		v, err := strconv.ParseFloat(o.Value, 64)
		if err != nil {
			continue
		}
		points = append(points, models.SeriesPoint{Date: o.Date, Value: v})
	}
	return points
}
