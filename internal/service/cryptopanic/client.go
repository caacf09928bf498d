package cryptopanic

import (
	"context"
	"strings"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/service/upstream"
	xlogger "CoinPulse/pkg/logger"
)

const defaultBaseURL = "https://cryptopanic.com/api/v1"

// Client reads the curated news feed. Needs an auth token; without one the
// news chain falls through to its secondary source.
type Client struct {
	base    *upstream.Base
	apiKey  string
	baseURL string
}

func New(base *upstream.Base, apiKey string, opts ...Option) *Client {
	c := &Client{
		base:    base,
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

func (c *Client) Available() bool {
	return c.apiKey != ""
}

type postsResponse struct {
	Results []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		PublishedAt string `json:"published_at"`
		Source      struct {
			Title string `json:"title"`
		} `json:"source"`
	} `json:"results"`
}

func (c *Client) News(ctx context.Context, query string) []models.NewsArticle {
	const op = "cryptopanic.news"

	if !c.Available() {
		c.base.MissingCredential(op)
		return nil
	}

	params := map[string][]string{
		"auth_token": {c.apiKey},
		"public":     {"true"},
	}
	if query != "" {
		params["currencies"] = []string{strings.ToUpper(query)}
	}

	var resp postsResponse
	err := c.base.GetJSON(ctx, c.baseURL+"/posts/", params, nil, &resp)
	if err != nil {
		c.base.SoftFail(op, err, xlogger.String("query", query))
		return nil
	}

	articles := make([]models.NewsArticle, 0, len(resp.Results))
	for _, r := range resp.Results {
		articles = append(articles, models.NewsArticle{
			Title:       r.Title,
			URL:         r.URL,
			Source:      r.Source.Title,
			PublishedAt: r.PublishedAt,
		})
	}
	return articles
}
