package models

// NewsFeed is the news logical query response.
type NewsFeed struct {
	Query    string        `json:"query,omitempty"`
	Source   string        `json:"source,omitempty"`
	Articles []NewsArticle `json:"articles"`
	Degraded bool          `json:"degraded,omitempty"`
}

// NewsArticle is one article summary from a news feed.
type NewsArticle struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt"`
}
