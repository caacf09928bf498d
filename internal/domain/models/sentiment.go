package models

// FearGreed is the global Fear & Greed index reading.
type FearGreed struct {
	Value          int    `json:"value"`
	Classification string `json:"classification"`
}

// NeutralFearGreed is the soft-fail default for the sentiment category.
func NeutralFearGreed() FearGreed {
	return FearGreed{Value: 50, Classification: "Neutral"}
}

// TokenSentiment is per-token social sentiment. AltRank and SocialScore stay
// nil when the provider had no data for the token.
type TokenSentiment struct {
	GalaxyScore float64  `json:"galaxy_score"`
	AltRank     *int     `json:"alt_rank"`
	SocialScore *float64 `json:"social_score"`
}

// NeutralTokenSentiment is the soft-fail default for token sentiment.
func NeutralTokenSentiment() TokenSentiment {
	return TokenSentiment{GalaxyScore: 50}
}

// SentimentComposite is the sentiment logical query response. TokenSentiment
// is present only when a token symbol was part of the request.
type SentimentComposite struct {
	FearGreed      FearGreed       `json:"fearGreed"`
	TokenSentiment *TokenSentiment `json:"tokenSentiment,omitempty"`
	Degraded       bool            `json:"degraded,omitempty"`
}
