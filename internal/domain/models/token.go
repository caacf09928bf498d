package models

// TokenData is the canonical market data record for one token.
// The soft-fail default is the zero value.
type TokenData struct {
	Price             float64 `json:"price"`
	MarketCap         float64 `json:"market_cap"`
	FDV               float64 `json:"fdv"`
	CirculatingSupply float64 `json:"circulating_supply"`
	TotalSupply       float64 `json:"total_supply"`
}

// IsZero reports whether every numeric field is zero (the soft-fail default).
func (t TokenData) IsZero() bool {
	return t == TokenData{}
}

// RiskScore is the downstream scoring service's opaque verdict for a token.
type RiskScore struct {
	Score          float64            `json:"risk_score"`
	Recommendation string             `json:"recommendation"`
	PriceTarget    float64            `json:"price_target"`
	FactorScores   map[string]float64 `json:"factor_scores,omitempty"`
}

// TokenComposite is the token data logical query response. Score is attached
// only when requested and the scoring service answered.
type TokenComposite struct {
	ID       string     `json:"id"`
	Data     TokenData  `json:"data"`
	Score    *RiskScore `json:"score,omitempty"`
	Degraded bool       `json:"degraded,omitempty"`
}

// SymbolResolution maps an uppercased ticker to its provider identifier.
// Degraded marks a lookup that never completed: the symbol is not known to
// be missing, the answer just could not be obtained this time.
type SymbolResolution struct {
	Symbol     string `json:"symbol"`
	ProviderID string `json:"providerId"`
	Found      bool   `json:"found"`
	Degraded   bool   `json:"degraded,omitempty"`
}
