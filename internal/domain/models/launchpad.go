package models

// LaunchpadToken is one token listed on a launch platform. Identity for
// dedup purposes is the (Symbol, Platform) pair.
type LaunchpadToken struct {
	Symbol     string  `json:"symbol"`
	Platform   string  `json:"platform"`
	LaunchDate string  `json:"launchDate"`
	MarketCap  float64 `json:"marketCap"`
	Liquidity  float64 `json:"liquidity"`
	Revenue    float64 `json:"revenue"`
}

// LaunchpadListing is the launchpad logical query response. Placeholder is
// true when every merge stage came back empty and the fixed fallback set was
// served instead.
type LaunchpadListing struct {
	Platform    string           `json:"platform"`
	Age         string           `json:"age"`
	Tokens      []LaunchpadToken `json:"tokens"`
	Placeholder bool             `json:"placeholder,omitempty"`
}

// LaunchpadKey is the dedup identity of a launchpad token.
type LaunchpadKey struct {
	Symbol   string
	Platform string
}

// Key returns the dedup identity for a token.
func (t LaunchpadToken) Key() LaunchpadKey {
	return LaunchpadKey{Symbol: t.Symbol, Platform: t.Platform}
}
