package models

// MarketEntry is one row of the general market-data snapshot used by the
// launchpad allow-list matching stage.
type MarketEntry struct {
	ID         string  `json:"id"`
	Symbol     string  `json:"symbol"`
	MarketCap  float64 `json:"market_cap"`
	Volume24h  float64 `json:"total_volume"`
	LaunchDate string  `json:"launch_date,omitempty"`
}
