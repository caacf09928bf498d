package models

// TVLPoint is one observation of a protocol's total value locked.
type TVLPoint struct {
	Date string  `json:"date"`
	TVL  float64 `json:"tvl"`
}

// ProtocolTVL is a single protocol entry from the global TVL listing.
type ProtocolTVL struct {
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	TVL      float64 `json:"tvl"`
}

// TVLResult is the defi TVL logical query response: a series for one protocol
// or the global listing when no protocol was requested.
type TVLResult struct {
	Protocol string        `json:"protocol,omitempty"`
	Series   []TVLPoint    `json:"series,omitempty"`
	Listing  []ProtocolTVL `json:"listing,omitempty"`
	Degraded bool          `json:"degraded,omitempty"`
}
