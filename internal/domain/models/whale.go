package models

// WhaleTransaction is one large transfer observed on a chain, denominated in
// whole native units after smallest-unit conversion.
type WhaleTransaction struct {
	Amount       float64 `json:"amount"`
	Symbol       string  `json:"symbol"`
	TimestampUTC string  `json:"timestampUTC"`
}

// ChainTotal is the whale volume aggregated for one chain.
type ChainTotal struct {
	Chain  string  `json:"chain"`
	Total  float64 `json:"total"`
	Count  int     `json:"count"`
	Source string  `json:"source,omitempty"` // which feed in the chain answered
}

// WhaleActivity is the single-chain whale query response. Source names the
// feed that answered; an empty transaction list marks the entry degraded.
type WhaleActivity struct {
	Chain        string             `json:"chain"`
	Source       string             `json:"source,omitempty"`
	Transactions []WhaleTransaction `json:"transactions"`
	Degraded     bool               `json:"degraded,omitempty"`
}

// WhaleTotals is the multi-chain whale aggregate. A chain whose feed failed
// or came back empty contributes a zero total.
type WhaleTotals struct {
	Chains     []ChainTotal `json:"chains"`
	GrandTotal float64      `json:"grandTotal"`
	Degraded   bool         `json:"degraded,omitempty"`
}
