package models

// UnlockEvent is one scheduled token unlock.
type UnlockEvent struct {
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category,omitempty"`
}

// UnlockSchedule is the unlock logical query response for one token.
type UnlockSchedule struct {
	Symbol      string             `json:"symbol"`
	Unlocks     []UnlockEvent      `json:"unlocks"`
	Allocations map[string]float64 `json:"allocations"`
	Degraded    bool               `json:"degraded,omitempty"`
}
