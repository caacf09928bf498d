package models

// Requests for the query HTTP endpoints. Defined in domain for consistency
// and reuse. Missing required parameters are the only client-facing failures.

type SentimentRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"omitempty,alphanum,max=12"`
}

type TokenRequest struct {
	ID    string `param:"id" json:"id" validate:"required,max=64"`
	Score bool   `query:"score" json:"score"`
}

type TVLRequest struct {
	Protocol string `query:"protocol" json:"protocol" validate:"omitempty,max=64"`
}

type WhalesRequest struct {
	Chain string `query:"chain" json:"chain" validate:"required,oneof=bitcoin ethereum solana"`
}

type UnlocksRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,alphanum,max=12"`
}

type NewsRequest struct {
	Query string `query:"q" json:"q" validate:"omitempty,max=80"`
}

type LaunchpadRequest struct {
	Platform string `query:"platform" json:"platform" validate:"required,max=32"`
	Age      string `query:"age" json:"age" default:"7d" validate:"omitempty,max=8"`
}

type ResolveRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,alphanum,max=12"`
}
