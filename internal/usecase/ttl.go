package usecase

import "time"

// Per-category cache lifetimes. Fixed constants, not configuration: the
// freshness contract of each query is part of its semantics.
const (
	ttlMacro     = time.Hour
	ttlSentiment = time.Hour
	ttlToken     = time.Hour
	ttlTVL       = time.Hour
	ttlUnlocks   = time.Hour
	ttlNews      = time.Hour
	ttlLaunchpad = time.Hour
	ttlFilings   = time.Hour

	// Whale activity moves fast enough that an hour would be misleading.
	ttlWhales = 10 * time.Minute

	// Symbol identity is near static. Negative results expire sooner so a
	// newly listed token is not shadowed for a whole day.
	ttlResolve         = 24 * time.Hour
	ttlResolveNegative = time.Hour
)
