package fallback

import (
	"context"

	"CoinPulse/internal/domain/repository"
)

// Source is one interchangeable provider for a capability. Available reports
// whether the source can be attempted at all (a primary with no configured
// credential must be skipped without an attempt); nil means always available.
type Source[T any] struct {
	Name      string
	Available func() bool
	Fetch     func(ctx context.Context) T
}

// Chain tries sources in their fixed priority order and stops at the first
// non-empty result. Exhaustion returns the final, possibly empty, result.
type Chain[T any] struct {
	capability string
	empty      func(T) bool
	sources    []Source[T]
	metrics    repository.Metrics
}

// NewChain builds a fallback chain for one capability. empty decides whether
// a result is the category's empty sentinel.
func NewChain[T any](capability string, empty func(T) bool, sources ...Source[T]) *Chain[T] {
	return &Chain[T]{
		capability: capability,
		empty:      empty,
		sources:    sources,
	}
}

// WithMetrics attaches a metrics recorder for fallback depth.
func (c *Chain[T]) WithMetrics(m repository.Metrics) *Chain[T] {
	c.metrics = m
	return c
}

// Resolve walks the chain. It returns the served result and the name of the
// source that produced it ("" when every source was skipped or empty-handed
// and nothing was attempted).
func (c *Chain[T]) Resolve(ctx context.Context) (T, string) {
	var result T
	var served string
	attempted := 0

	for _, s := range c.sources {
		if s.Available != nil && !s.Available() {
			continue
		}
		attempted++
		result = s.Fetch(ctx)
		served = s.Name
		if !c.empty(result) {
			break
		}
	}

	if c.metrics != nil && attempted > 0 {
		c.metrics.RecordFallbackDepth(c.capability, attempted)
	}
	return result, served
}

// Empty is a convenience empty predicate for slice-valued capabilities.
func Empty[E any](xs []E) bool {
	return len(xs) == 0
}
