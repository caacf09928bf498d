package upstream

import (
	"context"
	"errors"
	"strings"
	"time"

	"CoinPulse/internal/domain/repository"
	"CoinPulse/internal/service/ratelimit"
	xhttp "CoinPulse/pkg/http"
	xlogger "CoinPulse/pkg/logger"
)

var (
	// ErrRateLimited is returned when the local token bucket denies a call
	// before the upstream is ever contacted.
	ErrRateLimited = errors.New("upstream: local rate limit exceeded")

	// ErrEmptyBody marks a 2xx response whose payload carried no usable data.
	ErrEmptyBody = errors.New("upstream: empty response body")
)

// Base centralizes what every provider adapter needs: a bounded-timeout HTTP
// client, a per-provider token bucket, and uniform soft-failure reporting.
// Adapters embed it and never let an error escape their own boundary.
type Base struct {
	name    string
	client  *xhttp.Client
	logger  *xlogger.Logger
	metrics repository.Metrics
	limiter *ratelimit.Limiter

	capacity float64
	refill   float64
	timeout  time.Duration
}

// Option configures a Base.
type Option func(*Base)

// New builds an adapter base for the named provider.
func New(name string, logger *xlogger.Logger, metrics repository.Metrics, opts ...Option) *Base {
	b := &Base{
		name:     name,
		logger:   logger,
		metrics:  metrics,
		timeout:  8 * time.Second,
		capacity: 10,
		refill:   1,
	}

	for _, opt := range opts {
		opt(b)
	}

	b.client = xhttp.NewClient(xhttp.WithTimeout(b.timeout))
	return b
}

// WithTimeout sets the per-call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(b *Base) {
		b.timeout = timeout
	}
}

// WithRateLimit attaches a shared limiter with this provider's budget.
func WithRateLimit(l *ratelimit.Limiter, capacity, refillPerSec float64) Option {
	return func(b *Base) {
		b.limiter = l
		b.capacity = capacity
		b.refill = refillPerSec
	}
}

// Name returns the provider name used in logs and metrics.
func (b *Base) Name() string {
	return b.name
}

// GetJSON performs a GET and decodes the JSON response into dest. The call is
// bounded by the adapter timeout regardless of the caller's context.
func (b *Base) GetJSON(ctx context.Context, url string, query map[string][]string, headers map[string]string, dest interface{}) error {
	return b.send(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         url,
		QueryParams: query,
		Headers:     headers,
	}, dest)
}

// PostJSON performs a POST with a JSON body and decodes the response.
func (b *Base) PostJSON(ctx context.Context, url string, body interface{}, headers map[string]string, dest interface{}) error {
	return b.send(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodPost,
		URL:     url,
		Body:    body,
		Headers: headers,
	}, dest)
}

func (b *Base) send(ctx context.Context, opts *xhttp.RequestOptions, dest interface{}) error {
	if b.limiter != nil && !b.limiter.Allow(b.name, b.capacity, b.refill) {
		return ErrRateLimited
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	return b.client.SendAndParse(ctx, opts, dest)
}

// SoftFail records a provider failure: one structured warning plus the
// provider-error metric. The adapter then returns its category default.
func (b *Base) SoftFail(op string, err error, fields ...xlogger.Field) {
	reason := classify(err)

	if b.metrics != nil {
		b.metrics.RecordProviderError(b.name, reason)
	}
	if b.logger != nil {
		all := append([]xlogger.Field{
			xlogger.String("provider", b.name),
			xlogger.String("op", op),
			xlogger.String("reason", reason),
			xlogger.Error(err),
		}, fields...)
		b.logger.Warn("provider soft-failure", all...)
	}
}

// MissingCredential records the credential-missing failure class without an
// upstream attempt.
func (b *Base) MissingCredential(op string) {
	if b.metrics != nil {
		b.metrics.RecordProviderError(b.name, "missing_credential")
	}
	if b.logger != nil {
		b.logger.Warn("provider soft-failure",
			xlogger.String("provider", b.name),
			xlogger.String("op", op),
			xlogger.String("reason", "missing_credential"),
		)
	}
}

func classify(err error) string {
	switch {
	case err == nil:
		return "unknown"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrEmptyBody):
		return "malformed"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case strings.Contains(err.Error(), "decode json"):
		return "malformed"
	case strings.Contains(err.Error(), "unexpected status"):
		return "bad_status"
	default:
		return "network"
	}
}
