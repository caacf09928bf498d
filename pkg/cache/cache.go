package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")
)

// Service is the shared expiring key/value store behind every logical query.
// Get on an absent or expired key returns ErrCacheMiss. A Set on an existing
// key replaces the payload and restarts its TTL.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, keys ...string) (bool, error)
	Close() error
}

// Key builds the canonical cache key for a capability and its parameters:
// capability name plus the lowercased parameter tuple, colon separated.
// Every caller goes through here so one logical query maps to one key shape.
func Key(capability string, params ...interface{}) string {
	var b strings.Builder
	b.WriteString(capability)
	for _, p := range params {
		b.WriteByte(':')
		b.WriteString(strings.ToLower(fmt.Sprintf("%v", p)))
	}
	return b.String()
}
