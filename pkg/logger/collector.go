package logger

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Publisher ships aggregated failure entries somewhere downstream.
type Publisher interface {
	PublishMessage(ctx context.Context, topic string, payload interface{}) error
}

type CollectorConfig struct {
	FlushInterval  time.Duration // flush interval (e.g. 30s)
	CountThreshold int           // max unique entries before an early flush
	Topic          string        // topic for aggregated entries
	Publisher      Publisher     // nil disables publishing; snapshot still works
}

// FailureEntry is one deduplicated warn/error occurrence group.
type FailureEntry struct {
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields"`
	Count     int                    `json:"count"`
	FirstSeen time.Time              `json:"first_seen"`
	LastSeen  time.Time              `json:"last_seen"`
}

// FailureCollector aggregates provider failures between flushes. The current
// window is also exposed via Snapshot for the health endpoint.
type FailureCollector struct {
	config  *CollectorConfig
	entries map[string]*FailureEntry
	mutex   sync.RWMutex
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewFailureCollector(config *CollectorConfig) *FailureCollector {
	ctx, cancel := context.WithCancel(context.Background())

	c := &FailureCollector{
		config:  config,
		entries: make(map[string]*FailureEntry),
		ctx:     ctx,
		cancel:  cancel,
	}

	c.wg.Add(1)
	go c.periodicFlush()

	return c
}

func (c *FailureCollector) Add(message string, fields map[string]interface{}) {
	now := time.Now()
	key := entryKey(message, fields)

	c.mutex.Lock()
	if e, ok := c.entries[key]; ok {
		e.Count++
		e.LastSeen = now
		c.mutex.Unlock()
		return
	}
	c.entries[key] = &FailureEntry{
		Message:   message,
		Fields:    fields,
		Count:     1,
		FirstSeen: now,
		LastSeen:  now,
	}
	over := c.config.CountThreshold > 0 && len(c.entries) >= c.config.CountThreshold
	c.mutex.Unlock()

	if over {
		c.flush()
	}
}

// Snapshot returns the failures accumulated in the current window.
func (c *FailureCollector) Snapshot() []FailureEntry {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	out := make([]FailureEntry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, *e)
	}
	return out
}

func (c *FailureCollector) periodicFlush() {
	defer c.wg.Done()

	interval := c.config.FlushInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			c.flush()
			return
		case <-ticker.C:
			c.flush()
		}
	}
}

func (c *FailureCollector) flush() {
	c.mutex.Lock()
	if len(c.entries) == 0 {
		c.mutex.Unlock()
		return
	}
	batch := make([]*FailureEntry, 0, len(c.entries))
	for _, e := range c.entries {
		batch = append(batch, e)
	}
	c.entries = make(map[string]*FailureEntry)
	c.mutex.Unlock()

	if c.config.Publisher == nil || c.config.Topic == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = c.config.Publisher.PublishMessage(ctx, c.config.Topic, batch)
}

func (c *FailureCollector) Close() {
	c.cancel()
	c.wg.Wait()
}

func entryKey(message string, fields map[string]interface{}) string {
	b, _ := json.Marshal(fields)
	sum := sha256.Sum256(append([]byte(message), b...))
	return fmt.Sprintf("%x", sum[:8])
}
