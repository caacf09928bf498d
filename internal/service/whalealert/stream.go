package whalealert

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/domain/repository"
	xlogger "CoinPulse/pkg/logger"
)

const defaultStreamURL = "wss://leviathan.whale-alert.io/ws"

// Stream consumes the Whale Alert push feed and fans each alert out to the
// archive and the alert topic. It is a side pipeline: query serving never
// depends on it, so a dropped connection only pauses archival.
type Stream struct {
	apiKey      string
	url         string
	minValueUSD float64
	chains      []string

	archive   repository.WhaleArchive
	publisher repository.AlertPublisher
	logger    *xlogger.Logger

	reconnectDelay time.Duration
	pingInterval   time.Duration

	conn *websocket.Conn
}

type StreamOption func(*Stream)

func WithStreamURL(u string) StreamOption {
	return func(s *Stream) {
		s.url = u
	}
}

func WithReconnectDelay(d time.Duration) StreamOption {
	return func(s *Stream) {
		s.reconnectDelay = d
	}
}

func NewStream(apiKey string, minValueUSD float64, chains []string, archive repository.WhaleArchive, publisher repository.AlertPublisher, logger *xlogger.Logger, opts ...StreamOption) *Stream {
	s := &Stream{
		apiKey:         apiKey,
		url:            defaultStreamURL,
		minValueUSD:    minValueUSD,
		chains:         chains,
		archive:        archive,
		publisher:      publisher,
		logger:         logger,
		reconnectDelay: 5 * time.Second,
		pingInterval:   30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enabled reports whether the stream has a credential to connect with.
func (s *Stream) Enabled() bool {
	return s.apiKey != ""
}

// Run connects and consumes alerts until the context is canceled,
// reconnecting after transient failures.
func (s *Stream) Run(ctx context.Context) {
	if !s.Enabled() {
		s.logger.Info("whale stream disabled, no api key")
		return
	}

	for {
		if err := s.connect(ctx); err != nil {
			s.logger.Warn("whale stream connect failed", xlogger.Error(err))
		} else {
			s.consume(ctx)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.reconnectDelay):
		}
	}
}

func (s *Stream) connect(ctx context.Context) error {
	u := fmt.Sprintf("%s?api_key=%s", s.url, s.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("whale stream dial: %w", err)
	}
	s.conn = conn

	sub := map[string]interface{}{
		"type":          "subscribe_alerts",
		"min_value_usd": s.minValueUSD,
		"blockchains":   s.chains,
	}
	if err := conn.WriteJSON(sub); err != nil {
		conn.Close()
		return fmt.Errorf("whale stream subscribe: %w", err)
	}
	s.logger.Info("whale stream connected", xlogger.Strings("chains", s.chains))
	return nil
}

type alertFrame struct {
	Type       string  `json:"type"`
	Blockchain string  `json:"blockchain"`
	Symbol     string  `json:"symbol"`
	Amount     float64 `json:"amount"`
	Timestamp  int64   `json:"timestamp"`
}

func (s *Stream) consume(ctx context.Context) {
	defer s.conn.Close()

	// The pinger lives exactly as long as this connection; it must not
	// outlive a dropped read loop into the next reconnect cycle.
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(s.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				_ = s.conn.WriteMessage(websocket.PingMessage, nil)
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			s.logger.Warn("whale stream read failed", xlogger.Error(err))
			return
		}

		var frame alertFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			continue
		}
		if frame.Type != "alert" {
			continue
		}

		tx := models.WhaleTransaction{
			Amount:       frame.Amount,
			Symbol:       strings.ToUpper(frame.Symbol),
			TimestampUTC: time.Unix(frame.Timestamp, 0).UTC().Format(time.RFC3339),
		}
		s.dispatch(ctx, strings.ToLower(frame.Blockchain), tx)
	}
}

func (s *Stream) dispatch(ctx context.Context, chain string, tx models.WhaleTransaction) {
	batch := []models.WhaleTransaction{tx}

	if s.archive != nil {
		if err := s.archive.ArchiveBatch(ctx, chain, batch); err != nil {
			s.logger.Warn("whale archive write failed", xlogger.String("chain", chain), xlogger.Error(err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishAlerts(ctx, chain, batch); err != nil {
			s.logger.Warn("whale alert publish failed", xlogger.String("chain", chain), xlogger.Error(err))
		}
	}
}
