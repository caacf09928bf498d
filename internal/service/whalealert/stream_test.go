package whalealert

import (
	"context"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"CoinPulse/pkg/logger"
)

func TestStreamDisabledWithoutKey(t *testing.T) {
	s := NewStream("", 0, []string{"bitcoin"}, nil, nil, logger.Nop())
	if s.Enabled() {
		t.Fatal("keyless stream should be disabled")
	}
}

func TestStreamPingerExitsWithConnection(t *testing.T) {
	var upgrader websocket.Upgrader
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		// Accept the subscribe frame, then drop the connection the way a
		// flaky upstream would.
		_, _, _ = conn.ReadMessage()
		conn.Close()
	}))
	defer srv.Close()

	s := NewStream("k", 0, []string{"bitcoin"}, nil, nil, logger.Nop(),
		WithStreamURL("ws"+strings.TrimPrefix(srv.URL, "http")))
	s.pingInterval = 5 * time.Millisecond

	ctx := context.Background()
	if err := s.connect(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}

	before := runtime.NumGoroutine()
	s.consume(ctx)

	// The per-connection pinger must wind down with the read loop, not
	// linger into the next reconnect cycle.
	deadline := time.Now().Add(2 * time.Second)
	for runtime.NumGoroutine() > before && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := runtime.NumGoroutine(); got > before {
		t.Fatalf("goroutines after consume = %d, want <= %d", got, before)
	}
}
