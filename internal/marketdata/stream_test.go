package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func newFeedServer(t *testing.T, messages []string) *httptest.Server {
	t.Helper()

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for _, msg := range messages {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		}

		// Keep the connection open so the client doesn't reconnect during
		// the assertion window.
		time.Sleep(time.Second)
	}))
	t.Cleanup(server.Close)

	return server
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestStream_CollectsPrices(t *testing.T) {
	server := newFeedServer(t, []string{
		`{"marketId":"m1","yesPrice":0.42}`,
		`{"marketId":"m2","yesPrice":0.71}`,
		`not-json`,
		`{"marketId":"m1","yesPrice":0.45}`,
	})

	logger, _ := zap.NewDevelopment()
	stream := NewStream(&StreamConfig{
		URL:                   wsURL(server),
		DialTimeout:           2 * time.Second,
		ReconnectInitialDelay: 10 * time.Millisecond,
		ReconnectMaxDelay:     100 * time.Millisecond,
		ReconnectBackoffMult:  2.0,
		Logger:                logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream.Start(ctx)

	deadline := time.After(2 * time.Second)
	for {
		prices := stream.Prices()
		if prices["m1"] == 0.45 && prices["m2"] == 0.71 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for prices, got %v", prices)
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	stream.Wait()
}

func TestStream_BackoffResetsAfterConnection(t *testing.T) {
	var connections atomic.Int64

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		connections.Add(1)
		_ = conn.Close()
	}))
	t.Cleanup(server.Close)

	logger, _ := zap.NewDevelopment()
	stream := NewStream(&StreamConfig{
		URL:                   wsURL(server),
		DialTimeout:           time.Second,
		ReconnectInitialDelay: 10 * time.Millisecond,
		ReconnectMaxDelay:     2 * time.Second,
		ReconnectBackoffMult:  10.0,
		Logger:                logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	stream.Start(ctx)

	// Every connection succeeds and then drops, so the delay must stay at
	// the initial 10ms. Without the reset it escalates 10ms -> 100ms ->
	// 1s -> 2s and only a handful of reconnects fit in the window.
	time.Sleep(1200 * time.Millisecond)

	cancel()
	stream.Wait()

	if got := connections.Load(); got < 8 {
		t.Errorf("expected at least 8 reconnects with backoff reset, got %d", got)
	}
}

func TestStream_PricesReturnsCopy(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	stream := NewStream(&StreamConfig{
		URL:                   "ws://localhost:0",
		DialTimeout:           time.Second,
		ReconnectInitialDelay: time.Second,
		ReconnectMaxDelay:     time.Second,
		ReconnectBackoffMult:  2.0,
		Logger:                logger,
	})

	stream.prices["m1"] = 0.5
	snapshot := stream.Prices()
	snapshot["m1"] = 0.9

	if stream.Prices()["m1"] != 0.5 {
		t.Error("mutating the snapshot must not affect the stream state")
	}
}
