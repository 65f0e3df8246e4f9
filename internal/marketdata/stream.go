package marketdata

import (
	"context"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Stream maintains a websocket subscription to the price feed and keeps the
// latest YES price per market. The cycle runner overlays these prices onto
// the REST snapshot, so between-cycle price moves are reflected without an
// extra fetch. The stream is optional; when disabled, cycles use REST prices
// as-is.
type Stream struct {
	url          string
	dialTimeout  time.Duration
	initialDelay time.Duration
	maxDelay     time.Duration
	backoffMult  float64
	logger       *zap.Logger

	mu     sync.RWMutex
	prices map[string]float64

	wg sync.WaitGroup
}

// StreamConfig holds price-stream configuration.
type StreamConfig struct {
	URL                   string
	DialTimeout           time.Duration
	ReconnectInitialDelay time.Duration
	ReconnectMaxDelay     time.Duration
	ReconnectBackoffMult  float64
	Logger                *zap.Logger
}

// priceUpdate is one message on the price feed.
type priceUpdate struct {
	MarketID string  `json:"marketId"`
	YesPrice float64 `json:"yesPrice"`
}

// NewStream creates a new price stream.
func NewStream(cfg *StreamConfig) *Stream {
	return &Stream{
		url:          cfg.URL,
		dialTimeout:  cfg.DialTimeout,
		initialDelay: cfg.ReconnectInitialDelay,
		maxDelay:     cfg.ReconnectMaxDelay,
		backoffMult:  cfg.ReconnectBackoffMult,
		logger:       cfg.Logger,
		prices:       make(map[string]float64),
	}
}

// Start launches the read loop. It returns immediately; connection and
// reconnection happen in the background until the context is cancelled.
func (s *Stream) Start(ctx context.Context) {
	s.logger.Info("price-stream-starting", zap.String("url", s.url))

	s.wg.Add(1)
	go s.run(ctx)
}

// Wait blocks until the read loop has exited.
func (s *Stream) Wait() {
	s.wg.Wait()
}

// Prices returns a snapshot of the latest streamed YES prices.
func (s *Stream) Prices() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]float64, len(s.prices))
	for id, price := range s.prices {
		out[id] = price
	}
	return out
}

func (s *Stream) run(ctx context.Context) {
	defer s.wg.Done()

	delay := s.initialDelay

	for {
		if ctx.Err() != nil {
			s.logger.Info("price-stream-stopping")
			return
		}

		connected, err := s.readLoop(ctx)
		if connected {
			// A healthy connection resets backoff; only consecutive
			// dial failures escalate the delay.
			delay = s.initialDelay
		}
		if err != nil && ctx.Err() == nil {
			s.logger.Warn("price-stream-disconnected",
				zap.Error(err),
				zap.Duration("reconnect-delay", delay))
		}

		select {
		case <-ctx.Done():
			s.logger.Info("price-stream-stopping")
			return
		case <-time.After(delay):
		}

		StreamReconnectsTotal.Inc()

		delay = time.Duration(float64(delay) * s.backoffMult)
		if delay > s.maxDelay {
			delay = s.maxDelay
		}
	}
}

// readLoop dials the feed and consumes messages until the connection drops
// or the context is cancelled. It reports whether a connection was
// established so run can reset the reconnect backoff.
func (s *Stream) readLoop(ctx context.Context) (bool, error) {
	dialCtx, cancel := context.WithTimeout(ctx, s.dialTimeout)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, s.url, nil)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	s.logger.Info("price-stream-connected")

	// Close the connection when the context is cancelled so ReadMessage
	// unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return true, err
		}

		var update priceUpdate
		err = json.Unmarshal(message, &update)
		if err != nil {
			s.logger.Debug("price-stream-bad-message", zap.Error(err))
			continue
		}
		if update.MarketID == "" {
			continue
		}

		s.mu.Lock()
		s.prices[update.MarketID] = update.YesPrice
		s.mu.Unlock()

		StreamUpdatesTotal.Inc()
	}
}
