package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kynetiq/orderbook/internal/domain"
	"github.com/kynetiq/orderbook/internal/stream"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsBuffer       = 64
)

// StreamHandler pushes executed trades to websocket clients as they happen.
type StreamHandler struct {
	feed     *stream.Hub[domain.Trade]
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewStreamHandler creates a StreamHandler fed by the given hub.
func NewStreamHandler(feed *stream.Hub[domain.Trade], logger *slog.Logger) *StreamHandler {
	return &StreamHandler{
		feed:   feed,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Trades handles GET /api/ws/trades: upgrades the connection and writes
// each executed trade as a JSON message until the client disconnects.
func (h *StreamHandler) Trades(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	sub := h.feed.Subscribe(wsBuffer)
	defer h.feed.Unsubscribe(sub)
	defer conn.Close()

	// Drain inbound frames so close/ping handling works; clients don't
	// send application data on this endpoint.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case trade, ok := <-sub.C():
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(buildTradeResponse(trade)); err != nil {
				return
			}
		}
	}
}
