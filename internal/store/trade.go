package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kynetiq/orderbook/internal/domain"
	"github.com/kynetiq/orderbook/internal/metrics"
	"github.com/kynetiq/orderbook/internal/stream"
)

// TradeLedger is an append-only, thread-safe in-memory store of executed
// trades. Trades are immutable once recorded and kept in insertion order
// for the process lifetime.
type TradeLedger struct {
	mu     sync.RWMutex
	trades []domain.Trade
	feed   *stream.Hub[domain.Trade]
}

// NewTradeLedger creates an empty ledger. A non-nil feed receives every
// recorded trade.
func NewTradeLedger(feed *stream.Hub[domain.Trade]) *TradeLedger {
	return &TradeLedger{
		trades: make([]domain.Trade, 0),
		feed:   feed,
	}
}

// Record generates a trade id and timestamp, appends the trade, and
// publishes it to the feed. Returns the recorded trade.
func (l *TradeLedger) Record(price, quantity decimal.Decimal, instrument string, takerSide domain.Side) domain.Trade {
	t := domain.Trade{
		ID:         uuid.New().String(),
		Price:      price,
		Quantity:   quantity,
		Instrument: instrument,
		Timestamp:  time.Now(),
		TakerSide:  takerSide,
	}

	l.mu.Lock()
	l.trades = append(l.trades, t)
	l.mu.Unlock()

	metrics.TradesExecutedTotal.WithLabelValues(instrument).Inc()
	if l.feed != nil {
		l.feed.Broadcast(t)
	}
	return t
}

// List returns all trades in the order they were recorded. The slice is a
// copy; callers cannot mutate ledger state through it.
func (l *TradeLedger) List() []domain.Trade {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Trade, len(l.trades))
	copy(out, l.trades)
	return out
}

// Len returns the number of recorded trades.
func (l *TradeLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.trades)
}
