package service

import (
	"sync"
	"time"

	"github.com/kynetiq/orderbook/internal/domain"
	"github.com/kynetiq/orderbook/internal/engine"
	"github.com/kynetiq/orderbook/internal/metrics"
	"github.com/kynetiq/orderbook/internal/store"
)

// OrderBookService is the single entry point for order submission and book
// reads. A write lock serializes the full validate → insert → match →
// outcome sequence, so no other insertion or reader can observe the book
// mid-match; snapshots and trade listings share a read lock.
type OrderBookService struct {
	mu         sync.RWMutex
	instrument string
	book       *engine.Book
	validator  *engine.Validator
	manager    *engine.Manager
	matcher    *engine.Matcher
	ledger     *store.TradeLedger
}

// NewOrderBookService wires the engine components around one book.
func NewOrderBookService(
	instrument string,
	book *engine.Book,
	validator *engine.Validator,
	manager *engine.Manager,
	matcher *engine.Matcher,
	ledger *store.TradeLedger,
) *OrderBookService {
	return &OrderBookService{
		instrument: instrument,
		book:       book,
		validator:  validator,
		manager:    manager,
		matcher:    matcher,
		ledger:     ledger,
	}
}

// AddOrder validates and places an order, runs the matching engine to
// exhaustion, and reports the result. Invalid orders are rejected without
// touching the book.
func (s *OrderBookService) AddOrder(order domain.Order) engine.AdditionOutcome {
	start := time.Now()

	if !s.validator.IsValid(order) {
		metrics.OrdersRejectedTotal.WithLabelValues(s.instrument).Inc()
		return engine.Rejection()
	}

	s.mu.Lock()
	s.manager.Insert(order)
	res := s.matcher.Run(s.book)
	outcome := s.manager.BuildOutcome(order, res)
	s.observeBook()
	s.mu.Unlock()

	metrics.OrdersReceivedTotal.WithLabelValues(s.instrument, string(order.Side)).Inc()
	metrics.OrderLatencySeconds.WithLabelValues(s.instrument).Observe(time.Since(start).Seconds())
	return outcome
}

// Snapshot returns the aggregated book view without mutating anything.
func (s *OrderBookService) Snapshot() engine.BookSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.manager.Snapshot()
}

// Trades returns all recorded trades in chronological order.
func (s *OrderBookService) Trades() []domain.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.List()
}

// observeBook refreshes the depth and best-price gauges. Called with the
// write lock held.
func (s *OrderBookService) observeBook() {
	metrics.BookDepth.WithLabelValues(s.instrument, string(domain.SideBuy)).Set(float64(s.book.Depth(domain.SideBuy)))
	metrics.BookDepth.WithLabelValues(s.instrument, string(domain.SideSell)).Set(float64(s.book.Depth(domain.SideSell)))

	bestBid, bestAsk := 0.0, 0.0
	if lvl, ok := s.book.BestBid(); ok {
		bestBid = lvl.Price().InexactFloat64()
	}
	if lvl, ok := s.book.BestAsk(); ok {
		bestAsk = lvl.Price().InexactFloat64()
	}
	metrics.BestBidPrice.WithLabelValues(s.instrument).Set(bestBid)
	metrics.BestAskPrice.WithLabelValues(s.instrument).Set(bestAsk)
}
