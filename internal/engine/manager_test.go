package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kynetiq/orderbook/internal/domain"
)

func TestManager_InsertTouchesBook(t *testing.T) {
	book := NewBook()
	m := NewManager(book)

	m.Insert(newOrder(domain.SideBuy, "1", "9000", 0))

	if book.Sequence() != 1 {
		t.Errorf("expected sequence 1 after insert, got %d", book.Sequence())
	}
	if _, ok := book.BestBid(); !ok {
		t.Error("expected the order to rest on the bid side")
	}
}

func TestManager_BuildOutcome(t *testing.T) {
	m := NewManager(NewBook())
	submitted := newOrder(domain.SideBuy, "2.0", "10000", 0)

	t.Run("fully filled", func(t *testing.T) {
		out := m.BuildOutcome(submitted, MatchOutcome{
			Matched:         true,
			MatchedQuantity: dec("2.0"),
			SettledPrice:    dec("9950"),
		})
		if !out.Success {
			t.Error("expected success")
		}
		if out.Message != MsgFullyFilled {
			t.Errorf("expected %q, got %q", MsgFullyFilled, out.Message)
		}
		if out.PartiallyFilled {
			t.Error("full fill must not be flagged partial")
		}
		if !out.RemainingQuantity.IsZero() {
			t.Errorf("expected remaining 0, got %s", out.RemainingQuantity)
		}
		if !out.Order.Quantity.Equal(dec("2.0")) {
			t.Errorf("expected echoed quantity 2.0, got %s", out.Order.Quantity)
		}
		if !out.Order.Price.Equal(dec("9950")) {
			t.Errorf("expected settled price 9950, got %s", out.Order.Price)
		}
	})

	t.Run("partially filled", func(t *testing.T) {
		out := m.BuildOutcome(submitted, MatchOutcome{
			Matched:         true,
			MatchedQuantity: dec("0.5"),
			SettledPrice:    dec("10000"),
		})
		if out.Message != MsgPartiallyFilled {
			t.Errorf("expected %q, got %q", MsgPartiallyFilled, out.Message)
		}
		if !out.PartiallyFilled {
			t.Error("expected partial flag")
		}
		if !out.RemainingQuantity.Equal(dec("1.5")) {
			t.Errorf("expected remaining 1.5, got %s", out.RemainingQuantity)
		}
		if !out.Order.Quantity.Equal(dec("0.5")) {
			t.Errorf("expected echoed quantity to be the matched 0.5, got %s", out.Order.Quantity)
		}
	})

	t.Run("no match", func(t *testing.T) {
		out := m.BuildOutcome(submitted, MatchOutcome{
			MatchedQuantity: decimal.Zero,
			SettledPrice:    decimal.Zero,
		})
		if out.Message != MsgPending {
			t.Errorf("expected %q, got %q", MsgPending, out.Message)
		}
		if out.Matched || out.PartiallyFilled {
			t.Error("expected no match flags")
		}
		if !out.RemainingQuantity.Equal(submitted.Quantity) {
			t.Errorf("expected remaining %s, got %s", submitted.Quantity, out.RemainingQuantity)
		}
		if !out.Order.Price.Equal(submitted.Price) {
			t.Errorf("expected the submitted limit price, got %s", out.Order.Price)
		}
	})
}

func TestManager_SnapshotAggregatesLevels(t *testing.T) {
	book := NewBook()
	m := NewManager(book)

	// Three bids at one price, one at another, one ask.
	m.Insert(newOrder(domain.SideBuy, "1.0", "9000", 0))
	m.Insert(newOrder(domain.SideBuy, "2.0", "9000", time.Second))
	m.Insert(newOrder(domain.SideBuy, "0.5", "9000", 2*time.Second))
	m.Insert(newOrder(domain.SideBuy, "1.0", "8900", 3*time.Second))
	m.Insert(newOrder(domain.SideSell, "4.0", "9100", 4*time.Second))

	snap := m.Snapshot()

	if len(snap.Bids) != 2 {
		t.Fatalf("expected 2 bid levels, got %d", len(snap.Bids))
	}
	top := snap.Bids[0]
	if !top.Price.Equal(dec("9000")) {
		t.Errorf("expected best bid level first, got %s", top.Price)
	}
	if !top.Quantity.Equal(dec("3.5")) {
		t.Errorf("expected aggregated quantity 3.5, got %s", top.Quantity)
	}
	if top.OrderCount != 3 {
		t.Errorf("expected order count 3, got %d", top.OrderCount)
	}
	if top.Side != domain.SideBuy || top.Instrument != testInstrument {
		t.Errorf("unexpected level metadata: %+v", top)
	}

	if len(snap.Asks) != 1 {
		t.Fatalf("expected 1 ask level, got %d", len(snap.Asks))
	}
	if snap.Asks[0].OrderCount != 1 || !snap.Asks[0].Quantity.Equal(dec("4.0")) {
		t.Errorf("unexpected ask level: %+v", snap.Asks[0])
	}

	if snap.Sequence != 5 {
		t.Errorf("expected sequence 5 after five inserts, got %d", snap.Sequence)
	}
}

func TestManager_SnapshotEmptyBook(t *testing.T) {
	m := NewManager(NewBook())
	snap := m.Snapshot()
	if len(snap.Asks) != 0 || len(snap.Bids) != 0 {
		t.Errorf("expected empty sides, got %d asks / %d bids", len(snap.Asks), len(snap.Bids))
	}
}
