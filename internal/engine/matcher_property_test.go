package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"

	"github.com/kynetiq/orderbook/internal/domain"
)

// genSide draws BUY or SELL.
func genSide(t *rapid.T) domain.Side {
	if rapid.Bool().Draw(t, "isBuy") {
		return domain.SideBuy
	}
	return domain.SideSell
}

// genOrder draws a valid order with a unique timestamp. Prices and
// quantities use two decimal places over small ranges to force frequent
// crosses and partial fills.
func genOrder(t *rapid.T, seq int) domain.Order {
	price := decimal.New(rapid.Int64Range(100, 120).Draw(t, "price"), -1)
	quantity := decimal.New(rapid.Int64Range(1, 500).Draw(t, "quantity"), -2)
	return domain.Order{
		Side:       genSide(t),
		Quantity:   quantity,
		Price:      price,
		Instrument: testInstrument,
		Timestamp:  baseTime.Add(time.Duration(seq) * time.Millisecond),
	}
}

func TestProperty_NoResidualCross(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := newTestEngine()
		n := rapid.IntRange(1, 60).Draw(t, "numOrders")

		for i := 0; i < n; i++ {
			e.submit(genOrder(t, i))

			bid, okBid := e.book.BestBid()
			ask, okAsk := e.book.BestAsk()
			if okBid && okAsk && bid.Price().GreaterThanOrEqual(ask.Price()) {
				t.Fatalf("residual cross after order %d: bid %s >= ask %s", i, bid.Price(), ask.Price())
			}
		}
	})
}

func TestProperty_QuantityConservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := newTestEngine()
		n := rapid.IntRange(1, 60).Draw(t, "numOrders")

		submitted := decimal.Zero
		for i := 0; i < n; i++ {
			o := genOrder(t, i)
			submitted = submitted.Add(o.Quantity)
			e.submit(o)
		}

		// Every submitted unit is either resting on the book or was
		// consumed by a trade; each trade consumes the same quantity
		// from both sides.
		resting := decimal.Zero
		for _, side := range []domain.Side{domain.SideBuy, domain.SideSell} {
			e.book.eachLevel(side, func(lvl *Level) bool {
				lvl.orders.Ascend(func(o domain.Order) bool {
					if !o.Quantity.IsPositive() {
						t.Fatalf("non-positive resting quantity %s", o.Quantity)
					}
					resting = resting.Add(o.Quantity)
					return true
				})
				return true
			})
		}

		traded := decimal.Zero
		for _, tr := range e.ledger.List() {
			if !tr.Quantity.IsPositive() {
				t.Fatalf("non-positive trade quantity %s", tr.Quantity)
			}
			traded = traded.Add(tr.Quantity)
		}

		if !resting.Add(traded.Mul(decimal.New(2, 0))).Equal(submitted) {
			t.Fatalf("quantity leak: resting %s + 2×traded %s != submitted %s", resting, traded, submitted)
		}
	})
}

func TestProperty_PricePriorityOrdering(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := newTestEngine()
		n := rapid.IntRange(1, 60).Draw(t, "numOrders")
		for i := 0; i < n; i++ {
			e.submit(genOrder(t, i))
		}

		var prev *decimal.Decimal
		e.book.eachLevel(domain.SideBuy, func(lvl *Level) bool {
			p := lvl.Price()
			if prev != nil && p.GreaterThanOrEqual(*prev) {
				t.Fatalf("bid levels not strictly descending: %s after %s", p, prev)
			}
			prev = &p
			return true
		})

		prev = nil
		e.book.eachLevel(domain.SideSell, func(lvl *Level) bool {
			p := lvl.Price()
			if prev != nil && p.LessThanOrEqual(*prev) {
				t.Fatalf("ask levels not strictly ascending: %s after %s", p, prev)
			}
			prev = &p
			return true
		})
	})
}
