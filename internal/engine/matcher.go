package engine

import (
	"github.com/shopspring/decimal"

	"github.com/kynetiq/orderbook/internal/domain"
	"github.com/kynetiq/orderbook/internal/store"
)

// MatchOutcome summarizes one matching run: whether anything crossed, the
// total quantity consumed, and the price the run last settled at.
type MatchOutcome struct {
	Matched         bool
	MatchedQuantity decimal.Decimal
	SettledPrice    decimal.Decimal
}

// Matcher crosses the book's best bid and ask under price-time priority,
// recording a trade per match.
type Matcher struct {
	ledger *store.TradeLedger
}

// NewMatcher creates a Matcher that records trades to the given ledger.
func NewMatcher(ledger *store.TradeLedger) *Matcher {
	return &Matcher{ledger: ledger}
}

// Run drains all crossable quantity from the book. It loops while both
// sides are populated and the best bid is at or above the best ask; each
// iteration matches the FIFO-earliest orders of the two best levels for
// min(bidQty, askQty), records one trade, reduces both orders, and removes
// whichever reached zero. A single run can sweep several price levels.
//
// The run always terminates: every iteration strictly consumes quantity
// from at least one resting order.
func (m *Matcher) Run(book *Book) MatchOutcome {
	outcome := MatchOutcome{
		MatchedQuantity: decimal.Zero,
		SettledPrice:    decimal.Zero,
	}

	for {
		bestBid, ok := book.BestBid()
		if !ok {
			break
		}
		bestAsk, ok := book.BestAsk()
		if !ok {
			break
		}
		// A spread means no overlap, so no match is possible.
		if bestBid.Price().LessThan(bestAsk.Price()) {
			break
		}

		bidOrder := bestBid.Front()
		askOrder := bestAsk.Front()

		matchQuantity := decimal.Min(bidOrder.Quantity, askOrder.Quantity)
		// Settle at the better of the two prices; with the cross
		// established this is the ask price, so price improvement
		// goes to the bid side.
		price := decimal.Min(bestBid.Price(), bestAsk.Price())
		taker := takerSide(bidOrder, askOrder)

		m.ledger.Record(price, matchQuantity, bidOrder.Instrument, taker)

		m.settle(book, bidOrder, matchQuantity)
		m.settle(book, askOrder, matchQuantity)
		book.Touch()

		outcome.Matched = true
		outcome.MatchedQuantity = outcome.MatchedQuantity.Add(matchQuantity)
		outcome.SettledPrice = price
	}

	return outcome
}

// takerSide infers which side initiated the match from the submission
// times of the two orders being crossed: the later one is the taker. When
// the bid arrived first the sell side took, otherwise the buy side did
// (equal timestamps resolve to BUY).
func takerSide(bidOrder, askOrder domain.Order) domain.Side {
	if bidOrder.Timestamp.Before(askOrder.Timestamp) {
		return domain.SideSell
	}
	return domain.SideBuy
}

// settle reduces a matched order's quantity in place, removing it (and its
// level, once empty) when it is fully consumed.
func (m *Matcher) settle(book *Book, o domain.Order, matched decimal.Decimal) {
	remaining := o.Quantity.Sub(matched)
	if remaining.Sign() <= 0 {
		book.RemoveOrder(o.Side, o.Price, o.Timestamp)
		return
	}
	book.ReplaceQuantity(o.Side, o.Price, o.Timestamp, remaining)
}
