package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kynetiq/orderbook/internal/domain"
)

// Outcome messages returned to order submitters.
const (
	MsgFullyFilled     = "Order fully filled."
	MsgPartiallyFilled = "Order partially filled."
	MsgPending         = "Order added to book, no immediate match found, pending fulfillment."
	MsgRejected        = "Invalid order details. Please ensure quantity and price are > 0 and that you've submitted a supported instrument."
)

// OrderDetails echoes the settled details of a submitted order.
type OrderDetails struct {
	Side       domain.Side
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	Instrument string
}

// AdditionOutcome is the per-request report returned to the caller of
// AddOrder. Order is nil when the order was rejected.
type AdditionOutcome struct {
	Success           bool
	Message           string
	Matched           bool
	PartiallyFilled   bool
	RemainingQuantity decimal.Decimal
	Order             *OrderDetails
}

// Rejection builds the outcome for an order that failed validation.
func Rejection() AdditionOutcome {
	return AdditionOutcome{
		Success:           false,
		Message:           MsgRejected,
		RemainingQuantity: decimal.Zero,
	}
}

// LevelSummary is one aggregated price level in a book snapshot.
type LevelSummary struct {
	Side       domain.Side
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	Instrument string
	OrderCount int
}

// BookSnapshot is a read-only aggregated view of the book.
type BookSnapshot struct {
	Asks        []LevelSummary
	Bids        []LevelSummary
	LastUpdated time.Time
	Sequence    int64
}

// Manager owns order placement into the book and derives the caller-facing
// reports from it.
type Manager struct {
	book *Book
}

// NewManager creates a Manager for the given book.
func NewManager(book *Book) *Manager {
	return &Manager{book: book}
}

// Insert rests a validated order on the book and touches the book metadata.
func (m *Manager) Insert(o domain.Order) {
	m.book.Insert(o)
	m.book.Touch()
}

// BuildOutcome derives the per-request report from the originally submitted
// order and the matching run triggered by its insertion. The book is never
// crossed between runs, so a run can never match more than the triggering
// order's quantity.
func (m *Manager) BuildOutcome(submitted domain.Order, res MatchOutcome) AdditionOutcome {
	matched := res.MatchedQuantity
	fullyFilled := matched.GreaterThanOrEqual(submitted.Quantity)
	partiallyFilled := matched.IsPositive() && matched.LessThan(submitted.Quantity)

	remaining := submitted.Quantity
	if res.Matched {
		remaining = submitted.Quantity.Sub(matched)
	}

	message := MsgPending
	switch {
	case fullyFilled:
		message = MsgFullyFilled
	case partiallyFilled:
		message = MsgPartiallyFilled
	}

	// Echo the matched quantity for a partial fill, otherwise the
	// submitted quantity; echo the settled price when anything matched,
	// otherwise the submitted limit price.
	detailQuantity := submitted.Quantity
	if partiallyFilled {
		detailQuantity = matched
	}
	detailPrice := submitted.Price
	if res.Matched {
		detailPrice = res.SettledPrice
	}

	return AdditionOutcome{
		Success:           true,
		Message:           message,
		Matched:           res.Matched,
		PartiallyFilled:   partiallyFilled,
		RemainingQuantity: remaining,
		Order: &OrderDetails{
			Side:       submitted.Side,
			Quantity:   detailQuantity,
			Price:      detailPrice,
			Instrument: submitted.Instrument,
		},
	}
}

// Snapshot aggregates each side into per-level summaries, best price first.
// The instrument is taken from any resting order at the level; the book is
// single-instrument so they all agree.
func (m *Manager) Snapshot() BookSnapshot {
	return BookSnapshot{
		Asks:        m.aggregate(domain.SideSell),
		Bids:        m.aggregate(domain.SideBuy),
		LastUpdated: m.book.LastUpdated(),
		Sequence:    m.book.Sequence(),
	}
}

func (m *Manager) aggregate(side domain.Side) []LevelSummary {
	summaries := make([]LevelSummary, 0)
	m.book.eachLevel(side, func(lvl *Level) bool {
		summary := LevelSummary{
			Side:     side,
			Quantity: decimal.Zero,
			Price:    lvl.Price(),
		}
		lvl.orders.Ascend(func(o domain.Order) bool {
			summary.Quantity = summary.Quantity.Add(o.Quantity)
			summary.Instrument = o.Instrument
			summary.OrderCount++
			return true
		})
		summaries = append(summaries, summary)
		return true
	})
	return summaries
}
