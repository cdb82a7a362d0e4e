package engine

import (
	"fmt"
	"time"

	"github.com/google/btree"
	"github.com/shopspring/decimal"

	"github.com/kynetiq/orderbook/internal/domain"
)

// Level is a single price level: a FIFO queue of resting orders keyed by
// submission timestamp. Inserting at an already-occupied timestamp replaces
// the resting order in that slot; the timestamp is the only ordering key.
type Level struct {
	price  decimal.Decimal
	orders *btree.BTreeG[domain.Order]
}

// orderLess orders entries within a level by submission time, earliest first.
func orderLess(a, b domain.Order) bool {
	return a.Timestamp.Before(b.Timestamp)
}

func newLevel(price decimal.Decimal) *Level {
	const degree = 8
	return &Level{
		price:  price,
		orders: btree.NewG(degree, orderLess),
	}
}

// Price returns the level's price.
func (l *Level) Price() decimal.Decimal {
	return l.price
}

// Front returns the FIFO-earliest order at this level. A level only exists
// while it holds at least one order, so an empty level here is a broken
// book invariant, not a recoverable condition.
func (l *Level) Front() domain.Order {
	o, ok := l.orders.Min()
	if !ok {
		panic(fmt.Sprintf("order book: empty price level %s present in book", l.price))
	}
	return o
}

// Size returns the number of resting orders at the level.
func (l *Level) Size() int {
	return l.orders.Len()
}

func (l *Level) put(o domain.Order) {
	l.orders.ReplaceOrInsert(o)
}

func (l *Level) remove(ts time.Time) bool {
	_, ok := l.orders.Delete(domain.Order{Timestamp: ts})
	return ok
}

func (l *Level) get(ts time.Time) (domain.Order, bool) {
	return l.orders.Get(domain.Order{Timestamp: ts})
}

// bidLess orders bid levels by price descending, so Min() is the best bid.
func bidLess(a, b *Level) bool {
	return a.price.GreaterThan(b.price)
}

// askLess orders ask levels by price ascending, so Min() is the best ask.
func askLess(a, b *Level) bool {
	return a.price.LessThan(b.price)
}

// Book holds the resting orders for one instrument: bid levels ordered best
// (highest) first and ask levels ordered best (lowest) first, plus the
// mutation metadata exposed in snapshots. All level mutations go through
// the Book's methods; nothing else touches the trees.
type Book struct {
	bids        *btree.BTreeG[*Level]
	asks        *btree.BTreeG[*Level]
	lastUpdated time.Time
	sequence    int64
}

// NewBook creates an empty order book.
func NewBook() *Book {
	const degree = 16
	return &Book{
		bids:        btree.NewG(degree, bidLess),
		asks:        btree.NewG(degree, askLess),
		lastUpdated: time.Now(),
	}
}

func (b *Book) side(s domain.Side) *btree.BTreeG[*Level] {
	if s == domain.SideBuy {
		return b.bids
	}
	return b.asks
}

// BestBid returns the highest-priced bid level, if any.
func (b *Book) BestBid() (*Level, bool) {
	return b.bids.Min()
}

// BestAsk returns the lowest-priced ask level, if any.
func (b *Book) BestAsk() (*Level, bool) {
	return b.asks.Min()
}

// Insert rests an order on its side of the book, keyed by price then by
// submission timestamp within the level.
func (b *Book) Insert(o domain.Order) {
	tree := b.side(o.Side)
	lvl, ok := tree.Get(&Level{price: o.Price})
	if !ok {
		lvl = newLevel(o.Price)
		tree.ReplaceOrInsert(lvl)
	}
	lvl.put(o)
}

// ReplaceQuantity writes back a resting order with a reduced quantity,
// preserving its timestamp slot. The order must exist.
func (b *Book) ReplaceQuantity(side domain.Side, price decimal.Decimal, ts time.Time, quantity decimal.Decimal) {
	lvl, ok := b.side(side).Get(&Level{price: price})
	if !ok {
		panic(fmt.Sprintf("order book: no %s level at %s", side, price))
	}
	o, ok := lvl.get(ts)
	if !ok {
		panic(fmt.Sprintf("order book: no %s order at %s / %s", side, price, ts))
	}
	o.Quantity = quantity
	lvl.put(o)
}

// RemoveOrder deletes a fully matched order by price and timestamp,
// dropping the level as soon as it empties. Levels never linger empty.
func (b *Book) RemoveOrder(side domain.Side, price decimal.Decimal, ts time.Time) {
	tree := b.side(side)
	lvl, ok := tree.Get(&Level{price: price})
	if !ok {
		panic(fmt.Sprintf("order book: no %s level at %s", side, price))
	}
	if !lvl.remove(ts) {
		panic(fmt.Sprintf("order book: no %s order at %s / %s", side, price, ts))
	}
	if lvl.Size() == 0 {
		tree.Delete(lvl)
	}
}

// Touch records a book mutation: bumps lastUpdated and the sequence number.
// The sequence counts every mutation, not only trades.
func (b *Book) Touch() {
	b.lastUpdated = time.Now()
	b.sequence++
}

// LastUpdated returns the time of the most recent mutation.
func (b *Book) LastUpdated() time.Time {
	return b.lastUpdated
}

// Sequence returns the mutation sequence number.
func (b *Book) Sequence() int64 {
	return b.sequence
}

// eachLevel visits levels on one side in priority order (best first).
func (b *Book) eachLevel(side domain.Side, fn func(*Level) bool) {
	b.side(side).Ascend(fn)
}

// Depth returns the number of individual resting orders on one side.
func (b *Book) Depth(side domain.Side) int {
	n := 0
	b.side(side).Ascend(func(lvl *Level) bool {
		n += lvl.Size()
		return true
	})
	return n
}
