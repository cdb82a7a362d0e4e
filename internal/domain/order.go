package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side indicates whether an order buys or sells the base asset.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// ParseSide converts a wire-format side string into a Side.
func ParseSide(s string) (Side, bool) {
	switch Side(s) {
	case SideBuy, SideSell:
		return Side(s), true
	}
	return "", false
}

// Order is a limit order submitted for matching. Price, instrument, and
// timestamp never change after construction; quantity is reduced as the
// order fills. The timestamp is the order's FIFO key within its price
// level, so two orders at the same price always match oldest first.
type Order struct {
	Side       Side
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	Instrument string
	Timestamp  time.Time
}

// NewOrder builds an order stamped with the submission time.
func NewOrder(side Side, quantity, price decimal.Decimal, instrument string) Order {
	return Order{
		Side:       side,
		Quantity:   quantity,
		Price:      price,
		Instrument: instrument,
		Timestamp:  time.Now(),
	}
}
