package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade records one executed match. Trades are immutable once recorded:
// the ledger never updates or removes them.
type Trade struct {
	ID         string
	Price      decimal.Decimal
	Quantity   decimal.Decimal
	Instrument string
	Timestamp  time.Time
	TakerSide  Side
}
