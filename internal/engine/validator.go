package engine

import "github.com/kynetiq/orderbook/internal/domain"

// Validator gates admission of orders into the book. It is pure: no state
// beyond the supported instrument, no side effects.
type Validator struct {
	instrument string
}

// NewValidator creates a Validator for the given instrument.
func NewValidator(instrument string) *Validator {
	return &Validator{instrument: instrument}
}

// IsValid reports whether the order may enter the book: quantity and price
// must be strictly positive and the instrument must be the supported one.
func (v *Validator) IsValid(o domain.Order) bool {
	return o.Quantity.IsPositive() && o.Price.IsPositive() && o.Instrument == v.instrument
}
