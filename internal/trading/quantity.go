package trading

import (
	"github.com/ericlagergren/decimal"
	"github.com/pkg/errors"
)

// maxQuantityScale limits explicit trade quantities to 4 fractional decimal digits
const maxQuantityScale = 4

var (
	// ErrQuantityNegative explicit quantity is below zero
	ErrQuantityNegative = errors.New("trading: quantity must not be negative")

	// ErrQuantityPrecision explicit quantity carries more than 4 fractional digits
	ErrQuantityPrecision = errors.New("trading: quantity must have at most 4 fractional digits")

	// ErrQuantityMalformed explicit quantity is not a valid number
	ErrQuantityMalformed = errors.New("trading: quantity is not a number")
)

// Quantity is a resolved-at-the-boundary variant of trade size: either an explicit validated
// amount or a request to use the whole available balance. Exactly one of the two forms exists,
// request validation guarantees mutual exclusion before the executor is entered.
type Quantity struct {
	explicit *decimal.Big
	all      bool
}

// ExplicitQuantity parses and validates literal quantity value
func ExplicitQuantity(raw string) (Quantity, error) {
	q, ok := new(decimal.Big).SetString(raw)
	if !ok || q.IsNaN(0) || q.IsInf(0) {
		return Quantity{}, ErrQuantityMalformed
	}
	if q.Sign() < 0 {
		return Quantity{}, ErrQuantityNegative
	}
	if q.Scale() > maxQuantityScale {
		return Quantity{}, ErrQuantityPrecision
	}
	return Quantity{explicit: q}, nil
}

// UseAllBalance marks quantity to be resolved from the whole balance: the full cash balance for
// a buy, the full asset holding for a sell.
func UseAllBalance() Quantity {
	return Quantity{all: true}
}

// floorToScale rounds value down (toward zero) to maxQuantityScale fractional digits, so an
// all-in buy never resolves into an unaffordable quantity.
func floorToScale(v *decimal.Big) *decimal.Big {
	out := new(decimal.Big).Copy(v)
	out.Context.RoundingMode = decimal.ToZero
	return out.Quantize(maxQuantityScale)
}
