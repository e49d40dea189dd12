package convert

import (
	"context"

	"github.com/ericlagergren/decimal"
	"github.com/pkg/errors"
)

var (
	// ErrCryptoCurrencyName when coin name is unknown to the rate source
	ErrCryptoCurrencyName = errors.New("convert: crypto-currency name is invalid")

	// ErrFiatCurrencyName when fiat currency name is unknown to the rate source
	ErrFiatCurrencyName = errors.New("convert: fiat-currency name is invalid")

	// ErrUnavailable rate source not available (network error, timeout or bad response code),
	// usually wrapped with details
	ErrUnavailable = errors.New("convert: unavailable")
)

// Rate used to perform conversion
type Rate decimal.Big

// Convert calculate result amount
func (r *Rate) Convert(amount *decimal.Big) *decimal.Big {
	return new(decimal.Big).Mul(amount, (*decimal.Big)(r))
}

// ReverseConvert performs reverse conversion
func (r *Rate) ReverseConvert(amount *decimal.Big) *decimal.Big {
	return new(decimal.Big).Quo(amount, (*decimal.Big)(r))
}

// ICryptoCurrency uses external real-time service to look up fiat value of a single coin.
// Rates are never cached, each call hits the source.
//
// All methods, which accept context, also supports deadlines and cancel channels
type ICryptoCurrency interface {
	// GetRate returns rate which should be used to convert from coin specified by name to fiat
	// currency specified by name. If coin name is unknown, returns ErrCryptoCurrencyName, if
	// currency name is unknown, returns ErrFiatCurrencyName, if the source cannot be reached,
	// returns error caused by ErrUnavailable. Both names are case insensitive.
	GetRate(ctx context.Context, coinName string, dstCurrencyName string) (rate *Rate, err error)
}
