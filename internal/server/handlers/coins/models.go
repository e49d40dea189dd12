package coins

import (
	"encoding/json"

	"git.papertrade.io/trading-backend/trading-api/internal/trading"
	"git.papertrade.io/trading-backend/trading-api/pkg/server/handlers/base"
	"github.com/ericlagergren/decimal"
)

// PriceResponse current cash price of a coin
type PriceResponse struct {
	Price *decimal.Big `json:"price"`
}

// TradeRequest used to parse buy/sell body params. Exactly one of Quantity or All must be
// supplied, which cannot be expressed with plain binding tags, so the pair is resolved manually
// by ResolveQuantity.
type TradeRequest struct {
	Quantity *json.Number `json:"quantity"`
	All      *bool        `json:"all"`
}

// TradeResponse describes executed deal
type TradeResponse struct {
	Price    *decimal.Big `json:"price"`
	Quantity *decimal.Big `json:"quantity"`
}

var (
	errQuantityXorAll = base.NewErrorsView("").
				AddField("body", "quantity", "exactly one of quantity or all must be supplied").
				AddField("body", "all", "exactly one of quantity or all must be supplied")
	errAllNotTrue = base.NewFieldErr("body", "all", "only true value permitted")
)

// ResolveQuantity turns raw body params into the tagged quantity variant enforcing mutual
// exclusion of the two forms
func (r *TradeRequest) ResolveQuantity() (qty trading.Quantity, err error) {
	switch {
	case r.Quantity != nil && r.All == nil:
		qty, err = trading.ExplicitQuantity(r.Quantity.String())
		if err != nil {
			err = base.NewFieldErr("body", "quantity", quantityErrMessage(err))
		}
	case r.Quantity == nil && r.All != nil:
		if !*r.All {
			err = errAllNotTrue
			return
		}
		qty = trading.UseAllBalance()
	default:
		err = errQuantityXorAll
	}
	return
}

func quantityErrMessage(err error) string {
	switch err {
	case trading.ErrQuantityNegative:
		return "must not be negative"
	case trading.ErrQuantityPrecision:
		return "must have at most 4 fractional digits"
	default:
		return "must be a number"
	}
}
