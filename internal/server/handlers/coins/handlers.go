package coins

import (
	"context"
	"net/http"

	"git.papertrade.io/trading-backend/trading-api/internal/server/middlewares"
	"git.papertrade.io/trading-backend/trading-api/internal/trading"
	"git.papertrade.io/trading-backend/trading-api/models"
	"git.papertrade.io/trading-backend/trading-api/pkg/server/handlers/base"
	"git.papertrade.io/trading-backend/trading-api/pkg/services/convert"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

var (
	errAuthMiddlewareMissing = base.ErrorView{
		Code:    http.StatusInternalServerError,
		Message: "auth middleware is missing",
	}
	errCoinNotFound = base.ErrorView{Code: http.StatusNotFound, Message: "coin not found"}
	errCoinNotPriced = base.NewFieldErr(
		"path", "coin_name", "coin is not supported by the rate source",
	)
	errRateSourceUnavailable = base.ErrorView{
		Code:    http.StatusBadGateway,
		Message: "rate source unavailable",
	}
	errBalanceNotEnough = base.ErrorView{Code: http.StatusBadRequest, Message: "balance not enough"}
)

// ListFactory creates handler which returns names of tradeable coins
func ListFactory(api *trading.Api) base.HandlerFunc {
	return func(c *gin.Context) (resp interface{}, code int, err error) {
		names, err := api.Coins(c)
		if err != nil {
			return
		}
		resp = names
		return
	}
}

// PriceFactory creates handler which quotes current cash price of coin specified by path param
// 'coin_name', returns 'PriceResponse' on success
func PriceFactory(api *trading.Api) base.HandlerFunc {
	return func(c *gin.Context) (resp interface{}, code int, err error) {
		price, err := api.Quote(c, c.Param("coin_name"))
		if err != nil {
			err = coerceTradeErr(err)
			return
		}
		resp = PriceResponse{Price: price}
		return
	}
}

// BuyFactory creates handler which exchanges cash for coin specified by path param 'coin_name',
// accepting 'TradeRequest' like scheme and returning 'TradeResponse' on success
func BuyFactory(api *trading.Api) base.HandlerFunc {
	return tradeFactory(api.Buy)
}

// SellFactory mirror of BuyFactory which exchanges held coin quantity back into cash
func SellFactory(api *trading.Api) base.HandlerFunc {
	return tradeFactory(api.Sell)
}

// tradeFactory shared buy/sell handler shape, op differs only
func tradeFactory(
	op func(ctx context.Context, user models.User, coinName string, qty trading.Quantity) (trading.Deal, error),
) base.HandlerFunc {
	return func(c *gin.Context) (resp interface{}, code int, err error) {
		params := TradeRequest{}
		if _, err = base.ShouldBindJSON(c, &params); err != nil {
			return
		}
		qty, err := params.ResolveQuantity()
		if err != nil {
			return
		}

		user, presented := middlewares.GetUserFromContext(c)
		if !presented {
			err = errAuthMiddlewareMissing
			return
		}

		deal, err := op(c, user, c.Param("coin_name"), qty)
		if err != nil {
			err = coerceTradeErr(err)
			return
		}

		resp = TradeResponse{Price: deal.Price, Quantity: deal.Quantity}
		return
	}
}

// coerceTradeErr maps api errors onto renderable views
func coerceTradeErr(err error) error {
	switch errors.Cause(err) {
	case models.ErrNoSuchCoin:
		return errCoinNotFound
	case convert.ErrCryptoCurrencyName, convert.ErrFiatCurrencyName:
		return errCoinNotPriced
	case convert.ErrUnavailable:
		return errRateSourceUnavailable
	case trading.ErrInsufficientBalance:
		return errBalanceNotEnough
	}
	return err
}
