package trading

import (
	"context"
	"time"

	"git.papertrade.io/trading-backend/trading-api/db"
	"git.papertrade.io/trading-backend/trading-api/models"
	"git.papertrade.io/trading-backend/trading-api/pkg/services/convert"
	"git.papertrade.io/trading-backend/trading-api/pkg/trace"
	"github.com/ericlagergren/decimal"
	ot "github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrInsufficientBalance trade rejected because the debited balance cannot cover it
var ErrInsufficientBalance = errors.New("trading: balance not enough")

// Deal describes an executed trade
type Deal struct {
	Price    *decimal.Big
	Quantity *decimal.Big
}

// Api executes buy/sell operations against user balances priced by the external rate source.
//
// Both balance rows affected by a trade are locked inside a single transaction (stable lock
// order, see models.GetBalancesForUpdate), so concurrent trades of one user serialize on the
// solvency check and the paired writes land atomically.
type Api struct {
	database     *db.Db
	converter    convert.ICryptoCurrency
	quoteTimeout time.Duration
	logger       logrus.FieldLogger
}

// NewApi create new api instance
func NewApi(d *db.Db, converter convert.ICryptoCurrency, quoteTimeout time.Duration, logger logrus.FieldLogger) *Api {
	return &Api{
		database:     d,
		converter:    converter,
		quoteTimeout: quoteTimeout,
		logger:       logger.WithField("module", "trading.api"),
	}
}

// Quote returns current cash price of an enabled coin, re-queried from the source on every call
func (api *Api) Quote(ctx context.Context, coinName string) (price *decimal.Big, err error) {
	coin, err := models.GetCoin(api.database, coinName)
	if err != nil {
		return
	}
	rate, err := api.getRate(ctx, coin.Name)
	if err != nil {
		return
	}
	return (*decimal.Big)(rate), nil
}

// Buy exchanges cash for given coin at the current rate. All-in quantity resolves as the whole
// cash balance divided by price, rounded down to 4 fractional digits, so residual cash dust
// smaller than price*0.0001 may remain. Fails with models.ErrNoSuchCoin, convert errors or
// ErrInsufficientBalance.
func (api *Api) Buy(ctx context.Context, user models.User, coinName string, qty Quantity) (deal Deal, err error) {
	span, ctx := ot.StartSpanFromContext(ctx, "trading_buy")
	defer span.Finish()
	span.LogKV("user_id", user.ID, "coin", coinName)

	coin, err := models.GetCoin(api.database, coinName)
	if err != nil {
		return
	}
	rate, err := api.getRate(ctx, coin.Name)
	if err != nil {
		return
	}
	price := (*decimal.Big)(rate)

	err = api.database.TxCtx(ctx, func(ctx context.Context, tx db.ITx) error {
		balances, err := models.GetBalancesForUpdate(tx, user.ID, models.CashAssetName, coin.Name)
		if err != nil {
			return err
		}
		cash, asset := balances[models.CashAssetName], balances[coin.Name]

		q := qty.explicit
		if qty.all {
			q = floorToScale(rate.ReverseConvert(cash.Amount))
		}
		amount := rate.Convert(q)

		if cash.Amount.Cmp(amount) < 0 {
			return ErrInsufficientBalance
		}

		if err := models.UpdateBalanceAmount(tx, cash.ID, new(decimal.Big).Sub(cash.Amount, amount)); err != nil {
			return err
		}
		if err := models.UpdateBalanceAmount(tx, asset.ID, new(decimal.Big).Add(asset.Amount, q)); err != nil {
			return err
		}

		deal = Deal{Price: price, Quantity: q}
		return nil
	})
	if err != nil {
		trace.LogError(span, err)
		return
	}

	api.logger.WithFields(logrus.Fields{
		"user_id": user.ID, "coin": coin.Name, "quantity": deal.Quantity, "price": deal.Price,
	}).Info("buy executed")
	return
}

// Sell is the mirror of Buy: exchanges held coin quantity back into cash. All-in resolves as the
// entire holding. Fails with models.ErrNoSuchCoin, convert errors or ErrInsufficientBalance when
// the holding cannot cover requested quantity.
func (api *Api) Sell(ctx context.Context, user models.User, coinName string, qty Quantity) (deal Deal, err error) {
	span, ctx := ot.StartSpanFromContext(ctx, "trading_sell")
	defer span.Finish()
	span.LogKV("user_id", user.ID, "coin", coinName)

	coin, err := models.GetCoin(api.database, coinName)
	if err != nil {
		return
	}
	rate, err := api.getRate(ctx, coin.Name)
	if err != nil {
		return
	}
	price := (*decimal.Big)(rate)

	err = api.database.TxCtx(ctx, func(ctx context.Context, tx db.ITx) error {
		balances, err := models.GetBalancesForUpdate(tx, user.ID, models.CashAssetName, coin.Name)
		if err != nil {
			return err
		}
		cash, asset := balances[models.CashAssetName], balances[coin.Name]

		q := qty.explicit
		if qty.all {
			q = asset.Amount
		}

		if asset.Amount.Cmp(q) < 0 {
			return ErrInsufficientBalance
		}
		amount := rate.Convert(q)

		if err := models.UpdateBalanceAmount(tx, asset.ID, new(decimal.Big).Sub(asset.Amount, q)); err != nil {
			return err
		}
		if err := models.UpdateBalanceAmount(tx, cash.ID, new(decimal.Big).Add(cash.Amount, amount)); err != nil {
			return err
		}

		deal = Deal{Price: price, Quantity: q}
		return nil
	})
	if err != nil {
		trace.LogError(span, err)
		return
	}

	api.logger.WithFields(logrus.Fields{
		"user_id": user.ID, "coin": coin.Name, "quantity": deal.Quantity, "price": deal.Price,
	}).Info("sell executed")
	return
}

// Balances returns asset name to held amount mapping, zero balances are omitted
func (api *Api) Balances(ctx context.Context, user models.User) (view map[string]*decimal.Big, err error) {
	balances, err := models.GetBalances(api.database, user.ID)
	if err != nil {
		return
	}
	view = make(map[string]*decimal.Big, len(balances))
	for _, balance := range balances {
		if balance.Amount.Sign() == 0 {
			continue
		}
		view[balance.Name] = balance.Amount
	}
	return
}

// Coins returns names of assets currently open for trading
func (api *Api) Coins(ctx context.Context) (names []string, err error) {
	coins, err := models.GetCoins(api.database)
	if err != nil {
		return
	}
	names = make([]string, 0, len(coins))
	for _, coin := range coins {
		names = append(names, coin.Name)
	}
	return
}

// getRate quotes the rate source applying quote timeout unless caller brought its own deadline
func (api *Api) getRate(ctx context.Context, coinName string) (rate *convert.Rate, err error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, api.quoteTimeout)
		defer cancel()
	}
	return api.converter.GetRate(ctx, coinName, models.CashAssetName)
}
