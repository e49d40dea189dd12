package providers

import (
	convertconf "git.papertrade.io/trading-backend/trading-api/config/convert"
	serverconf "git.papertrade.io/trading-backend/trading-api/config/server"
	"git.papertrade.io/trading-backend/trading-api/db"
	"git.papertrade.io/trading-backend/trading-api/internal/auth"
	"git.papertrade.io/trading-backend/trading-api/internal/trading"
	"git.papertrade.io/trading-backend/trading-api/internal/users"
	"git.papertrade.io/trading-backend/trading-api/pkg/services/convert"
	"github.com/sirupsen/logrus"
)

// UsersApi
func UsersApi(d *db.Db, logger logrus.FieldLogger) *users.Api {
	return users.NewApi(d, logger)
}

// AuthApi
func AuthApi(d *db.Db, cfg serverconf.Scheme, logger logrus.FieldLogger) *auth.Api {
	return auth.NewApi(d, cfg.Auth.TokenTTL, logger)
}

// TradingApi
func TradingApi(
	d *db.Db, converter convert.ICryptoCurrency, cfg convertconf.Scheme, logger logrus.FieldLogger,
) *trading.Api {
	return trading.NewApi(d, converter, cfg.QuoteTimeout, logger)
}
