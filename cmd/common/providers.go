package common

import (
	"git.papertrade.io/trading-backend/trading-api/cmd/utils"
	"git.papertrade.io/trading-backend/trading-api/config"
	convertconf "git.papertrade.io/trading-backend/trading-api/config/convert"
	dbconf "git.papertrade.io/trading-backend/trading-api/config/db"
	logconf "git.papertrade.io/trading-backend/trading-api/config/logging"
	serverconf "git.papertrade.io/trading-backend/trading-api/config/server"
	internalproviders "git.papertrade.io/trading-backend/trading-api/internal/providers"
	"go.uber.org/dig"
)

// ProvideBasic populates container with configuration parts and services shared by all commands
func ProvideBasic(c *dig.Container, cfg config.RootScheme) {
	// provide container itself
	utils.MustProvide(c, func() *dig.Container {
		return c
	})

	// provide configuration and her parts
	utils.MustProvide(c, func() (
		config.RootScheme,
		dbconf.Scheme,
		serverconf.Scheme,
		convertconf.Scheme,
		logconf.Scheme,
	) {
		return cfg, cfg.DB, cfg.Server, cfg.Convert, cfg.Logging
	})

	// provide root logger
	utils.MustProvide(c, internalproviders.RootLogger)

	// provide ordinal db connection
	utils.MustProvide(c, internalproviders.DB)

	// provide coin rate source
	utils.MustProvide(c, internalproviders.CoinConverter)

	// provide domain apis
	utils.MustProvide(c, internalproviders.UsersApi)
	utils.MustProvide(c, internalproviders.AuthApi)
	utils.MustProvide(c, internalproviders.TradingApi)
}
