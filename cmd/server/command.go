package server

import (
	"fmt"

	"git.papertrade.io/trading-backend/trading-api/cmd/common"
	"git.papertrade.io/trading-backend/trading-api/cmd/utils"
	"git.papertrade.io/trading-backend/trading-api/config"
	"git.papertrade.io/trading-backend/trading-api/internal/server/handlers/balances"
	"git.papertrade.io/trading-backend/trading-api/internal/server/handlers/coins"
	"git.papertrade.io/trading-backend/trading-api/internal/server/handlers/users"
	internalproviders "git.papertrade.io/trading-backend/trading-api/internal/providers"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/dig"
)

// Create and initialize server command for given viper instance
func Create(v *viper.Viper, cfg *config.RootScheme) cobra.Command {
	command := cobra.Command{
		Use:   "server",
		Short: "Runs Trading-API server",
		RunE: func(_ *cobra.Command, args []string) error {
			return serverMain(*cfg)
		},
	}
	// add common flags
	command.Flags().StringP("server.host", "l", v.GetString("server.host"), "host to serve on")
	command.Flags().IntP("server.port", "p", v.GetInt("server.port"), "port to serve on")
	command.Flags().String(
		"db.uri",
		v.GetString("db.uri"),
		"postgres connection uri",
	)
	v.BindPFlags(command.Flags())

	return command
}

// serverMain
func serverMain(cfg config.RootScheme) (err error) {
	// create DI container and populate it with providers
	c := dig.New()

	// provide common stuff
	common.ProvideBasic(c, cfg)

	// provide tracer and gin engine
	utils.MustProvide(c, internalproviders.Tracer)
	utils.MustProvide(c, internalproviders.GinEngine)

	// provide api router
	utils.MustProvide(c, internalproviders.ApiRoutes, dig.Name("api_routes"))

	// provide middlewares
	utils.MustProvide(c, internalproviders.AuthMiddleware, dig.Name("auth_middleware"))

	// register handlers
	utils.MustInvoke(c, users.Register)
	utils.MustInvoke(c, coins.Register)
	utils.MustInvoke(c, balances.Register)

	// Run server!
	utils.MustInvoke(c, func(engine *gin.Engine) error {
		return engine.Run(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
	})

	return
}
