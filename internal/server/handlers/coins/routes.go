package coins

import (
	"git.papertrade.io/trading-backend/trading-api/internal/trading"
	"git.papertrade.io/trading-backend/trading-api/pkg/server/handlers/base"
	"github.com/gin-gonic/gin"
	"go.uber.org/dig"
)

// Dependencies
type Dependencies struct {
	dig.In

	Routes         gin.IRouter     `name:"api_routes"`
	AuthMiddleware gin.HandlerFunc `name:"auth_middleware"`

	Api *trading.Api
}

// Register
func Register(dependencies Dependencies) error {
	group := dependencies.Routes.Group("/coins")

	group.GET(
		"",
		base.WrapHandler(ListFactory(dependencies.Api)),
	)
	group.GET(
		"/:coin_name",
		base.WrapHandler(PriceFactory(dependencies.Api)),
	)
	group.POST(
		"/:coin_name/buy",
		dependencies.AuthMiddleware,
		base.WrapHandler(BuyFactory(dependencies.Api)),
	)
	group.POST(
		"/:coin_name/sell",
		dependencies.AuthMiddleware,
		base.WrapHandler(SellFactory(dependencies.Api)),
	)
	return nil
}
