package balances

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
	dependencies.Routes.GET(
		"/balance",
		dependencies.AuthMiddleware,
		base.WrapHandler(GetFactory(dependencies.Api)),
	)
	return nil
}
