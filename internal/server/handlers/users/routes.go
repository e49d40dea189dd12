package users

import (
	"git.papertrade.io/trading-backend/trading-api/internal/auth"
	"git.papertrade.io/trading-backend/trading-api/internal/users"
	"git.papertrade.io/trading-backend/trading-api/pkg/server/handlers/base"
	"github.com/gin-gonic/gin"
	"go.uber.org/dig"
)

// Dependencies
type Dependencies struct {
	dig.In

	Routes gin.IRouter `name:"api_routes"`

	UsersApi *users.Api
	AuthApi  *auth.Api
}

// Register
func Register(dependencies Dependencies) error {
	dependencies.Routes.POST(
		"/register",
		base.WrapHandler(RegisterFactory(dependencies.UsersApi)),
	)
	dependencies.Routes.POST(
		"/login",
		base.WrapHandler(LoginFactory(dependencies.UsersApi, dependencies.AuthApi)),
	)
	return nil
}
