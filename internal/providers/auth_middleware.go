package providers

import (
	"git.papertrade.io/trading-backend/trading-api/internal/auth"
	"git.papertrade.io/trading-backend/trading-api/internal/server/middlewares"
	"git.papertrade.io/trading-backend/trading-api/pkg/server/handlers/base"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware
func AuthMiddleware(authApi *auth.Api) gin.HandlerFunc {
	return base.WrapMiddleware(middlewares.AuthMiddlewareFactory(authApi))
}
