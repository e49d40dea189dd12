package balances

import (
	"net/http"

	"git.papertrade.io/trading-backend/trading-api/internal/server/middlewares"
	"git.papertrade.io/trading-backend/trading-api/internal/trading"
	"git.papertrade.io/trading-backend/trading-api/pkg/server/handlers/base"
	"github.com/gin-gonic/gin"
)

var errAuthMiddlewareMissing = base.ErrorView{
	Code:    http.StatusInternalServerError,
	Message: "auth middleware is missing",
}

// GetFactory creates handler which returns asset name to held amount mapping of the
// authenticated user, zero balances omitted
func GetFactory(api *trading.Api) base.HandlerFunc {
	return func(c *gin.Context) (resp interface{}, code int, err error) {
		user, presented := middlewares.GetUserFromContext(c)
		if !presented {
			err = errAuthMiddlewareMissing
			return
		}

		view, err := api.Balances(c, user)
		if err != nil {
			return
		}
		resp = view
		return
	}
}
