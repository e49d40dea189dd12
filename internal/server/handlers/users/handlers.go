package users

import (
	"net/http"

	"git.papertrade.io/trading-backend/trading-api/internal/auth"
	"git.papertrade.io/trading-backend/trading-api/internal/users"
	"git.papertrade.io/trading-backend/trading-api/models"
	"git.papertrade.io/trading-backend/trading-api/pkg/server/handlers/base"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

var (
	errEmailDuplicated = base.NewFieldErr("body", "email", "email is duplicated")
	errUserNotExists   = base.ErrorView{Code: http.StatusNotFound, Message: "user not exists"}
)

// RegisterFactory creates handler which registers user accepting 'RegisterRequest' like scheme
// and returning 'RegisterResponse' on success
func RegisterFactory(api *users.Api) base.HandlerFunc {
	return func(c *gin.Context) (resp interface{}, code int, err error) {
		params := RegisterRequest{}
		if _, err = base.ShouldBindJSON(c, &params); err != nil {
			return
		}

		user, err := api.Register(c, params.Name, params.Email, params.Password)
		if err != nil {
			if errors.Cause(err) == models.ErrEmailAlreadyTaken {
				err = errEmailDuplicated
			}
			return
		}

		resp = RegisterResponse{ID: user.ID}
		return
	}
}

// LoginFactory creates handler which authenticates user by email/password pair and issues fresh
// auth key, returning 'LoginResponse' on success
func LoginFactory(usersApi *users.Api, authApi *auth.Api) base.HandlerFunc {
	return func(c *gin.Context) (resp interface{}, code int, err error) {
		params := LoginRequest{}
		if _, err = base.ShouldBindJSON(c, &params); err != nil {
			return
		}

		user, err := usersApi.Authenticate(c, params.Email, params.Password)
		if err != nil {
			if errors.Cause(err) == models.ErrNoSuchUser {
				err = errUserNotExists
			}
			return
		}

		publicID, token, err := authApi.IssueKey(c, user)
		if err != nil {
			return
		}

		resp = LoginResponse{PublicID: publicID, Token: token}
		return
	}
}
