package middlewares

import (
	"net/http"
	"strings"

	"git.papertrade.io/trading-backend/trading-api/internal/auth"
	"git.papertrade.io/trading-backend/trading-api/models"
	"git.papertrade.io/trading-backend/trading-api/pkg/server/handlers/base"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const bearerTokenName = "Bearer"

const contextUserKey = "auth_user"

var (
	// ErrAuthHeaderMissing no Authorization header presented
	ErrAuthHeaderMissing = base.NewFieldErr("header", "Authorization", "required")

	// ErrAuthHeaderWrongFormat header is not shaped as 'Bearer <token>'
	ErrAuthHeaderWrongFormat = base.NewFieldErr("header", "Authorization", "wrong authorization")

	// ErrTokenMalformed token cannot be parsed at all
	ErrTokenMalformed = base.ErrorView{Code: http.StatusBadRequest, Message: "malformed token"}

	// ErrUnknownKey no key matches the public id claim
	ErrUnknownKey = base.ErrorView{Code: http.StatusUnauthorized, Message: "no matched key"}

	// ErrBadSignature token signature check failed
	ErrBadSignature = base.ErrorView{Code: http.StatusUnauthorized, Message: "invalid signature"}

	// ErrUnknownUser no user references the token's key
	ErrUnknownUser = base.ErrorView{Code: http.StatusNotFound, Message: "cannot find user"}
)

// AuthMiddlewareFactory builds middleware which requires a valid bearer token on every request
// passing through it and attaches the resolved user to the gin context. Each verification step
// failure keeps its own error shape, so clients can tell a malformed header from a stale key.
func AuthMiddlewareFactory(authApi *auth.Api) base.HandlerFunc {
	return func(c *gin.Context) (resp interface{}, code int, err error) {
		header := c.GetHeader("Authorization")
		if header == "" {
			err = ErrAuthHeaderMissing
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != bearerTokenName {
			err = ErrAuthHeaderWrongFormat
			return
		}

		user, vErr := authApi.Verify(c, parts[1])
		if vErr != nil {
			switch errors.Cause(vErr) {
			case auth.ErrMalformedToken:
				err = ErrTokenMalformed
			case models.ErrNoSuchKey:
				err = ErrUnknownKey
			case auth.ErrBadSignature:
				err = ErrBadSignature
			case models.ErrNoSuchUser:
				err = ErrUnknownUser
			default:
				err = vErr
			}
			return
		}

		AttachUser(c, user)
		return
	}
}

// AttachUser binds user to the gin context under the key GetUserFromContext reads
func AttachUser(c *gin.Context, user models.User) {
	c.Set(contextUserKey, user)
}

// GetUserFromContext get user which was previously attached by the auth middleware
func GetUserFromContext(c *gin.Context) (user models.User, presented bool) {
	user, presented = c.Value(contextUserKey).(models.User)
	return
}
