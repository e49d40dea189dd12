package base

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HandlerFunc simplified gin handler which returns response body, status code (0 means 200) and
// error. Error rendering performed by the wrapper in single place.
type HandlerFunc func(c *gin.Context) (resp interface{}, code int, err error)

// WrapHandler wraps handler func doing error coercion and json rendering
func WrapHandler(handler HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, code, err := handler(c)
		if err != nil {
			renderError(c, err)
			return
		}
		if code == 0 {
			code = http.StatusOK
		}
		c.JSON(code, resp)
	}
}

// WrapMiddleware wraps handler func into middleware, chain is aborted when error returned
func WrapMiddleware(handler HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, _, err := handler(c)
		if err != nil {
			renderError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// renderError renders error view as json, non-view errors are hidden behind 500 response to not
// leak internals
func renderError(c *gin.Context, err error) {
	view, ok := err.(ErrorView)
	if !ok {
		logrus.WithField("module", "server.base").WithError(err).Error("unhandled handler error")
		view = ErrorView{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
	if view.Code == 0 {
		view.Code = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(view.Code, gin.H{"errors": view})
}
