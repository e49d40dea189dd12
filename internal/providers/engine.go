package providers

import (
	"git.papertrade.io/trading-backend/trading-api/pkg/trace"
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
)

// GinEngine creates engine with tracing middleware attached, tracer dependency forces tracer
// initialization before first request
func GinEngine(_ opentracing.Tracer) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), trace.StartSpanMiddleware())
	return engine
}

// ApiRoutes
func ApiRoutes(engine *gin.Engine) gin.IRouter {
	return engine.Group("/")
}
