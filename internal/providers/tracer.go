package providers

import (
	"git.papertrade.io/trading-backend/trading-api/config"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	jaeger "github.com/uber/jaeger-client-go"
	jconfig "github.com/uber/jaeger-client-go/config"
)

// Tracer creates configured jaeger tracer and set it as global tracer
func Tracer(cfg config.RootScheme) (opentracing.Tracer, error) {
	tracer, _, err := cfg.JaegerConfig.New(
		cfg.JaegerConfig.ServiceName, jconfig.Logger(jaeger.StdLogger),
	)
	if err != nil {
		return nil, errors.Wrap(err, "providers: cannot init jaeger")
	}
	opentracing.SetGlobalTracer(tracer)
	return tracer, nil
}
