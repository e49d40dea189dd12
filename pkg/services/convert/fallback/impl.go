package fallback

import (
	"context"
	"time"

	"git.papertrade.io/trading-backend/trading-api/pkg/services/convert"
	"git.papertrade.io/trading-backend/trading-api/pkg/trace"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
)

// CryptoCurrency implements converter which queries main source first, if it is unreachable or
// times out the secondary source is tried. Bad coin/currency name errors are not retried since
// the second source will not know the asset either way.
type CryptoCurrency struct {
	main     convert.ICryptoCurrency
	fallback convert.ICryptoCurrency
	timeout  time.Duration
}

// New creates new converter with fallback and per-attempt timeout
func New(main, fallback convert.ICryptoCurrency, timeout time.Duration) convert.ICryptoCurrency {
	return &CryptoCurrency{main: main, fallback: fallback, timeout: timeout}
}

// GetRate implements ICryptoCurrency. If context already have deadline or done channel, it will
// not refresh deadline.
func (fc *CryptoCurrency) GetRate(ctx context.Context, coinName string, dstCurrencyName string) (rate *convert.Rate, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "fallback_get_rate")
	defer span.Finish()

	trace.InsideSpanE(ctx, "main_converter", func(ctx context.Context, span opentracing.Span) error {
		ctx, cancel := refreshTimeout(ctx, fc.timeout)
		defer cancel()
		rate, err = fc.main.GetRate(ctx, coinName, dstCurrencyName)
		return err
	})
	if err == nil || errors.Cause(err) != convert.ErrUnavailable {
		return
	}

	trace.InsideSpanE(ctx, "fallback_converter", func(ctx context.Context, span opentracing.Span) error {
		ctx, cancel := refreshTimeout(ctx, fc.timeout)
		defer cancel()
		rate, err = fc.fallback.GetRate(ctx, coinName, dstCurrencyName)
		return err
	})
	return
}

func refreshTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	if ctx.Done() != nil {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
