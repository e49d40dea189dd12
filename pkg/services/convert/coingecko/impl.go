package coingecko

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"context"

	"git.papertrade.io/trading-backend/trading-api/pkg/services/convert"
	"github.com/ericlagergren/decimal"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
)

const simplePricePath = "/api/v3/simple/price"

// responseBody maps coin id onto currency -> price object, e.g.
// {"bitcoin": {"usd": 67012.4}}. Empty object means coin id is unknown to the service.
type responseBody map[string]map[string]json.Number

// CryptoCurrency rate source backed by coingecko simple price api. Coin names are coingecko ids
// ("bitcoin", "ripple"), not tickers.
type CryptoCurrency struct {
	client *http.Client
	host   string
}

// New coingecko backed converter, requires service host parameter
func New(serviceHost string) (convert.ICryptoCurrency, error) {
	if serviceHost == "" {
		return nil, fmt.Errorf("coingecko converter: service host parameter is required")
	}
	if _, err := url.Parse(serviceHost); err != nil {
		return nil, errors.Wrapf(
			err, "coingecko converter: service host parameter seems to be invalid: %s", serviceHost,
		)
	}
	return &CryptoCurrency{host: serviceHost, client: &http.Client{}}, nil
}

// GetRate implements ICryptoCurrency
func (c *CryptoCurrency) GetRate(ctx context.Context, coinName string, dstCurrencyName string) (*convert.Rate, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "coingecko_get_rate")
	defer span.Finish()

	coinName = strings.ToLower(coinName)
	dstCurrencyName = strings.ToLower(dstCurrencyName)
	if dstCurrencyName == "" {
		return nil, errors.New("coingecko converter: empty dst currency value")
	}

	u, _ := url.Parse(c.host)
	u.Path = simplePricePath
	v := url.Values{}
	v.Set("ids", coinName)
	v.Set("vs_currencies", dstCurrencyName)
	u.RawQuery = v.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "coingecko converter")
	}
	span.LogKV("convert_url", req.URL.String())

	r, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(convert.ErrUnavailable, "coingecko converter: %v", err)
	}
	defer r.Body.Close()

	span.LogKV("resp_code", r.StatusCode)
	if r.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(convert.ErrUnavailable, "coingecko converter: service response code %d", r.StatusCode)
	}

	var resp responseBody
	if err = json.NewDecoder(r.Body).Decode(&resp); err != nil {
		return nil, errors.Wrapf(convert.ErrUnavailable, "coingecko converter: malformed response: %v", err)
	}

	// empty/partial body distinguishes unsupported asset from service failure
	coinVals, ok := resp[coinName]
	if !ok {
		return nil, convert.ErrCryptoCurrencyName
	}
	rateVal, ok := coinVals[dstCurrencyName]
	if !ok {
		return nil, convert.ErrFiatCurrencyName
	}

	rate := new(convert.Rate)
	if _, valid := (*decimal.Big)(rate).SetString(rateVal.String()); !valid {
		return nil, errors.Wrapf(convert.ErrUnavailable, "coingecko converter: bad price value %q", rateVal.String())
	}
	return rate, nil
}
