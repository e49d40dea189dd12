package cryptocompare

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"git.papertrade.io/trading-backend/trading-api/pkg/services/convert"
	"github.com/ericlagergren/decimal"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
)

const singlePricePath = "/data/price"

// ticker maps coingecko-style coin ids used across the api onto cryptocompare tickers
var ticker = map[string]string{
	"bitcoin":  "BTC",
	"ripple":   "XRP",
	"ethereum": "ETH",
	"dogecoin": "DOGE",
}

// responseBody maps uppercased currency name onto price, e.g. {"USD": 67012.4}
type responseBody map[string]json.Number

// errorBody returned with code 200 when fsym is unknown
type errorBody struct {
	Response string `json:"Response"`
	Message  string `json:"Message"`
}

// CryptoCurrency rate source backed by cryptocompare price api, used as secondary source behind
// the fallback wrapper
type CryptoCurrency struct {
	client *http.Client
	host   string
}

// New cryptocompare backed converter, requires service host parameter
func New(serviceHost string) (convert.ICryptoCurrency, error) {
	if serviceHost == "" {
		return nil, fmt.Errorf("cryptocompare converter: service host parameter is required")
	}
	if _, err := url.Parse(serviceHost); err != nil {
		return nil, errors.Wrapf(
			err, "cryptocompare converter: service host parameter seems to be invalid: %s", serviceHost,
		)
	}
	return &CryptoCurrency{host: serviceHost, client: &http.Client{}}, nil
}

// GetRate implements ICryptoCurrency
func (c *CryptoCurrency) GetRate(ctx context.Context, coinName string, dstCurrencyName string) (*convert.Rate, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "cryptocompare_get_rate")
	defer span.Finish()

	fsym, ok := ticker[strings.ToLower(coinName)]
	if !ok {
		// not every coin id has a cryptocompare listing
		return nil, convert.ErrCryptoCurrencyName
	}
	dstCurrencyName = strings.ToUpper(dstCurrencyName)
	if dstCurrencyName == "" {
		return nil, errors.New("cryptocompare converter: empty dst currency value")
	}

	u, _ := url.Parse(c.host)
	u.Path = singlePricePath
	v := url.Values{}
	v.Set("fsym", fsym)
	v.Set("tsyms", dstCurrencyName)
	u.RawQuery = v.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "cryptocompare converter")
	}
	span.LogKV("convert_url", req.URL.String())

	r, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(convert.ErrUnavailable, "cryptocompare converter: %v", err)
	}
	defer r.Body.Close()

	span.LogKV("resp_code", r.StatusCode)
	if r.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(
			convert.ErrUnavailable, "cryptocompare converter: service response code %d", r.StatusCode,
		)
	}

	var raw json.RawMessage
	if err = json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, errors.Wrapf(convert.ErrUnavailable, "cryptocompare converter: malformed response: %v", err)
	}

	// service reports errors with 200 code and an error object body
	var errResp errorBody
	if json.Unmarshal(raw, &errResp) == nil && errResp.Response == "Error" {
		return nil, convert.ErrCryptoCurrencyName
	}

	var resp responseBody
	if err = json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.Wrapf(convert.ErrUnavailable, "cryptocompare converter: malformed response: %v", err)
	}
	rateVal, ok := resp[dstCurrencyName]
	if !ok {
		return nil, convert.ErrFiatCurrencyName
	}

	rate := new(convert.Rate)
	if _, valid := (*decimal.Big)(rate).SetString(rateVal.String()); !valid {
		return nil, errors.Wrapf(convert.ErrUnavailable, "cryptocompare converter: bad price value %q", rateVal.String())
	}
	return rate, nil
}
