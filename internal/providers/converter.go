package providers

import (
	"fmt"

	convertconf "git.papertrade.io/trading-backend/trading-api/config/convert"
	"git.papertrade.io/trading-backend/trading-api/pkg/services/convert"
	"git.papertrade.io/trading-backend/trading-api/pkg/services/convert/coingecko"
	"git.papertrade.io/trading-backend/trading-api/pkg/services/convert/cryptocompare"
	"git.papertrade.io/trading-backend/trading-api/pkg/services/convert/fallback"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CoinConverter create configuration defined rate source
func CoinConverter(cfg convertconf.Scheme, log logrus.FieldLogger) (c convert.ICryptoCurrency, err error) {
	log = log.WithField("module", "providers.converter")

	log.WithField("type", cfg.Type).Info("creating main converter")
	c, err = converterForType(cfg.Type)
	if err != nil {
		log.WithField("type", cfg.Type).WithError(err).Error("error occurs while creating main converter")
		return
	}

	if cfg.FallbackType != "" {
		log := log.WithField("fb_type", cfg.FallbackType).WithField("fb_timeout", cfg.FallbackTimeout)
		log.Info("creating fallback converter")

		if cfg.FallbackTimeout == 0 {
			err = errors.New("coin converter provider: fallback converter type specified, but timeout not")
			log.WithError(err).Error("creating fallback converter failed due to wrong params")
			return
		}

		fb, fbErr := converterForType(cfg.FallbackType)
		if fbErr == nil {
			c = fallback.New(c, fb, cfg.FallbackTimeout)
		} else {
			log.WithError(fbErr).Warn("creating fallback converter failed, so it will be used without fallback")
		}
	}
	log.Info("success")
	return c, nil
}

func converterForType(t string) (convert.ICryptoCurrency, error) {
	switch t {
	case "":
		fallthrough
	case "coingecko":
		return coingecko.New("https://api.coingecko.com")
	case "cryptocompare":
		return cryptocompare.New("https://min-api.cryptocompare.com")
	default:
		return nil, fmt.Errorf("coin converter provider: unexpected converter type %s", t)
	}
}
