package providers

import (
	logconf "git.papertrade.io/trading-backend/trading-api/config/logging"
	"github.com/sirupsen/logrus"
)

// RootLogger creates application-wide logger with configured level
func RootLogger(cfg logconf.Scheme) (logrus.FieldLogger, error) {
	logger := logrus.New()
	if cfg.LogLevel != "" {
		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		logger.SetLevel(level)
	}
	return logger, nil
}
