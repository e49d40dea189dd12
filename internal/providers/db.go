package providers

import (
	dbconf "git.papertrade.io/trading-backend/trading-api/config/db"
	"git.papertrade.io/trading-backend/trading-api/db"
)

// DB opens postgres connection and applies pending migrations
func DB(cfg dbconf.Scheme) (*db.Db, error) {
	d, err := db.New(cfg.Uri)
	if err != nil {
		return nil, err
	}
	if err = d.Migrate(); err != nil {
		return nil, err
	}
	return d, nil
}
