package seed

import (
	"git.papertrade.io/trading-backend/trading-api/cmd/common"
	"git.papertrade.io/trading-backend/trading-api/cmd/utils"
	"git.papertrade.io/trading-backend/trading-api/config"
	"git.papertrade.io/trading-backend/trading-api/db"
	"git.papertrade.io/trading-backend/trading-api/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/dig"
)

// defaultCoins seeded as tradeable assets, names are coingecko ids
var defaultCoins = []string{
	"bitcoin",
	"ripple",
	"ethereum",
	"dogecoin",
	"bitcoin-gold",
	"bitcoin-green",
}

// Create and initialize seed command for given viper instance
func Create(v *viper.Viper, cfg *config.RootScheme) cobra.Command {
	command := cobra.Command{
		Use:   "seed",
		Short: "Clears all collections and seeds the default coin list",
		RunE: func(_ *cobra.Command, args []string) error {
			return seedMain(*cfg)
		},
	}
	command.Flags().String("db.uri", v.GetString("db.uri"), "postgres connection uri")
	v.BindPFlags(command.Flags())

	return command
}

// seedMain
func seedMain(cfg config.RootScheme) error {
	c := dig.New()
	common.ProvideBasic(c, cfg)

	var err error
	utils.MustInvoke(c, func(d *db.Db, logger logrus.FieldLogger) {
		err = d.Tx(func(tx db.ITx) error {
			if err := models.TruncateAll(tx); err != nil {
				return err
			}
			for _, name := range defaultCoins {
				if err := models.CreateCoin(tx, name, true); err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			logger.WithField("coins", len(defaultCoins)).Info("seed completed")
		}
	})
	return err
}
