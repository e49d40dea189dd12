package root

import (
	"git.papertrade.io/trading-backend/trading-api/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Create and initialize root command for given viper instance, all sub-commands inherit
// configuration unmarshalled on execution
func Create(v *viper.Viper, cfg *config.RootScheme) cobra.Command {
	command := cobra.Command{
		Use:   "trading-api",
		Short: "Paper-trading ledger API",
		PersistentPreRunE: func(_ *cobra.Command, args []string) error {
			v.SetEnvPrefix("trading_api")
			v.AutomaticEnv()
			if cfgFile := v.GetString("config"); cfgFile != "" {
				v.SetConfigFile(cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return err
				}
			}
			return v.Unmarshal(cfg)
		},
	}
	command.PersistentFlags().StringP("config", "c", "", "config file path")
	v.BindPFlag("config", command.PersistentFlags().Lookup("config"))

	return command
}
