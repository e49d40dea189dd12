package main

import (
	"git.papertrade.io/trading-backend/trading-api/cmd/root"
	"git.papertrade.io/trading-backend/trading-api/cmd/seed"
	"git.papertrade.io/trading-backend/trading-api/cmd/server"
	"git.papertrade.io/trading-backend/trading-api/config"
	"github.com/spf13/viper"
)

// main executes specified command using cobra, on error will panic for nice stack print and
// non-zero exit code
func main() {
	var cfg config.RootScheme
	v := viper.New()

	config.Init(v)
	rootCmd := root.Create(v, &cfg)
	serverCmd := server.Create(v, &cfg)
	serverCmd.Flags().AddFlagSet(rootCmd.Flags())
	seedCmd := seed.Create(v, &cfg)
	rootCmd.AddCommand(&serverCmd, &seedCmd)

	err := rootCmd.Execute()
	if err != nil {
		panic(err)
	}
}
