package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	catalogCmd "aniview/internal/cli/catalog"
	"aniview/internal/cli/cliconfig"
	configCmd "aniview/internal/cli/config"
	progressCmd "aniview/internal/cli/progress"
	watchlistCmd "aniview/internal/cli/watchlist"
)

var rootCmd = &cobra.Command{
	Use:   "aniview",
	Short: "Aniview command line client",
	Long:  "Browse the anime catalog and manage your watchlist from the terminal",
}

func initConfig() {
	viper.SetConfigFile(cliconfig.Path())
	viper.SetConfigType("yaml")

	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)

	// Missing config file is fine; defaults apply
	_ = viper.ReadInConfig()

	viper.SetEnvPrefix("ANIVIEW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func main() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(configCmd.ConfigCmd)
	rootCmd.AddCommand(catalogCmd.CatalogCmd)
	rootCmd.AddCommand(watchlistCmd.WatchlistCmd)
	rootCmd.AddCommand(progressCmd.ProgressCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
