package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"aniview/internal/cli/cliconfig"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long:  "Create the CLI config file with default connection settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cliconfig.Path()
		if err := cliconfig.Default().Save(path); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Printf("✓ Config written to %s\n", path)
		return nil
	},
}

var setTokenCmd = &cobra.Command{
	Use:   "set-token <token>",
	Short: "Store your API token",
	Long:  "Save the bearer token used to authenticate watchlist and stats commands",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cliconfig.Path()
		cfg, err := cliconfig.Load(path)
		if err != nil {
			return err
		}
		cfg.User.Token = args[0]
		if err := cfg.Save(path); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}
		fmt.Println("✓ Token saved")
		return nil
	},
}

func init() {
	ConfigCmd.AddCommand(initCmd)
	ConfigCmd.AddCommand(setTokenCmd)
}
