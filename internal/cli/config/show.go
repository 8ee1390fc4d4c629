package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display current aniview CLI configuration and connection settings",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Aniview Configuration:")
		fmt.Println("")
		fmt.Printf("Server:\n")
		fmt.Printf("  Host: %s\n", viper.GetString("server.host"))
		fmt.Printf("  Port: %d\n", viper.GetInt("server.port"))
		fmt.Println("")

		token := viper.GetString("user.token")
		if token != "" {
			if len(token) > 20 {
				fmt.Printf("Token: %s...\n", token[:20])
			} else {
				fmt.Printf("Token: %s\n", token)
			}
			fmt.Printf("Status: ✓ Token configured\n")
		} else {
			fmt.Printf("Token: not set\n")
			fmt.Printf("Run 'aniview config set-token <token>' to authenticate\n")
		}
	},
}

func init() {
	ConfigCmd.AddCommand(showCmd)
}
