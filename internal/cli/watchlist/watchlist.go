package watchlist

import "github.com/spf13/cobra"

var WatchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "Manage your watchlist",
	Long:  "Add, remove, and view anime on your personal watchlist",
}
