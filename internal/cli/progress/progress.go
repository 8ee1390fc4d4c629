package progress

import "github.com/spf13/cobra"

var ProgressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Track episode progress",
	Long:  "Mark and unmark watched episodes",
}
