package watchlist

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"aniview/pkg/utils"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your watchlist",
	Long:  "View all anime on your watchlist with episode progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("no token configured. Please run: aniview config set-token")
		}

		status, _ := cmd.Flags().GetString("status")

		serverURL := fmt.Sprintf("http://%s:%d/api/v1/watchlist",
			viper.GetString("server.host"),
			viper.GetInt("server.port"))
		if status != "" {
			serverURL += "?status=" + status
		}

		req, _ := http.NewRequest("GET", serverURL, nil)
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to get watchlist: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] != true {
			if msg, ok := result["error"].(string); ok {
				return fmt.Errorf("failed: %s", msg)
			}
			return fmt.Errorf("failed to get watchlist")
		}

		page, _ := result["data"].(map[string]interface{})
		entries, _ := page["data"].([]interface{})
		count := len(entries)
		if meta, ok := page["meta"].(map[string]interface{}); ok {
			if total, ok := meta["total"].(float64); ok {
				count = int(total)
			}
		}
		fmt.Printf("\nYour Watchlist (%d anime):\n\n", count)

		for i, item := range entries {
			entry := item.(map[string]interface{})

			fmt.Printf("%d. %s\n", i+1, entry["anime_title"].(string))
			fmt.Printf("   Status: %s\n", entry["status"].(string))
			watched, _ := entry["episodes_watched"].(float64)
			if total, ok := entry["total_episodes"].(float64); ok && total > 0 {
				fmt.Printf("   Progress: %.0f/%.0f episodes\n", watched, total)
			} else {
				fmt.Printf("   Progress: %.0f episodes\n", watched)
			}
			if score, ok := entry["score"].(float64); ok && score > 0 {
				fmt.Printf("   Score: %.0f/10\n", score)
			}
			if raw, ok := entry["updated_at"].(string); ok {
				if updated, err := time.Parse(time.RFC3339, raw); err == nil {
					fmt.Printf("   Updated: %s\n", utils.TimeAgo(updated))
				}
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	listCmd.Flags().String("status", "", "Filter by status (watching, completed, on_hold, dropped, plan_to_watch)")
	WatchlistCmd.AddCommand(listCmd)
}
