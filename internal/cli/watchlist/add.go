package watchlist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add anime to your watchlist",
	Long:  "Add an anime to your watchlist with optional status",
	RunE: func(cmd *cobra.Command, args []string) error {
		animeID, _ := cmd.Flags().GetInt64("anime-id")
		title, _ := cmd.Flags().GetString("title")
		status, _ := cmd.Flags().GetString("status")
		episodes, _ := cmd.Flags().GetInt("episodes")

		if animeID <= 0 {
			return fmt.Errorf("--anime-id is required")
		}
		if title == "" {
			return fmt.Errorf("--title is required")
		}

		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("no token configured. Please run: aniview config set-token")
		}

		body := map[string]interface{}{
			"anime_id":       animeID,
			"anime_title":    title,
			"total_episodes": episodes,
			"status":         status,
		}

		jsonBody, _ := json.Marshal(body)
		serverURL := fmt.Sprintf("http://%s:%d/api/v1/watchlist",
			viper.GetString("server.host"),
			viper.GetInt("server.port"))

		req, _ := http.NewRequest("POST", serverURL, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to add anime: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] == true {
			fmt.Printf("✓ Anime added to watchlist\n")
			fmt.Printf("  Anime ID: %d\n", animeID)
			fmt.Printf("  Title: %s\n", title)
			fmt.Printf("  Status: %s\n", status)
		} else {
			if msg, ok := result["error"].(string); ok {
				return fmt.Errorf("failed: %s", msg)
			}
			return fmt.Errorf("failed to add anime")
		}

		return nil
	},
}

func init() {
	addCmd.Flags().Int64("anime-id", 0, "Anime ID (required)")
	addCmd.Flags().String("title", "", "Anime title (required)")
	addCmd.Flags().String("status", "plan_to_watch", "Status (watching, completed, on_hold, dropped, plan_to_watch)")
	addCmd.Flags().Int("episodes", 0, "Total episode count")
	addCmd.MarkFlagRequired("anime-id")
	addCmd.MarkFlagRequired("title")
	WatchlistCmd.AddCommand(addCmd)
}
