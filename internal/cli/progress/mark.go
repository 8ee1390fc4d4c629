package progress

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var markCmd = &cobra.Command{
	Use:   "mark",
	Short: "Mark an episode as watched",
	Long:  "Record one episode as watched and update the entry's counter",
	RunE: func(cmd *cobra.Command, args []string) error {
		animeID, _ := cmd.Flags().GetInt64("anime-id")
		episode, _ := cmd.Flags().GetInt("episode")
		duration, _ := cmd.Flags().GetInt("duration")

		if animeID <= 0 {
			return fmt.Errorf("--anime-id is required")
		}
		if episode <= 0 {
			return fmt.Errorf("--episode is required")
		}

		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("no token configured. Please run: aniview config set-token")
		}

		body := map[string]interface{}{
			"duration": duration,
		}
		jsonBody, _ := json.Marshal(body)

		serverURL := fmt.Sprintf("http://%s:%d/api/v1/anime/%d/episodes/%d",
			viper.GetString("server.host"),
			viper.GetInt("server.port"),
			animeID, episode)

		req, _ := http.NewRequest("PUT", serverURL, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to mark episode: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] == true {
			fmt.Printf("✓ Episode %d marked as watched\n", episode)
		} else {
			if msg, ok := result["error"].(string); ok {
				return fmt.Errorf("failed: %s", msg)
			}
			return fmt.Errorf("failed to mark episode")
		}

		return nil
	},
}

var unmarkCmd = &cobra.Command{
	Use:   "unmark",
	Short: "Unmark a watched episode",
	Long:  "Remove one episode's watch record and update the entry's counter",
	RunE: func(cmd *cobra.Command, args []string) error {
		animeID, _ := cmd.Flags().GetInt64("anime-id")
		episode, _ := cmd.Flags().GetInt("episode")

		if animeID <= 0 {
			return fmt.Errorf("--anime-id is required")
		}
		if episode <= 0 {
			return fmt.Errorf("--episode is required")
		}

		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("no token configured. Please run: aniview config set-token")
		}

		serverURL := fmt.Sprintf("http://%s:%d/api/v1/anime/%d/episodes/%d",
			viper.GetString("server.host"),
			viper.GetInt("server.port"),
			animeID, episode)

		req, _ := http.NewRequest("DELETE", serverURL, nil)
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to unmark episode: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] == true {
			fmt.Printf("✓ Episode %d unmarked\n", episode)
		} else {
			if msg, ok := result["error"].(string); ok {
				return fmt.Errorf("failed: %s", msg)
			}
			return fmt.Errorf("failed to unmark episode")
		}

		return nil
	},
}

func init() {
	markCmd.Flags().Int64("anime-id", 0, "Anime ID (required)")
	markCmd.Flags().Int("episode", 0, "Episode number (required)")
	markCmd.Flags().Int("duration", 0, "Episode runtime in minutes")
	markCmd.MarkFlagRequired("anime-id")
	markCmd.MarkFlagRequired("episode")

	unmarkCmd.Flags().Int64("anime-id", 0, "Anime ID (required)")
	unmarkCmd.Flags().Int("episode", 0, "Episode number (required)")
	unmarkCmd.MarkFlagRequired("anime-id")
	unmarkCmd.MarkFlagRequired("episode")

	ProgressCmd.AddCommand(markCmd)
	ProgressCmd.AddCommand(unmarkCmd)
}
