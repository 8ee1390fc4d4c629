package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// displayTitle resolves the title to print for a decoded catalog record,
// in the same fallback order the server uses: English title, then the
// default title, then the first synonym.
func displayTitle(item map[string]interface{}) string {
	if english, ok := item["title_english"].(string); ok && english != "" {
		return english
	}
	if title, ok := item["title"].(string); ok && title != "" {
		return title
	}
	if synonyms, ok := item["title_synonyms"].([]interface{}); ok {
		for _, s := range synonyms {
			if synonym, ok := s.(string); ok && synonym != "" {
				return synonym
			}
		}
	}
	return "Unknown Title"
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for anime",
	Long:  "Search the anime catalog by title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]

		limit, _ := cmd.Flags().GetInt("limit")
		animeType, _ := cmd.Flags().GetString("type")
		status, _ := cmd.Flags().GetString("status")

		// Build query
		params := url.Values{}
		params.Set("q", query)
		params.Set("limit", fmt.Sprintf("%d", limit))
		if animeType != "" {
			params.Set("type", animeType)
		}
		if status != "" {
			params.Set("status", status)
		}

		serverURL := fmt.Sprintf("http://%s:%d/api/v1/catalog/search?%s",
			viper.GetString("server.host"),
			viper.GetInt("server.port"),
			params.Encode())

		resp, err := http.Get(serverURL)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] != true {
			return fmt.Errorf("search failed")
		}

		items, _ := result["data"].([]interface{})
		fmt.Printf("\nFound %d results:\n\n", len(items))

		for i, m := range items {
			item := m.(map[string]interface{})
			fmt.Printf("%d. %s\n", i+1, displayTitle(item))
			if t, ok := item["type"].(string); ok && t != "" {
				fmt.Printf("   Type: %s\n", t)
			}
			if episodes, ok := item["episodes"].(float64); ok && episodes > 0 {
				fmt.Printf("   Episodes: %.0f\n", episodes)
			}
			if score, ok := item["score"].(float64); ok && score > 0 {
				fmt.Printf("   Score: %.2f\n", score)
			}
			if id, ok := item["mal_id"].(float64); ok {
				fmt.Printf("   ID: %.0f\n", id)
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	searchCmd.Flags().Int("limit", 10, "Number of results")
	searchCmd.Flags().String("type", "", "Filter by type (tv, movie, ova)")
	searchCmd.Flags().String("status", "", "Filter by status (airing, complete, upcoming)")
	CatalogCmd.AddCommand(searchCmd)
}
