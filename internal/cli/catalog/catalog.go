package catalog

import "github.com/spf13/cobra"

var CatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the anime catalog",
	Long:  "Search and browse the anime catalog",
}
