package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listPage int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Browse the public tribute wall",
	RunE: func(cmd *cobra.Command, _ []string) error {
		page, err := apiClient().ListMessages(cmd.Context(), listPage)
		if err != nil {
			return err
		}

		for _, m := range page.Items {
			if m.Type == "voicenote" {
				fmt.Printf("%s  %s: [voice] %s\n", m.CreatedAt.Format("2006-01-02 15:04"), m.Name, m.VoicenoteURL)
				continue
			}
			fmt.Printf("%s  %s: %s\n", m.CreatedAt.Format("2006-01-02 15:04"), m.Name, m.Message)
		}
		fmt.Printf("page %d of %d (%d tributes)\n", page.Page, page.TotalPages, page.Total)
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page to show")
	rootCmd.AddCommand(listCmd)
}
