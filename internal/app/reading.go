package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newReadingCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "reading",
		Short: "List the books you are currently reading",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records := client.FetchCurrentlyReading(cmd.Context())
			if len(records) == 0 {
				warn("No books in progress.")
				return nil
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			for i, r := range records {
				if i > 0 {
					fmt.Println()
				}
				header("%s", r.Title)
				printField("author", r.Author)
				if r.TotalPages > 0 {
					printField("progress", fmt.Sprintf("%d/%d pages (%.0f%%)", r.CurrentPage, r.TotalPages, r.Progress*100))
				} else if r.CurrentPage > 0 {
					printField("progress", fmt.Sprintf("page %d", r.CurrentPage))
				}
				printField("user-book", fmt.Sprintf("%d", r.UserBookID))
				if r.EditionID != 0 {
					printField("edition", fmt.Sprintf("%d", r.EditionID))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
