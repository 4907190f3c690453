package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var (
		author string
		page   int
	)

	cmd := &cobra.Command{
		Use:   "search <title>",
		Short: "Search Hardcover for books by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			books := client.SearchBooks(cmd.Context(), title, author, page)
			if len(books) == 0 {
				warn("No results for %q.", title)
				return nil
			}

			for _, b := range books {
				name := "Unknown Author"
				if len(b.Contributions) > 0 && b.Contributions[0].Author != nil {
					name = b.Contributions[0].Author.Name
				}
				fmt.Printf("  %-8d %s — %s\n", b.ID, b.Title, name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "Narrow the search by author name")
	cmd.Flags().IntVar(&page, "page", 1, "Result page")
	return cmd
}
