package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newEditionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "editions <book-id>",
		Short: "List a book's editions, or switch the one you track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid book id %q", args[0])
			}

			editions := client.FetchEditions(cmd.Context(), bookID)
			if len(editions) == 0 {
				warn("No editions found for book %d.", bookID)
				return nil
			}

			for _, e := range editions {
				line := fmt.Sprintf("  %-8d %s", e.ID, e.Title)
				if e.Pages > 0 {
					line += fmt.Sprintf("  (%d pages)", e.Pages)
				}
				if e.Publisher != nil && e.Publisher.Name != "" {
					line += "  " + e.Publisher.Name
				}
				if isbn := e.ISBN13; isbn != "" {
					line += "  " + isbn
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.AddCommand(newEditionSwitchCmd())
	return cmd
}

func newEditionSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <user-book-id> <edition-id>",
		Short: "Track a different edition of a book on your shelf",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userBookID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user-book id %q", args[0])
			}
			editionID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid edition id %q", args[1])
			}

			if !client.UpdateEdition(cmd.Context(), userBookID, editionID) {
				return fmt.Errorf("switching edition failed")
			}
			ok("Now tracking edition %d.", editionID)
			return nil
		},
	}
}
