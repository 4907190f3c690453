package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	var editionID int

	cmd := &cobra.Command{
		Use:   "add <book-id>",
		Short: "Add a book to your currently-reading shelf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid book id %q", args[0])
			}

			var edPtr *int
			if cmd.Flags().Changed("edition") {
				edPtr = &editionID
			}

			if !client.AddBook(cmd.Context(), bookID, edPtr) {
				return fmt.Errorf("adding book %d failed", bookID)
			}
			ok("Added book %d to currently reading.", bookID)
			return nil
		},
	}

	cmd.Flags().IntVar(&editionID, "edition", 0, "Pin a specific edition")
	return cmd
}
