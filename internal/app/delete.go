package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <user-book-id>",
		Short: "Remove a book from your shelves entirely",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userBookID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user-book id %q", args[0])
			}

			if !yes {
				fmt.Printf("Remove user-book %d and all its reads? (y/n): ", userBookID)
				var confirm string
				fmt.Scanln(&confirm)
				if !strings.EqualFold(confirm, "y") && !strings.EqualFold(confirm, "yes") {
					warn("Cancelled.")
					return nil
				}
			}

			if !client.DeleteBook(cmd.Context(), userBookID) {
				return fmt.Errorf("deleting user-book %d failed", userBookID)
			}
			ok("Removed user-book %d.", userBookID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
