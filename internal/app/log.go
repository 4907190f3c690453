package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	var editionID int

	cmd := &cobra.Command{
		Use:   "log <user-book-id> <page>",
		Short: "Log a progress update for a book you are reading",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userBookID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user-book id %q", args[0])
			}
			page, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid page %q", args[1])
			}

			var edPtr *int
			if cmd.Flags().Changed("edition") {
				edPtr = &editionID
			}

			if !client.InsertRead(cmd.Context(), userBookID, page, edPtr) {
				return fmt.Errorf("logging progress failed")
			}
			ok("Logged page %d.", page)
			return nil
		},
	}

	cmd.Flags().IntVar(&editionID, "edition", 0, "Log against a specific edition")
	return cmd
}
