package app

import (
	"fmt"
	"strconv"

	"github.com/blackwell-systems/hardcoverctl/internal/hardcover"
	"github.com/spf13/cobra"
)

var statusNames = map[string]int{
	"want":     hardcover.StatusWantToRead,
	"reading":  hardcover.StatusCurrentlyReading,
	"finished": hardcover.StatusFinished,
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <user-book-id> <want|reading|finished>",
		Short: "Move a book between shelves",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userBookID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user-book id %q", args[0])
			}
			statusID, known := statusNames[args[1]]
			if !known {
				return fmt.Errorf("unknown status %q (want, reading, or finished)", args[1])
			}

			if !client.UpdateStatus(cmd.Context(), userBookID, statusID) {
				return fmt.Errorf("updating status failed")
			}
			ok("Status set to %s.", args[1])
			return nil
		},
	}
}
