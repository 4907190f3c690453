package app

import (
	"fmt"
	"strconv"

	"github.com/blackwell-systems/hardcoverctl/internal/hardcover"
	"github.com/spf13/cobra"
)

func newRateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rate <user-book-id> <rating|clear>",
		Short: "Rate a book on a 0.5-5 star scale, or clear the rating",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userBookID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user-book id %q", args[0])
			}

			var rating *float64
			if args[1] != "clear" {
				r, err := strconv.ParseFloat(args[1], 64)
				if err != nil {
					return fmt.Errorf("invalid rating %q", args[1])
				}
				r = hardcover.ClampRating(r)
				rating = &r
			}

			if !client.UpdateRating(cmd.Context(), userBookID, rating) {
				return fmt.Errorf("updating rating failed")
			}
			if rating == nil {
				ok("Rating cleared.")
			} else {
				ok("Rated %.1f stars.", *rating)
			}
			return nil
		},
	}
}
