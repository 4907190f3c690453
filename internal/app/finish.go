package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newFinishCmd() *cobra.Command {
	var (
		editionID int
		pages     int
		page      int
		rating    float64
	)

	cmd := &cobra.Command{
		Use:   "finish <user-book-id>",
		Short: "Mark a book finished and close out its read",
		Long: `Mark a book finished. The book moves to the finished shelf and its
latest read gets today's finish date; if no read exists, one is created.

Examples:
  hardcoverctl finish 12345
  hardcoverctl finish 12345 --rating 4.5
  hardcoverctl finish 12345 --pages 320`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userBookID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user-book id %q", args[0])
			}

			intPtr := func(name string, v *int) *int {
				if cmd.Flags().Changed(name) {
					return v
				}
				return nil
			}
			var ratingPtr *float64
			if cmd.Flags().Changed("rating") {
				ratingPtr = &rating
			}

			done := client.FinishBook(cmd.Context(), userBookID,
				intPtr("edition", &editionID), intPtr("pages", &pages), intPtr("page", &page), ratingPtr)
			if !done {
				return fmt.Errorf("finishing book failed")
			}
			ok("Finished.")
			return nil
		},
	}

	cmd.Flags().IntVar(&editionID, "edition", 0, "Edition the finished read belongs to")
	cmd.Flags().IntVar(&pages, "pages", 0, "Total pages of the edition")
	cmd.Flags().IntVar(&page, "page", 0, "Last page reached, used when total pages is unknown")
	cmd.Flags().Float64Var(&rating, "rating", 0, "Rating to set while finishing")
	return cmd
}
