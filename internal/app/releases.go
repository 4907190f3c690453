package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReleasesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "releases",
		Short: "Show upcoming releases from your want-to-read list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			releases := client.FetchUpcomingReleases(cmd.Context(), limit)
			if len(releases) == 0 {
				warn("No upcoming releases on your want-to-read list.")
				return nil
			}

			for _, r := range releases {
				fmt.Printf("  %s  %s — %s (edition %d)\n",
					r.ReleaseDate.Format("2006-01-02"), r.Title, r.Author, r.EditionID)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of releases to show")
	return cmd
}
