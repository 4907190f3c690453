package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newGoalsCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Show your active reading goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			goals := client.FetchReadingGoals(cmd.Context())
			if len(goals) == 0 {
				warn("No active goals.")
				return nil
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(goals)
			}

			for i, g := range goals {
				if i > 0 {
					fmt.Println()
				}
				title := g.Description
				if title == "" {
					title = fmt.Sprintf("Goal %d", g.ID)
				}
				header("%s", title)
				printField("target", fmt.Sprintf("%d %ss", g.Goal, g.Metric))
				printField("progress", fmt.Sprintf("%d (%.0f%%)", g.Progress, g.PercentComplete*100))
				if g.StartDate != "" || g.EndDate != "" {
					printField("window", fmt.Sprintf("%s → %s", g.StartDate, g.EndDate))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
