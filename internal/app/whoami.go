package app

import (
	"github.com/blackwell-systems/hardcoverctl/internal/config"
	"github.com/spf13/cobra"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated Hardcover account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := client.RefreshUsername(cmd.Context())
			if name == "" {
				warn("Could not resolve the account. Check your API key.")
				return nil
			}

			header("@%s", name)
			if name != cfg.Hardcover.Username {
				cfg.Hardcover.Username = name
				if err := config.Save(cfg); err != nil {
					warn("Could not save username to config: %v", err)
				}
			}
			return nil
		},
	}
}
