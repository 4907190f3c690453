package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/blackwell-systems/hardcoverctl/internal/config"
	"github.com/blackwell-systems/hardcoverctl/internal/cover"
	"github.com/blackwell-systems/hardcoverctl/internal/hardcover"
	"github.com/blackwell-systems/hardcoverctl/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	client *hardcover.Client

	flagNoColor bool
	flagVerbose bool
	flagConfig  string

	appVersion = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "hardcoverctl",
	Short: "Track your Hardcover.app reading from the command line",
	Long: `hardcoverctl talks to the Hardcover.app GraphQL API to show what you
are reading, reconcile reading goals, surface upcoming releases from
your want-to-read list, and log progress.

Set HARDCOVER_API_KEY (from hardcover.app/account/api) before running.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// SetVersion records the version string baked in at build time.
func SetVersion(v string) {
	appVersion = v
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/hardcoverctl/config.yml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColorFromEnv(flagNoColor)

		if flagConfig != "" {
			os.Setenv("HARDCOVERCTL_CONFIG", flagConfig)
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logLevel := slog.LevelWarn
		if flagVerbose {
			logLevel = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

		covers := cover.NewFetcher(logger)
		client = hardcover.New(cfg.Hardcover.APIKey, cfg.Hardcover.Endpoint, hardcover.Options{
			SelfHealGoals: cfg.Goals.SelfHeal,
			CountRereads:  cfg.Goals.CountRereads,
		}, covers, logger)

		if cmd.Name() != "version" && !client.Authenticated() {
			keyEnv := cfg.Hardcover.APIKeyEnv
			if keyEnv == "" {
				keyEnv = "HARDCOVER_API_KEY"
			}
			return fmt.Errorf("no API key found — set %s or HARDCOVERCTL_API_KEY", keyEnv)
		}
		return nil
	}

	// Register sub-commands.
	rootCmd.AddCommand(
		newReadingCmd(),
		newGoalsCmd(),
		newReleasesCmd(),
		newHistoryCmd(),
		newStatsCmd(),
		newSearchCmd(),
		newEditionsCmd(),
		newAddCmd(),
		newLogCmd(),
		newStatusCmd(),
		newRateCmd(),
		newFinishCmd(),
		newDeleteCmd(),
		newWhoamiCmd(),
		newVersionCmd(),
	)
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}

func printField(label, value string) {
	fmt.Printf("  %-14s %s\n", color.CyanString(label+":"), value)
}
