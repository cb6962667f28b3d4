package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/auroraeye/internal/config"
	"github.com/spf13/cobra"
)

// NewListCommand creates the read-only configuration display command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			out := cmd.OutOrStdout()
			store := config.NewStore("")
			if !store.Exists() {
				fmt.Fprintln(out, "No configuration file found.")
				fmt.Fprintln(out, "Run 'auroraeye configure' to create one.")
				return nil
			}

			cfg, err := loadConfig(store)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "\n=== Current Configuration ===")

			fmt.Fprintf(out, "\nLocations (%d):\n", len(cfg.Locations))
			w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "  #\tCITY\tCOUNTRY\tCOORDINATES")
			for i, loc := range cfg.Locations {
				fmt.Fprintf(w, "  %d\t%s\t%s\t%s\n", i+1, loc.City, loc.Country, loc.Coordinates())
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(out, "\nEmail Recipients (%d):\n", len(cfg.Emails))
			for i, email := range cfg.Emails {
				fmt.Fprintf(out, "  %d. %s\n", i+1, email)
			}

			fmt.Fprintf(out, "\nNotification Threshold: %s\n", cfg.Threshold)

			if settings.SMTPConfigured() {
				fmt.Fprintln(out, "\nSMTP Configuration: Configured")
			} else if fileExists(config.EnvFile) {
				fmt.Fprintln(out, "\nSMTP Configuration: Incomplete (.env file found but missing settings)")
			} else {
				fmt.Fprintln(out, "\nSMTP Configuration: Not configured")
			}
			if settings.SlackConfigured() {
				fmt.Fprintln(out, "Slack Notifications: Configured")
			}

			return nil
		},
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
