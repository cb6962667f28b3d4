package commands

import (
	"fmt"
	"strings"

	"github.com/auroraeye/internal/alert"
	"github.com/auroraeye/internal/config"
	"github.com/auroraeye/internal/notify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewTestEmailCommand creates the command that sends a fixed test
// message to verify the SMTP configuration.
func NewTestEmailCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test-email",
		Short: "Send a test email to verify SMTP configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			cfg, err := loadConfig(config.NewStore(""))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Testing email configuration...")
			fmt.Fprintf(out, "Sending test email to: %s\n", strings.Join(cfg.Emails, ", "))

			plain, html, err := notify.TestBodies(cfg.Locations, alert.Describe(cfg.Threshold))
			if err != nil {
				return err
			}

			mailer := notify.NewMailer(settings, log)
			mailer.SetOutput(out)
			if err := mailer.Send(cfg.Emails, "AuroraEye - Email Test", plain, html); err != nil {
				log.Error("test email failed", zap.Error(err))
				fmt.Fprintf(out, "Warning: Failed to send email: %v\n", err)
				return nil
			}

			fmt.Fprintf(out, "\nTest email sent to %d recipient(s)! Check your inbox.\n", len(cfg.Emails))
			return nil
		},
	}
}
