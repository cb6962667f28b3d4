package commands

import (
	"fmt"

	"github.com/auroraeye/internal/alert"
	"github.com/auroraeye/internal/aurora"
	"github.com/auroraeye/internal/config"
	"github.com/auroraeye/internal/models"
	"github.com/auroraeye/internal/monitor"
	"github.com/auroraeye/internal/notify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewCheckCommand creates the command that polls every configured
// location and sends the digest when any location qualifies.
func NewCheckCommand() *cobra.Command {
	var saveOutput string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check aurora visibility at all locations and notify",
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
			fmt.Fprintf(out, "Checking aurora visibility for %d location(s)...\n", len(cfg.Locations))
			fmt.Fprintf(out, "Notification threshold: %s (%s)\n\n", cfg.Threshold, alert.Describe(cfg.Threshold))

			checker := monitor.NewChecker(aurora.NewClient(aurora.DefaultTimeout, log), log)
			checker.SetOutput(out)
			if saveOutput != "" {
				checker.SetDump(aurora.NewDumpWriter(saveOutput, log))
			}

			qualifying := checker.Run(cmd.Context(), cfg.Locations, cfg.Threshold)
			if len(qualifying) == 0 {
				fmt.Fprintf(out, "\nNo locations meet notification threshold (%s)\n", alert.Describe(cfg.Threshold))
				return nil
			}

			fmt.Fprintf(out, "\nSending notification to %d recipient(s)...\n", len(cfg.Emails))
			notifyAll(cmd, settings, log, cfg, qualifying)
			return nil
		},
	}

	cmd.Flags().StringVar(&saveOutput, "save-output", "", "Append raw API responses to this file")
	return cmd
}

// notifyAll delivers the digest over every configured channel. Delivery
// failures are reported but never fail the check run.
func notifyAll(cmd *cobra.Command, settings *config.Settings, log *zap.Logger, cfg *config.Config, qualifying []models.CheckResult) {
	out := cmd.OutOrStdout()

	plain, html, err := notify.AlertBodies(qualifying)
	if err != nil {
		fmt.Fprintf(out, "Warning: failed to format notification: %v\n", err)
		return
	}
	subject := notify.AlertSubject(qualifying)

	mailer := notify.NewMailer(settings, log)
	mailer.SetOutput(out)
	if err := mailer.Send(cfg.Emails, subject, plain, html); err != nil {
		log.Error("email notification failed", zap.Error(err))
		fmt.Fprintf(out, "Warning: Failed to send email: %v\n", err)
	}

	if settings.SlackConfigured() {
		slack := notify.NewSlackNotifier(settings.SlackWebhookURL, settings.SlackChannel, log)
		if err := slack.Notify(qualifying); err != nil {
			log.Warn("slack notification failed", zap.Error(err))
			fmt.Fprintf(out, "Warning: Failed to post to Slack: %v\n", err)
		}
	}

	fmt.Fprintf(out, "Notification sent for %d location(s)!\n", len(qualifying))
}
