package notify

import (
	"fmt"

	"github.com/auroraeye/internal/alert"
	"github.com/auroraeye/internal/models"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// SlackNotifier posts the digest to a Slack incoming webhook. The
// channel is optional; when no webhook URL is configured the notifier
// is simply not constructed.
type SlackNotifier struct {
	webhookURL string
	channel    string
	logger     *zap.Logger

	// post seam for tests; defaults to the Slack API.
	post func(url string, msg *slack.WebhookMessage) error
}

// NewSlackNotifier creates a webhook notifier.
func NewSlackNotifier(webhookURL, channel string, logger *zap.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		channel:    channel,
		logger:     logger,
		post:       slack.PostWebhook,
	}
}

// Notify posts one attachment per qualifying location.
func (s *SlackNotifier) Notify(results []models.CheckResult) error {
	attachments := make([]slack.Attachment, 0, len(results))
	for _, r := range results {
		attachments = append(attachments, slack.Attachment{
			Color: bandColor(alert.Band(r.KP)),
			Title: fmt.Sprintf("Aurora activity at %s", r.Location.Name()),
			Fields: []slack.AttachmentField{
				{Title: "Coordinates", Value: r.Location.Coordinates(), Short: true},
				{Title: "KP Index", Value: fmt.Sprintf("%g", r.KP), Short: true},
			},
			Footer: "AuroraEye",
		})
	}

	msg := &slack.WebhookMessage{
		Channel:     s.channel,
		Username:    "AuroraEye",
		Text:        AlertSubject(results),
		Attachments: attachments,
	}

	if err := s.post(s.webhookURL, msg); err != nil {
		return fmt.Errorf("post slack message: %w", err)
	}

	s.logger.Info("slack notification sent", zap.Int("locations", len(results)))
	return nil
}

func bandColor(v alert.Visibility) string {
	switch v {
	case alert.VisibilityHigh:
		return "#36a64f"
	case alert.VisibilityModerate:
		return "#ffcc00"
	default:
		return "#808080"
	}
}
