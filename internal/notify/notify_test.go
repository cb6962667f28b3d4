package notify

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/auroraeye/internal/config"
	"github.com/auroraeye/internal/models"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

var sampleResults = []models.CheckResult{
	{Location: models.Location{City: "Tromsø", Country: "Norway", Latitude: 69.6496, Longitude: 18.9553}, KP: 6.33},
	{Location: models.Location{City: "Fairbanks", Country: "USA", Latitude: 64.8378, Longitude: -147.7164}, KP: 5},
}

func TestAlertSubject(t *testing.T) {
	assert.Equal(t, "Aurora Alert: Visibility at Tromsø", AlertSubject(sampleResults[:1]))
	assert.Equal(t, "Aurora Alert: Visibility at 2 locations", AlertSubject(sampleResults))
}

func TestAlertBodies(t *testing.T) {
	plain, html, err := AlertBodies(sampleResults)
	require.NoError(t, err)

	assert.Contains(t, plain, "Tromsø, Norway")
	assert.Contains(t, plain, "KP Index: 6.33")
	assert.Contains(t, plain, "Fairbanks, USA")
	assert.Contains(t, plain, "KP Index: 5")

	assert.Contains(t, html, "<html>")
	assert.Contains(t, html, "Tromsø, Norway")
	assert.Contains(t, html, "6.33")
}

func TestTestBodies(t *testing.T) {
	locs := []models.Location{sampleResults[0].Location}
	plain, html, err := TestBodies(locs, "KP >= 5.0")
	require.NoError(t, err)

	assert.Contains(t, plain, "Tromsø, Norway")
	assert.Contains(t, plain, "KP >= 5.0")
	assert.Contains(t, html, "KP &gt;= 5.0")
}

func TestMailer_ConsoleFallbackWhenUnconfigured(t *testing.T) {
	m := NewMailer(&config.Settings{SMTPPort: 587}, zap.NewNop())
	var out bytes.Buffer
	m.SetOutput(&out)

	err := m.Send([]string{"a@example.com"}, "Test Subject", "test body", "")
	require.NoError(t, err)

	assert.Contains(t, out.String(), "SMTP credentials not configured")
	assert.Contains(t, out.String(), "Test Subject")
	assert.Contains(t, out.String(), "test body")
}

func TestMailer_SendsDigest(t *testing.T) {
	settings := &config.Settings{
		SMTPServer:   "smtp.example.com",
		SMTPPort:     587,
		SMTPUsername: "sender@example.com",
		SMTPPassword: "hunter2",
	}
	m := NewMailer(settings, zap.NewNop())
	m.SetOutput(&bytes.Buffer{})

	var sent *gomail.Message
	m.send = func(msg *gomail.Message) error {
		sent = msg
		return nil
	}

	err := m.Send([]string{"a@example.com", "b@example.com"}, "Aurora Alert", "plain", "<html></html>")
	require.NoError(t, err)
	require.NotNil(t, sent)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, sent.GetHeader("To"))
	assert.Equal(t, []string{"Aurora Alert"}, sent.GetHeader("Subject"))
	assert.Equal(t, []string{"sender@example.com"}, sent.GetHeader("From"))
}

func TestMailer_SMTPFailureIsReported(t *testing.T) {
	settings := &config.Settings{
		SMTPServer:   "smtp.example.com",
		SMTPPort:     587,
		SMTPUsername: "sender@example.com",
		SMTPPassword: "hunter2",
	}
	m := NewMailer(settings, zap.NewNop())
	m.SetOutput(&bytes.Buffer{})
	m.send = func(*gomail.Message) error {
		return errors.New("auth failed")
	}

	err := m.Send([]string{"a@example.com"}, "s", "b", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth failed")
}

func TestSlackNotifier_PostsAttachments(t *testing.T) {
	n := NewSlackNotifier("https://hooks.slack.example/T/B/X", "#aurora", zap.NewNop())

	var posted *slack.WebhookMessage
	n.post = func(url string, msg *slack.WebhookMessage) error {
		assert.Equal(t, "https://hooks.slack.example/T/B/X", url)
		posted = msg
		return nil
	}

	require.NoError(t, n.Notify(sampleResults))
	require.NotNil(t, posted)
	assert.Equal(t, "#aurora", posted.Channel)
	require.Len(t, posted.Attachments, 2)
	assert.True(t, strings.Contains(posted.Attachments[0].Title, "Tromsø"))
	assert.Equal(t, "#36a64f", posted.Attachments[0].Color)
}
