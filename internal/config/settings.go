package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

// EnvFile holds the SMTP credentials and optional notification channel
// settings, kept out of config.json.
const EnvFile = ".env"

// Settings are the secret/environment-backed settings. Values come from
// environment variables first, then the .env file, then defaults.
type Settings struct {
	SMTPServer   string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	SlackWebhookURL string
	SlackChannel    string

	LogLevel  string
	LogFormat string
}

// LoadSettings reads settings via viper. A missing .env file is fine;
// everything can come from the environment.
func LoadSettings() (*Settings, error) {
	return loadSettings(EnvFile)
}

func loadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	for _, key := range []string{
		"SMTP_SERVER", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD",
		"SLACK_WEBHOOK_URL", "SLACK_CHANNEL", "LOG_LEVEL", "LOG_FORMAT",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// The .env file is optional.
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	return &Settings{
		SMTPServer:      v.GetString("SMTP_SERVER"),
		SMTPPort:        v.GetInt("SMTP_PORT"),
		SMTPUsername:    v.GetString("SMTP_USERNAME"),
		SMTPPassword:    v.GetString("SMTP_PASSWORD"),
		SlackWebhookURL: v.GetString("SLACK_WEBHOOK_URL"),
		SlackChannel:    v.GetString("SLACK_CHANNEL"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       v.GetString("LOG_FORMAT"),
	}, nil
}

// SMTPConfigured reports whether enough is present to attempt a send.
func (s *Settings) SMTPConfigured() bool {
	return s.SMTPServer != "" && s.SMTPUsername != "" && s.SMTPPassword != ""
}

// SlackConfigured reports whether the optional Slack channel is set up.
func (s *Settings) SlackConfigured() bool {
	return s.SlackWebhookURL != ""
}

// WriteEnvFile saves SMTP settings to the .env file, overwriting any
// previous contents.
func WriteEnvFile(server string, port int, username, password string) error {
	return writeEnvFile(EnvFile, server, port, username, password)
}

func writeEnvFile(path, server string, port int, username, password string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	v.Set("SMTP_SERVER", server)
	v.Set("SMTP_PORT", port)
	v.Set("SMTP_USERNAME", username)
	v.Set("SMTP_PASSWORD", password)

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
