package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_FromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	contents := "SMTP_SERVER=smtp.example.com\nSMTP_PORT=2525\nSMTP_USERNAME=sender@example.com\nSMTP_PASSWORD=hunter2\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	s, err := loadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com", s.SMTPServer)
	assert.Equal(t, 2525, s.SMTPPort)
	assert.Equal(t, "sender@example.com", s.SMTPUsername)
	assert.Equal(t, "hunter2", s.SMTPPassword)
	assert.True(t, s.SMTPConfigured())
	assert.False(t, s.SlackConfigured())
}

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	s, err := loadSettings(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, 587, s.SMTPPort)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "console", s.LogFormat)
	assert.False(t, s.SMTPConfigured())
}

func TestLoadSettings_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SMTP_SERVER=from-file.example.com\n"), 0o600))

	t.Setenv("SMTP_SERVER", "from-env.example.com")

	s, err := loadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.example.com", s.SMTPServer)
}

func TestWriteEnvFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, writeEnvFile(path, "smtp.example.com", 465, "me@example.com", "secret"))

	s, err := loadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com", s.SMTPServer)
	assert.Equal(t, 465, s.SMTPPort)
	assert.Equal(t, "me@example.com", s.SMTPUsername)
	assert.Equal(t, "secret", s.SMTPPassword)
	assert.True(t, s.SMTPConfigured())
}
