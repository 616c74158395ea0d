package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitConfig_Defaults(t *testing.T) {
	// Act
	cfg, err := InitConfig()

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 1, cfg.Limits.MinPageSize)
	assert.Equal(t, 100, cfg.Limits.MaxPageSize)
	assert.Equal(t, 10, cfg.Limits.DefaultPageSize)
	assert.Equal(t, int64(25_000_000), cfg.Limits.MaxAttachmentSizeBytes)
	assert.Equal(t, []string{"INBOX"}, cfg.GmailConfig.DefaultLabels)
	assert.Equal(t, "https://graph.microsoft.com/v1.0", cfg.OutlookConfig.GraphAPIBaseURL)
	assert.Equal(t, 993, cfg.IMAPConfig.Port)
	assert.Equal(t, "oauthbearer", cfg.IMAPConfig.AuthMethod)
}

func TestInitConfig_EnvOverrides(t *testing.T) {
	os.Setenv("EMAIL_MAX_PAGE_SIZE", "50")
	os.Setenv("GMAIL_DEFAULT_LABELS", "INBOX,STARRED")
	defer os.Unsetenv("EMAIL_MAX_PAGE_SIZE")
	defer os.Unsetenv("GMAIL_DEFAULT_LABELS")

	// Act
	cfg, err := InitConfig()

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 50, cfg.Limits.MaxPageSize)
	assert.Equal(t, []string{"INBOX", "STARRED"}, cfg.GmailConfig.DefaultLabels)
}
