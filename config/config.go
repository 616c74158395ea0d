package config

import (
	"github.com/DhruvSimform/email-library/internal/logger"
	"github.com/DhruvSimform/email-library/internal/tracing"
)

type AppConfig struct {
	Logger  *logger.Config
	Tracing *tracing.JaegerConfig
}

// LimitsConfig carries the page-size bounds applied to every fetch and the
// attachment ceiling enforced before any download is attempted.
type LimitsConfig struct {
	MinPageSize            int   `env:"EMAIL_MIN_PAGE_SIZE" envDefault:"1"`
	MaxPageSize            int   `env:"EMAIL_MAX_PAGE_SIZE" envDefault:"100"`
	DefaultPageSize        int   `env:"EMAIL_DEFAULT_PAGE_SIZE" envDefault:"10"`
	MaxAttachmentSizeBytes int64 `env:"EMAIL_MAX_ATTACHMENT_SIZE_BYTES" envDefault:"25000000"`
}

type GmailConfig struct {
	// Labels queried when a fetch names no folder. Native Gmail label ids.
	DefaultLabels []string `env:"GMAIL_DEFAULT_LABELS" envDefault:"INBOX" envSeparator:","`
}

type OutlookConfig struct {
	GraphAPIBaseURL string `env:"OUTLOOK_GRAPH_API_BASE_URL" envDefault:"https://graph.microsoft.com/v1.0"`
	RequestTimeout  int    `env:"OUTLOOK_REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
	// Well-known folder names queried when a fetch names no folder.
	DefaultFolders []string `env:"OUTLOOK_DEFAULT_FOLDERS" envDefault:"inbox" envSeparator:","`
}

type IMAPConfig struct {
	Host           string   `env:"IMAP_HOST"`
	Port           int      `env:"IMAP_PORT" envDefault:"993"`
	Username       string   `env:"IMAP_USERNAME"`
	AuthMethod     string   `env:"IMAP_AUTH_METHOD" envDefault:"oauthbearer"`
	RequestTimeout int      `env:"IMAP_REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
	DefaultFolders []string `env:"IMAP_DEFAULT_FOLDERS" envDefault:"INBOX" envSeparator:","`
}
