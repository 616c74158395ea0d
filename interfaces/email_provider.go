package interfaces

import (
	"context"

	"github.com/DhruvSimform/email-library/config"
	"github.com/DhruvSimform/email-library/internal/enum"
	"github.com/DhruvSimform/email-library/internal/logger"
	"github.com/DhruvSimform/email-library/internal/models"
)

// FetchOptions configures a paginated fetch. Folder and Filter are optional;
// an empty Folder scopes the fetch to the provider's configured default
// folder set, an empty Cursor starts from the first page.
type FetchOptions struct {
	PageSize int
	Cursor   string
	Folder   enum.MailFolder
	Filter   *models.EmailSearchFilter
}

// EmailProvider is the capability contract every adapter satisfies.
//
// Contract rules:
//   - READ-ONLY access only
//   - every exit is a domain model value or a taxonomy error; no vendor
//     response object or vendor error type crosses this boundary
//   - no retries, no caching; a failed call surfaces its error immediately
type EmailProvider interface {
	// SetCredentials installs the access token for the adapter's lifetime.
	SetCredentials(accessToken string) error

	// IsTokenValid re-checks the token against the vendor on every call;
	// the result is never cached.
	IsTokenValid(ctx context.Context) (bool, error)

	// FetchEmails returns one page of message summaries plus the opaque
	// cursor for the next page, empty when no further pages exist.
	FetchEmails(ctx context.Context, opts FetchOptions) ([]models.EmailMessage, string, error)

	// FetchEmailDetail returns the full form of a single message.
	FetchEmailDetail(ctx context.Context, messageID string) (*models.EmailDetail, error)

	// ListFolders returns the standardized folders this adapter can serve.
	ListFolders(ctx context.Context) ([]enum.MailFolder, error)

	// ListAttachments returns attachment metadata without fetching bytes.
	ListAttachments(ctx context.Context, messageID string) ([]models.Attachment, error)

	// DownloadAttachment returns the raw attachment bytes.
	DownloadAttachment(ctx context.Context, messageID, attachmentID string) ([]byte, error)
}

// ProviderFactory builds a fresh adapter; the registry owns factories, not
// instances.
type ProviderFactory func(cfg *config.Config, log logger.Logger) EmailProvider
