package services

import (
	"context"

	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/DhruvSimform/email-library/config"
	"github.com/DhruvSimform/email-library/interfaces"
	"github.com/DhruvSimform/email-library/internal/enum"
	er "github.com/DhruvSimform/email-library/internal/errors"
	"github.com/DhruvSimform/email-library/internal/logger"
	"github.com/DhruvSimform/email-library/internal/models"
	"github.com/DhruvSimform/email-library/internal/tracing"
)

// EmailReader is the single entry point for callers. It resolves an adapter
// through the registry, installs the credential, and delegates every call.
// It holds no mutable session state beyond the one adapter instance; it is
// not a cache and does not retry.
type EmailReader struct {
	cfg      *config.Config
	log      logger.Logger
	provider interfaces.EmailProvider
	guard    *AttachmentGuard
}

// NewEmailReader resolves the named provider from the default registry and
// installs the access token. An unknown name fails with
// ErrUnsupportedProvider before any network call.
func NewEmailReader(cfg *config.Config, log logger.Logger, providerName, accessToken string) (*EmailReader, error) {
	return NewEmailReaderWithRegistry(DefaultRegistry(cfg, log), cfg, log, providerName, accessToken)
}

func NewEmailReaderWithRegistry(registry *Registry, cfg *config.Config, log logger.Logger, providerName, accessToken string) (*EmailReader, error) {
	provider, err := registry.Resolve(providerName)
	if err != nil {
		log.Errorf("unsupported email provider: %s", providerName)
		return nil, err
	}
	if err := provider.SetCredentials(accessToken); err != nil {
		return nil, err
	}
	log.Debugf("email reader initialized with provider: %s", providerName)

	return &EmailReader{
		cfg:      cfg,
		log:      log,
		provider: provider,
		guard:    NewAttachmentGuard(cfg.Limits),
	}, nil
}

// FetchEmails returns one page of summaries plus the cursor for the next
// page. The folder and filter are validated before delegation; an invalid
// request never reaches the adapter. Page size is clamped to the configured
// bounds.
func (r *EmailReader) FetchEmails(ctx context.Context, opts interfaces.FetchOptions) ([]models.EmailMessage, string, error) {
	span, ctx := tracing.StartTracerSpan(ctx, "EmailReader.FetchEmails")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogFields(tracingLog.Int("page_size", opts.PageSize), tracingLog.String("folder", opts.Folder.String()))
	tracing.LogObjectAsJson(span, "filter", opts.Filter)

	if opts.Folder != "" {
		if _, ok := enum.DecodeMailFolder(opts.Folder.String()); !ok {
			err := er.InvalidFilter("unknown folder " + opts.Folder.String())
			tracing.TraceErr(span, err)
			return nil, "", err
		}
	}
	if err := opts.Filter.Validate(); err != nil {
		tracing.TraceErr(span, err)
		return nil, "", err
	}
	opts.PageSize = r.clampPageSize(opts.PageSize)

	emails, next, err := r.provider.FetchEmails(ctx, opts)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, "", err
	}
	span.LogFields(tracingLog.Int("result_count", len(emails)))
	return emails, next, nil
}

func (r *EmailReader) FetchEmailDetail(ctx context.Context, messageID string) (*models.EmailDetail, error) {
	span, ctx := tracing.StartTracerSpan(ctx, "EmailReader.FetchEmailDetail")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("message.id", messageID)

	detail, err := r.provider.FetchEmailDetail(ctx, messageID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return detail, nil
}

func (r *EmailReader) ListFolders(ctx context.Context) ([]enum.MailFolder, error) {
	span, ctx := tracing.StartTracerSpan(ctx, "EmailReader.ListFolders")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	folders, err := r.provider.ListFolders(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return folders, nil
}

func (r *EmailReader) ListAttachments(ctx context.Context, messageID string) ([]models.Attachment, error) {
	span, ctx := tracing.StartTracerSpan(ctx, "EmailReader.ListAttachments")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("message.id", messageID)

	attachments, err := r.provider.ListAttachments(ctx, messageID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return attachments, nil
}

// DownloadAttachment looks the attachment up by id and refuses the download
// before any network call when its known size exceeds the ceiling.
func (r *EmailReader) DownloadAttachment(ctx context.Context, messageID, attachmentID string) ([]byte, error) {
	span, ctx := tracing.StartTracerSpan(ctx, "EmailReader.DownloadAttachment")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("message.id", messageID)
	span.SetTag("attachment.id", attachmentID)

	attachments, err := r.provider.ListAttachments(ctx, messageID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	var target *models.Attachment
	for i := range attachments {
		if attachments[i].ID == attachmentID {
			target = &attachments[i]
			break
		}
	}
	if target == nil {
		err := errors.WithMessagef(er.ErrAttachment, "attachment %q not found on message %q", attachmentID, messageID)
		tracing.TraceErr(span, err)
		return nil, err
	}
	if err := r.guard.Check(*target); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	content, err := r.provider.DownloadAttachment(ctx, messageID, attachmentID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return content, nil
}

// IsTokenValid re-checks the credential against the vendor; the result is
// never cached across calls.
func (r *EmailReader) IsTokenValid(ctx context.Context) (bool, error) {
	span, ctx := tracing.StartTracerSpan(ctx, "EmailReader.IsTokenValid")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	valid, err := r.provider.IsTokenValid(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		return false, err
	}
	return valid, nil
}

func (r *EmailReader) clampPageSize(pageSize int) int {
	limits := r.cfg.Limits
	if pageSize <= 0 {
		return limits.DefaultPageSize
	}
	if pageSize < limits.MinPageSize {
		return limits.MinPageSize
	}
	if pageSize > limits.MaxPageSize {
		return limits.MaxPageSize
	}
	return pageSize
}
