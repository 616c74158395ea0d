package gmail

import (
	"context"
	"encoding/base64"
	"errors"
	"net"
	"net/http"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"golang.org/x/oauth2"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/DhruvSimform/email-library/config"
	"github.com/DhruvSimform/email-library/interfaces"
	"github.com/DhruvSimform/email-library/internal/cursor"
	"github.com/DhruvSimform/email-library/internal/enum"
	er "github.com/DhruvSimform/email-library/internal/errors"
	"github.com/DhruvSimform/email-library/internal/logger"
	"github.com/DhruvSimform/email-library/internal/models"
	"github.com/DhruvSimform/email-library/internal/tracing"
)

const gmailUserID = "me"

// GmailProvider is the read-only Gmail adapter. It owns its credential and
// the Gmail API client handle; neither crosses the provider contract.
type GmailProvider struct {
	cfg        *config.Config
	log        logger.Logger
	service    *gmailapi.Service
	credential *models.Credential
}

func NewGmailProvider(cfg *config.Config, log logger.Logger) interfaces.EmailProvider {
	return &GmailProvider{
		cfg: cfg,
		log: log,
	}
}

// SetCredentials installs the OAuth access token and builds the Gmail API
// client around a static token source. The token is never refreshed here.
func (s *GmailProvider) SetCredentials(accessToken string) error {
	if accessToken == "" {
		return er.InvalidAccessToken("access token must be a non-empty string")
	}

	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	service, err := gmailapi.NewService(context.Background(),
		option.WithTokenSource(tokenSource),
		option.WithScopes(gmailapi.GmailReadonlyScope),
	)
	if err != nil {
		return er.InvalidAccessToken("unable to build gmail client")
	}

	s.service = service
	s.credential = &models.Credential{Provider: enum.EmailProviderGmail, AccessToken: accessToken}
	s.log.Debugf("gmail credentials installed: %s", s.credential.Redacted())
	return nil
}

// IsTokenValid probes the profile endpoint. A 401 means the token is
// invalid; any other fault is surfaced as a taxonomy error.
func (s *GmailProvider) IsTokenValid(ctx context.Context) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "GmailProvider.IsTokenValid")
	defer span.Finish()
	tracing.SetDefaultProviderSpanTags(ctx, span, enum.EmailProviderGmail.String())

	if s.service == nil {
		return false, er.InvalidAccessToken("credentials not set")
	}

	_, err := s.service.Users.GetProfile(gmailUserID).Context(ctx).Do()
	if err != nil {
		if statusCode(err) == http.StatusUnauthorized {
			return false, nil
		}
		mapped := s.mapError("users.getProfile", err)
		tracing.TraceErr(span, mapped)
		return false, mapped
	}
	return true, nil
}

func (s *GmailProvider) FetchEmails(ctx context.Context, opts interfaces.FetchOptions) ([]models.EmailMessage, string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "GmailProvider.FetchEmails")
	defer span.Finish()
	tracing.SetDefaultProviderSpanTags(ctx, span, enum.EmailProviderGmail.String())
	span.LogFields(tracingLog.Int("page_size", opts.PageSize))

	if s.service == nil {
		return nil, "", er.InvalidAccessToken("credentials not set")
	}

	labels, err := s.resolveLabels(opts.Folder)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, "", err
	}

	pageToken, err := cursor.Decode(enum.EmailProviderGmail, opts.Cursor)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, "", err
	}

	call := s.service.Users.Messages.List(gmailUserID).
		MaxResults(int64(opts.PageSize)).
		Context(ctx)
	if len(labels) > 0 {
		call = call.LabelIds(labels...)
	}
	if query := BuildQuery(orEmptyFilter(opts.Filter)); query != "" {
		span.LogFields(tracingLog.String("query", query))
		call = call.Q(query)
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	response, err := call.Do()
	if err != nil {
		mapped := s.mapError("messages.list", err)
		tracing.TraceErr(span, mapped)
		return nil, "", mapped
	}

	emails := make([]models.EmailMessage, 0, len(response.Messages))
	for _, stub := range response.Messages {
		raw, err := s.service.Users.Messages.Get(gmailUserID, stub.Id).
			Format("full").
			Context(ctx).
			Do()
		if err != nil {
			mapped := s.mapError("messages.get", err)
			tracing.TraceErr(span, mapped)
			return nil, "", mapped
		}
		emails = append(emails, toEmailMessage(raw, opts.Folder))
	}

	span.LogFields(tracingLog.Int("result_count", len(emails)))
	return emails, cursor.Encode(enum.EmailProviderGmail, response.NextPageToken), nil
}

func (s *GmailProvider) FetchEmailDetail(ctx context.Context, messageID string) (*models.EmailDetail, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "GmailProvider.FetchEmailDetail")
	defer span.Finish()
	tracing.SetDefaultProviderSpanTags(ctx, span, enum.EmailProviderGmail.String())
	span.SetTag("message.id", messageID)

	if s.service == nil {
		return nil, er.InvalidAccessToken("credentials not set")
	}

	raw, err := s.service.Users.Messages.Get(gmailUserID, messageID).
		Format("full").
		Context(ctx).
		Do()
	if err != nil {
		mapped := s.mapError("messages.get", err)
		tracing.TraceErr(span, mapped)
		return nil, mapped
	}

	detail := toEmailDetail(raw)
	return &detail, nil
}

func (s *GmailProvider) ListFolders(ctx context.Context) ([]enum.MailFolder, error) {
	return SupportedFolders(), nil
}

func (s *GmailProvider) ListAttachments(ctx context.Context, messageID string) ([]models.Attachment, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "GmailProvider.ListAttachments")
	defer span.Finish()
	tracing.SetDefaultProviderSpanTags(ctx, span, enum.EmailProviderGmail.String())
	span.SetTag("message.id", messageID)

	if s.service == nil {
		return nil, er.InvalidAccessToken("credentials not set")
	}

	raw, err := s.service.Users.Messages.Get(gmailUserID, messageID).
		Format("full").
		Context(ctx).
		Do()
	if err != nil {
		mapped := s.mapError("messages.get", err)
		tracing.TraceErr(span, mapped)
		return nil, mapped
	}

	return extractAttachments(raw), nil
}

func (s *GmailProvider) DownloadAttachment(ctx context.Context, messageID, attachmentID string) ([]byte, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "GmailProvider.DownloadAttachment")
	defer span.Finish()
	tracing.SetDefaultProviderSpanTags(ctx, span, enum.EmailProviderGmail.String())
	span.SetTag("message.id", messageID)
	span.SetTag("attachment.id", attachmentID)

	if s.service == nil {
		return nil, er.InvalidAccessToken("credentials not set")
	}

	attachment, err := s.service.Users.Messages.Attachments.Get(gmailUserID, messageID, attachmentID).
		Context(ctx).
		Do()
	if err != nil {
		mapped := s.mapError("attachments.get", err)
		tracing.TraceErr(span, mapped)
		return nil, mapped
	}
	if attachment.Data == "" {
		err := er.GmailAPI(errors.New("attachment data missing"))
		tracing.TraceErr(span, err)
		return nil, err
	}

	content, err := base64.URLEncoding.DecodeString(attachment.Data)
	if err != nil {
		mapped := er.GmailAPI(err)
		tracing.TraceErr(span, mapped)
		return nil, mapped
	}
	return content, nil
}

// resolveLabels maps the requested folder to its Gmail label, falling back
// to the configured default label set for an unscoped fetch.
func (s *GmailProvider) resolveLabels(folder enum.MailFolder) ([]string, error) {
	if folder == "" {
		return s.cfg.GmailConfig.DefaultLabels, nil
	}
	label, ok := ToNativeLabel(folder)
	if !ok {
		return nil, er.GmailAPI(errors.New("folder " + folder.String() + " is not supported by gmail"))
	}
	return []string{label}, nil
}

// mapError translates every vendor fault into the taxonomy: 401 → invalid
// token, timeouts → network timeout, everything else → gmail API error.
func (s *GmailProvider) mapError(op string, err error) error {
	s.log.Errorf("gmail %s failed: %v", op, err)
	if statusCode(err) == http.StatusUnauthorized {
		return er.InvalidAccessToken("access token expired")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return er.NetworkTimeout(op)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return er.NetworkTimeout(op)
	}
	return er.GmailAPI(err)
}

func statusCode(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

func orEmptyFilter(filter *models.EmailSearchFilter) *models.EmailSearchFilter {
	if filter == nil {
		return &models.EmailSearchFilter{}
	}
	return filter
}
