package outlook

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"

	"github.com/DhruvSimform/email-library/config"
	"github.com/DhruvSimform/email-library/interfaces"
	"github.com/DhruvSimform/email-library/internal/cursor"
	"github.com/DhruvSimform/email-library/internal/enum"
	er "github.com/DhruvSimform/email-library/internal/errors"
	"github.com/DhruvSimform/email-library/internal/logger"
	"github.com/DhruvSimform/email-library/internal/models"
	"github.com/DhruvSimform/email-library/internal/tracing"
)

const (
	messageSelectFields = "id,subject,from,receivedDateTime,bodyPreview,isRead,hasAttachments,inferenceClassification"
	detailSelectFields  = "id,subject,from,toRecipients,ccRecipients,bccRecipients,receivedDateTime,body,bodyPreview,attachments"
	attachmentExpand    = "attachments($select=id,name,size,contentType)"
)

// OutlookProvider is the read-only Outlook adapter speaking to Microsoft
// Graph over plain HTTP. The Graph pagination nextLink is carried opaquely
// inside the layer cursor and replayed as-is.
type OutlookProvider struct {
	cfg        *config.Config
	log        logger.Logger
	client     *http.Client
	credential *models.Credential
}

func NewOutlookProvider(cfg *config.Config, log logger.Logger) interfaces.EmailProvider {
	return &OutlookProvider{
		cfg: cfg,
		log: log,
	}
}

func (s *OutlookProvider) SetCredentials(accessToken string) error {
	if accessToken == "" {
		return er.InvalidAccessToken("access token must be a non-empty string")
	}

	s.credential = &models.Credential{Provider: enum.EmailProviderOutlook, AccessToken: accessToken}
	s.client = &http.Client{
		Timeout: time.Duration(s.cfg.OutlookConfig.RequestTimeout) * time.Second,
	}
	s.log.Debugf("outlook credentials installed: %s", s.credential.Redacted())
	return nil
}

func (s *OutlookProvider) IsTokenValid(ctx context.Context) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OutlookProvider.IsTokenValid")
	defer span.Finish()
	tracing.SetDefaultProviderSpanTags(ctx, span, enum.EmailProviderOutlook.String())

	if s.client == nil {
		return false, er.InvalidAccessToken("credentials not set")
	}

	var profile struct {
		ID string `json:"id"`
	}
	err := s.get(ctx, s.endpoint("/me"), nil, &profile)
	if err != nil {
		if errors.Is(err, er.ErrInvalidAccessToken) {
			return false, nil
		}
		tracing.TraceErr(span, err)
		return false, err
	}
	return true, nil
}

func (s *OutlookProvider) FetchEmails(ctx context.Context, opts interfaces.FetchOptions) ([]models.EmailMessage, string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OutlookProvider.FetchEmails")
	defer span.Finish()
	tracing.SetDefaultProviderSpanTags(ctx, span, enum.EmailProviderOutlook.String())
	span.LogFields(tracingLog.Int("page_size", opts.PageSize))

	if s.client == nil {
		return nil, "", er.InvalidAccessToken("credentials not set")
	}

	nextLink, err := cursor.Decode(enum.EmailProviderOutlook, opts.Cursor)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, "", err
	}

	var response graphMessageList
	if nextLink != "" {
		// A nextLink already encodes the page; it must be replayed without
		// extra query parameters.
		if !s.isValidNextLink(nextLink) {
			err := er.MalformedCursor()
			tracing.TraceErr(span, err)
			return nil, "", err
		}
		if err := s.get(ctx, nextLink, nil, &response); err != nil {
			tracing.TraceErr(span, err)
			return nil, "", err
		}
	} else {
		endpoint, specialFilters, err := s.resolveFolderEndpoint(opts.Folder)
		if err != nil {
			tracing.TraceErr(span, err)
			return nil, "", err
		}

		params := BuildQueryParams(opts.Filter, specialFilters)
		params["$top"] = fmt.Sprintf("%d", opts.PageSize)
		params["$select"] = messageSelectFields
		params["$expand"] = attachmentExpand
		// Graph rejects $orderby alongside $search; default the sort only
		// for purely structured requests.
		if _, searching := params["$search"]; !searching {
			if _, ok := params["$orderby"]; !ok {
				params["$orderby"] = "receivedDateTime desc"
			}
		} else {
			delete(params, "$orderby")
		}

		if err := s.get(ctx, endpoint, params, &response); err != nil {
			tracing.TraceErr(span, err)
			return nil, "", err
		}
	}

	emails := make([]models.EmailMessage, 0, len(response.Value))
	for _, raw := range response.Value {
		emails = append(emails, toEmailMessage(raw, opts.Folder))
	}

	span.LogFields(tracingLog.Int("result_count", len(emails)))
	return emails, cursor.Encode(enum.EmailProviderOutlook, response.NextLink), nil
}

func (s *OutlookProvider) FetchEmailDetail(ctx context.Context, messageID string) (*models.EmailDetail, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OutlookProvider.FetchEmailDetail")
	defer span.Finish()
	tracing.SetDefaultProviderSpanTags(ctx, span, enum.EmailProviderOutlook.String())
	span.SetTag("message.id", messageID)

	if s.client == nil {
		return nil, er.InvalidAccessToken("credentials not set")
	}

	params := map[string]string{
		"$select": detailSelectFields,
		"$expand": "attachments",
	}

	var raw graphMessage
	if err := s.get(ctx, s.endpoint("/me/messages/"+url.PathEscape(messageID)), params, &raw); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	detail := toEmailDetail(raw)
	return &detail, nil
}

func (s *OutlookProvider) ListFolders(ctx context.Context) ([]enum.MailFolder, error) {
	return SupportedFolders(), nil
}

func (s *OutlookProvider) ListAttachments(ctx context.Context, messageID string) ([]models.Attachment, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OutlookProvider.ListAttachments")
	defer span.Finish()
	tracing.SetDefaultProviderSpanTags(ctx, span, enum.EmailProviderOutlook.String())
	span.SetTag("message.id", messageID)

	if s.client == nil {
		return nil, er.InvalidAccessToken("credentials not set")
	}

	params := map[string]string{
		"$select": "id,name,size,contentType",
	}

	var response graphAttachmentList
	endpoint := s.endpoint("/me/messages/" + url.PathEscape(messageID) + "/attachments")
	if err := s.get(ctx, endpoint, params, &response); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	return toAttachments(response.Value), nil
}

func (s *OutlookProvider) DownloadAttachment(ctx context.Context, messageID, attachmentID string) ([]byte, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OutlookProvider.DownloadAttachment")
	defer span.Finish()
	tracing.SetDefaultProviderSpanTags(ctx, span, enum.EmailProviderOutlook.String())
	span.SetTag("message.id", messageID)
	span.SetTag("attachment.id", attachmentID)

	if s.client == nil {
		return nil, er.InvalidAccessToken("credentials not set")
	}

	params := map[string]string{
		"$select": "contentBytes,size",
	}

	var raw graphAttachment
	endpoint := s.endpoint("/me/messages/" + url.PathEscape(messageID) + "/attachments/" + url.PathEscape(attachmentID))
	if err := s.get(ctx, endpoint, params, &raw); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	if raw.Size > s.cfg.Limits.MaxAttachmentSizeBytes {
		err := er.AttachmentTooLarge(raw.Size, s.cfg.Limits.MaxAttachmentSizeBytes)
		tracing.TraceErr(span, err)
		return nil, err
	}
	if raw.ContentBytes == "" {
		err := er.OutlookAPI("attachment content missing")
		tracing.TraceErr(span, err)
		return nil, err
	}

	content, err := base64.StdEncoding.DecodeString(raw.ContentBytes)
	if err != nil {
		mapped := er.OutlookAPI("attachment content is not valid base64")
		tracing.TraceErr(span, mapped)
		return nil, mapped
	}
	return content, nil
}

// resolveFolderEndpoint picks the messages endpoint for a folder. Starred
// has no Graph folder and is served from the whole mailbox filtered down to
// flagged messages; an empty folder falls back to the configured defaults.
func (s *OutlookProvider) resolveFolderEndpoint(folder enum.MailFolder) (string, []string, error) {
	if folder == enum.FolderStarred {
		return s.endpoint("/me/messages"), []string{flaggedFilter}, nil
	}

	folderName := ""
	if folder == "" {
		if len(s.cfg.OutlookConfig.DefaultFolders) > 0 {
			folderName = s.cfg.OutlookConfig.DefaultFolders[0]
		} else {
			folderName = "inbox"
		}
	} else {
		name, ok := ToWellKnownFolder(folder)
		if !ok {
			return "", nil, er.OutlookAPI("folder " + folder.String() + " is not supported by outlook")
		}
		folderName = name
	}

	return s.endpoint("/me/mailFolders/" + folderName + "/messages"), nil, nil
}

func (s *OutlookProvider) endpoint(path string) string {
	return strings.TrimSuffix(s.cfg.OutlookConfig.GraphAPIBaseURL, "/") + path
}

// isValidNextLink rejects cursors that decode but were clearly not issued
// by Graph's messages pagination. The accepted host is the configured base
// URL; the public Graph host stays accepted so national-cloud deployments
// can still replay default-host links.
func (s *OutlookProvider) isValidNextLink(link string) bool {
	if !strings.Contains(link, "/messages") {
		return false
	}
	if !strings.Contains(link, "$") && !strings.Contains(link, "%24") {
		return false
	}
	base := strings.TrimSuffix(s.cfg.OutlookConfig.GraphAPIBaseURL, "/")
	return strings.HasPrefix(link, base+"/") ||
		strings.HasPrefix(link, "https://graph.microsoft.com/")
}

// get issues a GET against Graph and decodes the JSON body into out. When
// params is nil the raw URL is used untouched, which is how nextLink replay
// stays opaque.
func (s *OutlookProvider) get(ctx context.Context, rawURL string, params map[string]string, out any) error {
	requestURL := rawURL
	if params != nil {
		values := url.Values{}
		for key, value := range params {
			values.Set(key, value)
		}
		requestURL = rawURL + "?" + values.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return er.OutlookAPI(err.Error())
	}
	request.Header.Set("Authorization", "Bearer "+s.credential.AccessToken)
	request.Header.Set("Content-Type", "application/json")

	response, err := s.client.Do(request)
	if err != nil {
		return s.mapTransportError(err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return er.OutlookAPI(err.Error())
	}

	if response.StatusCode == http.StatusUnauthorized {
		return er.InvalidAccessToken("access token expired or invalid")
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		s.log.Errorf("graph request failed: HTTP %d", response.StatusCode)
		return er.OutlookAPI(fmt.Sprintf("HTTP %d: %s", response.StatusCode, string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return er.OutlookAPI("unexpected response payload: " + err.Error())
	}
	return nil
}

func (s *OutlookProvider) mapTransportError(err error) error {
	s.log.Errorf("graph request failed: %v", err)
	if errors.Is(err, context.DeadlineExceeded) {
		return er.NetworkTimeout("graph request")
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return er.NetworkTimeout("graph request")
	}
	return er.OutlookAPI("request failed: " + err.Error())
}
