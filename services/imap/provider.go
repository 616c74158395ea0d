package imap

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"time"

	goimap "github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-sasl"
	"github.com/jhillyerd/enmime"
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

const authMethodLogin = "login"

// IMAPProvider is the read-only IMAP adapter. It opens a fresh TLS
// connection per operation and logs out when done; no connection is pooled
// across calls. Message ids are mailbox-scoped "<mailbox>:<uid>" references
// because IMAP UIDs only identify a message within its mailbox.
type IMAPProvider struct {
	cfg        *config.Config
	log        logger.Logger
	credential *models.Credential
}

func NewIMAPProvider(cfg *config.Config, log logger.Logger) interfaces.EmailProvider {
	return &IMAPProvider{
		cfg: cfg,
		log: log,
	}
}

func (s *IMAPProvider) SetCredentials(accessToken string) error {
	if accessToken == "" {
		return er.InvalidAccessToken("access token must be a non-empty string")
	}
	s.credential = &models.Credential{Provider: enum.EmailProviderIMAP, AccessToken: accessToken}
	s.log.Debugf("imap credentials installed: %s", s.credential.Redacted())
	return nil
}

func (s *IMAPProvider) IsTokenValid(ctx context.Context) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "IMAPProvider.IsTokenValid")
	defer span.Finish()
	tracing.SetDefaultProviderSpanTags(ctx, span, enum.EmailProviderIMAP.String())

	c, err := s.connect(ctx)
	if err != nil {
		if errors.Is(err, er.ErrInvalidAccessToken) {
			return false, nil
		}
		tracing.TraceErr(span, err)
		return false, err
	}
	defer c.Logout()

	return true, nil
}

func (s *IMAPProvider) FetchEmails(ctx context.Context, opts interfaces.FetchOptions) ([]models.EmailMessage, string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "IMAPProvider.FetchEmails")
	defer span.Finish()
	tracing.SetDefaultProviderSpanTags(ctx, span, enum.EmailProviderIMAP.String())
	span.LogFields(tracingLog.Int("page_size", opts.PageSize))

	offset, err := s.decodeOffset(opts.Cursor)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, "", err
	}

	mailbox, starred, err := s.resolveMailbox(opts.Folder)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, "", err
	}

	c, err := s.connect(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, "", err
	}
	defer c.Logout()

	if _, err := c.Select(mailbox, true); err != nil {
		mapped := s.mapError("select", err)
		tracing.TraceErr(span, mapped)
		return nil, "", mapped
	}

	criteria := BuildSearchCriteria(opts.Filter)
	if starred {
		criteria = withFlagged(criteria)
	}

	uids, err := c.UidSearch(criteria)
	if err != nil {
		mapped := s.mapError("search", err)
		tracing.TraceErr(span, mapped)
		return nil, "", mapped
	}
	// Newest first; UID order tracks arrival order within a mailbox.
	sort.Slice(uids, func(i, j int) bool { return uids[i] > uids[j] })

	if offset >= len(uids) {
		return []models.EmailMessage{}, "", nil
	}
	end := offset + opts.PageSize
	if end > len(uids) {
		end = len(uids)
	}
	page := uids[offset:end]

	fetched, err := s.fetchSummaries(c, page)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, "", err
	}

	emails := make([]models.EmailMessage, 0, len(page))
	for _, uid := range page {
		msg, ok := fetched[uid]
		if !ok {
			continue
		}
		email := toEmailMessage(messageRef(mailbox, uid), msg, opts.Folder)
		if !matchesAttachmentFilter(opts.Filter, email) {
			continue
		}
		emails = append(emails, email)
	}

	next := ""
	if end < len(uids) {
		next = cursor.Encode(enum.EmailProviderIMAP, strconv.Itoa(end))
	}

	span.LogFields(tracingLog.Int("result_count", len(emails)))
	return emails, next, nil
}

func (s *IMAPProvider) FetchEmailDetail(ctx context.Context, messageID string) (*models.EmailDetail, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "IMAPProvider.FetchEmailDetail")
	defer span.Finish()
	tracing.SetDefaultProviderSpanTags(ctx, span, enum.EmailProviderIMAP.String())
	span.SetTag("message.id", messageID)

	msg, parsed, logout, err := s.fetchParsed(ctx, messageID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	defer logout()

	detail := toEmailDetail(messageID, msg, parsed)
	return &detail, nil
}

func (s *IMAPProvider) ListFolders(ctx context.Context) ([]enum.MailFolder, error) {
	return SupportedFolders(), nil
}

func (s *IMAPProvider) ListAttachments(ctx context.Context, messageID string) ([]models.Attachment, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "IMAPProvider.ListAttachments")
	defer span.Finish()
	tracing.SetDefaultProviderSpanTags(ctx, span, enum.EmailProviderIMAP.String())
	span.SetTag("message.id", messageID)

	_, parsed, logout, err := s.fetchParsed(ctx, messageID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	defer logout()

	return attachmentsFromParsed(parsed), nil
}

func (s *IMAPProvider) DownloadAttachment(ctx context.Context, messageID, attachmentID string) ([]byte, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "IMAPProvider.DownloadAttachment")
	defer span.Finish()
	tracing.SetDefaultProviderSpanTags(ctx, span, enum.EmailProviderIMAP.String())
	span.SetTag("message.id", messageID)
	span.SetTag("attachment.id", attachmentID)

	_, parsed, logout, err := s.fetchParsed(ctx, messageID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	defer logout()

	content, ok := findAttachmentContent(parsed, attachmentID)
	if !ok {
		err := er.IMAPAPI(fmt.Errorf("attachment %q not found on message %q", attachmentID, messageID))
		tracing.TraceErr(span, err)
		return nil, err
	}
	return content, nil
}

// connect dials the server over TLS and authenticates, preferring
// OAUTHBEARER with the access token and falling back to LOGIN when
// configured, where the token is used as the password (app passwords).
func (s *IMAPProvider) connect(ctx context.Context) (*client.Client, error) {
	if s.credential == nil {
		return nil, er.InvalidAccessToken("credentials not set")
	}

	imapCfg := s.cfg.IMAPConfig
	timeout := time.Duration(imapCfg.RequestTimeout) * time.Second
	dialer := &net.Dialer{Timeout: timeout}
	serverAddr := fmt.Sprintf("%s:%d", imapCfg.Host, imapCfg.Port)

	c, err := client.DialWithDialerTLS(dialer, serverAddr, &tls.Config{ServerName: imapCfg.Host})
	if err != nil {
		return nil, s.mapError("dial", err)
	}
	c.Timeout = timeout

	if strings.EqualFold(imapCfg.AuthMethod, authMethodLogin) {
		err = c.Login(imapCfg.Username, s.credential.AccessToken)
	} else {
		err = c.Authenticate(sasl.NewOAuthBearerClient(&sasl.OAuthBearerOptions{
			Username: imapCfg.Username,
			Token:    s.credential.AccessToken,
			Host:     imapCfg.Host,
			Port:     imapCfg.Port,
		}))
	}
	if err != nil {
		c.Logout()
		return nil, er.InvalidAccessToken("imap authentication failed: " + err.Error())
	}

	return c, nil
}

func (s *IMAPProvider) fetchSummaries(c *client.Client, uids []uint32) (map[uint32]*goimap.Message, error) {
	fetched := make(map[uint32]*goimap.Message, len(uids))
	if len(uids) == 0 {
		return fetched, nil
	}

	seqSet := new(goimap.SeqSet)
	seqSet.AddNum(uids...)
	items := []goimap.FetchItem{
		goimap.FetchEnvelope,
		goimap.FetchFlags,
		goimap.FetchBodyStructure,
		goimap.FetchUid,
	}

	messages := make(chan *goimap.Message, len(uids))
	if err := c.UidFetch(seqSet, items, messages); err != nil {
		return nil, s.mapError("fetch", err)
	}
	for msg := range messages {
		fetched[msg.Uid] = msg
	}
	return fetched, nil
}

// fetchParsed retrieves one full message and runs it through the MIME
// parser. The returned logout func closes the connection; callers must
// invoke it once done with the message.
func (s *IMAPProvider) fetchParsed(ctx context.Context, messageID string) (*goimap.Message, *enmime.Envelope, func(), error) {
	mailbox, uid, err := parseMessageRef(messageID)
	if err != nil {
		return nil, nil, nil, err
	}

	c, err := s.connect(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	logout := func() { c.Logout() }

	if _, err := c.Select(mailbox, true); err != nil {
		logout()
		return nil, nil, nil, s.mapError("select", err)
	}

	seqSet := new(goimap.SeqSet)
	seqSet.AddNum(uid)
	section := &goimap.BodySectionName{Peek: true}
	items := []goimap.FetchItem{
		goimap.FetchEnvelope,
		goimap.FetchUid,
		section.FetchItem(),
	}

	messages := make(chan *goimap.Message, 1)
	if err := c.UidFetch(seqSet, items, messages); err != nil {
		logout()
		return nil, nil, nil, s.mapError("fetch", err)
	}

	msg, ok := <-messages
	if !ok || msg == nil {
		logout()
		return nil, nil, nil, er.IMAPAPI(fmt.Errorf("message %q not found", messageID))
	}

	literal := msg.GetBody(section)
	if literal == nil {
		logout()
		return nil, nil, nil, er.IMAPAPI(fmt.Errorf("message %q has no body", messageID))
	}

	parsed, err := enmime.ReadEnvelope(literal)
	if err != nil {
		logout()
		return nil, nil, nil, er.IMAPAPI(err)
	}

	return msg, parsed, logout, nil
}

func (s *IMAPProvider) resolveMailbox(folder enum.MailFolder) (string, bool, error) {
	if folder == enum.FolderStarred {
		return "INBOX", true, nil
	}
	if folder == "" {
		if len(s.cfg.IMAPConfig.DefaultFolders) > 0 {
			return s.cfg.IMAPConfig.DefaultFolders[0], false, nil
		}
		return "INBOX", false, nil
	}
	mailbox, ok := ToMailbox(folder)
	if !ok {
		return "", false, er.IMAPAPI(fmt.Errorf("folder %s is not supported by imap", folder))
	}
	return mailbox, false, nil
}

func (s *IMAPProvider) decodeOffset(raw string) (int, error) {
	token, err := cursor.Decode(enum.EmailProviderIMAP, raw)
	if err != nil {
		return 0, err
	}
	if token == "" {
		return 0, nil
	}
	offset, err := strconv.Atoi(token)
	if err != nil || offset < 0 {
		return 0, er.MalformedCursor()
	}
	return offset, nil
}

func (s *IMAPProvider) mapError(op string, err error) error {
	s.log.Errorf("imap %s failed: %v", op, err)
	if errors.Is(err, context.DeadlineExceeded) {
		return er.NetworkTimeout(op)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return er.NetworkTimeout(op)
	}
	return er.IMAPAPI(err)
}

func messageRef(mailbox string, uid uint32) string {
	return fmt.Sprintf("%s:%d", mailbox, uid)
}

func parseMessageRef(ref string) (string, uint32, error) {
	idx := strings.LastIndex(ref, ":")
	if idx <= 0 || idx == len(ref)-1 {
		return "", 0, er.IMAPAPI(fmt.Errorf("malformed message reference %q", ref))
	}
	uid, err := strconv.ParseUint(ref[idx+1:], 10, 32)
	if err != nil {
		return "", 0, er.IMAPAPI(fmt.Errorf("malformed message reference %q", ref))
	}
	return ref[:idx], uint32(uid), nil
}

// matchesAttachmentFilter applies the has-attachments predicate after the
// fetch; IMAP SEARCH cannot express it server side.
func matchesAttachmentFilter(filter *models.EmailSearchFilter, email models.EmailMessage) bool {
	if filter == nil || filter.HasAttachments == nil {
		return true
	}
	return *filter.HasAttachments == email.HasAttachments()
}
