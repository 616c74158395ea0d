package outlook

import (
	"time"

	"github.com/jaytaylor/html2text"

	"github.com/DhruvSimform/email-library/internal/enum"
	"github.com/DhruvSimform/email-library/internal/models"
	"github.com/DhruvSimform/email-library/internal/utils"
)

// Wire shapes for the Graph message resources this adapter reads. Only the
// fields named in $select are populated.
type graphEmailAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type graphRecipient struct {
	EmailAddress *graphEmailAddress `json:"emailAddress"`
}

type graphBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type graphAttachment struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ContentType  string `json:"contentType"`
	ContentBytes string `json:"contentBytes"`
}

type graphMessage struct {
	ID                      string            `json:"id"`
	Subject                 string            `json:"subject"`
	From                    *graphRecipient   `json:"from"`
	ToRecipients            []graphRecipient  `json:"toRecipients"`
	CcRecipients            []graphRecipient  `json:"ccRecipients"`
	BccRecipients           []graphRecipient  `json:"bccRecipients"`
	ReceivedDateTime        string            `json:"receivedDateTime"`
	BodyPreview             string            `json:"bodyPreview"`
	Body                    *graphBody        `json:"body"`
	IsRead                  bool              `json:"isRead"`
	HasAttachments          bool              `json:"hasAttachments"`
	Attachments             []graphAttachment `json:"attachments"`
	InferenceClassification string            `json:"inferenceClassification"`
}

type graphMessageList struct {
	Value    []graphMessage `json:"value"`
	NextLink string         `json:"@odata.nextLink"`
}

type graphAttachmentList struct {
	Value []graphAttachment `json:"value"`
}

func toEmailMessage(raw graphMessage, folder enum.MailFolder) models.EmailMessage {
	return models.NewEmailMessage(models.EmailMessage{
		MessageID:           raw.ID,
		Subject:             raw.Subject,
		Sender:              formatRecipient(raw.From),
		Timestamp:           parseGraphTime(raw.ReceivedDateTime),
		Preview:             raw.BodyPreview,
		Folder:              folder,
		IsRead:              raw.IsRead,
		Attachments:         toAttachments(raw.Attachments),
		InboxClassification: classify(raw.InferenceClassification),
	})
}

func toEmailDetail(raw graphMessage) models.EmailDetail {
	bodyText, bodyHTML := extractBodies(raw)

	return models.NewEmailDetail(models.EmailDetail{
		MessageID:   raw.ID,
		Subject:     raw.Subject,
		Sender:      formatRecipient(raw.From),
		Timestamp:   parseGraphTime(raw.ReceivedDateTime),
		Recipients:  formatRecipients(raw.ToRecipients),
		CC:          formatRecipients(raw.CcRecipients),
		BCC:         formatRecipients(raw.BccRecipients),
		BodyText:    bodyText,
		BodyHTML:    bodyHTML,
		Attachments: toAttachments(raw.Attachments),
	})
}

// extractBodies splits the single Graph body into the text/html pair of the
// domain model. HTML-only messages get a plain-text rendering, falling back
// to the preview when conversion fails.
func extractBodies(raw graphMessage) (bodyText, bodyHTML string) {
	if raw.Body == nil {
		return "", ""
	}

	switch raw.Body.ContentType {
	case "text":
		bodyText = raw.Body.Content
	case "html":
		bodyHTML = raw.Body.Content
		text, err := html2text.FromString(raw.Body.Content, html2text.Options{TextOnly: true})
		if err != nil || text == "" {
			text = raw.BodyPreview
		}
		bodyText = text
	}
	return bodyText, bodyHTML
}

func toAttachments(raw []graphAttachment) []models.Attachment {
	if len(raw) == 0 {
		return nil
	}
	attachments := make([]models.Attachment, 0, len(raw))
	for _, a := range raw {
		attachments = append(attachments, models.Attachment{
			ID:        a.ID,
			Filename:  a.Name,
			SizeBytes: a.Size,
			MimeType:  a.ContentType,
		})
	}
	return attachments
}

func formatRecipient(r *graphRecipient) string {
	if r == nil || r.EmailAddress == nil {
		return ""
	}
	return utils.FormatAddress(r.EmailAddress.Name, r.EmailAddress.Address)
}

func formatRecipients(items []graphRecipient) []string {
	var result []string
	for i := range items {
		if formatted := formatRecipient(&items[i]); formatted != "" {
			result = append(result, formatted)
		}
	}
	return result
}

func parseGraphTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// classify maps Graph's focused-inbox value to the normalized
// classification; Graph only emits focused or other.
func classify(inference string) enum.InboxClassification {
	switch inference {
	case "focused":
		return enum.InboxPrimary
	case "other":
		return enum.InboxOther
	default:
		return ""
	}
}
