package gmail

import (
	"encoding/base64"
	"strings"
	"time"

	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/DhruvSimform/email-library/internal/enum"
	"github.com/DhruvSimform/email-library/internal/models"
	"github.com/DhruvSimform/email-library/internal/utils"
)

const unreadLabel = "UNREAD"

// toEmailMessage converts a full-format Gmail message into the summary
// domain model. Missing headers default to empty strings, never an error.
func toEmailMessage(raw *gmailapi.Message, folder enum.MailFolder) models.EmailMessage {
	headers := headerMap(raw.Payload)

	return models.NewEmailMessage(models.EmailMessage{
		MessageID:           raw.Id,
		Subject:             headers["subject"],
		Sender:              headers["from"],
		Timestamp:           internalTimestamp(raw),
		Preview:             raw.Snippet,
		Folder:              folder,
		IsRead:              !hasLabel(raw.LabelIds, unreadLabel),
		Attachments:         extractAttachments(raw),
		InboxClassification: classify(raw.LabelIds),
	})
}

func toEmailDetail(raw *gmailapi.Message) models.EmailDetail {
	headers := headerMap(raw.Payload)

	bodyText, bodyHTML := extractBodies(raw.Payload)

	return models.NewEmailDetail(models.EmailDetail{
		MessageID:   raw.Id,
		Subject:     headers["subject"],
		Sender:      headers["from"],
		Timestamp:   internalTimestamp(raw),
		Recipients:  utils.SplitAddressList(headers["to"]),
		CC:          utils.SplitAddressList(headers["cc"]),
		BCC:         utils.SplitAddressList(headers["bcc"]),
		BodyText:    bodyText,
		BodyHTML:    bodyHTML,
		Attachments: extractAttachments(raw),
	})
}

// extractAttachments walks the MIME tree collecting attachment metadata.
// No attachment bytes are fetched here.
func extractAttachments(raw *gmailapi.Message) []models.Attachment {
	if raw == nil || raw.Payload == nil {
		return nil
	}

	var attachments []models.Attachment
	var walk func(parts []*gmailapi.MessagePart)
	walk = func(parts []*gmailapi.MessagePart) {
		for _, part := range parts {
			if part.Filename != "" && part.Body != nil && part.Body.AttachmentId != "" {
				attachments = append(attachments, models.Attachment{
					ID:        part.Body.AttachmentId,
					Filename:  part.Filename,
					SizeBytes: part.Body.Size,
					MimeType:  part.MimeType,
				})
			}
			if len(part.Parts) > 0 {
				walk(part.Parts)
			}
		}
	}
	walk(raw.Payload.Parts)

	return attachments
}

func extractBodies(payload *gmailapi.MessagePart) (bodyText, bodyHTML string) {
	if payload == nil {
		return "", ""
	}

	var walk func(parts []*gmailapi.MessagePart)
	walk = func(parts []*gmailapi.MessagePart) {
		for _, part := range parts {
			if part.Body != nil && part.Body.Data != "" {
				decoded, err := base64.URLEncoding.DecodeString(part.Body.Data)
				if err == nil {
					switch part.MimeType {
					case "text/plain":
						bodyText = string(decoded)
					case "text/html":
						bodyHTML = string(decoded)
					}
				}
			}
			if len(part.Parts) > 0 {
				walk(part.Parts)
			}
		}
	}
	// Single-part messages carry the body on the payload itself.
	walk([]*gmailapi.MessagePart{payload})

	return bodyText, bodyHTML
}

func headerMap(payload *gmailapi.MessagePart) map[string]string {
	headers := make(map[string]string)
	if payload == nil {
		return headers
	}
	for _, h := range payload.Headers {
		headers[strings.ToLower(h.Name)] = h.Value
	}
	return headers
}

func internalTimestamp(raw *gmailapi.Message) time.Time {
	return time.UnixMilli(raw.InternalDate).UTC()
}

func hasLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

// classify maps Gmail inbox category labels to the normalized
// classification; personal is the primary tab, any other category tab is
// "other", and messages without category labels carry no classification.
func classify(labels []string) enum.InboxClassification {
	for _, l := range labels {
		if l == "CATEGORY_PERSONAL" {
			return enum.InboxPrimary
		}
	}
	for _, l := range labels {
		if strings.HasPrefix(l, "CATEGORY_") {
			return enum.InboxOther
		}
	}
	return ""
}
