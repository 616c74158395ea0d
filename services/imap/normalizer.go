package imap

import (
	"fmt"
	"strings"

	goimap "github.com/emersion/go-imap"
	"github.com/jhillyerd/enmime"

	"github.com/DhruvSimform/email-library/internal/enum"
	"github.com/DhruvSimform/email-library/internal/models"
	"github.com/DhruvSimform/email-library/internal/utils"
)

// toEmailMessage converts a fetched summary (envelope, flags, body
// structure) into the summary domain model. IMAP has no snippet, so the
// preview stays empty.
func toEmailMessage(ref string, msg *goimap.Message, folder enum.MailFolder) models.EmailMessage {
	email := models.EmailMessage{
		MessageID: ref,
		Folder:    folder,
		IsRead:    hasFlag(msg.Flags, goimap.SeenFlag),
	}
	if msg.Envelope != nil {
		email.Subject = msg.Envelope.Subject
		email.Sender = formatFirstAddress(msg.Envelope.From)
		email.Timestamp = msg.Envelope.Date.UTC()
	}
	email.Attachments = extractAttachments(msg.BodyStructure)

	return models.NewEmailMessage(email)
}

// toEmailDetail merges the IMAP envelope (addressing, date) with the parsed
// MIME body (text, html, attachment content metadata).
func toEmailDetail(ref string, msg *goimap.Message, parsed *enmime.Envelope) models.EmailDetail {
	detail := models.EmailDetail{
		MessageID:   ref,
		BodyText:    parsed.Text,
		BodyHTML:    parsed.HTML,
		Attachments: attachmentsFromParsed(parsed),
	}
	if msg.Envelope != nil {
		detail.Subject = msg.Envelope.Subject
		detail.Sender = formatFirstAddress(msg.Envelope.From)
		detail.Timestamp = msg.Envelope.Date.UTC()
		detail.Recipients = formatAddresses(msg.Envelope.To)
		detail.CC = formatAddresses(msg.Envelope.Cc)
		detail.BCC = formatAddresses(msg.Envelope.Bcc)
	}

	return models.NewEmailDetail(detail)
}

// extractAttachments walks the body structure collecting attachment parts.
// Part ids follow the same content-id-or-ordinal scheme the MIME parser
// produces so the two listings agree.
func extractAttachments(structure *goimap.BodyStructure) []models.Attachment {
	if structure == nil {
		return nil
	}

	var attachments []models.Attachment
	ordinal := 0
	var walk func(part *goimap.BodyStructure)
	walk = func(part *goimap.BodyStructure) {
		if part == nil {
			return
		}
		if len(part.Parts) == 0 {
			if filename := partFilename(part); filename != "" {
				attachments = append(attachments, models.Attachment{
					ID:        partID(part.Id, ordinal),
					Filename:  filename,
					SizeBytes: int64(part.Size),
					MimeType:  strings.ToLower(part.MIMEType + "/" + part.MIMESubType),
				})
				ordinal++
			}
			return
		}
		for _, child := range part.Parts {
			walk(child)
		}
	}
	walk(structure)

	return attachments
}

func attachmentsFromParsed(parsed *enmime.Envelope) []models.Attachment {
	parts := make([]*enmime.Part, 0, len(parsed.Attachments)+len(parsed.Inlines))
	parts = append(parts, parsed.Attachments...)
	parts = append(parts, parsed.Inlines...)

	var attachments []models.Attachment
	for i, part := range parts {
		if part.FileName == "" {
			continue
		}
		attachments = append(attachments, models.Attachment{
			ID:        partID(part.ContentID, i),
			Filename:  part.FileName,
			SizeBytes: int64(len(part.Content)),
			MimeType:  part.ContentType,
		})
	}
	return attachments
}

// findAttachmentContent resolves an attachment id back to the part bytes of
// a parsed message.
func findAttachmentContent(parsed *enmime.Envelope, attachmentID string) ([]byte, bool) {
	parts := make([]*enmime.Part, 0, len(parsed.Attachments)+len(parsed.Inlines))
	parts = append(parts, parsed.Attachments...)
	parts = append(parts, parsed.Inlines...)

	for i, part := range parts {
		if partID(part.ContentID, i) == attachmentID {
			return part.Content, true
		}
	}
	return nil, false
}

// partID prefers the MIME content id and falls back to the part ordinal.
func partID(contentID string, ordinal int) string {
	if id := strings.Trim(contentID, "<>"); id != "" {
		return id
	}
	return fmt.Sprintf("part-%d", ordinal)
}

func partFilename(part *goimap.BodyStructure) string {
	if name, ok := part.DispositionParams["filename"]; ok && name != "" {
		return name
	}
	if name, ok := part.Params["name"]; ok && name != "" {
		return name
	}
	return ""
}

func formatFirstAddress(addresses []*goimap.Address) string {
	if len(addresses) == 0 || addresses[0] == nil {
		return ""
	}
	return utils.FormatAddress(addresses[0].PersonalName, addresses[0].Address())
}

func formatAddresses(addresses []*goimap.Address) []string {
	var result []string
	for _, addr := range addresses {
		if addr == nil {
			continue
		}
		if formatted := utils.FormatAddress(addr.PersonalName, addr.Address()); formatted != "" {
			result = append(result, formatted)
		}
	}
	return result
}

func hasFlag(flags []string, flag string) bool {
	for _, f := range flags {
		if f == flag {
			return true
		}
	}
	return false
}
