package models

import (
	"time"

	"github.com/DhruvSimform/email-library/internal/enum"
)

// EmailMessage is the provider-agnostic summary of a message, used for list
// views. It never carries a body; callers fetch EmailDetail on demand.
type EmailMessage struct {
	MessageID   string          `json:"message_id"`
	Subject     string          `json:"subject"`
	Sender      string          `json:"sender"`
	Timestamp   time.Time       `json:"timestamp"`
	Preview     string          `json:"preview"`
	Folder      enum.MailFolder `json:"folder,omitempty"`
	IsRead      bool            `json:"is_read"`
	Attachments []Attachment    `json:"attachments"`

	// Inbox tab assigned by the provider, empty when the provider has none.
	// Gmail CATEGORY_PERSONAL and Outlook "focused" → primary.
	InboxClassification enum.InboxClassification `json:"inbox_classification,omitempty"`
}

// NewEmailMessage copies the attachment slice so the value can be shared
// across callers without aliasing.
func NewEmailMessage(msg EmailMessage) EmailMessage {
	msg.Attachments = copyAttachments(msg.Attachments)
	return msg
}

func (m EmailMessage) HasAttachments() bool {
	return len(m.Attachments) > 0
}

func (m EmailMessage) AttachmentCount() int {
	return len(m.Attachments)
}

func (m EmailMessage) AsMap() map[string]any {
	attachments := make([]map[string]any, 0, len(m.Attachments))
	for _, a := range m.Attachments {
		attachments = append(attachments, a.AsMap())
	}

	result := map[string]any{
		"message_id":       m.MessageID,
		"subject":          m.Subject,
		"sender":           m.Sender,
		"timestamp":        m.Timestamp.Format(time.RFC3339),
		"preview":          m.Preview,
		"folder":           nil,
		"is_read":          m.IsRead,
		"attachments":      attachments,
		"has_attachments":  m.HasAttachments(),
		"attachment_count": m.AttachmentCount(),
	}
	if m.Folder != "" {
		result["folder"] = m.Folder.String()
	}
	if m.InboxClassification != "" {
		result["inbox_classification"] = m.InboxClassification.String()
	}
	return result
}

func copyAttachments(attachments []Attachment) []Attachment {
	if attachments == nil {
		return nil
	}
	copied := make([]Attachment, len(attachments))
	copy(copied, attachments)
	return copied
}
