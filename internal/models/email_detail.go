package models

import "time"

// EmailDetail is the full, read-only form of a message, fetched on demand
// and never implicitly.
type EmailDetail struct {
	MessageID   string       `json:"message_id"`
	Subject     string       `json:"subject"`
	Sender      string       `json:"sender"`
	Timestamp   time.Time    `json:"timestamp"`
	Recipients  []string     `json:"recipients"`
	CC          []string     `json:"cc"`
	BCC         []string     `json:"bcc"`
	BodyText    string       `json:"body_text"`
	BodyHTML    string       `json:"body_html,omitempty"`
	Attachments []Attachment `json:"attachments"`
}

// NewEmailDetail copies every slice so the value can be shared across
// callers without aliasing.
func NewEmailDetail(detail EmailDetail) EmailDetail {
	detail.Recipients = copyStrings(detail.Recipients)
	detail.CC = copyStrings(detail.CC)
	detail.BCC = copyStrings(detail.BCC)
	detail.Attachments = copyAttachments(detail.Attachments)
	return detail
}

func (d EmailDetail) AsMap() map[string]any {
	attachments := make([]map[string]any, 0, len(d.Attachments))
	for _, a := range d.Attachments {
		attachments = append(attachments, a.AsMap())
	}

	result := map[string]any{
		"message_id":  d.MessageID,
		"subject":     d.Subject,
		"sender":      d.Sender,
		"timestamp":   d.Timestamp.Format(time.RFC3339),
		"recipients":  append([]string{}, d.Recipients...),
		"cc":          append([]string{}, d.CC...),
		"bcc":         append([]string{}, d.BCC...),
		"body_text":   d.BodyText,
		"body_html":   nil,
		"attachments": attachments,
	}
	if d.BodyHTML != "" {
		result["body_html"] = d.BodyHTML
	}
	return result
}

func copyStrings(values []string) []string {
	if values == nil {
		return nil
	}
	copied := make([]string, len(values))
	copy(copied, values)
	return copied
}
