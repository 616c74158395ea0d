package services

import (
	"github.com/DhruvSimform/email-library/config"
	er "github.com/DhruvSimform/email-library/internal/errors"
	"github.com/DhruvSimform/email-library/internal/models"
)

// AttachmentGuard refuses oversized downloads before any network call is
// issued. It sits above the adapter boundary so no adapter can bypass it;
// sizes come from ListAttachments metadata, never from a download response.
type AttachmentGuard struct {
	maxBytes int64
}

func NewAttachmentGuard(limits *config.LimitsConfig) *AttachmentGuard {
	return &AttachmentGuard{maxBytes: limits.MaxAttachmentSizeBytes}
}

func (g *AttachmentGuard) Check(attachment models.Attachment) error {
	if attachment.SizeBytes > g.maxBytes {
		return er.AttachmentTooLarge(attachment.SizeBytes, g.maxBytes)
	}
	return nil
}
