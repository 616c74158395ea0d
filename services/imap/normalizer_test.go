package imap

import (
	"strings"
	"testing"
	"time"

	goimap "github.com/emersion/go-imap"
	"github.com/jhillyerd/enmime"
	"github.com/stretchr/testify/assert"

	"github.com/DhruvSimform/email-library/internal/enum"
)

func fixtureSummary() *goimap.Message {
	return &goimap.Message{
		Uid:   42,
		Flags: []string{goimap.SeenFlag},
		Envelope: &goimap.Envelope{
			Subject: "Quarterly report",
			Date:    time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
			From: []*goimap.Address{
				{PersonalName: "Alice", MailboxName: "alice", HostName: "example.com"},
			},
			To: []*goimap.Address{
				{MailboxName: "bob", HostName: "example.com"},
			},
		},
		BodyStructure: &goimap.BodyStructure{
			MIMEType:    "multipart",
			MIMESubType: "mixed",
			Parts: []*goimap.BodyStructure{
				{MIMEType: "text", MIMESubType: "plain"},
				{
					MIMEType:          "application",
					MIMESubType:       "pdf",
					Size:              2048,
					Disposition:       "attachment",
					DispositionParams: map[string]string{"filename": "report.pdf"},
				},
			},
		},
	}
}

func TestToEmailMessage(t *testing.T) {
	// Act
	msg := toEmailMessage("INBOX:42", fixtureSummary(), enum.FolderInbox)

	// Assert
	assert.Equal(t, "INBOX:42", msg.MessageID)
	assert.Equal(t, "Quarterly report", msg.Subject)
	assert.Equal(t, "Alice <alice@example.com>", msg.Sender)
	assert.Equal(t, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), msg.Timestamp)
	assert.True(t, msg.IsRead)
	assert.Equal(t, "", msg.Preview)
	assert.Equal(t, 1, msg.AttachmentCount())
	assert.Equal(t, "report.pdf", msg.Attachments[0].Filename)
	assert.Equal(t, "application/pdf", msg.Attachments[0].MimeType)
}

func TestToEmailDetail_ParsesMIME(t *testing.T) {
	// Arrange
	rawMessage := strings.Join([]string{
		"From: Alice <alice@example.com>",
		"To: bob@example.com",
		"Subject: Quarterly report",
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"plain body",
	}, "\r\n")
	parsed, err := enmime.ReadEnvelope(strings.NewReader(rawMessage))
	assert.NoError(t, err)

	// Act
	detail := toEmailDetail("INBOX:42", fixtureSummary(), parsed)

	// Assert
	assert.Equal(t, "INBOX:42", detail.MessageID)
	assert.Equal(t, "Quarterly report", detail.Subject)
	assert.Equal(t, "Alice <alice@example.com>", detail.Sender)
	assert.Equal(t, []string{"bob@example.com"}, detail.Recipients)
	assert.Equal(t, "plain body", strings.TrimSpace(detail.BodyText))
	assert.Equal(t, "", detail.BodyHTML)
}

func TestExtractAttachments_SkipsBodyParts(t *testing.T) {
	// Act
	attachments := extractAttachments(fixtureSummary().BodyStructure)

	// Assert
	assert.Len(t, attachments, 1)
	assert.Equal(t, "part-0", attachments[0].ID)
	assert.Equal(t, int64(2048), attachments[0].SizeBytes)
}

func TestPartID(t *testing.T) {
	assert.Equal(t, "cid-123", partID("<cid-123>", 0))
	assert.Equal(t, "part-3", partID("", 3))
}

func TestFormatAddresses(t *testing.T) {
	// Arrange
	addresses := []*goimap.Address{
		{PersonalName: "Alice", MailboxName: "alice", HostName: "example.com"},
		nil,
		{MailboxName: "bob", HostName: "example.com"},
	}

	// Act
	formatted := formatAddresses(addresses)

	// Assert
	assert.Equal(t, []string{"Alice <alice@example.com>", "bob@example.com"}, formatted)
}
