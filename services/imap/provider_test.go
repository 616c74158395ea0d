package imap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DhruvSimform/email-library/internal/cursor"
	"github.com/DhruvSimform/email-library/internal/enum"
	er "github.com/DhruvSimform/email-library/internal/errors"
	"github.com/DhruvSimform/email-library/internal/models"
	"github.com/DhruvSimform/email-library/internal/utils"
)

func TestMessageRef_RoundTrip(t *testing.T) {
	// Act
	ref := messageRef("INBOX", 42)
	mailbox, uid, err := parseMessageRef(ref)

	// Assert
	assert.Equal(t, "INBOX", mailbox)
	assert.Equal(t, uint32(42), uid)
	assert.NoError(t, err)
}

func TestParseMessageRef_Malformed(t *testing.T) {
	for _, ref := range []string{"", "INBOX", "INBOX:", ":42", "INBOX:notanumber"} {
		_, _, err := parseMessageRef(ref)
		assert.ErrorIs(t, err, er.ErrIMAPAPI, "ref %q", ref)
	}
}

func TestDecodeOffset(t *testing.T) {
	// Arrange
	s := &IMAPProvider{}

	// Act
	first, err := s.decodeOffset("")
	assert.NoError(t, err)
	next, err2 := s.decodeOffset(cursor.Encode(enum.EmailProviderIMAP, "20"))

	// Assert
	assert.Equal(t, 0, first)
	assert.NoError(t, err2)
	assert.Equal(t, 20, next)
}

func TestDecodeOffset_RejectsForeignCursor(t *testing.T) {
	// Arrange
	s := &IMAPProvider{}
	foreign := cursor.Encode(enum.EmailProviderGmail, "page-token")

	// Act
	_, err := s.decodeOffset(foreign)

	// Assert
	assert.ErrorIs(t, err, er.ErrProviderMismatch)
}

func TestDecodeOffset_RejectsNonNumericToken(t *testing.T) {
	// Arrange
	s := &IMAPProvider{}
	bad := cursor.Encode(enum.EmailProviderIMAP, "not-a-number")

	// Act
	_, err := s.decodeOffset(bad)

	// Assert
	assert.ErrorIs(t, err, er.ErrProvider)
}

func TestMatchesAttachmentFilter(t *testing.T) {
	// Arrange
	withAttachment := models.EmailMessage{Attachments: []models.Attachment{{ID: "a"}}}
	without := models.EmailMessage{}

	// Assert
	assert.True(t, matchesAttachmentFilter(nil, without))
	assert.True(t, matchesAttachmentFilter(&models.EmailSearchFilter{}, without))
	assert.True(t, matchesAttachmentFilter(&models.EmailSearchFilter{HasAttachments: utils.Ptr(true)}, withAttachment))
	assert.False(t, matchesAttachmentFilter(&models.EmailSearchFilter{HasAttachments: utils.Ptr(true)}, without))
	assert.False(t, matchesAttachmentFilter(&models.EmailSearchFilter{HasAttachments: utils.Ptr(false)}, withAttachment))
}
