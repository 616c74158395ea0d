package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmailDetail_AsMap(t *testing.T) {
	// Arrange
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	detail := NewEmailDetail(EmailDetail{
		MessageID:  "msg-1",
		Subject:    "Quarterly report",
		Sender:     "Alice <alice@example.com>",
		Timestamp:  ts,
		Recipients: []string{"bob@example.com"},
		CC:         []string{"carol@example.com"},
		BodyText:   "plain body",
		BodyHTML:   "<p>plain body</p>",
	})

	// Act
	m := detail.AsMap()

	// Assert
	assert.Equal(t, "msg-1", m["message_id"])
	assert.Equal(t, "2024-03-15T10:30:00Z", m["timestamp"])
	assert.Equal(t, []string{"bob@example.com"}, m["recipients"])
	assert.Equal(t, "plain body", m["body_text"])
	assert.Equal(t, "<p>plain body</p>", m["body_html"])
}

func TestEmailDetail_AsMap_NoHTMLBody(t *testing.T) {
	// Arrange
	detail := NewEmailDetail(EmailDetail{MessageID: "msg-2", BodyText: "text only"})

	// Act
	m := detail.AsMap()

	// Assert
	assert.Nil(t, m["body_html"])
	assert.Equal(t, "text only", m["body_text"])
}

func TestNewEmailDetail_CopiesSlices(t *testing.T) {
	// Arrange
	recipients := []string{"bob@example.com"}

	// Act
	detail := NewEmailDetail(EmailDetail{Recipients: recipients})
	recipients[0] = "mutated@example.com"

	// Assert
	assert.Equal(t, "bob@example.com", detail.Recipients[0])
}
