package gmail

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/DhruvSimform/email-library/internal/models"
	"github.com/DhruvSimform/email-library/internal/utils"
)

func TestBuildQuery_EmptyFilter(t *testing.T) {
	assert.Equal(t, "", BuildQuery(&models.EmailSearchFilter{}))
}

func TestBuildQuery_OneTokenPerField(t *testing.T) {
	// Arrange
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	filter := &models.EmailSearchFilter{
		FromAddress:     "alice@example.com",
		ToAddresses:     []string{"bob@example.com"},
		SubjectContains: "invoice",
		BodyContains:    "overdue",
		HasWords:        []string{"urgent", "payment"},
		HasAttachments:  utils.Ptr(true),
		IsRead:          utils.Ptr(false),
		StartDate:       &start,
		EndDate:         &end,
	}

	// Act
	query := BuildQuery(filter)

	// Assert
	expected := fmt.Sprintf(
		"from:alice@example.com to:bob@example.com subject:invoice overdue urgent payment has:attachment is:unread after:%d before:%d",
		start.Unix(), end.Unix())
	assert.Equal(t, expected, query)
	assert.Len(t, strings.Fields(query), 10)
}

func TestBuildQuery_ReadFlag(t *testing.T) {
	assert.Equal(t, "is:read", BuildQuery(&models.EmailSearchFilter{IsRead: utils.Ptr(true)}))
	assert.Equal(t, "is:unread", BuildQuery(&models.EmailSearchFilter{IsRead: utils.Ptr(false)}))
}

func TestBuildQuery_MultipleRecipients(t *testing.T) {
	// Arrange
	filter := &models.EmailSearchFilter{
		ToAddresses: []string{"a@example.com", "b@example.com"},
	}

	// Act
	query := BuildQuery(filter)

	// Assert
	assert.Equal(t, "to:a@example.com to:b@example.com", query)
}

func TestBuildQuery_DatesUseEpochSeconds(t *testing.T) {
	// Arrange: an afternoon timestamp must survive at full precision.
	start := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	filter := &models.EmailSearchFilter{StartDate: &start}

	// Act
	query := BuildQuery(filter)

	// Assert
	assert.Equal(t, fmt.Sprintf("after:%d", start.Unix()), query)
}
