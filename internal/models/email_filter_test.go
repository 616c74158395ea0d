package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	er "github.com/DhruvSimform/email-library/internal/errors"
	"github.com/DhruvSimform/email-library/internal/utils"
)

func TestNewEmailSearchFilter_Valid(t *testing.T) {
	// Arrange
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	// Act
	filter, err := NewEmailSearchFilter(EmailSearchFilter{
		FromAddress: "alice@example.com",
		ToAddresses: []string{"bob@example.com"},
		StartDate:   &start,
		EndDate:     &end,
	})

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, filter)
	assert.Equal(t, "alice@example.com", filter.FromAddress)
}

func TestNewEmailSearchFilter_InvertedDateRange(t *testing.T) {
	// Arrange
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Act
	filter, err := NewEmailSearchFilter(EmailSearchFilter{
		StartDate: &start,
		EndDate:   &end,
	})

	// Assert
	assert.Nil(t, filter)
	assert.ErrorIs(t, err, er.ErrInvalidFilter)
	assert.ErrorIs(t, err, er.ErrFilter)
	assert.ErrorIs(t, err, er.ErrEmailIntegration)
}

func TestNewEmailSearchFilter_InvalidFromAddress(t *testing.T) {
	// Act
	filter, err := NewEmailSearchFilter(EmailSearchFilter{
		FromAddress: "not-an-email",
	})

	// Assert
	assert.Nil(t, filter)
	assert.ErrorIs(t, err, er.ErrInvalidFilter)
}

func TestNewEmailSearchFilter_InvalidToAddress(t *testing.T) {
	// Act
	filter, err := NewEmailSearchFilter(EmailSearchFilter{
		ToAddresses: []string{"bob@example.com", "broken@"},
	})

	// Assert
	assert.Nil(t, filter)
	assert.ErrorIs(t, err, er.ErrInvalidFilter)
}

func TestNewEmailSearchFilter_CopiesSlices(t *testing.T) {
	// Arrange
	to := []string{"bob@example.com"}
	words := []string{"urgent"}

	// Act
	filter, err := NewEmailSearchFilter(EmailSearchFilter{
		ToAddresses: to,
		HasWords:    words,
	})
	assert.NoError(t, err)
	to[0] = "mutated@example.com"
	words[0] = "mutated"

	// Assert
	assert.Equal(t, "bob@example.com", filter.ToAddresses[0])
	assert.Equal(t, "urgent", filter.HasWords[0])
}

func TestEmailSearchFilter_Validate_NilReceiver(t *testing.T) {
	// Arrange
	var filter *EmailSearchFilter

	// Assert
	assert.NoError(t, filter.Validate())
	assert.True(t, filter.IsEmpty())
}

func TestEmailSearchFilter_IsEmpty(t *testing.T) {
	// Arrange
	empty := &EmailSearchFilter{}
	set := &EmailSearchFilter{IsRead: utils.Ptr(true)}

	// Assert
	assert.True(t, empty.IsEmpty())
	assert.False(t, set.IsEmpty())
}
