package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DhruvSimform/email-library/internal/enum"
)

func TestCredential_Redacted(t *testing.T) {
	// Arrange
	long := Credential{Provider: enum.EmailProviderGmail, AccessToken: "ya29.a0AfB4XvZ9"}
	short := Credential{Provider: enum.EmailProviderIMAP, AccessToken: "secret"}

	// Assert: the token never appears whole in the loggable form.
	assert.Equal(t, "gmail:ya2...vZ9", long.Redacted())
	assert.Equal(t, "imap:***", short.Redacted())
	assert.NotContains(t, long.Redacted(), long.AccessToken)
}
