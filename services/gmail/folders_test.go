package gmail

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DhruvSimform/email-library/internal/enum"
)

func TestFolderMapping_RoundTrip(t *testing.T) {
	for _, folder := range SupportedFolders() {
		label, ok := ToNativeLabel(folder)
		assert.True(t, ok, "folder %s has no label", folder)

		back, ok := FromNativeLabel(label)
		assert.True(t, ok)
		assert.Equal(t, folder, back)
	}
}

func TestFolderMapping_CategoryLabelsGroupToInbox(t *testing.T) {
	for _, label := range []string{
		"CATEGORY_PERSONAL", "CATEGORY_SOCIAL", "CATEGORY_PROMOTIONS",
		"CATEGORY_UPDATES", "CATEGORY_FORUMS",
	} {
		folder, ok := FromNativeLabel(label)
		assert.True(t, ok)
		assert.Equal(t, enum.FolderInbox, folder)
	}
}

func TestFolderMapping_UnknownLabel(t *testing.T) {
	_, ok := FromNativeLabel("IMPORTANT")
	assert.False(t, ok)
}

func TestSupportedFolders_CanonicalOrder(t *testing.T) {
	assert.Equal(t, enum.MailFolders(), SupportedFolders())
}
