package outlook

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/DhruvSimform/email-library/internal/enum"
)

const messageFixture = `{
	"id": "msg-1",
	"subject": "Quarterly report",
	"from": {"emailAddress": {"name": "Alice", "address": "alice@example.com"}},
	"toRecipients": [
		{"emailAddress": {"name": "", "address": "bob@example.com"}},
		{"emailAddress": {"name": "Carol", "address": "carol@example.com"}}
	],
	"ccRecipients": [{"emailAddress": {"name": "", "address": "dave@example.com"}}],
	"receivedDateTime": "2024-03-15T10:30:00Z",
	"bodyPreview": "Please find the report attached",
	"isRead": false,
	"hasAttachments": true,
	"inferenceClassification": "focused",
	"attachments": [
		{"id": "att-1", "name": "report.pdf", "size": 2048, "contentType": "application/pdf"}
	],
	"body": {"contentType": "html", "content": "<p>Hello team</p>"}
}`

func fixtureGraphMessage(t *testing.T) graphMessage {
	var raw graphMessage
	err := json.Unmarshal([]byte(messageFixture), &raw)
	assert.NoError(t, err)
	return raw
}

func TestToEmailMessage(t *testing.T) {
	// Act
	msg := toEmailMessage(fixtureGraphMessage(t), enum.FolderInbox)

	// Assert
	assert.Equal(t, "msg-1", msg.MessageID)
	assert.Equal(t, "Quarterly report", msg.Subject)
	assert.Equal(t, "Alice <alice@example.com>", msg.Sender)
	assert.Equal(t, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), msg.Timestamp)
	assert.Equal(t, "Please find the report attached", msg.Preview)
	assert.False(t, msg.IsRead)
	assert.Equal(t, enum.InboxPrimary, msg.InboxClassification)
	assert.Equal(t, 1, msg.AttachmentCount())
	assert.Equal(t, "att-1", msg.Attachments[0].ID)
}

func TestToEmailDetail(t *testing.T) {
	// Act
	detail := toEmailDetail(fixtureGraphMessage(t))

	// Assert
	assert.Equal(t, "msg-1", detail.MessageID)
	assert.Equal(t, []string{"bob@example.com", "Carol <carol@example.com>"}, detail.Recipients)
	assert.Equal(t, []string{"dave@example.com"}, detail.CC)
	assert.Equal(t, "<p>Hello team</p>", detail.BodyHTML)
	assert.Contains(t, detail.BodyText, "Hello team")
}

func TestExtractBodies_TextOnly(t *testing.T) {
	// Arrange
	raw := graphMessage{Body: &graphBody{ContentType: "text", Content: "plain body"}}

	// Act
	bodyText, bodyHTML := extractBodies(raw)

	// Assert
	assert.Equal(t, "plain body", bodyText)
	assert.Equal(t, "", bodyHTML)
}

func TestExtractBodies_HTMLFallsBackToPreview(t *testing.T) {
	// Arrange: empty html content cannot be converted, preview steps in.
	raw := graphMessage{
		BodyPreview: "preview text",
		Body:        &graphBody{ContentType: "html", Content: ""},
	}

	// Act
	bodyText, _ := extractBodies(raw)

	// Assert
	assert.Equal(t, "preview text", bodyText)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, enum.InboxPrimary, classify("focused"))
	assert.Equal(t, enum.InboxOther, classify("other"))
	assert.Equal(t, enum.InboxClassification(""), classify(""))
}

func TestNextLinkFieldDecodes(t *testing.T) {
	// Arrange
	payload := `{"value": [], "@odata.nextLink": "https://graph.microsoft.com/v1.0/me/mailFolders/inbox/messages?%24top=10&%24skip=10"}`

	// Act
	var list graphMessageList
	err := json.Unmarshal([]byte(payload), &list)

	// Assert
	assert.NoError(t, err)
	assert.Contains(t, list.NextLink, "%24skip=10")
}
