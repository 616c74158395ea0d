package outlook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DhruvSimform/email-library/config"
	"github.com/DhruvSimform/email-library/interfaces"
	"github.com/DhruvSimform/email-library/internal/enum"
	"github.com/DhruvSimform/email-library/internal/logger"
)

func testLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func testConfig(graphBaseURL string) *config.Config {
	return &config.Config{
		Limits: &config.LimitsConfig{MaxAttachmentSizeBytes: 25_000_000},
		OutlookConfig: &config.OutlookConfig{
			GraphAPIBaseURL: graphBaseURL,
			RequestTimeout:  5,
			DefaultFolders:  []string{"inbox"},
		},
	}
}

func TestFetchEmails_NextLinkReplayedAgainstConfiguredBaseURL(t *testing.T) {
	// Arrange: a Graph stub serving two pages, the first page's nextLink
	// pointing back at the stub itself.
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Query().Get("$skip") == "2" {
			_, _ = w.Write([]byte(`{"value":[{"id":"m3","subject":"third","receivedDateTime":"2024-03-13T10:30:00Z"}]}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"value": []map[string]any{
				{"id": "m1", "subject": "first", "receivedDateTime": "2024-03-15T10:30:00Z"},
				{"id": "m2", "subject": "second", "receivedDateTime": "2024-03-14T10:30:00Z"},
			},
			"@odata.nextLink": server.URL + "/me/mailFolders/inbox/messages?%24skip=2",
		})
	}))
	defer server.Close()

	provider := NewOutlookProvider(testConfig(server.URL), testLogger())
	assert.NoError(t, provider.SetCredentials("token"))

	// Act: fetch the first page, then replay its cursor.
	first, next, err := provider.FetchEmails(context.Background(), interfaces.FetchOptions{
		PageSize: 2,
		Folder:   enum.FolderInbox,
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, next)

	second, last, err := provider.FetchEmails(context.Background(), interfaces.FetchOptions{
		PageSize: 2,
		Cursor:   next,
		Folder:   enum.FolderInbox,
	})

	// Assert: the cursor continues the sequence and ends it.
	assert.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, "m1", first[0].MessageID)
	assert.Len(t, second, 1)
	assert.Equal(t, "m3", second[0].MessageID)
	assert.Equal(t, "", last)
}

func TestIsValidNextLink(t *testing.T) {
	// Arrange
	national := &OutlookProvider{cfg: testConfig("https://graph.microsoft.us/v1.0")}
	public := &OutlookProvider{cfg: testConfig("https://graph.microsoft.com/v1.0")}

	// Assert: the configured host and the public Graph host are accepted.
	assert.True(t, national.isValidNextLink("https://graph.microsoft.us/v1.0/me/mailFolders/inbox/messages?%24skip=10"))
	assert.True(t, national.isValidNextLink("https://graph.microsoft.com/v1.0/me/messages?$skip=10"))
	assert.True(t, public.isValidNextLink("https://graph.microsoft.com/v1.0/me/messages?$skip=10"))

	// Anything else is rejected.
	assert.False(t, public.isValidNextLink("https://evil.example.com/me/messages?$skip=10"))
	assert.False(t, public.isValidNextLink("https://graph.microsoft.com/v1.0/me/messages"))
	assert.False(t, public.isValidNextLink("https://graph.microsoft.com/v1.0/me/mailFolders?$top=5"))
}
