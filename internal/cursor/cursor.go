// Package cursor wraps each provider's native continuation mechanism (page
// token, nextLink URL, offset) into one opaque string contract. The envelope
// is tagged with the issuing provider so that a cursor handed to a different
// adapter fails deterministically instead of producing a silent wrong page.
// Callers must treat cursor values as opaque.
package cursor

import (
	"encoding/base64"
	"encoding/json"

	"github.com/DhruvSimform/email-library/internal/enum"
	er "github.com/DhruvSimform/email-library/internal/errors"
)

type envelope struct {
	Provider string `json:"p"`
	Token    string `json:"t"`
}

// Encode wraps a native continuation token. An empty token means no further
// pages exist and encodes to the empty cursor.
func Encode(provider enum.EmailProvider, token string) string {
	if token == "" {
		return ""
	}
	raw, _ := json.Marshal(envelope{Provider: provider.String(), Token: token})
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Decode unwraps a cursor previously produced by Encode for the same
// provider. The empty cursor decodes to the empty token (first page).
func Decode(provider enum.EmailProvider, raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return "", er.MalformedCursor()
	}
	var env envelope
	if err := json.Unmarshal(decoded, &env); err != nil {
		return "", er.MalformedCursor()
	}
	if env.Provider != provider.String() {
		return "", er.ProviderMismatch(provider.String(), env.Provider)
	}
	return env.Token, nil
}
