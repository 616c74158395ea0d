package models

import "github.com/DhruvSimform/email-library/internal/enum"

// Credential is an access token scoped to one provider. It is set once for
// the adapter's lifetime and never mutated; validity is checked on demand.
type Credential struct {
	Provider    enum.EmailProvider
	AccessToken string
}

// Redacted returns a loggable form of the credential.
func (c Credential) Redacted() string {
	if len(c.AccessToken) <= 6 {
		return c.Provider.String() + ":***"
	}
	return c.Provider.String() + ":" + c.AccessToken[:3] + "..." + c.AccessToken[len(c.AccessToken)-3:]
}
