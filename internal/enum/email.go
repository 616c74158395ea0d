package enum

type EmailProvider string

const (
	EmailProviderGmail   EmailProvider = "gmail"
	EmailProviderOutlook EmailProvider = "outlook"
	EmailProviderIMAP    EmailProvider = "imap"
)

func (t EmailProvider) String() string {
	return string(t)
}

// InboxClassification is the normalized inbox tab assigned by some providers.
// Gmail CATEGORY_PERSONAL and Outlook "focused" map to primary, everything
// else that carries a classification maps to other.
type InboxClassification string

const (
	InboxPrimary InboxClassification = "primary"
	InboxOther   InboxClassification = "other"
)

func (t InboxClassification) String() string {
	return string(t)
}
