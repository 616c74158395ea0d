package enum

// MailFolder is the provider-agnostic folder vocabulary. Providers map these
// to their native labels or well-known folder ids; the mapping is owned by
// each provider's folder mapper, never by callers.
type MailFolder string

const (
	FolderInbox   MailFolder = "inbox"
	FolderSent    MailFolder = "sent"
	FolderDrafts  MailFolder = "drafts"
	FolderDeleted MailFolder = "deleted"
	FolderSpam    MailFolder = "spam"
	FolderStarred MailFolder = "starred"
)

func (f MailFolder) String() string {
	return string(f)
}

// MailFolders returns the closed folder set in canonical order.
func MailFolders() []MailFolder {
	return []MailFolder{
		FolderInbox,
		FolderSent,
		FolderDrafts,
		FolderDeleted,
		FolderSpam,
		FolderStarred,
	}
}

func DecodeMailFolder(s string) (MailFolder, bool) {
	for _, f := range MailFolders() {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}
