package imap

import "github.com/DhruvSimform/email-library/internal/enum"

// Standardized folder → common IMAP mailbox name. Starred is not a mailbox;
// it is served from INBOX narrowed to \Flagged messages, so it is absent
// here and special-cased by the provider.
var folderToMailbox = map[enum.MailFolder]string{
	enum.FolderInbox:   "INBOX",
	enum.FolderSent:    "Sent",
	enum.FolderDrafts:  "Drafts",
	enum.FolderDeleted: "Trash",
	enum.FolderSpam:    "Junk",
}

// ToMailbox maps a standardized folder to its IMAP mailbox name.
func ToMailbox(folder enum.MailFolder) (string, bool) {
	mailbox, ok := folderToMailbox[folder]
	return mailbox, ok
}

// SupportedFolders returns the standardized folders the IMAP adapter can
// serve, in canonical order. Starred is included because the provider
// serves it through the flagged-message search.
func SupportedFolders() []enum.MailFolder {
	folders := make([]enum.MailFolder, 0, len(folderToMailbox)+1)
	for _, f := range enum.MailFolders() {
		if _, ok := folderToMailbox[f]; ok || f == enum.FolderStarred {
			folders = append(folders, f)
		}
	}
	return folders
}
