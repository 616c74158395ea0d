package outlook

import "github.com/DhruvSimform/email-library/internal/enum"

// Standardized folder → Graph well-known folder name. Starred has no Graph
// folder; it is served from /me/messages filtered on flag status instead,
// so it is absent here and special-cased by the provider.
var folderToWellKnown = map[enum.MailFolder]string{
	enum.FolderInbox:   "inbox",
	enum.FolderSent:    "sentitems",
	enum.FolderDrafts:  "drafts",
	enum.FolderDeleted: "deleteditems",
	enum.FolderSpam:    "junkemail",
}

// ToWellKnownFolder maps a standardized folder to its Graph well-known name.
func ToWellKnownFolder(folder enum.MailFolder) (string, bool) {
	name, ok := folderToWellKnown[folder]
	return name, ok
}

// SupportedFolders returns the standardized folders Outlook can serve, in
// canonical order. Starred is included because the provider serves it
// through the flagged-message filter.
func SupportedFolders() []enum.MailFolder {
	folders := make([]enum.MailFolder, 0, len(folderToWellKnown)+1)
	for _, f := range enum.MailFolders() {
		if _, ok := folderToWellKnown[f]; ok || f == enum.FolderStarred {
			folders = append(folders, f)
		}
	}
	return folders
}
