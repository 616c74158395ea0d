package gmail

import "github.com/DhruvSimform/email-library/internal/enum"

// Standardized folder → Gmail label id. Gmail models folders as labels, so
// the mapping is a straight label lookup in both directions.
var folderToLabel = map[enum.MailFolder]string{
	enum.FolderInbox:   "INBOX",
	enum.FolderSent:    "SENT",
	enum.FolderDrafts:  "DRAFT",
	enum.FolderDeleted: "TRASH",
	enum.FolderSpam:    "SPAM",
	enum.FolderStarred: "STARRED",
}

// Gmail label id → standardized folder. The CATEGORY_* inbox tabs all group
// back to INBOX; labels absent here have no standardized equivalent.
var labelToFolder = map[string]enum.MailFolder{
	"INBOX":               enum.FolderInbox,
	"SENT":                enum.FolderSent,
	"DRAFT":               enum.FolderDrafts,
	"TRASH":               enum.FolderDeleted,
	"SPAM":                enum.FolderSpam,
	"STARRED":             enum.FolderStarred,
	"CATEGORY_PERSONAL":   enum.FolderInbox,
	"CATEGORY_SOCIAL":     enum.FolderInbox,
	"CATEGORY_PROMOTIONS": enum.FolderInbox,
	"CATEGORY_UPDATES":    enum.FolderInbox,
	"CATEGORY_FORUMS":     enum.FolderInbox,
}

// ToNativeLabel maps a standardized folder to its Gmail label id.
func ToNativeLabel(folder enum.MailFolder) (string, bool) {
	label, ok := folderToLabel[folder]
	return label, ok
}

// FromNativeLabel maps a Gmail label id back to a standardized folder;
// ok is false when the label has no standardized equivalent.
func FromNativeLabel(label string) (enum.MailFolder, bool) {
	folder, ok := labelToFolder[label]
	return folder, ok
}

// SupportedFolders returns the standardized folders Gmail can serve, in
// canonical order.
func SupportedFolders() []enum.MailFolder {
	folders := make([]enum.MailFolder, 0, len(folderToLabel))
	for _, f := range enum.MailFolders() {
		if _, ok := folderToLabel[f]; ok {
			folders = append(folders, f)
		}
	}
	return folders
}
