package models

import "math"

// Attachment is read-only attachment metadata, used for listing and for the
// size check performed before any download.
type Attachment struct {
	ID        string `json:"attachment_id"`
	Filename  string `json:"filename"`
	SizeBytes int64  `json:"size_bytes"`
	MimeType  string `json:"mime_type"`
}

// SizeKB returns the size in kilobytes rounded to two decimals.
func (a Attachment) SizeKB() float64 {
	return math.Round(float64(a.SizeBytes)/1024*100) / 100
}

// SizeMB returns the size in megabytes rounded to two decimals.
func (a Attachment) SizeMB() float64 {
	return math.Round(float64(a.SizeBytes)/(1024*1024)*100) / 100
}

func (a Attachment) AsMap() map[string]any {
	return map[string]any{
		"attachment_id": a.ID,
		"filename":      a.Filename,
		"size_bytes":    a.SizeBytes,
		"mime_type":     a.MimeType,
	}
}
