package model

import (
	"fmt"
	"strings"
)

// Attachment limits.
const (
	MaxAttachments    = 10
	MaxAttachmentSize = 10 << 20 // 10 MiB
)

// Attachment describes a file attached to a query. Only metadata is kept;
// the bytes are never persisted or sent to providers.
type Attachment struct {
	Name        string
	ContentType string
	Size        int64
}

// IsImage reports whether the attachment has an image content type.
func (a Attachment) IsImage() bool {
	return strings.HasPrefix(a.ContentType, "image/")
}

// SummarizeAttachments returns the human-readable suffix appended to a
// prompt, or "" when there are no attachments.
func SummarizeAttachments(attachments []Attachment) string {
	if len(attachments) == 0 {
		return ""
	}
	names := make([]string, 0, len(attachments))
	for _, a := range attachments {
		names = append(names, a.Name)
	}
	return fmt.Sprintf("\n\n[Attachments: %d image(s): %s]", len(attachments), strings.Join(names, ", "))
}
