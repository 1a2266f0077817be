// Package upload turns multipart image uploads into attachment metadata.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/ericfisherdev/academia/internal/domain/model"
)

// FieldName is the multipart field carrying query images.
const FieldName = "images"

// MaxRequestBytes bounds a query request body: every allowed attachment at
// full size plus room for the form fields.
const MaxRequestBytes = model.MaxAttachments*model.MaxAttachmentSize + 1<<20

// maxMemory is the part of a multipart form kept in memory; the rest spills
// to temporary files.
const maxMemory = 32 << 20

// sniffLen is the number of bytes http.DetectContentType inspects.
const sniffLen = 512

// ParseForm parses r as a multipart form within MaxRequestBytes.
func ParseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBytes)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return model.NewValidationError(fmt.Sprintf("invalid upload: %v", err))
	}
	return nil
}

// Attachments returns metadata for every file under FieldName. The content
// type is sniffed from the file bytes, not taken from the client.
func Attachments(form *multipart.Form) ([]model.Attachment, error) {
	if form == nil {
		return nil, nil
	}

	files := form.File[FieldName]
	attachments := make([]model.Attachment, 0, len(files))
	for _, fh := range files {
		contentType, err := sniff(fh)
		if err != nil {
			return nil, fmt.Errorf("read attachment %q: %w", fh.Filename, err)
		}
		attachments = append(attachments, model.Attachment{
			Name:        fh.Filename,
			ContentType: contentType,
			Size:        fh.Size,
		})
	}
	return attachments, nil
}

func sniff(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}
