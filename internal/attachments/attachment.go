// Package attachments stores listing media (logos, gallery images, and
// brochures) in blob storage and tracks their metadata.
package attachments

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind classifies how an attachment is shown on a listing page.
type Kind string

const (
	KindLogo     Kind = "logo"
	KindGallery  Kind = "gallery"
	KindBrochure Kind = "brochure"
)

// ParseKind maps a form value to a Kind. Unknown values are rejected.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindLogo, KindGallery, KindBrochure:
		return k, true
	}
	return "", false
}

// Accepts reports whether a content type is allowed for the kind.
// Brochures must be PDFs; logos and gallery items must be images.
func (k Kind) Accepts(contentType string) bool {
	if k == KindBrochure {
		return contentType == "application/pdf"
	}
	return strings.HasPrefix(contentType, "image/")
}

// Attachment is a stored blob that belongs to a listing.
type Attachment struct {
	ID          uuid.UUID `json:"id"`
	ListingID   uuid.UUID `json:"listing_id"`
	Kind        Kind      `json:"kind"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	PageCount   *int      `json:"page_count"`
	StorageKey  string    `json:"storage_key"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// CreateCommand carries a single file upload. PageCount is extracted from
// brochures by the handler; nil values are stored as NULL.
type CreateCommand struct {
	ListingID   uuid.UUID
	Kind        Kind
	Data        []byte
	Filename    string
	ContentType string
	PageCount   *int
}

// BatchResult reports the outcome of a single file within a batch upload.
// On success, Attachment is populated and Error is empty.
type BatchResult struct {
	Attachment *Attachment `json:"attachment,omitempty"`
	Filename   string      `json:"filename"`
	Error      string      `json:"error,omitempty"`
}
