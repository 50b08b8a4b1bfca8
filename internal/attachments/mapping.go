package attachments

import (
	"github.com/JaimeStill/bizz/pkg/query"
	"github.com/JaimeStill/bizz/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "attachments", "a").
	Project("id", "ID").
	Project("listing_id", "ListingID").
	Project("kind", "Kind").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("storage_key", "StorageKey").
	Project("uploaded_at", "UploadedAt")

var defaultSort = query.SortField{Field: "UploadedAt"}

func scanAttachment(s repository.Scanner) (Attachment, error) {
	var a Attachment
	err := s.Scan(
		&a.ID,
		&a.ListingID,
		&a.Kind,
		&a.Filename,
		&a.ContentType,
		&a.SizeBytes,
		&a.PageCount,
		&a.StorageKey,
		&a.UploadedAt,
	)
	return a, err
}
